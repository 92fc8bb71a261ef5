// Copyright 2025 Kadir Pekel
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package httpclient wraps net/http with the request plumbing every
// agent endpoint call needs: bearer auth, TLS configuration, and bounded
// retry with Retry-After awareness for transient failures.
package httpclient

import (
	"fmt"
	"net/http"
	"time"
)

const (
	defaultTimeout    = 60 * time.Second
	defaultMaxRetries = 3
	defaultBaseDelay  = 2 * time.Second
)

// Client is an HTTP client for agent endpoints. Requests that fail with
// a retryable status are retried with exponential backoff, honoring a
// Retry-After header when the server sends one. Requests without a
// replayable body are never retried.
type Client struct {
	client      *http.Client
	maxRetries  int
	baseDelay   time.Duration
	bearerToken string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client entirely.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithTimeout sets the whole-request timeout. Zero disables it, which
// streaming connections require.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithMaxRetries bounds the number of retry attempts after the first
// request.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		c.maxRetries = max
	}
}

// WithBaseDelay sets the backoff unit for retries without a Retry-After
// hint.
func WithBaseDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.baseDelay = delay
	}
}

// WithBearerToken attaches an Authorization bearer header to every
// request that does not already carry one.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.bearerToken = token
	}
}

// New creates a client with sane agent-endpoint defaults.
func New(opts ...Option) *Client {
	c := &Client{
		client:     &http.Client{Timeout: defaultTimeout},
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do executes a request, retrying transient failures up to the
// configured bound. The response for a non-retryable status is returned
// as-is; callers own status handling.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.bearerToken != "" && req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	}

	var resp *http.Response
	var err error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			if req.GetBody == nil && req.Body != nil {
				break
			}
			if req.GetBody != nil {
				body, bodyErr := req.GetBody()
				if bodyErr != nil {
					return nil, fmt.Errorf("failed to recreate request body for retry: %w", bodyErr)
				}
				req.Body = body
			}
		}

		resp, err = c.client.Do(req)
		if err != nil {
			return nil, err
		}
		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}
		if attempt == c.maxRetries {
			break
		}

		delay := RetryAfter(resp.Header)
		if delay <= 0 {
			delay = c.baseDelay * (1 << attempt)
		}
		resp.Body.Close()

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(delay):
		}
	}

	if resp != nil && retryableStatus(resp.StatusCode) {
		statusCode := resp.StatusCode
		resp.Body.Close()
		return nil, &RetryableError{
			StatusCode: statusCode,
			Message:    fmt.Sprintf("max retries (%d) exceeded", c.maxRetries),
		}
	}
	return resp, err
}

// HTTPClient exposes the underlying http.Client for callers that manage
// their own request lifecycle, such as long-lived streams.
func (c *Client) HTTPClient() *http.Client { return c.client }

// BearerToken returns the configured bearer token, or "".
func (c *Client) BearerToken() string { return c.bearerToken }

func retryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusRequestTimeout,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}
