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

// Package client speaks the A2A JSON-RPC protocol to A2UI agents:
// message/stream opens an SSE stream of progressive UI updates, and
// message/send returns resolved user actions.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
	"github.com/kadirpekel/a2ui/pkg/httpclient"
	"github.com/kadirpekel/a2ui/pkg/sse"
)

// Client is an A2A protocol client for one agent endpoint. The context
// id is generated once per client lifetime and reused across calls so
// the agent sees a single conversation.
//
// A Client is owned by a single consumer; methods are not safe for
// concurrent use.
type Client struct {
	url       string
	authToken string
	http      *httpclient.Client
	stream    *sse.Client
	logger    *slog.Logger

	contextID string
	taskID    string
	requestID uint64
}

// Option configures a Client.
type Option func(*Client)

// WithAuthToken sets a bearer token sent on every request.
func WithAuthToken(token string) Option {
	return func(c *Client) {
		c.authToken = token
	}
}

// WithHTTPClient replaces the client used for non-streaming requests.
func WithHTTPClient(client *httpclient.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithStreamClient replaces the SSE streaming client.
func WithStreamClient(client *sse.Client) Option {
	return func(c *Client) {
		c.stream = client
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a client for the given agent URL.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:       url,
		http:      httpclient.New(),
		stream:    sse.NewClient(),
		logger:    slog.Default(),
		contextID: uuid.New().String(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL returns the agent endpoint.
func (c *Client) URL() string { return c.url }

// ContextID returns the conversation context id.
func (c *Client) ContextID() string { return c.contextID }

// TaskID returns the task id announced by the agent, or "".
func (c *Client) TaskID() string { return c.taskID }

// MessageStream sends a user message over message/stream and returns
// the stream of events the agent answers with. The stream's background
// worker stops when ctx is canceled.
func (c *Client) MessageStream(ctx context.Context, content string) (*EventStream, error) {
	request := c.newRequest("message/stream", []part{{Text: content}})

	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	return &EventStream{
		events: c.stream.Stream(ctx, req),
		onTask: func(taskID string) { c.taskID = taskID },
		logger: c.logger,
	}, nil
}

// SendAction returns a resolved user action to the agent as a
// message/send data part. The action's context must already be resolved
// against the data model (see processor.CreateAction).
func (c *Client) SendAction(ctx context.Context, action a2ui.UserAction) error {
	if c.taskID == "" {
		return fmt.Errorf("no active task to send action to")
	}

	event := a2uiEvent{
		ActionName:        action.Action.Name,
		SourceComponentID: action.ComponentID,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		ResolvedContext:   action.Action.Context,
	}

	request := c.newRequest("message/send", []part{{Data: map[string]any{"a2uiEvent": event}}})

	body, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send action: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("action rejected: %s - %s", resp.Status, string(body))
	}
	return nil
}

func (c *Client) newRequest(method string, parts []part) rpcRequest {
	c.requestID++
	return rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		ID:      c.requestID,
		Params: messageParams{
			Message: outboundMessage{
				MessageID:  uuid.New().String(),
				Role:       "user",
				Parts:      parts,
				ContextID:  c.contextID,
				Extensions: []string{ExtensionURI},
			},
		},
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(extensionHeader, ExtensionURI)
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}
}
