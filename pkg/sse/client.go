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

package sse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/kadirpekel/a2ui/pkg/httpclient"
)

const (
	// eventBuffer decouples the worker from a consumer that polls once
	// per frame.
	eventBuffer = 32

	// maxLineSize bounds a single SSE line; UI payloads arrive as one
	// data line each.
	maxLineSize = 1 << 20
)

// Client issues streaming requests and parses the response body as SSE
// in a background worker, delivering events over a channel the consumer
// polls at its own pace.
type Client struct {
	http   *httpclient.Client
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The client's
// timeout should be zero; a whole-request timeout kills long-lived
// streams.
func WithHTTPClient(client *httpclient.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a streaming client. The default HTTP client has no
// timeout; a stream lives until the server closes it or the context is
// canceled.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:   httpclient.New(httpclient.WithTimeout(0)),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Stream executes the request and returns a channel of parsed events.
// The channel always terminates: with EventDone after an orderly end of
// stream, or with a single EventError after a transport failure. The
// worker stops promptly when ctx is canceled.
func (c *Client) Stream(ctx context.Context, req *http.Request) <-chan Event {
	events := make(chan Event, eventBuffer)

	req = req.WithContext(ctx)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	go c.stream(ctx, req, events)
	return events
}

func (c *Client) stream(ctx context.Context, req *http.Request, events chan<- Event) {
	defer close(events)

	resp, err := c.http.HTTPClient().Do(req)
	if err != nil {
		c.send(ctx, events, Event{Type: EventError, Err: fmt.Errorf("failed to connect to stream: %w", err)})
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.send(ctx, events, Event{Type: EventError, Err: fmt.Errorf("streaming failed: %s - %s", resp.Status, string(body))})
		return
	}

	parser := NewParser()
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		event, ok := parser.ParseLine(scanner.Text())
		if !ok {
			continue
		}
		if !c.send(ctx, events, event) {
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		c.send(ctx, events, Event{Type: EventError, Err: fmt.Errorf("stream read failed: %w", err)})
		return
	}

	if event, ok := parser.Flush(); ok {
		if !c.send(ctx, events, event) {
			return
		}
	}
	c.send(ctx, events, Event{Type: EventDone})
}

func (c *Client) send(ctx context.Context, events chan<- Event, event Event) bool {
	select {
	case events <- event:
		return true
	case <-ctx.Done():
		c.logger.Debug("stream consumer gone, stopping worker")
		return false
	}
}
