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

package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
	"github.com/kadirpekel/a2ui/pkg/processor"
)

// ErrDisabled is returned by Connect when the host configuration has
// the protocol switched off.
var ErrDisabled = errors.New("a2ui is not enabled for this session")

// HostConfig decides whether and how a session engages the protocol.
// Enabled is an explicit per-session switch, not process-wide state.
type HostConfig struct {
	URL       string
	AuthToken string
	Enabled   bool
}

// Host ties a protocol client to a processor for a rendering consumer:
// it owns the stream lifecycle, feeds inbound messages into the
// processor, and returns resolved user actions to the agent.
//
// Like the processor it wraps, a Host is owned by a single consumer
// thread that drains the stream on its own schedule.
type Host struct {
	config    HostConfig
	opts      []Option
	client    *Client
	processor *processor.Processor
	stream    *EventStream
	cancel    context.CancelFunc
	logger    *slog.Logger
	lastErr   error
}

// NewHost creates a host over an existing processor. Extra options are
// applied to the protocol client on first connect.
func NewHost(config HostConfig, proc *processor.Processor, opts ...Option) *Host {
	return &Host{
		config:    config,
		opts:      opts,
		processor: proc,
		logger:    slog.Default(),
	}
}

// Processor returns the processor this host feeds.
func (h *Host) Processor() *processor.Processor { return h.processor }

// Client returns the protocol client, or nil before the first connect.
func (h *Host) Client() *Client { return h.client }

// Connect opens a message stream for the given prompt. A previous
// stream, if any, is shut down first.
func (h *Host) Connect(ctx context.Context, prompt string) error {
	if !h.config.Enabled {
		return ErrDisabled
	}
	h.Close()

	if h.client == nil {
		opts := h.opts
		if h.config.AuthToken != "" {
			opts = append([]Option{WithAuthToken(h.config.AuthToken)}, opts...)
		}
		h.client = New(h.config.URL, opts...)
		h.logger = h.client.logger
	}

	streamCtx, cancel := context.WithCancel(ctx)
	stream, err := h.client.MessageStream(streamCtx, prompt)
	if err != nil {
		cancel()
		return fmt.Errorf("failed to open stream: %w", err)
	}

	h.cancel = cancel
	h.stream = stream
	h.lastErr = nil
	return nil
}

// Poll handles at most one ready stream event and returns the processor
// events it produced, without blocking. An empty result means nothing
// was ready; callers poll again next frame.
func (h *Host) Poll() []processor.Event {
	if h.stream == nil {
		return nil
	}
	event, ok := h.stream.Poll()
	if !ok {
		return nil
	}
	return h.apply(event)
}

// PollAll drains every ready stream event, preserving order.
func (h *Host) PollAll() []processor.Event {
	if h.stream == nil {
		return nil
	}

	var events []processor.Event
	for {
		event, ok := h.stream.Poll()
		if !ok {
			return events
		}
		events = append(events, h.apply(event)...)
	}
}

func (h *Host) apply(event StreamEvent) []processor.Event {
	switch e := event.(type) {
	case MessageEvent:
		return h.processor.ProcessMessage(e.Message)
	case TaskStatusEvent:
		h.logger.Debug("task status", "taskId", e.TaskID, "state", e.State)
	case ErrorEvent:
		h.lastErr = e.Err
		h.logger.Error("stream error", "error", e.Err)
	}
	return nil
}

// SendAction resolves an action against the surface's data model and
// returns it to the agent.
func (h *Host) SendAction(ctx context.Context, surfaceID, componentID string, def a2ui.ActionDefinition, scope string) error {
	if h.client == nil {
		return fmt.Errorf("not connected")
	}
	action := h.processor.CreateAction(surfaceID, componentID, def, scope)
	return h.client.SendAction(ctx, action)
}

// IsConnected reports whether an open stream exists.
func (h *Host) IsConnected() bool {
	return h.stream != nil && !h.stream.Done()
}

// Err returns the last stream error observed by Poll.
func (h *Host) Err() error { return h.lastErr }

// Close shuts down the current stream, if any.
func (h *Host) Close() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	h.stream = nil
}
