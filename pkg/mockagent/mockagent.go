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

// Package mockagent is a scripted A2A agent endpoint for demos and
// integration tests. It answers message/stream with a fixed sequence of
// UI messages wrapped in JSON-RPC SSE frames, and records every user
// action returned over message/send.
package mockagent

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// JSON-RPC 2.0 error codes.
const (
	parseError     = -32700
	invalidRequest = -32600
	methodNotFound = -32601
)

// jsonrpcRequest is the inbound request envelope.
type jsonrpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  requestParams   `json:"params"`
	ID      json.RawMessage `json:"id"`
}

type requestParams struct {
	Message inboundMessage `json:"message"`
}

type inboundMessage struct {
	MessageID  string        `json:"messageId"`
	Role       string        `json:"role"`
	Parts      []messagePart `json:"parts"`
	ContextID  string        `json:"contextId"`
	Extensions []string      `json:"extensions"`
}

type messagePart struct {
	Text string          `json:"text,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// jsonrpcResponse is the outbound response envelope, one per SSE frame
// on streaming calls.
type jsonrpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *jsonrpcError   `json:"error,omitempty"`
}

type jsonrpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ReceivedAction is a user action the agent collected via message/send.
type ReceivedAction struct {
	ActionName        string         `json:"actionName"`
	SourceComponentID string         `json:"sourceComponentId"`
	Timestamp         string         `json:"timestamp"`
	ResolvedContext   map[string]any `json:"resolvedContext"`
}

// Agent serves a scripted conversation. Every message/stream call plays
// the whole script; actions accumulate across calls.
type Agent struct {
	mu       sync.Mutex
	script   []json.RawMessage
	actions  []ReceivedAction
	taskSeq  int
	delay    time.Duration
	logger   *slog.Logger
	lastText string
}

// Option configures an Agent.
type Option func(*Agent)

// WithScript sets the UI message payloads streamed per conversation.
func WithScript(script []json.RawMessage) Option {
	return func(a *Agent) {
		a.script = script
	}
}

// WithDelay inserts a pause between streamed frames so consumers can
// observe progressive rendering.
func WithDelay(delay time.Duration) Option {
	return func(a *Agent) {
		a.delay = delay
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// New creates a scripted agent.
func New(opts ...Option) *Agent {
	a := &Agent{
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Actions returns a copy of every action received so far.
func (a *Agent) Actions() []ReceivedAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ReceivedAction, len(a.actions))
	copy(out, a.actions)
	return out
}

// LastPrompt returns the text of the most recent user message.
func (a *Agent) LastPrompt() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastText
}

// Handler returns the agent's HTTP handler. The JSON-RPC endpoint is
// the root path, matching how A2UI hosts address an agent by URL.
func (a *Agent) Handler() http.Handler {
	r := chi.NewRouter()
	r.Post("/", a.handleJSONRPC)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	return r
}

func (a *Agent) handleJSONRPC(w http.ResponseWriter, r *http.Request) {
	var req jsonrpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.sendError(w, nil, parseError, fmt.Sprintf("parse error: %v", err))
		return
	}
	if req.JSONRPC != "2.0" {
		a.sendError(w, req.ID, invalidRequest, "jsonrpc must be 2.0")
		return
	}

	switch req.Method {
	case "message/stream":
		a.handleStream(w, r, req)
	case "message/send":
		a.handleSend(w, req)
	default:
		a.sendError(w, req.ID, methodNotFound, fmt.Sprintf("unknown method: %s", req.Method))
	}
}

// handleStream plays the script as one SSE frame per UI message,
// bracketed by task status results.
func (a *Agent) handleStream(w http.ResponseWriter, r *http.Request, req jsonrpcRequest) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		a.sendError(w, req.ID, invalidRequest, "streaming unsupported by connection")
		return
	}

	a.mu.Lock()
	a.taskSeq++
	taskID := fmt.Sprintf("task-%d", a.taskSeq)
	for _, part := range req.Params.Message.Parts {
		if part.Text != "" {
			a.lastText = part.Text
		}
	}
	script := a.script
	delay := a.delay
	a.mu.Unlock()

	a.logger.Info("stream opened",
		"taskId", taskID,
		"contextId", req.Params.Message.ContextID,
		"frames", len(script))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	stream := &frameWriter{writer: w, flusher: flusher, id: req.ID}

	contextID := req.Params.Message.ContextID
	if err := stream.sendTask(taskID, contextID, "working"); err != nil {
		return
	}

	for _, payload := range script {
		if delay > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(delay):
			}
		}
		if err := stream.sendEvent(taskID, payload); err != nil {
			return
		}
	}

	_ = stream.sendTask(taskID, contextID, "completed")
}

// handleSend records the a2uiEvent carried in the first data part and
// acknowledges with the current task.
func (a *Agent) handleSend(w http.ResponseWriter, req jsonrpcRequest) {
	var action ReceivedAction
	found := false
	for _, part := range req.Params.Message.Parts {
		if len(part.Data) == 0 {
			continue
		}
		var envelope struct {
			Event *ReceivedAction `json:"a2uiEvent"`
		}
		if err := json.Unmarshal(part.Data, &envelope); err == nil && envelope.Event != nil {
			action = *envelope.Event
			found = true
			break
		}
	}
	if !found {
		a.sendError(w, req.ID, invalidRequest, "message carries no a2uiEvent data part")
		return
	}

	a.mu.Lock()
	a.actions = append(a.actions, action)
	taskID := fmt.Sprintf("task-%d", a.taskSeq)
	a.mu.Unlock()

	a.logger.Info("action received",
		"action", action.ActionName,
		"component", action.SourceComponentID)

	result, _ := json.Marshal(map[string]any{
		"kind":   "task",
		"id":     taskID,
		"status": map[string]string{"state": "completed"},
	})
	a.writeResponse(w, jsonrpcResponse{JSONRPC: "2.0", ID: req.ID, Result: result})
}

func (a *Agent) sendError(w http.ResponseWriter, id json.RawMessage, code int, message string) {
	a.writeResponse(w, jsonrpcResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &jsonrpcError{Code: code, Message: message},
	})
}

func (a *Agent) writeResponse(w http.ResponseWriter, resp jsonrpcResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		a.logger.Error("failed to write response", "error", err)
	}
}

// frameWriter emits JSON-RPC results as SSE data frames.
type frameWriter struct {
	writer  http.ResponseWriter
	flusher http.Flusher
	id      json.RawMessage
}

func (f *frameWriter) send(result json.RawMessage) error {
	resp := jsonrpcResponse{JSONRPC: "2.0", ID: f.id, Result: result}
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "data: %s\n\n", data); err != nil {
		return err
	}
	f.flusher.Flush()
	return nil
}

func (f *frameWriter) sendTask(taskID, contextID, state string) error {
	result, err := json.Marshal(map[string]any{
		"kind":      "task",
		"id":        taskID,
		"contextId": contextID,
		"status":    map[string]string{"state": state},
	})
	if err != nil {
		return err
	}
	return f.send(result)
}

func (f *frameWriter) sendEvent(taskID string, payload json.RawMessage) error {
	result, err := json.Marshal(map[string]any{
		"kind":   "a2ui-event",
		"taskId": taskID,
		"data":   payload,
	})
	if err != nil {
		return err
	}
	return f.send(result)
}
