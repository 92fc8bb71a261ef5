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
	"encoding/json"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
)

// ExtensionURI identifies the A2UI extension in A2A message envelopes
// and the X-A2A-Extensions header.
const ExtensionURI = "https://a2ui.org/a2a-extension/a2ui/v0.8"

const extensionHeader = "X-A2A-Extensions"

// ============================================================================
// JSON-RPC REQUEST SHAPES (outbound)
// ============================================================================

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  messageParams `json:"params"`
	ID      uint64        `json:"id"`
}

type messageParams struct {
	Configuration json.RawMessage `json:"configuration,omitempty"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	Message       outboundMessage `json:"message"`
}

type outboundMessage struct {
	MessageID  string   `json:"messageId"`
	Role       string   `json:"role"`
	Parts      []part   `json:"parts"`
	ContextID  string   `json:"contextId"`
	Extensions []string `json:"extensions"`
}

// part is either a text part or a data part; exactly one field is set.
type part struct {
	Text string         `json:"text,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

// a2uiEvent is the payload of an outbound user action, wrapped in a
// data part as {"a2uiEvent": {...}}.
type a2uiEvent struct {
	ActionName        string         `json:"actionName"`
	SourceComponentID string         `json:"sourceComponentId"`
	Timestamp         string         `json:"timestamp"`
	ResolvedContext   map[string]any `json:"resolvedContext"`
}

// ============================================================================
// JSON-RPC RESPONSE SHAPES (inbound)
// ============================================================================

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type taskResult struct {
	Kind      string `json:"kind"`
	ID        string `json:"id"`
	ContextID string `json:"contextId"`
	Status    struct {
		State string `json:"state"`
	} `json:"status"`
}

type eventResult struct {
	Kind   string          `json:"kind"`
	TaskID string          `json:"taskId"`
	Data   json.RawMessage `json:"data"`
}

// resultKind classifies an RPC result payload.
type resultKind int

const (
	resultOther resultKind = iota
	resultTask
	resultEvent
)

// embeddedMessageKeys are the top-level keys whose presence in an event
// result's data marks an embedded UI message.
var embeddedMessageKeys = []string{
	"beginRendering",
	"surfaceUpdate",
	"dataModelUpdate",
	"deleteSurface",
}

// classifyResult shape-matches an RPC result. It parses the result into
// a generic key map first and classifies by discriminating keys rather
// than attempting each concrete type in order: a task carries kind, id
// and status; an event carries a data payload.
func classifyResult(result json.RawMessage) (resultKind, *taskResult, *eventResult) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(result, &keys); err != nil {
		return resultOther, nil, nil
	}

	if _, hasID := keys["id"]; hasID {
		if _, hasStatus := keys["status"]; hasStatus {
			var task taskResult
			if err := json.Unmarshal(result, &task); err == nil {
				return resultTask, &task, nil
			}
		}
	}

	if _, hasData := keys["data"]; hasData {
		var event eventResult
		if err := json.Unmarshal(result, &event); err == nil {
			return resultEvent, nil, &event
		}
	}

	return resultOther, nil, nil
}

// extractUIMessage pulls a UI message out of an event result's data: an
// object carrying one of the recognized message keys decodes as a
// message envelope.
func extractUIMessage(data json.RawMessage) (a2ui.Message, bool) {
	if len(data) == 0 {
		return nil, false
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, false
	}

	recognized := false
	for _, key := range embeddedMessageKeys {
		if _, ok := keys[key]; ok {
			recognized = true
			break
		}
	}
	if !recognized {
		if _, ok := keys["userAction"]; !ok {
			return nil, false
		}
	}

	msg, err := a2ui.DecodeMessage(data)
	if err != nil {
		return nil, false
	}
	return msg, true
}
