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

// Package a2ui defines the wire schema of the A2UI protocol: the message
// envelopes an agent streams to progressively describe a user interface,
// the component catalog types, and the literal-or-path value unions used
// for data binding.
//
// Decoding is deliberately lenient. The JSON originates from a
// non-deterministic agent, so missing fields default instead of failing
// and unknown enum values pass through as-is. Strict validation is the
// consumer's job.
package a2ui

import (
	"encoding/json"
	"fmt"
)

// Message is one decoded A2UI protocol message.
//
// Concrete types: *BeginRendering, *SurfaceUpdate, *DataModelUpdate,
// *DeleteSurface, *UserAction.
type Message interface {
	message()
}

func (*BeginRendering) message()  {}
func (*SurfaceUpdate) message()   {}
func (*DataModelUpdate) message() {}
func (*DeleteSurface) message()   {}
func (*UserAction) message()      {}

// SurfaceID returns the surface a message applies to.
func SurfaceID(m Message) string {
	switch msg := m.(type) {
	case *BeginRendering:
		return msg.SurfaceID
	case *SurfaceUpdate:
		return msg.SurfaceID
	case *DataModelUpdate:
		return msg.SurfaceID
	case *DeleteSurface:
		return msg.SurfaceID
	case *UserAction:
		return msg.SurfaceID
	default:
		return ""
	}
}

// BeginRendering initializes a new UI surface.
//
// Wire form:
//
//	{"beginRendering": {"surfaceId": "main", "root": "root-column", "styles": {...}}}
type BeginRendering struct {
	SurfaceID string         `json:"surfaceId"`
	Root      string         `json:"root"`
	Styles    *SurfaceStyles `json:"styles,omitempty"`
}

// SurfaceStyles carries optional style hints for a surface. Keys beyond the
// well-known ones are preserved in Extra so renderers can consume custom
// styling without schema changes.
type SurfaceStyles struct {
	PrimaryColor string
	Font         string
	Extra        map[string]json.RawMessage
}

func (s *SurfaceStyles) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = SurfaceStyles{}
	for key, val := range raw {
		switch key {
		case "primaryColor":
			// Ignore non-string values.
			_ = json.Unmarshal(val, &s.PrimaryColor)
		case "font":
			_ = json.Unmarshal(val, &s.Font)
		default:
			if s.Extra == nil {
				s.Extra = make(map[string]json.RawMessage)
			}
			s.Extra[key] = val
		}
	}
	return nil
}

func (s SurfaceStyles) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(s.Extra)+2)
	for key, val := range s.Extra {
		out[key] = val
	}
	if s.PrimaryColor != "" {
		raw, _ := json.Marshal(s.PrimaryColor)
		out["primaryColor"] = raw
	}
	if s.Font != "" {
		raw, _ := json.Marshal(s.Font)
		out["font"] = raw
	}
	return json.Marshal(out)
}

// SurfaceUpdate adds or updates components in a surface's adjacency list.
type SurfaceUpdate struct {
	SurfaceID  string                `json:"surfaceId"`
	Components []ComponentDefinition `json:"components"`
}

// DataModelUpdate merges typed key/value pairs into a surface's data model
// under a base path. An absent path defaults to "/".
type DataModelUpdate struct {
	SurfaceID string        `json:"surfaceId"`
	Path      string        `json:"path"`
	Contents  []DataContent `json:"contents"`
}

func (m *DataModelUpdate) UnmarshalJSON(data []byte) error {
	type alias DataModelUpdate
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Path == "" {
		raw.Path = "/"
	}
	*m = DataModelUpdate(raw)
	return nil
}

// DeleteSurface removes a surface and its data model.
type DeleteSurface struct {
	SurfaceID string `json:"surfaceId"`
}

// UserAction is a user interaction event, sent from the client back to the
// agent with its context already resolved against the data model.
type UserAction struct {
	SurfaceID   string        `json:"surfaceId"`
	Action      ActionPayload `json:"action"`
	ComponentID string        `json:"componentId,omitempty"`
}

// ActionPayload names the triggered action and carries its resolved context.
type ActionPayload struct {
	Name    string         `json:"name"`
	Context map[string]any `json:"context,omitempty"`
}

// Envelope is the wire form of a Message: a single-key object whose key
// names the message kind.
type Envelope struct {
	BeginRendering  *BeginRendering  `json:"beginRendering,omitempty"`
	SurfaceUpdate   *SurfaceUpdate   `json:"surfaceUpdate,omitempty"`
	DataModelUpdate *DataModelUpdate `json:"dataModelUpdate,omitempty"`
	DeleteSurface   *DeleteSurface   `json:"deleteSurface,omitempty"`
	UserAction      *UserAction      `json:"userAction,omitempty"`
}

// Wrap packages a message into its wire envelope.
func Wrap(m Message) Envelope {
	var e Envelope
	switch msg := m.(type) {
	case *BeginRendering:
		e.BeginRendering = msg
	case *SurfaceUpdate:
		e.SurfaceUpdate = msg
	case *DataModelUpdate:
		e.DataModelUpdate = msg
	case *DeleteSurface:
		e.DeleteSurface = msg
	case *UserAction:
		e.UserAction = msg
	}
	return e
}

// Message returns the single message held by the envelope. Classification
// is by presence of the discriminating key, checked in a fixed order.
func (e Envelope) Message() (Message, error) {
	switch {
	case e.BeginRendering != nil:
		return e.BeginRendering, nil
	case e.SurfaceUpdate != nil:
		return e.SurfaceUpdate, nil
	case e.DataModelUpdate != nil:
		return e.DataModelUpdate, nil
	case e.DeleteSurface != nil:
		return e.DeleteSurface, nil
	case e.UserAction != nil:
		return e.UserAction, nil
	default:
		return nil, fmt.Errorf("envelope contains no recognized message kind")
	}
}

// DecodeMessage decodes one protocol message from its wire envelope.
//
// The parse is two-phase: the payload is first read as a generic object,
// then classified by which discriminating key is present. Objects with no
// recognized key are an error.
func DecodeMessage(data []byte) (Message, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}

	if payload, ok := raw["beginRendering"]; ok {
		var m BeginRendering
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("decode beginRendering: %w", err)
		}
		return &m, nil
	}
	if payload, ok := raw["surfaceUpdate"]; ok {
		var m SurfaceUpdate
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("decode surfaceUpdate: %w", err)
		}
		return &m, nil
	}
	if payload, ok := raw["dataModelUpdate"]; ok {
		var m DataModelUpdate
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("decode dataModelUpdate: %w", err)
		}
		return &m, nil
	}
	if payload, ok := raw["deleteSurface"]; ok {
		var m DeleteSurface
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("decode deleteSurface: %w", err)
		}
		return &m, nil
	}
	if payload, ok := raw["userAction"]; ok {
		var m UserAction
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, fmt.Errorf("decode userAction: %w", err)
		}
		return &m, nil
	}

	return nil, fmt.Errorf("no recognized message kind in %d-key object", len(raw))
}

// DecodeMessages decodes a JSON array of protocol messages. Every element
// must decode; for element-wise salvage of partially valid batches see the
// processor's ProcessJSON.
func DecodeMessages(data []byte) ([]Message, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, fmt.Errorf("decode message batch: %w", err)
	}

	messages := make([]Message, 0, len(elements))
	for i, element := range elements {
		m, err := DecodeMessage(element)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}
