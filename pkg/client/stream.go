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
	"fmt"
	"log/slog"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
	"github.com/kadirpekel/a2ui/pkg/sse"
)

// StreamEvent is something a message stream yields to its consumer.
//
// Concrete types: MessageEvent, TaskStatusEvent, ErrorEvent.
type StreamEvent interface {
	streamEvent()
}

// MessageEvent carries one decoded UI protocol message.
type MessageEvent struct {
	Message a2ui.Message
}

// TaskStatusEvent reports the agent-side task lifecycle.
type TaskStatusEvent struct {
	TaskID string
	State  string
}

// ErrorEvent carries a transport failure or a JSON-RPC error frame.
// Only transport failures terminate the stream; a JSON-RPC error on a
// single frame leaves the stream open.
type ErrorEvent struct {
	Err error
}

func (MessageEvent) streamEvent()    {}
func (TaskStatusEvent) streamEvent() {}
func (ErrorEvent) streamEvent()      {}

// EventStream consumes a streaming RPC response frame by frame. It is
// owned by a single consumer.
type EventStream struct {
	events <-chan sse.Event
	onTask func(taskID string)
	logger *slog.Logger
	taskID string
	done   bool
}

// TaskID returns the task id announced on this stream, or "".
func (s *EventStream) TaskID() string { return s.taskID }

// Done reports whether the stream has ended.
func (s *EventStream) Done() bool { return s.done }

// Next blocks for the next consumable event. ok is false once the
// stream has ended; frames that carry nothing for the consumer
// (keep-alives, opaque results, unparseable data) are skipped.
func (s *EventStream) Next() (StreamEvent, bool) {
	if s.done {
		return nil, false
	}
	for raw := range s.events {
		if event, ok := s.handle(raw); ok {
			return event, true
		}
		if s.done {
			return nil, false
		}
	}
	s.done = true
	return nil, false
}

// Poll returns the next consumable event without blocking. ok is false
// when no event is ready yet or the stream has ended; check Done to
// tell the two apart.
func (s *EventStream) Poll() (StreamEvent, bool) {
	if s.done {
		return nil, false
	}
	for {
		select {
		case raw, open := <-s.events:
			if !open {
				s.done = true
				return nil, false
			}
			if event, ok := s.handle(raw); ok {
				return event, true
			}
			if s.done {
				return nil, false
			}
		default:
			return nil, false
		}
	}
}

func (s *EventStream) handle(raw sse.Event) (StreamEvent, bool) {
	switch raw.Type {
	case sse.EventComment:
		return nil, false
	case sse.EventError:
		s.done = true
		return ErrorEvent{Err: raw.Err}, true
	case sse.EventDone:
		s.done = true
		return nil, false
	case sse.EventData:
		return s.handleData(raw.Data)
	default:
		return nil, false
	}
}

func (s *EventStream) handleData(data string) (StreamEvent, bool) {
	var response rpcResponse
	if err := json.Unmarshal([]byte(data), &response); err != nil || (response.Result == nil && response.Error == nil) {
		// Not an RPC envelope; the frame may be a bare UI message.
		if msg, err := a2ui.DecodeMessage([]byte(data)); err == nil {
			return MessageEvent{Message: msg}, true
		}
		s.logger.Warn("skipping unparseable stream frame", "frame", truncateForLog(data))
		return nil, false
	}

	if response.Error != nil {
		return ErrorEvent{Err: fmt.Errorf("rpc error %d: %s", response.Error.Code, response.Error.Message)}, true
	}

	kind, task, event := classifyResult(response.Result)
	switch kind {
	case resultTask:
		s.taskID = task.ID
		if s.onTask != nil {
			s.onTask(task.ID)
		}
		return TaskStatusEvent{TaskID: task.ID, State: task.Status.State}, true
	case resultEvent:
		if msg, ok := extractUIMessage(event.Data); ok {
			return MessageEvent{Message: msg}, true
		}
		return nil, false
	default:
		return nil, false
	}
}

func truncateForLog(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
