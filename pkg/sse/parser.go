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

// Package sse parses Server-Sent-Events streams and runs the background
// worker that turns an agent's streaming HTTP response into a channel of
// discrete events.
package sse

import "strings"

// EventType classifies a stream event.
type EventType int

const (
	// EventData is a complete data frame, flushed on a blank line.
	EventData EventType = iota
	// EventComment is a keep-alive comment line.
	EventComment
	// EventError is a terminal transport or protocol failure.
	EventError
	// EventDone marks the orderly end of a stream.
	EventDone
)

// Event is one parsed stream event. Data holds the payload for
// EventData and the comment text for EventComment; Err is set only for
// EventError.
type Event struct {
	Type EventType
	Data string
	Err  error
}

// Parser is a line-oriented SSE parser. Lines prefixed "data:"
// accumulate until a blank line flushes them as one Data event, joined
// by newlines. Comment lines (prefix ":") surface immediately. Any
// other non-empty line is ignored.
//
// Callers must Flush at stream end to recover a final frame from a
// stream that did not end on a blank line.
type Parser struct {
	buffer []string
}

// NewParser creates an empty parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseLine consumes one line without its trailing newline. The
// returned event is valid only when ok is true; data lines return
// ok=false until the blank-line flush.
func (p *Parser) ParseLine(line string) (Event, bool) {
	switch {
	case line == "":
		return p.Flush()
	case strings.HasPrefix(line, ":"):
		comment := strings.TrimPrefix(line, ":")
		comment = strings.TrimPrefix(comment, " ")
		return Event{Type: EventComment, Data: comment}, true
	case strings.HasPrefix(line, "data:"):
		data := strings.TrimPrefix(line, "data:")
		data = strings.TrimPrefix(data, " ")
		p.buffer = append(p.buffer, data)
		return Event{}, false
	default:
		// Field lines other than data (event:, id:, retry:) carry
		// nothing this protocol uses.
		return Event{}, false
	}
}

// Flush emits the pending data frame, if any.
func (p *Parser) Flush() (Event, bool) {
	if len(p.buffer) == 0 {
		return Event{}, false
	}
	data := strings.Join(p.buffer, "\n")
	p.buffer = nil
	return Event{Type: EventData, Data: data}, true
}
