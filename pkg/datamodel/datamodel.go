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

// Package datamodel implements the JSON-Pointer-addressed document backing
// an A2UI surface: path-based get/set/delete with dirty-path tracking and a
// monotonic version counter for change detection.
//
// The document is the generic JSON representation (map[string]any, []any,
// string, float64, bool, nil). A Model is not safe for concurrent use; it
// is owned and mutated by a single consumer.
package datamodel

import (
	"strconv"
	"strings"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
)

// Model is one surface's mutable document.
//
// Structural failures (bad array index, wrong container kind) are silent
// no-ops: the document, dirty set, and version are left untouched. The data
// originates from a non-deterministic agent, so degraded state beats a
// crash.
type Model struct {
	data    any
	dirty   map[string]struct{}
	version uint64
}

// New creates an empty model rooted at an empty object.
func New() *Model {
	return &Model{
		data:  map[string]any{},
		dirty: map[string]struct{}{},
	}
}

// NewWithData creates a model over an existing document.
func NewWithData(data any) *Model {
	return &Model{
		data:  data,
		dirty: map[string]struct{}{},
	}
}

// Version returns the mutation counter. It strictly increases on every
// successful set, delete, or replace.
func (m *Model) Version() uint64 { return m.version }

// IsDirty reports whether path, or any recorded dirty path related to it by
// string prefix in either direction, has changed since the last ClearDirty.
//
// Prefix matching is deliberately not segment-aware ("/foo" matches
// "/foobar"); it approximates subtree dirtiness and renderers only use it
// to over-trigger redraws.
func (m *Model) IsDirty(path string) bool {
	if _, ok := m.dirty[path]; ok {
		return true
	}
	for dirty := range m.dirty {
		if strings.HasPrefix(path, dirty) || strings.HasPrefix(dirty, path) {
			return true
		}
	}
	return false
}

// ClearDirty resets the dirty set, typically after a redraw.
func (m *Model) ClearDirty() {
	m.dirty = map[string]struct{}{}
}

// DirtyPaths returns the recorded dirty paths.
func (m *Model) DirtyPaths() []string {
	paths := make([]string, 0, len(m.dirty))
	for p := range m.dirty {
		paths = append(paths, p)
	}
	return paths
}

// Data returns the root document.
func (m *Model) Data() any { return m.data }

// Get returns the value at path, or (nil, false) when the path does not
// resolve.
func (m *Model) Get(path string) (any, bool) {
	current := m.data
	for _, seg := range parsePointer(path) {
		switch node := current.(type) {
		case map[string]any:
			child, ok := node[seg]
			if !ok {
				return nil, false
			}
			current = child
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// GetString returns the string at path.
func (m *Model) GetString(path string) (string, bool) {
	v, ok := m.Get(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetNumber returns the number at path.
func (m *Model) GetNumber(path string) (float64, bool) {
	v, ok := m.Get(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// GetBool returns the boolean at path.
func (m *Model) GetBool(path string) (bool, bool) {
	v, ok := m.Get(path)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

// GetArray returns the array at path.
func (m *Model) GetArray(path string) ([]any, bool) {
	v, ok := m.Get(path)
	if !ok {
		return nil, false
	}
	arr, ok := v.([]any)
	return arr, ok
}

// GetObject returns the object at path.
func (m *Model) GetObject(path string) (map[string]any, bool) {
	v, ok := m.Get(path)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

// Set writes value at path, creating intermediate containers as needed: an
// array when the next segment parses as an integer, an object otherwise.
// Setting the root path replaces the whole document. Array leaf writes
// follow index rules: index == len appends, < len overwrites, > len is a
// silent no-op. Reports whether the document changed.
func (m *Model) Set(path string, value any) bool {
	updated, ok := setPointer(m.data, parsePointer(path), value)
	if !ok {
		return false
	}
	m.data = updated
	m.dirty[path] = struct{}{}
	m.version++
	return true
}

// SetString writes a string at path.
func (m *Model) SetString(path, value string) bool { return m.Set(path, value) }

// SetNumber writes a number at path.
func (m *Model) SetNumber(path string, value float64) bool { return m.Set(path, value) }

// SetBool writes a boolean at path.
func (m *Model) SetBool(path string, value bool) bool { return m.Set(path, value) }

// Delete removes the value at path: object keys are removed, array
// elements are removed and the remainder shifts down. Deleting the root
// resets the document to an empty object. Reports whether anything was
// removed; a miss does not change the version.
func (m *Model) Delete(path string) bool {
	segs := parsePointer(path)
	if len(segs) == 0 {
		m.data = map[string]any{}
		m.dirty[path] = struct{}{}
		m.version++
		return true
	}

	parent := m.data
	for _, seg := range segs[:len(segs)-1] {
		switch node := parent.(type) {
		case map[string]any:
			child, ok := node[seg]
			if !ok {
				return false
			}
			parent = child
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return false
			}
			parent = node[idx]
		default:
			return false
		}
	}

	last := segs[len(segs)-1]
	removed := false
	switch node := parent.(type) {
	case map[string]any:
		if _, ok := node[last]; ok {
			delete(node, last)
			removed = true
		}
	case []any:
		idx, err := strconv.Atoi(last)
		if err == nil && idx >= 0 && idx < len(node) {
			// Removing shifts the remainder down, which reallocates the
			// slice, so the result is written back through the pointer path.
			shrunk := append(append([]any{}, node[:idx]...), node[idx+1:]...)
			if updated, ok := setPointer(m.data, segs[:len(segs)-1], shrunk); ok {
				m.data = updated
				removed = true
			}
		}
	}
	if !removed {
		return false
	}
	m.dirty[path] = struct{}{}
	m.version++
	return true
}

// Replace substitutes the whole document and marks the root dirty.
func (m *Model) Replace(data any) {
	m.data = data
	m.dirty["/"] = struct{}{}
	m.version++
}

// ApplyUpdates merges a dataModelUpdate's contents under basePath. Each
// entry's key is appended to the base path and its value converted to the
// generic document representation.
func (m *Model) ApplyUpdates(basePath string, contents []a2ui.DataContent) []string {
	updated := make([]string, 0, len(contents))
	for _, content := range contents {
		var full string
		if basePath == "/" {
			full = "/" + content.Key
		} else {
			full = strings.TrimRight(basePath, "/") + "/" + content.Key
		}
		if m.Set(full, content.Value.Interface()) {
			updated = append(updated, full)
		}
	}
	return updated
}

// Clone returns a deep copy sharing nothing with the original.
func (m *Model) Clone() *Model {
	dirty := make(map[string]struct{}, len(m.dirty))
	for p := range m.dirty {
		dirty[p] = struct{}{}
	}
	return &Model{
		data:    deepCopy(m.data),
		dirty:   dirty,
		version: m.version,
	}
}

// parsePointer splits a JSON Pointer path into segments. "" and "/" are the
// root. The ~0/~1 escape sequences of RFC 6901 are not unescaped; no known
// agent emits keys containing "/" or "~".
func parsePointer(path string) []string {
	if path == "" || path == "/" {
		return nil
	}
	return strings.Split(strings.TrimPrefix(path, "/"), "/")
}

// setPointer writes value at segs under node, returning the (possibly
// replaced) node and whether the write happened.
func setPointer(node any, segs []string, value any) (any, bool) {
	if len(segs) == 0 {
		return value, true
	}

	seg := segs[0]
	last := len(segs) == 1

	switch container := node.(type) {
	case map[string]any:
		if last {
			container[seg] = value
			return container, true
		}
		child, exists := container[seg]
		if !exists {
			child = newContainerFor(segs[1])
		}
		updated, ok := setPointer(child, segs[1:], value)
		if !ok {
			return container, false
		}
		container[seg] = updated
		return container, true

	case []any:
		idx, err := strconv.Atoi(seg)
		if err != nil || idx < 0 {
			return container, false
		}
		if last {
			switch {
			case idx < len(container):
				container[idx] = value
				return container, true
			case idx == len(container):
				return append(container, value), true
			default:
				return container, false
			}
		}
		for len(container) <= idx {
			container = append(container, nil)
		}
		updated, ok := setPointer(container[idx], segs[1:], value)
		if !ok {
			return container, false
		}
		container[idx] = updated
		return container, true

	default:
		if last {
			return node, false
		}
		// A scalar in the middle of the path is replaced by an object.
		fresh := map[string]any{}
		updated, ok := setPointer(newContainerFor(segs[1]), segs[1:], value)
		if !ok {
			return node, false
		}
		fresh[seg] = updated
		return fresh, true
	}
}

func newContainerFor(nextSeg string) any {
	if _, err := strconv.Atoi(nextSeg); err == nil {
		return []any{}
	}
	return map[string]any{}
}

func deepCopy(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = deepCopy(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = deepCopy(child)
		}
		return out
	default:
		return v
	}
}
