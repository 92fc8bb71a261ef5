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

// Package registry maps protocol component types to host widget
// identifiers, letting a rendering layer decide whether it can draw a
// component before attempting to. It is a pure lookup table; unknown types
// yield the zero value, never an error.
package registry

import "github.com/kadirpekel/a2ui/pkg/a2ui"

// Entry describes how one protocol component type maps onto the host
// toolkit.
type Entry struct {
	Type        a2ui.ComponentKind
	HostWidget  string
	Description string
	Implemented bool
}

// Registry holds component-type mappings.
type Registry struct {
	entries map[a2ui.ComponentKind]Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: map[a2ui.ComponentKind]Entry{}}
}

// StandardCatalog returns a registry covering every component type of the
// protocol catalog, flagged for what the reference renderer implements.
func StandardCatalog() *Registry {
	r := New()

	// Layout
	r.Register(Entry{a2ui.KindColumn, "view", "Vertical layout container", true})
	r.Register(Entry{a2ui.KindRow, "view", "Horizontal layout container", true})
	r.Register(Entry{a2ui.KindList, "portal-list", "Scrollable list with virtualization", false})
	r.Register(Entry{a2ui.KindCard, "card", "Card container with elevation", true})

	// Display
	r.Register(Entry{a2ui.KindText, "label", "Text display with usage hints", true})
	r.Register(Entry{a2ui.KindImage, "image", "Image display with fit modes", false})
	r.Register(Entry{a2ui.KindIcon, "icon", "Icon display", false})
	r.Register(Entry{a2ui.KindDivider, "divider", "Visual separator", true})

	// Interactive
	r.Register(Entry{a2ui.KindButton, "button", "Clickable button with action", true})
	r.Register(Entry{a2ui.KindTextField, "input", "Text input with two-way binding", true})
	r.Register(Entry{a2ui.KindCheckBox, "checkbox", "Boolean toggle", true})
	r.Register(Entry{a2ui.KindSlider, "slider", "Numeric range slider", true})
	r.Register(Entry{a2ui.KindMultipleChoice, "dropdown", "Selection from multiple options", false})

	// Container
	r.Register(Entry{a2ui.KindModal, "modal", "Modal dialog overlay", true})
	r.Register(Entry{a2ui.KindTabs, "tab-pill", "Tabbed interface", true})

	return r
}

// Register adds or replaces a mapping.
func (r *Registry) Register(e Entry) {
	r.entries[e.Type] = e
}

// Get returns the mapping for a component type.
func (r *Registry) Get(kind a2ui.ComponentKind) (Entry, bool) {
	e, ok := r.entries[kind]
	return e, ok
}

// GetByName returns the mapping for a component type by its catalog name.
func (r *Registry) GetByName(name string) (Entry, bool) {
	return r.Get(a2ui.ComponentKind(name))
}

// Contains reports whether a mapping exists for the component type.
func (r *Registry) Contains(kind a2ui.ComponentKind) bool {
	_, ok := r.entries[kind]
	return ok
}

// Entries returns all registered mappings.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	return out
}

// HostWidgetFor returns the host widget name for a component type, or ""
// when unmapped.
func (r *Registry) HostWidgetFor(kind a2ui.ComponentKind) string {
	return r.entries[kind].HostWidget
}

// ImplementedTypes returns the component types the host can draw.
func (r *Registry) ImplementedTypes() []a2ui.ComponentKind {
	var out []a2ui.ComponentKind
	for kind, e := range r.entries {
		if e.Implemented {
			out = append(out, kind)
		}
	}
	return out
}

// UnimplementedTypes returns the component types the host cannot draw yet.
func (r *Registry) UnimplementedTypes() []a2ui.ComponentKind {
	var out []a2ui.ComponentKind
	for kind, e := range r.entries {
		if !e.Implemented {
			out = append(out, kind)
		}
	}
	return out
}
