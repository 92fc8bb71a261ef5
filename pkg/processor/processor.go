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

// Package processor applies streamed A2UI protocol messages to a registry
// of surfaces and their data models, emitting change events for a rendering
// consumer. It also repairs the malformed or truncated JSON that
// agent-generated output frequently is, salvaging every message that can
// still be parsed.
//
// A Processor is not safe for concurrent use; it is owned by a single
// consumer that drains the stream.
package processor

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
	"github.com/kadirpekel/a2ui/pkg/datamodel"
	"github.com/kadirpekel/a2ui/pkg/registry"
)

// Surface is one renderable UI: a root id, optional styles, and a flat
// adjacency list of components referencing each other by id. A component
// may reference a child id that does not exist yet; renderers skip missing
// lookups.
type Surface struct {
	ID          string
	Root        string
	Styles      *a2ui.SurfaceStyles
	Components  map[string]a2ui.ComponentDefinition
	NeedsRedraw bool
}

// NewSurface creates a surface with an empty component map, marked for
// redraw.
func NewSurface(id, root string, styles *a2ui.SurfaceStyles) *Surface {
	return &Surface{
		ID:          id,
		Root:        root,
		Styles:      styles,
		Components:  map[string]a2ui.ComponentDefinition{},
		NeedsRedraw: true,
	}
}

// Component returns the definition for id.
func (s *Surface) Component(id string) (a2ui.ComponentDefinition, bool) {
	def, ok := s.Components[id]
	return def, ok
}

// ComponentIDs returns the ids of all defined components.
func (s *Surface) ComponentIDs() []string {
	ids := make([]string, 0, len(s.Components))
	for id := range s.Components {
		ids = append(ids, id)
	}
	return ids
}

// MarkDirty flags the surface for redraw.
func (s *Surface) MarkDirty() { s.NeedsRedraw = true }

// ClearDirty resets the redraw flag.
func (s *Surface) ClearDirty() { s.NeedsRedraw = false }

// Clone returns a deep copy for rendering consumers.
func (s *Surface) Clone() *Surface {
	components := make(map[string]a2ui.ComponentDefinition, len(s.Components))
	for id, def := range s.Components {
		components[id] = def
	}
	return &Surface{
		ID:          s.ID,
		Root:        s.Root,
		Styles:      s.Styles,
		Components:  components,
		NeedsRedraw: s.NeedsRedraw,
	}
}

// Event is a state change produced by message processing.
//
// Concrete types: SurfaceCreated, SurfaceUpdated, SurfaceDeleted,
// DataModelUpdated.
type Event interface {
	event()
}

// SurfaceCreated is emitted when beginRendering creates or replaces a
// surface.
type SurfaceCreated struct {
	SurfaceID string
}

// SurfaceUpdated is emitted when surfaceUpdate upserts components.
type SurfaceUpdated struct {
	SurfaceID         string
	UpdatedComponents []string
}

// SurfaceDeleted is emitted when deleteSurface removes a surface.
type SurfaceDeleted struct {
	SurfaceID string
}

// DataModelUpdated is emitted when dataModelUpdate mutates a surface's
// data model.
type DataModelUpdated struct {
	SurfaceID    string
	UpdatedPaths []string
}

func (SurfaceCreated) event()   {}
func (SurfaceUpdated) event()   {}
func (SurfaceDeleted) event()   {}
func (DataModelUpdated) event() {}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// Processor owns all surfaces and their data models, keyed by surface id.
// Nothing else mutates them; consumers get clones via Snapshot.
type Processor struct {
	registry *registry.Registry
	surfaces map[string]*Surface
	models   *datamodel.Store
	pending  []a2ui.UserAction
	logger   *slog.Logger
}

// New creates a processor over the given component registry.
func New(reg *registry.Registry, opts ...Option) *Processor {
	p := &Processor{
		registry: reg,
		surfaces: map[string]*Surface{},
		models:   datamodel.NewStore(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewWithStandardCatalog creates a processor over the standard component
// catalog.
func NewWithStandardCatalog(opts ...Option) *Processor {
	return New(registry.StandardCatalog(), opts...)
}

// Registry returns the component registry.
func (p *Processor) Registry() *registry.Registry { return p.registry }

// Surface returns the live surface for id, or nil when unknown. The
// returned surface is owned by the processor; rendering consumers should
// use Snapshot instead.
func (p *Processor) Surface(surfaceID string) *Surface {
	return p.surfaces[surfaceID]
}

// SurfaceIDs returns the ids of all active surfaces.
func (p *Processor) SurfaceIDs() []string {
	ids := make([]string, 0, len(p.surfaces))
	for id := range p.surfaces {
		ids = append(ids, id)
	}
	return ids
}

// DataModel returns the live data model for a surface, or nil when
// unknown.
func (p *Processor) DataModel(surfaceID string) *datamodel.Model {
	return p.models.Get(surfaceID)
}

// Snapshot returns deep clones of a surface and its data model for
// rendering. Consumers never receive live handles, so a frame being drawn
// cannot tear against a batch being applied.
func (p *Processor) Snapshot(surfaceID string) (*Surface, *datamodel.Model, bool) {
	surface, ok := p.surfaces[surfaceID]
	if !ok {
		return nil, nil, false
	}
	model := p.models.Get(surfaceID)
	if model == nil {
		return surface.Clone(), datamodel.New(), true
	}
	return surface.Clone(), model.Clone(), true
}

// ProcessMessage applies one message and returns the resulting events.
// UserAction messages are not applied to state; they are queued for
// outward delivery.
func (p *Processor) ProcessMessage(msg a2ui.Message) []Event {
	switch m := msg.(type) {
	case *a2ui.BeginRendering:
		return p.processBeginRendering(m)
	case *a2ui.SurfaceUpdate:
		return p.processSurfaceUpdate(m)
	case *a2ui.DataModelUpdate:
		return p.processDataModelUpdate(m)
	case *a2ui.DeleteSurface:
		return p.processDeleteSurface(m)
	case *a2ui.UserAction:
		p.pending = append(p.pending, *m)
		return nil
	default:
		return nil
	}
}

// ProcessMessages folds a batch through ProcessMessage in order. Later
// messages see the effects of earlier ones.
func (p *Processor) ProcessMessages(msgs []a2ui.Message) []Event {
	var events []Event
	for _, msg := range msgs {
		events = append(events, p.ProcessMessage(msg)...)
	}
	return events
}

// ProcessJSON repairs and parses a JSON payload of protocol messages, then
// applies everything that survives.
//
// The payload is first repaired if invalid (see Repair), then tried as a
// strict message array. When the array decodes but some elements do not
// match the message schema, the valid elements still commit; failures are
// logged and skipped. A non-array payload falls back to a single message.
// An error is returned only when nothing could be interpreted at all.
func (p *Processor) ProcessJSON(text string) ([]Event, error) {
	repaired := Repair(text)

	if msgs, err := a2ui.DecodeMessages([]byte(repaired)); err == nil {
		return p.ProcessMessages(msgs), nil
	}

	// Element-wise salvage: one malformed element must not block its
	// siblings.
	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(repaired), &elements); err == nil {
		var events []Event
		for i, element := range elements {
			msg, err := a2ui.DecodeMessage(element)
			if err != nil {
				p.logger.Warn("skipping unparseable message element",
					"index", i, "error", err)
				continue
			}
			events = append(events, p.ProcessMessage(msg)...)
		}
		return events, nil
	}

	msg, err := a2ui.DecodeMessage([]byte(repaired))
	if err != nil {
		return nil, fmt.Errorf("interpret ui payload: %w", err)
	}
	return p.ProcessMessage(msg), nil
}

// TakePendingActions drains the queued user actions.
func (p *Processor) TakePendingActions() []a2ui.UserAction {
	actions := p.pending
	p.pending = nil
	return actions
}

// QueueUserAction queues an action for outward delivery.
func (p *Processor) QueueUserAction(action a2ui.UserAction) {
	p.pending = append(p.pending, action)
}

// CreateAction resolves an action definition's context against the
// surface's data model into a concrete UserAction. scope is the template
// scope the triggering component was instantiated under, or "" outside a
// template; relative context paths resolve beneath it. Lookup misses
// resolve to nil.
func (p *Processor) CreateAction(surfaceID, componentID string, def a2ui.ActionDefinition, scope string) a2ui.UserAction {
	context := map[string]any{}

	if model := p.models.Get(surfaceID); model != nil {
		for _, item := range def.Context {
			context[item.Key] = resolveActionValue(item.Value, model, scope)
		}
	}

	return a2ui.UserAction{
		SurfaceID:   surfaceID,
		ComponentID: componentID,
		Action: a2ui.ActionPayload{
			Name:    def.Name,
			Context: context,
		},
	}
}

func resolveActionValue(v a2ui.ActionValue, model *datamodel.Model, scope string) any {
	lookup := func(path string) any {
		value, ok := model.Get(ResolvePath(path, scope))
		if !ok {
			return nil
		}
		return value
	}

	switch {
	case v.String != nil:
		if v.String.Literal != nil {
			return *v.String.Literal
		}
		return lookup(v.String.Path)
	case v.Number != nil:
		if v.Number.Literal != nil {
			return *v.Number.Literal
		}
		return lookup(v.Number.Path)
	case v.Boolean != nil:
		if v.Boolean.Literal != nil {
			return *v.Boolean.Literal
		}
		return lookup(v.Boolean.Path)
	default:
		return ""
	}
}

func (p *Processor) processBeginRendering(msg *a2ui.BeginRendering) []Event {
	p.surfaces[msg.SurfaceID] = NewSurface(msg.SurfaceID, msg.Root, msg.Styles)
	p.models.GetOrCreate(msg.SurfaceID)
	return []Event{SurfaceCreated{SurfaceID: msg.SurfaceID}}
}

func (p *Processor) processSurfaceUpdate(msg *a2ui.SurfaceUpdate) []Event {
	surface, ok := p.surfaces[msg.SurfaceID]
	if !ok {
		// An update may arrive before beginRendering; create the surface
		// implicitly with no root.
		surface = NewSurface(msg.SurfaceID, "", nil)
		p.surfaces[msg.SurfaceID] = surface
		p.models.GetOrCreate(msg.SurfaceID)
	}

	updated := make([]string, 0, len(msg.Components))
	for _, def := range msg.Components {
		updated = append(updated, def.ID)
		surface.Components[def.ID] = def
	}
	surface.MarkDirty()

	return []Event{SurfaceUpdated{SurfaceID: msg.SurfaceID, UpdatedComponents: updated}}
}

func (p *Processor) processDataModelUpdate(msg *a2ui.DataModelUpdate) []Event {
	model := p.models.GetOrCreate(msg.SurfaceID)
	updated := model.ApplyUpdates(msg.Path, msg.Contents)

	if surface, ok := p.surfaces[msg.SurfaceID]; ok {
		surface.MarkDirty()
	}

	return []Event{DataModelUpdated{SurfaceID: msg.SurfaceID, UpdatedPaths: updated}}
}

func (p *Processor) processDeleteSurface(msg *a2ui.DeleteSurface) []Event {
	delete(p.surfaces, msg.SurfaceID)
	p.models.Remove(msg.SurfaceID)
	return []Event{SurfaceDeleted{SurfaceID: msg.SurfaceID}}
}
