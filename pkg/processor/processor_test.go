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

package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
)

func TestProcessBeginRendering(t *testing.T) {
	p := NewWithStandardCatalog()

	events := p.ProcessMessage(&a2ui.BeginRendering{SurfaceID: "main", Root: "root"})

	require.Len(t, events, 1)
	assert.Equal(t, SurfaceCreated{SurfaceID: "main"}, events[0])

	surface := p.Surface("main")
	require.NotNil(t, surface)
	assert.Equal(t, "root", surface.Root)
	assert.True(t, surface.NeedsRedraw)
	require.NotNil(t, p.DataModel("main"))
}

func TestProcessSurfaceUpdate(t *testing.T) {
	p := NewWithStandardCatalog()
	p.ProcessMessage(&a2ui.BeginRendering{SurfaceID: "main", Root: "root"})

	hello := "Hello"
	events := p.ProcessMessage(&a2ui.SurfaceUpdate{
		SurfaceID: "main",
		Components: []a2ui.ComponentDefinition{
			{ID: "title", Component: a2ui.Component{Text: &a2ui.TextComponent{
				Text:      a2ui.StringValue{Literal: &hello},
				UsageHint: a2ui.TextH1,
			}}},
		},
	})

	require.Len(t, events, 1)
	updated, ok := events[0].(SurfaceUpdated)
	require.True(t, ok)
	assert.Equal(t, []string{"title"}, updated.UpdatedComponents)

	def, ok := p.Surface("main").Component("title")
	require.True(t, ok)
	assert.Equal(t, a2ui.KindText, def.Component.Kind())
}

func TestSurfaceUpdateCreatesSurfaceImplicitly(t *testing.T) {
	p := NewWithStandardCatalog()

	events := p.ProcessMessage(&a2ui.SurfaceUpdate{
		SurfaceID: "popup",
		Components: []a2ui.ComponentDefinition{
			{ID: "x", Component: a2ui.Component{Divider: &a2ui.DividerComponent{}}},
		},
	})

	require.Len(t, events, 1)
	assert.IsType(t, SurfaceUpdated{}, events[0])

	surface := p.Surface("popup")
	require.NotNil(t, surface)
	assert.Equal(t, "", surface.Root)
	require.NotNil(t, p.DataModel("popup"))
}

func TestProcessDataModelUpdate(t *testing.T) {
	p := NewWithStandardCatalog()
	p.ProcessMessage(&a2ui.BeginRendering{SurfaceID: "main", Root: "root"})

	events := p.ProcessMessage(&a2ui.DataModelUpdate{
		SurfaceID: "main",
		Path:      "/",
		Contents:  []a2ui.DataContent{{Key: "name", Value: a2ui.DataString("Alice")}},
	})

	require.Len(t, events, 1)
	updated, ok := events[0].(DataModelUpdated)
	require.True(t, ok)
	assert.Equal(t, []string{"/name"}, updated.UpdatedPaths)

	name, ok := p.DataModel("main").GetString("/name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name)
	assert.True(t, p.Surface("main").NeedsRedraw)
}

func TestProcessDeleteSurface(t *testing.T) {
	p := NewWithStandardCatalog()
	p.ProcessMessage(&a2ui.BeginRendering{SurfaceID: "main", Root: "root"})

	events := p.ProcessMessage(&a2ui.DeleteSurface{SurfaceID: "main"})

	require.Len(t, events, 1)
	assert.Equal(t, SurfaceDeleted{SurfaceID: "main"}, events[0])
	assert.Nil(t, p.Surface("main"))
	assert.Nil(t, p.DataModel("main"))
}

func TestUserActionIsQueuedNotApplied(t *testing.T) {
	p := NewWithStandardCatalog()

	events := p.ProcessMessage(&a2ui.UserAction{
		SurfaceID: "main",
		Action:    a2ui.ActionPayload{Name: "submit"},
	})

	assert.Empty(t, events)

	actions := p.TakePendingActions()
	require.Len(t, actions, 1)
	assert.Equal(t, "submit", actions[0].Action.Name)
	assert.Empty(t, p.TakePendingActions(), "queue drains on take")
}

func TestProcessMessagesFoldsInOrder(t *testing.T) {
	p := NewWithStandardCatalog()

	events := p.ProcessMessages([]a2ui.Message{
		&a2ui.BeginRendering{SurfaceID: "main", Root: "root"},
		&a2ui.DataModelUpdate{
			SurfaceID: "main",
			Path:      "/",
			Contents:  []a2ui.DataContent{{Key: "n", Value: a2ui.DataNumber(1)}},
		},
		&a2ui.DeleteSurface{SurfaceID: "main"},
	})

	require.Len(t, events, 3)
	assert.IsType(t, SurfaceCreated{}, events[0])
	assert.IsType(t, DataModelUpdated{}, events[1])
	assert.IsType(t, SurfaceDeleted{}, events[2])
	assert.Nil(t, p.Surface("main"), "later messages see earlier effects")
}

func TestCreateAction(t *testing.T) {
	p := NewWithStandardCatalog()
	p.ProcessMessage(&a2ui.BeginRendering{SurfaceID: "main", Root: "root"})
	p.DataModel("main").SetString("/user/name", "Bob")
	p.DataModel("main").SetNumber("/cart/total", 99.5)

	hello := "Hello"
	def := a2ui.ActionDefinition{
		Name: "checkout",
		Context: []a2ui.ActionContextItem{
			{Key: "greeting", Value: a2ui.ActionValue{String: &a2ui.StringValue{Literal: &hello}}},
			{Key: "user", Value: a2ui.ActionValue{String: &a2ui.StringValue{Path: "/user/name"}}},
			{Key: "total", Value: a2ui.ActionValue{Number: &a2ui.NumberValue{Path: "/cart/total"}}},
			{Key: "missing", Value: a2ui.ActionValue{String: &a2ui.StringValue{Path: "/nope"}}},
		},
	}

	action := p.CreateAction("main", "checkout-btn", def, "")

	assert.Equal(t, "main", action.SurfaceID)
	assert.Equal(t, "checkout-btn", action.ComponentID)
	assert.Equal(t, "checkout", action.Action.Name)
	assert.Equal(t, "Hello", action.Action.Context["greeting"])
	assert.Equal(t, "Bob", action.Action.Context["user"])
	assert.Equal(t, 99.5, action.Action.Context["total"])
	assert.Nil(t, action.Action.Context["missing"], "lookup miss resolves to null")
}

func TestCreateActionWithTemplateScope(t *testing.T) {
	p := NewWithStandardCatalog()
	p.ProcessMessage(&a2ui.BeginRendering{SurfaceID: "main", Root: "root"})
	p.DataModel("main").Set("/products", []any{
		map[string]any{"sku": "A1"},
		map[string]any{"sku": "B2"},
	})

	def := a2ui.ActionDefinition{
		Name: "addToCart",
		Context: []a2ui.ActionContextItem{
			{Key: "sku", Value: a2ui.ActionValue{String: &a2ui.StringValue{Path: "sku"}}},
		},
	}

	action := p.CreateAction("main", "buy-1", def, "/products/1")
	assert.Equal(t, "B2", action.Action.Context["sku"])
}

func TestSnapshotIsIndependent(t *testing.T) {
	p := NewWithStandardCatalog()
	p.ProcessMessage(&a2ui.BeginRendering{SurfaceID: "main", Root: "root"})
	p.ProcessMessage(&a2ui.SurfaceUpdate{
		SurfaceID: "main",
		Components: []a2ui.ComponentDefinition{
			{ID: "d", Component: a2ui.Component{Divider: &a2ui.DividerComponent{}}},
		},
	})
	p.DataModel("main").SetString("/x", "1")

	surface, model, ok := p.Snapshot("main")
	require.True(t, ok)

	// Mutating the snapshot must not leak back.
	delete(surface.Components, "d")
	model.SetString("/x", "mutated")

	_, stillThere := p.Surface("main").Component("d")
	assert.True(t, stillThere)
	x, _ := p.DataModel("main").GetString("/x")
	assert.Equal(t, "1", x)

	_, _, ok = p.Snapshot("ghost")
	assert.False(t, ok)
}

func TestProcessJSONArray(t *testing.T) {
	p := NewWithStandardCatalog()

	events, err := p.ProcessJSON(`[
		{"beginRendering": {"surfaceId": "main", "root": "root"}},
		{"dataModelUpdate": {"surfaceId": "main", "contents": [{"key": "name", "valueString": "Alice"}]}}
	]`)

	require.NoError(t, err)
	require.Len(t, events, 2)

	name, ok := p.DataModel("main").GetString("/name")
	require.True(t, ok)
	assert.Equal(t, "Alice", name)
}

func TestProcessJSONSingleMessage(t *testing.T) {
	p := NewWithStandardCatalog()

	events, err := p.ProcessJSON(`{"beginRendering": {"surfaceId": "main", "root": "root"}}`)

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.IsType(t, SurfaceCreated{}, events[0])
}

func TestProcessJSONSalvagesSiblingsOfMalformedElement(t *testing.T) {
	p := NewWithStandardCatalog()

	events, err := p.ProcessJSON(`[
		{"beginRendering": {"surfaceId": "main", "root": "root"}},
		{"notAMessageKind": {}},
		{"surfaceUpdate": {"surfaceId": "main", "components": []}}
	]`)

	require.NoError(t, err)
	require.Len(t, events, 2, "valid elements around a malformed one still apply")
	assert.IsType(t, SurfaceCreated{}, events[0])
	assert.IsType(t, SurfaceUpdated{}, events[1])
}

func TestProcessJSONTruncatedBatch(t *testing.T) {
	p := NewWithStandardCatalog()

	// Cut off mid-way through the second element, as a token limit would.
	events, err := p.ProcessJSON(`[{"beginRendering": {"surfaceId": "main", "root": "root"}}, {"surfaceUpdate": {"surfaceId": "main", "components": [{"id": "t", "comp`)

	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.IsType(t, SurfaceCreated{}, events[0])
	require.NotNil(t, p.Surface("main"))
}

func TestProcessJSONUnrecoverable(t *testing.T) {
	p := NewWithStandardCatalog()

	_, err := p.ProcessJSON(`this is not even close to json`)
	assert.Error(t, err)
}
