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

package datamodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
)

func TestSetGetRoundTrip(t *testing.T) {
	m := New()

	require.True(t, m.SetString("/name", "Alice"))
	s, ok := m.GetString("/name")
	require.True(t, ok)
	assert.Equal(t, "Alice", s)

	require.True(t, m.SetNumber("/count", 42))
	n, ok := m.GetNumber("/count")
	require.True(t, ok)
	assert.Equal(t, 42.0, n)

	require.True(t, m.SetBool("/enabled", true))
	b, ok := m.GetBool("/enabled")
	require.True(t, ok)
	assert.True(t, b)
}

func TestVersionStrictlyIncreases(t *testing.T) {
	m := New()
	v0 := m.Version()

	m.SetString("/a", "1")
	v1 := m.Version()
	assert.Greater(t, v1, v0)

	m.SetString("/a", "2")
	assert.Greater(t, m.Version(), v1)
}

func TestSetCreatesIntermediateObjects(t *testing.T) {
	m := New()

	require.True(t, m.SetString("/a/b/c", "deep"))

	_, ok := m.GetObject("/a")
	assert.True(t, ok)
	_, ok = m.GetObject("/a/b")
	assert.True(t, ok)

	s, ok := m.GetString("/a/b/c")
	require.True(t, ok)
	assert.Equal(t, "deep", s)
}

func TestSetCreatesIntermediateArrayForNumericSegment(t *testing.T) {
	m := New()

	require.True(t, m.SetString("/items/0/name", "first"))

	arr, ok := m.GetArray("/items")
	require.True(t, ok)
	assert.Len(t, arr, 1)

	s, ok := m.GetString("/items/0/name")
	require.True(t, ok)
	assert.Equal(t, "first", s)
}

func TestArrayIndexRules(t *testing.T) {
	m := New()
	m.Set("/items", []any{"a", "b"})
	vBefore := m.Version()

	// index == len appends
	require.True(t, m.SetString("/items/2", "c"))
	arr, _ := m.GetArray("/items")
	assert.Equal(t, []any{"a", "b", "c"}, arr)

	// index < len overwrites
	require.True(t, m.SetString("/items/0", "A"))
	arr, _ = m.GetArray("/items")
	assert.Equal(t, "A", arr[0])

	vBefore = m.Version()

	// index > len is a silent no-op
	assert.False(t, m.SetString("/items/9", "x"))
	arr, _ = m.GetArray("/items")
	assert.Len(t, arr, 3)
	assert.Equal(t, vBefore, m.Version(), "failed set must not bump version")
}

func TestIntermediateArrayExtendsWithNulls(t *testing.T) {
	m := New()
	m.Set("/items", []any{})

	require.True(t, m.SetString("/items/2/name", "third"))

	arr, _ := m.GetArray("/items")
	require.Len(t, arr, 3)
	assert.Nil(t, arr[0])
	assert.Nil(t, arr[1])

	s, ok := m.GetString("/items/2/name")
	require.True(t, ok)
	assert.Equal(t, "third", s)
}

func TestSetRootReplacesDocument(t *testing.T) {
	m := New()
	m.SetString("/old", "x")

	require.True(t, m.Set("/", map[string]any{"fresh": true}))

	_, ok := m.Get("/old")
	assert.False(t, ok)
	b, ok := m.GetBool("/fresh")
	require.True(t, ok)
	assert.True(t, b)
}

func TestDelete(t *testing.T) {
	m := New()
	m.SetString("/name", "Alice")

	require.True(t, m.Delete("/name"))
	_, ok := m.Get("/name")
	assert.False(t, ok)

	vBefore := m.Version()
	assert.False(t, m.Delete("/missing"))
	assert.Equal(t, vBefore, m.Version())
}

func TestDeleteArrayElementShifts(t *testing.T) {
	m := New()
	m.Set("/items", []any{"a", "b", "c"})

	require.True(t, m.Delete("/items/1"))

	arr, _ := m.GetArray("/items")
	assert.Equal(t, []any{"a", "c"}, arr)
}

func TestDirtyTracking(t *testing.T) {
	m := New()
	assert.False(t, m.IsDirty("/name"))

	m.SetString("/name", "Alice")
	assert.True(t, m.IsDirty("/name"))
	assert.True(t, m.IsDirty("/name/sub"), "descendant by prefix is dirty")
	assert.True(t, m.IsDirty("/na"), "ancestor by prefix is dirty")

	m.ClearDirty()
	assert.False(t, m.IsDirty("/name"))
}

func TestReplaceMarksRootDirty(t *testing.T) {
	m := New()
	v0 := m.Version()

	m.Replace(map[string]any{"x": 1.0})

	assert.True(t, m.IsDirty("/"))
	assert.Greater(t, m.Version(), v0)
	n, ok := m.GetNumber("/x")
	require.True(t, ok)
	assert.Equal(t, 1.0, n)
}

func TestApplyUpdates(t *testing.T) {
	m := New()

	updated := m.ApplyUpdates("/", []a2ui.DataContent{
		{Key: "name", Value: a2ui.DataString("Alice")},
		{Key: "count", Value: a2ui.DataNumber(2)},
		{Key: "cart", Value: a2ui.DataMap(
			a2ui.DataContent{Key: "items", Value: a2ui.DataArray(a2ui.DataString("x"))},
		)},
	})

	assert.Equal(t, []string{"/name", "/count", "/cart"}, updated)

	s, _ := m.GetString("/name")
	assert.Equal(t, "Alice", s)
	n, _ := m.GetNumber("/count")
	assert.Equal(t, 2.0, n)
	item, ok := m.GetString("/cart/items/0")
	require.True(t, ok)
	assert.Equal(t, "x", item)
}

func TestApplyUpdatesUnderBasePath(t *testing.T) {
	m := New()

	m.ApplyUpdates("/user", []a2ui.DataContent{
		{Key: "name", Value: a2ui.DataString("Bob")},
	})

	s, ok := m.GetString("/user/name")
	require.True(t, ok)
	assert.Equal(t, "Bob", s)
}

func TestCloneIsIndependent(t *testing.T) {
	m := New()
	m.Set("/items", []any{map[string]any{"n": 1.0}})

	c := m.Clone()
	assert.Equal(t, m.Version(), c.Version())

	c.SetString("/items/0/n", "mutated")

	n, ok := m.GetNumber("/items/0/n")
	require.True(t, ok)
	assert.Equal(t, 1.0, n, "clone mutation must not leak into the original")
}

func TestStore(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Contains("main"))
	assert.Nil(t, s.Get("main"))

	m := s.GetOrCreate("main")
	require.NotNil(t, m)
	assert.Same(t, m, s.GetOrCreate("main"))
	assert.True(t, s.Contains("main"))
	assert.Equal(t, []string{"main"}, s.SurfaceIDs())

	assert.Same(t, m, s.Remove("main"))
	assert.False(t, s.Contains("main"))
	assert.Nil(t, s.Remove("main"))
}
