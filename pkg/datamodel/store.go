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

// Store maps surface ids to their data models.
type Store struct {
	models map[string]*Model
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{models: map[string]*Model{}}
}

// GetOrCreate returns the surface's model, creating an empty one on first
// access.
func (s *Store) GetOrCreate(surfaceID string) *Model {
	if m, ok := s.models[surfaceID]; ok {
		return m
	}
	m := New()
	s.models[surfaceID] = m
	return m
}

// Get returns the surface's model, or nil when the surface is unknown.
func (s *Store) Get(surfaceID string) *Model {
	return s.models[surfaceID]
}

// Remove drops the surface's model and returns it, or nil when absent.
func (s *Store) Remove(surfaceID string) *Model {
	m := s.models[surfaceID]
	delete(s.models, surfaceID)
	return m
}

// Contains reports whether the surface has a model.
func (s *Store) Contains(surfaceID string) bool {
	_, ok := s.models[surfaceID]
	return ok
}

// SurfaceIDs returns the ids of all stored models.
func (s *Store) SurfaceIDs() []string {
	ids := make([]string, 0, len(s.models))
	for id := range s.models {
		ids = append(ids, id)
	}
	return ids
}
