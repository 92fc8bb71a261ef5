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

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
)

var catalogKinds = []a2ui.ComponentKind{
	a2ui.KindColumn, a2ui.KindRow, a2ui.KindList, a2ui.KindCard,
	a2ui.KindText, a2ui.KindImage, a2ui.KindIcon, a2ui.KindDivider,
	a2ui.KindButton, a2ui.KindTextField, a2ui.KindCheckBox,
	a2ui.KindSlider, a2ui.KindMultipleChoice, a2ui.KindModal, a2ui.KindTabs,
}

func TestStandardCatalogCoversAllKinds(t *testing.T) {
	r := StandardCatalog()

	for _, kind := range catalogKinds {
		assert.True(t, r.Contains(kind), "missing mapping for %s", kind)
	}
	assert.Len(t, r.Entries(), len(catalogKinds))
}

func TestGet(t *testing.T) {
	r := StandardCatalog()

	e, ok := r.Get(a2ui.KindButton)
	require.True(t, ok)
	assert.Equal(t, "button", e.HostWidget)
	assert.True(t, e.Implemented)

	_, ok = r.Get(a2ui.ComponentKind("Carousel"))
	assert.False(t, ok)
	assert.Equal(t, "", r.HostWidgetFor(a2ui.ComponentKind("Carousel")))
}

func TestGetByName(t *testing.T) {
	r := StandardCatalog()

	e, ok := r.GetByName("Text")
	require.True(t, ok)
	assert.Equal(t, a2ui.KindText, e.Type)

	_, ok = r.GetByName("NotAComponent")
	assert.False(t, ok)
}

func TestImplementedSplit(t *testing.T) {
	r := StandardCatalog()

	implemented := r.ImplementedTypes()
	unimplemented := r.UnimplementedTypes()

	assert.Contains(t, implemented, a2ui.KindButton)
	assert.Contains(t, implemented, a2ui.KindText)
	assert.Contains(t, unimplemented, a2ui.KindList)
	assert.Contains(t, unimplemented, a2ui.KindImage)
	assert.Contains(t, unimplemented, a2ui.KindIcon)
	assert.Contains(t, unimplemented, a2ui.KindMultipleChoice)
	assert.Len(t, implemented, len(catalogKinds)-4)
}

func TestRegisterReplaces(t *testing.T) {
	r := StandardCatalog()
	r.Register(Entry{Type: a2ui.KindList, HostWidget: "portal-list", Implemented: true})

	e, ok := r.Get(a2ui.KindList)
	require.True(t, ok)
	assert.True(t, e.Implemented)
}
