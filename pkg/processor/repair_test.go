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
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairLeavesValidInputAlone(t *testing.T) {
	input := `[{"deleteSurface": {"surfaceId": "a"}}]`
	assert.Equal(t, input, Repair(input))
}

func TestRepairTrailingCommas(t *testing.T) {
	input := `[{"deleteSurface": {"surfaceId": "a",}},]`

	repaired := Repair(input)
	require.True(t, json.Valid([]byte(repaired)))

	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &got))

	var want []map[string]any
	require.NoError(t, json.Unmarshal([]byte(`[{"deleteSurface": {"surfaceId": "a"}}]`), &want))
	assert.Equal(t, want, got, "same structure as the comma-free equivalent")
}

func TestRepairStripsComments(t *testing.T) {
	input := `[
		// the surface to drop
		{"deleteSurface": {"surfaceId": "a"}} /* done */
	]`

	repaired := Repair(input)
	require.True(t, json.Valid([]byte(repaired)))
	assert.NotContains(t, repaired, "//")
	assert.NotContains(t, repaired, "/*")
}

func TestRepairKeepsSlashesInsideStrings(t *testing.T) {
	input := `[{"dataModelUpdate": {"surfaceId": "s", "contents": [{"key": "url", "valueString": "https://example.com/a"}]}}]`

	repaired := Repair(input)
	require.True(t, json.Valid([]byte(repaired)))
	assert.Contains(t, repaired, "https://example.com/a")
}

func TestRepairClosesTruncatedDocument(t *testing.T) {
	input := `[{"beginRendering": {"surfaceId": "main", "root": "r`

	repaired := Repair(input)
	require.True(t, json.Valid([]byte(repaired)), "got %q", repaired)

	var msgs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &msgs))
	require.Len(t, msgs, 1)
}

func TestRepairTruncatesToLastCompleteElement(t *testing.T) {
	input := `[{"deleteSurface": {"surfaceId": "a"}}, {"beginRendering": {"surfaceId": "b", "root":`

	repaired := Repair(input)
	require.True(t, json.Valid([]byte(repaired)), "got %q", repaired)

	var msgs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &msgs))
	require.Len(t, msgs, 1, "only the fully-formed leading element survives")
	assert.Contains(t, msgs[0], "deleteSurface")
}

func TestRepairRebalancesComponentLines(t *testing.T) {
	// First component line is missing its final closer.
	input := "[\n" +
		"{\"id\": \"a\", \"component\": {\"Divider\": {}},\n" +
		"{\"id\": \"b\", \"component\": {\"Divider\": {}}}\n" +
		"]"

	repaired := Repair(input)
	require.True(t, json.Valid([]byte(repaired)), "got %q", repaired)

	var defs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &defs))
	assert.Len(t, defs, 2)
}

func TestRepairStripsExcessClosersOnComponentLine(t *testing.T) {
	input := "[\n" +
		"{\"id\": \"a\", \"component\": {\"Divider\": {}}}},\n" +
		"{\"id\": \"b\", \"component\": {\"Divider\": {}}}\n" +
		"]"

	repaired := Repair(input)
	require.True(t, json.Valid([]byte(repaired)), "got %q", repaired)

	var defs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(repaired), &defs))
	assert.Len(t, defs, 2)
}

func TestRepairDanglingComma(t *testing.T) {
	input := `{"surfaceUpdate": {"surfaceId": "s", "components": [],`

	repaired := Repair(input)
	assert.True(t, json.Valid([]byte(repaired)), "got %q", repaired)
}
