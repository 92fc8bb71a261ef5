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

package a2ui

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringValueUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantLiteral bool
		wantValue   string
		wantPath    string
	}{
		{
			name:        "literal",
			input:       `{"literalString": "Hello World"}`,
			wantLiteral: true,
			wantValue:   "Hello World",
		},
		{
			name:     "path",
			input:    `{"path": "/user/name"}`,
			wantPath: "/user/name",
		},
		{
			name:        "literal wins over path",
			input:       `{"literalString": "x", "path": "/y"}`,
			wantLiteral: true,
			wantValue:   "x",
		},
		{
			name:        "empty literal is still a literal",
			input:       `{"literalString": ""}`,
			wantLiteral: true,
			wantValue:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v StringValue
			require.NoError(t, json.Unmarshal([]byte(tt.input), &v))
			assert.Equal(t, tt.wantLiteral, v.IsLiteral())
			if tt.wantLiteral {
				assert.Equal(t, tt.wantValue, *v.Literal)
			} else {
				assert.True(t, v.IsPath())
				assert.Equal(t, tt.wantPath, v.Path)
			}
		})
	}
}

func TestStringValueRoundTrip(t *testing.T) {
	for _, v := range []StringValue{StringLiteral("hi"), StringPath("/a/b")} {
		data, err := json.Marshal(v)
		require.NoError(t, err)

		var back StringValue
		require.NoError(t, json.Unmarshal(data, &back))
		assert.Equal(t, v, back)
	}
}

func TestNumberValueUnmarshal(t *testing.T) {
	var v NumberValue
	require.NoError(t, json.Unmarshal([]byte(`{"literalNumber": 42}`), &v))
	require.True(t, v.IsLiteral())
	assert.Equal(t, 42.0, *v.Literal)

	require.NoError(t, json.Unmarshal([]byte(`{"path": "/count"}`), &v))
	assert.True(t, v.IsPath())
	assert.Equal(t, "/count", v.Path)
}

func TestBooleanValueUnmarshal(t *testing.T) {
	var v BooleanValue
	require.NoError(t, json.Unmarshal([]byte(`{"literalBoolean": true}`), &v))
	require.True(t, v.IsLiteral())
	assert.True(t, *v.Literal)

	require.NoError(t, json.Unmarshal([]byte(`{"path": "/enabled"}`), &v))
	assert.True(t, v.IsPath())
}

func TestValueLiteralOr(t *testing.T) {
	assert.Equal(t, "x", StringLiteral("x").LiteralOr("fallback"))
	assert.Equal(t, "fallback", StringPath("/p").LiteralOr("fallback"))
	assert.Equal(t, 7.0, NumberLiteral(7).LiteralOr(0))
	assert.Equal(t, 0.0, NumberPath("/p").LiteralOr(0))
	assert.True(t, BoolLiteral(true).LiteralOr(false))
	assert.False(t, BoolPath("/p").LiteralOr(false))
}
