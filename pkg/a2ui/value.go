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

import "encoding/json"

// StringValue is a string that is either a literal or a data-bound path.
//
// Wire forms:
//
//	{"literalString": "Hello World"}
//	{"path": "/user/name"}
//
// Exactly one variant is active. A path value never resolves itself;
// resolution against a data model (and optional template scope) is the
// caller's job.
type StringValue struct {
	Literal *string
	Path    string
}

// StringLiteral creates a literal string value.
func StringLiteral(s string) StringValue {
	return StringValue{Literal: &s}
}

// StringPath creates a path-bound string value.
func StringPath(p string) StringValue {
	return StringValue{Path: p}
}

// IsLiteral reports whether this is a literal value.
func (v StringValue) IsLiteral() bool { return v.Literal != nil }

// IsPath reports whether this is a path reference.
func (v StringValue) IsPath() bool { return v.Literal == nil && v.Path != "" }

// LiteralOr returns the literal value, or def if this is not a literal.
func (v StringValue) LiteralOr(def string) string {
	if v.Literal != nil {
		return *v.Literal
	}
	return def
}

func (v StringValue) MarshalJSON() ([]byte, error) {
	if v.Literal != nil {
		return json.Marshal(map[string]string{"literalString": *v.Literal})
	}
	return json.Marshal(map[string]string{"path": v.Path})
}

func (v *StringValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		LiteralString *string `json:"literalString"`
		Path          string  `json:"path"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.LiteralString != nil {
		*v = StringValue{Literal: raw.LiteralString}
		return nil
	}
	*v = StringValue{Path: raw.Path}
	return nil
}

// NumberValue is a number that is either a literal or a data-bound path.
//
// Wire forms:
//
//	{"literalNumber": 42}
//	{"path": "/count"}
type NumberValue struct {
	Literal *float64
	Path    string
}

// NumberLiteral creates a literal number value.
func NumberLiteral(n float64) NumberValue {
	return NumberValue{Literal: &n}
}

// NumberPath creates a path-bound number value.
func NumberPath(p string) NumberValue {
	return NumberValue{Path: p}
}

// IsLiteral reports whether this is a literal value.
func (v NumberValue) IsLiteral() bool { return v.Literal != nil }

// IsPath reports whether this is a path reference.
func (v NumberValue) IsPath() bool { return v.Literal == nil && v.Path != "" }

// LiteralOr returns the literal value, or def if this is not a literal.
func (v NumberValue) LiteralOr(def float64) float64 {
	if v.Literal != nil {
		return *v.Literal
	}
	return def
}

func (v NumberValue) MarshalJSON() ([]byte, error) {
	if v.Literal != nil {
		return json.Marshal(map[string]float64{"literalNumber": *v.Literal})
	}
	return json.Marshal(map[string]string{"path": v.Path})
}

func (v *NumberValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		LiteralNumber *float64 `json:"literalNumber"`
		Path          string   `json:"path"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.LiteralNumber != nil {
		*v = NumberValue{Literal: raw.LiteralNumber}
		return nil
	}
	*v = NumberValue{Path: raw.Path}
	return nil
}

// BooleanValue is a boolean that is either a literal or a data-bound path.
//
// Wire forms:
//
//	{"literalBoolean": true}
//	{"path": "/enabled"}
type BooleanValue struct {
	Literal *bool
	Path    string
}

// BoolLiteral creates a literal boolean value.
func BoolLiteral(b bool) BooleanValue {
	return BooleanValue{Literal: &b}
}

// BoolPath creates a path-bound boolean value.
func BoolPath(p string) BooleanValue {
	return BooleanValue{Path: p}
}

// IsLiteral reports whether this is a literal value.
func (v BooleanValue) IsLiteral() bool { return v.Literal != nil }

// IsPath reports whether this is a path reference.
func (v BooleanValue) IsPath() bool { return v.Literal == nil && v.Path != "" }

// LiteralOr returns the literal value, or def if this is not a literal.
func (v BooleanValue) LiteralOr(def bool) bool {
	if v.Literal != nil {
		return *v.Literal
	}
	return def
}

func (v BooleanValue) MarshalJSON() ([]byte, error) {
	if v.Literal != nil {
		return json.Marshal(map[string]bool{"literalBoolean": *v.Literal})
	}
	return json.Marshal(map[string]string{"path": v.Path})
}

func (v *BooleanValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		LiteralBoolean *bool  `json:"literalBoolean"`
		Path           string `json:"path"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.LiteralBoolean != nil {
		*v = BooleanValue{Literal: raw.LiteralBoolean}
		return nil
	}
	*v = BooleanValue{Path: raw.Path}
	return nil
}
