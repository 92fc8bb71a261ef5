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
	"fmt"
)

// DataContent is one key/value pair of a dataModelUpdate. The value's
// variant key sits alongside the key on the wire:
//
//	{"key": "name", "valueString": "Alice"}
//	{"key": "items", "valueArray": [{"valueMap": [...]}]}
type DataContent struct {
	Key   string
	Value DataValue
}

func (c DataContent) MarshalJSON() ([]byte, error) {
	variant, payload, err := c.Value.variant()
	if err != nil {
		return nil, err
	}
	key, _ := json.Marshal(c.Key)
	return json.Marshal(map[string]json.RawMessage{
		"key":   key,
		variant: payload,
	})
}

func (c *DataContent) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = DataContent{}
	if key, ok := raw["key"]; ok {
		if err := json.Unmarshal(key, &c.Key); err != nil {
			return fmt.Errorf("data content key: %w", err)
		}
	}
	delete(raw, "key")
	return c.Value.fromVariants(raw)
}

// DataValue is the recursive union of typed values a dataModelUpdate may
// carry. Exactly one field is non-nil. Map entries keep their wire order.
type DataValue struct {
	String  *string
	Number  *float64
	Boolean *bool
	Map     []DataContent
	Array   []DataValue
}

// DataString creates a string value.
func DataString(s string) DataValue { return DataValue{String: &s} }

// DataNumber creates a number value.
func DataNumber(n float64) DataValue { return DataValue{Number: &n} }

// DataBool creates a boolean value.
func DataBool(b bool) DataValue { return DataValue{Boolean: &b} }

// DataMap creates a map value from key/value entries.
func DataMap(entries ...DataContent) DataValue { return DataValue{Map: entries} }

// DataArray creates an array value.
func DataArray(values ...DataValue) DataValue { return DataValue{Array: values} }

func (v DataValue) variant() (string, json.RawMessage, error) {
	switch {
	case v.String != nil:
		raw, err := json.Marshal(*v.String)
		return "valueString", raw, err
	case v.Number != nil:
		raw, err := json.Marshal(*v.Number)
		return "valueNumber", raw, err
	case v.Boolean != nil:
		raw, err := json.Marshal(*v.Boolean)
		return "valueBoolean", raw, err
	case v.Map != nil:
		raw, err := json.Marshal(v.Map)
		return "valueMap", raw, err
	case v.Array != nil:
		raw, err := json.Marshal(v.Array)
		return "valueArray", raw, err
	default:
		return "", nil, fmt.Errorf("data value has no active variant")
	}
}

func (v *DataValue) fromVariants(raw map[string]json.RawMessage) error {
	*v = DataValue{}
	if payload, ok := raw["valueString"]; ok {
		v.String = new(string)
		return json.Unmarshal(payload, v.String)
	}
	if payload, ok := raw["valueNumber"]; ok {
		v.Number = new(float64)
		return json.Unmarshal(payload, v.Number)
	}
	if payload, ok := raw["valueBoolean"]; ok {
		v.Boolean = new(bool)
		return json.Unmarshal(payload, v.Boolean)
	}
	if payload, ok := raw["valueMap"]; ok {
		v.Map = []DataContent{}
		return json.Unmarshal(payload, &v.Map)
	}
	if payload, ok := raw["valueArray"]; ok {
		v.Array = []DataValue{}
		return json.Unmarshal(payload, &v.Array)
	}
	return fmt.Errorf("no recognized value variant among %d keys", len(raw))
}

func (v DataValue) MarshalJSON() ([]byte, error) {
	variant, payload, err := v.variant()
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage{variant: payload})
}

func (v *DataValue) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return v.fromVariants(raw)
}

// Interface converts the value into the generic document representation
// used by the data model: string, float64, bool, map[string]any, or []any.
func (v DataValue) Interface() any {
	switch {
	case v.String != nil:
		return *v.String
	case v.Number != nil:
		return *v.Number
	case v.Boolean != nil:
		return *v.Boolean
	case v.Map != nil:
		m := make(map[string]any, len(v.Map))
		for _, entry := range v.Map {
			m[entry.Key] = entry.Value.Interface()
		}
		return m
	case v.Array != nil:
		arr := make([]any, len(v.Array))
		for i, elem := range v.Array {
			arr[i] = elem.Interface()
		}
		return arr
	default:
		return nil
	}
}
