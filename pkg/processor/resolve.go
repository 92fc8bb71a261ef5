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
	"fmt"
	"strings"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
	"github.com/kadirpekel/a2ui/pkg/datamodel"
)

// ResolvePath combines a bound path with an optional template scope:
//
//   - a path starting with "/" is absolute and used verbatim
//   - a relative path with a scope becomes scope + "/" + path
//   - a relative path without a scope becomes "/" + path
//
// The asymmetry between the last two cases is part of the protocol's
// observed behavior and decides whether template-bound values leak across
// sibling items; it must not be "fixed".
func ResolvePath(path, scope string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	if scope != "" {
		return scope + "/" + path
	}
	return "/" + path
}

// ResolveString resolves a string value against a model with no scope.
func ResolveString(v a2ui.StringValue, model *datamodel.Model) string {
	return ResolveStringScoped(v, model, "")
}

// ResolveStringScoped resolves a string value under a template scope.
// A path lookup miss resolves to "".
func ResolveStringScoped(v a2ui.StringValue, model *datamodel.Model, scope string) string {
	if v.Literal != nil {
		return *v.Literal
	}
	s, _ := model.GetString(ResolvePath(v.Path, scope))
	return s
}

// ResolveNumber resolves a number value against a model with no scope.
func ResolveNumber(v a2ui.NumberValue, model *datamodel.Model) float64 {
	return ResolveNumberScoped(v, model, "")
}

// ResolveNumberScoped resolves a number value under a template scope.
// A path lookup miss resolves to 0.
func ResolveNumberScoped(v a2ui.NumberValue, model *datamodel.Model, scope string) float64 {
	if v.Literal != nil {
		return *v.Literal
	}
	n, _ := model.GetNumber(ResolvePath(v.Path, scope))
	return n
}

// ResolveBool resolves a boolean value against a model with no scope.
func ResolveBool(v a2ui.BooleanValue, model *datamodel.Model) bool {
	return ResolveBoolScoped(v, model, "")
}

// ResolveBoolScoped resolves a boolean value under a template scope.
// A path lookup miss resolves to false.
func ResolveBoolScoped(v a2ui.BooleanValue, model *datamodel.Model, scope string) bool {
	if v.Literal != nil {
		return *v.Literal
	}
	b, _ := model.GetBool(ResolvePath(v.Path, scope))
	return b
}

// TemplateScopes returns the per-item scope paths a template reference
// instantiates under: dataBinding/<index> for each element of the bound
// array. A binding that does not resolve to an array yields nothing.
func TemplateScopes(model *datamodel.Model, tpl a2ui.TemplateRef) []string {
	arr, ok := model.GetArray(tpl.DataBinding)
	if !ok {
		return nil
	}
	scopes := make([]string, len(arr))
	for i := range arr {
		scopes[i] = fmt.Sprintf("%s/%d", tpl.DataBinding, i)
	}
	return scopes
}
