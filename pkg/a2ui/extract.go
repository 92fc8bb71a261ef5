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

import "strings"

const (
	fenceOpen  = "```a2ui"
	fenceClose = "```"
)

// ExtractFenced splits a model response into the UI payload of its first
// ```a2ui fenced block and the surrounding human-visible text. When the
// opening fence is present but the closing fence is missing (truncated
// output), the payload runs to the end of the text. Returns ok=false and
// the input unchanged when no fence is found.
func ExtractFenced(text string) (payload, remainder string, ok bool) {
	start := strings.Index(text, fenceOpen)
	if start < 0 {
		return "", text, false
	}

	body := text[start+len(fenceOpen):]
	before := text[:start]

	end := strings.Index(body, fenceClose)
	if end < 0 {
		return strings.TrimSpace(body), strings.TrimSpace(before), true
	}

	payload = strings.TrimSpace(body[:end])
	after := body[end+len(fenceClose):]
	remainder = strings.TrimSpace(strings.TrimSpace(before) + "\n" + strings.TrimSpace(after))
	return payload, remainder, true
}
