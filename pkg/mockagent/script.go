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

package mockagent

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/kadirpekel/a2ui/pkg/a2ui"
)

// LoadScript reads a script file: a JSON array of UI message envelopes,
// each streamed as one frame. Every entry is checked to decode as a
// protocol message so a bad script fails at startup rather than
// mid-conversation.
func LoadScript(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript validates raw script content.
func ParseScript(data []byte) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("script must be a JSON array of messages: %w", err)
	}

	for i, entry := range entries {
		if _, err := a2ui.DecodeMessage(entry); err != nil {
			return nil, fmt.Errorf("script entry %d: %w", i, err)
		}
	}
	return entries, nil
}
