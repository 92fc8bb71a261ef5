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
	"strings"
)

// Repair attempts to turn agent-generated JSON, which is frequently
// truncated mid-token-budget or littered with comments and trailing
// commas, into a parseable document. Strategies are applied in order of
// increasing aggressiveness, stopping at the first one that yields valid
// JSON:
//
//  1. strip // and /* */ comments (string-aware)
//  2. remove trailing commas before a closing ] or }
//  3. re-balance brace counts on lines that carry component definitions
//  4. close an unterminated string, drop a dangling ":" or ",", and append
//     every still-open bracket in LIFO order
//  5. truncate to the last fully-closed top-level array element
//
// Already-valid input is returned untouched. When every strategy fails,
// the bracket-closed form is returned and left for the parser to reject;
// salvaging something always beats rendering nothing.
func Repair(text string) string {
	if json.Valid([]byte(text)) {
		return text
	}

	repaired := stripTrailingCommas(stripComments(text))
	if json.Valid([]byte(repaired)) {
		return repaired
	}

	repaired = rebalanceComponentLines(repaired)
	if json.Valid([]byte(repaired)) {
		return repaired
	}

	closed := closeOpenBrackets(repaired)
	if json.Valid([]byte(closed)) {
		return closed
	}

	if truncated, ok := truncateToLastElement(repaired); ok && json.Valid([]byte(truncated)) {
		return truncated
	}

	return closed
}

// stripComments removes // line comments and /* */ block comments.
// Comment markers inside string literals are left alone, including behind
// escape sequences.
func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); {
		c := s[i]

		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			i++
			continue
		}

		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
			i++
		case c == '/' && i+1 < len(s) && s[i+1] == '/':
			for i < len(s) && s[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(s) && s[i+1] == '*':
			i += 2
			for i+1 < len(s) && !(s[i] == '*' && s[i+1] == '/') {
				i++
			}
			i += 2
			if i > len(s) {
				i = len(s)
			}
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// stripTrailingCommas drops commas whose next non-whitespace character is
// a closing bracket or brace, string-aware.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]

		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}

		if c == ',' {
			j := i + 1
			for j < len(s) && isJSONSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == ']' || s[j] == '}') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// rebalanceComponentLines patches per-line brace imbalance around component
// definitions. Agent output sometimes drops a closer at the end of one
// component line or doubles one up; a line is treated as a component
// definition when it contains `"id"`. A new component line starting while
// the previous one is still open gets the missing closers appended to the
// previous line; a component line that net-closes more than it opens has
// the excess closers stripped from its tail.
func rebalanceComponentLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	carry := 0

	for _, line := range lines {
		opens, closes := countBrackets(line)
		net := opens - closes

		if !strings.Contains(line, `"id"`) {
			if carry > 0 {
				carry += net
				if carry < 0 {
					carry = 0
				}
			}
			out = append(out, line)
			continue
		}

		if carry > 0 && len(out) > 0 {
			prev := strings.TrimRight(out[len(out)-1], " \t")
			prev = strings.TrimSuffix(prev, ",")
			out[len(out)-1] = prev + strings.Repeat("}", carry) + ","
			carry = 0
		}

		switch {
		case net > 0:
			carry = net
			out = append(out, line)
		case net < 0:
			trimmed := strings.TrimRight(line, " \t")
			hadComma := strings.HasSuffix(trimmed, ",")
			trimmed = strings.TrimSuffix(trimmed, ",")
			for net < 0 && (strings.HasSuffix(trimmed, "}") || strings.HasSuffix(trimmed, "]")) {
				trimmed = trimmed[:len(trimmed)-1]
				net++
			}
			if hadComma {
				trimmed += ","
			}
			out = append(out, trimmed)
		default:
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

// closeOpenBrackets repairs a document truncated mid-structure: trailing
// whitespace and commas are trimmed, an unterminated string literal is
// closed, a dangling ":" or "," is dropped, and every bracket still open
// on the scan stack is closed in LIFO order.
func closeOpenBrackets(s string) string {
	t := strings.TrimRight(s, " \t\r\n")
	t = strings.TrimRight(t, ",")

	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(t); i++ {
		c := t[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}':
			if len(stack) > 0 && stack[len(stack)-1] == '{' {
				stack = stack[:len(stack)-1]
			}
		case ']':
			if len(stack) > 0 && stack[len(stack)-1] == '[' {
				stack = stack[:len(stack)-1]
			}
		}
	}

	if inString {
		t += `"`
	}
	t = strings.TrimRight(t, " \t\r\n")
	if strings.HasSuffix(t, ":") || strings.HasSuffix(t, ",") {
		t = t[:len(t)-1]
	}

	var b strings.Builder
	b.Grow(len(t) + len(stack))
	b.WriteString(t)
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == '{' {
			b.WriteByte('}')
		} else {
			b.WriteByte(']')
		}
	}
	return b.String()
}

// truncateToLastElement cuts a top-level array document back to its last
// fully-closed element: the scan records the offset after every '}' that
// closes back to depth 1, and the document is truncated there plus a
// closing ']'.
func truncateToLastElement(s string) (string, bool) {
	start := strings.IndexByte(s, '[')
	if start < 0 {
		return "", false
	}

	depth := 0
	lastEnd := -1
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[', '{':
			depth++
		case ']':
			depth--
		case '}':
			depth--
			if depth == 1 {
				lastEnd = i + 1
			}
		}
	}

	if lastEnd < 0 {
		return "", false
	}
	return s[:lastEnd] + "]", true
}

func countBrackets(line string) (opens, closes int) {
	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			opens++
		case '}', ']':
			closes++
		}
	}
	return opens, closes
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
