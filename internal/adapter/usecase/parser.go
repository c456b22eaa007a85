package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"adforge/internal/core/domain"
)

// parseCampaignJSON turns raw model output into a campaign document. It tries
// a strict parse first; on failure it extracts the largest brace-delimited
// substring, applies a fixed sequence of conservative textual repairs and
// parses again. The final error always carries the original parser
// diagnostic, not the post-repair one, because that is what describes the
// model's actual output.
func parseCampaignJSON(raw string) (domain.Campaign, error) {
	var c domain.Campaign

	text := stripCodeFences(strings.TrimSpace(raw))
	if text == "" {
		return c, fmt.Errorf("response is empty")
	}

	firstErr := json.Unmarshal([]byte(text), &c)
	if firstErr == nil {
		return c, nil
	}

	obj, ok := extractJSONObject(text)
	if !ok {
		return domain.Campaign{}, fmt.Errorf("no JSON object in response: %v", firstErr)
	}

	c = domain.Campaign{}
	if err := json.Unmarshal([]byte(obj), &c); err == nil {
		return c, nil
	}

	c = domain.Campaign{}
	if err := json.Unmarshal([]byte(repairJSON(obj)), &c); err == nil {
		return c, nil
	}

	return domain.Campaign{}, fmt.Errorf("unparseable response: %v", firstErr)
}

// stripCodeFences removes markdown code fences the model may wrap its answer
// in. Only the fence markers are dropped; everything else is preserved.
func stripCodeFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// extractJSONObject returns the largest top-level brace-delimited substring.
// The scan is string-aware: braces inside quoted strings and escaped quotes
// do not affect the depth count.
func extractJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// repairJSON applies the fixed repair sequence: insert commas missing between
// adjacent quoted strings or adjacent closers/openers across line breaks, and
// strip trailing commas before closing brackets. The repairs are purely
// line-structural; values are never rewritten.
func repairJSON(s string) string {
	lines := strings.Split(s, "\n")
	for i := 0; i < len(lines)-1; i++ {
		cur := strings.TrimRight(lines[i], " \t\r")
		if cur == "" {
			continue
		}
		next := firstNonSpace(lines[i+1 :])
		if next == 0 {
			continue
		}
		last := cur[len(cur)-1]
		if needsComma(last, next) {
			lines[i] = cur + ","
		}
	}
	out := strings.Join(lines, "\n")
	return stripTrailingCommas(out)
}

// firstNonSpace returns the first non-whitespace byte of the following lines,
// or 0 when none exists.
func firstNonSpace(lines []string) byte {
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t\r")
		if trimmed != "" {
			return trimmed[0]
		}
	}
	return 0
}

// needsComma reports whether a comma belongs between a line ending in last
// and a line starting with next. A value ending (quote or closer) followed by
// a value beginning (quote or opener) means the model dropped a separator; a
// following closer means the structure is ending and no comma belongs.
func needsComma(last, next byte) bool {
	endsValue := last == '"' || last == '}' || last == ']'
	startsValue := next == '"' || next == '{' || next == '['
	return endsValue && startsValue
}

// stripTrailingCommas removes commas that sit directly before a closing
// bracket, which strict JSON forbids. String contents are respected.
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if escaped {
			escaped = false
			b.WriteByte(ch)
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			b.WriteByte(ch)
			continue
		}
		if ch == '"' {
			inString = !inString
			b.WriteByte(ch)
			continue
		}
		if !inString && ch == ',' {
			j := i + 1
			for j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n' || s[j] == '\r') {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue // drop the comma, keep the whitespace
			}
		}
		b.WriteByte(ch)
	}
	return b.String()
}
