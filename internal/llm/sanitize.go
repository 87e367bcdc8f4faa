package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrUnparsable is returned when a response cannot be coerced into JSON
// even after loose extraction. Callers degrade to an empty result instead
// of surfacing it to users.
var ErrUnparsable = errors.New("llm: response is not parsable JSON")

// StripFences removes markdown code-fence markers the model emits despite
// being told not to, and trims surrounding whitespace.
func StripFences(content string) string {
	content = strings.ReplaceAll(content, "```json", "")
	content = strings.ReplaceAll(content, "```", "")
	return strings.TrimSpace(content)
}

// ExtractJSON parses a model response into v. Strategy: strip fences,
// attempt a strict parse, then try the first balanced top-level array
// literal, then the first balanced object literal. The upstream model is
// not contractually guaranteed to emit valid JSON, so recovery here is the
// actual guarantor of the schema contract.
func ExtractJSON(content string, v any) error {
	clean := StripFences(content)
	if clean == "" {
		return ErrUnparsable
	}

	if err := json.Unmarshal([]byte(clean), v); err == nil {
		return nil
	}

	if frag := balancedFragment(clean, '[', ']'); frag != "" {
		if err := json.Unmarshal([]byte(frag), v); err == nil {
			return nil
		}
	}
	if frag := balancedFragment(clean, '{', '}'); frag != "" {
		if err := json.Unmarshal([]byte(frag), v); err == nil {
			return nil
		}
	}
	return ErrUnparsable
}

// balancedFragment returns the first balanced open..close span, skipping
// brackets inside string literals.
func balancedFragment(s string, open, close byte) string {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return ""
	}

	depth := 0
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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
