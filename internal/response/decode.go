// Package response turns raw model output into typed results. The JSON may be
// wrapped in a markdown code fence or surrounded by prose; anything that does
// not decode into the target, or decodes but fails the target's Validate, is
// malformed. A malformed response is always an error and never an empty success.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrMalformed   = errors.New("malformed response")
	ErrEmpty       = errors.New("empty response")
	ErrMissingJSON = errors.New("no JSON found in response")
)

// Validator is implemented by result types that have required fields.
type Validator interface {
	Validate() error
}

// Decode extracts the JSON payload from raw and decodes it into v. Every error
// wraps ErrMalformed.
func Decode(raw string, v any) error {
	payload, err := ExtractJSON(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	decoder := json.NewDecoder(strings.NewReader(payload))
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := ensureEOF(decoder); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	if val, ok := v.(Validator); ok {
		if err := val.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	return nil
}

// DecodeAs is Decode for a value type.
func DecodeAs[T any](raw string) (T, error) {
	var out T
	if err := Decode(raw, &out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// ExtractJSON returns the JSON payload of a model reply. The content of the
// first ``` fence wins over the rest of the reply. A payload that opens with
// '{' or '[' is returned whole and decoded strictly; otherwise the first
// balanced object or array that is valid JSON is taken out of the prose.
func ExtractJSON(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmpty
	}

	candidate := trimmed
	if content, ok := fenceContent(trimmed); ok {
		if content == "" {
			return "", ErrEmpty
		}
		candidate = content
	}
	if candidate[0] == '{' || candidate[0] == '[' {
		return candidate, nil
	}

	if payload, ok := findJSON(candidate); ok {
		return payload, nil
	}
	if payload, ok := findJSON(trimmed); ok {
		return payload, nil
	}
	return "", ErrMissingJSON
}

// StripCodeFence returns the content of the first ``` fence in raw, without
// its language tag. Input without a closed fence is returned trimmed.
func StripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if content, ok := fenceContent(trimmed); ok {
		return content
	}
	return trimmed
}

func fenceContent(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start == -1 {
		return "", false
	}
	body := s[start+3:]
	end := strings.Index(body, "```")
	if end == -1 {
		return "", false
	}

	content := body[:end]
	if nl := strings.IndexByte(content, '\n'); nl != -1 && isFenceTag(content[:nl]) {
		content = content[nl+1:]
	} else if nl == -1 {
		content = strings.TrimLeftFunc(content, isTagRune)
	}
	return strings.TrimSpace(content), true
}

// findJSON returns the first balanced object or array in s that is valid JSON.
func findJSON(s string) (string, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		if n, ok := balancedLen(s[i:]); ok && json.Valid([]byte(s[i:i+n])) {
			return s[i : i+n], true
		}
	}
	return "", false
}

// balancedLen returns the length of the bracketed value that opens s. Brackets
// inside string literals are ignored.
func balancedLen(s string) (int, bool) {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
		case ch == '"':
			inString = true
		case ch == '{' || ch == '[':
			depth++
		case ch == '}' || ch == ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		}
	}
	return 0, false
}

func isFenceTag(s string) bool {
	s = strings.TrimSpace(s)
	for _, r := range s {
		if !isTagRune(r) {
			return false
		}
	}
	return true
}

func isTagRune(r rune) bool {
	return r == '_' || r == '-' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

func ensureEOF(decoder *json.Decoder) error {
	var extra any
	if err := decoder.Decode(&extra); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return errors.New("unexpected trailing JSON content")
}

// RequireNonEmpty reports an error naming field when n is zero.
func RequireNonEmpty(field string, n int) error {
	if n == 0 {
		return fmt.Errorf("%q is missing or empty", field)
	}
	return nil
}
