// Package jsonwire implements the restricted JSON subset both services speak
// on the wire: flat objects with string/number values, and arrays of flat
// objects. Decoding yields a generic key→raw-string mapping; callers convert
// values to int/float as needed.
//
// Deliberately unsupported shapes are rejected with a decode error instead of
// being silently corrupted: nested object values and \u escape sequences.
// Pairs without a colon are skipped, so an object with no recognizable
// key:value pairs decodes to an empty Object, not an error.
package jsonwire

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedBody is returned when a request body carries no top-level
// items array.
var ErrMalformedBody = errors.New("invalid request body")

// Object is a flat JSON object decoded to raw string values. Quoted scalars
// have exactly one layer of quotes stripped; escape sequences inside them are
// passed through literally.
type Object map[string]string

// Str returns the raw value for key, or "" when absent.
func (o Object) Str(key string) string {
	return o[key]
}

// Int converts the value for key to an integer.
func (o Object) Int(key string) (int, error) {
	v, ok := o[key]
	if !ok {
		return 0, fmt.Errorf("jsonwire: missing key %q", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("jsonwire: key %q: %q is not an integer", key, v)
	}
	return n, nil
}

// Float converts the value for key to a float64.
func (o Object) Float(key string) (float64, error) {
	v, ok := o[key]
	if !ok {
		return 0, fmt.Errorf("jsonwire: missing key %q", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("jsonwire: key %q: %q is not a number", key, v)
	}
	return f, nil
}

// ParseObject decodes a flat JSON object into an Object. Commas inside quoted
// values are not treated as separators. Pairs lacking a colon are skipped.
func ParseObject(s string) (Object, error) {
	obj := Object{}
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "{")
	trimmed = strings.TrimSuffix(trimmed, "}")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return obj, nil
	}

	for _, pair := range splitTopLevel(trimmed) {
		colon := strings.Index(pair, ":")
		if colon == -1 {
			continue
		}
		key := stripQuotes(strings.TrimSpace(pair[:colon]))
		value := strings.TrimSpace(pair[colon+1:])

		if strings.HasPrefix(value, "{") {
			return nil, fmt.Errorf("jsonwire: nested objects are not supported (key %q)", key)
		}
		if hasUnicodeEscape(value) {
			return nil, fmt.Errorf("jsonwire: unicode escapes are not supported (key %q)", key)
		}

		obj[key] = stripQuotes(value)
	}
	return obj, nil
}

// ParseArray decodes a JSON array of flat objects. Object boundaries are
// found by brace-depth tracking, so each element is extracted intact before
// per-object parsing.
func ParseArray(s string) ([]Object, error) {
	var result []Object
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimPrefix(trimmed, "[")
	trimmed = strings.TrimSuffix(trimmed, "]")
	trimmed = strings.TrimSpace(trimmed)
	if trimmed == "" {
		return result, nil
	}

	for _, raw := range splitObjects(trimmed) {
		obj, err := ParseObject(raw)
		if err != nil {
			return nil, err
		}
		result = append(result, obj)
	}
	return result, nil
}

// ExtractArray locates the top-level [...] span in a request body and parses
// it as an array of flat objects. A body without such a span fails with
// ErrMalformedBody.
func ExtractArray(body string) ([]Object, error) {
	trimmed := strings.TrimSpace(body)
	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start == -1 || end == -1 || end <= start {
		return nil, ErrMalformedBody
	}
	return ParseArray(trimmed[start : end+1])
}

// EscapeString escapes the characters the codec supports on encode:
// backslash, double quote, newline, carriage return, tab.
func EscapeString(s string) string {
	return wireEscaper.Replace(s)
}

var wireEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// Round2 rounds half-up to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPrice renders a monetary value with exactly two fractional digits,
// half-up, so binary floating-point artifacts never reach the wire
// (1999.98, never 1999.9800000001).
func FormatPrice(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', 2, 64)
}

// ErrorBody renders the single-field error object every error response uses.
func ErrorBody(msg string) string {
	return `{"error":"` + EscapeString(msg) + `"}`
}

// splitTopLevel splits on commas that sit outside quoted values.
func splitTopLevel(s string) []string {
	var parts []string
	inQuotes := false
	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			if i == 0 || s[i-1] != '\\' {
				inQuotes = !inQuotes
			}
		case ',':
			if !inQuotes {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if start < len(s) {
		parts = append(parts, s[start:])
	}
	return parts
}

// splitObjects cuts a run of concatenated objects at depth-zero brace
// boundaries so nested structures stay intact as substrings.
func splitObjects(s string) []string {
	var objects []string
	depth := 0
	start := -1

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			depth--
			if depth == 0 && start != -1 {
				objects = append(objects, s[start:i+1])
				start = -1
			}
		}
	}
	return objects
}

// hasUnicodeEscape reports whether s contains a \u sequence at a genuine
// escape position. A backslash run of even length is escaped backslashes
// (e.g. "C:\\users" holds no escape before the u), so only an odd-length run
// followed by 'u' counts.
func hasUnicodeEscape(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			continue
		}
		j := i
		for j < len(s) && s[j] == '\\' {
			j++
		}
		if (j-i)%2 == 1 && j < len(s) && s[j] == 'u' {
			return true
		}
		i = j - 1
	}
	return false
}

func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
