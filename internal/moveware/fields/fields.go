// Package fields provides total, never-panicking coercion and lookup helpers
// for loosely-typed Moveware payloads. Historical API versions rename fields
// and wrap collections inconsistently; every adapter routes its property
// access through this package instead of reaching into maps ad hoc.
package fields

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Str coerces any value to a string. Nil becomes "", numbers are formatted
// without a trailing ".0", everything else goes through fmt.
func Str(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Num coerces any value to a float64. Nil, non-numeric strings and anything
// unrecognized become 0. It never returns NaN.
func Num(v any) float64 {
	switch val := v.(type) {
	case nil:
		return 0
	case float64:
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		// ParseFloat accepts "NaN" and "Inf"; neither may reach a response.
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return 0
		}
		return parsed
	case bool:
		if val {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Pick returns the value of the first key in obj that is present and non-nil,
// in the caller-specified priority order. The order is the single mechanism
// by which "this field might be called A, B, or C depending on API version"
// is resolved, so callers must list keys newest-first.
func Pick(obj map[string]any, keys ...string) any {
	if obj == nil {
		return nil
	}
	for _, key := range keys {
		if val, ok := obj[key]; ok && val != nil {
			return val
		}
	}
	return nil
}

// ToArray unwraps a collection from a raw payload. The payload may itself be
// an array, or the array may sit under one of the caller-supplied keys or the
// common wrapper keys "data", "items", "results". Anything else yields an
// empty slice, never an error.
func ToArray(raw any, extraKeys ...string) []any {
	if arr, ok := raw.([]any); ok {
		return arr
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return []any{}
	}

	keys := append(extraKeys, "data", "items", "results")
	for _, key := range keys {
		if arr, ok := obj[key].([]any); ok {
			return arr
		}
	}
	return []any{}
}

// AsMap returns v as a map, or an empty map for anything else, so nested
// lookups can be chained without nil checks.
func AsMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// Dig walks a nested object path, returning nil as soon as any step is
// missing or not an object.
func Dig(obj map[string]any, path ...string) any {
	var current any = obj
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

// Truthy reports whether v is one of the truthy encodings the Moveware API
// uses interchangeably for charge inclusion flags: true, "true", "Y", "y", 1.
func Truthy(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		trimmed := strings.TrimSpace(val)
		return trimmed == "true" || trimmed == "Y" || trimmed == "y"
	case float64:
		return val == 1
	case int:
		return val == 1
	default:
		return false
	}
}

// Bullets splits newline-delimited bullet text into clean lines, stripping
// a leading "•", "-" or "*" and surrounding whitespace, and discarding
// empty lines.
func Bullets(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		for _, prefix := range []string{"•", "-", "*"} {
			if strings.HasPrefix(trimmed, prefix) {
				trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, prefix))
				break
			}
		}
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
