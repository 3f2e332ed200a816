// Package content turns the loosely-typed records returned by the CMS into
// stable display values: resolved image URLs, plain-text excerpts, and
// first-non-empty field lookups.
//
// Every function in this package is pure. Callers' records are read, never
// written, and failures degrade to "no value" instead of surfacing errors.
package content

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Record is a decoded CMS item. Values are whatever encoding/json produced:
// strings, float64, bool, []any, map[string]any, or nil.
type Record map[string]any

// Lookup resolves a dotted path such as "coverMedia.image" one map level at
// a time. It reports false when any segment is missing or nil.
func Lookup(rec Record, path string) (any, bool) {
	if rec == nil || path == "" {
		return nil, false
	}
	var cur any = map[string]any(rec)
	for _, part := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// Sub returns the nested record at path, or nil.
func Sub(rec Record, path string) Record {
	v, ok := Lookup(rec, path)
	if !ok {
		return nil
	}
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	return Record(m)
}

// List returns the slice at path, or nil.
func List(rec Record, path string) []any {
	v, ok := Lookup(rec, path)
	if !ok {
		return nil
	}
	items, _ := v.([]any)
	return items
}

// Strings returns the string elements of the slice at path, skipping
// anything that is not a non-empty string.
func Strings(rec Record, path string) []string {
	var out []string
	for _, item := range List(rec, path) {
		if s, ok := stringValue(item); ok {
			out = append(out, s)
		}
	}
	return out
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case Record:
		return m, m != nil
	}
	return nil, false
}

// stringValue converts scalar JSON values to a trimmed, non-empty string.
func stringValue(v any) (string, bool) {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		s = strconv.Itoa(t)
	case int64:
		s = strconv.FormatInt(t, 10)
	case json.Number:
		s = t.String()
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
