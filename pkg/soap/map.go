package soap

import (
	"fmt"
	"strconv"
	"strings"
)

// Map is a decoded gateway payload. Values are strings, nested Maps or []any.
type Map map[string]any

func (m Map) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// String returns the scalar stored under key, or "" when it is absent or not a scalar.
func (m Map) String(key string) string {
	switch v := m[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case Map, map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (m Map) Int64(key string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(m.String(key)), 10, 64)
	if err != nil {
		return 0
	}

	return n
}

func (m Map) Int(key string) int {
	return int(m.Int64(key))
}

// Bool treats "true", "1", "yes" and any other non-empty value except "0" and "false" as true.
func (m Map) Bool(key string) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}

	switch strings.ToLower(strings.TrimSpace(m.String(key))) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}

func (m Map) Map(key string) Map {
	return asMap(m[key])
}

// List returns the objects stored under key. The gateway sends a single object
// instead of a sequence when there is one result; both shapes come back as a slice.
func (m Map) List(key string) []Map {
	switch v := m[key].(type) {
	case []any:
		out := make([]Map, 0, len(v))
		for _, item := range v {
			if child := asMap(item); child != nil {
				out = append(out, child)
			}
		}
		return out
	case []Map:
		return v
	default:
		if child := asMap(v); child != nil {
			return []Map{child}
		}
		return nil
	}
}

func asMap(v any) Map {
	switch t := v.(type) {
	case Map:
		return t
	case map[string]any:
		return Map(t)
	default:
		return nil
	}
}
