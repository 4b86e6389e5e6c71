package artifact

import "fmt"

// Frontmatter field coercions shared by the markdown-based artifact kinds.
// Missing fields yield zero values; present fields of the wrong type are
// validation errors rather than silent drops.

func stringField(fm map[string]any, key string) (string, error) {
	v, ok := fm[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", NewValidationError(key, fmt.Sprintf("%v", v), "must be a string")
	}
	return s, nil
}

func boolField(fm map[string]any, key string) (bool, error) {
	v, ok := fm[key]
	if !ok || v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, NewValidationError(key, fmt.Sprintf("%v", v), "must be a boolean")
	}
	return b, nil
}

// stringListField accepts a list of strings or a single bare string.
func stringListField(fm map[string]any, key string) ([]string, error) {
	v, ok := fm[key]
	if !ok || v == nil {
		return nil, nil
	}
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, NewValidationError(key, fmt.Sprintf("%v", item), "entries must be strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, NewValidationError(key, fmt.Sprintf("%v", v), "must be a list of strings")
	}
}

// copyMap shallow-copies a frontmatter map; nil stays nil.
func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// stringsToAny converts a string slice to the []any form frontmatter uses.
func stringsToAny(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
