package artifact

import (
	"encoding/json"
	"fmt"
)

// Wildcard is the target entry matching every tool.
const Wildcard = "*"

// Targets is the set of tool IDs an artifact applies to. A nil *Targets means
// the field was absent, which is permissive: the artifact applies to every
// tool. An empty, present set applies to none.
type Targets struct {
	ids []string
}

// NewTargets builds a target set from explicit tool IDs.
func NewTargets(ids ...string) *Targets {
	return &Targets{ids: append([]string(nil), ids...)}
}

// ParseTargets interprets a frontmatter value as a target list. Lists of
// strings are the documented form; a bare string is accepted as a one-element
// list. Any other shape is a validation error.
func ParseTargets(v any) (*Targets, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return NewTargets(val), nil
	case []any:
		ids := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &ValidationError{
					Field:  "targets",
					Value:  fmt.Sprintf("%v", item),
					Reason: "entries must be strings",
				}
			}
			ids = append(ids, s)
		}
		return &Targets{ids: ids}, nil
	case []string:
		return NewTargets(val...), nil
	default:
		return nil, &ValidationError{
			Field:  "targets",
			Value:  fmt.Sprintf("%v", v),
			Reason: "must be a list of tool IDs",
		}
	}
}

// Includes reports whether the set admits the given tool ID. The nil set is
// permissive; an empty set admits nothing; the wildcard admits everything.
func (t *Targets) Includes(tool string) bool {
	if t == nil {
		return true
	}
	for _, id := range t.ids {
		if id == Wildcard || id == tool {
			return true
		}
	}
	return false
}

// List returns the raw entries, preserving order. Nil for the nil set.
func (t *Targets) List() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.ids...)
}

// Value returns the frontmatter representation of the set, or nil when the
// set is absent so callers can omit the field entirely.
func (t *Targets) Value() any {
	if t == nil {
		return nil
	}
	out := make([]any, len(t.ids))
	for i, id := range t.ids {
		out[i] = id
	}
	return out
}

// MarshalJSON renders the set as a JSON array.
func (t *Targets) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(t.ids)
}

// UnmarshalJSON parses a JSON array of tool IDs.
func (t *Targets) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return &ValidationError{Field: "targets", Reason: "must be a JSON array of tool IDs"}
	}
	t.ids = ids
	return nil
}
