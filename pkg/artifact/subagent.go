package artifact

import (
	"fmt"

	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/parser"
)

var subagentLog = logger.New("artifact:subagent")

// Subagent is a canonical sub-agent definition: a system prompt body plus
// identity metadata. Native filenames derive from Name, not from the
// canonical file stem, so renaming an agent renames its generated files.
type Subagent struct {
	Stem        string
	Name        string
	Description string
	Model       string
	Targets     *Targets
	Extra       map[string]any
	Body        string
}

const fieldName = "name"

// ParseSubagent builds a Subagent from canonical file content. A missing
// name falls back to the file stem.
func ParseSubagent(stem, content string) (*Subagent, error) {
	res, err := parser.ExtractFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse subagent %q: %w", stem, err)
	}

	s := &Subagent{Stem: stem, Body: res.Body, Extra: map[string]any{}}
	for key, value := range res.Frontmatter {
		switch key {
		case fieldTargets:
			if s.Targets, err = ParseTargets(value); err != nil {
				return nil, err
			}
		case fieldName:
			if s.Name, err = stringField(res.Frontmatter, fieldName); err != nil {
				return nil, err
			}
		case fieldDescription:
			if s.Description, err = stringField(res.Frontmatter, fieldDescription); err != nil {
				return nil, err
			}
		case fieldModel:
			if s.Model, err = stringField(res.Frontmatter, fieldModel); err != nil {
				return nil, err
			}
		default:
			s.Extra[key] = value
		}
	}
	if s.Name == "" {
		s.Name = stem
	}
	subagentLog.Printf("Parsed subagent: stem=%s name=%s", stem, s.Name)
	return s, nil
}

// WithBody returns a copy of the subagent with the body replaced.
func (s *Subagent) WithBody(body string) *Subagent {
	clone := *s
	clone.Body = body
	return &clone
}

// PassthroughFor returns the tool-namespaced passthrough bag for a tool ID.
func (s *Subagent) PassthroughFor(tool string) map[string]any {
	bag, ok := s.Extra[tool].(map[string]any)
	if !ok {
		return nil
	}
	return copyMap(bag)
}

// Frontmatter reassembles the canonical frontmatter map.
func (s *Subagent) Frontmatter() map[string]any {
	fm := copyMap(s.Extra)
	if fm == nil {
		fm = map[string]any{}
	}
	if s.Targets != nil {
		fm[fieldTargets] = s.Targets.Value()
	}
	if s.Name != "" {
		fm[fieldName] = s.Name
	}
	if s.Description != "" {
		fm[fieldDescription] = s.Description
	}
	if s.Model != "" {
		fm[fieldModel] = s.Model
	}
	return fm
}

// Render produces the canonical file content for the subagent.
func (s *Subagent) Render() (string, error) {
	return parser.RenderFrontmatter(s.Frontmatter(), s.Body)
}

// FileName returns the canonical file name for the subagent.
func (s *Subagent) FileName() string {
	return s.Stem + ".md"
}
