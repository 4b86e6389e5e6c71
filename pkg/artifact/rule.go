package artifact

import (
	"fmt"

	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/parser"
)

var ruleLog = logger.New("artifact:rule")

// Rule is a canonical behavioral rule. Exactly one rule per project should
// set Root; root rules map to a tool's top-level instruction file (CLAUDE.md,
// AGENTS.md, ...) while non-root rules map to per-topic detail files.
type Rule struct {
	Stem        string // canonical file stem, without extension
	Description string
	Root        bool
	Globs       []string
	Targets     *Targets
	Extra       map[string]any // unrecognized frontmatter, including per-tool bags
	Body        string
}

// Recognized rule frontmatter fields; everything else is passthrough.
const (
	fieldTargets     = "targets"
	fieldRoot        = "root"
	fieldDescription = "description"
	fieldGlobs       = "globs"
)

// ParseRule builds a Rule from canonical file content.
func ParseRule(stem, content string) (*Rule, error) {
	res, err := parser.ExtractFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rule %q: %w", stem, err)
	}

	r := &Rule{Stem: stem, Body: res.Body, Extra: map[string]any{}}
	for key, value := range res.Frontmatter {
		switch key {
		case fieldTargets:
			if r.Targets, err = ParseTargets(value); err != nil {
				return nil, err
			}
		case fieldRoot:
			if r.Root, err = boolField(res.Frontmatter, fieldRoot); err != nil {
				return nil, err
			}
		case fieldDescription:
			if r.Description, err = stringField(res.Frontmatter, fieldDescription); err != nil {
				return nil, err
			}
		case fieldGlobs:
			if r.Globs, err = stringListField(res.Frontmatter, fieldGlobs); err != nil {
				return nil, err
			}
		default:
			r.Extra[key] = value
		}
	}
	ruleLog.Printf("Parsed rule: stem=%s root=%v targets=%v", stem, r.Root, r.Targets.List())
	return r, nil
}

// WithBody returns a copy of the rule with the body replaced.
func (r *Rule) WithBody(body string) *Rule {
	clone := *r
	clone.Body = body
	return &clone
}

// PassthroughFor returns the tool-namespaced passthrough bag for a tool ID,
// or nil when none is present.
func (r *Rule) PassthroughFor(tool string) map[string]any {
	bag, ok := r.Extra[tool].(map[string]any)
	if !ok {
		return nil
	}
	return copyMap(bag)
}

// Frontmatter reassembles the canonical frontmatter map.
func (r *Rule) Frontmatter() map[string]any {
	fm := copyMap(r.Extra)
	if fm == nil {
		fm = map[string]any{}
	}
	if r.Targets != nil {
		fm[fieldTargets] = r.Targets.Value()
	}
	if r.Root {
		fm[fieldRoot] = true
	}
	if r.Description != "" {
		fm[fieldDescription] = r.Description
	}
	if len(r.Globs) > 0 {
		fm[fieldGlobs] = stringsToAny(r.Globs)
	}
	return fm
}

// Render produces the canonical file content for the rule.
func (r *Rule) Render() (string, error) {
	return parser.RenderFrontmatter(r.Frontmatter(), r.Body)
}

// FileName returns the canonical file name for the rule.
func (r *Rule) FileName() string {
	return r.Stem + ".md"
}
