package artifact

import (
	"fmt"
	"strings"

	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/parser"
)

var ignoreLog = logger.New("artifact:ignore")

// IgnoreList is a canonical ignore artifact. The body holds patterns in
// gitignore syntax; tools with a single fixed ignore file receive the
// concatenation of every eligible list, ordered by stem.
type IgnoreList struct {
	Stem    string
	Targets *Targets
	Extra   map[string]any
	Body    string
}

// ParseIgnoreList builds an IgnoreList from canonical file content.
func ParseIgnoreList(stem, content string) (*IgnoreList, error) {
	res, err := parser.ExtractFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ignore list %q: %w", stem, err)
	}

	l := &IgnoreList{Stem: stem, Body: res.Body, Extra: map[string]any{}}
	for key, value := range res.Frontmatter {
		switch key {
		case fieldTargets:
			if l.Targets, err = ParseTargets(value); err != nil {
				return nil, err
			}
		default:
			l.Extra[key] = value
		}
	}
	ignoreLog.Printf("Parsed ignore list: stem=%s patterns=%d", stem, len(l.Patterns()))
	return l, nil
}

// WithBody returns a copy of the list with the body replaced.
func (l *IgnoreList) WithBody(body string) *IgnoreList {
	clone := *l
	clone.Body = body
	return &clone
}

// Patterns returns the non-blank, non-comment pattern lines.
func (l *IgnoreList) Patterns() []string {
	var out []string
	for _, line := range strings.Split(l.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}

// Frontmatter reassembles the canonical frontmatter map.
func (l *IgnoreList) Frontmatter() map[string]any {
	fm := copyMap(l.Extra)
	if fm == nil {
		fm = map[string]any{}
	}
	if l.Targets != nil {
		fm[fieldTargets] = l.Targets.Value()
	}
	return fm
}

// Render produces the canonical file content for the ignore list.
func (l *IgnoreList) Render() (string, error) {
	return parser.RenderFrontmatter(l.Frontmatter(), l.Body)
}

// FileName returns the canonical file name for the ignore list.
func (l *IgnoreList) FileName() string {
	return l.Stem + ".md"
}
