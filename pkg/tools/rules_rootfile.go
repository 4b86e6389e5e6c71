package tools

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/parser"
)

var rootRulesLog = logger.New("tools:rules_rootfile")

// rootImportStem is the canonical stem an imported root rule file lands on.
// Imports run one tool at a time, so a single fixed stem keeps repeated
// imports from accumulating root rules.
const rootImportStem = "main"

// referencesHeader introduces the generated link list appended to a root
// file. Import recognizes it and strips the section so the list never leaks
// into the canonical body.
const referencesHeader = "Detailed guidance is available in the following files:"

// rootFileRules is the rule family for tools that read one plain markdown
// instruction file (CLAUDE.md, AGENTS.md, GEMINI.md, ...) and, optionally, a
// directory of plain detail files linked from it. Neither file carries
// native frontmatter; canonical metadata other than the body has no native
// representation for these tools.
type rootFileRules struct {
	tool    string
	project RuleLocations
	global  RuleLocations
	atRefs  bool // link detail files with "@path" imports instead of markdown links
}

func (r *rootFileRules) Locations(scope artifact.Scope) RuleLocations {
	if scope == artifact.ScopeGlobal {
		return r.global
	}
	return r.project
}

func (r *rootFileRules) FromCanonical(rule *artifact.Rule, ctx *RuleContext) (*File, error) {
	loc := r.Locations(ctx.Scope)

	if rule.Root {
		if loc.RootPath == "" {
			return nil, nil
		}
		return &File{
			Path:    loc.RootPath,
			Content: renderRootBody(rule.Body, ctx.References, r.atRefs),
		}, nil
	}

	if loc.Dir == "" {
		rootRulesLog.Printf("Tool %s keeps no detail rules, skipping %s", r.tool, rule.Stem)
		return nil, nil
	}
	return &File{
		Path:    filepath.Join(loc.Dir, rule.Stem+loc.Ext),
		Content: renderPlain(rule.Body),
	}, nil
}

func (r *rootFileRules) ToCanonical(file *File, scope artifact.Scope) (*artifact.Rule, error) {
	loc := r.Locations(scope)
	fm, body, err := parseNative(file.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file.Path, err)
	}

	rule := &artifact.Rule{
		Body:  body,
		Extra: bagInto(nil, r.tool, collectBag(fm)),
	}
	if file.Path == loc.RootPath {
		rule.Stem = rootImportStem
		rule.Root = true
		rule.Body = stripReferenceSection(body)
		return rule, nil
	}
	rule.Stem = NormalizeStem(nativeStem(file.Path, loc.Ext))
	return rule, nil
}

func (r *rootFileRules) Validate(file *File) *artifact.ValidationResult {
	return validateNativeMarkdown(file)
}

func (r *rootFileRules) Deletable(artifact.Scope) bool { return true }

// renderRootBody assembles a root instruction file: the canonical body plus
// a link list pointing at the detail files generated alongside it.
func renderRootBody(body string, refs []RuleReference, atRefs bool) []byte {
	stripped := strings.Trim(parser.StripLeadingBlock(body), "\n")

	var sb strings.Builder
	if stripped != "" {
		sb.WriteString(stripped)
	}
	if len(refs) > 0 {
		if stripped != "" {
			sb.WriteString("\n\n")
		}
		sb.WriteString(referencesHeader)
		sb.WriteString("\n")
		for _, ref := range refs {
			sb.WriteString("\n- ")
			if atRefs {
				sb.WriteString("@" + filepath.ToSlash(ref.Path))
			} else {
				rel := filepath.ToSlash(ref.Path)
				sb.WriteString(fmt.Sprintf("[%s](%s)", nativeStem(ref.Path, filepath.Ext(ref.Path)), rel))
			}
			if ref.Description != "" {
				sb.WriteString(": " + ref.Description)
			}
		}
	}
	if sb.Len() == 0 {
		return []byte{}
	}
	sb.WriteString("\n")
	return []byte(sb.String())
}

// stripReferenceSection removes the generated link list from an imported
// root file body.
func stripReferenceSection(body string) string {
	idx := strings.Index(body, referencesHeader)
	if idx == -1 {
		return body
	}
	return strings.Trim(body[:idx], "\n")
}

// nativeStem strips a known native extension from a file path's base. It
// handles multi-dot extensions like ".instructions.md" that filepath.Ext
// would truncate incorrectly.
func nativeStem(path, ext string) string {
	base := filepath.Base(path)
	if ext != "" && strings.HasSuffix(base, ext) {
		return base[:len(base)-len(ext)]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}
