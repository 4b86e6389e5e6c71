package tools

import (
	"fmt"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// GitHub Copilot reads .github/copilot-instructions.md for always-on
// guidance and .github/instructions/*.instructions.md files scoped by an
// applyTo glob; prompt files live under .github/prompts/.
func newCopilotAdapter() *Adapter {
	const id = "copilot"
	return &Adapter{
		ID:    id,
		Name:  "GitHub Copilot",
		Rules: &copilotRules{tool: id},
		Servers: &jsonServers{
			tool:      id,
			project:   filepath.Join(".vscode", "mcp.json"),
			topKey:    "servers",
			shape:     standardShape,
			deletable: true,
		},
		Commands: &markdownCommands{
			tool:    id,
			project: DirLocations{Dir: filepath.Join(".github", "prompts"), Ext: ".prompt.md"},
			fields:  commandFields{description: true, model: true},
		},
	}
}

// copilotRules is the hybrid rule converter: the root rule becomes the plain
// copilot-instructions.md file; non-root rules become instruction files
// whose applyTo field carries the canonical globs comma-joined. No link list
// is generated, because instruction files attach themselves via applyTo.
type copilotRules struct {
	tool string
}

func (c *copilotRules) Locations(scope artifact.Scope) RuleLocations {
	if scope == artifact.ScopeGlobal {
		return RuleLocations{}
	}
	return RuleLocations{
		RootPath: filepath.Join(".github", "copilot-instructions.md"),
		Dir:      filepath.Join(".github", "instructions"),
		Ext:      ".instructions.md",
	}
}

func (c *copilotRules) FromCanonical(rule *artifact.Rule, ctx *RuleContext) (*File, error) {
	loc := c.Locations(ctx.Scope)
	if loc.RootPath == "" {
		return nil, nil
	}

	if rule.Root {
		return &File{Path: loc.RootPath, Content: renderPlain(rule.Body)}, nil
	}

	fm := applyBag(map[string]any{}, rule.PassthroughFor(c.tool))
	if len(rule.Globs) > 0 {
		fm["applyTo"] = joinGlobs(rule.Globs)
	}
	if rule.Description != "" {
		fm["description"] = rule.Description
	}
	content, err := renderNative(fm, rule.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to render rule %s for %s: %w", rule.Stem, c.tool, err)
	}
	return &File{
		Path:    filepath.Join(loc.Dir, NormalizeStem(rule.Stem)+loc.Ext),
		Content: content,
	}, nil
}

func (c *copilotRules) ToCanonical(file *File, scope artifact.Scope) (*artifact.Rule, error) {
	loc := c.Locations(scope)
	fm, body, err := parseNative(file.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file.Path, err)
	}

	if file.Path == loc.RootPath {
		return &artifact.Rule{
			Stem:  rootImportStem,
			Root:  true,
			Body:  body,
			Extra: bagInto(nil, c.tool, collectBag(fm)),
		}, nil
	}

	rule := &artifact.Rule{
		Stem: NormalizeStem(nativeStem(file.Path, loc.Ext)),
		Body: body,
	}
	if s, ok := fm["applyTo"].(string); ok {
		rule.Globs = splitGlobs(s)
	}
	if s, ok := fm["description"].(string); ok {
		rule.Description = s
	}
	rule.Extra = bagInto(nil, c.tool, collectBag(fm, "applyTo", "description"))
	return rule, nil
}

func (c *copilotRules) Validate(file *File) *artifact.ValidationResult {
	return validateNativeMarkdown(file)
}

func (c *copilotRules) Deletable(artifact.Scope) bool { return true }
