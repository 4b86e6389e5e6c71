package tools

import (
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// Cursor reads .mdc rule files under .cursor/rules/ whose frontmatter
// carries alwaysApply plus a comma-joined globs string, a .cursorignore
// file, mcp.json under .cursor/, and plain command prompts.
func newCursorAdapter() *Adapter {
	const id = "cursor"
	mcp := filepath.Join(".cursor", "mcp.json")

	return &Adapter{
		ID:   id,
		Name: "Cursor",
		Rules: &dirRules{
			tool:           id,
			project:        RuleLocations{Dir: filepath.Join(".cursor", "rules"), Ext: ".mdc"},
			fields:         cursorRuleFields,
			normalizeStems: true,
		},
		Ignore: &ignoreFile{tool: id, path: ".cursorignore"},
		Servers: &jsonServers{
			tool:      id,
			project:   mcp,
			global:    mcp,
			topKey:    "mcpServers",
			shape:     standardShape,
			deletable: true,
		},
		Commands: &markdownCommands{
			tool:    id,
			project: DirLocations{Dir: filepath.Join(".cursor", "commands"), Ext: ".md"},
			plain:   true,
		},
	}
}

var cursorRuleFields = ruleFields{
	recognized: []string{"description", "globs", "alwaysApply"},
	toNative: func(rule *artifact.Rule) map[string]any {
		fm := map[string]any{"alwaysApply": rule.Root}
		if rule.Description != "" {
			fm["description"] = rule.Description
		}
		if len(rule.Globs) > 0 {
			fm["globs"] = joinGlobs(rule.Globs)
		}
		return fm
	},
	fromNative: func(fm map[string]any, rule *artifact.Rule) error {
		if b, ok := fm["alwaysApply"].(bool); ok {
			rule.Root = b
		}
		if s, ok := fm["description"].(string); ok {
			rule.Description = s
		}
		switch globs := fm["globs"].(type) {
		case string:
			rule.Globs = splitGlobs(globs)
		case []any:
			for _, g := range globs {
				if s, ok := g.(string); ok {
					rule.Globs = append(rule.Globs, s)
				}
			}
		}
		return nil
	},
}
