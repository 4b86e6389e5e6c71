package tools

import (
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// Windsurf reads rule files under .windsurf/rules/ with a trigger field
// (always_on, glob, or manual), a .codeiumignore file, and a user-wide
// mcp_config.json under ~/.codeium/windsurf/.
func newWindsurfAdapter() *Adapter {
	const id = "windsurf"
	return &Adapter{
		ID:   id,
		Name: "Windsurf",
		Rules: &dirRules{
			tool:           id,
			project:        RuleLocations{Dir: filepath.Join(".windsurf", "rules"), Ext: ".md"},
			fields:         windsurfRuleFields,
			normalizeStems: true,
		},
		Ignore: &ignoreFile{tool: id, path: ".codeiumignore"},
		Servers: &jsonServers{
			tool:      id,
			global:    filepath.Join(".codeium", "windsurf", "mcp_config.json"),
			topKey:    "mcpServers",
			shape:     standardShape,
			deletable: true,
		},
	}
}

var windsurfRuleFields = ruleFields{
	recognized: []string{"trigger", "globs", "description"},
	toNative: func(rule *artifact.Rule) map[string]any {
		fm := map[string]any{}
		switch {
		case rule.Root:
			fm["trigger"] = "always_on"
		case len(rule.Globs) > 0:
			fm["trigger"] = "glob"
			fm["globs"] = joinGlobs(rule.Globs)
		default:
			fm["trigger"] = "manual"
		}
		if rule.Description != "" {
			fm["description"] = rule.Description
		}
		return fm
	},
	fromNative: func(fm map[string]any, rule *artifact.Rule) error {
		if s, ok := fm["trigger"].(string); ok && s == "always_on" {
			rule.Root = true
		}
		if s, ok := fm["globs"].(string); ok {
			rule.Globs = splitGlobs(s)
		}
		if s, ok := fm["description"].(string); ok {
			rule.Description = s
		}
		return nil
	},
}
