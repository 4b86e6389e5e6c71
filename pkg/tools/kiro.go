package tools

import (
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// Kiro reads steering files under .kiro/steering/ whose inclusion field is
// always, fileMatch (with fileMatchPattern), or manual, and a dedicated
// mcp.json under .kiro/settings/.
func newKiroAdapter() *Adapter {
	const id = "kiro"
	return &Adapter{
		ID:   id,
		Name: "Kiro",
		Rules: &dirRules{
			tool:           id,
			project:        RuleLocations{Dir: filepath.Join(".kiro", "steering"), Ext: ".md"},
			fields:         kiroRuleFields,
			normalizeStems: true,
		},
		Servers: &jsonServers{
			tool:      id,
			project:   filepath.Join(".kiro", "settings", "mcp.json"),
			topKey:    "mcpServers",
			shape:     standardShape,
			deletable: true,
		},
	}
}

var kiroRuleFields = ruleFields{
	recognized: []string{"inclusion", "fileMatchPattern", "description"},
	toNative: func(rule *artifact.Rule) map[string]any {
		fm := map[string]any{}
		switch {
		case rule.Root:
			fm["inclusion"] = "always"
		case len(rule.Globs) > 0:
			fm["inclusion"] = "fileMatch"
			fm["fileMatchPattern"] = joinGlobs(rule.Globs)
		default:
			fm["inclusion"] = "manual"
		}
		if rule.Description != "" {
			fm["description"] = rule.Description
		}
		return fm
	},
	fromNative: func(fm map[string]any, rule *artifact.Rule) error {
		if s, ok := fm["inclusion"].(string); ok && s == "always" {
			rule.Root = true
		}
		if s, ok := fm["fileMatchPattern"].(string); ok {
			rule.Globs = splitGlobs(s)
		}
		if s, ok := fm["description"].(string); ok {
			rule.Description = s
		}
		return nil
	},
}
