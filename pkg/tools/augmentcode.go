package tools

import (
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// Augment Code reads rule files under .augment/rules/ with a type field of
// always or manual, and an .augmentignore file.
func newAugmentAdapter() *Adapter {
	const id = "augmentcode"
	return &Adapter{
		ID:   id,
		Name: "Augment Code",
		Rules: &dirRules{
			tool:           id,
			project:        RuleLocations{Dir: filepath.Join(".augment", "rules"), Ext: ".md"},
			fields:         augmentRuleFields,
			normalizeStems: true,
		},
		Ignore: &ignoreFile{tool: id, path: ".augmentignore"},
	}
}

var augmentRuleFields = ruleFields{
	recognized: []string{"type", "description"},
	toNative: func(rule *artifact.Rule) map[string]any {
		fm := map[string]any{}
		if rule.Root {
			fm["type"] = "always"
		} else {
			fm["type"] = "manual"
		}
		if rule.Description != "" {
			fm["description"] = rule.Description
		}
		return fm
	},
	fromNative: func(fm map[string]any, rule *artifact.Rule) error {
		if s, ok := fm["type"].(string); ok && s == "always" {
			rule.Root = true
		}
		if s, ok := fm["description"].(string); ok {
			rule.Description = s
		}
		return nil
	},
}
