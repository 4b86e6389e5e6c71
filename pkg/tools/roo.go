package tools

import "path/filepath"

// Roo Code reads plain rule files under .roo/rules/, a .rooignore file, a
// dedicated .roo/mcp.json, and markdown commands.
func newRooAdapter() *Adapter {
	const id = "roo"
	return &Adapter{
		ID:   id,
		Name: "Roo Code",
		Rules: &dirRules{
			tool:    id,
			project: RuleLocations{Dir: filepath.Join(".roo", "rules"), Ext: ".md"},
			fields:  plainRuleFields,
		},
		Ignore: &ignoreFile{tool: id, path: ".rooignore"},
		Servers: &jsonServers{
			tool:      id,
			project:   filepath.Join(".roo", "mcp.json"),
			topKey:    "mcpServers",
			shape:     standardShape,
			deletable: true,
		},
		Commands: &markdownCommands{
			tool:    id,
			project: DirLocations{Dir: filepath.Join(".roo", "commands"), Ext: ".md"},
			fields:  commandFields{description: true, argumentHint: true},
		},
	}
}
