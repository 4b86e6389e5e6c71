package tools

import "path/filepath"

// The AGENTS.md convention: one instruction file at the project root with
// optional detail files under .agents/memories/, linked by relative path.
func newAgentsmdAdapter() *Adapter {
	const id = "agentsmd"
	return &Adapter{
		ID:   id,
		Name: "AGENTS.md",
		Rules: &rootFileRules{
			tool:    id,
			project: RuleLocations{RootPath: "AGENTS.md", Dir: filepath.Join(".agents", "memories"), Ext: ".md"},
		},
	}
}
