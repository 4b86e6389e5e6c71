package tools

import "path/filepath"

// JetBrains Junie reads a single guidelines file; there is no detail-file or
// server surface.
func newJunieAdapter() *Adapter {
	const id = "junie"
	return &Adapter{
		ID:   id,
		Name: "Junie",
		Rules: &rootFileRules{
			tool:    id,
			project: RuleLocations{RootPath: filepath.Join(".junie", "guidelines.md")},
		},
	}
}
