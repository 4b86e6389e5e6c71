package tools

// Warp reads a single WARP.md at the project root.
func newWarpAdapter() *Adapter {
	const id = "warp"
	return &Adapter{
		ID:   id,
		Name: "Warp",
		Rules: &rootFileRules{
			tool:    id,
			project: RuleLocations{RootPath: "WARP.md"},
		},
	}
}
