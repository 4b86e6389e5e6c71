package tools

// Cline reads every markdown file under .clinerules/ as-is and a
// .clineignore file at the project root.
func newClineAdapter() *Adapter {
	const id = "cline"
	return &Adapter{
		ID:   id,
		Name: "Cline",
		Rules: &dirRules{
			tool:    id,
			project: RuleLocations{Dir: ".clinerules", Ext: ".md"},
			fields:  plainRuleFields,
		},
		Ignore: &ignoreFile{tool: id, path: ".clineignore"},
	}
}
