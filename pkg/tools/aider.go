package tools

// Aider reads a single CONVENTIONS.md at the project root and an
// .aiderignore file.
func newAiderAdapter() *Adapter {
	const id = "aider"
	return &Adapter{
		ID:   id,
		Name: "Aider",
		Rules: &rootFileRules{
			tool:    id,
			project: RuleLocations{RootPath: "CONVENTIONS.md"},
		},
		Ignore: &ignoreFile{tool: id, path: ".aiderignore"},
	}
}
