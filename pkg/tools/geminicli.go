package tools

import "path/filepath"

// The Gemini CLI reads GEMINI.md (project) or ~/.gemini/GEMINI.md with
// detail files under .gemini/memories/, an .aiexclude file, server
// definitions merged into .gemini/settings.json, and TOML commands.
func newGeminiAdapter() *Adapter {
	const id = "geminicli"
	memories := filepath.Join(".gemini", "memories")

	return &Adapter{
		ID:   id,
		Name: "Gemini CLI",
		Rules: &rootFileRules{
			tool:    id,
			project: RuleLocations{RootPath: "GEMINI.md", Dir: memories, Ext: ".md"},
			global:  RuleLocations{RootPath: filepath.Join(".gemini", "GEMINI.md"), Dir: memories, Ext: ".md"},
			atRefs:  true,
		},
		Ignore: &ignoreFile{tool: id, path: ".aiexclude"},
		Servers: &jsonServers{
			tool:    id,
			project: filepath.Join(".gemini", "settings.json"),
			global:  filepath.Join(".gemini", "settings.json"),
			topKey:  "mcpServers",
			shape:   standardShape,
			// settings.json holds unrelated user configuration; merged, never deleted.
			deletable: false,
		},
		Commands: &tomlCommands{tool: id},
	}
}
