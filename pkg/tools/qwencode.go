package tools

import "path/filepath"

// Qwen Code follows the Gemini CLI layout with its own directory names:
// QWEN.md, .qwen/memories/, and servers merged into .qwen/settings.json.
func newQwenCodeAdapter() *Adapter {
	const id = "qwencode"
	return &Adapter{
		ID:   id,
		Name: "Qwen Code",
		Rules: &rootFileRules{
			tool:    id,
			project: RuleLocations{RootPath: "QWEN.md", Dir: filepath.Join(".qwen", "memories"), Ext: ".md"},
			global:  RuleLocations{RootPath: filepath.Join(".qwen", "QWEN.md"), Dir: filepath.Join(".qwen", "memories"), Ext: ".md"},
			atRefs:  true,
		},
		Servers: &jsonServers{
			tool:      id,
			project:   filepath.Join(".qwen", "settings.json"),
			topKey:    "mcpServers",
			shape:     standardShape,
			deletable: false,
		},
	}
}
