package tools

import (
	"path/filepath"
)

// Claude Code reads CLAUDE.md (project) or ~/.claude/CLAUDE.md (user-wide)
// with @path imports for detail files, .mcp.json for servers, and markdown
// directories for slash-commands and subagents.
func newClaudeCodeAdapter() *Adapter {
	const id = "claudecode"
	memories := filepath.Join(".claude", "memories")
	commands := DirLocations{Dir: filepath.Join(".claude", "commands"), Ext: ".md"}
	agents := DirLocations{Dir: filepath.Join(".claude", "agents"), Ext: ".md"}

	return &Adapter{
		ID:   id,
		Name: "Claude Code",
		Rules: &rootFileRules{
			tool:    id,
			project: RuleLocations{RootPath: "CLAUDE.md", Dir: memories, Ext: ".md"},
			global:  RuleLocations{RootPath: filepath.Join(".claude", "CLAUDE.md"), Dir: memories, Ext: ".md"},
			atRefs:  true,
		},
		Servers: &jsonServers{
			tool:      id,
			project:   ".mcp.json",
			topKey:    "mcpServers",
			shape:     standardShape,
			deletable: true,
		},
		Commands: &markdownCommands{
			tool:    id,
			project: commands,
			global:  commands,
			fields:  commandFields{description: true, argumentHint: true, model: true},
		},
		Subagents: &markdownSubagents{
			tool:     id,
			project:  agents,
			global:   agents,
			withName: true,
		},
	}
}
