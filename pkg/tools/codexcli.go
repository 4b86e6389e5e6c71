package tools

import (
	"path/filepath"
)

// Codex CLI reads AGENTS.md at the project root, a user-wide AGENTS.md under
// ~/.codex/, and [mcp_servers] tables in its config.toml.
func newCodexAdapter() *Adapter {
	const id = "codexcli"
	return &Adapter{
		ID:   id,
		Name: "Codex CLI",
		Rules: &rootFileRules{
			tool:    id,
			project: RuleLocations{RootPath: "AGENTS.md"},
			global:  RuleLocations{RootPath: filepath.Join(".codex", "AGENTS.md")},
		},
		Servers: &codexServers{},
	}
}
