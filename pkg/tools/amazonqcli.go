package tools

import (
	"path/filepath"
)

// Amazon Q Developer CLI reads plain rule files under .amazonq/rules/ and a
// dedicated mcp.json.
func newAmazonQAdapter() *Adapter {
	const id = "amazonqcli"
	return &Adapter{
		ID:   id,
		Name: "Amazon Q Developer CLI",
		Rules: &dirRules{
			tool:    id,
			project: RuleLocations{Dir: filepath.Join(".amazonq", "rules"), Ext: ".md"},
			fields:  plainRuleFields,
		},
		Servers: &jsonServers{
			tool:      id,
			project:   filepath.Join(".amazonq", "mcp.json"),
			topKey:    "mcpServers",
			shape:     standardShape,
			deletable: true,
		},
	}
}
