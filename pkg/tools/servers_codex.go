package tools

import (
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/agentsync/agentsync/pkg/artifact"
)

const codexServersKey = "mcp_servers"

// codexServers writes server definitions as [mcp_servers.<name>] tables in
// the Codex CLI's user-wide config.toml. The file holds plenty of unrelated
// configuration, so it is merged, never deleted; TOML comments and layout do
// not survive a rewrite, values do.
type codexServers struct{}

func (c *codexServers) Location(scope artifact.Scope) string {
	if scope == artifact.ScopeGlobal {
		return filepath.Join(".codex", "config.toml")
	}
	return ""
}

func (c *codexServers) FromCanonical(set *artifact.ServerSet, existing []byte) ([]byte, error) {
	doc := map[string]any{}
	if len(existing) > 0 {
		if err := toml.Unmarshal(existing, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse existing codex config: %w", err)
		}
	}

	servers := map[string]any{}
	for name, def := range set.Servers {
		servers[name] = standardShape.toNative(def)
	}
	doc[codexServersKey] = servers

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal codex config: %w", err)
	}
	return data, nil
}

func (c *codexServers) ToCanonical(content []byte) (*artifact.ServerSet, error) {
	var doc map[string]any
	if err := toml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse codex config: %w", err)
	}

	set := &artifact.ServerSet{Servers: map[string]*artifact.ServerDef{}}
	block, ok := doc[codexServersKey].(map[string]any)
	if !ok {
		return set, nil
	}
	for name, raw := range block {
		members, ok := raw.(map[string]any)
		if !ok {
			return nil, artifact.NewValidationError("server "+name, fmt.Sprintf("%v", raw), "must be a table")
		}
		def, err := artifact.ServerDefFromMembers(members)
		if err != nil {
			return nil, fmt.Errorf("server %q: %w", name, err)
		}
		set.Servers[name] = def
	}
	return set, nil
}

func (c *codexServers) Validate(content []byte) *artifact.ValidationResult {
	var doc map[string]any
	if err := toml.Unmarshal(content, &doc); err != nil {
		return invalidResult(artifact.ValidationIssue{Path: "/", Message: fmt.Sprintf("invalid TOML: %v", err)})
	}
	if raw, present := doc[codexServersKey]; present {
		if _, ok := raw.(map[string]any); !ok {
			return invalidResult(artifact.ValidationIssue{
				Path:    "/" + codexServersKey,
				Message: "must be a table keyed by server name",
				Keyword: "type",
			})
		}
	}
	return validResult()
}

func (c *codexServers) Deletable(artifact.Scope) bool { return false }
