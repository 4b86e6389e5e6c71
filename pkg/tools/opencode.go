package tools

import (
	"fmt"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// opencode reads AGENTS.md with detail files under .opencode/memories/,
// an "mcp" block merged into opencode.json, markdown commands, and agent
// definitions named by filename.
func newOpenCodeAdapter() *Adapter {
	const id = "opencode"
	return &Adapter{
		ID:   id,
		Name: "opencode",
		Rules: &rootFileRules{
			tool:    id,
			project: RuleLocations{RootPath: "AGENTS.md", Dir: filepath.Join(".opencode", "memories"), Ext: ".md"},
		},
		Servers: &jsonServers{
			tool:    id,
			project: "opencode.json",
			topKey:  "mcp",
			shape:   opencodeShape,
			// opencode.json is the tool's whole configuration; merged, never deleted.
			deletable: false,
		},
		Commands: &markdownCommands{
			tool:    id,
			project: DirLocations{Dir: filepath.Join(".opencode", "command"), Ext: ".md"},
			fields:  commandFields{description: true, model: true},
		},
		Subagents: &markdownSubagents{
			tool:    id,
			project: DirLocations{Dir: filepath.Join(".opencode", "agent"), Ext: ".md"},
		},
	}
}

// opencodeShape maps between the canonical server layout and opencode's:
// local servers use a single command array plus type: "local", remote ones
// type: "remote" with a url, env values use {env:VAR} placeholders, and
// disabling is expressed as enabled: false.
var opencodeShape = serverShape{
	toNative: func(def *artifact.ServerDef) map[string]any {
		m := map[string]any{}
		for k, v := range def.Extra {
			m[k] = v
		}
		if def.IsRemote() {
			m["type"] = "remote"
			m["url"] = def.URL
		} else {
			m["type"] = "local"
			command := collapseCommand(def.Command, def.Args)
			arr := make([]any, len(command))
			for i, part := range command {
				arr[i] = toOpenCodePlaceholders(part)
			}
			m["command"] = arr
		}
		if len(def.Env) > 0 {
			env := map[string]any{}
			for k, v := range def.Env {
				env[k] = toOpenCodePlaceholders(v)
			}
			m["environment"] = env
		}
		if def.Disabled {
			m["enabled"] = false
		}
		return m
	},
	fromNative: func(m map[string]any) (*artifact.ServerDef, error) {
		def := &artifact.ServerDef{Extra: map[string]any{}}
		for key, value := range m {
			switch key {
			case "type":
				// Redundant with the command/url split; dropped.
			case "command":
				items, ok := value.([]any)
				if !ok {
					return nil, artifact.NewValidationError("command", fmt.Sprintf("%v", value), "must be a list")
				}
				parts := make([]string, 0, len(items))
				for _, item := range items {
					s, ok := item.(string)
					if !ok {
						return nil, artifact.NewValidationError("command", fmt.Sprintf("%v", item), "entries must be strings")
					}
					parts = append(parts, fromOpenCodePlaceholders(s))
				}
				def.Command, def.Args = splitCommand(parts)
			case "url":
				s, ok := value.(string)
				if !ok {
					return nil, artifact.NewValidationError("url", fmt.Sprintf("%v", value), "must be a string")
				}
				def.URL = s
			case "environment":
				env, ok := value.(map[string]any)
				if !ok {
					return nil, artifact.NewValidationError("environment", fmt.Sprintf("%v", value), "must be an object")
				}
				def.Env = map[string]string{}
				for k, v := range env {
					s, ok := v.(string)
					if !ok {
						return nil, artifact.NewValidationError("environment", fmt.Sprintf("%v", v), "values must be strings")
					}
					def.Env[k] = fromOpenCodePlaceholders(s)
				}
			case "enabled":
				if b, ok := value.(bool); ok {
					def.Disabled = !b
				}
			default:
				def.Extra[key] = value
			}
		}
		return def, nil
	},
}
