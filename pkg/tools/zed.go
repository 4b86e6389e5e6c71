package tools

import (
	"fmt"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// Zed reads a single .rules file at the project root and context server
// definitions merged into .zed/settings.json.
func newZedAdapter() *Adapter {
	const id = "zed"
	return &Adapter{
		ID:   id,
		Name: "Zed",
		Rules: &rootFileRules{
			tool:    id,
			project: RuleLocations{RootPath: ".rules"},
		},
		Servers: &jsonServers{
			tool:    id,
			project: filepath.Join(".zed", "settings.json"),
			topKey:  "context_servers",
			shape:   zedShape,
			// settings.json holds editor configuration beyond servers; merged,
			// never deleted.
			deletable: false,
		},
	}
}

// zedShape maps between the canonical server layout and Zed's: local servers
// nest path, args and env under a "command" object, remote ones carry a url.
var zedShape = serverShape{
	toNative: func(def *artifact.ServerDef) map[string]any {
		m := map[string]any{}
		for k, v := range def.Extra {
			m[k] = v
		}
		if def.IsRemote() {
			m["url"] = def.URL
			return m
		}
		command := map[string]any{"path": def.Command}
		if len(def.Args) > 0 {
			command["args"] = def.Args
		}
		if len(def.Env) > 0 {
			command["env"] = def.Env
		}
		m["command"] = command
		return m
	},
	fromNative: func(m map[string]any) (*artifact.ServerDef, error) {
		def := &artifact.ServerDef{Extra: map[string]any{}}
		for key, value := range m {
			switch key {
			case "command":
				command, ok := value.(map[string]any)
				if !ok {
					return nil, artifact.NewValidationError("command", fmt.Sprintf("%v", value), "must be an object")
				}
				if s, ok := command["path"].(string); ok {
					def.Command = s
				}
				if raw, present := command["args"]; present {
					args, ok := stringList(raw)
					if !ok {
						return nil, artifact.NewValidationError("args", fmt.Sprintf("%v", raw), "must be a list of strings")
					}
					def.Args = args
				}
				if raw, present := command["env"]; present {
					env, ok := stringMap(raw)
					if !ok {
						return nil, artifact.NewValidationError("env", fmt.Sprintf("%v", raw), "values must be strings")
					}
					def.Env = env
				}
			case "url":
				s, ok := value.(string)
				if !ok {
					return nil, artifact.NewValidationError("url", fmt.Sprintf("%v", value), "must be a string")
				}
				def.URL = s
			default:
				def.Extra[key] = value
			}
		}
		return def, nil
	},
}
