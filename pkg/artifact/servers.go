package artifact

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/agentsync/agentsync/pkg/logger"
)

var serversLog = logger.New("artifact:servers")

// serversKey is the top-level key of the canonical server definition document.
const serversKey = "mcpServers"

// ServerDef is one canonical MCP server definition. Local servers set
// Command (plus Args); remote servers set URL. Setting both is a conflict.
// Unrecognized members ride in Extra and are preserved through conversion.
type ServerDef struct {
	Command  string
	Args     []string
	URL      string
	Env      map[string]string
	Disabled bool
	Targets  *Targets
	Extra    map[string]any
}

// ServerSet is the canonical collection of server definitions, keyed by
// server name. It corresponds to one mcp.json document.
type ServerSet struct {
	Servers map[string]*ServerDef
	Extra   map[string]any // unrecognized top-level document members
}

// ParseServerSet parses the canonical JSON document.
func ParseServerSet(data []byte) (*ServerSet, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse server definitions: %w", err)
	}

	set := &ServerSet{Servers: map[string]*ServerDef{}, Extra: map[string]any{}}
	for key, raw := range doc {
		if key != serversKey {
			var v any
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("failed to parse %q: %w", key, err)
			}
			set.Extra[key] = v
			continue
		}

		var servers map[string]json.RawMessage
		if err := json.Unmarshal(raw, &servers); err != nil {
			return nil, fmt.Errorf("failed to parse %q: %w", serversKey, err)
		}
		for name, rawDef := range servers {
			def, err := parseServerDef(rawDef)
			if err != nil {
				return nil, fmt.Errorf("server %q: %w", name, err)
			}
			set.Servers[name] = def
		}
	}
	serversLog.Printf("Parsed server set: servers=%d", len(set.Servers))
	return set, nil
}

func parseServerDef(data []byte) (*ServerDef, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return ServerDefFromMembers(raw)
}

// ServerDefFromMembers builds a definition from a decoded JSON object in the
// canonical shape. Adapters whose native shape matches the canonical one
// reuse it when reading native files.
func ServerDefFromMembers(raw map[string]any) (*ServerDef, error) {
	def := &ServerDef{Extra: map[string]any{}}
	for key, value := range raw {
		switch key {
		case "command":
			s, ok := value.(string)
			if !ok {
				return nil, NewValidationError("command", fmt.Sprintf("%v", value), "must be a string")
			}
			def.Command = s
		case "args":
			args, err := anyToStrings(value)
			if err != nil {
				return nil, NewValidationError("args", fmt.Sprintf("%v", value), "must be a list of strings")
			}
			def.Args = args
		case "url":
			s, ok := value.(string)
			if !ok {
				return nil, NewValidationError("url", fmt.Sprintf("%v", value), "must be a string")
			}
			def.URL = s
		case "env":
			env, err := anyToStringMap(value)
			if err != nil {
				return nil, NewValidationError("env", fmt.Sprintf("%v", value), "values must be strings")
			}
			def.Env = env
		case "disabled":
			b, ok := value.(bool)
			if !ok {
				return nil, NewValidationError("disabled", fmt.Sprintf("%v", value), "must be a boolean")
			}
			def.Disabled = b
		case "targets":
			t, err := ParseTargets(value)
			if err != nil {
				return nil, err
			}
			def.Targets = t
		default:
			def.Extra[key] = value
		}
	}
	return def, nil
}

// Validate checks the definition's internal consistency.
func (d *ServerDef) Validate(name string) error {
	if d.Command != "" && d.URL != "" {
		return NewConflictError("server "+name, "command", "url")
	}
	if d.Command == "" && d.URL == "" {
		return NewValidationError("server "+name, "", "must set either command or url")
	}
	return nil
}

// IsRemote reports whether the server is addressed by URL rather than
// launched as a local process.
func (d *ServerDef) IsRemote() bool {
	return d.URL != ""
}

// Members returns the JSON object form of the definition, with recognized
// fields and passthrough merged. Callers may reshape it for native formats.
func (d *ServerDef) Members() map[string]any {
	m := copyMap(d.Extra)
	if m == nil {
		m = map[string]any{}
	}
	if d.Command != "" {
		m["command"] = d.Command
	}
	if len(d.Args) > 0 {
		m["args"] = stringsToAny(d.Args)
	}
	if d.URL != "" {
		m["url"] = d.URL
	}
	if len(d.Env) > 0 {
		env := make(map[string]any, len(d.Env))
		for k, v := range d.Env {
			env[k] = v
		}
		m["env"] = env
	}
	if d.Disabled {
		m["disabled"] = true
	}
	if d.Targets != nil {
		m["targets"] = d.Targets.Value()
	}
	return m
}

// Clone returns a deep copy of the definition.
func (d *ServerDef) Clone() *ServerDef {
	clone := *d
	clone.Args = append([]string(nil), d.Args...)
	if d.Env != nil {
		clone.Env = make(map[string]string, len(d.Env))
		for k, v := range d.Env {
			clone.Env[k] = v
		}
	}
	clone.Extra = copyMap(d.Extra)
	return &clone
}

// Names returns the server names in sorted order.
func (s *ServerSet) Names() []string {
	names := make([]string, 0, len(s.Servers))
	for name := range s.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterFor returns a copy of the set containing only servers whose targets
// admit the given tool ID.
func (s *ServerSet) FilterFor(tool string) *ServerSet {
	out := &ServerSet{Servers: map[string]*ServerDef{}, Extra: copyMap(s.Extra)}
	for name, def := range s.Servers {
		if def.Targets.Includes(tool) {
			out.Servers[name] = def
		}
	}
	return out
}

// Render produces the canonical JSON document with a trailing newline.
// Object keys serialize in sorted order, so repeated renders are
// byte-identical.
func (s *ServerSet) Render() ([]byte, error) {
	doc := copyMap(s.Extra)
	if doc == nil {
		doc = map[string]any{}
	}
	servers := make(map[string]any, len(s.Servers))
	for name, def := range s.Servers {
		servers[name] = def.Members()
	}
	doc[serversKey] = servers

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal server definitions: %w", err)
	}
	return append(data, '\n'), nil
}

func anyToStrings(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("not a list")
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("not a string: %v", item)
		}
		out = append(out, s)
	}
	return out, nil
}

func anyToStringMap(v any) (map[string]string, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("not an object")
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("not a string: %v", val)
		}
		out[k] = s
	}
	return out, nil
}
