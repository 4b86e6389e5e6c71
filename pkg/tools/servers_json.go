package tools

import (
	"encoding/json"
	"fmt"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/logger"
)

var jsonServersLog = logger.New("tools:servers_json")

// serverShape maps one canonical server definition to a tool's native JSON
// entry and back. Shapes differ in command representation (string+args vs a
// single array), env placeholder syntax, and field names.
type serverShape struct {
	toNative   func(def *artifact.ServerDef) map[string]any
	fromNative func(m map[string]any) (*artifact.ServerDef, error)
}

// standardShape covers the tools whose native entries match the canonical
// member layout (command/args/url/env/disabled plus passthrough).
var standardShape = serverShape{
	toNative: func(def *artifact.ServerDef) map[string]any {
		m := def.Members()
		delete(m, "targets")
		return m
	},
	fromNative: artifact.ServerDefFromMembers,
}

// jsonServers is the server family for tools configured through a JSON
// document: either a dedicated server file or a shared settings file. The
// converter only ever owns topKey; every other top-level member of an
// existing document is carried through a rewrite untouched, which is what
// makes shared settings files safe to regenerate.
type jsonServers struct {
	tool      string
	project   string
	global    string
	topKey    string
	shape     serverShape
	deletable bool
}

func (s *jsonServers) Location(scope artifact.Scope) string {
	if scope == artifact.ScopeGlobal {
		return s.global
	}
	return s.project
}

func (s *jsonServers) FromCanonical(set *artifact.ServerSet, existing []byte) ([]byte, error) {
	doc := map[string]any{}
	if len(existing) > 0 {
		if err := json.Unmarshal(existing, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse existing %s config: %w", s.tool, err)
		}
	}

	servers := map[string]any{}
	for name, def := range set.Servers {
		servers[name] = s.shape.toNative(def)
	}
	doc[s.topKey] = servers
	jsonServersLog.Printf("Rendering %s servers: tool=%s count=%d", s.topKey, s.tool, len(servers))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s config: %w", s.tool, err)
	}
	return append(data, '\n'), nil
}

func (s *jsonServers) ToCanonical(content []byte) (*artifact.ServerSet, error) {
	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s config: %w", s.tool, err)
	}

	set := &artifact.ServerSet{Servers: map[string]*artifact.ServerDef{}}
	block, ok := doc[s.topKey].(map[string]any)
	if !ok {
		return set, nil
	}
	for name, raw := range block {
		members, ok := raw.(map[string]any)
		if !ok {
			return nil, artifact.NewValidationError("server "+name, fmt.Sprintf("%v", raw), "must be an object")
		}
		def, err := s.shape.fromNative(members)
		if err != nil {
			return nil, fmt.Errorf("server %q: %w", name, err)
		}
		set.Servers[name] = def
	}
	return set, nil
}

func (s *jsonServers) Validate(content []byte) *artifact.ValidationResult {
	var doc map[string]any
	if err := json.Unmarshal(content, &doc); err != nil {
		return invalidResult(artifact.ValidationIssue{Path: "/", Message: fmt.Sprintf("invalid JSON: %v", err)})
	}
	if raw, present := doc[s.topKey]; present {
		if _, ok := raw.(map[string]any); !ok {
			return invalidResult(artifact.ValidationIssue{
				Path:    "/" + s.topKey,
				Message: "must be an object keyed by server name",
				Keyword: "type",
			})
		}
	}
	return validResult()
}

func (s *jsonServers) Deletable(artifact.Scope) bool { return s.deletable }
