package tools

import (
	"fmt"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// markdownSubagents is the subagent family: one markdown file per agent in a
// fixed directory, the filename derived from the agent's Name field rather
// than the canonical stem, so renaming an agent renames its generated file.
type markdownSubagents struct {
	tool     string
	project  DirLocations
	global   DirLocations
	withName bool // native frontmatter carries an explicit name field
}

func (m *markdownSubagents) Locations(scope artifact.Scope) DirLocations {
	if scope == artifact.ScopeGlobal {
		return m.global
	}
	return m.project
}

func (m *markdownSubagents) FromCanonical(agent *artifact.Subagent, scope artifact.Scope) (*File, error) {
	loc := m.Locations(scope)
	if loc.Dir == "" {
		return nil, nil
	}

	stem, err := SanitizeFileStem(agent.Name)
	if err != nil {
		return nil, err
	}

	fm := applyBag(map[string]any{}, agent.PassthroughFor(m.tool))
	if m.withName {
		fm["name"] = stem
	}
	if agent.Description != "" {
		fm["description"] = agent.Description
	}
	if agent.Model != "" {
		fm["model"] = agent.Model
	}

	content, err := renderNative(fm, agent.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to render subagent %s for %s: %w", agent.Stem, m.tool, err)
	}
	return &File{Path: filepath.Join(loc.Dir, stem+loc.Ext), Content: content}, nil
}

func (m *markdownSubagents) ToCanonical(file *File, scope artifact.Scope) (*artifact.Subagent, error) {
	loc := m.Locations(scope)
	fm, body, err := parseNative(file.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file.Path, err)
	}

	stem := nativeStem(file.Path, loc.Ext)
	agent := &artifact.Subagent{Stem: stem, Name: stem, Body: body}

	recognized := []string{"description", "model"}
	if m.withName {
		recognized = append(recognized, "name")
		if s, ok := fm["name"].(string); ok && s != "" {
			agent.Name = s
		}
	}
	if s, ok := fm["description"].(string); ok {
		agent.Description = s
	}
	if s, ok := fm["model"].(string); ok {
		agent.Model = s
	}
	agent.Extra = bagInto(nil, m.tool, collectBag(fm, recognized...))
	return agent, nil
}

func (m *markdownSubagents) Validate(file *File) *artifact.ValidationResult {
	if m.withName {
		return validateNativeMarkdown(file, "name", "description")
	}
	return validateNativeMarkdown(file, "description")
}

func (m *markdownSubagents) Deletable(artifact.Scope) bool { return true }
