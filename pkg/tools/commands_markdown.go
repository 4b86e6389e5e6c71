package tools

import (
	"fmt"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// commandFields declares which canonical command fields a tool's frontmatter
// can carry. Fields outside the set have no native representation and stay
// canonical-only.
type commandFields struct {
	description  bool
	argumentHint bool
	model        bool
}

// markdownCommands is the command family for tools that read one markdown
// prompt file per command from a fixed directory. The canonical stem is the
// command's trigger and becomes the filename. Tools in this family keep the
// canonical $ARGUMENTS placeholder.
type markdownCommands struct {
	tool    string
	project DirLocations
	global  DirLocations
	fields  commandFields
	plain   bool // bare prompt files without frontmatter
}

func (m *markdownCommands) Locations(scope artifact.Scope) DirLocations {
	if scope == artifact.ScopeGlobal {
		return m.global
	}
	return m.project
}

func (m *markdownCommands) FromCanonical(cmd *artifact.Command, scope artifact.Scope) (*File, error) {
	loc := m.Locations(scope)
	if loc.Dir == "" {
		return nil, nil
	}
	path := filepath.Join(loc.Dir, cmd.Stem+loc.Ext)

	if m.plain {
		return &File{Path: path, Content: renderPlain(cmd.Body)}, nil
	}

	fm := applyBag(map[string]any{}, cmd.PassthroughFor(m.tool))
	if m.fields.description && cmd.Description != "" {
		fm["description"] = cmd.Description
	}
	if m.fields.argumentHint && cmd.ArgumentHint != "" {
		fm["argument-hint"] = cmd.ArgumentHint
	}
	if m.fields.model && cmd.Model != "" {
		fm["model"] = cmd.Model
	}

	content, err := renderNative(fm, cmd.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to render command %s for %s: %w", cmd.Stem, m.tool, err)
	}
	return &File{Path: path, Content: content}, nil
}

func (m *markdownCommands) ToCanonical(file *File, scope artifact.Scope) (*artifact.Command, error) {
	loc := m.Locations(scope)
	stem := nativeStem(file.Path, loc.Ext)

	if m.plain {
		_, body, err := parseNative(file.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file.Path, err)
		}
		return &artifact.Command{Stem: stem, Body: body}, nil
	}

	fm, body, err := parseNative(file.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file.Path, err)
	}

	cmd := &artifact.Command{Stem: stem, Body: body}
	recognized := make([]string, 0, 3)
	if m.fields.description {
		recognized = append(recognized, "description")
		if s, ok := fm["description"].(string); ok {
			cmd.Description = s
		}
	}
	if m.fields.argumentHint {
		recognized = append(recognized, "argument-hint")
		if s, ok := fm["argument-hint"].(string); ok {
			cmd.ArgumentHint = s
		}
	}
	if m.fields.model {
		recognized = append(recognized, "model")
		if s, ok := fm["model"].(string); ok {
			cmd.Model = s
		}
	}
	cmd.Extra = bagInto(nil, m.tool, collectBag(fm, recognized...))
	return cmd, nil
}

func (m *markdownCommands) Validate(file *File) *artifact.ValidationResult {
	return validateNativeMarkdown(file)
}

func (m *markdownCommands) Deletable(artifact.Scope) bool { return true }
