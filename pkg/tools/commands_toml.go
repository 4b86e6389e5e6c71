package tools

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// geminiArgsPlaceholder is the Gemini CLI's interpolation marker for the
// full argument string inside a custom command prompt.
const geminiArgsPlaceholder = "{{args}}"

// tomlCommands is the command family for the Gemini CLI: one TOML document
// per command with a description and a prompt, the canonical $ARGUMENTS
// placeholder rewritten to {{args}} and back.
type tomlCommands struct {
	tool string
}

func (t *tomlCommands) Locations(scope artifact.Scope) DirLocations {
	// Project and user-wide commands share the same relative layout.
	return DirLocations{Dir: filepath.Join(".gemini", "commands"), Ext: ".toml"}
}

func (t *tomlCommands) FromCanonical(cmd *artifact.Command, scope artifact.Scope) (*File, error) {
	loc := t.Locations(scope)

	doc := applyBag(map[string]any{}, cmd.PassthroughFor(t.tool))
	if cmd.Description != "" {
		doc["description"] = cmd.Description
	}
	doc["prompt"] = strings.ReplaceAll(cmd.Body, artifact.ArgumentsPlaceholder, geminiArgsPlaceholder)

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to render command %s for %s: %w", cmd.Stem, t.tool, err)
	}
	return &File{Path: filepath.Join(loc.Dir, cmd.Stem+loc.Ext), Content: data}, nil
}

func (t *tomlCommands) ToCanonical(file *File, scope artifact.Scope) (*artifact.Command, error) {
	loc := t.Locations(scope)

	var doc map[string]any
	if err := toml.Unmarshal(file.Content, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file.Path, err)
	}

	cmd := &artifact.Command{Stem: nativeStem(file.Path, loc.Ext)}
	if s, ok := doc["description"].(string); ok {
		cmd.Description = s
	}
	if s, ok := doc["prompt"].(string); ok {
		cmd.Body = strings.ReplaceAll(s, geminiArgsPlaceholder, artifact.ArgumentsPlaceholder)
	}
	cmd.Extra = bagInto(nil, t.tool, collectBag(doc, "description", "prompt"))
	return cmd, nil
}

func (t *tomlCommands) Validate(file *File) *artifact.ValidationResult {
	var doc map[string]any
	if err := toml.Unmarshal(file.Content, &doc); err != nil {
		return invalidResult(artifact.ValidationIssue{Path: "/", Message: fmt.Sprintf("invalid TOML: %v", err)})
	}
	if _, ok := doc["prompt"].(string); !ok {
		return invalidResult(artifact.ValidationIssue{
			Path:    "/prompt",
			Message: "required field is missing or not a string",
			Keyword: "required",
		})
	}
	return validResult()
}

func (t *tomlCommands) Deletable(artifact.Scope) bool { return true }
