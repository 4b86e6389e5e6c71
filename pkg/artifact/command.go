package artifact

import (
	"fmt"

	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/parser"
)

var commandLog = logger.New("artifact:command")

// ArgumentsPlaceholder is the canonical interpolation marker for a command's
// full argument string. Adapters rewrite it to their tool's native syntax.
const ArgumentsPlaceholder = "$ARGUMENTS"

// Command is a canonical slash-command: a prompt body plus invocation
// metadata. The canonical file stem is the command's trigger name.
type Command struct {
	Stem         string
	Description  string
	ArgumentHint string
	Model        string
	Targets      *Targets
	Extra        map[string]any
	Body         string
}

const (
	fieldArgumentHint = "argument-hint"
	fieldModel        = "model"
)

// ParseCommand builds a Command from canonical file content.
func ParseCommand(stem, content string) (*Command, error) {
	res, err := parser.ExtractFrontmatter(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %w", stem, err)
	}

	c := &Command{Stem: stem, Body: res.Body, Extra: map[string]any{}}
	for key, value := range res.Frontmatter {
		switch key {
		case fieldTargets:
			if c.Targets, err = ParseTargets(value); err != nil {
				return nil, err
			}
		case fieldDescription:
			if c.Description, err = stringField(res.Frontmatter, fieldDescription); err != nil {
				return nil, err
			}
		case fieldArgumentHint:
			if c.ArgumentHint, err = stringField(res.Frontmatter, fieldArgumentHint); err != nil {
				return nil, err
			}
		case fieldModel:
			if c.Model, err = stringField(res.Frontmatter, fieldModel); err != nil {
				return nil, err
			}
		default:
			c.Extra[key] = value
		}
	}
	commandLog.Printf("Parsed command: stem=%s targets=%v", stem, c.Targets.List())
	return c, nil
}

// WithBody returns a copy of the command with the body replaced.
func (c *Command) WithBody(body string) *Command {
	clone := *c
	clone.Body = body
	return &clone
}

// PassthroughFor returns the tool-namespaced passthrough bag for a tool ID.
func (c *Command) PassthroughFor(tool string) map[string]any {
	bag, ok := c.Extra[tool].(map[string]any)
	if !ok {
		return nil
	}
	return copyMap(bag)
}

// Frontmatter reassembles the canonical frontmatter map.
func (c *Command) Frontmatter() map[string]any {
	fm := copyMap(c.Extra)
	if fm == nil {
		fm = map[string]any{}
	}
	if c.Targets != nil {
		fm[fieldTargets] = c.Targets.Value()
	}
	if c.Description != "" {
		fm[fieldDescription] = c.Description
	}
	if c.ArgumentHint != "" {
		fm[fieldArgumentHint] = c.ArgumentHint
	}
	if c.Model != "" {
		fm[fieldModel] = c.Model
	}
	return fm
}

// Render produces the canonical file content for the command.
func (c *Command) Render() (string, error) {
	return parser.RenderFrontmatter(c.Frontmatter(), c.Body)
}

// FileName returns the canonical file name for the command.
func (c *Command) FileName() string {
	return c.Stem + ".md"
}
