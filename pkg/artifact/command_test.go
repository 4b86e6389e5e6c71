//go:build !integration

package artifact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	content := `---
description: Review a pull request
argument-hint: "[pr-number]"
model: claude-sonnet-4
targets: ["claudecode"]
---
Review PR #$ARGUMENTS and summarize the risky changes.
`
	cmd, err := ParseCommand("review-pr", content)
	require.NoError(t, err)

	assert.Equal(t, "review-pr", cmd.Stem)
	assert.Equal(t, "Review a pull request", cmd.Description)
	assert.Equal(t, "[pr-number]", cmd.ArgumentHint)
	assert.Equal(t, "claude-sonnet-4", cmd.Model)
	assert.True(t, cmd.Targets.Includes("claudecode"))
	assert.False(t, cmd.Targets.Includes("geminicli"))
	assert.Contains(t, cmd.Body, ArgumentsPlaceholder)
}

func TestCommandRenderRoundTrip(t *testing.T) {
	cmd := &Command{
		Stem:         "deploy",
		Description:  "Deploy to an environment",
		ArgumentHint: "[env]",
		Extra:        map[string]any{"geminicli": map[string]any{"mode": "yolo"}},
		Body:         "Deploy the current branch to $ARGUMENTS.",
	}

	first, err := cmd.Render()
	require.NoError(t, err)

	reparsed, err := ParseCommand("deploy", first)
	require.NoError(t, err)
	second, err := reparsed.Render()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, cmd.Description, reparsed.Description)
	assert.Equal(t, cmd.ArgumentHint, reparsed.ArgumentHint)
	assert.Equal(t, map[string]any{"mode": "yolo"}, reparsed.PassthroughFor("geminicli"))
}

func TestCommandFrontmatterOmitsZeroFields(t *testing.T) {
	cmd := &Command{Stem: "plain", Body: "Do the thing."}
	rendered, err := cmd.Render()
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(rendered, "---"))
}

func TestParseCommandRejectsWrongTypes(t *testing.T) {
	_, err := ParseCommand("bad", "---\nargument-hint: [1, 2]\n---\nBody.\n")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}
