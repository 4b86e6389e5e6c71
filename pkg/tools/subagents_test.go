//go:build !integration

package tools

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentsync/agentsync/pkg/artifact"
)

func TestSubagentFilenameFromName(t *testing.T) {
	adapter, err := Lookup("claudecode")
	if err != nil {
		t.Fatal(err)
	}
	agent := &artifact.Subagent{
		Stem:        "reviewer",
		Name:        "Code Reviewer",
		Description: "Reviews code for style and correctness",
		Body:        "You are a thorough reviewer.",
	}

	file, err := adapter.Subagents.FromCanonical(agent, artifact.ScopeProject)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(".claude", "agents", "code-reviewer.md")
	if file.Path != want {
		t.Errorf("path = %q, want %q", file.Path, want)
	}
	if !strings.Contains(string(file.Content), "name: code-reviewer") {
		t.Errorf("frontmatter should carry the sanitized name:\n%s", file.Content)
	}

	back, err := adapter.Subagents.ToCanonical(file, artifact.ScopeProject)
	if err != nil {
		t.Fatal(err)
	}
	if back.Name != "code-reviewer" || back.Stem != "code-reviewer" {
		t.Errorf("imported agent = %+v", back)
	}
	if back.Description != agent.Description || back.Body != agent.Body {
		t.Errorf("fields lost: %+v", back)
	}
}

func TestSubagentNameMustSanitize(t *testing.T) {
	adapter, _ := Lookup("claudecode")
	agent := &artifact.Subagent{Stem: "evil", Name: "/../../../", Body: "x"}

	_, err := adapter.Subagents.FromCanonical(agent, artifact.ScopeProject)
	if err == nil {
		t.Fatal("a name that sanitizes to nothing must be rejected")
	}
	if !artifact.IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestSubagentImportWithoutNameField(t *testing.T) {
	adapter, _ := Lookup("opencode")
	content := "---\ndescription: Debugs failing tests\nmode: subagent\n---\nFind the failure.\n"

	agent, err := adapter.Subagents.ToCanonical(&File{
		Path:    filepath.Join(".opencode", "agent", "debugger.md"),
		Content: []byte(content),
	}, artifact.ScopeProject)
	if err != nil {
		t.Fatal(err)
	}
	if agent.Name != "debugger" {
		t.Errorf("name should fall back to the file stem, got %q", agent.Name)
	}
	bag := agent.PassthroughFor("opencode")
	if bag["mode"] != "subagent" {
		t.Errorf("unrecognized field should ride in the bag, got %v", bag)
	}
}

func TestSubagentValidate(t *testing.T) {
	adapter, _ := Lookup("claudecode")

	res := adapter.Subagents.Validate(&File{
		Path:    "a.md",
		Content: []byte("---\nname: a\n---\nx\n"),
	})
	if res.Valid {
		t.Errorf("missing description should be invalid")
	}

	res = adapter.Subagents.Validate(&File{
		Path:    "a.md",
		Content: []byte("---\nname: a\ndescription: does things\n---\nx\n"),
	})
	if !res.Valid {
		t.Errorf("valid subagent rejected: %+v", res.Issues)
	}
}
