//go:build !integration

package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if res == nil || len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("result content is %T, want text", res.Content[0])
	}
	return text.Text
}

func TestMCPServerConstruction(t *testing.T) {
	if newMCPServer("test") == nil {
		t.Fatal("newMCPServer returned nil")
	}
}

func TestGenerateToolWritesFiles(t *testing.T) {
	dir := chdirTemp(t)
	writeCanonical(t, dir, "rules/main.md", "---\nroot: true\n---\nGuidance.\n")

	res, _, err := handleGenerateTool(context.Background(), nil, generateToolArgs{
		Targets: []string{"claudecode"},
	})
	if err != nil {
		t.Fatalf("handleGenerateTool() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("result marked as error: %s", resultText(t, res))
	}
	if !projectFileExists(dir, "CLAUDE.md") {
		t.Error("CLAUDE.md missing")
	}
	if !strings.Contains(resultText(t, res), "CLAUDE.md") {
		t.Errorf("result should name written files: %s", resultText(t, res))
	}
}

func TestGenerateToolFallsBackToConfigTargets(t *testing.T) {
	dir := chdirTemp(t)
	writeProjectFile(t, dir, "agentsync.yml", "targets:\n  - claudecode\n")
	writeCanonical(t, dir, "rules/main.md", "---\nroot: true\n---\nGuidance.\n")

	_, _, err := handleGenerateTool(context.Background(), nil, generateToolArgs{})
	if err != nil {
		t.Fatalf("handleGenerateTool() error = %v", err)
	}
	if !projectFileExists(dir, "CLAUDE.md") {
		t.Error("config targets should apply when the call passes none")
	}
}

func TestGenerateToolRequiresTargets(t *testing.T) {
	chdirTemp(t)

	_, _, err := handleGenerateTool(context.Background(), nil, generateToolArgs{})
	if err == nil || !strings.Contains(err.Error(), "targets") {
		t.Errorf("error = %v, want missing targets", err)
	}
}

func TestGenerateToolReportsFailures(t *testing.T) {
	dir := chdirTemp(t)
	writeCanonical(t, dir, "rules/broken.md", "---\nroot: [oops\n---\nx\n")

	res, _, err := handleGenerateTool(context.Background(), nil, generateToolArgs{
		Targets: []string{"claudecode"},
	})
	if err != nil {
		t.Fatalf("artifact failures are reported in the result, not as an error: %v", err)
	}
	if !res.IsError {
		t.Error("result should be marked as an error")
	}
	if !strings.Contains(resultText(t, res), "failed") {
		t.Errorf("result text = %s", resultText(t, res))
	}
}

func TestImportToolRoundTrip(t *testing.T) {
	dir := chdirTemp(t)
	writeProjectFile(t, dir, "CLAUDE.md", "Native guidance.\n")

	res, _, err := handleImportTool(context.Background(), nil, importToolArgs{Target: "claudecode"})
	if err != nil {
		t.Fatalf("handleImportTool() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("result marked as error: %s", resultText(t, res))
	}
	if !projectFileExists(dir, ".agentsync/rules/main.md") {
		t.Error("imported rule missing")
	}
}

func TestImportToolUnknownTarget(t *testing.T) {
	chdirTemp(t)

	_, _, err := handleImportTool(context.Background(), nil, importToolArgs{Target: "sublime"})
	if err == nil || !strings.Contains(err.Error(), "unknown tool ID") {
		t.Errorf("error = %v", err)
	}
}

func TestStatusToolReportsArtifacts(t *testing.T) {
	dir := chdirTemp(t)
	writeCanonical(t, dir, "rules/main.md", "---\nroot: true\n---\nx\n")

	res, _, err := handleStatusTool(context.Background(), nil, statusToolArgs{})
	if err != nil {
		t.Fatalf("handleStatusTool() error = %v", err)
	}
	if !strings.Contains(resultText(t, res), "rules/main.md") {
		t.Errorf("status text = %s", resultText(t, res))
	}
}
