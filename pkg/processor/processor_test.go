//go:build !integration

package processor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/testutil"
	"github.com/agentsync/agentsync/pkg/tools"
)

func mustAdapter(t *testing.T, id string) *tools.Adapter {
	t.Helper()
	adapter, err := tools.Lookup(id)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", id, err)
	}
	return adapter
}

// writeSource places one canonical artifact file under baseDir/.agentsync.
func writeSource(t *testing.T, baseDir, rel, content string) {
	t.Helper()
	path := filepath.Join(artifact.Dir(baseDir), rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

// writeNativeFile places one tool-native file under baseDir.
func writeNativeFile(t *testing.T, baseDir, rel, content string) {
	t.Helper()
	path := filepath.Join(baseDir, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestGenerateRootRuleScenario(t *testing.T) {
	base := testutil.TempDir(t, "gen-root-*")
	writeSource(t, base, "rules/main.md", "---\nroot: true\ntargets: [\"*\"]\nglobs: [\"**/*\"]\n---\nProject guidance.\n")

	p := New(mustAdapter(t, "claudecode"), base)
	outcomes := p.Generate([]artifact.Feature{artifact.FeatureRules})
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d", len(outcomes))
	}
	out := outcomes[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}
	if len(out.Written) != 1 || out.Written[0] != "CLAUDE.md" {
		t.Fatalf("written = %v, want exactly CLAUDE.md", out.Written)
	}
	if !strings.Contains(readFile(t, filepath.Join(base, "CLAUDE.md")), "Project guidance.") {
		t.Errorf("root file missing body")
	}
}

func TestGenerateTargetsFiltering(t *testing.T) {
	base := testutil.TempDir(t, "gen-targets-*")
	writeSource(t, base, "rules/api.md", "---\ntargets: [\"claudecode\"]\n---\nAPI conventions.\n")

	out := New(mustAdapter(t, "claudecode"), base).Generate([]artifact.Feature{artifact.FeatureRules})[0]
	if len(out.Written) != 1 {
		t.Fatalf("claudecode written = %v", out.Written)
	}

	other := testutil.TempDir(t, "gen-targets-b-*")
	writeSource(t, other, "rules/api.md", "---\ntargets: [\"claudecode\"]\n---\nAPI conventions.\n")
	out = New(mustAdapter(t, "cursor"), other).Generate([]artifact.Feature{artifact.FeatureRules})[0]
	if len(out.Written) != 0 {
		t.Fatalf("cursor written = %v, want none", out.Written)
	}
	if len(out.Skipped) != 1 {
		t.Errorf("cursor skipped = %v, want the ineligible rule", out.Skipped)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	base := testutil.TempDir(t, "gen-idem-*")
	writeSource(t, base, "rules/main.md", "---\nroot: true\n---\nGuidance.\n")
	writeSource(t, base, "rules/style.md", "---\ndescription: Style notes\n---\nUse tabs.\n")
	writeSource(t, base, "commands/review.md", "---\ndescription: Review\n---\nReview $ARGUMENTS.\n")
	writeSource(t, base, "mcp.json", `{"mcpServers": {"docs": {"command": "uvx", "args": ["mcp-docs"]}}}`)

	features := []artifact.Feature{artifact.FeatureRules, artifact.FeatureMCP, artifact.FeatureCommands}
	p := New(mustAdapter(t, "claudecode"), base)

	first := p.Generate(features)
	snapshot := map[string]string{}
	for _, out := range first {
		if !out.OK() {
			t.Fatalf("%s failures: %+v", out.Feature, out.Failures)
		}
		for _, rel := range out.Written {
			snapshot[rel] = readFile(t, filepath.Join(base, rel))
		}
	}
	if len(snapshot) != 4 {
		t.Fatalf("written files = %d, want 4 (root, detail, command, mcp)", len(snapshot))
	}

	second := p.Generate(features)
	for _, out := range second {
		for _, rel := range out.Written {
			if got := readFile(t, filepath.Join(base, rel)); got != snapshot[rel] {
				t.Errorf("%s changed between passes:\n%q\nvs\n%q", rel, snapshot[rel], got)
			}
		}
	}
}

func TestGenerateRootFileReferencesDetails(t *testing.T) {
	base := testutil.TempDir(t, "gen-refs-*")
	writeSource(t, base, "rules/main.md", "---\nroot: true\n---\nGuidance.\n")
	writeSource(t, base, "rules/style.md", "---\ndescription: Style notes\n---\nUse tabs.\n")

	out := New(mustAdapter(t, "claudecode"), base).Generate([]artifact.Feature{artifact.FeatureRules})[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}

	root := readFile(t, filepath.Join(base, "CLAUDE.md"))
	want := "- @" + filepath.ToSlash(filepath.Join(".claude", "memories", "style.md")) + ": Style notes"
	if !strings.Contains(root, want) {
		t.Errorf("root file missing reference %q:\n%s", want, root)
	}
	if !exists(filepath.Join(base, ".claude", "memories", "style.md")) {
		t.Errorf("detail file not written")
	}
}

func TestOrphanRemoval(t *testing.T) {
	base := testutil.TempDir(t, "orphan-*")
	writeSource(t, base, "rules/keep.md", "Keep this.\n")
	writeNativeFile(t, base, ".claude/memories/old.md", "Stale.\n")
	writeNativeFile(t, base, ".claude/memories/keep.md", "Old content.\n")

	// Without the delete flag the stale file survives.
	out := New(mustAdapter(t, "claudecode"), base).Generate([]artifact.Feature{artifact.FeatureRules})[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}
	if !exists(filepath.Join(base, ".claude", "memories", "old.md")) {
		t.Fatalf("orphan deleted without the delete flag")
	}

	out = New(mustAdapter(t, "claudecode"), base, WithDeleteOrphans(true)).
		Generate([]artifact.Feature{artifact.FeatureRules})[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}
	if exists(filepath.Join(base, ".claude", "memories", "old.md")) {
		t.Errorf("orphan survived a delete pass")
	}
	if !exists(filepath.Join(base, ".claude", "memories", "keep.md")) {
		t.Errorf("regenerated file was deleted")
	}
	if len(out.Deleted) != 1 || out.Deleted[0] != filepath.Join(".claude", "memories", "old.md") {
		t.Errorf("deleted = %v", out.Deleted)
	}
}

func TestOrphanRemovalSparesNonDeletable(t *testing.T) {
	base := testutil.TempDir(t, "orphan-merged-*")
	writeNativeFile(t, base, ".gemini/settings.json", `{"theme": "dark", "mcpServers": {"old": {"command": "x"}}}`)

	// No canonical server definitions at all: the settings file is not ours
	// to delete.
	out := New(mustAdapter(t, "geminicli"), base, WithDeleteOrphans(true)).
		Generate([]artifact.Feature{artifact.FeatureMCP})[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}
	if !exists(filepath.Join(base, ".gemini", "settings.json")) {
		t.Fatalf("shared settings file was deleted")
	}
	if len(out.Deleted) != 0 {
		t.Errorf("deleted = %v, want none", out.Deleted)
	}
}

func TestGenerateClearsMergedServerBlock(t *testing.T) {
	base := testutil.TempDir(t, "gen-clear-*")
	writeSource(t, base, "mcp.json", `{"mcpServers": {"private": {"command": "x", "targets": ["claudecode"]}}}`)
	writeNativeFile(t, base, ".gemini/settings.json", `{"theme": "dark", "mcpServers": {"stale": {"command": "old"}}}`)

	out := New(mustAdapter(t, "geminicli"), base).Generate([]artifact.Feature{artifact.FeatureMCP})[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}

	content := readFile(t, filepath.Join(base, ".gemini", "settings.json"))
	if !strings.Contains(content, `"theme": "dark"`) {
		t.Errorf("unrelated settings lost:\n%s", content)
	}
	if strings.Contains(content, "stale") {
		t.Errorf("owned block not cleared:\n%s", content)
	}
	if len(out.Skipped) != 1 {
		t.Errorf("skipped = %v, want the ineligible server", out.Skipped)
	}
}

func TestGenerateDryRun(t *testing.T) {
	base := testutil.TempDir(t, "dry-*")
	writeSource(t, base, "rules/main.md", "---\nroot: true\n---\nGuidance.\n")

	out := New(mustAdapter(t, "claudecode"), base, WithDryRun(true)).
		Generate([]artifact.Feature{artifact.FeatureRules})[0]
	if len(out.Written) != 1 {
		t.Fatalf("dry run should report planned writes, got %v", out.Written)
	}
	if exists(filepath.Join(base, "CLAUDE.md")) {
		t.Errorf("dry run wrote a file")
	}
}

func TestGenerateSkipsUnsupportedFeatures(t *testing.T) {
	base := testutil.TempDir(t, "unsupported-*")
	writeSource(t, base, "commands/x.md", "Do x.\n")

	// warp supports rules only; requesting commands yields no outcome at all.
	outcomes := New(mustAdapter(t, "warp"), base).Generate([]artifact.Feature{artifact.FeatureCommands})
	if len(outcomes) != 0 {
		t.Fatalf("outcomes = %+v, want none", outcomes)
	}
}

func TestGenerateIsolatesArtifactFailures(t *testing.T) {
	base := testutil.TempDir(t, "isolate-*")
	writeSource(t, base, "rules/broken.md", "---\nroot: [not a bool\n---\nx\n")
	writeSource(t, base, "rules/good.md", "Good guidance.\n")

	out := New(mustAdapter(t, "cursor"), base).Generate([]artifact.Feature{artifact.FeatureRules})[0]
	if len(out.Failures) != 1 {
		t.Fatalf("failures = %+v, want exactly one", out.Failures)
	}
	if out.Failures[0].Name != "broken" {
		t.Errorf("failure name = %q", out.Failures[0].Name)
	}
	if len(out.Written) != 1 {
		t.Errorf("written = %v, the good rule should still generate", out.Written)
	}
}

type panicRules struct{}

func (panicRules) Locations(artifact.Scope) tools.RuleLocations {
	return tools.RuleLocations{Dir: ".panic", Ext: ".md"}
}
func (panicRules) FromCanonical(*artifact.Rule, *tools.RuleContext) (*tools.File, error) {
	panic("converter bug")
}
func (panicRules) ToCanonical(*tools.File, artifact.Scope) (*artifact.Rule, error) {
	panic("converter bug")
}
func (panicRules) Validate(*tools.File) *artifact.ValidationResult {
	return &artifact.ValidationResult{Valid: true}
}
func (panicRules) Deletable(artifact.Scope) bool { return true }

func TestPassPanicIsCaught(t *testing.T) {
	base := testutil.TempDir(t, "panic-*")
	writeSource(t, base, "rules/x.md", "x\n")

	adapter := &tools.Adapter{ID: "broken", Name: "Broken", Rules: panicRules{}}
	outcomes := New(adapter, base).Generate([]artifact.Feature{artifact.FeatureRules})
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d", len(outcomes))
	}
	out := outcomes[0]
	if out.OK() {
		t.Fatalf("panicking pass should report a failure")
	}
	if len(out.Written) != 0 {
		t.Errorf("written = %v", out.Written)
	}
}
