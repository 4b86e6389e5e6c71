//go:build !integration

package processor

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/testutil"
)

func TestImportRules(t *testing.T) {
	base := testutil.TempDir(t, "import-rules-*")
	writeNativeFile(t, base, "CLAUDE.md", "Top guidance.\n\nDetailed guidance is available in the following files:\n\n- @.claude/memories/style.md\n")
	writeNativeFile(t, base, ".claude/memories/style.md", "Use tabs.\n")

	out := New(mustAdapter(t, "claudecode"), base).Import([]artifact.Feature{artifact.FeatureRules})[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}
	if len(out.Written) != 2 {
		t.Fatalf("written = %v, want root and detail", out.Written)
	}

	root := readFile(t, filepath.Join(artifact.RulesDir(base), "main.md"))
	if !strings.Contains(root, "root: true") {
		t.Errorf("imported root rule missing root flag:\n%s", root)
	}
	if strings.Contains(root, "Detailed guidance is available") {
		t.Errorf("reference list leaked into canonical body:\n%s", root)
	}

	detail := readFile(t, filepath.Join(artifact.RulesDir(base), "style.md"))
	if !strings.Contains(detail, "Use tabs.") {
		t.Errorf("detail rule body lost:\n%s", detail)
	}
}

func TestImportZeroNativeFilesIsNoOp(t *testing.T) {
	base := testutil.TempDir(t, "import-empty-*")

	outcomes := New(mustAdapter(t, "claudecode"), base).Import([]artifact.Feature{
		artifact.FeatureRules, artifact.FeatureMCP, artifact.FeatureCommands, artifact.FeatureSubagents,
	})
	for _, out := range outcomes {
		if !out.OK() || len(out.Written) != 0 {
			t.Errorf("%s: outcome = %+v, want clean no-op", out.Feature, out)
		}
	}
	if exists(artifact.Dir(base)) {
		t.Errorf("no-op import should not create the canonical directory")
	}
}

func TestImportServers(t *testing.T) {
	base := testutil.TempDir(t, "import-mcp-*")
	writeNativeFile(t, base, ".mcp.json", `{"mcpServers": {"docs": {"command": "uvx", "args": ["mcp-docs"]}}}`)

	out := New(mustAdapter(t, "claudecode"), base).Import([]artifact.Feature{artifact.FeatureMCP})[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}

	canonical := readFile(t, artifact.ServerFile(base))
	if !strings.Contains(canonical, `"mcpServers"`) || !strings.Contains(canonical, `"docs"`) {
		t.Errorf("canonical server file = %s", canonical)
	}
}

func TestImportIgnore(t *testing.T) {
	base := testutil.TempDir(t, "import-ignore-*")
	writeNativeFile(t, base, ".cursorignore", "dist/\n*.log\n")

	out := New(mustAdapter(t, "cursor"), base).Import([]artifact.Feature{artifact.FeatureIgnore})[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}

	canonical := readFile(t, filepath.Join(artifact.IgnoreDir(base), "default.md"))
	if !strings.Contains(canonical, "dist/") {
		t.Errorf("canonical ignore = %s", canonical)
	}
}

func TestImportCommands(t *testing.T) {
	base := testutil.TempDir(t, "import-cmd-*")
	writeNativeFile(t, base, ".claude/commands/review.md", "---\ndescription: Review changes\n---\nReview $ARGUMENTS.\n")

	out := New(mustAdapter(t, "claudecode"), base).Import([]artifact.Feature{artifact.FeatureCommands})[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}

	canonical := readFile(t, filepath.Join(artifact.CommandsDir(base), "review.md"))
	if !strings.Contains(canonical, "description: Review changes") {
		t.Errorf("canonical command = %s", canonical)
	}
	if !strings.Contains(canonical, "$ARGUMENTS") {
		t.Errorf("placeholder lost: %s", canonical)
	}
}

func TestImportStemNormalization(t *testing.T) {
	base := testutil.TempDir(t, "import-stem-*")
	writeNativeFile(t, base, ".cursor/rules/MyRule.mdc", "---\nalwaysApply: false\n---\nx\n")

	out := New(mustAdapter(t, "cursor"), base).Import([]artifact.Feature{artifact.FeatureRules})[0]
	if !out.OK() {
		t.Fatalf("failures: %+v", out.Failures)
	}
	if !exists(filepath.Join(artifact.RulesDir(base), "my-rule.md")) {
		t.Errorf("imported stem not normalized; written = %v", out.Written)
	}
}

func TestImportIsolatesBrokenFiles(t *testing.T) {
	base := testutil.TempDir(t, "import-broken-*")
	writeNativeFile(t, base, ".cursor/rules/bad.mdc", "---\nglobs: [oops\n---\nx\n")
	writeNativeFile(t, base, ".cursor/rules/good.mdc", "Fine.\n")

	out := New(mustAdapter(t, "cursor"), base).Import([]artifact.Feature{artifact.FeatureRules})[0]
	if len(out.Failures) != 1 {
		t.Fatalf("failures = %+v, want exactly one", out.Failures)
	}
	if len(out.Written) != 1 {
		t.Errorf("written = %v, the good file should still import", out.Written)
	}
}
