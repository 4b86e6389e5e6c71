//go:build !integration

package gitutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/agentsync/agentsync/pkg/testutil"
)

func TestFindRepoRoot(t *testing.T) {
	root := testutil.TempDir(t, "gitutil-*")
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatalf("failed to create .git: %v", err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dirs: %v", err)
	}

	t.Run("finds root from nested directory", func(t *testing.T) {
		got, ok := FindRepoRoot(nested)
		if !ok {
			t.Fatal("expected to find repository root")
		}
		want, _ := filepath.EvalSymlinks(root)
		gotResolved, _ := filepath.EvalSymlinks(got)
		if gotResolved != want {
			t.Errorf("FindRepoRoot() = %s, want %s", gotResolved, want)
		}
	})

	t.Run("finds root from root itself", func(t *testing.T) {
		if _, ok := FindRepoRoot(root); !ok {
			t.Error("expected to find repository root from the root directory")
		}
	})

	t.Run("git file counts as root", func(t *testing.T) {
		worktree := testutil.TempDir(t, "gitutil-worktree-*")
		if err := os.WriteFile(filepath.Join(worktree, ".git"), []byte("gitdir: elsewhere"), 0644); err != nil {
			t.Fatalf("failed to write .git file: %v", err)
		}
		if _, ok := FindRepoRoot(worktree); !ok {
			t.Error("expected a .git file to count as a repository root")
		}
	})
}

func TestIsRepoRoot(t *testing.T) {
	root := testutil.TempDir(t, "gitutil-isroot-*")
	if IsRepoRoot(root) {
		t.Error("directory without .git should not be a repository root")
	}
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatalf("failed to create .git: %v", err)
	}
	if !IsRepoRoot(root) {
		t.Error("directory with .git should be a repository root")
	}
}
