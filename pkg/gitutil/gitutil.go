// Package gitutil locates the enclosing git repository. The repository root
// is the default base directory for generation when none is given.
package gitutil

import (
	"os"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/logger"
)

var log = logger.New("gitutil:gitutil")

// FindRepoRoot walks up from startDir looking for a .git entry and returns
// the directory containing it. A .git file (worktree/submodule pointer)
// counts the same as a directory.
func FindRepoRoot(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		log.Printf("Failed to resolve %s: %v", startDir, err)
		return "", false
	}

	for {
		if IsRepoRoot(dir) {
			log.Printf("Found repository root: %s", dir)
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			log.Printf("No repository root above %s", startDir)
			return "", false
		}
		dir = parent
	}
}

// IsRepoRoot reports whether dir itself contains a .git entry.
func IsRepoRoot(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}
