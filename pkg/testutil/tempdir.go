// Package testutil provides shared helpers for filesystem-heavy tests.
// Temporary directories are grouped under one per-process run directory so
// leftovers from interrupted runs are easy to find and sweep.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

var (
	testRunDirOnce sync.Once
	testRunDir     string
)

// GetTestRunDir returns the per-process directory all test temp dirs live
// under. The same directory is returned for every call within one process.
func GetTestRunDir() string {
	testRunDirOnce.Do(func() {
		base := filepath.Join(os.TempDir(), "agentsync", "test-runs")
		run := filepath.Join(base, fmt.Sprintf("run-%d-%d", time.Now().UnixNano(), os.Getpid()))
		if err := os.MkdirAll(run, 0755); err != nil {
			// Fall back to the system temp dir rather than failing every test.
			run = os.TempDir()
		}
		testRunDir = run
	})
	return testRunDir
}

// TempDir creates a temporary directory under the test run directory and
// removes it when the test finishes. The pattern may contain a single "*"
// which is replaced with a random string.
func TempDir(t *testing.T, pattern string) string {
	t.Helper()

	dir, err := os.MkdirTemp(GetTestRunDir(), pattern)
	if err != nil {
		t.Fatalf("failed to create temp directory: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// StripCommentHeader removes a leading block of "#" comment lines and blank
// lines from generated file content, so tests can assert on the payload
// regardless of the header. Content consisting only of comments is returned
// unchanged.
func StripCommentHeader(content string) string {
	lines := strings.Split(content, "\n")
	start := 0
	for start < len(lines) {
		trimmed := strings.TrimSpace(lines[start])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			start++
			continue
		}
		break
	}
	if start >= len(lines) {
		return content
	}
	return strings.Join(lines[start:], "\n")
}
