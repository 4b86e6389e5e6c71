//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/agentsync/agentsync/pkg/testutil"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := testutil.TempDir(t, "config-defaults-*")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Targets) != 0 {
		t.Errorf("Targets = %v, want empty", cfg.Targets)
	}
	if !reflect.DeepEqual(cfg.Features, []string{"all"}) {
		t.Errorf("Features = %v, want [all]", cfg.Features)
	}
	if !reflect.DeepEqual(cfg.BaseDirs, []string{"."}) {
		t.Errorf("BaseDirs = %v, want [.]", cfg.BaseDirs)
	}
	if cfg.Delete || cfg.Verbose {
		t.Errorf("Delete = %v, Verbose = %v, want false", cfg.Delete, cfg.Verbose)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := testutil.TempDir(t, "config-yaml-*")
	writeConfig(t, dir, "agentsync.yml", "targets:\n  - claudecode\n  - cursor\nfeatures:\n  - rules\n  - mcp\ndelete: true\n")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Targets, []string{"claudecode", "cursor"}) {
		t.Errorf("Targets = %v", cfg.Targets)
	}
	if !reflect.DeepEqual(cfg.Features, []string{"rules", "mcp"}) {
		t.Errorf("Features = %v", cfg.Features)
	}
	if !cfg.Delete {
		t.Errorf("Delete = false, want true")
	}
	if !reflect.DeepEqual(cfg.BaseDirs, []string{"."}) {
		t.Errorf("BaseDirs = %v, default should survive a partial file", cfg.BaseDirs)
	}
}

func TestLoadJSONFile(t *testing.T) {
	dir := testutil.TempDir(t, "config-json-*")
	writeConfig(t, dir, "agentsync.json", `{"targets": ["copilot"], "baseDirs": ["packages/api", "packages/web"]}`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Targets, []string{"copilot"}) {
		t.Errorf("Targets = %v", cfg.Targets)
	}
	if !reflect.DeepEqual(cfg.BaseDirs, []string{"packages/api", "packages/web"}) {
		t.Errorf("BaseDirs = %v", cfg.BaseDirs)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := testutil.TempDir(t, "config-env-*")
	writeConfig(t, dir, "agentsync.yml", "targets:\n  - claudecode\ndelete: false\n")

	t.Setenv("AGENTSYNC_TARGETS", "cursor,windsurf")
	t.Setenv("AGENTSYNC_DELETE", "true")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg.Targets, []string{"cursor", "windsurf"}) {
		t.Errorf("Targets = %v, env should beat file", cfg.Targets)
	}
	if !cfg.Delete {
		t.Errorf("Delete = false, env should beat file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	dir := testutil.TempDir(t, "config-bad-*")
	writeConfig(t, dir, "agentsync.yml", "targets: [unclosed\n")

	if _, err := Load(dir); err == nil {
		t.Fatal("Load() should fail on malformed YAML")
	}
}

func TestPath(t *testing.T) {
	dir := testutil.TempDir(t, "config-path-*")
	if got := Path(dir); got != "" {
		t.Errorf("Path() = %q on empty dir, want empty", got)
	}

	writeConfig(t, dir, "agentsync.yaml", "verbose: true\n")
	if got := Path(dir); got != filepath.Join(dir, "agentsync.yaml") {
		t.Errorf("Path() = %q", got)
	}

	// .yml wins over .yaml when both exist.
	writeConfig(t, dir, "agentsync.yml", "verbose: true\n")
	if got := Path(dir); got != filepath.Join(dir, "agentsync.yml") {
		t.Errorf("Path() = %q, want the .yml candidate first", got)
	}
}
