// Package cli implements the agentsync command surface. Each command is a
// constructor returning a cobra command; the main package assembles them under
// the root command. Commands print human output to stderr so stdout stays
// reserved for machine-readable output.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/config"
	"github.com/agentsync/agentsync/pkg/gitutil"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/tools"
)

var cliLog = logger.New("cli:cli")

// runSettings is the merged view of flags, the project config file, and
// built-in defaults for one command invocation. Flags beat config beats
// defaults.
type runSettings struct {
	ProjectRoot string
	Targets     []string // resolved tool IDs, "all" already expanded
	Features    []artifact.Feature
	BaseDirs    []string // absolute
	Delete      bool
	Global      bool
	DryRun      bool
	Verbose     bool
}

// resolveProjectRoot returns the enclosing git repository root, or the
// working directory when there is none. The config file and default base
// directory live there.
func resolveProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		cliLog.Printf("Failed to get working directory: %v", err)
		return "."
	}
	if root, ok := gitutil.FindRepoRoot(cwd); ok {
		return root
	}
	return cwd
}

// resolveSettings merges command flags over the project config file. Flags
// that a command does not define are simply absent and fall through to the
// config value.
func resolveSettings(cmd *cobra.Command) (*runSettings, error) {
	root := resolveProjectRoot()
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	s := &runSettings{ProjectRoot: root}

	rawTargets := cfg.Targets
	if v, ok := flagStringSlice(cmd, "targets"); ok {
		rawTargets = v
	}
	if s.Targets, err = expandTargets(rawTargets); err != nil {
		return nil, err
	}

	rawFeatures := cfg.Features
	if v, ok := flagStringSlice(cmd, "features"); ok {
		rawFeatures = v
	}
	if s.Features, err = expandFeatures(rawFeatures); err != nil {
		return nil, err
	}

	dirs := cfg.BaseDirs
	if v, ok := flagStringArray(cmd, "base-dir"); ok {
		dirs = v
	}
	for _, d := range dirs {
		if !filepath.IsAbs(d) {
			d = filepath.Join(root, d)
		}
		s.BaseDirs = append(s.BaseDirs, filepath.Clean(d))
	}

	s.Delete = cfg.Delete
	if v, ok := flagBool(cmd, "delete"); ok {
		s.Delete = v
	}
	if v, ok := flagBool(cmd, "global"); ok {
		s.Global = v
	}
	if v, ok := flagBool(cmd, "dry-run"); ok {
		s.DryRun = v
	}

	s.Verbose = cfg.Verbose
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		s.Verbose = true
	}

	if cliLog.Enabled() {
		cliLog.Printf("Settings: root=%s targets=%v features=%v dirs=%v delete=%v global=%v dryRun=%v",
			s.ProjectRoot, s.Targets, s.Features, s.BaseDirs, s.Delete, s.Global, s.DryRun)
	}
	return s, nil
}

// expandTargets validates tool IDs and expands the "all" shorthand. An empty
// input stays empty; commands that need targets report that themselves.
func expandTargets(raw []string) ([]string, error) {
	var out []string
	seen := map[string]bool{}
	for _, id := range raw {
		if id == "all" {
			return tools.IDs(), nil
		}
		if _, err := tools.Lookup(id); err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

// expandFeatures validates feature names and expands the "all" shorthand.
func expandFeatures(raw []string) ([]artifact.Feature, error) {
	var out []artifact.Feature
	seen := map[artifact.Feature]bool{}
	for _, name := range raw {
		if name == "all" {
			return artifact.AllFeatures(), nil
		}
		f, err := artifact.ParseFeature(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return artifact.AllFeatures(), nil
	}
	return out, nil
}

// globalNativeRoot is where global-scope native files resolve: the user's
// home directory.
func globalNativeRoot() (string, error) {
	if xdg.Home != "" {
		return xdg.Home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return home, nil
}

// Flag helpers tolerate commands that do not define a given flag; only a flag
// the user actually set overrides the config file.

func flagStringSlice(cmd *cobra.Command, name string) ([]string, bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil, false
	}
	v, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		return nil, false
	}
	return v, true
}

func flagStringArray(cmd *cobra.Command, name string) ([]string, bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return nil, false
	}
	v, err := cmd.Flags().GetStringArray(name)
	if err != nil {
		return nil, false
	}
	return v, true
}

func flagBool(cmd *cobra.Command, name string) (bool, bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return false, false
	}
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false, false
	}
	return v, true
}
