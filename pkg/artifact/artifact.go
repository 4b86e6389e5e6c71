// Package artifact defines the canonical, tool-agnostic representation of
// synchronized configuration: behavioral rules, ignore lists, slash-commands,
// sub-agents, and MCP server definitions. Canonical artifacts live under the
// .agentsync directory of a project and are the source of truth that tool
// adapters convert from and to.
//
// Artifacts are immutable once constructed. The only sanctioned mutation is
// content replacement via the WithBody methods, which return a copy.
package artifact

import (
	"fmt"
	"path/filepath"
)

// DirName is the canonical source directory, relative to a base directory.
const DirName = ".agentsync"

// ServerFileName is the single JSON document holding MCP server definitions.
const ServerFileName = "mcp.json"

// Feature identifies one kind of synchronized artifact.
type Feature string

const (
	FeatureRules     Feature = "rules"
	FeatureIgnore    Feature = "ignore"
	FeatureMCP       Feature = "mcp"
	FeatureCommands  Feature = "commands"
	FeatureSubagents Feature = "subagents"
)

// AllFeatures returns every feature in processing order.
func AllFeatures() []Feature {
	return []Feature{FeatureRules, FeatureIgnore, FeatureMCP, FeatureCommands, FeatureSubagents}
}

// ParseFeature validates a feature name from user input.
func ParseFeature(s string) (Feature, error) {
	for _, f := range AllFeatures() {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown feature %q (valid: rules, ignore, mcp, commands, subagents)", s)
}

// Scope selects between a project's own tree and the user-wide configuration
// area. It is supplied per invocation and never stored on an artifact.
type Scope int

const (
	ScopeProject Scope = iota
	ScopeGlobal
)

func (s Scope) String() string {
	if s == ScopeGlobal {
		return "global"
	}
	return "project"
}

// Dir returns the canonical source directory under baseDir.
func Dir(baseDir string) string {
	return filepath.Join(baseDir, DirName)
}

// RulesDir returns the canonical rules directory under baseDir.
func RulesDir(baseDir string) string {
	return filepath.Join(Dir(baseDir), "rules")
}

// IgnoreDir returns the canonical ignore directory under baseDir.
func IgnoreDir(baseDir string) string {
	return filepath.Join(Dir(baseDir), "ignore")
}

// CommandsDir returns the canonical commands directory under baseDir.
func CommandsDir(baseDir string) string {
	return filepath.Join(Dir(baseDir), "commands")
}

// SubagentsDir returns the canonical subagents directory under baseDir.
func SubagentsDir(baseDir string) string {
	return filepath.Join(Dir(baseDir), "subagents")
}

// ServerFile returns the canonical MCP server definition file under baseDir.
func ServerFile(baseDir string) string {
	return filepath.Join(Dir(baseDir), ServerFileName)
}

// FeatureDir returns the canonical directory for a markdown-based feature.
// FeatureMCP has no directory; its definitions live in ServerFile.
func FeatureDir(baseDir string, feature Feature) string {
	switch feature {
	case FeatureRules:
		return RulesDir(baseDir)
	case FeatureIgnore:
		return IgnoreDir(baseDir)
	case FeatureCommands:
		return CommandsDir(baseDir)
	case FeatureSubagents:
		return SubagentsDir(baseDir)
	default:
		return Dir(baseDir)
	}
}
