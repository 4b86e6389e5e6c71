// Package tools implements the adapter layer: the closed set of concrete
// tool integrations that convert canonical artifacts to tool-native files and
// back. Every adapter is a flat value implementing per-kind converter
// interfaces; behavior shared between tools lives in free functions and in
// the family types of this package, never in inherited state.
//
// All paths produced by converters are relative to a scope root: the project
// base directory for ScopeProject, the user's home directory for ScopeGlobal.
// Converters perform no I/O; reading and writing is the processor's job.
package tools

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
)

// File is one tool-native artifact materialized as content at a path
// relative to the scope root.
type File struct {
	Path    string
	Content []byte
}

// RuleLocations describes where a tool keeps rule files. A zero value means
// the tool does not support rules in that scope.
type RuleLocations struct {
	RootPath string // fixed path of the single root rule file; "" when none
	Dir      string // directory of detail rule files; "" when root-only
	Ext      string // detail-file extension, e.g. ".md", ".mdc", ".instructions.md"
}

// DirLocations describes a per-artifact directory layout (commands,
// subagents). A zero value means unsupported in that scope.
type DirLocations struct {
	Dir string
	Ext string
}

// RuleReference points a generated root file at one detail file.
type RuleReference struct {
	Path        string // relative to the scope root
	Description string
}

// RuleContext carries the batch-level inputs a single rule conversion needs.
// References lists the detail files generated alongside a root file so the
// root file body can link to them.
type RuleContext struct {
	Scope      artifact.Scope
	References []RuleReference
}

// RuleConverter converts behavioral rules for one tool.
type RuleConverter interface {
	Locations(scope artifact.Scope) RuleLocations
	FromCanonical(rule *artifact.Rule, ctx *RuleContext) (*File, error)
	ToCanonical(file *File, scope artifact.Scope) (*artifact.Rule, error)
	Validate(file *File) *artifact.ValidationResult
	Deletable(scope artifact.Scope) bool
}

// IgnoreConverter converts ignore lists for one tool. Tools expose a single
// fixed ignore file; eligible canonical lists are concatenated into it in
// stem order.
type IgnoreConverter interface {
	Location(scope artifact.Scope) string
	FromCanonical(lists []*artifact.IgnoreList, scope artifact.Scope) (*File, error)
	ToCanonical(file *File, scope artifact.Scope) (*artifact.IgnoreList, error)
	Validate(file *File) *artifact.ValidationResult
	Deletable(scope artifact.Scope) bool
}

// ServerConverter converts MCP server definitions for one tool. FromCanonical
// receives the current native file content (nil when absent) because several
// tools keep their server block inside a shared settings file whose unrelated
// keys must be preserved across rewrites.
type ServerConverter interface {
	Location(scope artifact.Scope) string
	FromCanonical(set *artifact.ServerSet, existing []byte) ([]byte, error)
	ToCanonical(content []byte) (*artifact.ServerSet, error)
	Validate(content []byte) *artifact.ValidationResult
	Deletable(scope artifact.Scope) bool
}

// CommandConverter converts slash-commands for one tool.
type CommandConverter interface {
	Locations(scope artifact.Scope) DirLocations
	FromCanonical(cmd *artifact.Command, scope artifact.Scope) (*File, error)
	ToCanonical(file *File, scope artifact.Scope) (*artifact.Command, error)
	Validate(file *File) *artifact.ValidationResult
	Deletable(scope artifact.Scope) bool
}

// SubagentConverter converts sub-agent definitions for one tool. Native
// filenames derive from the subagent's Name field, sanitized.
type SubagentConverter interface {
	Locations(scope artifact.Scope) DirLocations
	FromCanonical(agent *artifact.Subagent, scope artifact.Scope) (*File, error)
	ToCanonical(file *File, scope artifact.Scope) (*artifact.Subagent, error)
	Validate(file *File) *artifact.ValidationResult
	Deletable(scope artifact.Scope) bool
}

// Adapter is one concrete tool integration. A nil converter means the tool
// does not support that feature; the processor writes zero files for it.
type Adapter struct {
	ID        string
	Name      string
	Rules     RuleConverter
	Ignore    IgnoreConverter
	Servers   ServerConverter
	Commands  CommandConverter
	Subagents SubagentConverter
}

// Supports reports whether the adapter implements the given feature at all,
// in any scope.
func (a *Adapter) Supports(feature artifact.Feature) bool {
	switch feature {
	case artifact.FeatureRules:
		return a.Rules != nil
	case artifact.FeatureIgnore:
		return a.Ignore != nil
	case artifact.FeatureMCP:
		return a.Servers != nil
	case artifact.FeatureCommands:
		return a.Commands != nil
	case artifact.FeatureSubagents:
		return a.Subagents != nil
	}
	return false
}

// Features returns the features the adapter supports, in processing order.
func (a *Adapter) Features() []artifact.Feature {
	var out []artifact.Feature
	for _, f := range artifact.AllFeatures() {
		if a.Supports(f) {
			out = append(out, f)
		}
	}
	return out
}

// Eligible reports whether a canonical targets set admits this adapter:
// true when the set is absent, contains the wildcard, or names this tool.
func (a *Adapter) Eligible(t *artifact.Targets) bool {
	return t.Includes(a.ID)
}

// LoadFile reads one tool-native file under root. A missing file is a
// NotFoundError; converters receive the result without touching the disk
// themselves.
func LoadFile(root, rel string) (*File, error) {
	path := filepath.Join(root, rel)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, artifact.NewNotFoundError(path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &File{Path: rel, Content: data}, nil
}

// validResult is the shared "nothing wrong" validation outcome.
func validResult() *artifact.ValidationResult {
	return &artifact.ValidationResult{Valid: true}
}

// invalidResult builds a failed validation outcome from issues.
func invalidResult(issues ...artifact.ValidationIssue) *artifact.ValidationResult {
	return &artifact.ValidationResult{Valid: false, Issues: issues}
}
