// Package processor executes synchronization passes: generation of
// tool-native files from canonical artifacts and import of tool-native files
// back into canonical form. Each pass covers one (feature, tool, base
// directory) triple and is sequenced enumerate, load, convert, write, then
// orphan removal, because each step's output decides the next step's safe
// input set.
package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/tools"
)

var procLog = logger.New("processor:processor")

// Processor runs synchronization passes for one tool adapter.
type Processor struct {
	adapter *tools.Adapter
	baseDir string // canonical source root (the directory holding .agentsync)
	scope   artifact.Scope
	// nativeRoot is the directory native paths are relative to: the base
	// directory for project scope, the user's home directory for global.
	nativeRoot    string
	deleteOrphans bool
	dryRun        bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithScope selects the project or global scope for native files.
func WithScope(scope artifact.Scope) Option {
	return func(p *Processor) { p.scope = scope }
}

// WithNativeRoot overrides the directory native paths resolve against.
// Global-scope passes set it to the user's home directory.
func WithNativeRoot(root string) Option {
	return func(p *Processor) { p.nativeRoot = root }
}

// WithDeleteOrphans enables orphan removal after a generate pass.
func WithDeleteOrphans(enabled bool) Option {
	return func(p *Processor) { p.deleteOrphans = enabled }
}

// WithDryRun plans every mutation without touching the filesystem.
func WithDryRun(enabled bool) Option {
	return func(p *Processor) { p.dryRun = enabled }
}

// New creates a Processor rooted at baseDir for the given adapter.
func New(adapter *tools.Adapter, baseDir string, opts ...Option) *Processor {
	p := &Processor{
		adapter:    adapter,
		baseDir:    baseDir,
		scope:      artifact.ScopeProject,
		nativeRoot: baseDir,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Failure records one artifact (or one whole pass) that could not be
// processed. Name is the artifact stem or the feature name for pass-level
// failures.
type Failure struct {
	Name string
	Err  error
}

// Outcome is the accounting of one feature pass for one tool. Paths are
// relative to the root they were written under: the native root for
// generation, the canonical directory's base for import.
type Outcome struct {
	Tool     string
	Feature  artifact.Feature
	Written  []string
	Deleted  []string
	Skipped  []string
	Failures []Failure
}

// OK reports whether the pass completed without failures.
func (o *Outcome) OK() bool { return len(o.Failures) == 0 }

// fail records a per-artifact failure.
func (o *Outcome) fail(name string, err error) {
	procLog.Printf("Artifact failure: tool=%s feature=%s name=%s err=%v", o.Tool, o.Feature, name, err)
	o.Failures = append(o.Failures, Failure{Name: name, Err: err})
}

// Generate converts canonical artifacts to native files for every requested
// feature the adapter supports. A failing feature pass is recorded on its
// outcome and never blocks the remaining features.
func (p *Processor) Generate(features []artifact.Feature) []*Outcome {
	var outcomes []*Outcome
	for _, feature := range features {
		if !p.adapter.Supports(feature) {
			continue
		}
		outcomes = append(outcomes, p.runPass(feature, p.generateFeature))
	}
	return outcomes
}

// Import converts native files back to canonical artifacts for every
// requested feature the adapter supports.
func (p *Processor) Import(features []artifact.Feature) []*Outcome {
	var outcomes []*Outcome
	for _, feature := range features {
		if !p.adapter.Supports(feature) {
			continue
		}
		outcomes = append(outcomes, p.runPass(feature, p.importFeature))
	}
	return outcomes
}

// runPass executes one feature pass behind the orchestration boundary: an
// error or panic inside the pass becomes a pass-level failure on the outcome
// and sibling passes keep running.
func (p *Processor) runPass(feature artifact.Feature, fn func(artifact.Feature, *Outcome) error) (out *Outcome) {
	out = &Outcome{Tool: p.adapter.ID, Feature: feature}
	defer func() {
		if r := recover(); r != nil {
			procLog.Printf("Recovered panic: tool=%s feature=%s panic=%v", p.adapter.ID, feature, r)
			out.Failures = append(out.Failures, Failure{
				Name: string(feature),
				Err:  fmt.Errorf("internal error: %v", r),
			})
		}
	}()

	if err := fn(feature, out); err != nil {
		out.Failures = append(out.Failures, Failure{Name: string(feature), Err: err})
	}
	return out
}

func (p *Processor) generateFeature(feature artifact.Feature, out *Outcome) error {
	switch feature {
	case artifact.FeatureRules:
		return p.generateRules(out)
	case artifact.FeatureIgnore:
		return p.generateIgnore(out)
	case artifact.FeatureMCP:
		return p.generateServers(out)
	case artifact.FeatureCommands:
		return p.generateCommands(out)
	case artifact.FeatureSubagents:
		return p.generateSubagents(out)
	}
	return fmt.Errorf("unknown feature %q", feature)
}

func (p *Processor) importFeature(feature artifact.Feature, out *Outcome) error {
	switch feature {
	case artifact.FeatureRules:
		return p.importRules(out)
	case artifact.FeatureIgnore:
		return p.importIgnore(out)
	case artifact.FeatureMCP:
		return p.importServers(out)
	case artifact.FeatureCommands:
		return p.importCommands(out)
	case artifact.FeatureSubagents:
		return p.importSubagents(out)
	}
	return fmt.Errorf("unknown feature %q", feature)
}

// writeNative persists one converted file under the native root.
func (p *Processor) writeNative(out *Outcome, file *tools.File) error {
	if err := p.writeFile(filepath.Join(p.nativeRoot, file.Path), file.Content); err != nil {
		return err
	}
	out.Written = append(out.Written, file.Path)
	return nil
}

// writeCanonical persists one imported artifact under the canonical tree.
func (p *Processor) writeCanonical(out *Outcome, path, content string) error {
	if err := p.writeFile(path, []byte(content)); err != nil {
		return err
	}
	rel, err := filepath.Rel(p.baseDir, path)
	if err != nil {
		rel = path
	}
	out.Written = append(out.Written, rel)
	return nil
}

func (p *Processor) writeFile(path string, content []byte) error {
	if p.dryRun {
		procLog.Printf("Dry run, skipping write: %s", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if procLog.Enabled() {
		procLog.Printf("Wrote %s (%d bytes)", path, len(content))
	}
	return nil
}

// removeOrphans deletes native files that existed before the pass but were
// not rewritten by it. It runs strictly after every write: a path present in
// both sets is never touched, so a regenerate-in-place never produces an
// observable absence of the file.
func (p *Processor) removeOrphans(out *Outcome, existing []string, deletable bool) {
	if !p.deleteOrphans || !deletable {
		return
	}
	written := make(map[string]bool, len(out.Written))
	for _, path := range out.Written {
		written[path] = true
	}

	for _, path := range existing {
		if written[path] {
			continue
		}
		if p.dryRun {
			procLog.Printf("Dry run, skipping delete: %s", path)
			out.Deleted = append(out.Deleted, path)
			continue
		}
		if err := os.Remove(filepath.Join(p.nativeRoot, path)); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			out.fail(path, fmt.Errorf("failed to delete orphan: %w", err))
			continue
		}
		procLog.Printf("Deleted orphan: tool=%s path=%s", p.adapter.ID, path)
		out.Deleted = append(out.Deleted, path)
	}
}

// listNative returns the sorted relative paths of files directly under dir
// (relative to the native root) whose names end in ext. A missing directory
// yields nothing.
func (p *Processor) listNative(dir, ext string) ([]string, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(filepath.Join(p.nativeRoot, dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext != "" && !hasExt(entry.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

// nativeExists reports whether a native relative path is present on disk.
func (p *Processor) nativeExists(rel string) bool {
	if rel == "" {
		return false
	}
	_, err := os.Stat(filepath.Join(p.nativeRoot, rel))
	return err == nil
}

// hasExt matches multi-dot extensions like ".instructions.md" that
// filepath.Ext cannot express.
func hasExt(name, ext string) bool {
	return len(name) > len(ext) && name[len(name)-len(ext):] == ext
}
