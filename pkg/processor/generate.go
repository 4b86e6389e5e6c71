package processor

import (
	"os"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/tools"
)

var generateLog = logger.New("processor:generate")

func (p *Processor) generateRules(out *Outcome) error {
	conv := p.adapter.Rules
	loc := conv.Locations(p.scope)

	existing, err := p.existingRuleFiles(loc)
	if err != nil {
		return err
	}

	paths, err := artifact.ListMarkdownFiles(artifact.RulesDir(p.baseDir))
	if err != nil {
		return err
	}

	var detail, root []*artifact.Rule
	for _, path := range paths {
		rule, err := artifact.LoadRule(path)
		if err != nil {
			out.fail(artifact.Stem(path), err)
			continue
		}
		if !p.adapter.Eligible(rule.Targets) {
			out.Skipped = append(out.Skipped, rule.Stem)
			continue
		}
		if rule.Root {
			root = append(root, rule)
		} else {
			detail = append(detail, rule)
		}
	}
	if len(root) > 1 {
		generateLog.Printf("Multiple root rules for %s; the last one written wins", p.adapter.ID)
	}

	// Detail rules convert first so the root file can reference the files
	// they produce.
	var files []*tools.File
	var refs []tools.RuleReference
	ctx := &tools.RuleContext{Scope: p.scope}
	for _, rule := range detail {
		file, err := conv.FromCanonical(rule, ctx)
		if err != nil {
			out.fail(rule.Stem, err)
			continue
		}
		if file == nil {
			out.Skipped = append(out.Skipped, rule.Stem)
			continue
		}
		files = append(files, file)
		refs = append(refs, tools.RuleReference{Path: file.Path, Description: rule.Description})
	}

	rootCtx := &tools.RuleContext{Scope: p.scope, References: refs}
	for _, rule := range root {
		file, err := conv.FromCanonical(rule, rootCtx)
		if err != nil {
			out.fail(rule.Stem, err)
			continue
		}
		if file == nil {
			out.Skipped = append(out.Skipped, rule.Stem)
			continue
		}
		files = append(files, file)
	}

	for _, file := range files {
		if err := p.writeNative(out, file); err != nil {
			return err
		}
	}

	p.removeOrphans(out, existing, conv.Deletable(p.scope))
	return nil
}

// existingRuleFiles lists the native rule files currently on disk: the fixed
// root file plus the detail directory's entries.
func (p *Processor) existingRuleFiles(loc tools.RuleLocations) ([]string, error) {
	var existing []string
	if p.nativeExists(loc.RootPath) {
		existing = append(existing, loc.RootPath)
	}
	detail, err := p.listNative(loc.Dir, loc.Ext)
	if err != nil {
		return nil, err
	}
	return append(existing, detail...), nil
}

func (p *Processor) generateIgnore(out *Outcome) error {
	conv := p.adapter.Ignore
	loc := conv.Location(p.scope)
	if loc == "" {
		return nil
	}

	var existing []string
	if p.nativeExists(loc) {
		existing = append(existing, loc)
	}

	paths, err := artifact.ListMarkdownFiles(artifact.IgnoreDir(p.baseDir))
	if err != nil {
		return err
	}

	var lists []*artifact.IgnoreList
	for _, path := range paths {
		list, err := artifact.LoadIgnoreList(path)
		if err != nil {
			out.fail(artifact.Stem(path), err)
			continue
		}
		if !p.adapter.Eligible(list.Targets) {
			out.Skipped = append(out.Skipped, list.Stem)
			continue
		}
		lists = append(lists, list)
	}

	file, err := conv.FromCanonical(lists, p.scope)
	if err != nil {
		return err
	}
	if file != nil {
		if err := p.writeNative(out, file); err != nil {
			return err
		}
	}

	p.removeOrphans(out, existing, conv.Deletable(p.scope))
	return nil
}

func (p *Processor) generateServers(out *Outcome) error {
	conv := p.adapter.Servers
	loc := conv.Location(p.scope)
	if loc == "" {
		return nil
	}

	var existing []string
	if p.nativeExists(loc) {
		existing = append(existing, loc)
	}

	set, err := artifact.LoadServerSet(artifact.ServerFile(p.baseDir))
	if err != nil {
		if artifact.IsNotFound(err) {
			// No canonical definitions; nothing to write, and whatever is on
			// disk is an orphan.
			p.removeOrphans(out, existing, conv.Deletable(p.scope))
			return nil
		}
		return err
	}

	filtered := set.FilterFor(p.adapter.ID)
	if generateLog.Enabled() {
		generateLog.Printf("Generating servers: tool=%s eligible=%d of %d",
			p.adapter.ID, len(filtered.Servers), len(set.Servers))
	}
	for _, name := range set.Names() {
		if _, ok := filtered.Servers[name]; !ok {
			out.Skipped = append(out.Skipped, name)
		}
	}

	// With zero eligible servers a dedicated file is left to the orphan
	// logic, but a shared settings file still gets its owned block cleared.
	mustClear := !conv.Deletable(p.scope) && len(existing) > 0
	if len(filtered.Servers) > 0 || mustClear {
		current, err := os.ReadFile(filepath.Join(p.nativeRoot, loc))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		content, err := conv.FromCanonical(filtered, current)
		if err != nil {
			return err
		}
		if err := p.writeNative(out, &tools.File{Path: loc, Content: content}); err != nil {
			return err
		}
	}

	p.removeOrphans(out, existing, conv.Deletable(p.scope))
	return nil
}

func (p *Processor) generateCommands(out *Outcome) error {
	conv := p.adapter.Commands
	loc := conv.Locations(p.scope)

	existing, err := p.listNative(loc.Dir, loc.Ext)
	if err != nil {
		return err
	}

	paths, err := artifact.ListMarkdownFiles(artifact.CommandsDir(p.baseDir))
	if err != nil {
		return err
	}

	for _, path := range paths {
		cmd, err := artifact.LoadCommand(path)
		if err != nil {
			out.fail(artifact.Stem(path), err)
			continue
		}
		if !p.adapter.Eligible(cmd.Targets) {
			out.Skipped = append(out.Skipped, cmd.Stem)
			continue
		}
		file, err := conv.FromCanonical(cmd, p.scope)
		if err != nil {
			out.fail(cmd.Stem, err)
			continue
		}
		if file == nil {
			out.Skipped = append(out.Skipped, cmd.Stem)
			continue
		}
		if err := p.writeNative(out, file); err != nil {
			return err
		}
	}

	p.removeOrphans(out, existing, conv.Deletable(p.scope))
	return nil
}

func (p *Processor) generateSubagents(out *Outcome) error {
	conv := p.adapter.Subagents
	loc := conv.Locations(p.scope)

	existing, err := p.listNative(loc.Dir, loc.Ext)
	if err != nil {
		return err
	}

	paths, err := artifact.ListMarkdownFiles(artifact.SubagentsDir(p.baseDir))
	if err != nil {
		return err
	}

	for _, path := range paths {
		agent, err := artifact.LoadSubagent(path)
		if err != nil {
			out.fail(artifact.Stem(path), err)
			continue
		}
		if !p.adapter.Eligible(agent.Targets) {
			out.Skipped = append(out.Skipped, agent.Stem)
			continue
		}
		file, err := conv.FromCanonical(agent, p.scope)
		if err != nil {
			out.fail(agent.Stem, err)
			continue
		}
		if file == nil {
			out.Skipped = append(out.Skipped, agent.Stem)
			continue
		}
		if err := p.writeNative(out, file); err != nil {
			return err
		}
	}

	p.removeOrphans(out, existing, conv.Deletable(p.scope))
	return nil
}
