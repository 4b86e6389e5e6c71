package processor

import (
	"os"
	"path/filepath"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/tools"
)

var importLog = logger.New("processor:import")

// Import passes convert native files back to canonical artifacts. A feature
// with no native files on disk is a no-op; conversion is never invoked on an
// empty input set.

func (p *Processor) importRules(out *Outcome) error {
	conv := p.adapter.Rules
	loc := conv.Locations(p.scope)

	existing, err := p.existingRuleFiles(loc)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		importLog.Printf("No native rule files: tool=%s", p.adapter.ID)
		return nil
	}

	for _, rel := range existing {
		file, err := tools.LoadFile(p.nativeRoot, rel)
		if err != nil {
			out.fail(rel, err)
			continue
		}
		rule, err := conv.ToCanonical(file, p.scope)
		if err != nil {
			out.fail(rel, err)
			continue
		}
		content, err := rule.Render()
		if err != nil {
			out.fail(rule.Stem, err)
			continue
		}
		path := filepath.Join(artifact.RulesDir(p.baseDir), rule.FileName())
		if err := p.writeCanonical(out, path, content); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) importIgnore(out *Outcome) error {
	conv := p.adapter.Ignore
	loc := conv.Location(p.scope)
	if loc == "" || !p.nativeExists(loc) {
		return nil
	}

	file, err := tools.LoadFile(p.nativeRoot, loc)
	if err != nil {
		return err
	}
	list, err := conv.ToCanonical(file, p.scope)
	if err != nil {
		return err
	}
	content, err := list.Render()
	if err != nil {
		return err
	}
	path := filepath.Join(artifact.IgnoreDir(p.baseDir), list.FileName())
	return p.writeCanonical(out, path, content)
}

func (p *Processor) importServers(out *Outcome) error {
	conv := p.adapter.Servers
	loc := conv.Location(p.scope)
	if loc == "" || !p.nativeExists(loc) {
		return nil
	}

	content, err := os.ReadFile(filepath.Join(p.nativeRoot, loc))
	if err != nil {
		return err
	}
	set, err := conv.ToCanonical(content)
	if err != nil {
		return err
	}
	if len(set.Servers) == 0 {
		importLog.Printf("Native config holds no servers: tool=%s path=%s", p.adapter.ID, loc)
		return nil
	}

	rendered, err := set.Render()
	if err != nil {
		return err
	}
	return p.writeCanonical(out, artifact.ServerFile(p.baseDir), string(rendered))
}

func (p *Processor) importCommands(out *Outcome) error {
	conv := p.adapter.Commands
	loc := conv.Locations(p.scope)

	existing, err := p.listNative(loc.Dir, loc.Ext)
	if err != nil {
		return err
	}

	for _, rel := range existing {
		file, err := tools.LoadFile(p.nativeRoot, rel)
		if err != nil {
			out.fail(rel, err)
			continue
		}
		cmd, err := conv.ToCanonical(file, p.scope)
		if err != nil {
			out.fail(rel, err)
			continue
		}
		content, err := cmd.Render()
		if err != nil {
			out.fail(cmd.Stem, err)
			continue
		}
		path := filepath.Join(artifact.CommandsDir(p.baseDir), cmd.FileName())
		if err := p.writeCanonical(out, path, content); err != nil {
			return err
		}
	}
	return nil
}

func (p *Processor) importSubagents(out *Outcome) error {
	conv := p.adapter.Subagents
	loc := conv.Locations(p.scope)

	existing, err := p.listNative(loc.Dir, loc.Ext)
	if err != nil {
		return err
	}

	for _, rel := range existing {
		file, err := tools.LoadFile(p.nativeRoot, rel)
		if err != nil {
			out.fail(rel, err)
			continue
		}
		agent, err := conv.ToCanonical(file, p.scope)
		if err != nil {
			out.fail(rel, err)
			continue
		}
		content, err := agent.Render()
		if err != nil {
			out.fail(agent.Stem, err)
			continue
		}
		path := filepath.Join(artifact.SubagentsDir(p.baseDir), agent.FileName())
		if err := p.writeCanonical(out, path, content); err != nil {
			return err
		}
	}
	return nil
}
