package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/config"
	"github.com/agentsync/agentsync/pkg/console"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/tools"
	"github.com/agentsync/agentsync/pkg/tty"
)

var statusLog = logger.New("cli:status")

// NewStatusCommand creates the status command.
func NewStatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show canonical artifacts and which tools they reach",
		Long: `Show every canonical artifact under .agentsync/ together with its targets
and the configured tools that would receive it on generate.

Examples:
  agentsync status
  agentsync status --base-dir packages/api`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			report, err := buildStatusReport(s)
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, report)
			return nil
		},
	}

	cmd.Flags().StringArray("base-dir", nil, "Project root to inspect (repeatable)")

	return cmd
}

// buildStatusReport renders the status output. It is shared with the MCP
// server's status tool.
func buildStatusReport(s *runSettings) (string, error) {
	candidates := statusCandidates(s.Targets)

	var sb strings.Builder
	if tty.IsStderrTerminal() {
		// Chrome only for interactive use; piped output stays plain.
		sb.WriteString(console.LayoutTitleBox("Canonical Artifact Status", 44) + "\n")
	}
	sb.WriteString(console.LayoutInfoSection("Project", s.ProjectRoot) + "\n")
	if path := config.Path(s.ProjectRoot); path != "" {
		sb.WriteString(console.LayoutInfoSection("Config", console.ToRelativePath(path)) + "\n")
	} else {
		sb.WriteString(console.LayoutInfoSection("Config", "none (using defaults)") + "\n")
	}
	if len(s.Targets) > 0 {
		sb.WriteString(console.LayoutInfoSection("Targets", strings.Join(s.Targets, ", ")) + "\n")
	} else {
		sb.WriteString(console.LayoutInfoSection("Targets", "none configured; showing coverage across all tools") + "\n")
	}
	sb.WriteString("\n")

	var rows [][]string
	for _, dir := range s.BaseDirs {
		dirRows, err := statusRows(dir, candidates)
		if err != nil {
			return "", err
		}
		rows = append(rows, dirRows...)
	}
	statusLog.Printf("Status: %d artifacts across %d dirs", len(rows), len(s.BaseDirs))

	if len(rows) == 0 {
		sb.WriteString("No canonical artifacts found. Run 'agentsync init' to scaffold .agentsync/.\n")
		return sb.String(), nil
	}

	sb.WriteString(console.RenderTable(console.TableConfig{
		Headers: []string{"Artifact", "Kind", "Targets", "Tools"},
		Rows:    rows,
	}))
	return sb.String(), nil
}

// statusCandidates returns the adapters coverage is computed against: the
// configured targets, or every registered adapter when none are configured.
func statusCandidates(targets []string) []*tools.Adapter {
	if len(targets) == 0 {
		return tools.All()
	}
	var out []*tools.Adapter
	for _, id := range targets {
		if a, err := tools.Lookup(id); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// statusRows builds one table row per canonical artifact in dir.
func statusRows(dir string, candidates []*tools.Adapter) ([][]string, error) {
	var rows [][]string

	appendRow := func(path string, feature artifact.Feature, t *artifact.Targets, valid bool) {
		label := console.ToRelativePath(path)
		if !valid {
			rows = append(rows, []string{label, string(feature), "(invalid)", ""})
			return
		}
		rows = append(rows, []string{label, string(feature), targetsLabel(t), coverageLabel(feature, t, candidates)})
	}

	type loader func(path string) (*artifact.Targets, error)
	markdown := []struct {
		feature artifact.Feature
		load    loader
	}{
		{artifact.FeatureRules, func(path string) (*artifact.Targets, error) {
			r, err := artifact.LoadRule(path)
			if err != nil {
				return nil, err
			}
			return r.Targets, nil
		}},
		{artifact.FeatureIgnore, func(path string) (*artifact.Targets, error) {
			l, err := artifact.LoadIgnoreList(path)
			if err != nil {
				return nil, err
			}
			return l.Targets, nil
		}},
		{artifact.FeatureCommands, func(path string) (*artifact.Targets, error) {
			c, err := artifact.LoadCommand(path)
			if err != nil {
				return nil, err
			}
			return c.Targets, nil
		}},
		{artifact.FeatureSubagents, func(path string) (*artifact.Targets, error) {
			a, err := artifact.LoadSubagent(path)
			if err != nil {
				return nil, err
			}
			return a.Targets, nil
		}},
	}

	for _, m := range markdown {
		paths, err := artifact.ListMarkdownFiles(artifact.FeatureDir(dir, m.feature))
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			t, err := m.load(path)
			appendRow(path, m.feature, t, err == nil)
		}
	}

	serverPath := artifact.ServerFile(dir)
	set, err := artifact.LoadServerSet(serverPath)
	if err == nil {
		for _, name := range set.Names() {
			appendRow(serverPath+"#"+name, artifact.FeatureMCP, set.Servers[name].Targets, true)
		}
	} else if !artifact.IsNotFound(err) {
		appendRow(serverPath, artifact.FeatureMCP, nil, false)
	}

	return rows, nil
}

// targetsLabel renders a targets set for display.
func targetsLabel(t *artifact.Targets) string {
	if t == nil {
		return "(any)"
	}
	ids := t.List()
	if len(ids) == 1 && ids[0] == artifact.Wildcard {
		return "*"
	}
	if len(ids) == 0 {
		return "(none)"
	}
	return strings.Join(ids, ", ")
}

// coverageLabel names the candidate tools that would receive the artifact.
func coverageLabel(feature artifact.Feature, t *artifact.Targets, candidates []*tools.Adapter) string {
	var ids []string
	for _, a := range candidates {
		if a.Supports(feature) && a.Eligible(t) {
			ids = append(ids, a.ID)
		}
	}
	if len(ids) == 0 {
		return "none"
	}
	if len(ids) > 3 {
		return fmt.Sprintf("%d tools", len(ids))
	}
	return strings.Join(ids, ", ")
}
