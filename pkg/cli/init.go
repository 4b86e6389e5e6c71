package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/config"
	"github.com/agentsync/agentsync/pkg/console"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/styles"
	"github.com/agentsync/agentsync/pkg/tools"
	"github.com/agentsync/agentsync/pkg/tty"
)

var initLog = logger.New("cli:init")

// starterRule seeds the canonical tree with a root rule the user fills in.
const starterRule = `---
root: true
targets: ["*"]
description: Project overview and conventions
---
# Project guidance

Describe your project here: what it does, how the code is laid out, and the
conventions an assistant should follow when editing it.

Add further rules as separate files in this directory. Rules without
` + "`root: true`" + ` become detail files referenced from the root file.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold the canonical .agentsync directory and project config",
		Long: `Scaffold a new agentsync project: the canonical .agentsync/ tree with a
starter root rule, and an agentsync.yml recording the target tools.

When run on a terminal without --targets, an interactive picker lists the
supported tools.

Examples:
  agentsync init
  agentsync init --targets claudecode,cursor,copilot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, _ := cmd.Flags().GetStringSlice("targets")
			return RunInit(targets)
		},
	}

	cmd.Flags().StringSlice("targets", nil, "Tool IDs to record in agentsync.yml, or 'all'")

	return cmd
}

// RunInit scaffolds the canonical tree and config file in the project root.
func RunInit(targets []string) error {
	root := resolveProjectRoot()
	canonical := artifact.Dir(root)

	if _, err := os.Stat(canonical); err == nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(
			fmt.Sprintf("%s already exists", console.ToRelativePath(canonical))))
		return fmt.Errorf("project is already initialized")
	}
	if existing := config.Path(root); existing != "" {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
			fmt.Sprintf("Keeping the existing config file %s", console.ToRelativePath(existing))))
	}

	ids, err := expandTargets(targets)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		if !tty.IsStdinTerminal() {
			return fmt.Errorf("no targets selected: pass --targets when not running interactively")
		}
		if ids, err = pickTargets(); err != nil {
			return err
		}
	}
	initLog.Printf("Initializing: root=%s targets=%v", root, ids)

	rulesDir := artifact.RulesDir(root)
	if err := os.MkdirAll(rulesDir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", rulesDir, err)
	}
	rulePath := filepath.Join(rulesDir, "main.md")
	if err := os.WriteFile(rulePath, []byte(starterRule), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", rulePath, err)
	}
	fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Created "+console.ToRelativePath(rulePath)))

	if config.Path(root) == "" {
		cfgPath := filepath.Join(root, "agentsync.yml")
		if err := os.WriteFile(cfgPath, []byte(starterConfig(ids)), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", cfgPath, err)
		}
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage("Created "+console.ToRelativePath(cfgPath)))
	}

	next := "Next steps:\n" +
		"  1. Edit " + console.ToRelativePath(rulePath) + "\n" +
		"  2. Run " + console.FormatCommandMessage("agentsync generate")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, console.LayoutEmphasisBox(next, styles.ColorInfo))
	return nil
}

// pickTargets runs the interactive tool picker.
func pickTargets() ([]string, error) {
	options := make([]huh.Option[string], 0, len(tools.All()))
	for _, a := range tools.All() {
		options = append(options, huh.NewOption(a.Name, a.ID))
	}

	var selected []string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which tools should agentsync generate for?").
				Description("Space selects, enter confirms. This is recorded in agentsync.yml.").
				Options(options...).
				Validate(func(ids []string) error {
					if len(ids) == 0 {
						return fmt.Errorf("select at least one tool")
					}
					return nil
				}).
				Value(&selected),
		),
	).WithAccessible(console.IsAccessibleMode())

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("failed to read tool selection: %w", err)
	}
	return selected, nil
}

// starterConfig renders the initial agentsync.yml.
func starterConfig(ids []string) string {
	var sb strings.Builder
	sb.WriteString("# agentsync project configuration.\n")
	sb.WriteString("# Command line flags override these values; AGENTSYNC_* environment\n")
	sb.WriteString("# variables override both.\n")
	sb.WriteString("targets:\n")
	for _, id := range ids {
		sb.WriteString("  - " + id + "\n")
	}
	sb.WriteString("\n# features: [all]\n")
	sb.WriteString("# baseDirs: [\".\"]\n")
	sb.WriteString("# delete: false\n")
	return sb.String()
}
