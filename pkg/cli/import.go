package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/console"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/processor"
	"github.com/agentsync/agentsync/pkg/tools"
)

var importLog = logger.New("cli:import")

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import one tool's native configuration into canonical artifacts",
		Long: `Import a tool's existing native configuration files into the canonical
.agentsync/ tree.

Import reads from exactly one tool at a time: merging several tools' files
into one canonical tree is ambiguous, so each run converts a single tool's
rules, ignore file, MCP servers, commands, and sub-agents. Existing canonical
artifacts with the same name are overwritten; nothing is ever deleted.

Examples:
  agentsync import --target claudecode
  agentsync import --target cursor --features rules
  agentsync import --target codexcli --global`,
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetString("target")
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			return RunImport(s, target)
		},
	}

	cmd.Flags().String("target", "", "Tool ID to import from (required)")
	cmd.Flags().StringSlice("features", nil, "Artifact kinds to import, or 'all'")
	cmd.Flags().StringArray("base-dir", nil, "Project root to import within (repeatable)")
	cmd.Flags().Bool("global", false, "Read from user-wide tool locations instead of the project")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

// RunImport converts one tool's native files into canonical artifacts.
func RunImport(s *runSettings, target string) error {
	adapter, err := tools.Lookup(target)
	if err != nil {
		return err
	}
	opts, err := processorOptions(s)
	if err != nil {
		return err
	}

	importLog.Printf("Importing: tool=%s dirs=%d features=%v", adapter.ID, len(s.BaseDirs), s.Features)

	var runs []toolRun
	for _, dir := range s.BaseDirs {
		proc := processor.New(adapter, dir, opts...)
		runs = append(runs, toolRun{Dir: dir, Tool: adapter.ID, Outcomes: proc.Import(s.Features)})
	}

	printImportSummary(runs, s)

	if failed := countFailures(runs); failed > 0 {
		return fmt.Errorf("import finished with %d failed files", failed)
	}
	return nil
}

func printImportSummary(runs []toolRun, s *runSettings) {
	written, _, _, failed := tallyRuns(runs)

	for _, run := range runs {
		for _, out := range run.Outcomes {
			for _, path := range out.Written {
				console.LogVerbose(s.Verbose, "  imported "+path)
			}
		}
	}
	printFailures(runs)

	switch {
	case failed > 0:
		// The closing error line comes from the command's returned error.
	case written == 0:
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Nothing to import: no native files found"))
	default:
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Imported %d files into %s", written, console.ToRelativePath(mainCanonicalDir(runs)))))
	}
}

// mainCanonicalDir names the canonical directory of the first run, for the
// success message. Imports almost always touch a single base directory.
func mainCanonicalDir(runs []toolRun) string {
	if len(runs) == 0 {
		return ""
	}
	return artifact.Dir(runs[0].Dir)
}
