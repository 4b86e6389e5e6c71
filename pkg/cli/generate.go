package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/console"
	"github.com/agentsync/agentsync/pkg/envutil"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/processor"
	"github.com/agentsync/agentsync/pkg/tools"
	"github.com/agentsync/agentsync/pkg/watcher"
)

var generateLog = logger.New("cli:generate")

// Tool passes run concurrently, bounded by AGENTSYNC_MAX_PARALLEL.
const (
	defaultMaxParallel = 4
	maxParallelLimit   = 16
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate tool-native configuration from canonical artifacts",
		Long: `Generate tool-native configuration files from the canonical artifacts
under .agentsync/.

Each target tool receives the rules, ignore lists, MCP server definitions,
commands, and sub-agents it supports, converted to its native format and
location. Files previously generated that no longer correspond to a canonical
artifact are deleted only with --delete.

Targets and features come from flags, falling back to agentsync.yml, falling
back to built-in defaults.

Examples:
  agentsync generate --targets claudecode,cursor
  agentsync generate --targets all --features rules,mcp
  agentsync generate --delete
  agentsync generate --dry-run --verbose
  agentsync generate --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveSettings(cmd)
			if err != nil {
				return err
			}
			if len(s.Targets) == 0 {
				return fmt.Errorf("no targets configured: pass --targets or set targets in agentsync.yml (run 'agentsync init' to scaffold)")
			}
			if watch, _ := cmd.Flags().GetBool("watch"); watch {
				return RunGenerateWatch(s)
			}
			return RunGenerate(s)
		},
	}

	cmd.Flags().StringSlice("targets", nil, "Tool IDs to generate for, or 'all'")
	cmd.Flags().StringSlice("features", nil, "Artifact kinds: rules, ignore, mcp, commands, subagents, or 'all'")
	cmd.Flags().StringArray("base-dir", nil, "Generation root relative to the project root (repeatable)")
	cmd.Flags().Bool("delete", false, "Delete generated files whose canonical artifact is gone")
	cmd.Flags().Bool("global", false, "Write to user-wide tool locations instead of the project")
	cmd.Flags().Bool("dry-run", false, "Report what would change without writing")
	cmd.Flags().Bool("watch", false, "Regenerate whenever canonical artifacts change")

	return cmd
}

// RunGenerate runs one generation pass over every (base directory, target)
// pair and prints a summary. It returns an error when any artifact failed, so
// the process exits non-zero; successful artifacts are still written first.
func RunGenerate(s *runSettings) error {
	runs, err := generateAll(s)
	if err != nil {
		return err
	}

	printRunSummary("Generation", runs, s)

	if failed := countFailures(runs); failed > 0 {
		return fmt.Errorf("generation finished with %d failed artifacts", failed)
	}
	return nil
}

// toolRun holds the outcomes of one tool's pass over one base directory.
type toolRun struct {
	Dir      string
	Tool     string
	Outcomes []*processor.Outcome
}

// generateAll fans out per-tool generation passes on a bounded pool. Tools
// never share native files, so passes are independent.
func generateAll(s *runSettings) ([]toolRun, error) {
	opts, err := processorOptions(s)
	if err != nil {
		return nil, err
	}

	adapters := make([]*tools.Adapter, len(s.Targets))
	for i, id := range s.Targets {
		a, err := tools.Lookup(id)
		if err != nil {
			return nil, err
		}
		adapters[i] = a
	}

	n := envutil.GetIntFromEnv("AGENTSYNC_MAX_PARALLEL", defaultMaxParallel, 1, maxParallelLimit, generateLog)
	generateLog.Printf("Generating: dirs=%d tools=%d parallel=%d", len(s.BaseDirs), len(adapters), n)

	runs := make([]toolRun, len(s.BaseDirs)*len(adapters))
	p := pool.New().WithMaxGoroutines(n)
	for di, dir := range s.BaseDirs {
		for ai, adapter := range adapters {
			i := di*len(adapters) + ai
			p.Go(func() {
				proc := processor.New(adapter, dir, append(opts,
					processor.WithDeleteOrphans(s.Delete),
					processor.WithDryRun(s.DryRun),
				)...)
				runs[i] = toolRun{Dir: dir, Tool: adapter.ID, Outcomes: proc.Generate(s.Features)}
			})
		}
	}
	p.Wait()

	return runs, nil
}

// processorOptions builds the scope options shared by every pass.
func processorOptions(s *runSettings) ([]processor.Option, error) {
	if !s.Global {
		return nil, nil
	}
	home, err := globalNativeRoot()
	if err != nil {
		return nil, err
	}
	return []processor.Option{
		processor.WithScope(artifact.ScopeGlobal),
		processor.WithNativeRoot(home),
	}, nil
}

// RunGenerateWatch runs an initial pass, then regenerates a base directory
// whenever its canonical tree changes. Ctrl-C stops it.
func RunGenerateWatch(s *runSettings) error {
	for _, dir := range s.BaseDirs {
		canonical := artifact.Dir(dir)
		if _, err := os.Stat(canonical); err != nil {
			return fmt.Errorf("cannot watch %s: the canonical directory does not exist (run 'agentsync init' first)", console.ToRelativePath(canonical))
		}
	}

	if err := RunGenerate(s); err != nil {
		// Watch keeps running through failures; the next change may fix them.
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(err.Error()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := &watchState{}
	p := pool.New().WithErrors()
	for _, dir := range s.BaseDirs {
		w := watcher.New(artifact.Dir(dir), func() {
			regenerateDir(s, dir, st)
		})
		p.Go(func() error { return w.Run(ctx) })
	}

	fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Watching for changes. Press Ctrl-C to stop."))
	return p.Wait()
}

// watchState serializes regeneration output across base directory watchers
// and remembers whether the previous status line can be overwritten.
type watchState struct {
	mu      sync.Mutex
	repaint bool
}

// regenerateDir reruns generation for a single base directory after a watch
// event burst. Failures are reported and watching continues. Consecutive
// clean one-line statuses overwrite each other in place on a terminal.
func regenerateDir(s *runSettings, dir string, st *watchState) {
	st.mu.Lock()
	defer st.mu.Unlock()

	scoped := *s
	scoped.BaseDirs = []string{dir}

	runs, err := generateAll(&scoped)
	if st.repaint {
		console.MoveCursorUp(1)
		console.ClearLine()
	}
	st.repaint = false

	if err != nil {
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("Regeneration failed: %v", err)))
		return
	}

	written, deleted, _, failed := tallyRuns(runs)
	switch {
	case failed > 0:
		fmt.Fprintln(os.Stderr, console.FormatWarningMessage(fmt.Sprintf("Regenerated with %d failed artifacts", failed)))
		printFailures(runs)
	case deleted > 0:
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Regenerated %d files, deleted %d", written, deleted)))
		st.repaint = true
	default:
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(fmt.Sprintf("Regenerated %d files", written)))
		st.repaint = true
	}
}

// printRunSummary prints the per-tool summary table, failure details, and a
// closing status line.
func printRunSummary(title string, runs []toolRun, s *runSettings) {
	multiDir := len(s.BaseDirs) > 1

	var rows [][]string
	for _, run := range runs {
		for _, out := range run.Outcomes {
			w, d, k, f := len(out.Written), len(out.Deleted), len(out.Skipped), len(out.Failures)
			if w+d+k+f == 0 {
				continue
			}
			tool := run.Tool
			if multiDir {
				tool = fmt.Sprintf("%s (%s)", run.Tool, console.ToRelativePath(run.Dir))
			}
			rows = append(rows, []string{
				tool, string(out.Feature),
				strconv.Itoa(w), strconv.Itoa(d), strconv.Itoa(k), strconv.Itoa(f),
			})
			for _, path := range out.Written {
				console.LogVerbose(s.Verbose, "  wrote "+path+writtenSizeSuffix(run.Dir, path, s.DryRun))
			}
			for _, path := range out.Deleted {
				console.LogVerbose(s.Verbose, "  deleted "+path)
			}
		}
	}

	written, deleted, _, failed := tallyRuns(runs)
	if len(rows) > 0 {
		fmt.Fprintln(os.Stderr, console.RenderTable(console.TableConfig{
			Title:     title + " summary",
			Headers:   []string{"Tool", "Feature", "Written", "Deleted", "Skipped", "Failed"},
			Rows:      rows,
			ShowTotal: true,
			TotalRow: []string{"Total", "",
				strconv.Itoa(written), strconv.Itoa(deleted), "", strconv.Itoa(failed)},
		}))
	}

	printFailures(runs)

	switch {
	case s.DryRun:
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(fmt.Sprintf("Dry run: %d files would be written, %d deleted", written, deleted)))
	case failed > 0:
		// The closing error line comes from the command's returned error.
	case written == 0 && deleted == 0:
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage("Nothing to do: no eligible canonical artifacts found"))
	default:
		msg := fmt.Sprintf("Wrote %d files for %d tools", written, len(s.Targets))
		if deleted > 0 {
			msg += fmt.Sprintf(", deleted %d orphans", deleted)
		}
		fmt.Fprintln(os.Stderr, console.FormatSuccessMessage(msg))
	}
}

// writtenSizeSuffix annotates a written file with its on-disk size. Dry runs
// wrote nothing, so they get no suffix.
func writtenSizeSuffix(dir, rel string, dryRun bool) string {
	if dryRun {
		return ""
	}
	info, err := os.Stat(filepath.Join(dir, rel))
	if err != nil {
		return ""
	}
	return " (" + console.FormatFileSize(info.Size()) + ")"
}

// printFailures prints one warning line per failed artifact.
func printFailures(runs []toolRun) {
	for _, run := range runs {
		for _, out := range run.Outcomes {
			for _, f := range out.Failures {
				fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
					fmt.Sprintf("%s %s: %s: %v", run.Tool, out.Feature, f.Name, f.Err)))
			}
		}
	}
}

func tallyRuns(runs []toolRun) (written, deleted, skipped, failed int) {
	for _, run := range runs {
		for _, out := range run.Outcomes {
			written += len(out.Written)
			deleted += len(out.Deleted)
			skipped += len(out.Skipped)
			failed += len(out.Failures)
		}
	}
	return
}

func countFailures(runs []toolRun) int {
	_, _, _, failed := tallyRuns(runs)
	return failed
}
