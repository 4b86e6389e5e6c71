package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/agentsync/agentsync/pkg/config"
	"github.com/agentsync/agentsync/pkg/logger"
	"github.com/agentsync/agentsync/pkg/processor"
	"github.com/agentsync/agentsync/pkg/tools"
)

var mcpServerLog = logger.New("cli:mcp_server")

// NewMCPServerCommand creates the mcp-server command.
func NewMCPServerCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run an MCP server exposing generate, import, and status as tools",
		Long: `Run a Model Context Protocol server on stdio. Assistants connected to it
can regenerate tool configuration, import native files, and inspect the
canonical tree without shelling out.

Register it with a tool the usual way, for example in .mcp.json:

  {"mcpServers": {"agentsync": {"command": "agentsync", "args": ["mcp-server"]}}}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMCPServer(cmd.Context(), version)
		},
	}
}

// RunMCPServer serves MCP over stdio until the client disconnects. Nothing
// may print to stdout here; it carries the protocol.
func RunMCPServer(ctx context.Context, version string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	server := newMCPServer(version)
	mcpServerLog.Print("Starting MCP server on stdio")
	return server.Run(ctx, &mcp.StdioTransport{})
}

func newMCPServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "agentsync", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate tool-native configuration files from the canonical .agentsync/ artifacts",
	}, handleGenerateTool)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "import",
		Description: "Import one tool's native configuration files into the canonical .agentsync/ tree",
	}, handleImportTool)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "List the canonical artifacts and which tools they reach",
	}, handleStatusTool)

	return server
}

type generateToolArgs struct {
	Targets  []string `json:"targets,omitempty" jsonschema:"tool IDs to generate for, or 'all'; defaults to the project config"`
	Features []string `json:"features,omitempty" jsonschema:"artifact kinds to generate, or 'all'"`
	BaseDir  string   `json:"baseDir,omitempty" jsonschema:"project directory; defaults to the current project root"`
	Delete   bool     `json:"delete,omitempty" jsonschema:"delete generated files whose canonical artifact is gone"`
	DryRun   bool     `json:"dryRun,omitempty" jsonschema:"report changes without writing"`
}

type importToolArgs struct {
	Target   string   `json:"target" jsonschema:"tool ID to import from"`
	Features []string `json:"features,omitempty" jsonschema:"artifact kinds to import, or 'all'"`
	BaseDir  string   `json:"baseDir,omitempty" jsonschema:"project directory; defaults to the current project root"`
}

type statusToolArgs struct {
	BaseDir string `json:"baseDir,omitempty" jsonschema:"project directory; defaults to the current project root"`
}

// toolSettings resolves run settings for an MCP tool call, which has no
// command flags to merge.
func toolSettings(baseDir string, targets, features []string) (*runSettings, error) {
	s := &runSettings{ProjectRoot: resolveProjectRoot()}
	if baseDir != "" {
		s.ProjectRoot = baseDir
	}
	s.BaseDirs = []string{s.ProjectRoot}

	var err error
	if s.Targets, err = expandTargets(targets); err != nil {
		return nil, err
	}
	if s.Features, err = expandFeatures(features); err != nil {
		return nil, err
	}
	return s, nil
}

func handleGenerateTool(ctx context.Context, req *mcp.CallToolRequest, args generateToolArgs) (*mcp.CallToolResult, any, error) {
	mcpServerLog.Printf("Tool call: generate targets=%v baseDir=%s", args.Targets, args.BaseDir)

	s, err := toolSettings(args.BaseDir, args.Targets, args.Features)
	if err != nil {
		return nil, nil, err
	}
	if len(s.Targets) == 0 {
		// Fall back to the project config, as the CLI does.
		cs, err := loadConfiguredTargets(s.ProjectRoot)
		if err != nil {
			return nil, nil, err
		}
		s.Targets = cs
	}
	if len(s.Targets) == 0 {
		return nil, nil, fmt.Errorf("no targets: pass targets or configure them in agentsync.yml")
	}
	s.Delete = args.Delete
	s.DryRun = args.DryRun

	runs, err := generateAll(s)
	if err != nil {
		return nil, nil, err
	}
	return outcomeResult(runs, args.DryRun), nil, nil
}

func handleImportTool(ctx context.Context, req *mcp.CallToolRequest, args importToolArgs) (*mcp.CallToolResult, any, error) {
	mcpServerLog.Printf("Tool call: import target=%s baseDir=%s", args.Target, args.BaseDir)

	adapter, err := tools.Lookup(args.Target)
	if err != nil {
		return nil, nil, err
	}
	s, err := toolSettings(args.BaseDir, nil, args.Features)
	if err != nil {
		return nil, nil, err
	}

	var runs []toolRun
	for _, dir := range s.BaseDirs {
		proc := processor.New(adapter, dir)
		runs = append(runs, toolRun{Dir: dir, Tool: adapter.ID, Outcomes: proc.Import(s.Features)})
	}
	return outcomeResult(runs, false), nil, nil
}

func handleStatusTool(ctx context.Context, req *mcp.CallToolRequest, args statusToolArgs) (*mcp.CallToolResult, any, error) {
	mcpServerLog.Printf("Tool call: status baseDir=%s", args.BaseDir)

	s, err := toolSettings(args.BaseDir, nil, nil)
	if err != nil {
		return nil, nil, err
	}
	cs, err := loadConfiguredTargets(s.ProjectRoot)
	if err != nil {
		return nil, nil, err
	}
	s.Targets = cs

	report, err := buildStatusReport(s)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: report}},
	}, nil, nil
}

// loadConfiguredTargets reads the project config's targets for tool calls
// that did not pass their own.
func loadConfiguredTargets(root string) ([]string, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	return expandTargets(cfg.Targets)
}

// outcomeResult renders run outcomes as an MCP text result. Artifact
// failures mark the result as an error but keep the partial counts visible.
func outcomeResult(runs []toolRun, dryRun bool) *mcp.CallToolResult {
	var sb strings.Builder
	written, deleted, skipped, failed := tallyRuns(runs)
	if dryRun {
		sb.WriteString("Dry run.\n")
	}
	fmt.Fprintf(&sb, "Written: %d, deleted: %d, skipped: %d, failed: %d\n", written, deleted, skipped, failed)

	for _, run := range runs {
		for _, out := range run.Outcomes {
			for _, path := range out.Written {
				fmt.Fprintf(&sb, "  %s %s: wrote %s\n", run.Tool, out.Feature, path)
			}
			for _, path := range out.Deleted {
				fmt.Fprintf(&sb, "  %s %s: deleted %s\n", run.Tool, out.Feature, path)
			}
			for _, f := range out.Failures {
				fmt.Fprintf(&sb, "  %s %s: %s failed: %v\n", run.Tool, out.Feature, f.Name, f.Err)
			}
		}
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: strings.TrimRight(sb.String(), "\n")}},
		IsError: failed > 0,
	}
}
