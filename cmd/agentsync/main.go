package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentsync/agentsync/pkg/artifact"
	"github.com/agentsync/agentsync/pkg/cli"
	"github.com/agentsync/agentsync/pkg/console"
)

// Overridden at build time via -ldflags "-X main.version=...".
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "agentsync",
	Short: "Sync AI assistant configuration from one canonical source",
	Long: `agentsync keeps the configuration of AI coding assistants in sync from a
single canonical source.

Rules, ignore lists, MCP server definitions, custom commands and sub-agents
live once under .agentsync/. The generate command converts them into each
tool's native files; import converts a tool's existing files back into the
canonical tree.

Start with 'agentsync init', then 'agentsync generate'.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the agentsync version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(
		cli.NewGenerateCommand(),
		cli.NewImportCommand(),
		cli.NewInitCommand(),
		cli.NewValidateCommand(),
		cli.NewStatusCommand(),
		cli.NewMCPServerCommand(version),
		cli.NewCompletionCommand(),
		versionCmd,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var verr *artifact.ValidationError
		if errors.As(err, &verr) && verr.Hint != "" {
			fmt.Fprintln(os.Stderr, console.FormatErrorWithSuggestions(verr.Message(), []string{verr.Hint}))
		} else {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		}
		os.Exit(1)
	}
}
