package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentsync/agentsync/pkg/logger"
)

var completionLog = logger.New("cli:completion")

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts for agentsync commands",
		Long: `Generate a shell completion script for agentsync.

Supported shells: bash, zsh, fish, powershell

Examples:
  # Bash
  agentsync completion bash > ~/.bash_completion.d/agentsync
  source ~/.bash_completion.d/agentsync

  # Zsh
  agentsync completion zsh > "${fpath[1]}/_agentsync"
  compinit

  # Fish
  agentsync completion fish > ~/.config/fish/completions/agentsync.fish

  # PowerShell
  agentsync completion powershell | Out-String | Invoke-Expression`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := args[0]
			completionLog.Printf("Generating %s completion script", shell)

			switch shell {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletion(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unsupported shell: %s", shell)
			}
		},
	}
}
