package cli

import (
	"github.com/spf13/cobra"
)

const completionHelp = `Generate shell completion scripts for aurclient.

To load completions:

Bash:
  $ source <(aurclient completion bash)

  # To load completions for each session, execute once:
  $ aurclient completion bash > /etc/bash_completion.d/aurclient

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ aurclient completion zsh > "${fpath[1]}/_aurclient"

Fish:
  $ aurclient completion fish | source

  # To load completions for each session, execute once:
  $ aurclient completion fish > ~/.config/fish/completions/aurclient.fish

PowerShell:
  PS> aurclient completion powershell | Out-String | Invoke-Expression
`

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		Long:                  completionHelp,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}
}
