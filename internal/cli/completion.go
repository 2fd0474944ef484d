package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newCompletionCmd creates the completion command for generating shell completions.
func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for shap.

To load completions:

Bash:
  $ source <(shap completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ shap completion bash > /etc/bash_completion.d/shap
  # macOS:
  $ shap completion bash > $(brew --prefix)/etc/bash_completion.d/shap

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ shap completion zsh > "${fpath[1]}/_shap"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ shap completion fish | source

  # To load completions for each session, execute once:
  $ shap completion fish > ~/.config/fish/completions/shap.fish

PowerShell:
  PS> shap completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> shap completion powershell > shap.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
