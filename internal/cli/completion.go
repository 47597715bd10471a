package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newCompletionCmd creates the completion command for generating shell
// completion scripts.
func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for terraviz.

To load completions:

Bash:
  $ source <(terraviz completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ terraviz completion bash > /etc/bash_completion.d/terraviz
  # macOS:
  $ terraviz completion bash > $(brew --prefix)/etc/bash_completion.d/terraviz

Zsh:
  $ terraviz completion zsh > "${fpath[1]}/_terraviz"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ terraviz completion fish | source

  # To load completions for each session, execute once:
  $ terraviz completion fish > ~/.config/fish/completions/terraviz.fish

PowerShell:
  PS> terraviz completion powershell | Out-String | Invoke-Expression
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
}
