// Package completion provides shell completion generation.
package completion

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewCmdCompletion creates the completion command.
func NewCmdCompletion() *cobra.Command {
	return &cobra.Command{
		Use:   "completion <bash|zsh|fish|powershell>",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for fx.

To load completions in your current shell session:

  bash:        source <(fx completion bash)
  zsh:         source <(fx completion zsh)
  fish:        fx completion fish | source
  powershell:  fx completion powershell | Out-String | Invoke-Expression

To load completions for every new session, write the script to your
shell's completion directory, for example:

  fx completion bash > /etc/bash_completion.d/fx
  fx completion zsh > "${fpath[1]}/_fx"
  fx completion fish > ~/.config/fish/completions/fx.fish`,
		Example: `  # Load in current session
  source <(fx completion bash)`,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd.Root(), args[0], cmd.OutOrStdout())
		},
	}
}

func generate(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}
}
