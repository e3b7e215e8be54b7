// Package translate provides the translate command.
package translate

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/fx/internal/config"
	"github.com/open-cli-collective/fx/internal/view"
	"github.com/open-cli-collective/fx/pkg/fx"
)

type translateOptions struct {
	anchor  string
	to      string
	output  string
	noColor bool
	cfg     *config.Config
	writer  io.Writer
}

type translateResult struct {
	Formula string `json:"formula"`
	Anchor  string `json:"anchor"`
	To      string `json:"to"`
	Result  string `json:"result"`
}

// NewCmdTranslate creates the translate command.
func NewCmdTranslate() *cobra.Command {
	opts := &translateOptions{}

	cmd := &cobra.Command{
		Use:   "translate <formula>",
		Short: "Convert references between A1 and R1C1 notation",
		Long: `Convert the references in a formula between A1 and R1C1 notation,
relative to the anchor cell the formula lives in.

Converting to A1 may push a reference off the sheet. Such references wrap
around the sheet edge unless --wrap-edges=false, in which case they become
#REF!.`,
		Example: `  # A1 to R1C1
  fx translate --anchor B2 '=A1+$B$2+C:C'

  # R1C1 back to A1
  fx translate --anchor B2 --to a1 '=R[-1]C[-1]+R2C2'

  # Without wrapping
  fx translate --anchor A1 --to a1 --wrap-edges=false '=R[-1]C'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := config.Resolve(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.writer = cmd.OutOrStdout()
			return runTranslate(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.anchor, "anchor", "a", "A1", "Cell the formula is anchored to")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "Target notation: r1c1 or a1 (default: the opposite of the configured notation)")
	config.RegisterFlags(cmd.Flags(), "wrap-edges", "merge-refs", "allow-ternary", "xlsx")

	_ = cmd.RegisterFlagCompletionFunc("to", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"r1c1", "a1"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runTranslate(formula string, opts *translateOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	cfg := opts.cfg
	if cfg == nil {
		cfg = config.Default()
	}
	w := opts.writer
	if w == nil {
		w = os.Stdout
	}

	to := strings.ToLower(opts.to)
	if to == "" {
		to = "r1c1"
		if cfg.R1C1 {
			to = "a1"
		}
	}

	var result string
	var err error
	switch to {
	case "r1c1":
		result, err = fx.TranslateToR1C1(formula, opts.anchor, cfg.TranslateOptions())
	case "a1":
		result, err = fx.TranslateToA1(formula, opts.anchor, cfg.TranslateOptions())
	default:
		return fmt.Errorf("invalid target notation %q: must be r1c1 or a1", opts.to)
	}
	if err != nil {
		return fmt.Errorf("failed to translate formula: %w", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(w)

	if opts.output == "json" {
		return renderer.RenderJSON(translateResult{Formula: formula, Anchor: opts.anchor, To: to, Result: result})
	}
	renderer.RenderText(result)
	return nil
}
