// Package tokens provides the tokens command.
package tokens

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/fx/internal/config"
	"github.com/open-cli-collective/fx/internal/view"
	"github.com/open-cli-collective/fx/pkg/fx"
)

type tokensOptions struct {
	meta      bool
	highlight bool
	output    string
	noColor   bool
	cfg       *config.Config
	writer    io.Writer
}

// NewCmdTokens creates the tokens command.
func NewCmdTokens() *cobra.Command {
	opts := &tokensOptions{}

	cmd := &cobra.Command{
		Use:     "tokens <formula>",
		Aliases: []string{"tokenize", "tok"},
		Short:   "Split a formula into tokens",
		Long: `Split a formula into tokens and print their types and positions.

With --meta every token also gets its nesting depth, a group id shared
by matching parens and by references to the same range, and an error
flag for unmatched brackets and unrecognized input.`,
		Example: `  # Tokenize a formula
  fx tokens '=SUM(A1:B2, 3)'

  # Include depth and reference groups
  fx tokens --meta '=A1+Sheet1!$A$1' --sheet Sheet1

  # R1C1 input as JSON
  fx tokens --r1c1 -o json '=R[-1]C+1'`,
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
			return runTokens(args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.meta, "meta", "m", false, "Add depth, group and error annotations")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "Print the formula with colored tokens instead of a table")
	config.RegisterFlags(cmd.Flags(), "r1c1", "allow-ternary", "xlsx", "negative-numbers", "merge-refs", "sheet", "workbook")

	return cmd
}

func runTokens(formula string, opts *tokensOptions) error {
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

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(w)

	tokens := fx.Tokenize(formula, cfg.TokenizeOptions())
	if opts.highlight {
		renderer.RenderText(view.Highlight(tokens))
		return nil
	}

	var enhanced []fx.TokenEnhanced
	if opts.meta {
		enhanced = fx.AddTokenMeta(tokens, cfg.MetaOptions())
	} else {
		enhanced = make([]fx.TokenEnhanced, len(tokens))
		for i, t := range tokens {
			enhanced[i] = fx.TokenEnhanced{Token: t, Index: i}
		}
	}
	return renderer.RenderTokens(enhanced, opts.meta)
}
