// Package fix provides the fix command.
package fix

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/fx/internal/config"
	"github.com/open-cli-collective/fx/internal/mdscan"
	"github.com/open-cli-collective/fx/internal/view"
	"github.com/open-cli-collective/fx/pkg/fx"
)

type fixOptions struct {
	markdown string
	write    bool
	output   string
	noColor  bool
	cfg      *config.Config
	stdin    io.Reader
	writer   io.Writer
}

type fixResult struct {
	Formula string `json:"formula"`
	Fixed   string `json:"fixed"`
	Changed bool   `json:"changed"`
}

// NewCmdFix creates the fix command.
func NewCmdFix() *cobra.Command {
	opts := &fixOptions{}

	cmd := &cobra.Command{
		Use:   "fix [formula...]",
		Short: "Rewrite references in canonical form",
		Long: `Rewrite every range and table reference in a formula in canonical form:
corners ordered top-left to bottom-right, column letters upper-cased,
needless sheet quotes dropped and table sections normalized.

With --markdown the formulas embedded in a markdown document are fixed
instead. The result is printed unless --write is given.`,
		Example: `  # Fix a formula
  fx fix '=sum(b2:a1)'

  # Fill open range sides
  fx fix --add-bounds '=B2:A'

  # Fix formulas in a markdown file in place
  fx fix --markdown README.md --write`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			configPath, _ := cmd.Flags().GetString("config")

			cfg, err := config.Resolve(configPath, cmd.Flags())
			if err != nil {
				return err
			}
			opts.cfg = cfg
			opts.stdin = cmd.InOrStdin()
			opts.writer = cmd.OutOrStdout()
			if opts.markdown != "" {
				return runFixMarkdown(opts)
			}
			return runFix(args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.markdown, "markdown", "", "Fix formulas in a markdown file (- for stdin)")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "Write the fixed markdown back to the file")
	config.RegisterFlags(cmd.Flags(), "add-bounds", "this-row", "xlsx")

	return cmd
}

func (opts *fixOptions) effective() *config.Config {
	if opts.cfg == nil {
		return config.Default()
	}
	return opts.cfg
}

func (opts *fixOptions) out() io.Writer {
	if opts.writer == nil {
		return os.Stdout
	}
	return opts.writer
}

func runFix(formulas []string, opts *fixOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if len(formulas) == 0 {
		return errors.New("at least one formula is required (or use --markdown)")
	}

	fixOpts := opts.effective().FixOptions()
	results := make([]fixResult, 0, len(formulas))
	for _, f := range formulas {
		fixed := fx.FixFormulaRanges(f, fixOpts)
		results = append(results, fixResult{Formula: f, Fixed: fixed, Changed: fixed != f})
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.out())

	if opts.output == "json" {
		return renderer.RenderJSON(results)
	}
	for _, r := range results {
		renderer.RenderText(r.Fixed)
	}
	return nil
}

func runFixMarkdown(opts *fixOptions) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if opts.write && opts.markdown == "-" {
		return errors.New("--write needs a file, not stdin")
	}

	source, converted, err := mdscan.ReadDocument(opts.markdown, opts.stdin)
	if err != nil {
		return err
	}
	if converted {
		return fmt.Errorf("cannot fix %s: only markdown documents can be rewritten", opts.markdown)
	}

	fixOpts := opts.effective().FixOptions()
	var results []fixResult
	fixed, changed := mdscan.Rewrite(source, func(f mdscan.Formula) string {
		out := fx.FixFormulaRanges(f.Text, fixOpts)
		results = append(results, fixResult{Formula: f.Text, Fixed: out, Changed: out != f.Text})
		return out
	})

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(opts.out())

	if opts.write {
		if changed > 0 {
			if err := os.WriteFile(opts.markdown, fixed, 0644); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
		}
		if opts.output == "json" {
			return renderer.RenderJSON(results)
		}
		renderer.Success(fmt.Sprintf("Fixed %d of %d formulas in %s", changed, len(results), opts.markdown))
		return nil
	}

	if opts.output == "json" {
		return renderer.RenderJSON(results)
	}
	_, err = opts.out().Write(fixed)
	return err
}
