// Package check provides the check command.
package check

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/fx/internal/config"
	"github.com/open-cli-collective/fx/internal/mdscan"
	"github.com/open-cli-collective/fx/internal/view"
	"github.com/open-cli-collective/fx/pkg/fx"
)

// ErrProblemsFound is returned when any checked formula has diagnostics.
var ErrProblemsFound = errors.New("problems found")

type checkOptions struct {
	markdown string
	output   string
	noColor  bool
	cfg      *config.Config
	stdin    io.Reader
	writer   io.Writer
}

// checked is one formula and its diagnostics, with its place in the
// source document when it came from one.
type checked struct {
	Line   int             `json:"line,omitempty"`
	Kind   mdscan.Kind     `json:"kind,omitempty"`
	Result *fx.CheckResult `json:"result"`
}

// NewCmdCheck creates the check command.
func NewCmdCheck() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [formula...]",
		Short: "Report problems in formulas",
		Long: `Tokenize formulas and report unrecognized input, unmatched parens and
braces, unterminated strings and references that do not parse.

With --markdown the formulas embedded in a markdown or HTML document are
checked. The command exits non-zero when any problem is found.`,
		Example: `  # Check a formula
  fx check '=SUM(A1:B2'

  # Check every formula in a markdown file
  fx check --markdown docs/budget.md

  # Check an HTML export as JSON
  fx check --markdown export.html -o json`,
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
			return runCheck(args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.markdown, "markdown", "", "Check formulas in a markdown or HTML file (- for stdin)")
	config.RegisterFlags(cmd.Flags(), "r1c1", "allow-ternary", "xlsx", "sheet", "workbook")

	return cmd
}

func runCheck(formulas []string, opts *checkOptions) error {
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

	var items []checked
	switch {
	case opts.markdown != "":
		source, _, err := mdscan.ReadDocument(opts.markdown, opts.stdin)
		if err != nil {
			return err
		}
		for _, f := range mdscan.Scan(source) {
			items = append(items, checked{Line: f.Line, Kind: f.Kind, Result: fx.Check(f.Text, cfg.CheckOptions())})
		}
	case len(formulas) > 0:
		for _, f := range formulas {
			items = append(items, checked{Result: fx.Check(f, cfg.CheckOptions())})
		}
	default:
		return errors.New("at least one formula is required (or use --markdown)")
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(w)

	problems := 0
	for _, item := range items {
		problems += len(item.Result.Diagnostics)
	}

	if opts.output == "json" {
		if err := renderer.RenderJSON(items); err != nil {
			return err
		}
	} else {
		renderChecked(renderer, items, opts.markdown != "")
		switch {
		case len(items) == 0:
			renderer.Warning("No formulas found")
		case problems == 0:
			renderer.Success(fmt.Sprintf("%d formula(s) OK", len(items)))
		default:
			renderer.Error(fmt.Sprintf("%d problem(s) in %d formula(s)", problems, len(items)))
		}
	}

	if problems > 0 {
		return fmt.Errorf("%w: %d", ErrProblemsFound, problems)
	}
	return nil
}

func renderChecked(renderer *view.Renderer, items []checked, withLines bool) {
	headers := []string{"FORMULA", "POS", "PROBLEM"}
	if withLines {
		headers = append([]string{"LINE"}, headers...)
	}

	var rows [][]string
	for _, item := range items {
		for _, d := range item.Result.Diagnostics {
			pos := "-"
			if d.Token.Loc != nil {
				pos = strconv.Itoa(d.Token.Loc.Start)
			}
			row := []string{view.Truncate(item.Result.Formula, 40), pos, d.Message}
			if withLines {
				row = append([]string{strconv.Itoa(item.Line)}, row...)
			}
			rows = append(rows, row)
		}
	}
	if len(rows) > 0 {
		renderer.RenderTable(headers, rows)
	}
}
