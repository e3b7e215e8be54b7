// Package ref provides the ref command.
package ref

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/fx/internal/config"
	"github.com/open-cli-collective/fx/internal/view"
	"github.com/open-cli-collective/fx/pkg/fx"
)

type refOptions struct {
	output  string
	noColor bool
	cfg     *config.Config
	writer  io.Writer
}

// refResult is the JSON shape of a parsed reference.
type refResult struct {
	Input     string        `json:"input"`
	Kind      string        `json:"kind"`
	Canonical string        `json:"canonical"`
	Reference *fx.Reference `json:"reference"`
}

// NewCmdRef creates the ref command.
func NewCmdRef() *cobra.Command {
	opts := &refOptions{}

	cmd := &cobra.Command{
		Use:   "ref <reference>",
		Short: "Parse a single reference",
		Long: `Parse a single range, defined name or table reference and print its parts
along with its canonical spelling.`,
		Example: `  # Parse an A1 range
  fx ref "'My Sheet'!b2:a1"

  # Parse a table reference
  fx ref 'Table1[[#This Row],[Price]]'

  # Parse an R1C1 range with an xlsx workbook prefix
  fx ref --r1c1 --xlsx '[1]Sheet1!R[-1]C:R1C3' -o json`,
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
			return runRef(args[0], opts)
		},
	}

	config.RegisterFlags(cmd.Flags(), "r1c1", "allow-ternary", "xlsx", "this-row")

	return cmd
}

func runRef(input string, opts *refOptions) error {
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

	result, err := parse(input, cfg)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)
	renderer.SetWriter(w)

	if opts.output == "json" {
		return renderer.RenderJSON(result)
	}

	r := result.Reference
	renderer.RenderKeyValue("Kind", result.Kind)
	renderer.RenderKeyValue("Canonical", result.Canonical)
	if r.WorkbookName != "" {
		renderer.RenderKeyValue("Workbook", r.WorkbookName)
	}
	if r.SheetName != "" {
		renderer.RenderKeyValue("Sheet", r.SheetName)
	}
	if len(r.Context) > 0 {
		renderer.RenderKeyValue("Context", strings.Join(r.Context, ", "))
	}
	switch {
	case r.Range != nil:
		renderA1(renderer, r.Range)
	case r.RangeR1C1 != nil:
		renderR1C1(renderer, r.RangeR1C1)
	case r.Struct != nil:
		renderer.RenderKeyValue("Table", valueOrDash(r.Struct.Table))
		renderer.RenderKeyValue("Columns", valueOrDash(strings.Join(r.Struct.Columns, ", ")))
		sections := make([]string, len(r.Struct.Sections))
		for i, s := range r.Struct.Sections {
			sections[i] = string(s)
		}
		renderer.RenderKeyValue("Sections", valueOrDash(strings.Join(sections, ", ")))
	default:
		renderer.RenderKeyValue("Name", r.Name)
	}
	return nil
}

// parse tries the table reference parser first, then the range parser
// for the configured notation.
func parse(input string, cfg *config.Config) (*refResult, error) {
	refOpts := cfg.RefOptions()
	if r, ok := fx.ParseStructRef(input, refOpts); ok {
		return &refResult{Input: input, Kind: "structured", Canonical: fx.StringifyStructRef(r, refOpts), Reference: r}, nil
	}

	var r *fx.Reference
	var ok bool
	if cfg.R1C1 {
		r, ok = fx.ParseR1C1Ref(input, refOpts)
	} else {
		r, ok = fx.ParseA1Ref(input, refOpts)
	}
	if !ok {
		return nil, fmt.Errorf("invalid reference: %q", input)
	}

	result := &refResult{Input: input, Reference: r}
	switch {
	case r.Range != nil:
		result.Kind = "range"
		result.Canonical = fx.StringifyA1Ref(r, refOpts)
	case r.RangeR1C1 != nil:
		result.Kind = "range"
		result.Canonical = fx.StringifyR1C1Ref(r, refOpts)
	default:
		result.Kind = "name"
		result.Canonical = fx.StringifyA1Ref(r, refOpts)
	}
	return result, nil
}

func renderA1(renderer *view.Renderer, r *fx.RangeA1) {
	renderer.RenderKeyValue("Top", coord(r.Top, r.AbsTop, fx.IndexToRow))
	renderer.RenderKeyValue("Left", coord(r.Left, r.AbsLeft, fx.IndexToCol))
	renderer.RenderKeyValue("Bottom", coord(r.Bottom, r.AbsBottom, fx.IndexToRow))
	renderer.RenderKeyValue("Right", coord(r.Right, r.AbsRight, fx.IndexToCol))
	if r.Trim != fx.TrimNone {
		renderer.RenderKeyValue("Trim", string(r.Trim))
	}
}

func renderR1C1(renderer *view.Renderer, r *fx.RangeR1C1) {
	renderer.RenderKeyValue("R0", offset(r.R0, r.AbsR0))
	renderer.RenderKeyValue("C0", offset(r.C0, r.AbsC0))
	renderer.RenderKeyValue("R1", offset(r.R1, r.AbsR1))
	renderer.RenderKeyValue("C1", offset(r.C1, r.AbsC1))
	if r.Trim != fx.TrimNone {
		renderer.RenderKeyValue("Trim", string(r.Trim))
	}
}

// coord prints an A1 coordinate as its index and its label, e.g. "1 (B)".
func coord(v *int, abs bool, label func(int) string) string {
	if v == nil {
		return "-"
	}
	s := strconv.Itoa(*v) + " (" + label(*v) + ")"
	if abs {
		s += " absolute"
	}
	return s
}

func offset(v *int, abs bool) string {
	if v == nil {
		return "-"
	}
	if abs {
		return strconv.Itoa(*v) + " absolute"
	}
	return fmt.Sprintf("%+d relative", *v)
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
