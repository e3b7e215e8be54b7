// Package init provides the init command for fx.
package init

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/fx/internal/config"
	"github.com/open-cli-collective/fx/internal/view"
)

type initOptions struct {
	configPath string
	defaults   bool
	writer     io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize fx configuration",
		Long: `Initialize fx with the defaults applied to every command.

This command will guide you through choosing the reference notation, the
parser dialect and the sheet and workbook a formula is assumed to live in.
The configuration will be saved to ~/.config/fx/config.yml.`,
		Example: `  # Interactive setup
  fx init

  # Write the built-in defaults without prompting
  fx init --defaults`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			if opts.configPath == "" {
				opts.configPath = config.DefaultConfigPath()
			}
			opts.writer = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.defaults, "defaults", false, "Save the built-in defaults without prompting")

	return cmd
}

func runInit(opts *initOptions) error {
	w := opts.writer
	if w == nil {
		w = os.Stdout
	}

	if opts.defaults {
		return saveConfig(config.Default(), opts.configPath, w)
	}

	// Start from the existing file so a rerun only changes what is edited
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		cfg = config.Default()
	} else {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", opts.configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(w, "Initialization cancelled.")
			return nil
		}
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = string(view.FormatTable)
	}

	formats := make([]huh.Option[string], 0, len(view.ValidFormats()))
	for _, f := range view.ValidFormats() {
		formats = append(formats, huh.NewOption(f, f))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("R1C1 notation").
				Description("Read references as R1C1 instead of A1").
				Value(&cfg.R1C1),

			huh.NewConfirm().
				Title("XLSX dialect").
				Description("Parse the file form of formulas ([1]Sheet1!A1, Table1[[#This Row],[Foo]])").
				Value(&cfg.XLSX),

			huh.NewConfirm().
				Title("Allow ternary ranges").
				Description("Accept A1:A and 1:A1 style ranges with one open edge").
				Value(&cfg.AllowTernary),

			huh.NewSelect[string]().
				Title("Output format").
				Options(formats...).
				Value(&cfg.OutputFormat),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Default sheet (optional)").
				Description("Sheet unqualified references are assumed to be on").
				Placeholder("Sheet1").
				Value(&cfg.SheetName).
				Validate(validateSheet),

			huh.NewInput().
				Title("Default workbook (optional)").
				Description("Workbook unqualified references are assumed to be in").
				Placeholder("Budget.xlsx").
				Value(&cfg.WorkbookName).
				Validate(validateWorkbook),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	return saveConfig(cfg, opts.configPath, w)
}

func validateSheet(s string) error {
	return (&config.Config{SheetName: s}).Validate()
}

func validateWorkbook(s string) error {
	return (&config.Config{WorkbookName: s}).Validate()
}

func saveConfig(cfg *config.Config, configPath string, w io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nConfiguration saved to %s\n", configPath)
	fmt.Fprintln(w, "\nYou're all set! Try running:")
	fmt.Fprintln(w, "  fx tokens '=SUM(A1:B2)'")
	fmt.Fprintln(w, "  fx check --markdown README.md")

	return nil
}
