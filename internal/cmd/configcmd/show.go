package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/fx/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the effective fx configuration and where each value comes from.`,
		Example: `  # Show current config
  fx config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			configPath, _ := cmd.Flags().GetString("config")
			if configPath == "" {
				configPath = config.DefaultConfigPath()
			}
			return runShow(configPath, noColor, cmd.OutOrStdout())
		},
	}

	return cmd
}

func runShow(configPath string, noColor bool, w io.Writer) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = config.Default()
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue, envVar string) {
		_, _ = bold.Fprintf(w, "%-18s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}
		fmt.Fprint(w, value)

		source := "config"
		if fileErr != nil {
			source = "default"
		}
		if v := os.Getenv(envVar); v != "" && value != fileValue {
			source = envVar
		}
		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}
	printBool := func(label string, value, fileValue bool, envVar string) {
		printField(label, strconv.FormatBool(value), strconv.FormatBool(fileValue), envVar)
	}

	printBool("R1C1", cfg.R1C1, fileCfg.R1C1, "FX_R1C1")
	printBool("Allow ternary", cfg.AllowTernary, fileCfg.AllowTernary, "FX_ALLOW_TERNARY")
	printBool("XLSX", cfg.XLSX, fileCfg.XLSX, "FX_XLSX")
	printBool("Negative numbers", cfg.NegativeNumbers, fileCfg.NegativeNumbers, "FX_NEGATIVE_NUMBERS")
	printBool("Merge refs", cfg.MergeRefs, fileCfg.MergeRefs, "FX_MERGE_REFS")
	printBool("Wrap edges", cfg.WrapEdges, fileCfg.WrapEdges, "FX_WRAP_EDGES")
	printBool("This row", cfg.ThisRow, fileCfg.ThisRow, "FX_THIS_ROW")
	printBool("Add bounds", cfg.AddBounds, fileCfg.AddBounds, "FX_ADD_BOUNDS")
	printField("Sheet", cfg.SheetName, fileCfg.SheetName, "FX_SHEET_NAME")
	printField("Workbook", cfg.WorkbookName, fileCfg.WorkbookName, "FX_WORKBOOK_NAME")
	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, "FX_OUTPUT")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
