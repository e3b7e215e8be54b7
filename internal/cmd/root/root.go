// Package root provides the root command for the fx CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/fx/internal/cmd/check"
	"github.com/open-cli-collective/fx/internal/cmd/completion"
	"github.com/open-cli-collective/fx/internal/cmd/configcmd"
	"github.com/open-cli-collective/fx/internal/cmd/fix"
	initcmd "github.com/open-cli-collective/fx/internal/cmd/init"
	"github.com/open-cli-collective/fx/internal/cmd/ref"
	"github.com/open-cli-collective/fx/internal/cmd/tokens"
	"github.com/open-cli-collective/fx/internal/cmd/translate"
	"github.com/open-cli-collective/fx/internal/config"
	"github.com/open-cli-collective/fx/internal/version"
)

// NewCmdRoot creates the root command for fx.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fx",
		Short: "A command-line toolkit for spreadsheet formulas",
		Long: `fx tokenizes, inspects and rewrites spreadsheet formulas.

It splits formulas into tokens, parses A1, R1C1 and structured table
references, normalizes ranges, converts between A1 and R1C1 notation and
checks the formulas embedded in markdown documents.

Get started by running: fx tokens '=SUM(A1:B2)'`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           version.Version,
		PersistentPreRunE: applyOutputDefault,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/fx/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate("fx version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(tokens.NewCmdTokens())
	cmd.AddCommand(ref.NewCmdRef())
	cmd.AddCommand(fix.NewCmdFix())
	cmd.AddCommand(translate.NewCmdTranslate())
	cmd.AddCommand(check.NewCmdCheck())
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

// applyOutputDefault fills --output from the configured output_format
// when the flag was not given.
func applyOutputDefault(cmd *cobra.Command, _ []string) error {
	flag := cmd.Flags().Lookup("output")
	if flag == nil || flag.Changed {
		return nil
	}
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil || cfg.OutputFormat == "" {
		// Commands that read config report load errors themselves
		return nil
	}
	return flag.Value.Set(cfg.OutputFormat)
}
