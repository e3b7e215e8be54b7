// Package config provides configuration management for fx.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/fx/pkg/fx"
)

// Config holds the fx configuration: the default options applied to every
// command before flags are read.
type Config struct {
	R1C1            bool   `yaml:"r1c1"`
	AllowTernary    bool   `yaml:"allow_ternary"`
	XLSX            bool   `yaml:"xlsx"`
	NegativeNumbers bool   `yaml:"negative_numbers"`
	MergeRefs       bool   `yaml:"merge_refs"`
	WrapEdges       bool   `yaml:"wrap_edges"`
	ThisRow         bool   `yaml:"this_row"`
	AddBounds       bool   `yaml:"add_bounds"`
	SheetName       string `yaml:"sheet_name,omitempty"`
	WorkbookName    string `yaml:"workbook_name,omitempty"`
	OutputFormat    string `yaml:"output_format,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		NegativeNumbers: true,
		MergeRefs:       true,
		WrapEdges:       true,
	}
}

// sheetNameBanned lists the characters a worksheet name may not contain.
const sheetNameBanned = `[]:*?/\`

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	switch c.OutputFormat {
	case "", "table", "json", "plain":
	default:
		return fmt.Errorf("output_format must be one of table, json, plain (got %q)", c.OutputFormat)
	}

	if c.SheetName != "" {
		if len(c.SheetName) > 31 {
			return errors.New("sheet_name must be at most 31 characters")
		}
		if strings.ContainsAny(c.SheetName, sheetNameBanned) {
			return fmt.Errorf("sheet_name must not contain any of %s", sheetNameBanned)
		}
		if strings.HasPrefix(c.SheetName, "'") || strings.HasSuffix(c.SheetName, "'") {
			return errors.New("sheet_name must not start or end with an apostrophe")
		}
	}
	if strings.ContainsAny(c.WorkbookName, "[]") {
		return errors.New("workbook_name must not contain brackets")
	}

	return nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	envBool("FX_R1C1", &c.R1C1)
	envBool("FX_ALLOW_TERNARY", &c.AllowTernary)
	envBool("FX_XLSX", &c.XLSX)
	envBool("FX_NEGATIVE_NUMBERS", &c.NegativeNumbers)
	envBool("FX_MERGE_REFS", &c.MergeRefs)
	envBool("FX_WRAP_EDGES", &c.WrapEdges)
	envBool("FX_THIS_ROW", &c.ThisRow)
	envBool("FX_ADD_BOUNDS", &c.AddBounds)
	if v := os.Getenv("FX_SHEET_NAME"); v != "" {
		c.SheetName = v
	}
	if v := os.Getenv("FX_WORKBOOK_NAME"); v != "" {
		c.WorkbookName = v
	}
	if v := os.Getenv("FX_OUTPUT"); v != "" {
		c.OutputFormat = v
	}
}

// envBool sets *dst from the named variable when it holds a boolean.
func envBool(name string, dst *bool) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("WARN: ignoring %s=%q: not a boolean", name, v)
		return
	}
	*dst = b
}

// EnvVars lists the environment variables LoadFromEnv reads.
func EnvVars() []string {
	return []string{
		"FX_R1C1", "FX_ALLOW_TERNARY", "FX_XLSX", "FX_NEGATIVE_NUMBERS", "FX_MERGE_REFS",
		"FX_WRAP_EDGES", "FX_THIS_ROW", "FX_ADD_BOUNDS", "FX_SHEET_NAME", "FX_WORKBOOK_NAME",
		"FX_OUTPUT",
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "fx", "config.yml")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".fx", "config.yml")
	}

	return filepath.Join(home, ".config", "fx", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path. Keys missing from
// the file keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		cfg = Default()
	}

	cfg.LoadFromEnv()
	return cfg, nil
}

// TokenizeOptions returns the tokenizer options the configuration selects.
func (c *Config) TokenizeOptions() fx.TokenizeOptions {
	return fx.TokenizeOptions{
		WithLocation:    true,
		MergeRefs:       c.MergeRefs,
		NegativeNumbers: c.NegativeNumbers,
		AllowTernary:    c.AllowTernary,
		R1C1:            c.R1C1,
		XLSX:            c.XLSX,
	}
}

// RefOptions returns the reference parser options.
func (c *Config) RefOptions() fx.RefOptions {
	return fx.RefOptions{AllowTernary: c.AllowTernary, XLSX: c.XLSX, ThisRow: c.ThisRow}
}

// MetaOptions returns the annotator options.
func (c *Config) MetaOptions() fx.MetaOptions {
	return fx.MetaOptions{
		SheetName:    c.SheetName,
		WorkbookName: c.WorkbookName,
		R1C1:         c.R1C1,
		AllowTernary: c.AllowTernary,
		XLSX:         c.XLSX,
	}
}

// FixOptions returns the range normalizer options.
func (c *Config) FixOptions() fx.FixOptions {
	return fx.FixOptions{AddBounds: c.AddBounds, XLSX: c.XLSX, ThisRow: c.ThisRow}
}

// TranslateOptions returns the translator options.
func (c *Config) TranslateOptions() fx.TranslateOptions {
	return fx.TranslateOptions{
		WrapEdges:    c.WrapEdges,
		MergeRefs:    c.MergeRefs,
		AllowTernary: c.AllowTernary,
		XLSX:         c.XLSX,
	}
}

// CheckOptions returns the checker options.
func (c *Config) CheckOptions() fx.CheckOptions {
	return fx.CheckOptions{
		R1C1:         c.R1C1,
		AllowTernary: c.AllowTernary,
		XLSX:         c.XLSX,
		SheetName:    c.SheetName,
		WorkbookName: c.WorkbookName,
	}
}
