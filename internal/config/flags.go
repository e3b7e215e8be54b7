package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

type flagDef struct {
	usage     string
	boolField func(c *Config) *bool
	strField  func(c *Config) *string
}

var flagDefs = map[string]flagDef{
	"r1c1":             {usage: "Read references in R1C1 notation", boolField: func(c *Config) *bool { return &c.R1C1 }},
	"allow-ternary":    {usage: "Accept partial ranges such as A1:A", boolField: func(c *Config) *bool { return &c.AllowTernary }},
	"xlsx":             {usage: "Read [1]Sheet1! style workbook prefixes", boolField: func(c *Config) *bool { return &c.XLSX }},
	"negative-numbers": {usage: "Fold a unary minus into the following number", boolField: func(c *Config) *bool { return &c.NegativeNumbers }},
	"merge-refs":       {usage: "Merge prefixed references into single tokens", boolField: func(c *Config) *bool { return &c.MergeRefs }},
	"wrap-edges":       {usage: "Wrap references that fall off the sheet instead of writing #REF!", boolField: func(c *Config) *bool { return &c.WrapEdges }},
	"this-row":         {usage: "Write [#This Row] instead of @ in table references", boolField: func(c *Config) *bool { return &c.ThisRow }},
	"add-bounds":       {usage: "Fill open range sides with the sheet edges", boolField: func(c *Config) *bool { return &c.AddBounds }},
	"sheet":            {usage: "Sheet assumed for references without a prefix", strField: func(c *Config) *string { return &c.SheetName }},
	"workbook":         {usage: "Workbook assumed for references without a prefix", strField: func(c *Config) *string { return &c.WorkbookName }},
}

// RegisterFlags adds the named option flags to fs. Defaults shown in help
// are the built-in ones; only flags the user sets override the config.
func RegisterFlags(fs *pflag.FlagSet, names ...string) {
	def := Default()
	for _, name := range names {
		d, ok := flagDefs[name]
		if !ok {
			panic(fmt.Sprintf("config: unknown flag %q", name))
		}
		if d.boolField != nil {
			fs.Bool(name, *d.boolField(def), d.usage)
		} else {
			fs.String(name, *d.strField(def), d.usage)
		}
	}
}

// ApplyFlags copies every option flag the user set in fs onto c.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	for name, d := range flagDefs {
		f := fs.Lookup(name)
		if f == nil || !f.Changed {
			continue
		}
		var err error
		if d.boolField != nil {
			*d.boolField(c), err = fs.GetBool(name)
		} else {
			*d.strField(c), err = fs.GetString(name)
		}
		if err != nil {
			return fmt.Errorf("failed to read --%s: %w", name, err)
		}
	}
	return nil
}

// Resolve builds the effective configuration for a command: the file at
// path (or the default path), then FX_* variables, then flags set in fs.
func Resolve(path string, fs *pflag.FlagSet) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}
	cfg, err := LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if fs != nil {
		if err := cfg.ApplyFlags(fs); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'fx init' to reconfigure)", err)
	}
	return cfg, nil
}
