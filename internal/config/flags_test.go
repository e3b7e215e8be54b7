package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, "r1c1", "merge-refs", "sheet")

	require.NotNil(t, fs.Lookup("r1c1"))
	assert.Equal(t, "false", fs.Lookup("r1c1").DefValue)
	assert.Equal(t, "true", fs.Lookup("merge-refs").DefValue)
	assert.Equal(t, "", fs.Lookup("sheet").DefValue)
	assert.Nil(t, fs.Lookup("xlsx"))
}

func TestRegisterFlags_UnknownPanics(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	assert.Panics(t, func() { RegisterFlags(fs, "no-such-flag") })
}

func TestConfig_ApplyFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, "r1c1", "merge-refs", "wrap-edges", "sheet")
	require.NoError(t, fs.Parse([]string{"--r1c1", "--merge-refs=false", "--sheet", "Data"}))

	cfg := &Config{MergeRefs: true, WrapEdges: true, SheetName: "File"}
	require.NoError(t, cfg.ApplyFlags(fs))

	assert.True(t, cfg.R1C1)
	assert.False(t, cfg.MergeRefs)
	assert.True(t, cfg.WrapEdges, "unset flags keep the config value")
	assert.Equal(t, "Data", cfg.SheetName)
}

func TestResolve(t *testing.T) {
	for _, v := range EnvVars() {
		t.Setenv(v, "")
	}
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, (&Config{AllowTernary: true, SheetName: "File"}).Save(configPath))
	t.Setenv("FX_SHEET_NAME", "Env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, "xlsx")
	require.NoError(t, fs.Parse([]string{"--xlsx"}))

	cfg, err := Resolve(configPath, fs)
	require.NoError(t, err)
	assert.True(t, cfg.AllowTernary)
	assert.True(t, cfg.XLSX)
	assert.Equal(t, "Env", cfg.SheetName)
}

func TestResolve_Invalid(t *testing.T) {
	for _, v := range EnvVars() {
		t.Setenv(v, "")
	}
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("output_format: xml\n"), 0644))

	_, err := Resolve(configPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
