package tokens

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/fx/internal/config"
)

func TestRunTokens_Table(t *testing.T) {
	var buf bytes.Buffer
	opts := &tokensOptions{noColor: true, writer: &buf}

	err := runTokens("=SUM(A1:B2)", opts)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "TYPE")
	assert.Contains(t, output, "func")
	assert.Contains(t, output, `"A1:B2"`)
	assert.NotContains(t, output, "DEPTH")
}

func TestRunTokens_Meta(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.SheetName = "Sheet1"
	opts := &tokensOptions{meta: true, output: "json", noColor: true, writer: &buf, cfg: cfg}

	err := runTokens("=A1+Sheet1!A1", opts)
	require.NoError(t, err)

	var result []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	require.Len(t, result, 4)
	assert.Equal(t, result[1]["groupId"], result[3]["groupId"])
}

func TestRunTokens_R1C1(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.Default()
	cfg.R1C1 = true
	opts := &tokensOptions{output: "plain", noColor: true, writer: &buf, cfg: cfg}

	err := runTokens("=R[-1]C", opts)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "range\tR[-1]C"))
}

func TestRunTokens_Highlight(t *testing.T) {
	var buf bytes.Buffer
	opts := &tokensOptions{highlight: true, noColor: true, writer: &buf}

	err := runTokens("=1+A1", opts)
	require.NoError(t, err)
	assert.Equal(t, "=1+A1\n", buf.String())
}

func TestRunTokens_InvalidOutput(t *testing.T) {
	opts := &tokensOptions{output: "xml", noColor: true, writer: &bytes.Buffer{}}

	err := runTokens("=1", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestNewCmdTokens_Flags(t *testing.T) {
	cmd := NewCmdTokens()
	for _, name := range []string{"meta", "highlight", "r1c1", "sheet", "merge-refs"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
