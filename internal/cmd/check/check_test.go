package check

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCheck_OK(t *testing.T) {
	var buf bytes.Buffer
	opts := &checkOptions{noColor: true, writer: &buf}

	err := runCheck([]string{"=SUM(A1:B2)", "=Table1[@Price]*2"}, opts)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2 formula(s) OK")
}

func TestRunCheck_Problems(t *testing.T) {
	var buf bytes.Buffer
	opts := &checkOptions{noColor: true, writer: &buf}

	err := runCheck([]string{"=SUM(A1:B2", `="open`}, opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrProblemsFound))

	output := buf.String()
	assert.Contains(t, output, "PROBLEM")
	assert.Contains(t, output, `unclosed "("`)
	assert.Contains(t, output, "unterminated string")
	assert.Contains(t, output, "2 problem(s) in 2 formula(s)")
}

func TestRunCheck_Markdown(t *testing.T) {
	doc := "# Notes\n\nGood: `=A1+1`\n\n| a | b |\n|---|---|\n| x | =SUM(A1 |\n"
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	var buf bytes.Buffer
	opts := &checkOptions{markdown: path, noColor: true, writer: &buf}

	err := runCheck(nil, opts)
	require.Error(t, err)

	output := buf.String()
	assert.Contains(t, output, "LINE")
	assert.Contains(t, output, "7")
	assert.Contains(t, output, "1 problem(s) in 2 formula(s)")
}

func TestRunCheck_MarkdownStdinJSON(t *testing.T) {
	var buf bytes.Buffer
	opts := &checkOptions{
		markdown: "-",
		output:   "json",
		noColor:  true,
		stdin:    strings.NewReader("```fx\n=1+1\n=A1\n```\n"),
		writer:   &buf,
	}

	require.NoError(t, runCheck(nil, opts))

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &items))
	require.Len(t, items, 2)
	assert.EqualValues(t, 2, items[0]["line"])
	assert.Equal(t, "block", items[0]["kind"])
}

func TestRunCheck_NoFormulas(t *testing.T) {
	var buf bytes.Buffer
	opts := &checkOptions{markdown: "-", noColor: true, stdin: strings.NewReader("plain prose"), writer: &buf}

	require.NoError(t, runCheck(nil, opts))
	assert.Contains(t, buf.String(), "No formulas found")

	err := runCheck(nil, &checkOptions{noColor: true, writer: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one formula")
}
