package fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixFormulaRanges(t *testing.T) {
	tests := []struct {
		name    string
		formula string
		opts    FixOptions
		want    string
	}{
		{"orders corners", "=b2:a1", FixOptions{}, "=A1:B2"},
		{"keeps anchors", "=SUM($b$2:a1)", FixOptions{}, "=SUM(A1:$B$2)"},
		{"drops redundant quotes", "='Sheet1'!a1", FixOptions{}, "=Sheet1!A1"},
		{"keeps needed quotes", "='My Sheet'!a1", FixOptions{}, "='My Sheet'!A1"},
		{"beam", "=c:a", FixOptions{}, "=A:C"},
		{"full width keeps anchor", "=A1:$XFD1", FixOptions{}, "=A1:$XFD1"},
		{"full height keeps anchor", "=$A1:B1048576", FixOptions{}, "=$A1:B1048576"},
		{"full width keeps row anchor", "=A$1:XFD2", FixOptions{}, "=A$1:XFD2"},
		{"full height collapses when anchors agree", "=$A1:$B1048576", FixOptions{}, "=$A:$B"},
		{"add bounds", "=B2:A", FixOptions{AddBounds: true}, "=A2:B1048576"},
		{"ternary without bounds", "=B2:A", FixOptions{}, "=A2:B"},
		{"this row shorthand", "=Table1[[#This Row],[Foo]]", FixOptions{}, "=Table1[@Foo]"},
		{"this row long form", "=Table1[@Foo]", FixOptions{ThisRow: true}, "=Table1[[#This Row],[Foo]]"},
		{"section order", "=Table1[[#data],[#headers]]", FixOptions{}, "=Table1[[#Headers],[#Data]]"},
		{"leaves the rest alone", `=IF(a1>0,"b2:a1",rates)`, FixOptions{}, `=IF(A1>0,"b2:a1",rates)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FixFormulaRanges(tt.formula, tt.opts))
		})
	}
}

func TestFixFormulaRanges_Idempotent(t *testing.T) {
	formulas := []string{
		"=b2:a1",
		"=SUM('My Sheet'!$c$3:a1)*2",
		"=Table1[[#data],[#headers]]",
		"=Table1[[#This Row],[Foo]]",
		"=[Book.xlsx]Sheet1!b:a",
	}
	for _, f := range formulas {
		t.Run(f, func(t *testing.T) {
			once := FixFormulaRanges(f, FixOptions{})
			assert.Equal(t, once, FixFormulaRanges(once, FixOptions{}))
		})
	}
}

func TestFixRanges_Locations(t *testing.T) {
	opts := DefaultTokenizeOptions()
	opts.AllowTernary = true
	tokens := Tokenize("=$b$2:a1+Table1[[#This Row],[Foo]]+1", opts)
	require.Len(t, tokens, 6)

	fixed := FixRanges(tokens, FixOptions{})
	assert.Equal(t, "=A1:$B$2+Table1[@Foo]+1", Text(fixed))

	want := []Loc{{0, 1}, {1, 8}, {8, 9}, {9, 21}, {21, 22}, {22, 23}}
	for i, tok := range fixed {
		require.NotNil(t, tok.Loc)
		assert.Equal(t, want[i], *tok.Loc, "token %d (%s)", i, tok.Value)
	}
}

func TestFixRanges_DoesNotMutateInput(t *testing.T) {
	tokens := Tokenize("=b2:a1+Table1[[#This Row],[Foo]]", DefaultTokenizeOptions())
	before := make([]Token, len(tokens))
	for i, tok := range tokens {
		before[i] = tok.clone()
	}

	_ = FixRanges(tokens, FixOptions{AddBounds: true})
	assert.Equal(t, before, tokens)
}
