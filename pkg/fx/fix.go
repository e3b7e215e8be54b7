// fix.go rewrites the references in a token list into canonical form.

package fx

// FixOptions controls FixRanges and FixFormulaRanges.
type FixOptions struct {
	AddBounds bool // fill unbounded sides with the sheet edges
	XLSX      bool // read [1]Sheet1! prefixes when tokenizing a formula
	ThisRow   bool // keep [#This Row] in long form instead of writing @
}

// FixRanges returns a copy of tokens with every range and structured
// reference rewritten canonically: corners ordered, case normalized,
// redundant quoting dropped. Locations are shifted to match the new text.
func FixRanges(tokens []Token, opts FixOptions) []Token {
	out := make([]Token, len(tokens))
	refOpts := RefOptions{AllowTernary: true, XLSX: true, ThisRow: opts.ThisRow}
	skew := 0
	for i, t := range tokens {
		tok := t.clone()
		newValue := tok.Value
		switch {
		case tok.Type == TokenStructured:
			if ref, ok := ParseStructRef(tok.Value, refOpts); ok {
				newValue = StringifyStructRef(ref, refOpts)
			}
		case IsRange(tok):
			if ref, ok := ParseA1Ref(tok.Value, refOpts); ok && ref.Range != nil {
				if opts.AddBounds {
					bounded := AddA1RangeBounds(*ref.Range)
					ref.Range = &bounded
				}
				newValue = StringifyA1Ref(ref, refOpts)
			}
		}
		delta := len(newValue) - len(tok.Value)
		tok.Value = newValue
		tok.shift(skew, skew+delta)
		skew += delta
		out[i] = tok
	}
	return out
}

// FixFormulaRanges tokenizes formula, applies FixRanges and joins the result.
func FixFormulaRanges(formula string, opts FixOptions) string {
	tokens := Tokenize(formula, TokenizeOptions{
		MergeRefs:    true,
		AllowTernary: true,
		XLSX:         opts.XLSX,
	})
	return Text(FixRanges(tokens, opts))
}
