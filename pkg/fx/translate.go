// translate.go converts the references in a formula between A1 and R1C1
// notation relative to an anchor cell.

package fx

import (
	"errors"
	"fmt"
)

// ErrInvalidAnchor is returned when an anchor is not a single A1 cell.
var ErrInvalidAnchor = errors.New("invalid anchor cell")

// TranslateOptions controls the translators. The zero value does not wrap,
// so callers wanting the usual spreadsheet behavior should start from
// DefaultTranslateOptions.
type TranslateOptions struct {
	WrapEdges    bool // wrap offsets past a sheet edge instead of producing #REF!
	MergeRefs    bool // merge reference runs when tokenizing a formula
	AllowTernary bool
	XLSX         bool
}

// DefaultTranslateOptions returns wrapping, merging and ternary-aware options.
func DefaultTranslateOptions() TranslateOptions {
	return TranslateOptions{
		WrapEdges:    true,
		MergeRefs:    true,
		AllowTernary: true,
	}
}

// parseAnchor reads anchor as a single A1 cell and returns its row and column.
func parseAnchor(anchor string) (row, col int, err error) {
	r, ok := FromA1(anchor, false)
	if !ok || r.Top == nil || r.Left == nil || !sameInt(r.Top, r.Bottom) || !sameInt(r.Left, r.Right) {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidAnchor, anchor)
	}
	return *r.Top, *r.Left, nil
}

// TranslateToR1C1 rewrites every A1 range in formula as an R1C1 range
// relative to anchor.
func TranslateToR1C1(formula, anchor string, opts TranslateOptions) (string, error) {
	tokens := Tokenize(formula, TokenizeOptions{
		MergeRefs:    opts.MergeRefs,
		AllowTernary: opts.AllowTernary,
		XLSX:         opts.XLSX,
	})
	out, err := TranslateTokensToR1C1(tokens, anchor, opts)
	if err != nil {
		return "", err
	}
	return Text(out), nil
}

// TranslateTokensToR1C1 is TranslateToR1C1 over a token list. Tokens that
// are not ranges are copied with their locations shifted.
func TranslateTokensToR1C1(tokens []Token, anchor string, opts TranslateOptions) ([]Token, error) {
	top, left, err := parseAnchor(anchor)
	if err != nil {
		return nil, err
	}
	refOpts := RefOptions{AllowTernary: opts.AllowTernary, XLSX: opts.XLSX}
	out := make([]Token, len(tokens))
	skew := 0
	for i, t := range tokens {
		tok := t.clone()
		delta := 0
		if IsRange(tok) {
			if ref, ok := ParseA1Ref(tok.Value, refOpts); ok && ref.Range != nil {
				d := ref.Range
				ref.Range = nil
				ref.RangeR1C1 = &RangeR1C1{
					R0: toOffset(d.Top, d.AbsTop, top), AbsR0: d.AbsTop,
					C0: toOffset(d.Left, d.AbsLeft, left), AbsC0: d.AbsLeft,
					R1: toOffset(d.Bottom, d.AbsBottom, top), AbsR1: d.AbsBottom,
					C1: toOffset(d.Right, d.AbsRight, left), AbsC1: d.AbsRight,
					Trim: d.Trim,
				}
				value := StringifyR1C1Ref(ref, refOpts)
				delta = len(value) - len(tok.Value)
				tok.Value = value
			}
		}
		tok.shift(skew, skew+delta)
		skew += delta
		out[i] = tok
	}
	return out, nil
}

// toOffset converts an A1 coordinate into an R1C1 one: absolute values
// are kept, relative ones become offsets from base.
func toOffset(v *int, abs bool, base int) *int {
	if v == nil {
		return nil
	}
	if abs {
		return intPtr(*v)
	}
	return intPtr(*v - base)
}

// TranslateToA1 rewrites every R1C1 range in formula as an A1 range
// relative to anchor. Ranges that fall off the sheet become #REF! unless
// opts.WrapEdges is set.
func TranslateToA1(formula, anchor string, opts TranslateOptions) (string, error) {
	tokens := Tokenize(formula, TokenizeOptions{
		MergeRefs:    opts.MergeRefs,
		AllowTernary: opts.AllowTernary,
		XLSX:         opts.XLSX,
		R1C1:         true,
	})
	out, err := TranslateTokensToA1(tokens, anchor, opts)
	if err != nil {
		return "", err
	}
	return Text(out), nil
}

// TranslateTokensToA1 is TranslateToA1 over a token list.
func TranslateTokensToA1(tokens []Token, anchor string, opts TranslateOptions) ([]Token, error) {
	out, _, err := translateToA1(tokens, anchor, opts)
	return out, err
}

// TranslateEnhancedToA1 is TranslateTokensToA1 over annotated tokens. A
// reference replaced by #REF! loses its GroupID.
func TranslateEnhancedToA1(tokens []TokenEnhanced, anchor string, opts TranslateOptions) ([]TokenEnhanced, error) {
	plain, invalid, err := translateToA1(Plain(tokens), anchor, opts)
	if err != nil {
		return nil, err
	}
	out := make([]TokenEnhanced, len(tokens))
	for i, t := range tokens {
		out[i] = t
		out[i].Token = plain[i]
		if invalid[i] {
			out[i].GroupID = ""
		}
	}
	return out, nil
}

// translateToA1 does the work for the A1 translators and reports which
// tokens were replaced by #REF!.
func translateToA1(tokens []Token, anchor string, opts TranslateOptions) ([]Token, []bool, error) {
	top, left, err := parseAnchor(anchor)
	if err != nil {
		return nil, nil, err
	}
	refOpts := RefOptions{AllowTernary: opts.AllowTernary, XLSX: opts.XLSX}
	out := make([]Token, len(tokens))
	invalid := make([]bool, len(tokens))
	skew := 0
	for i, t := range tokens {
		tok := t.clone()
		delta := 0
		if IsRange(tok) {
			if ref, ok := ParseR1C1Ref(tok.Value, refOpts); ok && ref.RangeR1C1 != nil {
				var value string
				if rng, ok := resolveR1C1(*ref.RangeR1C1, top, left, opts.WrapEdges); ok {
					ref.RangeR1C1 = nil
					ref.Range = &rng
					value = StringifyA1Ref(ref, refOpts)
				} else {
					tok.Type = TokenError
					value = "#REF!"
					invalid[i] = true
				}
				delta = len(value) - len(tok.Value)
				tok.Value = value
			}
		}
		tok.shift(skew, skew+delta)
		skew += delta
		out[i] = tok
	}
	return out, invalid, nil
}

// resolveR1C1 places an R1C1 range at the anchor. It reports false when
// a coordinate falls off the sheet and wrapping is disabled.
func resolveR1C1(d RangeR1C1, top, left int, wrap bool) (RangeA1, bool) {
	var r RangeA1
	var ok [4]bool
	r.Top, ok[0] = toFixed(d.R0, d.AbsR0, top, MaxRows, wrap)
	r.Bottom, ok[1] = toFixed(d.R1, d.AbsR1, top, MaxRows, wrap)
	r.Left, ok[2] = toFixed(d.C0, d.AbsC0, left, MaxCols, wrap)
	r.Right, ok[3] = toFixed(d.C1, d.AbsC1, left, MaxCols, wrap)
	for _, v := range ok {
		if !v {
			return RangeA1{}, false
		}
	}
	r.AbsTop, r.AbsBottom = d.AbsR0, d.AbsR1
	r.AbsLeft, r.AbsRight = d.AbsC0, d.AbsC1
	r.Trim = d.Trim
	r.order()
	return r, true
}

// toFixed resolves one coordinate against base, wrapping around the sheet
// edge when wrap is set.
func toFixed(v *int, abs bool, base, max int, wrap bool) (*int, bool) {
	if v == nil {
		return nil, true
	}
	if abs {
		return intPtr(*v), true
	}
	n := base + *v
	if n < 0 {
		if !wrap {
			return nil, false
		}
		n += max + 1
	}
	if n > max {
		if !wrap {
			return nil, false
		}
		n -= max + 1
	}
	return intPtr(n), true
}
