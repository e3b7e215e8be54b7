// Package fx tokenizes spreadsheet formulas and works with the references
// inside them.
//
// Tokenize splits a formula into typed tokens that concatenate back to the
// original text. The A1, R1C1 and structured table reference codecs parse
// and stringify individual references. AddTokenMeta annotates a token list
// with nesting depth, matching bracket pairs and groups of equivalent
// references. FixFormulaRanges rewrites every reference into its canonical
// form, and the Translate functions convert between A1 and R1C1 notation
// relative to an anchor cell.
//
// Every function returns new values and never modifies its input, so a
// token list may be shared between goroutines.
package fx
