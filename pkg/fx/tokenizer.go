// tokenizer.go implements the formula lexer.

package fx

import (
	"strings"
	"unicode/utf8"
)

// TokenizeOptions controls how Tokenize reads a formula.
type TokenizeOptions struct {
	WithLocation    bool // attach Loc to every token
	MergeRefs       bool // merge context, "!" and range parts into single reference tokens
	NegativeNumbers bool // fold a unary minus into the number that follows it
	AllowTernary    bool // recognize partial ranges such as A1:A or A1:3
	R1C1            bool // ranges use R1C1 notation
	XLSX            bool // accept the [1]Sheet1! external workbook form
}

// DefaultTokenizeOptions returns the options most callers want: locations,
// merged references and negative number literals.
func DefaultTokenizeOptions() TokenizeOptions {
	return TokenizeOptions{
		WithLocation:    true,
		MergeRefs:       true,
		NegativeNumbers: true,
	}
}

// Tokenize splits a formula into tokens. It never fails: input no rule
// recognizes becomes UNKNOWN tokens.
func Tokenize(formula string, opts TokenizeOptions) []Token {
	var tokens []Token
	pos := 0

	emit := func(tt TokenType, start, end int) {
		tok := Token{Type: tt, Value: formula[start:end]}
		if opts.WithLocation {
			tok.Loc = &Loc{Start: start, End: end}
		}
		tokens = append(tokens, tok)
	}
	extend := func(end int) {
		last := &tokens[len(tokens)-1]
		last.Type = TokenUnknown
		last.Value += formula[pos:end]
		if last.Loc != nil {
			last.Loc.End = end
		}
	}

	if strings.HasPrefix(formula, "=") {
		emit(TokenFxPrefix, 0, 1)
		pos = 1
	}

	for pos < len(formula) {
		tt, n := TokenUnknown, 0
		for _, m := range matchers {
			if t, l := m(formula, pos, &opts); l > 0 {
				tt, n = t, l
				break
			}
		}
		if n == 0 {
			_, n = utf8.DecodeRuneInString(formula[pos:])
		}
		start, end := pos, pos+n

		if len(tokens) > 0 && contaminates(tokens[len(tokens)-1].Type, tt) {
			extend(end)
			pos = end
			continue
		}

		if tt == TokenNumber && opts.NegativeNumbers && foldsMinus(tokens) {
			last := &tokens[len(tokens)-1]
			last.Type = TokenNumber
			last.Value += formula[start:end]
			if last.Loc != nil {
				last.Loc.End = end
			}
			pos = end
			continue
		}

		emit(tt, start, end)
		if tt == TokenString {
			if _, closed := scanQuoted(formula, start, '"'); !closed {
				tokens[len(tokens)-1].Unterminated = true
			}
		}
		pos = end
	}

	reclassifyLetParams(tokens)
	if opts.MergeRefs {
		tokens = MergeRefTokens(tokens)
	}
	reclassifyTrim(tokens)
	return tokens
}

// contaminates reports whether a token of type next must be glued onto a
// preceding token of type prev as a single UNKNOWN run.
func contaminates(prev, next TokenType) bool {
	switch {
	case next == TokenUnknown:
		return prev == TokenUnknown || prev == TokenNamed || prev == TokenFunction
	case prev == TokenUnknown:
		return next == TokenNamed || next == TokenFunction
	}
	return false
}

// foldsMinus reports whether the last token is a "-" acting as a unary
// minus, so the number that follows can absorb it.
func foldsMinus(tokens []Token) bool {
	n := len(tokens)
	if n == 0 || tokens[n-1].Type != TokenOperator || tokens[n-1].Value != "-" {
		return false
	}
	for i := n - 2; i >= 0; i-- {
		prev := tokens[i]
		if IsWhitespace(prev) {
			continue
		}
		if prev.Type == TokenFxPrefix {
			return true
		}
		if prev.Type != TokenOperator {
			return false
		}
		switch prev.Value {
		case "%", "}", ")", "#":
			return false
		}
		return true
	}
	return true
}

// reclassifyLetParams turns lone r/c fragments inside LET or LAMBDA argument
// lists into names, where they are ordinary parameter identifiers.
func reclassifyLetParams(tokens []Token) {
	var stack []bool
	open := 0
	for i, t := range tokens {
		if t.Type != TokenOperator {
			if open > 0 && t.Type == TokenUnknown && len(t.Value) == 1 && strings.ContainsAny(t.Value, "rRcC") {
				tokens[i].Type = TokenNamed
			}
			continue
		}
		switch t.Value {
		case "(":
			isLet := i > 0 && tokens[i-1].Type == TokenFunction && isLetFunction(tokens[i-1].Value)
			stack = append(stack, isLet)
			if isLet {
				open++
			}
		case ")":
			if len(stack) == 0 {
				continue
			}
			if stack[len(stack)-1] {
				open--
			}
			stack = stack[:len(stack)-1]
		}
	}
}

func isLetFunction(name string) bool {
	return strings.EqualFold(name, "let") || strings.EqualFold(name, "lambda")
}

// reclassifyTrim settles provisional trim operators: one between two range
// tokens is an operator, anything else is unknown input.
func reclassifyTrim(tokens []Token) {
	for i, t := range tokens {
		if t.Type != tokenTrim {
			continue
		}
		if i > 0 && i < len(tokens)-1 && IsRange(tokens[i-1]) && IsRange(tokens[i+1]) {
			tokens[i].Type = TokenOperator
		} else {
			tokens[i].Type = TokenUnknown
		}
	}
}
