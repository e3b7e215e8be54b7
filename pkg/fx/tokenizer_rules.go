// tokenizer_rules.go holds the ordered per-type matchers used by Tokenize.

package fx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenTrim is the provisional type of a .: :. or .:. lexeme until the
// tokenizer knows whether it sits between two ranges.
const tokenTrim TokenType = -1

// matcher tries to match a token of one type at pos. It returns the
// token type and length, or a zero length when nothing matches.
type matcher func(s string, pos int, opts *TokenizeOptions) (TokenType, int)

// matchers is tried in order; the first match wins, so the order encodes
// precedence (error literals before operators, ranges before numbers,
// everything before names).
var matchers = []matcher{
	matchError,
	matchTrim,
	matchOperator,
	matchBoolean,
	matchFunction,
	matchNewline,
	matchWhitespace,
	matchString,
	matchContextQuote,
	matchContext,
	matchRange,
	matchStructured,
	matchNumber,
	matchNamed,
}

var errorLiterals = []string{
	"#NAME?", "#FIELD!", "#CALC!", "#VALUE!", "#REF!", "#DIV/0!", "#NULL!", "#NUM!",
	"#N/A", "#GETTING_DATA", "#SPILL!", "#UNKNOWN!", "#SYNTAX?", "#ERROR!",
	"#CONNECT!", "#BLOCKED!", "#EXTERNAL!",
}

func matchError(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	if s[pos] != '#' {
		return TokenUnknown, 0
	}
	for _, lit := range errorLiterals {
		if hasPrefixFold(s[pos:], lit) {
			return TokenError, len(lit)
		}
	}
	return TokenUnknown, 0
}

func matchTrim(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	switch {
	case strings.HasPrefix(s[pos:], ".:."):
		return tokenTrim, 3
	case strings.HasPrefix(s[pos:], ".:"), strings.HasPrefix(s[pos:], ":."):
		return tokenTrim, 2
	}
	return TokenUnknown, 0
}

func matchOperator(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	if pos+1 < len(s) {
		switch s[pos : pos+2] {
		case "<=", ">=", "<>":
			return TokenOperator, 2
		}
	}
	if strings.IndexByte("-+/*^%&<>={},;()@:!#", s[pos]) >= 0 {
		return TokenOperator, 1
	}
	return TokenUnknown, 0
}

func matchBoolean(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	for _, lit := range []string{"true", "false"} {
		if hasPrefixFold(s[pos:], lit) {
			end := pos + len(lit)
			if end < len(s) && (isNameChar(s[end]) || s[end] == '(' || s[end] == '[' || s[end] == '!') {
				return TokenUnknown, 0
			}
			return TokenBoolean, len(lit)
		}
	}
	return TokenUnknown, 0
}

func matchFunction(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	if !isNameStart(s[pos]) {
		return TokenUnknown, 0
	}
	p := pos + 1
	for p < len(s) && isNameChar(s[p]) && s[p] != '?' {
		p++
	}
	if p < len(s) && s[p] == '(' {
		return TokenFunction, p - pos
	}
	return TokenUnknown, 0
}

func matchNewline(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	p := pos
	for p < len(s) && s[p] == '\n' {
		p++
	}
	return TokenNewline, p - pos
}

func matchWhitespace(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	p := pos
	for p < len(s) {
		r, size := utf8.DecodeRuneInString(s[p:])
		if r == '\n' || !(unicode.IsSpace(r) || r == '\ufeff') {
			break
		}
		p += size
	}
	return TokenWhitespace, p - pos
}

// matchString matches a double-quoted string; "" escapes a quote. A string
// running to the end of input is still a match (see Token.Unterminated).
func matchString(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	if s[pos] != '"' {
		return TokenUnknown, 0
	}
	end, _ := scanQuoted(s, pos, '"')
	return TokenString, end - pos
}

// scanQuoted returns the position just past the closing quote of a quoted
// run starting at pos. A run that is never closed ends at len(s).
func scanQuoted(s string, pos int, q byte) (end int, closed bool) {
	p := pos + 1
	for p < len(s) {
		if s[p] == q {
			if p+1 < len(s) && s[p+1] == q {
				p += 2
				continue
			}
			return p + 1, true
		}
		p++
	}
	return len(s), false
}

func matchContextQuote(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	if s[pos] != '\'' {
		return TokenUnknown, 0
	}
	end, closed := scanQuoted(s, pos, '\'')
	if !closed || end-pos < 3 || end >= len(s) || s[end] != '!' {
		return TokenUnknown, 0
	}
	return TokenContextQuote, end - pos
}

// matchContext matches Sheet1, [Book]Sheet1 or [1]Sheet1 directly before a "!".
// The bare workbook form [1] is accepted in xlsx mode only.
func matchContext(s string, pos int, opts *TokenizeOptions) (TokenType, int) {
	p := pos
	book := false
	if s[p] == '[' {
		end := strings.IndexByte(s[p+1:], ']')
		if end <= 0 {
			return TokenUnknown, 0
		}
		p += end + 2
		book = true
	}
	start := p
	for p < len(s) && isNameChar(s[p]) {
		p++
	}
	if p >= len(s) || s[p] != '!' {
		return TokenUnknown, 0
	}
	if p == start && !(book && opts.XLSX) {
		return TokenUnknown, 0
	}
	return TokenContext, p - pos
}

func matchRange(s string, pos int, opts *TokenizeOptions) (TokenType, int) {
	if opts.R1C1 {
		_, n, tt := scanR1C1Range(s, pos, opts.AllowTernary)
		return tt, n
	}
	_, n, tt := scanA1Range(s, pos, opts.AllowTernary)
	return tt, n
}

func matchStructured(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	p := pos
	if isNameStart(s[p]) {
		p++
		for p < len(s) && isNameChar(s[p]) {
			p++
		}
	}
	if p >= len(s) || s[p] != '[' {
		return TokenUnknown, 0
	}
	if _, n, ok := scanSRange(s, p); ok {
		return TokenStructured, p + n - pos
	}
	return TokenUnknown, 0
}

func matchNumber(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	p := pos
	for p < len(s) && isDigit(s[p]) {
		p++
	}
	intDigits := p - pos
	if p < len(s) && s[p] == '.' {
		q := p + 1
		for q < len(s) && isDigit(s[q]) {
			q++
		}
		if intDigits > 0 || q > p+1 {
			p = q
		}
	}
	if p == pos {
		return TokenUnknown, 0
	}
	if p < len(s) && (s[p] == 'e' || s[p] == 'E') {
		q := p + 1
		if q < len(s) && (s[q] == '+' || s[q] == '-') {
			q++
		}
		digits := q
		for q < len(s) && isDigit(s[q]) {
			q++
		}
		if q > digits {
			p = q
		}
	}
	return TokenNumber, p - pos
}

// matchNamed matches a defined name. R and C on their own are reserved
// for R1C1 notation and never names.
func matchNamed(s string, pos int, _ *TokenizeOptions) (TokenType, int) {
	if !isNameStart(s[pos]) {
		return TokenUnknown, 0
	}
	p := pos + 1
	for p < len(s) && isNameChar(s[p]) {
		p++
	}
	if p-pos == 1 && strings.ContainsRune("rRcC", rune(s[pos])) {
		return TokenUnknown, 0
	}
	return TokenNamed, p - pos
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
