// tokens.go defines the token and AST node type identifiers shared by every stage.

package fx

import (
	"encoding/json"
	"fmt"
)

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	TokenUnknown      TokenType = iota // any input no rule recognized
	TokenOperator                      // + - * / ^ & = < > <= >= <> % : , ; ( ) { } @ ! #
	TokenBoolean                       // TRUE / FALSE
	TokenError                         // #REF!, #N/A, ...
	TokenNumber                        // 1, 1.5, 1e3
	TokenFunction                      // function name immediately followed by "("
	TokenNewline                       // run of \n
	TokenWhitespace                    // run of blanks
	TokenString                        // "text", possibly unterminated
	TokenContext                       // Sheet1, [1]Sheet1 (before "!")
	TokenContextQuote                  // 'My Sheet' (before "!")
	TokenRange                         // A1, A1:B2, R1C1
	TokenBeam                          // A:A, 1:1, R1, C1:C3
	TokenTernary                       // A1:A, A1:1 (partial ranges)
	TokenNamed                         // defined names
	TokenStructured                    // Table1[Column]
	TokenFxPrefix                      // leading "="
)

var tokenTypeNames = map[TokenType]string{
	TokenUnknown:      "unknown",
	TokenOperator:     "operator",
	TokenBoolean:      "bool",
	TokenError:        "error",
	TokenNumber:       "number",
	TokenFunction:     "func",
	TokenNewline:      "newline",
	TokenWhitespace:   "whitespace",
	TokenString:       "string",
	TokenContext:      "context",
	TokenContextQuote: "context_quote",
	TokenRange:        "range",
	TokenBeam:         "range_beam",
	TokenTernary:      "range_ternary",
	TokenNamed:        "range_named",
	TokenStructured:   "structured",
	TokenFxPrefix:     "fx_prefix",
}

// String returns the interop name of the token type.
func (t TokenType) String() string {
	if s, ok := tokenTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// MarshalJSON encodes the type by its interop name.
func (t TokenType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a type from its interop name.
func (t *TokenType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	tt, ok := ParseTokenType(s)
	if !ok {
		return fmt.Errorf("unknown token type %q", s)
	}
	*t = tt
	return nil
}

// ParseTokenType looks up a TokenType by its interop name.
func ParseTokenType(s string) (TokenType, bool) {
	for tt, name := range tokenTypeNames {
		if name == s {
			return tt, true
		}
	}
	return TokenUnknown, false
}

// NodeType identifies AST nodes produced by expression builders that consume tokens.
type NodeType string

const (
	NodeUnary      NodeType = "UnaryExpression"
	NodeBinary     NodeType = "BinaryExpression"
	NodeReference  NodeType = "ReferenceIdentifier"
	NodeLiteral    NodeType = "Literal"
	NodeError      NodeType = "ErrorLiteral"
	NodeCall       NodeType = "CallExpression"
	NodeArray      NodeType = "ArrayExpression"
	NodeIdentifier NodeType = "Identifier"
	NodeLambda     NodeType = "LambdaExpression"
	NodeLet        NodeType = "LetExpression"
	NodeLetDecl    NodeType = "LetDeclarator"
)

// Loc is a half-open [Start, End) byte span into the source formula.
type Loc struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Token is a single lexeme of a formula.
type Token struct {
	Type         TokenType `json:"type"`
	Value        string    `json:"value"`
	Loc          *Loc      `json:"loc,omitempty"`          // set when tokenized WithLocation
	Unterminated bool      `json:"unterminated,omitempty"` // string literal missing its closing quote
}

// clone returns a copy that shares no memory with t.
func (t Token) clone() Token {
	if t.Loc != nil {
		loc := *t.Loc
		t.Loc = &loc
	}
	return t
}

// shift moves the token's location by delta, if it has one.
func (t *Token) shift(start, end int) {
	if t.Loc != nil {
		t.Loc.Start += start
		t.Loc.End += end
	}
}

// TokenEnhanced is a Token annotated by AddTokenMeta.
type TokenEnhanced struct {
	Token
	Index   int    `json:"index"`
	Depth   int    `json:"depth"`
	GroupID string `json:"groupId,omitempty"`
	Error   bool   `json:"error,omitempty"`
}

// Text joins the values of tokens back into formula text.
func Text(tokens []Token) string {
	n := 0
	for _, t := range tokens {
		n += len(t.Value)
	}
	buf := make([]byte, 0, n)
	for _, t := range tokens {
		buf = append(buf, t.Value...)
	}
	return string(buf)
}

// Plain strips annotations from enhanced tokens.
func Plain(tokens []TokenEnhanced) []Token {
	out := make([]Token, len(tokens))
	for i, t := range tokens {
		out[i] = t.Token.clone()
	}
	return out
}
