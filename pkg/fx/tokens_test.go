package fx

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenType_String(t *testing.T) {
	tests := []struct {
		typ  TokenType
		want string
	}{
		{TokenOperator, "operator"},
		{TokenBoolean, "bool"},
		{TokenFunction, "func"},
		{TokenContextQuote, "context_quote"},
		{TokenBeam, "range_beam"},
		{TokenTernary, "range_ternary"},
		{TokenNamed, "range_named"},
		{TokenFxPrefix, "fx_prefix"},
		{TokenUnknown, "unknown"},
		{TokenType(99), "TokenType(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestToken_JSON(t *testing.T) {
	tok := Token{Type: TokenBeam, Value: "A:A", Loc: &Loc{Start: 1, End: 4}}
	data, err := json.Marshal(tok)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"range_beam","value":"A:A","loc":{"start":1,"end":4}}`, string(data))

	var back Token
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tok, back)
}

func TestTokenType_UnmarshalUnknownName(t *testing.T) {
	var typ TokenType
	err := json.Unmarshal([]byte(`"bogus"`), &typ)
	assert.Error(t, err)
}

func TestText(t *testing.T) {
	tokens := Tokenize("=SUM(A1:B2, 3)", DefaultTokenizeOptions())
	assert.Equal(t, "=SUM(A1:B2, 3)", Text(tokens))
}

func TestPlain_Copies(t *testing.T) {
	enhanced := AddTokenMeta(Tokenize("=A1", DefaultTokenizeOptions()), MetaOptions{})
	plain := Plain(enhanced)
	require.Len(t, plain, 2)
	plain[1].Loc.Start = 42
	assert.Equal(t, 1, enhanced[1].Loc.Start)
}

func TestPredicates(t *testing.T) {
	assert.True(t, IsRange(Token{Type: TokenRange}))
	assert.True(t, IsRange(Token{Type: TokenBeam}))
	assert.True(t, IsRange(Token{Type: TokenTernary}))
	assert.False(t, IsRange(Token{Type: TokenNamed}))

	assert.True(t, IsReference(Token{Type: TokenNamed}))
	assert.True(t, IsReference(Token{Type: TokenStructured}))
	assert.False(t, IsReference(Token{Type: TokenContext}))

	assert.True(t, IsLiteral(Token{Type: TokenNumber}))
	assert.True(t, IsLiteral(Token{Type: TokenString}))
	assert.False(t, IsLiteral(Token{Type: TokenRange}))

	assert.True(t, IsError(Token{Type: TokenError}))
	assert.True(t, IsWhitespace(Token{Type: TokenNewline}))
	assert.True(t, IsFunction(Token{Type: TokenFunction}))
	assert.True(t, IsFxPrefix(Token{Type: TokenFxPrefix}))
	assert.True(t, IsOperator(Token{Type: TokenOperator}))
}
