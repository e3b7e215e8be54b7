package fx

// IsRange reports whether t is a range-typed reference (cell, beam or partial).
func IsRange(t Token) bool {
	return t.Type == TokenRange || t.Type == TokenBeam || t.Type == TokenTernary
}

// IsReference reports whether t refers to cells: a range, a name or a structured reference.
func IsReference(t Token) bool {
	return IsRange(t) || t.Type == TokenNamed || t.Type == TokenStructured
}

// IsLiteral reports whether t is a boolean, error, number or string literal.
func IsLiteral(t Token) bool {
	switch t.Type {
	case TokenBoolean, TokenError, TokenNumber, TokenString:
		return true
	}
	return false
}

// IsError reports whether t is an error literal.
func IsError(t Token) bool {
	return t.Type == TokenError
}

// IsWhitespace reports whether t is whitespace or a newline.
func IsWhitespace(t Token) bool {
	return t.Type == TokenWhitespace || t.Type == TokenNewline
}

// IsFunction reports whether t is a function name.
func IsFunction(t Token) bool {
	return t.Type == TokenFunction
}

// IsFxPrefix reports whether t is the leading "=".
func IsFxPrefix(t Token) bool {
	return t.Type == TokenFxPrefix
}

// IsOperator reports whether t is an operator.
func IsOperator(t Token) bool {
	return t.Type == TokenOperator
}
