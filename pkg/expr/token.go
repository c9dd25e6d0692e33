// Package expr implements the estimate formula language: arithmetic over
// numbers and distributions, function calls, and list literals.
package expr

// TokenType represents the type of a lexical token.
type TokenType int

const (
	TokenNumber TokenType = iota // numeric literal
	TokenIdent                   // identifier (estimate or function name)
	TokenComma                   // ,

	TokenLParen   // (
	TokenRParen   // )
	TokenLBracket // [
	TokenRBracket // ]

	TokenPlus  // +
	TokenMinus // -
	TokenStar  // *
	TokenSlash // /

	TokenEOF // end of formula
)

// Token represents a single lexical token.
type Token struct {
	Type   TokenType
	Value  string  // raw source text
	Number float64 // parsed value for TokenNumber
	Pos    int     // byte offset in source
}

// String returns a debug-friendly representation of the token type.
func (t TokenType) String() string {
	switch t {
	case TokenNumber:
		return "NUMBER"
	case TokenIdent:
		return "IDENT"
	case TokenComma:
		return "COMMA"
	case TokenLParen:
		return "LPAREN"
	case TokenRParen:
		return "RPAREN"
	case TokenLBracket:
		return "LBRACKET"
	case TokenRBracket:
		return "RBRACKET"
	case TokenPlus:
		return "PLUS"
	case TokenMinus:
		return "MINUS"
	case TokenStar:
		return "STAR"
	case TokenSlash:
		return "SLASH"
	case TokenEOF:
		return "EOF"
	default:
		return "UNKNOWN"
	}
}
