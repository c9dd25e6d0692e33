package expr

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Lexer tokenizes a formula.
type Lexer struct {
	input  string
	pos    int
	tokens []Token
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Tokenize scans the entire input and returns all tokens.
func (l *Lexer) Tokenize() ([]Token, error) {
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		l.tokens = append(l.tokens, tok)
		if tok.Type == TokenEOF {
			break
		}
	}
	return l.tokens, nil
}

var punctuation = map[byte]TokenType{
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	',': TokenComma,
}

// next returns the next token from the input.
func (l *Lexer) next() (Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}, nil
	}

	ch := l.input[l.pos]

	if isDigit(ch) || (ch == '.' && l.pos+1 < len(l.input) && isDigit(l.input[l.pos+1])) {
		return l.readNumber()
	}

	if typ, ok := punctuation[ch]; ok {
		l.pos++
		return Token{Type: typ, Value: string(ch), Pos: l.pos - 1}, nil
	}

	if isIdentStart(ch) {
		start := l.pos
		for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
			l.pos++
		}
		return Token{Type: TokenIdent, Value: l.input[start:l.pos], Pos: start}, nil
	}

	return Token{}, fmt.Errorf("unexpected character %q at position %d", string(ch), l.pos)
}

// readNumber reads an integer, decimal or exponent literal. Underscores may
// separate digits, as in 8_100_000.
func (l *Lexer) readNumber() (Token, error) {
	start := l.pos
	seenDot, seenExp := false, false

	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		switch {
		case isDigit(ch):
			l.pos++
		case ch == '_':
			if l.pos == start || !isDigit(l.input[l.pos-1]) ||
				l.pos+1 >= len(l.input) || !isDigit(l.input[l.pos+1]) {
				return Token{}, fmt.Errorf("misplaced digit separator at position %d", l.pos)
			}
			l.pos++
		case ch == '.' && !seenDot && !seenExp:
			seenDot = true
			l.pos++
		case (ch == 'e' || ch == 'E') && !seenExp:
			seenExp = true
			l.pos++
			if l.pos < len(l.input) && (l.input[l.pos] == '+' || l.input[l.pos] == '-') {
				l.pos++
			}
			if l.pos >= len(l.input) || !isDigit(l.input[l.pos]) {
				return Token{}, fmt.Errorf("malformed exponent in number at position %d", start)
			}
		default:
			return l.number(start)
		}
	}
	return l.number(start)
}

func (l *Lexer) number(start int) (Token, error) {
	raw := l.input[start:l.pos]
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, "_", ""), 64)
	if err != nil {
		return Token{}, fmt.Errorf("invalid number %q at position %d", raw, start)
	}
	return Token{Type: TokenNumber, Value: raw, Number: f, Pos: start}, nil
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
