package expr

import (
	"fmt"
	"strings"
)

// MaxExpressionLength is the maximum allowed length for a single formula.
const MaxExpressionLength = 1000

// Parser is a recursive descent parser for formulas.
type Parser struct {
	tokens []Token
	pos    int
}

// ParseExpression parses a complete formula string.
func ParseExpression(input string) (Node, error) {
	if len(input) > MaxExpressionLength {
		return nil, fmt.Errorf("expression exceeds maximum length of %d characters", MaxExpressionLength)
	}
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("empty expression")
	}

	lexer := NewLexer(input)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, fmt.Errorf("lexer error: %w", err)
	}

	p := &Parser{tokens: tokens}
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if p.current().Type != TokenEOF {
		return nil, fmt.Errorf("unexpected token %s at position %d", p.current().Type, p.current().Pos)
	}

	return node, nil
}

// ParseValue parses a decoded YAML scalar: numbers become literals and
// strings are parsed as formulas.
func ParseValue(v interface{}) (Node, error) {
	switch val := v.(type) {
	case int:
		return &LiteralNode{Value: float64(val)}, nil
	case int64:
		return &LiteralNode{Value: float64(val)}, nil
	case float64:
		return &LiteralNode{Value: val}, nil
	case string:
		return ParseExpression(val)
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// current returns the current token.
func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

// advance consumes the current token and returns it.
func (p *Parser) advance() Token {
	tok := p.current()
	p.pos++
	return tok
}

// expect consumes a token of the expected type or returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, fmt.Errorf("expected %s, got %s at position %d", tt, tok.Type, tok.Pos)
	}
	p.advance()
	return tok, nil
}

// parseExpression is the entry point.
// Precedence (low to high):
//
//	+, -
//	*, /
//	unary -
//	function call, parentheses, literals
func (p *Parser) parseExpression() (Node, error) {
	return p.parseAddition()
}

func (p *Parser) parseAddition() (Node, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenPlus || p.current().Type == TokenMinus {
		op := p.advance().Type
		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplication() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.current().Type == TokenStar || p.current().Type == TokenSlash {
		op := p.advance().Type
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if p.current().Type == TokenMinus {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Op: TokenMinus, Operand: operand}, nil
	}
	if p.current().Type == TokenPlus {
		p.advance()
		return p.parseUnary()
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.current()

	switch tok.Type {
	case TokenNumber:
		p.advance()
		return &LiteralNode{Value: tok.Number}, nil
	case TokenIdent:
		p.advance()
		if p.current().Type == TokenLParen {
			args, err := p.parseArgList()
			if err != nil {
				return nil, err
			}
			return &CallNode{Name: tok.Value, Args: args}, nil
		}
		return &IdentNode{Name: tok.Value}, nil
	case TokenLParen:
		p.advance()
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		_, err = p.expect(TokenRParen)
		if err != nil {
			return nil, fmt.Errorf("expected ')': %w", err)
		}
		return expr, nil
	case TokenLBracket:
		return p.parseListLiteral()
	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of expression at position %d", tok.Pos)
	default:
		return nil, fmt.Errorf("unexpected token %s (%q) at position %d", tok.Type, tok.Value, tok.Pos)
	}
}

// parseListLiteral parses [expr, expr, ...].
func (p *Parser) parseListLiteral() (Node, error) {
	p.advance() // consume [

	var elements []Node
	for p.current().Type != TokenRBracket {
		if len(elements) > 0 {
			_, err := p.expect(TokenComma)
			if err != nil {
				return nil, fmt.Errorf("expected ',' in list: %w", err)
			}
		}
		elem, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}

	_, err := p.expect(TokenRBracket)
	if err != nil {
		return nil, fmt.Errorf("expected ']': %w", err)
	}

	return &ListNode{Elements: elements}, nil
}

// parseArgList parses (expr, expr, ...).
func (p *Parser) parseArgList() ([]Node, error) {
	_, err := p.expect(TokenLParen)
	if err != nil {
		return nil, fmt.Errorf("expected '(': %w", err)
	}

	var args []Node
	for p.current().Type != TokenRParen {
		if len(args) > 0 {
			_, err := p.expect(TokenComma)
			if err != nil {
				return nil, fmt.Errorf("expected ',' in arguments: %w", err)
			}
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	_, err = p.expect(TokenRParen)
	if err != nil {
		return nil, fmt.Errorf("expected ')': %w", err)
	}

	return args, nil
}
