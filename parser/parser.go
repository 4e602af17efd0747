// Package parser turns evaljs source text into an ast.Program.
package parser

import (
	"errors"
	"fmt"

	"github.com/linkxzhou/evaljs/ast"
)

// Error is a syntax error. Incomplete is set when the input ended in the
// middle of a construct, so more input could make it valid.
type Error struct {
	Line       int
	Col        int
	Msg        string
	Incomplete bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("parse error at line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

// IsIncomplete reports whether err is a parse error caused by truncated input.
func IsIncomplete(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Incomplete
}

// Parser holds tokens and the read position.
type Parser struct {
	tokens []Token
	pos    int
}

// New returns a Parser with no input; use Parse.
func New() *Parser {
	return &Parser{}
}

// Parse parses source into a program.
func Parse(source string) (*ast.Program, error) {
	return New().Parse(source)
}

// Parse tokenizes and parses source. The Parser may be reused.
func (p *Parser) Parse(source string) (*ast.Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	p.pos = 0
	return p.ParseProgram()
}

// ParseExpression parses a single expression that must span the whole input.
func ParseExpression(source string) (ast.Expression, error) {
	return parseExpressionAt(source, 1, 1)
}

func parseExpressionAt(source string, line, col int) (ast.Expression, error) {
	tokens, err := tokenizeAt(source, line, col)
	if err != nil {
		return nil, err
	}
	p := &Parser{tokens: tokens}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokEOF {
		return nil, p.errorAt(tok, "unexpected %s after expression", tok)
	}
	return expr, nil
}

// ParseProgram parses a sequence of statements until EOF.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for p.peek().Type != TokEOF {
		if p.peekPunct(";") {
			p.next()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		prog.Body = append(prog.Body, stmt)
	}
	return prog, nil
}

// peek returns current token.
func (p *Parser) peek() Token {
	return p.peekAt(0)
}

func (p *Parser) peekAt(off int) Token {
	if p.pos+off < len(p.tokens) {
		return p.tokens[p.pos+off]
	}
	if len(p.tokens) > 0 {
		return p.tokens[len(p.tokens)-1]
	}
	return Token{Type: TokEOF}
}

// next returns current token and advances.
func (p *Parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// prev returns the most recently consumed token.
func (p *Parser) prev() Token {
	if p.pos > 0 && p.pos-1 < len(p.tokens) {
		return p.tokens[p.pos-1]
	}
	return Token{}
}

func (p *Parser) peekPunct(lit string) bool {
	return p.peek().is(TokPunct, lit)
}

func (p *Parser) peekKeyword(lit string) bool {
	return p.peek().is(TokKeyword, lit)
}

// accept consumes the punctuator lit if it is next.
func (p *Parser) accept(lit string) bool {
	if p.peekPunct(lit) {
		p.next()
		return true
	}
	return false
}

// expect consumes the punctuator lit or fails.
func (p *Parser) expect(lit string) (Token, error) {
	tok := p.next()
	if !tok.is(TokPunct, lit) {
		return tok, p.errorAt(tok, "expected %q, got %s", lit, tok)
	}
	return tok, nil
}

func (p *Parser) expectIdentifier() (*ast.Identifier, error) {
	tok := p.next()
	if tok.Type != TokIdentifier {
		return nil, p.errorAt(tok, "expected identifier, got %s", tok)
	}
	return identFrom(tok), nil
}

// errorAt creates an Error located at tok. Errors at EOF are incomplete.
func (p *Parser) errorAt(tok Token, format string, args ...interface{}) error {
	return &Error{
		Line:       tok.Line,
		Col:        tok.Col,
		Msg:        fmt.Sprintf(format, args...),
		Incomplete: tok.Type == TokEOF,
	}
}

func posOf(tok Token) ast.Position {
	return ast.Position{Line: tok.Line, Col: tok.Col}
}

func identFrom(tok Token) *ast.Identifier {
	return &ast.Identifier{Position: posOf(tok), Name: tok.Literal}
}
