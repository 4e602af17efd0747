package parser

import (
	"github.com/linkxzhou/evaljs/ast"
)

func (p *Parser) parseStatement() (ast.Statement, error) {
	tok := p.peek()
	if tok.is(TokPunct, "{") {
		return p.parseBlock()
	}
	if tok.Type == TokKeyword {
		switch tok.Literal {
		case "var", "let", "const":
			decl, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			return decl, p.consumeSemicolon()
		case "function":
			if p.peekAt(1).Type == TokIdentifier {
				return p.parseFunctionDecl()
			}
		case "if":
			return p.parseIf()
		case "return":
			return p.parseReturn()
		case "this", "true", "false", "null", "new", "typeof", "void", "delete":
		default:
			return nil, p.errorAt(tok, "unsupported statement %q", tok.Literal)
		}
	}
	return p.parseExpressionStatement()
}

// consumeSemicolon applies automatic semicolon insertion: a statement ends at
// ';', before '}', at EOF or at a line break.
func (p *Parser) consumeSemicolon() error {
	if p.accept(";") {
		return nil
	}
	tok := p.peek()
	if tok.Type == TokEOF || tok.is(TokPunct, "}") || tok.Line > p.prev().Line {
		return nil
	}
	return p.errorAt(tok, "expected \";\", got %s", tok)
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	tok := p.peek()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.consumeSemicolon(); err != nil {
		return nil, err
	}
	return &ast.ExpressionStmt{Position: posOf(tok), Expr: expr}, nil
}

func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	open, err := p.expect("{")
	if err != nil {
		return nil, err
	}
	block := &ast.BlockStmt{Position: posOf(open)}
	for !p.peekPunct("}") {
		if p.peek().Type == TokEOF {
			return nil, p.errorAt(p.peek(), "expected \"}\" to close block")
		}
		if p.accept(";") {
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Body = append(block.Body, stmt)
	}
	p.next()
	return block, nil
}

func (p *Parser) parseIf() (ast.Statement, error) {
	tok := p.next()
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	test, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	cons, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStmt{Position: posOf(tok), Test: test, Consequent: cons}
	if p.peekKeyword("else") {
		p.next()
		alt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Alternate = alt
	}
	return stmt, nil
}

func (p *Parser) parseReturn() (ast.Statement, error) {
	tok := p.next()
	stmt := &ast.ReturnStmt{Position: posOf(tok)}
	next := p.peek()
	if next.Type == TokEOF || next.is(TokPunct, ";") || next.is(TokPunct, "}") || next.Line > tok.Line {
		return stmt, p.consumeSemicolon()
	}
	arg, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Argument = arg
	return stmt, p.consumeSemicolon()
}

// parseVarDecl parses var/let/const with one or more comma-joined declarators.
func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	kw := p.next()
	decl := &ast.VarDecl{Position: posOf(kw), DeclKind: kw.Literal}
	for {
		id, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		d := &ast.VarDeclarator{Position: id.Position, ID: id}
		if p.accept("=") {
			init, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			d.Init = init
		} else if kw.Literal == "const" {
			return nil, &Error{Line: id.Line, Col: id.Col, Msg: "missing initializer in const declaration"}
		}
		decl.Declarations = append(decl.Declarations, d)
		if !p.accept(",") {
			return decl, nil
		}
	}
}

func (p *Parser) parseFunctionDecl() (ast.Statement, error) {
	kw := p.next()
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	sig, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Position: posOf(kw), Name: name, Signature: sig, Body: body}, nil
}
