package parser

import (
	"github.com/linkxzhou/evaljs/ast"
)

var assignOps = map[string]bool{
	"=": true, "+=": true, "-=": true, "*=": true, "/=": true, "%=": true,
	"|=": true, "&=": true, "^=": true, "**=": true, "<<=": true, ">>=": true, ">>>=": true,
}

// binaryPrec holds the precedence of the non-short-circuit binary operators.
var binaryPrec = map[string]int{
	"|":  1,
	"^":  2,
	"&":  3,
	"==": 4, "!=": 4, "===": 4, "!==": 4,
	"<": 5, ">": 5, "<=": 5, ">=": 5,
	"<<": 6, ">>": 6, ">>>": 6,
	"+": 7, "-": 7,
	"*": 8, "/": 8, "%": 8,
}

var unaryOps = map[string]bool{"!": true, "-": true, "+": true, "~": true}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment handles arrow functions and (compound) assignment, which
// are right-associative.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	if p.isArrowAhead() {
		return p.parseArrow()
	}
	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if tok.Type != TokPunct || !assignOps[tok.Literal] {
		return left, nil
	}
	switch left.(type) {
	case *ast.Identifier, *ast.MemberExpr:
	default:
		return nil, p.errorAt(tok, "invalid assignment target")
	}
	p.next()
	right, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	line, col := left.Pos()
	return &ast.AssignmentExpr{
		Position: ast.Position{Line: line, Col: col},
		Operator: tok.Literal,
		Left:     left,
		Right:    right,
	}, nil
}

// parseConditional handles cond ? a : b.
func (p *Parser) parseConditional() (ast.Expression, error) {
	test, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if !p.peekPunct("?") {
		return test, nil
	}
	tok := p.next()
	cons, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	alt, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	return &ast.ConditionalExpr{Position: posOf(tok), Test: test, Consequent: cons, Alternate: alt}, nil
}

// parseLogicalOr handles || and ??.
func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.peekPunct("||") || p.peekPunct("??") {
		tok := p.next()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Position: posOf(tok), Op: tok.Literal, Left: left, Right: right}
	}
	return left, nil
}

// parseLogicalAnd handles &&.
func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	left, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	for p.peekPunct("&&") {
		tok := p.next()
		right, err := p.parseBinary(1)
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalExpr{Position: posOf(tok), Op: tok.Literal, Left: left, Right: right}
	}
	return left, nil
}

// parseBinary is a precedence climber over binaryPrec; all levels are
// left-associative.
func (p *Parser) parseBinary(minPrec int) (ast.Expression, error) {
	left, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		prec, ok := binaryPrec[tok.Literal]
		if tok.Type != TokPunct || !ok || prec < minPrec {
			return left, nil
		}
		p.next()
		right, err := p.parseBinary(prec + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Position: posOf(tok), Op: tok.Literal, Left: left, Right: right}
	}
}

// parseExponent handles the right-associative **.
func (p *Parser) parseExponent() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if !p.peekPunct("**") {
		return left, nil
	}
	tok := p.next()
	right, err := p.parseExponent()
	if err != nil {
		return nil, err
	}
	return &ast.BinaryExpr{Position: posOf(tok), Op: "**", Left: left, Right: right}, nil
}

// parseUnary handles prefix operators, including prefix ++ and --.
func (p *Parser) parseUnary() (ast.Expression, error) {
	tok := p.peek()
	switch {
	case tok.Type == TokPunct && unaryOps[tok.Literal],
		tok.is(TokKeyword, "typeof"), tok.is(TokKeyword, "void"), tok.is(TokKeyword, "delete"):
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryExpr{Position: posOf(tok), Op: tok.Literal, X: x}, nil
	case tok.is(TokPunct, "++"), tok.is(TokPunct, "--"):
		p.next()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if !isUpdateTarget(arg) {
			return nil, p.errorAt(tok, "invalid %s operand", tok.Literal)
		}
		return &ast.UpdateExpr{Position: posOf(tok), Op: tok.Literal, Argument: arg, Prefix: true}, nil
	}
	return p.parsePostfix()
}

// parsePostfix handles postfix ++ and --; a line break before the operator
// ends the expression instead.
func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parseCallMember()
	if err != nil {
		return nil, err
	}
	tok := p.peek()
	if (tok.is(TokPunct, "++") || tok.is(TokPunct, "--")) && tok.Line == p.prev().Line {
		if !isUpdateTarget(expr) {
			return nil, p.errorAt(tok, "invalid %s operand", tok.Literal)
		}
		p.next()
		line, col := expr.Pos()
		return &ast.UpdateExpr{Position: ast.Position{Line: line, Col: col}, Op: tok.Literal, Argument: expr}, nil
	}
	return expr, nil
}

func isUpdateTarget(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Identifier, *ast.MemberExpr:
		return true
	}
	return false
}

// parseCallMember handles member access, calls, new and tagged templates.
func (p *Parser) parseCallMember() (ast.Expression, error) {
	var expr ast.Expression
	var err error
	if p.peekKeyword("new") {
		expr, err = p.parseNew()
	} else {
		expr, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch {
		case tok.is(TokPunct, "."), tok.is(TokPunct, "["):
			expr, err = p.parseMember(expr)
			if err != nil {
				return nil, err
			}
		case tok.is(TokPunct, "("):
			args, err := p.parseArguments()
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Position: posOf(tok), Callee: expr, Arguments: args}
		case tok.Type == TokTemplate:
			p.next()
			quasi, err := p.parseTemplate(tok)
			if err != nil {
				return nil, err
			}
			expr = &ast.TaggedTemplate{Position: posOf(tok), Tag: expr, Quasi: quasi}
		default:
			return expr, nil
		}
	}
}

// parseMember parses one .name or [expr] suffix applied to obj.
func (p *Parser) parseMember(obj ast.Expression) (ast.Expression, error) {
	tok := p.next()
	if tok.Literal == "." {
		name := p.next()
		if name.Type != TokIdentifier && name.Type != TokKeyword {
			return nil, p.errorAt(name, "expected property name, got %s", name)
		}
		return &ast.MemberExpr{Position: posOf(tok), Object: obj, Property: identFrom(name)}, nil
	}
	prop, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("]"); err != nil {
		return nil, err
	}
	return &ast.MemberExpr{Position: posOf(tok), Object: obj, Property: prop, Computed: true}, nil
}

// parseNew handles new Callee(args); the argument list is optional.
func (p *Parser) parseNew() (ast.Expression, error) {
	kw := p.next()
	var callee ast.Expression
	var err error
	if p.peekKeyword("new") {
		callee, err = p.parseNew()
	} else {
		callee, err = p.parsePrimary()
	}
	if err != nil {
		return nil, err
	}
	for p.peekPunct(".") || p.peekPunct("[") {
		callee, err = p.parseMember(callee)
		if err != nil {
			return nil, err
		}
	}
	expr := &ast.NewExpr{Position: posOf(kw), Callee: callee}
	if p.peekPunct("(") {
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}
		expr.Arguments = args
	}
	return expr, nil
}

// parseArguments parses (a, b, ...c).
func (p *Parser) parseArguments() ([]ast.Expression, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	var args []ast.Expression
	for !p.peekPunct(")") {
		arg, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.accept(",") {
			break
		}
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return args, nil
}

// parseElement parses an argument or array element, which may be spread.
func (p *Parser) parseElement() (ast.Expression, error) {
	if p.peekPunct("...") {
		tok := p.next()
		arg, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.SpreadElement{Position: posOf(tok), Argument: arg}, nil
	}
	return p.parseAssignment()
}
