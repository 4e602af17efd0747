package parser

import (
	"strconv"
	"strings"

	"github.com/linkxzhou/evaljs/ast"
)

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Type {
	case TokNumber:
		p.next()
		n, err := parseNumber(tok.Literal)
		if err != nil {
			return nil, p.errorAt(tok, "invalid number %s", tok)
		}
		return &ast.Literal{Position: posOf(tok), Value: n, Raw: tok.Literal}, nil
	case TokString:
		p.next()
		return &ast.Literal{Position: posOf(tok), Value: tok.Literal}, nil
	case TokTemplate:
		p.next()
		return p.parseTemplate(tok)
	case TokIdentifier:
		p.next()
		return identFrom(tok), nil
	case TokKeyword:
		switch tok.Literal {
		case "true", "false":
			p.next()
			return &ast.Literal{Position: posOf(tok), Value: tok.Literal == "true", Raw: tok.Literal}, nil
		case "null":
			p.next()
			return &ast.Literal{Position: posOf(tok), Raw: "null"}, nil
		case "this":
			p.next()
			return &ast.ThisExpr{Position: posOf(tok)}, nil
		case "function":
			return p.parseFunctionLiteral()
		}
	case TokPunct:
		switch tok.Literal {
		case "(":
			p.next()
			expr, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(")"); err != nil {
				return nil, err
			}
			return expr, nil
		case "[":
			return p.parseArrayLiteral()
		case "{":
			return p.parseObjectLiteral()
		}
	}
	return nil, p.errorAt(tok, "unexpected %s", tok)
}

// parseNumber decodes decimal, hex (0x), binary (0b) and octal (0o) literals.
func parseNumber(lit string) (float64, error) {
	if len(lit) > 2 && lit[0] == '0' {
		base := 0
		switch lit[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 0 {
			u, err := strconv.ParseUint(lit[2:], base, 64)
			if err != nil {
				return 0, err
			}
			return float64(u), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, nil
		}
		return 0, err
	}
	return f, nil
}

// parseTemplate builds a TemplateLiteral from a scanned template token,
// parsing each interpolation at its original source position.
func (p *Parser) parseTemplate(tok Token) (*ast.TemplateLiteral, error) {
	parts := tok.Template
	tpl := &ast.TemplateLiteral{Position: posOf(tok)}
	if parts == nil {
		tpl.Quasis = []*ast.TemplateElement{{Position: posOf(tok)}}
		return tpl, nil
	}
	for i, cooked := range parts.Cooked {
		tpl.Quasis = append(tpl.Quasis, &ast.TemplateElement{Position: posOf(tok), Cooked: cooked, Raw: parts.Raw[i]})
	}
	for i, src := range parts.Exprs {
		if strings.TrimSpace(src) == "" {
			return nil, &Error{Line: parts.ExprLine[i], Col: parts.ExprCol[i], Msg: "empty template interpolation"}
		}
		expr, err := parseExpressionAt(src, parts.ExprLine[i], parts.ExprCol[i])
		if err != nil {
			if perr, ok := err.(*Error); ok {
				perr.Incomplete = false
			}
			return nil, err
		}
		tpl.Expressions = append(tpl.Expressions, expr)
	}
	return tpl, nil
}

// isArrowAhead reports whether the tokens at the cursor start an arrow
// function: either "x =>" or a balanced parenthesized list followed by "=>".
func (p *Parser) isArrowAhead() bool {
	tok := p.peek()
	if tok.Type == TokIdentifier {
		return p.peekAt(1).is(TokPunct, "=>")
	}
	if !tok.is(TokPunct, "(") {
		return false
	}
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		t := p.tokens[i]
		if t.Type == TokEOF {
			return false
		}
		if t.Type != TokPunct {
			continue
		}
		switch t.Literal {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].is(TokPunct, "=>")
			}
		}
	}
	return false
}

func (p *Parser) parseArrow() (ast.Expression, error) {
	start := p.peek()
	fn := &ast.ArrowFunction{Position: posOf(start)}
	if start.Type == TokIdentifier {
		p.next()
		fn.Params = []*ast.Identifier{identFrom(start)}
	} else {
		sig, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		fn.Signature = sig
	}
	if _, err := p.expect("=>"); err != nil {
		return nil, err
	}
	if p.peekPunct("{") {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fn.Body = body
		return fn, nil
	}
	expr, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	fn.Expr = expr
	return fn, nil
}

// parseParams parses (a, b, ...rest). The rest parameter must be last.
func (p *Parser) parseParams() (ast.Signature, error) {
	var sig ast.Signature
	if _, err := p.expect("("); err != nil {
		return sig, err
	}
	for !p.peekPunct(")") {
		if p.accept("...") {
			id, err := p.expectIdentifier()
			if err != nil {
				return sig, err
			}
			sig.Rest = id
			break
		}
		id, err := p.expectIdentifier()
		if err != nil {
			return sig, err
		}
		sig.Params = append(sig.Params, id)
		if !p.accept(",") {
			break
		}
	}
	_, err := p.expect(")")
	return sig, err
}

func (p *Parser) parseFunctionLiteral() (ast.Expression, error) {
	kw := p.next()
	fn := &ast.FunctionLiteral{Position: posOf(kw)}
	if p.peek().Type == TokIdentifier {
		fn.Name = identFrom(p.next())
	}
	sig, err := p.parseParams()
	if err != nil {
		return nil, err
	}
	fn.Signature = sig
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	return fn, nil
}

// parseArrayLiteral parses [a, , ...b]. A bare comma leaves a nil hole; a
// single trailing comma does not.
func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	open := p.next()
	arr := &ast.ArrayLiteral{Position: posOf(open)}
	for !p.peekPunct("]") {
		if p.accept(",") {
			arr.Elements = append(arr.Elements, nil)
			continue
		}
		el, err := p.parseElement()
		if err != nil {
			return nil, err
		}
		arr.Elements = append(arr.Elements, el)
		if !p.accept(",") {
			break
		}
	}
	if _, err := p.expect("]"); err != nil {
		return nil, err
	}
	return arr, nil
}

// parseObjectLiteral parses {a: 1, "b": 2, [k]: 3, c, m() {}}.
func (p *Parser) parseObjectLiteral() (ast.Expression, error) {
	open := p.next()
	obj := &ast.ObjectLiteral{Position: posOf(open)}
	for !p.peekPunct("}") {
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, prop)
		if !p.accept(",") {
			break
		}
	}
	if _, err := p.expect("}"); err != nil {
		return nil, err
	}
	return obj, nil
}

func (p *Parser) parseProperty() (*ast.Property, error) {
	tok := p.peek()
	prop := &ast.Property{Position: posOf(tok)}
	switch {
	case tok.is(TokPunct, "["):
		p.next()
		key, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("]"); err != nil {
			return nil, err
		}
		prop.Key = key
		prop.Computed = true
	case tok.Type == TokIdentifier || tok.Type == TokKeyword:
		p.next()
		prop.Key = identFrom(tok)
		if tok.Type == TokIdentifier && (p.peekPunct(",") || p.peekPunct("}")) {
			prop.Value = identFrom(tok)
			prop.Shorthand = true
			return prop, nil
		}
	case tok.Type == TokString:
		p.next()
		prop.Key = &ast.Literal{Position: posOf(tok), Value: tok.Literal}
	case tok.Type == TokNumber:
		p.next()
		n, err := parseNumber(tok.Literal)
		if err != nil {
			return nil, p.errorAt(tok, "invalid number %s", tok)
		}
		prop.Key = &ast.Literal{Position: posOf(tok), Value: n, Raw: tok.Literal}
	default:
		return nil, p.errorAt(tok, "expected property name, got %s", tok)
	}

	if p.peekPunct("(") {
		sig, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		fn := &ast.FunctionLiteral{Position: prop.Position, Signature: sig, Body: body}
		if id, ok := prop.Key.(*ast.Identifier); ok && !prop.Computed {
			fn.Name = id
		}
		prop.Value = fn
		return prop, nil
	}
	if _, err := p.expect(":"); err != nil {
		return nil, err
	}
	val, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	prop.Value = val
	return prop, nil
}
