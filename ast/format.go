package ast

import (
	"strconv"
	"strings"
)

// Format renders node back into source text. The output re-parses to an
// equivalent tree; it is not meant to preserve the original layout.
func Format(node Node) string {
	var p printer
	p.node(node)
	return p.String()
}

type printer struct {
	strings.Builder
	indent int
}

func (p *printer) newline() {
	p.WriteByte('\n')
	p.WriteString(strings.Repeat("  ", p.indent))
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case nil:
	case *Program:
		for i, s := range n.Body {
			if i > 0 {
				p.WriteByte('\n')
			}
			p.node(s)
		}
	case Statement:
		p.stmt(n)
	case Expression:
		p.expr(n)
	case *VarDeclarator:
		p.declarator(n)
	}
}

func (p *printer) stmt(s Statement) {
	switch s := s.(type) {
	case *ExpressionStmt:
		// a leading brace or function keyword would re-parse as a statement
		switch s.Expr.(type) {
		case *ObjectLiteral, *FunctionLiteral:
			p.WriteByte('(')
			p.expr(s.Expr)
			p.WriteByte(')')
		default:
			p.expr(s.Expr)
		}
		p.WriteByte(';')
	case *BlockStmt:
		p.block(s)
	case *IfStmt:
		p.WriteString("if (")
		p.expr(s.Test)
		p.WriteString(") ")
		p.stmt(s.Consequent)
		if s.Alternate != nil {
			p.WriteString(" else ")
			p.stmt(s.Alternate)
		}
	case *VarDecl:
		p.WriteString(s.DeclKind)
		p.WriteByte(' ')
		for i, d := range s.Declarations {
			if i > 0 {
				p.WriteString(", ")
			}
			p.declarator(d)
		}
		p.WriteByte(';')
	case *FunctionDecl:
		p.WriteString("function ")
		p.WriteString(s.Name.Name)
		p.signature(s.Signature)
		p.WriteByte(' ')
		p.block(s.Body)
	case *ReturnStmt:
		p.WriteString("return")
		if s.Argument != nil {
			p.WriteByte(' ')
			p.expr(s.Argument)
		}
		p.WriteByte(';')
	}
}

func (p *printer) declarator(d *VarDeclarator) {
	p.WriteString(d.ID.Name)
	if d.Init != nil {
		p.WriteString(" = ")
		p.expr(d.Init)
	}
}

func (p *printer) block(b *BlockStmt) {
	if b == nil || len(b.Body) == 0 {
		p.WriteString("{}")
		return
	}
	p.WriteByte('{')
	p.indent++
	for _, s := range b.Body {
		p.newline()
		p.stmt(s)
	}
	p.indent--
	p.newline()
	p.WriteByte('}')
}

func (p *printer) signature(sig Signature) {
	p.WriteByte('(')
	for i, param := range sig.Params {
		if i > 0 {
			p.WriteString(", ")
		}
		p.WriteString(param.Name)
	}
	if sig.Rest != nil {
		if len(sig.Params) > 0 {
			p.WriteString(", ")
		}
		p.WriteString("...")
		p.WriteString(sig.Rest.Name)
	}
	p.WriteByte(')')
}

// operand prints e, parenthesized when it is itself a compound expression.
func (p *printer) operand(e Expression) {
	switch e.(type) {
	case *BinaryExpr, *LogicalExpr, *ConditionalExpr, *AssignmentExpr, *ArrowFunction, *FunctionLiteral:
		p.WriteByte('(')
		p.expr(e)
		p.WriteByte(')')
	default:
		p.expr(e)
	}
}

func (p *printer) list(items []Expression) {
	for i, item := range items {
		if i > 0 {
			p.WriteString(", ")
		}
		if item != nil {
			p.expr(item)
		}
	}
}

func (p *printer) expr(e Expression) {
	switch e := e.(type) {
	case *Literal:
		p.literal(e)
	case *Identifier:
		p.WriteString(e.Name)
	case *ThisExpr:
		p.WriteString("this")
	case *UnaryExpr:
		p.WriteString(e.Op)
		if len(e.Op) > 1 {
			p.WriteByte(' ')
		}
		switch e.X.(type) {
		case *UnaryExpr, *UpdateExpr:
			// keeps "- -x" from printing as "--x"
			p.WriteByte('(')
			p.expr(e.X)
			p.WriteByte(')')
		default:
			p.operand(e.X)
		}
	case *BinaryExpr:
		p.operand(e.Left)
		p.WriteString(" " + e.Op + " ")
		p.operand(e.Right)
	case *LogicalExpr:
		p.operand(e.Left)
		p.WriteString(" " + e.Op + " ")
		p.operand(e.Right)
	case *ConditionalExpr:
		p.operand(e.Test)
		p.WriteString(" ? ")
		p.operand(e.Consequent)
		p.WriteString(" : ")
		p.operand(e.Alternate)
	case *AssignmentExpr:
		p.expr(e.Left)
		p.WriteString(" " + e.Operator + " ")
		p.expr(e.Right)
	case *UpdateExpr:
		if e.Prefix {
			p.WriteString(e.Op)
			p.operand(e.Argument)
		} else {
			p.operand(e.Argument)
			p.WriteString(e.Op)
		}
	case *ArrayLiteral:
		p.WriteByte('[')
		p.list(e.Elements)
		if n := len(e.Elements); n > 0 && e.Elements[n-1] == nil {
			p.WriteByte(',')
		}
		p.WriteByte(']')
	case *ObjectLiteral:
		p.object(e)
	case *MemberExpr:
		p.operand(e.Object)
		if e.Computed {
			p.WriteByte('[')
			p.expr(e.Property)
			p.WriteByte(']')
		} else {
			p.WriteByte('.')
			p.expr(e.Property)
		}
	case *SpreadElement:
		p.WriteString("...")
		p.expr(e.Argument)
	case *CallExpr:
		p.operand(e.Callee)
		p.WriteByte('(')
		p.list(e.Arguments)
		p.WriteByte(')')
	case *NewExpr:
		p.WriteString("new ")
		p.operand(e.Callee)
		p.WriteByte('(')
		p.list(e.Arguments)
		p.WriteByte(')')
	case *TemplateLiteral:
		p.template(e)
	case *TemplateElement:
		p.WriteString(e.Raw)
	case *TaggedTemplate:
		p.operand(e.Tag)
		p.template(e.Quasi)
	case *FunctionLiteral:
		p.WriteString("function")
		if e.Name != nil {
			p.WriteByte(' ')
			p.WriteString(e.Name.Name)
		}
		p.signature(e.Signature)
		p.WriteByte(' ')
		p.block(e.Body)
	case *ArrowFunction:
		p.signature(e.Signature)
		p.WriteString(" => ")
		if e.Body != nil {
			p.block(e.Body)
		} else if _, ok := e.Expr.(*ObjectLiteral); ok {
			p.WriteByte('(')
			p.expr(e.Expr)
			p.WriteByte(')')
		} else {
			p.expr(e.Expr)
		}
	}
}

func (p *printer) literal(l *Literal) {
	if l.Raw != "" {
		p.WriteString(l.Raw)
		return
	}
	switch v := l.Value.(type) {
	case nil:
		p.WriteString("null")
	case bool:
		p.WriteString(strconv.FormatBool(v))
	case float64:
		p.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case string:
		p.WriteString(strconv.Quote(v))
	}
}

func (p *printer) object(o *ObjectLiteral) {
	if len(o.Properties) == 0 {
		p.WriteString("{}")
		return
	}
	p.WriteString("{ ")
	for i, prop := range o.Properties {
		if i > 0 {
			p.WriteString(", ")
		}
		if prop.Shorthand {
			p.expr(prop.Key)
			continue
		}
		if prop.Computed {
			p.WriteByte('[')
			p.expr(prop.Key)
			p.WriteByte(']')
		} else {
			p.expr(prop.Key)
		}
		p.WriteString(": ")
		p.expr(prop.Value)
	}
	p.WriteString(" }")
}

func (p *printer) template(t *TemplateLiteral) {
	p.WriteByte('`')
	for i, q := range t.Quasis {
		p.WriteString(q.Raw)
		if i < len(t.Expressions) {
			p.WriteString("${")
			p.expr(t.Expressions[i])
			p.WriteByte('}')
		}
	}
	p.WriteByte('`')
}
