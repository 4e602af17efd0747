package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifierAndLiteral(t *testing.T) {
	id := &Identifier{Name: "foo", Position: Position{Line: 1, Col: 2}}
	lit := &Literal{Value: float64(123), Position: Position{Line: 2, Col: 3}}

	assert.Equal(t, KindIdentifier, id.Kind())
	assert.Equal(t, KindLiteral, lit.Kind())
	line, _ := id.Pos()
	assert.Equal(t, 1, line)
	_, col := lit.Pos()
	assert.Equal(t, 3, col)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "BinaryExpression", KindBinary.String())
	assert.Equal(t, "ReturnStatement", KindReturn.String())
	assert.Equal(t, "Invalid", Kind(999).String())
	assert.Equal(t, "Invalid", Kind(-1).String())
}

func TestProgramPos(t *testing.T) {
	assert.Equal(t, KindProgram, (&Program{}).Kind())
	line, col := (&Program{}).Pos()
	assert.Equal(t, 0, line)
	assert.Equal(t, 0, col)

	prog := &Program{Body: []Statement{
		&ExpressionStmt{Position: Position{Line: 4, Col: 1}, Expr: &Identifier{Name: "a"}},
	}}
	line, _ = prog.Pos()
	assert.Equal(t, 4, line)
}

func TestFormat(t *testing.T) {
	a := &Identifier{Name: "a"}
	b := &Identifier{Name: "b"}
	one := &Literal{Value: float64(1), Raw: "1"}

	tests := []struct {
		name string
		node Node
		want string
	}{
		{
			name: "binary nests parenthesized",
			node: &BinaryExpr{Op: "*", Left: &BinaryExpr{Op: "+", Left: a, Right: one}, Right: b},
			want: "(a + 1) * b",
		},
		{
			name: "literal without raw",
			node: &Literal{Value: "x\"y"},
			want: `"x\"y"`,
		},
		{
			name: "null literal",
			node: &Literal{},
			want: "null",
		},
		{
			name: "member and call",
			node: &CallExpr{
				Callee:    &MemberExpr{Object: a, Property: b},
				Arguments: []Expression{one, &SpreadElement{Argument: b}},
			},
			want: "a.b(1, ...b)",
		},
		{
			name: "computed member",
			node: &MemberExpr{Object: a, Property: one, Computed: true},
			want: "a[1]",
		},
		{
			name: "double negation",
			node: &UnaryExpr{Op: "-", X: &UnaryExpr{Op: "-", X: a}},
			want: "-(-a)",
		},
		{
			name: "typeof",
			node: &UnaryExpr{Op: "typeof", X: a},
			want: "typeof a",
		},
		{
			name: "postfix update",
			node: &UpdateExpr{Op: "++", Argument: a},
			want: "a++",
		},
		{
			name: "template",
			node: &TemplateLiteral{
				Quasis:      []*TemplateElement{{Raw: "x="}, {Raw: "!"}},
				Expressions: []Expression{a},
			},
			want: "`x=${a}!`",
		},
		{
			name: "arrow with object body",
			node: &ArrowFunction{
				Signature: Signature{Params: []*Identifier{a}},
				Expr:      &ObjectLiteral{Properties: []*Property{{Key: b, Value: a}}},
			},
			want: "(a) => ({ b: a })",
		},
		{
			name: "array with hole",
			node: &ArrayLiteral{Elements: []Expression{one, nil}},
			want: "[1, ,]",
		},
		{
			name: "object statement",
			node: &ExpressionStmt{Expr: &ObjectLiteral{}},
			want: "({});",
		},
		{
			name: "var declaration",
			node: &VarDecl{DeclKind: "let", Declarations: []*VarDeclarator{
				{ID: a, Init: one},
				{ID: b},
			}},
			want: "let a = 1, b;",
		},
		{
			name: "function declaration",
			node: &FunctionDecl{
				Name:      &Identifier{Name: "f"},
				Signature: Signature{Params: []*Identifier{a}, Rest: b},
				Body: &BlockStmt{Body: []Statement{
					&ReturnStmt{Argument: a},
				}},
			},
			want: "function f(a, ...b) {\n  return a;\n}",
		},
		{
			name: "if else",
			node: &IfStmt{
				Test:       a,
				Consequent: &BlockStmt{},
				Alternate:  &ExpressionStmt{Expr: b},
			},
			want: "if (a) {} else b;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.node))
		})
	}
}
