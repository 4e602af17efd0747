package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkxzhou/evaljs/ast"
)

func mustParseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	expr, err := ParseExpression(src)
	require.NoError(t, err, src)
	return expr
}

func TestParseAssignmentExpr(t *testing.T) {
	expr := mustParseExpr(t, "x = y += 5")
	assign, ok := expr.(*ast.AssignmentExpr)
	require.True(t, ok)
	assert.Equal(t, "=", assign.Operator)
	assert.Equal(t, "x", assign.Left.(*ast.Identifier).Name)
	inner, ok := assign.Right.(*ast.AssignmentExpr)
	require.True(t, ok)
	assert.Equal(t, "+=", inner.Operator)
	assert.EqualValues(t, 5, inner.Right.(*ast.Literal).Value)
}

func TestParseLogical(t *testing.T) {
	expr := mustParseExpr(t, "a || b && c")
	or, ok := expr.(*ast.LogicalExpr)
	require.True(t, ok)
	assert.Equal(t, "||", or.Op)
	and, ok := or.Right.(*ast.LogicalExpr)
	require.True(t, ok)
	assert.Equal(t, "&&", and.Op)
}

func TestParseExponentRightAssoc(t *testing.T) {
	expr := mustParseExpr(t, "2 ** 3 ** 2")
	bin := expr.(*ast.BinaryExpr)
	assert.Equal(t, "**", bin.Op)
	_, ok := bin.Right.(*ast.BinaryExpr)
	assert.True(t, ok)
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a + b * c", "a + (b * c)"},
		{"(a + b) * c", "(a + b) * c"},
		{"a - b - c", "(a - b) - c"},
		{"a < b == c", "(a < b) == c"},
		{"a ?? b", "a ?? b"},
		{"a ? b : c ? d : e", "a ? b : (c ? d : e)"},
		{"!a", "!a"},
		{"typeof a", "typeof a"},
		{"- -a", "-(-a)"},
		{"++a", "++a"},
		{"a.b--", "a.b--"},
		{"a.b[c](1, ...d)", "a.b[c](1, ...d)"},
		{"a.if", "a.if"},
		{"new Foo", "new Foo()"},
		{"new a.B(1).c", "new a.B(1).c"},
		{"[1, , 2,]", "[1, , 2]"},
		{"[,]", "[,]"},
		{"{a: 1, 'b': 2, [c]: 3, d}", "{ a: 1, \"b\": 2, [c]: 3, d }"},
		{"x => x + 1", "(x) => x + 1"},
		{"(a, ...b) => ({a})", "(a, ...b) => ({ a })"},
		{"() => { return 1 }", "() => {\n  return 1;\n}"},
		{"function (a) { return a }", "function(a) {\n  return a;\n}"},
		{"`a${b}c`", "`a${b}c`"},
		{"tag`x${y}`", "tag`x${y}`"},
		{"0xff", "0xff"},
		{"null", "null"},
		{"this.x = true", "this.x = true"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr := mustParseExpr(t, tt.src)
			got := ast.Format(expr)
			assert.Equal(t, tt.want, got)

			again := mustParseExpr(t, got)
			assert.Equal(t, got, ast.Format(again))
		})
	}
}

func TestParseLiteralValues(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{"42", float64(42)},
		{"0x10", float64(16)},
		{"0b11", float64(3)},
		{"0o10", float64(8)},
		{"1.5e2", float64(150)},
		{`"s"`, "s"},
		{"true", true},
		{"false", false},
		{"null", nil},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			lit, ok := mustParseExpr(t, tt.src).(*ast.Literal)
			require.True(t, ok)
			assert.Equal(t, tt.want, lit.Value)
		})
	}
}

func TestParseObjectMethod(t *testing.T) {
	obj := mustParseExpr(t, "{ f(a) { return a }, 1: 'one' }").(*ast.ObjectLiteral)
	require.Len(t, obj.Properties, 2)
	fn, ok := obj.Properties[0].Value.(*ast.FunctionLiteral)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Name.Name)
	assert.Len(t, fn.Params, 1)
	assert.EqualValues(t, 1, obj.Properties[1].Key.(*ast.Literal).Value)
}

func TestParseTemplatePositions(t *testing.T) {
	tpl := mustParseExpr(t, "`x ${a + b}`").(*ast.TemplateLiteral)
	require.Len(t, tpl.Quasis, 2)
	require.Len(t, tpl.Expressions, 1)
	assert.Equal(t, "x ", tpl.Quasis[0].Cooked)
	line, col := tpl.Expressions[0].Pos()
	assert.Equal(t, 1, line)
	assert.Equal(t, 8, col)
}

func TestParseProgram(t *testing.T) {
	src := `
var a = 1, b
let c = a
if (a) { b = 2 } else b = 3
function f(x, ...rest) {
  return x
}
return
;;
a++
`
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Body, 6)

	decl := prog.Body[0].(*ast.VarDecl)
	assert.Equal(t, "var", decl.DeclKind)
	assert.Len(t, decl.Declarations, 2)
	assert.Nil(t, decl.Declarations[1].Init)

	ifs := prog.Body[2].(*ast.IfStmt)
	assert.IsType(t, &ast.BlockStmt{}, ifs.Consequent)
	assert.IsType(t, &ast.ExpressionStmt{}, ifs.Alternate)

	fn := prog.Body[3].(*ast.FunctionDecl)
	assert.Equal(t, "f", fn.Name.Name)
	assert.Equal(t, "rest", fn.Rest.Name)

	ret := prog.Body[4].(*ast.ReturnStmt)
	assert.Nil(t, ret.Argument)

	upd := prog.Body[5].(*ast.ExpressionStmt).Expr.(*ast.UpdateExpr)
	assert.False(t, upd.Prefix)
}

func TestParseASILineBreakBeforeUpdate(t *testing.T) {
	prog, err := Parse("a\n++b")
	require.NoError(t, err)
	require.Len(t, prog.Body, 2)
	upd := prog.Body[1].(*ast.ExpressionStmt).Expr.(*ast.UpdateExpr)
	assert.True(t, upd.Prefix)
}

func TestParseFormatProgram(t *testing.T) {
	prog, err := Parse("let x = {a: 1}\nfunction g() { if (x) return x.a }\n({})")
	require.NoError(t, err)
	want := "let x = { a: 1 };\nfunction g() {\n  if (x) return x.a;\n}\n({});"
	assert.Equal(t, want, ast.Format(prog))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src        string
		incomplete bool
	}{
		{"a +", true},
		{"f(1, 2", true},
		{"{ a = 1", true},
		{"function f(", true},
		{"if (a", true},
		{"1 = 2", false},
		{"a b", false},
		{"while (a) {}", false},
		{"const x", false},
		{"++1", false},
		{"`${}`", false},
		{"a.1", false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var perr *Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.incomplete, IsIncomplete(err), err.Error())
			assert.Positive(t, perr.Line)
		})
	}
}

func TestParserReuse(t *testing.T) {
	p := New()
	first, err := p.Parse("a = 1")
	require.NoError(t, err)
	second, err := p.Parse("b")
	require.NoError(t, err)
	assert.Len(t, first.Body, 1)
	assert.Len(t, second.Body, 1)
	assert.Equal(t, "b;", ast.Format(second))
}
