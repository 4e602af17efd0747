// Package ast declares the syntax tree consumed by the evaljs interpreter.
//
// Nodes are built once by a parser and never mutated afterwards; the
// interpreter only reads them.
package ast

// Kind is the discriminant carried by every node.
type Kind int

const (
	KindInvalid Kind = iota
	KindProgram
	KindLiteral
	KindIdentifier
	KindThis
	KindUnary
	KindBinary
	KindLogical
	KindConditional
	KindArrayLiteral
	KindObjectLiteral
	KindMember
	KindAssignment
	KindUpdate
	KindCall
	KindNew
	KindSpread
	KindTemplateLiteral
	KindTemplateChunk
	KindTaggedTemplate
	KindFunctionLiteral
	KindArrowFunction
	KindFunctionDecl
	KindVarDecl
	KindVarDeclarator
	KindBlock
	KindExpressionStmt
	KindIf
	KindReturn
)

var kindNames = [...]string{
	KindInvalid:         "Invalid",
	KindProgram:         "Program",
	KindLiteral:         "Literal",
	KindIdentifier:      "Identifier",
	KindThis:            "ThisExpression",
	KindUnary:           "UnaryExpression",
	KindBinary:          "BinaryExpression",
	KindLogical:         "LogicalExpression",
	KindConditional:     "ConditionalExpression",
	KindArrayLiteral:    "ArrayExpression",
	KindObjectLiteral:   "ObjectExpression",
	KindMember:          "MemberExpression",
	KindAssignment:      "AssignmentExpression",
	KindUpdate:          "UpdateExpression",
	KindCall:            "CallExpression",
	KindNew:             "NewExpression",
	KindSpread:          "SpreadElement",
	KindTemplateLiteral: "TemplateLiteral",
	KindTemplateChunk:   "TemplateElement",
	KindTaggedTemplate:  "TaggedTemplateExpression",
	KindFunctionLiteral: "FunctionExpression",
	KindArrowFunction:   "ArrowFunctionExpression",
	KindFunctionDecl:    "FunctionDeclaration",
	KindVarDecl:         "VariableDeclaration",
	KindVarDeclarator:   "VariableDeclarator",
	KindBlock:           "BlockStatement",
	KindExpressionStmt:  "ExpressionStatement",
	KindIf:              "IfStatement",
	KindReturn:          "ReturnStatement",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Invalid"
}

// Node is the base interface of every syntax tree element.
type Node interface {
	Kind() Kind
	Pos() (line, col int)
}

type Statement interface {
	Node
	stmtNode()
}

type Expression interface {
	Node
	exprNode()
}

// Position is embedded by nodes to record where they start in the source.
type Position struct {
	Line int
	Col  int
}

func (p Position) Pos() (int, int) { return p.Line, p.Col }

// ========== program ==========

// Program is the ordered list of top-level statements of a source text.
type Program struct {
	Body []Statement
}

func (p *Program) Kind() Kind { return KindProgram }
func (p *Program) Pos() (int, int) {
	if len(p.Body) > 0 {
		return p.Body[0].Pos()
	}
	return 0, 0
}

// ========== identifiers and literals ==========

type Identifier struct {
	Position
	Name string
}

func (*Identifier) Kind() Kind { return KindIdentifier }
func (*Identifier) exprNode()  {}

// Literal holds a float64, string, bool or nil (null) value.
type Literal struct {
	Position
	Value interface{}
	Raw   string
}

func (*Literal) Kind() Kind { return KindLiteral }
func (*Literal) exprNode()  {}

type ThisExpr struct {
	Position
}

func (*ThisExpr) Kind() Kind { return KindThis }
func (*ThisExpr) exprNode()  {}

// ========== operators ==========

type UnaryExpr struct {
	Position
	Op string
	X  Expression
}

func (*UnaryExpr) Kind() Kind { return KindUnary }
func (*UnaryExpr) exprNode()  {}

type BinaryExpr struct {
	Position
	Op    string
	Left  Expression
	Right Expression
}

func (*BinaryExpr) Kind() Kind { return KindBinary }
func (*BinaryExpr) exprNode()  {}

// LogicalExpr is a short-circuiting &&, || or ?? expression.
type LogicalExpr struct {
	Position
	Op    string
	Left  Expression
	Right Expression
}

func (*LogicalExpr) Kind() Kind { return KindLogical }
func (*LogicalExpr) exprNode()  {}

// ConditionalExpr is cond ? a : b.
type ConditionalExpr struct {
	Position
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (*ConditionalExpr) Kind() Kind { return KindConditional }
func (*ConditionalExpr) exprNode()  {}

type AssignmentExpr struct {
	Position
	Operator string // "=", "+=", "-=", ...
	Left     Expression
	Right    Expression
}

func (*AssignmentExpr) Kind() Kind { return KindAssignment }
func (*AssignmentExpr) exprNode()  {}

type UpdateExpr struct {
	Position
	Op       string // "++" or "--"
	Argument Expression
	Prefix   bool
}

func (*UpdateExpr) Kind() Kind { return KindUpdate }
func (*UpdateExpr) exprNode()  {}

// ========== containers and access ==========

// ArrayLiteral elements may be nil for holes and may contain SpreadElement.
type ArrayLiteral struct {
	Position
	Elements []Expression
}

func (*ArrayLiteral) Kind() Kind { return KindArrayLiteral }
func (*ArrayLiteral) exprNode()  {}

type ObjectLiteral struct {
	Position
	Properties []*Property
}

func (*ObjectLiteral) Kind() Kind { return KindObjectLiteral }
func (*ObjectLiteral) exprNode()  {}

// Property is one key/value pair of an object literal. Key is an Identifier
// or Literal, or any expression when Computed is set.
type Property struct {
	Position
	Key       Expression
	Value     Expression
	Computed  bool
	Shorthand bool
}

// MemberExpr is obj.prop (Computed false) or obj[expr] (Computed true).
type MemberExpr struct {
	Position
	Object   Expression
	Property Expression
	Computed bool
}

func (*MemberExpr) Kind() Kind { return KindMember }
func (*MemberExpr) exprNode()  {}

type SpreadElement struct {
	Position
	Argument Expression
}

func (*SpreadElement) Kind() Kind { return KindSpread }
func (*SpreadElement) exprNode()  {}

type CallExpr struct {
	Position
	Callee    Expression
	Arguments []Expression
}

func (*CallExpr) Kind() Kind { return KindCall }
func (*CallExpr) exprNode()  {}

type NewExpr struct {
	Position
	Callee    Expression
	Arguments []Expression
}

func (*NewExpr) Kind() Kind { return KindNew }
func (*NewExpr) exprNode()  {}

// ========== templates ==========

// TemplateLiteral interleaves Quasis and Expressions:
// Quasis[0] Expressions[0] Quasis[1] ... Quasis[n].
type TemplateLiteral struct {
	Position
	Quasis      []*TemplateElement
	Expressions []Expression
}

func (*TemplateLiteral) Kind() Kind { return KindTemplateLiteral }
func (*TemplateLiteral) exprNode()  {}

// TemplateElement is one literal chunk of a template.
type TemplateElement struct {
	Position
	Cooked string
	Raw    string
}

func (*TemplateElement) Kind() Kind { return KindTemplateChunk }
func (*TemplateElement) exprNode()  {}

type TaggedTemplate struct {
	Position
	Tag   Expression
	Quasi *TemplateLiteral
}

func (*TaggedTemplate) Kind() Kind { return KindTaggedTemplate }
func (*TaggedTemplate) exprNode()  {}

// ========== functions ==========

// Signature lists declared parameters. Rest is the optional ...name parameter.
type Signature struct {
	Params []*Identifier
	Rest   *Identifier
}

// FunctionLiteral is a function expression; Name may be nil.
type FunctionLiteral struct {
	Position
	Name *Identifier
	Signature
	Body *BlockStmt
}

func (*FunctionLiteral) Kind() Kind { return KindFunctionLiteral }
func (*FunctionLiteral) exprNode()  {}

// ArrowFunction has either a block Body or an expression body Expr.
type ArrowFunction struct {
	Position
	Signature
	Body *BlockStmt
	Expr Expression
}

func (*ArrowFunction) Kind() Kind { return KindArrowFunction }
func (*ArrowFunction) exprNode()  {}

type FunctionDecl struct {
	Position
	Name *Identifier
	Signature
	Body *BlockStmt
}

func (*FunctionDecl) Kind() Kind { return KindFunctionDecl }
func (*FunctionDecl) stmtNode()  {}

// ========== statements ==========

type ExpressionStmt struct {
	Position
	Expr Expression
}

func (*ExpressionStmt) Kind() Kind { return KindExpressionStmt }
func (*ExpressionStmt) stmtNode()  {}

type BlockStmt struct {
	Position
	Body []Statement
}

func (*BlockStmt) Kind() Kind { return KindBlock }
func (*BlockStmt) stmtNode()  {}

// IfStmt shares the test/consequent/alternate shape of ConditionalExpr.
type IfStmt struct {
	Position
	Test       Expression
	Consequent Statement
	Alternate  Statement // may be nil
}

func (*IfStmt) Kind() Kind { return KindIf }
func (*IfStmt) stmtNode()  {}

type VarDecl struct {
	Position
	DeclKind     string // "var" | "let" | "const"
	Declarations []*VarDeclarator
}

func (*VarDecl) Kind() Kind { return KindVarDecl }
func (*VarDecl) stmtNode()  {}

type VarDeclarator struct {
	Position
	ID   *Identifier
	Init Expression // may be nil
}

func (*VarDeclarator) Kind() Kind { return KindVarDeclarator }

type ReturnStmt struct {
	Position
	Argument Expression // may be nil
}

func (*ReturnStmt) Kind() Kind { return KindReturn }
func (*ReturnStmt) stmtNode()  {}
