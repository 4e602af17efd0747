// Package evaljs is a tree-walking interpreter for a small JavaScript-like
// language. Evaluation runs against a caller-supplied Environment and
// mutates it in place.
package evaljs

import (
	"fmt"
	"log/slog"

	"github.com/linkxzhou/evaljs/ast"
)

// Version of the evaljs module.
const Version = "0.1.0"

// Interpreter evaluates syntax trees. It is not safe for concurrent use.
type Interpreter struct {
	cfg   *config
	log   *slog.Logger
	depth int
}

// New creates an Interpreter. Options are applied in order and the result
// is validated.
func New(opts ...Option) (*Interpreter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("apply option: %w", err)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Interpreter{cfg: cfg, log: cfg.logger}, nil
}

// Scope returns the configured scope mode.
func (in *Interpreter) Scope() ScopeMode { return in.cfg.scope }

// Eval evaluates one node against env. Unresolvable results come back as
// undefined; err carries only structural errors. A return statement yields
// its value.
func (in *Interpreter) Eval(node ast.Node, env *Environment) (Value, error) {
	if env == nil {
		env = NewEnvironment(nil)
	}
	v, err := in.eval(node, env)
	if rv, ok := asReturn(err); ok {
		return rv.orUndefined(), nil
	}
	return v.orUndefined(), err
}

// eval is the dispatch core. Every evaluator recurses through it.
func (in *Interpreter) eval(node ast.Node, env *Environment) (Value, error) {
	switch n := node.(type) {
	case nil:
		return Undefined(), nil

	// expressions
	case *ast.Literal:
		return literalValue(n), nil
	case *ast.Identifier:
		return env.Lookup(n.Name), nil
	case *ast.ThisExpr:
		return env.Lookup("this"), nil
	case *ast.UnaryExpr:
		return in.evalUnary(n, env)
	case *ast.BinaryExpr:
		return in.evalBinary(n, env)
	case *ast.LogicalExpr:
		return in.evalLogical(n, env)
	case *ast.ConditionalExpr:
		return in.evalConditional(n.Test, n.Consequent, n.Alternate, env)
	case *ast.AssignmentExpr:
		return in.evalAssignment(n, env)
	case *ast.UpdateExpr:
		return in.evalUpdate(n, env)
	case *ast.ArrayLiteral:
		return in.evalArray(n, env)
	case *ast.ObjectLiteral:
		return in.evalObject(n, env)
	case *ast.MemberExpr:
		return in.evalMember(n, env)
	case *ast.CallExpr:
		return in.evalCall(n, env)
	case *ast.NewExpr:
		return in.evalNew(n, env)
	case *ast.TemplateLiteral:
		return in.evalTemplate(n, env)
	case *ast.TemplateElement:
		return NewString(n.Cooked), nil
	case *ast.TaggedTemplate:
		return in.evalTaggedTemplate(n, env)
	case *ast.FunctionLiteral, *ast.ArrowFunction:
		fn, err := in.cfg.compiler.Compile(in, n.(ast.Expression), env)
		if err != nil {
			return failure, err
		}
		return FunctionValue(fn), nil

	// statements
	case *ast.Program:
		return in.execStatements(n.Body, env)
	case *ast.ExpressionStmt:
		return in.eval(n.Expr, env)
	case *ast.BlockStmt:
		return in.execStatements(n.Body, env)
	case *ast.IfStmt:
		return in.evalConditional(n.Test, n.Consequent, n.Alternate, env)
	case *ast.VarDecl:
		return in.evalVarDecl(n, env)
	case *ast.VarDeclarator:
		return in.evalDeclarator(n, env)
	case *ast.FunctionDecl:
		in.registerFunction(n, env)
		return Undefined(), nil
	case *ast.ReturnStmt:
		return in.evalReturn(n, env)
	}

	in.log.Warn("[eval] unsupported node", "kind", node.Kind().String())
	return failure, nil
}

func literalValue(n *ast.Literal) Value {
	switch v := n.Value.(type) {
	case nil:
		return Null()
	case bool:
		return NewBool(v)
	case float64:
		return NewNumber(v)
	case string:
		return NewString(v)
	}
	return FromGo(n.Value)
}
