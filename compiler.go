package evaljs

import (
	"fmt"

	"github.com/linkxzhou/evaljs/ast"
)

// Compiler turns a function or arrow literal into a callable, closed over
// env. The result is what the literal evaluates to, so it can be handed to
// native higher-order functions.
type Compiler interface {
	Compile(in *Interpreter, node ast.Expression, env *Environment) (*Function, error)
}

// closureCompiler builds interpreted closures. In dynamic scope mode the
// closure holds a flat copy of env taken at creation time, in lexical mode
// it holds env itself.
type closureCompiler struct{}

func (closureCompiler) Compile(in *Interpreter, node ast.Expression, env *Environment) (*Function, error) {
	captured := env
	if in.cfg.scope == ScopeDynamic {
		captured = NewEnvironment(env.Snapshot())
	}
	fn := &Function{node: node, env: captured, captured: true, interp: in}
	switch n := node.(type) {
	case *ast.FunctionLiteral:
		if n.Name != nil {
			fn.Name = n.Name.Name
		}
		fn.sig = n.Signature
		fn.body = n.Body
	case *ast.ArrowFunction:
		fn.sig = n.Signature
		fn.body = n.Body
		fn.expr = n.Expr
		fn.arrow = true
	default:
		return nil, fmt.Errorf("compile: unsupported node %s", node.Kind())
	}
	return fn, nil
}

// declare builds the interpreted function for a declaration. It is bound
// to env rather than captured, so dynamic mode resolves free names at the
// call site.
func (in *Interpreter) declare(decl *ast.FunctionDecl, env *Environment) *Function {
	return &Function{
		Name:   decl.Name.Name,
		node:   decl,
		sig:    decl.Signature,
		body:   decl.Body,
		env:    env,
		interp: in,
	}
}
