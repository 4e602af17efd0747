package evaljs

import (
	"github.com/linkxzhou/evaljs/ast"
)

// execStatements hoists function declarations, then runs stmts in order in
// env. It stops at the first statement that cannot be resolved. A return
// statement surfaces as a *returnSignal error.
func (in *Interpreter) execStatements(stmts []ast.Statement, env *Environment) (Value, error) {
	in.hoist(stmts, env)
	result := Undefined()
	for _, s := range stmts {
		v, err := in.eval(s, env)
		if err != nil {
			return failure, err
		}
		if v.failed() {
			return failure, nil
		}
		result = v
	}
	return result, nil
}

// hoist registers every function declaration of a statement list before
// any of its statements run.
func (in *Interpreter) hoist(stmts []ast.Statement, env *Environment) {
	for _, s := range stmts {
		if decl, ok := s.(*ast.FunctionDecl); ok {
			in.registerFunction(decl, env)
		}
	}
}

// registerFunction binds decl under its name. A binding already made for
// the same node by hoisting is kept.
func (in *Interpreter) registerFunction(decl *ast.FunctionDecl, env *Environment) {
	name := decl.Name.Name
	if cur, ok := env.vars[name]; ok && cur.IsCallable() && cur.Func.node == ast.Node(decl) {
		return
	}
	in.log.Debug("[registerFunction] declare", "name", name)
	env.Declare(name, FunctionValue(in.declare(decl, env)))
}

// evalVarDecl returns the value of the last declarator.
func (in *Interpreter) evalVarDecl(n *ast.VarDecl, env *Environment) (Value, error) {
	result := Undefined()
	for _, d := range n.Declarations {
		v, err := in.evalDeclarator(d, env)
		if err != nil || v.failed() {
			return failure, err
		}
		result = v
	}
	return result, nil
}

// evalDeclarator binds the initializer value, or undefined, in the current
// scope. An initializer that cannot be resolved leaves the name unbound.
func (in *Interpreter) evalDeclarator(d *ast.VarDeclarator, env *Environment) (Value, error) {
	v := Undefined()
	if d.Init != nil {
		var err error
		v, err = in.eval(d.Init, env)
		if err != nil || v.failed() {
			return failure, err
		}
	}
	env.Declare(d.ID.Name, v)
	return v, nil
}

func (in *Interpreter) evalReturn(n *ast.ReturnStmt, env *Environment) (Value, error) {
	v := Undefined()
	if n.Argument != nil {
		var err error
		v, err = in.eval(n.Argument, env)
		if err != nil || v.failed() {
			return failure, err
		}
	}
	return failure, &returnSignal{value: v}
}
