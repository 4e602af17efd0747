package evaljs

import (
	"github.com/linkxzhou/evaljs/ast"
)

// resolveCallee evaluates a callee. For a member callee the object is
// evaluated once and becomes the receiver; otherwise the receiver is the
// callee itself.
func (in *Interpreter) resolveCallee(callee ast.Expression, env *Environment) (fn, this Value, err error) {
	if m, ok := callee.(*ast.MemberExpr); ok {
		obj, key, err := in.memberTarget(m, env)
		if err != nil || obj.failed() || key.failed() {
			return failure, failure, err
		}
		return in.readMember(obj, ToString(key), m.Computed), obj, nil
	}
	fn, err = in.eval(callee, env)
	if err != nil || fn.failed() {
		return failure, failure, err
	}
	return fn, fn, nil
}

// evalArgs evaluates call arguments in order, expanding spread arguments.
// ok is false if any argument cannot be resolved.
func (in *Interpreter) evalArgs(exprs []ast.Expression, env *Environment) (args []Value, ok bool, err error) {
	args = make([]Value, 0, len(exprs))
	for _, e := range exprs {
		if spread, isSpread := e.(*ast.SpreadElement); isSpread {
			v, err := in.eval(spread.Argument, env)
			if err != nil || v.failed() {
				return nil, false, err
			}
			items, ok := spreadItems(v)
			if !ok {
				in.log.Debug("[evalArgs] value is not spreadable", "type", v.Type.String())
				return nil, false, nil
			}
			args = append(args, items...)
			continue
		}
		v, err := in.eval(e, env)
		if err != nil || v.failed() {
			return nil, false, err
		}
		args = append(args, v)
	}
	return args, true, nil
}

func (in *Interpreter) evalCall(n *ast.CallExpr, env *Environment) (Value, error) {
	callee, this, err := in.resolveCallee(n.Callee, env)
	if err != nil || callee.failed() {
		return failure, err
	}
	args, ok, err := in.evalArgs(n.Arguments, env)
	if err != nil || !ok {
		return failure, err
	}
	return in.callValue(callee, this, args, env)
}

// callValue invokes callee. Native errors are returned unchanged.
func (in *Interpreter) callValue(callee, this Value, args []Value, env *Environment) (Value, error) {
	if !callee.IsCallable() {
		in.log.Debug("[callValue] value is not a function", "type", callee.Type.String())
		return failure, nil
	}
	fn := callee.Func
	if fn.Native != nil {
		v, err := fn.Native(this, args)
		if err != nil {
			return failure, err
		}
		return v, nil
	}
	if this.Type == TypeFunction && this.Func == fn {
		// a plain call has no receiver
		this = Undefined()
	}
	v, _, err := in.invoke(fn, this, args, env)
	return v, err
}

// callScope builds the environment for one call of fn. Compiled closures
// and lexical mode use a child of the defining environment. Declarations in
// dynamic mode start from a flat copy of the caller's environment.
func (in *Interpreter) callScope(fn *Function, callEnv *Environment) *Environment {
	switch {
	case fn.captured || in.cfg.scope == ScopeLexical:
		return fn.env.Child()
	case callEnv != nil:
		return NewEnvironment(callEnv.Snapshot())
	default:
		return NewEnvironment(fn.env.Snapshot())
	}
}

// invoke runs an interpreted function. returned reports whether the body
// ended with an explicit return.
func (in *Interpreter) invoke(fn *Function, this Value, args []Value, callEnv *Environment) (result Value, returned bool, err error) {
	if in.depth >= in.cfg.maxDepth {
		return failure, false, ErrMaxDepth
	}
	in.depth++
	defer func() { in.depth-- }()

	scope := in.callScope(fn, callEnv)
	if lit, ok := fn.node.(*ast.FunctionLiteral); ok && lit.Name != nil {
		scope.Declare(lit.Name.Name, FunctionValue(fn))
	}
	if !fn.arrow {
		scope.Declare("this", this)
	}
	for i, p := range fn.sig.Params {
		v := Null()
		if i < len(args) {
			v = args[i]
		}
		scope.Declare(p.Name, v)
	}
	if fn.sig.Rest != nil {
		rest := []Value{}
		if len(args) > len(fn.sig.Params) {
			rest = append(rest, args[len(fn.sig.Params):]...)
		}
		scope.Declare(fn.sig.Rest.Name, NewArray(rest...))
	}

	if fn.expr != nil {
		v, err := in.eval(fn.expr, scope)
		return v, false, err
	}
	if fn.body == nil {
		return Undefined(), false, nil
	}
	v, err := in.execStatements(fn.body.Body, scope)
	if rv, ok := asReturn(err); ok {
		return rv, true, nil
	}
	return v, false, err
}

// evalNew constructs an instance. Arguments that cannot be resolved are
// passed as undefined.
func (in *Interpreter) evalNew(n *ast.NewExpr, env *Environment) (Value, error) {
	ctor, err := in.eval(n.Callee, env)
	if err != nil || ctor.failed() {
		return failure, err
	}
	args := make([]Value, 0, len(n.Arguments))
	for _, e := range n.Arguments {
		if spread, ok := e.(*ast.SpreadElement); ok {
			v, err := in.eval(spread.Argument, env)
			if err != nil {
				return failure, err
			}
			items, _ := spreadItems(v)
			args = append(args, items...)
			continue
		}
		v, err := in.eval(e, env)
		if err != nil {
			return failure, err
		}
		args = append(args, v.orUndefined())
	}
	if !ctor.IsCallable() {
		in.log.Debug("[evalNew] value is not a constructor", "type", ctor.Type.String())
		return failure, nil
	}

	fn := ctor.Func
	if fn.Construct != nil {
		v, err := fn.Construct(args)
		if err != nil {
			return failure, err
		}
		return v, nil
	}
	instance := ObjectValue(NewObject())
	if fn.Native != nil {
		v, err := fn.Native(instance, args)
		if err != nil {
			return failure, err
		}
		if isConstructedObject(v) {
			return v, nil
		}
		return instance, nil
	}
	if fn.arrow {
		in.log.Debug("[evalNew] arrow function is not a constructor", "name", fn.Name)
		return failure, nil
	}
	v, returned, err := in.invoke(fn, instance, args, env)
	if err != nil {
		return failure, err
	}
	if returned && isConstructedObject(v) {
		return v, nil
	}
	return instance, nil
}

func isConstructedObject(v Value) bool {
	switch v.Type {
	case TypeObject, TypeArray, TypeHost, TypeFunction:
		return true
	}
	return false
}
