package evaljs

import (
	"github.com/linkxzhou/evaljs/ast"
)

// NativeFunc is a host-provided callable. Errors it returns propagate out of
// the evaluation unchanged.
type NativeFunc func(this Value, args []Value) (Value, error)

// Function is a callable value: either a NativeFunc or an interpreted
// function built from a declaration, function literal or arrow.
type Function struct {
	Name   string
	Native NativeFunc

	// Construct, when set, handles new on this function.
	Construct func(args []Value) (Value, error)

	node  ast.Node
	sig   ast.Signature
	body  *ast.BlockStmt
	expr  ast.Expression
	arrow bool

	// env is the defining environment. captured marks closures from the
	// compiler, which always run in a child of env.
	env      *Environment
	captured bool
	interp   *Interpreter
}

// NewNativeFunction returns a function value backed by fn.
func NewNativeFunction(name string, fn NativeFunc) Value {
	return FunctionValue(&Function{Name: name, Native: fn})
}

// IsNative reports whether f is backed by Go code.
func (f *Function) IsNative() bool { return f.Native != nil }

// IsArrow reports whether f is an arrow function.
func (f *Function) IsArrow() bool { return f.arrow }

// Node returns the declaring syntax node of an interpreted function.
func (f *Function) Node() ast.Node { return f.node }

// Call invokes f with the given receiver and arguments. A result the
// interpreter could not resolve comes back as undefined.
func (f *Function) Call(this Value, args ...Value) (Value, error) {
	if f == nil {
		return Undefined(), ErrNotCallable
	}
	if f.Native != nil {
		v, err := f.Native(this, args)
		return v.orUndefined(), err
	}
	if f.interp == nil {
		return Undefined(), ErrNotCallable
	}
	v, _, err := f.interp.invoke(f, this, args, nil)
	return v.orUndefined(), err
}

// String renders interpreted functions as source.
func (f *Function) String() string {
	if f.node != nil {
		return ast.Format(f.node)
	}
	return "function " + f.Name + "() { [native code] }"
}
