package evaljs

import (
	"strings"

	"github.com/linkxzhou/evaljs/ast"
)

func (in *Interpreter) evalUnary(n *ast.UnaryExpr, env *Environment) (Value, error) {
	x, err := in.eval(n.X, env)
	if err != nil || x.failed() {
		return failure, err
	}
	v, ok := UnaryOp(n.Op, x)
	if !ok {
		in.log.Debug("[evalUnary] unsupported operator", "op", n.Op)
		return failure, nil
	}
	return v, nil
}

func (in *Interpreter) evalBinary(n *ast.BinaryExpr, env *Environment) (Value, error) {
	left, err := in.eval(n.Left, env)
	if err != nil || left.failed() {
		return failure, err
	}
	right, err := in.eval(n.Right, env)
	if err != nil || right.failed() {
		return failure, err
	}
	v, ok := BinaryOp(n.Op, left, right)
	if !ok {
		in.log.Debug("[evalBinary] unsupported operator", "op", n.Op)
		return failure, nil
	}
	return v, nil
}

// evalLogical short-circuits: a falsy left side of && yields false, a truthy
// left side of || yields itself, and ?? keeps a non-nullish left side.
func (in *Interpreter) evalLogical(n *ast.LogicalExpr, env *Environment) (Value, error) {
	left, err := in.eval(n.Left, env)
	if err != nil || left.failed() {
		return failure, err
	}
	switch n.Op {
	case "&&":
		if !Truthy(left) {
			return NewBool(false), nil
		}
	case "||":
		if Truthy(left) {
			return left, nil
		}
	case "??":
		if !left.IsNullish() {
			return left, nil
		}
	default:
		in.log.Debug("[evalLogical] unsupported operator", "op", n.Op)
		return failure, nil
	}
	right, err := in.eval(n.Right, env)
	if err != nil || right.failed() {
		return failure, err
	}
	return right, nil
}

// evalConditional serves both ?: and if. A missing alternate yields
// undefined.
func (in *Interpreter) evalConditional(test ast.Expression, cons, alt ast.Node, env *Environment) (Value, error) {
	t, err := in.eval(test, env)
	if err != nil || t.failed() {
		return failure, err
	}
	if Truthy(t) {
		return in.eval(cons, env)
	}
	if alt == nil {
		return Undefined(), nil
	}
	return in.eval(alt, env)
}

// evalArray never fails as a whole: an element that cannot be resolved
// becomes undefined in its slot.
func (in *Interpreter) evalArray(n *ast.ArrayLiteral, env *Environment) (Value, error) {
	elems := make([]Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		if el == nil {
			elems = append(elems, Undefined())
			continue
		}
		if spread, ok := el.(*ast.SpreadElement); ok {
			v, err := in.eval(spread.Argument, env)
			if err != nil {
				return failure, err
			}
			items, ok := spreadItems(v)
			if !ok {
				in.log.Debug("[evalArray] value is not spreadable", "type", v.Type.String())
			}
			elems = append(elems, items...)
			continue
		}
		v, err := in.eval(el, env)
		if err != nil {
			return failure, err
		}
		elems = append(elems, v.orUndefined())
	}
	return NewArray(elems...), nil
}

// spreadItems expands arrays and strings.
func spreadItems(v Value) ([]Value, bool) {
	switch v.Type {
	case TypeArray:
		return v.Array.Elems, true
	case TypeString:
		var out []Value
		for _, r := range v.Str {
			out = append(out, NewString(string(r)))
		}
		return out, true
	}
	return nil, false
}

// evalObject keeps every property: a value that cannot be resolved is
// stored as undefined.
func (in *Interpreter) evalObject(n *ast.ObjectLiteral, env *Environment) (Value, error) {
	obj := NewObject()
	for _, prop := range n.Properties {
		key, err := in.propertyKey(prop, env)
		if err != nil {
			return failure, err
		}
		v, err := in.eval(prop.Value, env)
		if err != nil {
			return failure, err
		}
		obj.Set(key, v.orUndefined())
	}
	return ObjectValue(obj), nil
}

func (in *Interpreter) propertyKey(prop *ast.Property, env *Environment) (string, error) {
	if prop.Computed {
		k, err := in.eval(prop.Key, env)
		if err != nil {
			return "", err
		}
		return ToString(k), nil
	}
	switch k := prop.Key.(type) {
	case *ast.Identifier:
		return k.Name, nil
	case *ast.Literal:
		return ToString(literalValue(k)), nil
	}
	return ToString(Undefined()), nil
}

// evalTemplate concatenates chunks and interpolations. An interpolation
// that cannot be resolved renders as "undefined".
func (in *Interpreter) evalTemplate(n *ast.TemplateLiteral, env *Environment) (Value, error) {
	var sb strings.Builder
	for i, q := range n.Quasis {
		sb.WriteString(q.Cooked)
		if i < len(n.Expressions) {
			v, err := in.eval(n.Expressions[i], env)
			if err != nil {
				return failure, err
			}
			sb.WriteString(ToString(v.orUndefined()))
		}
	}
	return NewString(sb.String()), nil
}

// evalTaggedTemplate calls tag(chunks, ...values).
func (in *Interpreter) evalTaggedTemplate(n *ast.TaggedTemplate, env *Environment) (Value, error) {
	callee, this, err := in.resolveCallee(n.Tag, env)
	if err != nil || callee.failed() {
		return failure, err
	}
	chunks := make([]Value, len(n.Quasi.Quasis))
	for i, q := range n.Quasi.Quasis {
		chunks[i] = NewString(q.Cooked)
	}
	args := []Value{NewArray(chunks...)}
	for _, e := range n.Quasi.Expressions {
		v, err := in.eval(e, env)
		if err != nil {
			return failure, err
		}
		args = append(args, v.orUndefined())
	}
	return in.callValue(callee, this, args, env)
}

// evalAssignment evaluates the right side first, then writes through a
// reference resolved once, so compound forms read and write the same slot.
func (in *Interpreter) evalAssignment(n *ast.AssignmentExpr, env *Environment) (Value, error) {
	right, err := in.eval(n.Right, env)
	if err != nil || right.failed() {
		return failure, err
	}
	ref, ok, err := in.resolveRef(n.Left, env)
	if err != nil || !ok {
		return failure, err
	}
	if n.Operator == "=" {
		return in.store(ref, right), nil
	}
	op := strings.TrimSuffix(n.Operator, "=")
	cur := in.load(ref)
	if cur.failed() || cur.IsUndefined() {
		cur = NewNumber(0)
	}
	v, ok := BinaryOp(op, cur, right)
	if !ok {
		in.log.Debug("[evalAssignment] unsupported operator", "op", n.Operator)
		return failure, nil
	}
	return in.store(ref, v), nil
}

// evalUpdate returns the value after the increment or decrement for both
// prefix and postfix forms.
func (in *Interpreter) evalUpdate(n *ast.UpdateExpr, env *Environment) (Value, error) {
	ref, ok, err := in.resolveRef(n.Argument, env)
	if err != nil || !ok {
		return failure, err
	}
	cur := in.load(ref)
	if cur.failed() {
		return failure, nil
	}
	delta := 1.0
	if n.Op == "--" {
		delta = -1
	}
	return in.store(ref, NewNumber(ToNumber(cur)+delta)), nil
}
