package evaljs

import (
	"strconv"
	"unicode/utf8"

	"github.com/linkxzhou/evaljs/ast"
)

// reference is an assignable location: a binding or an object slot.
type reference struct {
	env  *Environment
	name string

	member   bool
	computed bool
	obj      Value
	key      string
}

// resolveRef evaluates the parts of an assignment target once. ok is false
// when the target cannot be resolved.
func (in *Interpreter) resolveRef(target ast.Expression, env *Environment) (reference, bool, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		return reference{env: env, name: t.Name}, true, nil
	case *ast.MemberExpr:
		obj, key, err := in.memberTarget(t, env)
		if err != nil || obj.failed() || key.failed() {
			return reference{}, false, err
		}
		return reference{member: true, computed: t.Computed, obj: obj, key: ToString(key)}, true, nil
	}
	in.log.Debug("[resolveRef] invalid assignment target", "kind", target.Kind().String())
	return reference{}, false, nil
}

func (in *Interpreter) load(ref reference) Value {
	if !ref.member {
		return ref.env.Lookup(ref.name)
	}
	return in.readMember(ref.obj, ref.key, ref.computed)
}

// store writes v and returns it, or the failure sentinel if the slot does
// not accept writes.
func (in *Interpreter) store(ref reference, v Value) Value {
	if !ref.member {
		ref.env.Assign(ref.name, v)
		return v
	}
	if !in.setProperty(ref.obj, ref.key, v) {
		in.log.Debug("[store] cannot set property", "type", ref.obj.Type.String(), "name", ref.key)
		return failure
	}
	return v
}

func (in *Interpreter) evalMember(n *ast.MemberExpr, env *Environment) (Value, error) {
	obj, key, err := in.memberTarget(n, env)
	if err != nil || obj.failed() || key.failed() {
		return failure, err
	}
	return in.readMember(obj, ToString(key), n.Computed), nil
}

// memberTarget evaluates the object and the property key of n.
func (in *Interpreter) memberTarget(n *ast.MemberExpr, env *Environment) (obj, key Value, err error) {
	obj, err = in.eval(n.Object, env)
	if err != nil || obj.failed() {
		return failure, failure, err
	}
	if !n.Computed {
		id, ok := n.Property.(*ast.Identifier)
		if !ok {
			return failure, failure, nil
		}
		return obj, NewString(id.Name), nil
	}
	key, err = in.eval(n.Property, env)
	if err != nil || key.failed() {
		return failure, failure, err
	}
	return obj, key, nil
}

// readMember applies the access rules: functions have no readable members,
// dot access through null or undefined fails, and computed access through
// any falsy value fails.
func (in *Interpreter) readMember(obj Value, key string, computed bool) Value {
	if obj.Type == TypeFunction {
		in.log.Debug("[readMember] member access on function", "name", key)
		return failure
	}
	if (computed && !Truthy(obj)) || obj.IsNullish() {
		in.log.Debug("[readMember] cannot read property", "type", obj.Type.String(), "name", key)
		return failure
	}
	return in.getProperty(obj, key)
}

// getProperty reads a member without the access checks. Missing members are
// undefined.
func (in *Interpreter) getProperty(obj Value, key string) Value {
	switch obj.Type {
	case TypeObject:
		v, _ := obj.Object.Get(key)
		return v
	case TypeArray:
		elems := obj.Array.Elems
		if key == "length" {
			return NewNumber(float64(len(elems)))
		}
		if i, ok := arrayIndex(key); ok {
			if i < len(elems) {
				return elems[i]
			}
			return Undefined()
		}
		if fn, ok := in.cfg.proto.Array[key]; ok {
			return NewNativeFunction(key, fn)
		}
	case TypeString:
		if key == "length" {
			return NewNumber(float64(utf8.RuneCountInString(obj.Str)))
		}
		if i, ok := arrayIndex(key); ok {
			runes := []rune(obj.Str)
			if i < len(runes) {
				return NewString(string(runes[i]))
			}
			return Undefined()
		}
		if fn, ok := in.cfg.proto.String[key]; ok {
			return NewNativeFunction(key, fn)
		}
	case TypeHost:
		if g, ok := obj.Host.(PropertyGetter); ok {
			if v, ok := g.GetProperty(key); ok {
				return v
			}
		}
	}
	return Undefined()
}

// setProperty writes a member. It reports false when obj does not accept
// the write.
func (in *Interpreter) setProperty(obj Value, key string, v Value) bool {
	switch obj.Type {
	case TypeObject:
		obj.Object.Set(key, v)
		return true
	case TypeArray:
		arr := obj.Array
		if key == "length" {
			n := ToNumber(v)
			if n < 0 || n > maxArrayLength || n != float64(int(n)) {
				return false
			}
			resizeArray(arr, int(n))
			return true
		}
		i, ok := arrayIndex(key)
		if !ok || i >= maxArrayLength {
			return false
		}
		if i >= len(arr.Elems) {
			resizeArray(arr, i+1)
		}
		arr.Elems[i] = v
		return true
	case TypeHost:
		if s, ok := obj.Host.(PropertySetter); ok {
			return s.SetProperty(key, v)
		}
	}
	return false
}

// maxArrayLength caps growth through index or length writes.
const maxArrayLength = 1 << 24

func resizeArray(arr *Array, n int) {
	if n <= len(arr.Elems) {
		arr.Elems = arr.Elems[:n]
		return
	}
	for len(arr.Elems) < n {
		arr.Elems = append(arr.Elems, Undefined())
	}
}

// arrayIndex parses a canonical non-negative integer key such as "0" or
// "12", rejecting forms like "01" or "1.0".
func arrayIndex(key string) (int, bool) {
	if key == "" || key[0] < '0' || key[0] > '9' || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
