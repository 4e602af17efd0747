package stdlib

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/linkxzhou/evaljs"
)

// callback returns args[i] as a function, or an error naming the method.
func callback(method string, args []evaljs.Value, i int) (*evaljs.Function, error) {
	fn := arg(args, i)
	if !fn.IsCallable() {
		return nil, fmt.Errorf("%s: %s is not a function", method, fn.Inspect())
	}
	return fn.Func, nil
}

// relIndex resolves a possibly negative index against length n, clamped to
// [0, n]. Undefined gives def.
func relIndex(v evaljs.Value, n, def int) int {
	if v.IsUndefined() {
		return def
	}
	f := evaljs.ToNumber(v)
	if math.IsNaN(f) {
		return 0
	}
	f = math.Trunc(f)
	if f < 0 {
		f += float64(n)
	}
	switch {
	case f < 0:
		return 0
	case f > float64(n):
		return n
	}
	return int(f)
}

// arrayReceiver rejects calls whose this is not an array, as happens when a
// method is detached from its array.
func arrayReceiver(name string, fn evaljs.NativeFunc) evaljs.NativeFunc {
	return func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
		if this.Type != evaljs.TypeArray || this.Array == nil {
			return evaljs.Undefined(), fmt.Errorf("%s: receiver is %s, not an array", name, this.TypeOf())
		}
		return fn(this, args)
	}
}

func arrayMethods() map[string]evaljs.NativeFunc {
	methods := map[string]evaljs.NativeFunc{
		"push": func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			this.Array.Elems = append(this.Array.Elems, args...)
			return evaljs.NewNumber(float64(len(this.Array.Elems))), nil
		},
		"pop": func(this evaljs.Value, _ []evaljs.Value) (evaljs.Value, error) {
			elems := this.Array.Elems
			if len(elems) == 0 {
				return evaljs.Undefined(), nil
			}
			last := elems[len(elems)-1]
			this.Array.Elems = elems[:len(elems)-1]
			return last, nil
		},
		"shift": func(this evaljs.Value, _ []evaljs.Value) (evaljs.Value, error) {
			elems := this.Array.Elems
			if len(elems) == 0 {
				return evaljs.Undefined(), nil
			}
			first := elems[0]
			this.Array.Elems = append([]evaljs.Value(nil), elems[1:]...)
			return first, nil
		},
		"join": func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			sep := ","
			if s := arg(args, 0); !s.IsUndefined() {
				sep = evaljs.ToString(s)
			}
			parts := make([]string, len(this.Array.Elems))
			for i, e := range this.Array.Elems {
				if !e.IsNullish() {
					parts[i] = evaljs.ToString(e)
				}
			}
			return evaljs.NewString(strings.Join(parts, sep)), nil
		},
		"slice": func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			n := len(this.Array.Elems)
			start, end := relIndex(arg(args, 0), n, 0), relIndex(arg(args, 1), n, n)
			if start >= end {
				return evaljs.NewArray(), nil
			}
			return evaljs.NewArray(append([]evaljs.Value(nil), this.Array.Elems[start:end]...)...), nil
		},
		"indexOf": func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			for i, e := range this.Array.Elems {
				if evaljs.StrictEquals(e, arg(args, 0)) {
					return evaljs.NewNumber(float64(i)), nil
				}
			}
			return evaljs.NewNumber(-1), nil
		},
		"includes": func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			target := arg(args, 0)
			for _, e := range this.Array.Elems {
				if evaljs.StrictEquals(e, target) || (isNaNValue(e) && isNaNValue(target)) {
					return evaljs.NewBool(true), nil
				}
			}
			return evaljs.NewBool(false), nil
		},
		"map": func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			fn, err := callback("map", args, 0)
			if err != nil {
				return evaljs.Undefined(), err
			}
			out := make([]evaljs.Value, len(this.Array.Elems))
			for i, e := range this.Array.Elems {
				if out[i], err = fn.Call(evaljs.Undefined(), e, evaljs.NewNumber(float64(i)), this); err != nil {
					return evaljs.Undefined(), err
				}
			}
			return evaljs.NewArray(out...), nil
		},
		"filter": func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			fn, err := callback("filter", args, 0)
			if err != nil {
				return evaljs.Undefined(), err
			}
			out := evaljs.NewArray()
			for i, e := range this.Array.Elems {
				keep, err := fn.Call(evaljs.Undefined(), e, evaljs.NewNumber(float64(i)), this)
				if err != nil {
					return evaljs.Undefined(), err
				}
				if evaljs.Truthy(keep) {
					out.Array.Elems = append(out.Array.Elems, e)
				}
			}
			return out, nil
		},
		"forEach": func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			fn, err := callback("forEach", args, 0)
			if err != nil {
				return evaljs.Undefined(), err
			}
			for i, e := range this.Array.Elems {
				if _, err := fn.Call(evaljs.Undefined(), e, evaljs.NewNumber(float64(i)), this); err != nil {
					return evaljs.Undefined(), err
				}
			}
			return evaljs.Undefined(), nil
		},
		"reduce": func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			fn, err := callback("reduce", args, 0)
			if err != nil {
				return evaljs.Undefined(), err
			}
			elems := this.Array.Elems
			var acc evaljs.Value
			start := 0
			if len(args) > 1 {
				acc = args[1]
			} else {
				if len(elems) == 0 {
					return evaljs.Undefined(), fmt.Errorf("reduce of empty array with no initial value")
				}
				acc, start = elems[0], 1
			}
			for i := start; i < len(elems); i++ {
				if acc, err = fn.Call(evaljs.Undefined(), acc, elems[i], evaljs.NewNumber(float64(i)), this); err != nil {
					return evaljs.Undefined(), err
				}
			}
			return acc, nil
		},
		"concat": func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			out := append([]evaljs.Value(nil), this.Array.Elems...)
			for _, a := range args {
				if a.Type == evaljs.TypeArray {
					out = append(out, a.Array.Elems...)
				} else {
					out = append(out, a)
				}
			}
			return evaljs.NewArray(out...), nil
		},
		"reverse": func(this evaljs.Value, _ []evaljs.Value) (evaljs.Value, error) {
			elems := this.Array.Elems
			for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
				elems[i], elems[j] = elems[j], elems[i]
			}
			return this, nil
		},
	}
	for name, fn := range methods {
		methods[name] = arrayReceiver(name, fn)
	}
	return methods
}

func isNaNValue(v evaljs.Value) bool {
	return v.Type == evaljs.TypeNumber && math.IsNaN(v.Number)
}

func stringMethods() map[string]evaljs.NativeFunc {
	str := func(f func(s string, args []evaljs.Value) evaljs.Value) evaljs.NativeFunc {
		return func(this evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			return f(this.Str, args), nil
		}
	}
	return map[string]evaljs.NativeFunc{
		"toUpperCase": str(func(s string, _ []evaljs.Value) evaljs.Value {
			return evaljs.NewString(strings.ToUpper(s))
		}),
		"toLowerCase": str(func(s string, _ []evaljs.Value) evaljs.Value {
			return evaljs.NewString(strings.ToLower(s))
		}),
		"trim": str(func(s string, _ []evaljs.Value) evaljs.Value {
			return evaljs.NewString(strings.TrimSpace(s))
		}),
		"split": str(func(s string, args []evaljs.Value) evaljs.Value {
			sepArg := arg(args, 0)
			if sepArg.IsUndefined() {
				return evaljs.NewArray(evaljs.NewString(s))
			}
			parts := strings.Split(s, evaljs.ToString(sepArg))
			out := make([]evaljs.Value, len(parts))
			for i, p := range parts {
				out[i] = evaljs.NewString(p)
			}
			return evaljs.NewArray(out...)
		}),
		"indexOf": str(func(s string, args []evaljs.Value) evaljs.Value {
			i := strings.Index(s, evaljs.ToString(arg(args, 0)))
			if i < 0 {
				return evaljs.NewNumber(-1)
			}
			return evaljs.NewNumber(float64(utf8.RuneCountInString(s[:i])))
		}),
		"includes": str(func(s string, args []evaljs.Value) evaljs.Value {
			return evaljs.NewBool(strings.Contains(s, evaljs.ToString(arg(args, 0))))
		}),
		"startsWith": str(func(s string, args []evaljs.Value) evaljs.Value {
			return evaljs.NewBool(strings.HasPrefix(s, evaljs.ToString(arg(args, 0))))
		}),
		"endsWith": str(func(s string, args []evaljs.Value) evaljs.Value {
			return evaljs.NewBool(strings.HasSuffix(s, evaljs.ToString(arg(args, 0))))
		}),
		"slice": str(func(s string, args []evaljs.Value) evaljs.Value {
			runes := []rune(s)
			n := len(runes)
			start, end := relIndex(arg(args, 0), n, 0), relIndex(arg(args, 1), n, n)
			if start >= end {
				return evaljs.NewString("")
			}
			return evaljs.NewString(string(runes[start:end]))
		}),
		"charAt": str(func(s string, args []evaljs.Value) evaljs.Value {
			runes := []rune(s)
			i := int(evaljs.ToInt32(arg(args, 0)))
			if i < 0 || i >= len(runes) {
				return evaljs.NewString("")
			}
			return evaljs.NewString(string(runes[i]))
		}),
	}
}
