package stdlib

import (
	"math"
	"strconv"
	"strings"

	"github.com/linkxzhou/evaljs"
)

func objectObject() evaljs.Value {
	return evaljs.ObjectValue(object(map[string]evaljs.NativeFunc{
		"keys": func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			return entriesOf(arg(args, 0), func(k string, _ evaljs.Value) evaljs.Value {
				return evaljs.NewString(k)
			}), nil
		},
		"values": func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			return entriesOf(arg(args, 0), func(_ string, v evaljs.Value) evaljs.Value {
				return v
			}), nil
		},
		"entries": func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			return entriesOf(arg(args, 0), func(k string, v evaljs.Value) evaljs.Value {
				return evaljs.NewArray(evaljs.NewString(k), v)
			}), nil
		},
		"assign": objectAssign,
	}))
}

// entriesOf maps each own key of an object, or each index of an array, into
// a new array. Other values give an empty array.
func entriesOf(v evaljs.Value, f func(k string, v evaljs.Value) evaljs.Value) evaljs.Value {
	out := evaljs.NewArray()
	switch v.Type {
	case evaljs.TypeObject:
		for _, k := range v.Object.Keys() {
			val, _ := v.Object.Get(k)
			out.Array.Elems = append(out.Array.Elems, f(k, val))
		}
	case evaljs.TypeArray:
		for i, val := range v.Array.Elems {
			out.Array.Elems = append(out.Array.Elems, f(strconv.Itoa(i), val))
		}
	}
	return out
}

// objectAssign copies own properties of each source onto the target object
// and returns the target.
func objectAssign(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
	target := arg(args, 0)
	if target.Type != evaljs.TypeObject {
		return target, nil
	}
	for _, src := range args[1:] {
		if src.Type != evaljs.TypeObject {
			continue
		}
		for _, k := range src.Object.Keys() {
			v, _ := src.Object.Get(k)
			target.Object.Set(k, v)
		}
	}
	return target, nil
}

func arrayObject() evaljs.Value {
	return evaljs.ObjectValue(object(map[string]evaljs.NativeFunc{
		"isArray": func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			return evaljs.NewBool(arg(args, 0).Type == evaljs.TypeArray), nil
		},
		"of": func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			return evaljs.NewArray(append([]evaljs.Value(nil), args...)...), nil
		},
	}))
}

// parseInt reads the longest integer prefix in the given radix. A missing
// radix accepts a 0x prefix.
func parseInt(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
	s := strings.TrimSpace(evaljs.ToString(arg(args, 0)))
	radix := 10
	if r := arg(args, 1); !r.IsUndefined() {
		radix = int(evaljs.ToInt32(r))
		if radix == 0 {
			radix = 10
		}
	}
	if radix < 2 || radix > 36 {
		return evaljs.NaN(), nil
	}

	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if (radix == 10 || radix == 16) && len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		if r := arg(args, 1); r.IsUndefined() || radix == 16 {
			radix = 16
			s = s[2:]
		}
	}

	n, digits := 0.0, 0
	for _, c := range s {
		d := digitValue(c)
		if d < 0 || d >= radix {
			break
		}
		n = n*float64(radix) + float64(d)
		digits++
	}
	if digits == 0 {
		return evaljs.NaN(), nil
	}
	if neg {
		n = -n
	}
	return evaljs.NewNumber(n), nil
}

func digitValue(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10
	}
	return -1
}

// parseFloat reads the longest decimal prefix, including Infinity.
func parseFloat(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
	s := strings.TrimSpace(evaljs.ToString(arg(args, 0)))
	end := floatPrefix(s)
	if end == 0 {
		return evaljs.NaN(), nil
	}
	prefix := s[:end]
	switch strings.TrimLeft(prefix, "+-") {
	case "Infinity":
		if prefix[0] == '-' {
			return evaljs.NewNumber(math.Inf(-1)), nil
		}
		return evaljs.NewNumber(math.Inf(1)), nil
	}
	n, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return evaljs.NaN(), nil
		}
	}
	return evaljs.NewNumber(n), nil
}

// floatPrefix returns the length of the longest prefix of s that parses as
// a decimal literal, or zero.
func floatPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		return i + len("Infinity")
	}
	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	intDigits := i - start
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		fracDigits = j - i - 1
		if intDigits > 0 || fracDigits > 0 {
			i = j
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNaN(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
	return evaljs.NewBool(math.IsNaN(evaljs.ToNumber(arg(args, 0)))), nil
}

func isFinite(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
	n := evaljs.ToNumber(arg(args, 0))
	return evaljs.NewBool(!math.IsNaN(n) && !math.IsInf(n, 0)), nil
}

func toStringFunc(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
	if len(args) == 0 {
		return evaljs.NewString(""), nil
	}
	return evaljs.NewString(evaljs.ToString(args[0])), nil
}

func toNumberFunc(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
	if len(args) == 0 {
		return evaljs.NewNumber(0), nil
	}
	return evaljs.NewNumber(evaljs.ToNumber(args[0])), nil
}

func toBooleanFunc(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
	return evaljs.NewBool(evaljs.Truthy(arg(args, 0))), nil
}
