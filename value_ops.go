package evaljs

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Truthy reports the boolean value of v: undefined, null, false, 0, NaN and
// the empty string are falsy.
func Truthy(v Value) bool {
	switch v.Type {
	case TypeUndefined, TypeNull, typeFailure:
		return false
	case TypeBoolean:
		return v.Bool
	case TypeNumber:
		return v.Number != 0 && !math.IsNaN(v.Number)
	case TypeString:
		return v.Str != ""
	}
	return true
}

// ToNumber converts v to a number. Unparseable strings and undefined give NaN.
func ToNumber(v Value) float64 {
	switch v.Type {
	case TypeNull:
		return 0
	case TypeBoolean:
		if v.Bool {
			return 1
		}
		return 0
	case TypeNumber:
		return v.Number
	case TypeString:
		return stringToNumber(v.Str)
	case TypeArray:
		return stringToNumber(ToString(v))
	}
	return math.NaN()
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
		if base != 0 {
			u, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(u)
		}
	}
	if !isDecimal(s) {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f
		}
		return math.NaN()
	}
	return f
}

// isDecimal accepts [+-]digits[.digits][e[+-]digits], which is narrower than
// what strconv.ParseFloat allows (no "inf", "nan", underscores or hex floats).
func isDecimal(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}
	return i == len(s)
}

// ToString converts v to its string form.
func ToString(v Value) string {
	return toString(v, nil)
}

func toString(v Value, seen map[*Array]bool) string {
	switch v.Type {
	case TypeUndefined, typeFailure:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return strconv.FormatBool(v.Bool)
	case TypeNumber:
		return FormatNumber(v.Number)
	case TypeString:
		return v.Str
	case TypeArray:
		if seen[v.Array] {
			return ""
		}
		if seen == nil {
			seen = make(map[*Array]bool)
		}
		seen[v.Array] = true
		defer delete(seen, v.Array)
		parts := make([]string, len(v.Array.Elems))
		for i, e := range v.Array.Elems {
			if !e.IsNullish() {
				parts[i] = toString(e, seen)
			}
		}
		return strings.Join(parts, ",")
	case TypeObject:
		return "[object Object]"
	case TypeFunction:
		return v.Func.String()
	case TypeHost:
		if s, ok := v.Host.(fmt.Stringer); ok {
			return s.String()
		}
		return fmt.Sprint(v.Host)
	}
	return ""
}

// FormatNumber formats f the way JavaScript prints numbers: integers without a
// fraction, exponent notation outside [1e-6, 1e21).
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		exp = strings.TrimLeft(exp[1:], "0")
		if exp == "" {
			exp = "0"
		}
		return mant + "e" + string(sign) + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToInt32 converts v to a 32-bit signed integer with wrap-around.
func ToInt32(v Value) int32 {
	return int32(ToUint32(v))
}

// ToUint32 converts v to a 32-bit unsigned integer with wrap-around.
func ToUint32(v Value) uint32 {
	f := ToNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	m := math.Mod(math.Trunc(f), 1<<32)
	if m < 0 {
		m += 1 << 32
	}
	return uint32(m)
}

// StrictEquals implements ===. Containers and functions compare by identity.
func StrictEquals(a, b Value) bool {
	a, b = a.orUndefined(), b.orUndefined()
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeUndefined, TypeNull:
		return true
	case TypeBoolean:
		return a.Bool == b.Bool
	case TypeNumber:
		return a.Number == b.Number
	case TypeString:
		return a.Str == b.Str
	case TypeArray:
		return a.Array == b.Array
	case TypeObject:
		return a.Object == b.Object
	case TypeFunction:
		return a.Func == b.Func
	case TypeHost:
		return hostEquals(a.Host, b.Host)
	}
	return false
}

func hostEquals(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// LooseEquals implements == with its type coercions.
func LooseEquals(a, b Value) bool {
	a, b = a.orUndefined(), b.orUndefined()
	if a.Type == b.Type {
		return StrictEquals(a, b)
	}
	if a.IsNullish() || b.IsNullish() {
		return a.IsNullish() && b.IsNullish()
	}
	switch {
	case a.Type == TypeBoolean:
		return LooseEquals(NewNumber(ToNumber(a)), b)
	case b.Type == TypeBoolean:
		return LooseEquals(a, NewNumber(ToNumber(b)))
	case a.Type == TypeNumber && b.Type == TypeString,
		a.Type == TypeString && b.Type == TypeNumber:
		return ToNumber(a) == ToNumber(b)
	case isPrimitive(a) && !isPrimitive(b):
		return LooseEquals(a, toPrimitive(b))
	case !isPrimitive(a) && isPrimitive(b):
		return LooseEquals(toPrimitive(a), b)
	}
	return false
}

func isPrimitive(v Value) bool {
	switch v.Type {
	case TypeArray, TypeObject, TypeFunction, TypeHost:
		return false
	}
	return true
}

// toPrimitive reduces containers to their string form.
func toPrimitive(v Value) Value {
	if isPrimitive(v) {
		return v
	}
	return NewString(ToString(v))
}

// compare implements < <= > >=. Any NaN operand makes the result false.
func compare(op string, a, b Value) bool {
	pa, pb := toPrimitive(a.orUndefined()), toPrimitive(b.orUndefined())
	if pa.Type == TypeString && pb.Type == TypeString {
		switch op {
		case "<":
			return pa.Str < pb.Str
		case "<=":
			return pa.Str <= pb.Str
		case ">":
			return pa.Str > pb.Str
		default:
			return pa.Str >= pb.Str
		}
	}
	x, y := ToNumber(pa), ToNumber(pb)
	switch op {
	case "<":
		return x < y
	case "<=":
		return x <= y
	case ">":
		return x > y
	default:
		return x >= y
	}
}

func pow(x, y float64) float64 {
	if math.IsNaN(y) || (math.Abs(x) == 1 && math.IsInf(y, 0)) {
		return math.NaN()
	}
	return math.Pow(x, y)
}

// BinaryOp applies a non-short-circuit binary operator. ok is false for an
// unknown operator.
func BinaryOp(op string, l, r Value) (result Value, ok bool) {
	switch op {
	case "+":
		pl, pr := toPrimitive(l.orUndefined()), toPrimitive(r.orUndefined())
		if pl.Type == TypeString || pr.Type == TypeString {
			return NewString(ToString(pl) + ToString(pr)), true
		}
		return NewNumber(ToNumber(pl) + ToNumber(pr)), true
	case "-":
		return NewNumber(ToNumber(l) - ToNumber(r)), true
	case "*":
		return NewNumber(ToNumber(l) * ToNumber(r)), true
	case "/":
		return NewNumber(ToNumber(l) / ToNumber(r)), true
	case "%":
		return NewNumber(math.Mod(ToNumber(l), ToNumber(r))), true
	case "**":
		return NewNumber(pow(ToNumber(l), ToNumber(r))), true
	case "==":
		return NewBool(LooseEquals(l, r)), true
	case "!=":
		return NewBool(!LooseEquals(l, r)), true
	case "===":
		return NewBool(StrictEquals(l, r)), true
	case "!==":
		return NewBool(!StrictEquals(l, r)), true
	case "<", "<=", ">", ">=":
		return NewBool(compare(op, l, r)), true
	case "|":
		return NewNumber(float64(ToInt32(l) | ToInt32(r))), true
	case "&":
		return NewNumber(float64(ToInt32(l) & ToInt32(r))), true
	case "^":
		return NewNumber(float64(ToInt32(l) ^ ToInt32(r))), true
	case "<<":
		return NewNumber(float64(ToInt32(l) << (ToUint32(r) & 31))), true
	case ">>":
		return NewNumber(float64(ToInt32(l) >> (ToUint32(r) & 31))), true
	case ">>>":
		return NewNumber(float64(ToUint32(l) >> (ToUint32(r) & 31))), true
	}
	return failure, false
}

// UnaryOp applies + - ~ or !. ok is false for any other operator.
func UnaryOp(op string, v Value) (result Value, ok bool) {
	switch op {
	case "+":
		return NewNumber(ToNumber(v)), true
	case "-":
		return NewNumber(-ToNumber(v)), true
	case "~":
		return NewNumber(float64(^ToInt32(v))), true
	case "!":
		return NewBool(!Truthy(v)), true
	}
	return failure, false
}
