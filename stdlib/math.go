package stdlib

import (
	"math"
	"math/rand"

	"github.com/linkxzhou/evaljs"
)

func unaryMath(f func(float64) float64) evaljs.NativeFunc {
	return func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
		return evaljs.NewNumber(f(evaljs.ToNumber(arg(args, 0)))), nil
	}
}

// jsRound rounds half up, so -2.5 rounds to -2.
func jsRound(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return math.Floor(x + 0.5)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x
}

// extremum folds args with pick, starting from init. Any NaN argument gives
// NaN.
func extremum(init float64, pick func(a, b float64) float64) evaljs.NativeFunc {
	return func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
		r := init
		for _, a := range args {
			n := evaljs.ToNumber(a)
			if math.IsNaN(n) {
				return evaljs.NaN(), nil
			}
			r = pick(r, n)
		}
		return evaljs.NewNumber(r), nil
	}
}

func mathObject() evaljs.Value {
	obj := object(map[string]evaljs.NativeFunc{
		"abs":   unaryMath(math.Abs),
		"floor": unaryMath(math.Floor),
		"ceil":  unaryMath(math.Ceil),
		"round": unaryMath(jsRound),
		"trunc": unaryMath(math.Trunc),
		"sign":  unaryMath(sign),
		"sqrt":  unaryMath(math.Sqrt),
		"cbrt":  unaryMath(math.Cbrt),
		"log":   unaryMath(math.Log),
		"log2":  unaryMath(math.Log2),
		"log10": unaryMath(math.Log10),
		"exp":   unaryMath(math.Exp),
		"sin":   unaryMath(math.Sin),
		"cos":   unaryMath(math.Cos),
		"tan":   unaryMath(math.Tan),
		"atan":  unaryMath(math.Atan),
		"max":   extremum(math.Inf(-1), math.Max),
		"min":   extremum(math.Inf(1), math.Min),
		"pow": func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			v, _ := evaljs.BinaryOp("**", arg(args, 0), arg(args, 1))
			return v, nil
		},
		"atan2": func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			return evaljs.NewNumber(math.Atan2(evaljs.ToNumber(arg(args, 0)), evaljs.ToNumber(arg(args, 1)))), nil
		},
		"hypot": func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
			sum := 0.0
			for _, a := range args {
				n := evaljs.ToNumber(a)
				sum += n * n
			}
			return evaljs.NewNumber(math.Sqrt(sum)), nil
		},
		"random": func(evaljs.Value, []evaljs.Value) (evaljs.Value, error) {
			return evaljs.NewNumber(rand.Float64()), nil
		},
	})
	obj.Set("PI", evaljs.NewNumber(math.Pi))
	obj.Set("E", evaljs.NewNumber(math.E))
	obj.Set("LN2", evaljs.NewNumber(math.Ln2))
	obj.Set("LN10", evaljs.NewNumber(math.Ln10))
	obj.Set("SQRT2", evaljs.NewNumber(math.Sqrt2))
	return evaljs.ObjectValue(obj)
}
