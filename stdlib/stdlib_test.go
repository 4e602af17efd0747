package stdlib

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkxzhou/evaljs"
)

func newEnv(t *testing.T, opts ...Option) (*evaljs.Interpreter, *evaljs.Environment) {
	t.Helper()
	in, err := evaljs.New(evaljs.WithPrototype(Prototypes()))
	require.NoError(t, err)
	env := evaljs.NewEnvironment(nil)
	require.NoError(t, Install(env, opts...))
	return in, env
}

func eval(t *testing.T, src string) any {
	t.Helper()
	in, env := newEnv(t)
	v, err := in.Evaluate(src, env)
	require.NoError(t, err, src)
	return v.Export()
}

func TestMath(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{"Math.abs(-3)", 3.0},
		{"Math.floor(2.7)", 2.0},
		{"Math.ceil(2.1)", 3.0},
		{"Math.round(2.5)", 3.0},
		{"Math.round(-2.5)", -2.0},
		{"Math.trunc(-2.7)", -2.0},
		{"Math.sign(-9)", -1.0},
		{"Math.sqrt(16)", 4.0},
		{"Math.pow(2, 10)", 1024.0},
		{"Math.max(1, 5, 3)", 5.0},
		{"Math.min(4, 2, 8)", 2.0},
		{"Math.hypot(3, 4)", 5.0},
		{"Math.PI > 3.14 && Math.PI < 3.15", true},
		{"const r = Math.random(); r >= 0 && r < 1", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.src))
		})
	}

	in, env := newEnv(t)
	v, err := in.Evaluate("Math.max(1, 'x')", env)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(v.Number))
	v, err = in.Evaluate("Math.max()", env)
	require.NoError(t, err)
	assert.True(t, math.IsInf(v.Number, -1))
}

func TestJSON(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{`JSON.stringify({a: [1, "x", null], b: undefined})`, `{"a":[1,"x",null]}`},
		{`JSON.stringify("q")`, `"q"`},
		{`JSON.stringify(undefined)`, nil},
		{`JSON.parse('{"k": [1, 2]}').k[1]`, 2.0},
		{`JSON.parse(JSON.stringify({n: 1.5})).n`, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.src))
		})
	}

	in, env := newEnv(t)
	_, err := in.Evaluate(`JSON.parse("{")`, env)
	assert.ErrorContains(t, err, "JSON.parse")
	_, err = in.Evaluate(`const o = {}; o.self = o; JSON.stringify(o)`, env)
	assert.ErrorIs(t, err, evaljs.ErrCyclic)
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	in, env := newEnv(t, WithOutput(&buf))
	_, err := in.EvaluateAll(`console.log("hi", 1, [1, 2], {a: "b"}); console.error("oops")`, env)
	require.NoError(t, err)
	assert.Equal(t, "hi 1 [ 1, 2 ] { a: \"b\" }\noops\n", buf.String())

	assert.Error(t, Install(env, WithOutput(nil)))
}

func TestObjectAndArray(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{`Object.keys({b: 1, a: 2})`, []any{"b", "a"}},
		{`Object.values({b: 1, a: 2})`, []any{1.0, 2.0}},
		{`Object.entries({k: true})`, []any{[]any{"k", true}}},
		{`Object.keys([7, 8])`, []any{"0", "1"}},
		{`Object.keys(5)`, []any{}},
		{`const t = {a: 1}; Object.assign(t, {b: 2}, 3, {a: 9}); t`, map[string]any{"a": 9.0, "b": 2.0}},
		{`Array.isArray([])`, true},
		{`Array.isArray("no")`, false},
		{`Array.of(1, 2)`, []any{1.0, 2.0}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.src))
		})
	}
}

func TestConversions(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{`parseInt("42px")`, 42.0},
		{`parseInt("  -17")`, -17.0},
		{`parseInt("0x1F")`, 31.0},
		{`parseInt("ff", 16)`, 255.0},
		{`parseInt("101", 2)`, 5.0},
		{`isNaN(parseInt("px"))`, true},
		{`parseFloat("3.14abc")`, 3.14},
		{`parseFloat("1e3x")`, 1000.0},
		{`parseFloat(".5")`, 0.5},
		{`parseFloat("-Infinity") < 0`, true},
		{`isNaN(parseFloat("."))`, true},
		{`isNaN("abc")`, true},
		{`isFinite("12")`, true},
		{`isFinite(Infinity)`, false},
		{`String(12) + String()`, "12"},
		{`Number("  8 ")`, 8.0},
		{`Number()`, 0.0},
		{`Boolean("")`, false},
		{`Boolean([])`, true},
		{`isNaN(NaN)`, true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.src))
		})
	}
}

func TestArrayMethods(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{`const a = [1]; a.push(2, 3); a`, []any{1.0, 2.0, 3.0}},
		{`[1, 2].push(3)`, 3.0},
		{`const a = [1, 2]; a.pop() + a.length`, 3.0},
		{`const a = [1, 2]; a.shift(); a`, []any{2.0}},
		{`[].pop()`, nil},
		{`[1, null, "x"].join("-")`, "1--x"},
		{`[1, 2].join()`, "1,2"},
		{`[1, 2, 3, 4].slice(1, -1)`, []any{2.0, 3.0}},
		{`[1, 2, 3].slice(-2)`, []any{2.0, 3.0}},
		{`[1, 2, 3].indexOf(3)`, 2.0},
		{`[1, 2, 3].indexOf("3")`, -1.0},
		{`[NaN].includes(NaN)`, true},
		{`[1, 2, 3].map(x => x * 2)`, []any{2.0, 4.0, 6.0}},
		{`[1, 2, 3].map((x, i) => i)`, []any{0.0, 1.0, 2.0}},
		{`[1, 2, 3, 4].filter(x => x % 2 == 0)`, []any{2.0, 4.0}},
		{`[1, 2, 3].reduce((a, b) => a + b)`, 6.0},
		{`[1, 2, 3].reduce((a, b) => a + b, 10)`, 16.0},
		{`const out = []; [1, 2].forEach(function (x) { out.push(x * 2); }); out`, []any{2.0, 4.0}},
		{`[1].concat([2, 3], 4)`, []any{1.0, 2.0, 3.0, 4.0}},
		{`[1, 2, 3].reverse()`, []any{3.0, 2.0, 1.0}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.src))
		})
	}

	in, env := newEnv(t)
	_, err := in.Evaluate(`[1].map(3)`, env)
	assert.ErrorContains(t, err, "map: 3 is not a function")
	_, err = in.Evaluate(`[].reduce((a, b) => a)`, env)
	assert.Error(t, err)
}

func TestArrayMethodsDetached(t *testing.T) {
	in, env := newEnv(t)
	for _, src := range []string{
		`var push = [].push; push(1)`,
		`var m = [1, 2].map; m(x => x)`,
		`const r = [3].reverse; r()`,
	} {
		_, err := in.Evaluate(src, env)
		assert.ErrorContains(t, err, "not an array", src)
	}

	pop := Prototypes().Array["pop"]
	_, err := evaljs.NewNativeFunction("pop", pop).Func.Call(evaljs.NewString("abc"))
	assert.ErrorContains(t, err, "pop: receiver is string")

	v, err := evaljs.NewNativeFunction("pop", pop).Func.Call(evaljs.NewArray(evaljs.NewNumber(7)))
	require.NoError(t, err)
	assert.Equal(t, 7.0, v.Number)
}

func TestStringMethods(t *testing.T) {
	tests := []struct {
		src  string
		want any
	}{
		{`"abc".toUpperCase()`, "ABC"},
		{`"ABC".toLowerCase()`, "abc"},
		{`"  x ".trim()`, "x"},
		{`"a,b,c".split(",")`, []any{"a", "b", "c"}},
		{`"abc".split("")`, []any{"a", "b", "c"}},
		{`"héllo".indexOf("l")`, 2.0},
		{`"abc".indexOf("z")`, -1.0},
		{`"hello".includes("ell")`, true},
		{`"hello".slice(1, 3)`, "el"},
		{`"hello".slice(-3)`, "llo"},
		{`"héllo".charAt(1)`, "é"},
		{`"abc".charAt(9)`, ""},
		{`"file.go".endsWith(".go")`, true},
		{`"file.go".startsWith("fi")`, true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, eval(t, tt.src))
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, "Math")
	assert.Contains(t, names, "parseInt")
	assert.IsNonDecreasing(t, names)
}
