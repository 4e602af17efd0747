package evaljs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1, "1"},
		{-1.5, "-1.5"},
		{0.30000000000000004, "0.30000000000000004"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{123456789012345680000, "123456789012345680000"},
		{0.000001, "0.000001"},
		{math.NaN(), "NaN"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.Copysign(0, -1), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestToNumber(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want float64
	}{
		{"empty string", NewString(""), 0},
		{"padded", NewString("  42 "), 42},
		{"hex", NewString("0x1f"), 31},
		{"exponent", NewString("1e3"), 1000},
		{"leading dot", NewString(".5"), 0.5},
		{"trailing dot", NewString("5."), 5},
		{"infinity", NewString("-Infinity"), math.Inf(-1)},
		{"null", Null(), 0},
		{"true", NewBool(true), 1},
		{"empty array", NewArray(), 0},
		{"single element array", NewArray(NewNumber(5)), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToNumber(tt.in))
		})
	}

	for _, s := range []string{"abc", "1_0", "inf", "nan", "-", "1e", "0x", "0xZZ"} {
		assert.True(t, math.IsNaN(ToNumber(NewString(s))), s)
	}
	assert.True(t, math.IsNaN(ToNumber(Undefined())))
	assert.True(t, math.IsNaN(ToNumber(ObjectValue(nil))))
	assert.True(t, math.IsNaN(ToNumber(NewArray(NewNumber(1), NewNumber(2)))))
}

func TestToString(t *testing.T) {
	nested := NewArray(NewNumber(1), Null(), NewArray(NewString("a"), Undefined()))
	assert.Equal(t, "1,,a,", ToString(nested))
	assert.Equal(t, "[object Object]", ToString(ObjectValue(nil)))
	assert.Equal(t, "undefined", ToString(failure))

	self := NewArray(NewNumber(1))
	self.Array.Elems = append(self.Array.Elems, self)
	assert.Equal(t, "1,", ToString(self))
}

func TestTruthy(t *testing.T) {
	falsy := []Value{Undefined(), Null(), NewBool(false), NewNumber(0), NaN(), NewString(""), failure}
	for _, v := range falsy {
		assert.False(t, Truthy(v), v.Type.String())
	}
	truthy := []Value{NewBool(true), NewNumber(-1), NewString("0"), NewArray(), ObjectValue(nil), NewHost(1)}
	for _, v := range truthy {
		assert.True(t, Truthy(v), v.Type.String())
	}
}

func TestInt32Conversions(t *testing.T) {
	assert.Equal(t, int32(-1), ToInt32(NewNumber(4294967295)))
	assert.Equal(t, int32(0), ToInt32(NaN()))
	assert.Equal(t, int32(3), ToInt32(NewNumber(3.9)))
	assert.Equal(t, int32(-3), ToInt32(NewNumber(-3.9)))
	assert.Equal(t, uint32(4294967295), ToUint32(NewNumber(-1)))
	assert.Equal(t, uint32(0), ToUint32(NewNumber(math.Inf(1))))
}

func TestEquality(t *testing.T) {
	arr := NewArray(NewNumber(1))
	obj := ObjectValue(nil)
	tests := []struct {
		name   string
		a, b   Value
		loose  bool
		strict bool
	}{
		{"number string", NewNumber(1), NewString("1"), true, false},
		{"null undefined", Null(), Undefined(), true, false},
		{"null zero", Null(), NewNumber(0), false, false},
		{"nan", NaN(), NaN(), false, false},
		{"bool number", NewBool(true), NewNumber(1), true, false},
		{"bool string", NewBool(false), NewString(""), true, false},
		{"same array", arr, arr, true, true},
		{"other array", arr, NewArray(NewNumber(1)), false, false},
		{"array string", arr, NewString("1"), true, false},
		{"same object", obj, obj, true, true},
		{"object string", obj, NewString("[object Object]"), true, false},
		{"failure undefined", failure, Undefined(), true, true},
		{"hosts", NewHost([]int{1}), NewHost([]int{1}), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.loose, LooseEquals(tt.a, tt.b), "loose")
			assert.Equal(t, tt.strict, StrictEquals(tt.a, tt.b), "strict")
		})
	}
}

func TestObjectKeyOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", NewNumber(1))
	o.Set("a", NewNumber(2))
	o.Set("z", NewNumber(3))
	assert.Equal(t, []string{"z", "a"}, o.Keys())
	assert.True(t, o.Delete("z"))
	assert.False(t, o.Delete("z"))
	assert.Equal(t, []string{"a"}, o.Keys())
	assert.Equal(t, 1, o.Len())
}

func TestMarshalJSON(t *testing.T) {
	o := NewObject()
	o.Set("b", NewNumber(1))
	o.Set("a", NewArray(NewNumber(1), Undefined(), NewNativeFunction("f", nil)))
	o.Set("c", Undefined())
	o.Set("d", NaN())
	o.Set("e", NewString("x\"y"))
	o.Set("f", NewBool(true))
	o.Set("g", Null())
	o.Set("h", NewHost(map[string]int{"k": 1}))

	b, err := ObjectValue(o).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"b":1,"a":[1,null,null],"d":null,"e":"x\"y","f":true,"g":null,"h":{"k":1}}`, string(b))

	b, err = Undefined().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	cyclic := NewObject()
	cyclic.Set("self", ObjectValue(cyclic))
	_, err = ObjectValue(cyclic).MarshalJSON()
	assert.ErrorIs(t, err, ErrCyclic)
}

func TestParseJSON(t *testing.T) {
	v, err := ParseJSON([]byte(`{"z": 1, "a": [true, null, "s", 2.5], "m": {}, "e": []}`))
	require.NoError(t, err)
	require.Equal(t, TypeObject, v.Type)
	assert.Equal(t, []string{"z", "a", "m", "e"}, v.Object.Keys())
	for _, ok := range []string{"1", " \"s\" \n", "true\t", "[]  ", "null"} {
		_, err := ParseJSON([]byte(ok))
		assert.NoError(t, err, ok)
	}

	assert.Equal(t, map[string]any{
		"z": 1.0,
		"a": []any{true, nil, "s", 2.5},
		"m": map[string]any{},
		"e": []any{},
	}, v.Export())

	for _, bad := range []string{`{`, `{} x`, ``, `[1,]`, `nope`, `[1,2] x`, `1 x`, `"s" x`, `true x`, `{"a":1} }`, `[1] ]`} {
		_, err := ParseJSON([]byte(bad))
		assert.Error(t, err, bad)
	}
}

func TestFromGo(t *testing.T) {
	type custom struct{ A int }

	v := FromGo(map[string]any{"b": 1, "a": []any{"x", true}, "n": nil})
	require.Equal(t, TypeObject, v.Type)
	assert.Equal(t, []string{"a", "b", "n"}, v.Object.Keys())
	assert.Equal(t, map[string]any{"a": []any{"x", true}, "b": 1.0, "n": nil}, v.Export())

	assert.Equal(t, []any{1.0, 2.0}, FromGo([]int{1, 2}).Export())
	assert.Equal(t, map[string]any{"k": 3.0}, FromGo(map[string]int{"k": 3}).Export())
	assert.Equal(t, TypeNull, FromGo((*custom)(nil)).Type)
	assert.Equal(t, TypeHost, FromGo(&custom{A: 1}).Type)
	assert.Equal(t, TypeNumber, FromGo(uint8(7)).Type)
	assert.Equal(t, TypeFunction, FromGo(NativeFunc(func(Value, []Value) (Value, error) { return Undefined(), nil })).Type)

	orig := NewString("same")
	assert.Equal(t, orig, FromGo(orig))
}

func TestInspect(t *testing.T) {
	o := NewObject()
	o.Set("a", NewNumber(1))
	o.Set("b c", NewString("x"))
	o.Set("arr", NewArray(NewNumber(1), NewNumber(2)))
	o.Set("f", NewNativeFunction("f", nil))
	o.Set("empty", NewArray())
	assert.Equal(t, `{ a: 1, "b c": "x", arr: [ 1, 2 ], f: [Function: f], empty: [] }`, ObjectValue(o).Inspect())

	cyclic := NewObject()
	cyclic.Set("self", ObjectValue(cyclic))
	assert.Equal(t, "{ self: [Circular] }", ObjectValue(cyclic).Inspect())
	assert.Equal(t, "{}", ObjectValue(nil).Inspect())
	assert.Equal(t, "undefined", Undefined().Inspect())
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "object", Null().TypeOf())
	assert.Equal(t, "object", NewArray().TypeOf())
	assert.Equal(t, "number", NaN().TypeOf())
	assert.Equal(t, "function", NewNativeFunction("f", nil).TypeOf())
	assert.Equal(t, "undefined", failure.TypeOf())
}
