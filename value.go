package evaljs

import (
	"math"
)

// ValueType represents the type of a runtime value.
type ValueType int

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeArray
	TypeObject
	TypeFunction
	TypeHost

	// typeFailure marks the failure sentinel. It never escapes the package.
	typeFailure
)

func (t ValueType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeFunction:
		return "function"
	case TypeHost:
		return "host"
	case typeFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Value is a runtime value. Arrays, objects and functions are held by
// pointer, so copies of a Value alias the same container.
type Value struct {
	Type   ValueType
	Bool   bool
	Number float64
	Str    string
	Array  *Array
	Object *Object
	Func   *Function
	Host   any
}

// Array is a shared, mutable sequence.
type Array struct {
	Elems []Value
}

// Object is a shared, mutable string-keyed map that remembers key insertion
// order.
type Object struct {
	keys  []string
	props map[string]Value
}

// failure is the sentinel returned when an evaluation cannot resolve. It is
// distinct from undefined and becomes undefined only at collection points.
var failure = Value{Type: typeFailure}

func (v Value) failed() bool { return v.Type == typeFailure }

// orUndefined collapses the failure sentinel to undefined.
func (v Value) orUndefined() Value {
	if v.failed() {
		return Undefined()
	}
	return v
}

// Constructors

func Undefined() Value { return Value{Type: TypeUndefined} }

func Null() Value { return Value{Type: TypeNull} }

func NewBool(b bool) Value { return Value{Type: TypeBoolean, Bool: b} }

func NewNumber(n float64) Value { return Value{Type: TypeNumber, Number: n} }

func NewString(s string) Value { return Value{Type: TypeString, Str: s} }

// NaN returns the not-a-number value.
func NaN() Value { return NewNumber(math.NaN()) }

// NewArray returns an array value holding elems. The slice is not copied.
func NewArray(elems ...Value) Value {
	return Value{Type: TypeArray, Array: &Array{Elems: elems}}
}

// ObjectValue wraps o.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{Type: TypeObject, Object: o}
}

// FunctionValue wraps f.
func FunctionValue(f *Function) Value { return Value{Type: TypeFunction, Func: f} }

// NewHost wraps an opaque Go value, e.g. a constructed instance.
func NewHost(x any) Value { return Value{Type: TypeHost, Host: x} }

// Predicates

func (v Value) IsUndefined() bool { return v.Type == TypeUndefined }
func (v Value) IsNull() bool      { return v.Type == TypeNull }

// IsNullish reports whether v is null or undefined.
func (v Value) IsNullish() bool { return v.Type == TypeUndefined || v.Type == TypeNull }

// IsCallable reports whether v can be called.
func (v Value) IsCallable() bool { return v.Type == TypeFunction && v.Func != nil }

// TypeOf returns the typeof-style name of v. Arrays and null report "object".
func (v Value) TypeOf() string {
	switch v.Type {
	case TypeArray, TypeNull, TypeHost:
		return "object"
	case typeFailure:
		return "undefined"
	}
	return v.Type.String()
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{props: make(map[string]Value)}
}

// Get returns the property value and whether it exists.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.props[key]
	return v, ok
}

// Set creates or replaces a property. New keys are appended to the key order.
func (o *Object) Set(key string, v Value) {
	if _, ok := o.props[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.props[key] = v
}

// Delete removes a property. Returns true if it existed.
func (o *Object) Delete(key string) bool {
	if _, ok := o.props[key]; !ok {
		return false
	}
	delete(o.props, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the property names in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of properties.
func (o *Object) Len() int { return len(o.keys) }

// PropertyGetter is implemented by host values that expose readable members.
type PropertyGetter interface {
	GetProperty(name string) (Value, bool)
}

// PropertySetter is implemented by host values that accept member writes.
type PropertySetter interface {
	SetProperty(name string, v Value) bool
}
