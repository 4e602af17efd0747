package evaljs

import (
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrCyclic is returned when marshaling a value that contains itself.
var ErrCyclic = errors.New("evaljs: cyclic value")

// FromGo converts a Go value into a runtime value. Slices become arrays, maps
// with string keys become objects (keys sorted), and anything else that has
// no natural counterpart is wrapped as a host value.
func FromGo(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case *Function:
		return FunctionValue(t)
	case NativeFunc:
		return FunctionValue(&Function{Native: t})
	case func(this Value, args []Value) (Value, error):
		return FunctionValue(&Function{Native: t})
	case *Object:
		return ObjectValue(t)
	case *Array:
		return Value{Type: TypeArray, Array: t}
	case bool:
		return NewBool(t)
	case string:
		return NewString(t)
	case int:
		return NewNumber(float64(t))
	case int8:
		return NewNumber(float64(t))
	case int16:
		return NewNumber(float64(t))
	case int32:
		return NewNumber(float64(t))
	case int64:
		return NewNumber(float64(t))
	case uint:
		return NewNumber(float64(t))
	case uint8:
		return NewNumber(float64(t))
	case uint16:
		return NewNumber(float64(t))
	case uint32:
		return NewNumber(float64(t))
	case uint64:
		return NewNumber(float64(t))
	case float32:
		return NewNumber(float64(t))
	case float64:
		return NewNumber(t)
	case []Value:
		return NewArray(t...)
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromGo(e)
		}
		return NewArray(elems...)
	case map[string]Value:
		obj := NewObject()
		for _, k := range sortedKeys(t) {
			obj.Set(k, t[k])
		}
		return ObjectValue(obj)
	case map[string]any:
		obj := NewObject()
		for _, k := range sortedKeys(t) {
			obj.Set(k, FromGo(t[k]))
		}
		return ObjectValue(obj)
	}
	return fromReflect(reflect.ValueOf(x), x)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fromReflect(rv reflect.Value, x any) Value {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
	case reflect.Slice:
		if rv.IsNil() {
			return Null()
		}
		fallthrough
	case reflect.Array:
		elems := make([]Value, rv.Len())
		for i := range elems {
			elems[i] = FromGo(rv.Index(i).Interface())
		}
		return NewArray(elems...)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		obj := NewObject()
		for _, k := range keys {
			obj.Set(k, FromGo(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface()))
		}
		return ObjectValue(obj)
	case reflect.Bool:
		return NewBool(rv.Bool())
	case reflect.String:
		return NewString(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewNumber(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NewNumber(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return NewNumber(rv.Float())
	}
	return NewHost(x)
}

// Export converts v into plain Go values: nil, bool, float64, string,
// []any, map[string]any, *Function or the wrapped host value.
func Export(v Value) any {
	return v.Export()
}

func (v Value) Export() any {
	return export(v, map[any]bool{})
}

func export(v Value, seen map[any]bool) any {
	switch v.Type {
	case TypeBoolean:
		return v.Bool
	case TypeNumber:
		return v.Number
	case TypeString:
		return v.Str
	case TypeArray:
		if seen[v.Array] {
			return nil
		}
		seen[v.Array] = true
		defer delete(seen, v.Array)
		out := make([]any, len(v.Array.Elems))
		for i, e := range v.Array.Elems {
			out[i] = export(e, seen)
		}
		return out
	case TypeObject:
		if seen[v.Object] {
			return nil
		}
		seen[v.Object] = true
		defer delete(seen, v.Object)
		out := make(map[string]any, v.Object.Len())
		for _, k := range v.Object.keys {
			out[k] = export(v.Object.props[k], seen)
		}
		return out
	case TypeFunction:
		return v.Func
	case TypeHost:
		return v.Host
	}
	return nil
}

// MarshalJSON encodes v like JSON.stringify: key order is kept, functions and
// undefined are dropped from objects and become null in arrays, non-finite
// numbers become null.
func (v Value) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)
	if err := writeJSON(stream, v, map[any]bool{}); err != nil {
		return nil, err
	}
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

func omittedInJSON(v Value) bool {
	switch v.Type {
	case TypeUndefined, TypeFunction, typeFailure:
		return true
	}
	return false
}

func writeJSON(stream *jsoniter.Stream, v Value, seen map[any]bool) error {
	switch v.Type {
	case TypeBoolean:
		stream.WriteBool(v.Bool)
	case TypeNumber:
		if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
			stream.WriteNil()
		} else {
			stream.WriteRaw(FormatNumber(v.Number))
		}
	case TypeString:
		stream.WriteString(v.Str)
	case TypeArray:
		if seen[v.Array] {
			return ErrCyclic
		}
		seen[v.Array] = true
		defer delete(seen, v.Array)
		stream.WriteArrayStart()
		for i, e := range v.Array.Elems {
			if i > 0 {
				stream.WriteMore()
			}
			if omittedInJSON(e) {
				stream.WriteNil()
				continue
			}
			if err := writeJSON(stream, e, seen); err != nil {
				return err
			}
		}
		stream.WriteArrayEnd()
	case TypeObject:
		if seen[v.Object] {
			return ErrCyclic
		}
		seen[v.Object] = true
		defer delete(seen, v.Object)
		stream.WriteObjectStart()
		first := true
		for _, k := range v.Object.keys {
			e := v.Object.props[k]
			if omittedInJSON(e) {
				continue
			}
			if !first {
				stream.WriteMore()
			}
			first = false
			stream.WriteObjectField(k)
			if err := writeJSON(stream, e, seen); err != nil {
				return err
			}
		}
		stream.WriteObjectEnd()
	case TypeHost:
		b, err := json.Marshal(v.Host)
		if err != nil {
			return fmt.Errorf("marshal host value: %w", err)
		}
		stream.WriteRaw(string(b))
	default:
		stream.WriteNil()
	}
	return nil
}

// ParseJSON decodes a JSON document into a runtime value. Object keys keep
// their document order.
func ParseJSON(data []byte) (Value, error) {
	iter := json.BorrowIterator(data)
	defer json.ReturnIterator(iter)
	v := readJSON(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return Undefined(), fmt.Errorf("parse json: %w", iter.Error)
	}
	// Only whitespace may follow the value: peeking past it must hit EOF.
	iter.WhatIsNext()
	if iter.Error != io.EOF {
		return Undefined(), errors.New("parse json: trailing data")
	}
	return v, nil
}

func readJSON(iter *jsoniter.Iterator) Value {
	switch iter.WhatIsNext() {
	case jsoniter.StringValue:
		return NewString(iter.ReadString())
	case jsoniter.NumberValue:
		return NewNumber(iter.ReadFloat64())
	case jsoniter.BoolValue:
		return NewBool(iter.ReadBool())
	case jsoniter.NilValue:
		iter.ReadNil()
		return Null()
	case jsoniter.ArrayValue:
		var elems []Value
		iter.ReadArrayCB(func(it *jsoniter.Iterator) bool {
			elems = append(elems, readJSON(it))
			return it.Error == nil
		})
		if elems == nil {
			elems = []Value{}
		}
		return NewArray(elems...)
	case jsoniter.ObjectValue:
		obj := NewObject()
		iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
			obj.Set(key, readJSON(it))
			return it.Error == nil
		})
		return ObjectValue(obj)
	}
	iter.ReportError("readJSON", "unexpected token")
	return Undefined()
}

// Inspect renders v for interactive display: strings are quoted, containers
// are expanded and self references print as [Circular].
func (v Value) Inspect() string {
	var sb strings.Builder
	inspect(&sb, v, map[any]bool{})
	return sb.String()
}

func inspect(sb *strings.Builder, v Value, seen map[any]bool) {
	switch v.Type {
	case TypeString:
		sb.WriteString(strconv.Quote(v.Str))
	case TypeArray:
		if seen[v.Array] {
			sb.WriteString("[Circular]")
			return
		}
		if len(v.Array.Elems) == 0 {
			sb.WriteString("[]")
			return
		}
		seen[v.Array] = true
		defer delete(seen, v.Array)
		sb.WriteString("[ ")
		for i, e := range v.Array.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			inspect(sb, e, seen)
		}
		sb.WriteString(" ]")
	case TypeObject:
		if seen[v.Object] {
			sb.WriteString("[Circular]")
			return
		}
		if v.Object.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		seen[v.Object] = true
		defer delete(seen, v.Object)
		sb.WriteString("{ ")
		for i, k := range v.Object.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			if isIdentifierName(k) {
				sb.WriteString(k)
			} else {
				sb.WriteString(strconv.Quote(k))
			}
			sb.WriteString(": ")
			inspect(sb, v.Object.props[k], seen)
		}
		sb.WriteString(" }")
	case TypeFunction:
		if v.Func.Name == "" {
			sb.WriteString("[Function (anonymous)]")
		} else {
			sb.WriteString("[Function: " + v.Func.Name + "]")
		}
	case TypeHost:
		fmt.Fprintf(sb, "[Host %T]", v.Host)
	default:
		sb.WriteString(ToString(v))
	}
}

func isIdentifierName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
