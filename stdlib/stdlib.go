// Package stdlib provides native globals for evaljs environments: Math,
// JSON, console, Object, Array, conversion functions, and the array and
// string methods installed through evaljs.WithPrototype.
package stdlib

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/linkxzhou/evaljs"
)

type options struct {
	out io.Writer
}

// Option configures Install.
type Option func(*options) error

// WithOutput sets where console methods write. The default is os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) error {
		if w == nil {
			return fmt.Errorf("output writer cannot be nil")
		}
		o.out = w
		return nil
	}
}

// Install declares the standard globals in env. Existing bindings with the
// same names are replaced.
func Install(env *evaljs.Environment, opts ...Option) error {
	o := &options{out: os.Stdout}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return fmt.Errorf("apply option: %w", err)
		}
	}

	for name, v := range globals(o) {
		env.Declare(name, v)
	}
	return nil
}

func globals(o *options) map[string]evaljs.Value {
	g := map[string]evaljs.Value{
		"Math":     mathObject(),
		"JSON":     jsonObject(),
		"console":  consoleObject(o.out),
		"Object":   objectObject(),
		"Array":    arrayObject(),
		"NaN":      evaljs.NaN(),
		"Infinity": evaljs.NewNumber(math.Inf(1)),
	}
	funcs := map[string]evaljs.NativeFunc{
		"parseInt":   parseInt,
		"parseFloat": parseFloat,
		"isNaN":      isNaN,
		"isFinite":   isFinite,
		"String":     toStringFunc,
		"Number":     toNumberFunc,
		"Boolean":    toBooleanFunc,
	}
	for name, fn := range funcs {
		g[name] = evaljs.NewNativeFunction(name, fn)
	}
	return g
}

// Names returns the sorted names Install declares.
func Names() []string {
	return sortedNames(globals(&options{out: io.Discard}))
}

// Prototypes returns the array and string methods for evaljs.WithPrototype.
func Prototypes() evaljs.Prototype {
	return evaljs.Prototype{
		Array:  arrayMethods(),
		String: stringMethods(),
	}
}

// arg returns args[i], or undefined when absent.
func arg(args []evaljs.Value, i int) evaljs.Value {
	if i < len(args) {
		return args[i]
	}
	return evaljs.Undefined()
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// object builds an object value from native methods, keyed in sorted order
// for stable display.
func object(methods map[string]evaljs.NativeFunc) *evaljs.Object {
	obj := evaljs.NewObject()
	for _, name := range sortedNames(methods) {
		obj.Set(name, evaljs.NewNativeFunction(name, methods[name]))
	}
	return obj
}
