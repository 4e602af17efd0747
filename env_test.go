package evaljs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentChain(t *testing.T) {
	root := NewEnvironment(nil)
	root.Declare("a", NewNumber(1))
	child := root.Child()
	child.Declare("b", NewNumber(2))

	v, ok := child.Get("a")
	assert.True(t, ok)
	assert.Equal(t, float64(1), v.Number)
	_, ok = root.Get("b")
	assert.False(t, ok)
	assert.True(t, root.Lookup("missing").IsUndefined())
	assert.Same(t, root, child.Parent())
	assert.Nil(t, root.Parent())
}

func TestEnvironmentAssign(t *testing.T) {
	root := NewEnvironment(nil)
	root.Declare("a", NewNumber(1))
	child := root.Child()
	child.Declare("shadow", NewNumber(0))

	child.Assign("a", NewNumber(10))
	assert.Equal(t, float64(10), root.Lookup("a").Number)

	child.Assign("shadow", NewNumber(5))
	_, ok := root.Get("shadow")
	assert.False(t, ok)

	child.Assign("fresh", NewString("x"))
	assert.Equal(t, "x", root.Lookup("fresh").Str)
}

func TestEnvironmentSnapshot(t *testing.T) {
	vars := map[string]Value{"a": NewNumber(1), "list": NewArray()}
	root := NewEnvironment(vars)
	child := root.Child()
	child.Declare("a", NewNumber(2))
	child.Declare("b", NewNumber(3))

	snap := child.Snapshot()
	assert.Equal(t, float64(2), snap["a"].Number)
	assert.Equal(t, float64(3), snap["b"].Number)
	assert.Same(t, vars["list"].Array, snap["list"].Array)

	snap["a"] = NewNumber(99)
	assert.Equal(t, float64(2), child.Lookup("a").Number)
	assert.Equal(t, []string{"a", "b", "list"}, child.Names())
}

func TestEnvironmentWrapsCallerMap(t *testing.T) {
	vars := map[string]Value{}
	env := NewEnvironment(vars)
	env.Declare("x", NewBool(true))
	assert.True(t, vars["x"].Bool)
	assert.Equal(t, vars, env.Vars())

	assert.True(t, env.Delete("x"))
	assert.False(t, env.Delete("x"))
	assert.Empty(t, vars)
}

func TestNewEnvironmentFrom(t *testing.T) {
	env := NewEnvironmentFrom(map[string]any{"n": 1, "s": "x", "l": []any{true}})
	assert.Equal(t, map[string]any{"n": 1.0, "s": "x", "l": []any{true}}, env.Export())
}
