package evaljs

import (
	"sort"
)

// Environment maps identifier names to values. Environments form a parent
// chain in lexical scope mode; in dynamic mode every function call gets a
// flat shallow copy of the caller's bindings instead.
type Environment struct {
	vars   map[string]Value
	parent *Environment
}

// NewEnvironment wraps vars as a root environment. The map is used directly,
// not copied, so callers observe every binding the evaluation creates or
// changes. A nil map starts empty.
func NewEnvironment(vars map[string]Value) *Environment {
	if vars == nil {
		vars = make(map[string]Value)
	}
	return &Environment{vars: vars}
}

// NewEnvironmentFrom converts plain Go values with FromGo and wraps them.
func NewEnvironmentFrom(vars map[string]any) *Environment {
	env := NewEnvironment(nil)
	for k, v := range vars {
		env.vars[k] = FromGo(v)
	}
	return env
}

// Child returns a new empty scope whose lookups fall back to e.
func (e *Environment) Child() *Environment {
	return &Environment{vars: make(map[string]Value), parent: e}
}

// Parent returns the enclosing scope, or nil for a root.
func (e *Environment) Parent() *Environment {
	return e.parent
}

// Get looks a name up through the scope chain.
func (e *Environment) Get(name string) (Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.vars[name]; ok {
			return v, true
		}
	}
	return Undefined(), false
}

// Lookup returns the bound value or undefined.
func (e *Environment) Lookup(name string) Value {
	v, _ := e.Get(name)
	return v
}

// Declare binds name in this scope, shadowing any outer binding.
func (e *Environment) Declare(name string, v Value) {
	e.vars[name] = v
}

// Assign updates the nearest scope that binds name. An unbound name is
// created in the root scope.
func (e *Environment) Assign(name string, v Value) {
	s := e
	for {
		if _, ok := s.vars[name]; ok || s.parent == nil {
			s.vars[name] = v
			return
		}
		s = s.parent
	}
}

// Delete removes name from this scope only.
func (e *Environment) Delete(name string) bool {
	if _, ok := e.vars[name]; ok {
		delete(e.vars, name)
		return true
	}
	return false
}

// Snapshot flattens the chain into a new map. Inner bindings win. Values are
// copied shallowly, so containers stay shared.
func (e *Environment) Snapshot() map[string]Value {
	var chain []*Environment
	for s := e; s != nil; s = s.parent {
		chain = append(chain, s)
	}
	out := make(map[string]Value)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].vars {
			out[k] = v
		}
	}
	return out
}

// Vars returns the map backing this scope.
func (e *Environment) Vars() map[string]Value {
	return e.vars
}

// Names returns every visible binding name, sorted.
func (e *Environment) Names() []string {
	snap := e.Snapshot()
	names := make([]string, 0, len(snap))
	for k := range snap {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Export converts this scope's own bindings to plain Go values.
func (e *Environment) Export() map[string]any {
	out := make(map[string]any, len(e.vars))
	for k, v := range e.vars {
		out[k] = v.Export()
	}
	return out
}
