package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/linkxzhou/evaljs"
	"github.com/linkxzhou/evaljs/stdlib"
)

// loadContext reads the initial variables for a run. JSON and YAML files
// are chosen by extension and must hold an object at the top level. An
// empty path gives an empty context.
func loadContext(path string) (*evaljs.Environment, error) {
	if path == "" {
		return evaljs.NewEnvironment(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read context: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		v, err := evaljs.ParseJSON(data)
		if err != nil {
			return nil, fmt.Errorf("context %s: %w", path, err)
		}
		if v.Type != evaljs.TypeObject {
			return nil, fmt.Errorf("context %s: top level must be an object, got %s", path, v.Type)
		}
		env := evaljs.NewEnvironment(nil)
		for _, k := range v.Object.Keys() {
			val, _ := v.Object.Get(k)
			env.Declare(k, val)
		}
		return env, nil
	case ".yaml", ".yml":
		var vars map[string]any
		if err := yaml.Unmarshal(data, &vars); err != nil {
			return nil, fmt.Errorf("context %s: %w", path, err)
		}
		return evaljs.NewEnvironmentFrom(vars), nil
	default:
		return nil, fmt.Errorf("context %s: unsupported extension %q", path, ext)
	}
}

// newEnv loads the context and, when withStdlib is set, installs the
// standard globals under it. Context bindings win over globals of the same
// name. The returned set names the globals to leave out of -json output.
func newEnv(contextPath string, withStdlib bool, opts ...stdlib.Option) (*evaljs.Environment, map[string]bool, error) {
	ctx, err := loadContext(contextPath)
	if err != nil {
		return nil, nil, err
	}
	hidden := map[string]bool{}
	if !withStdlib {
		return ctx, hidden, nil
	}

	env := evaljs.NewEnvironment(nil)
	if err := stdlib.Install(env, opts...); err != nil {
		return nil, nil, err
	}
	for _, name := range stdlib.Names() {
		hidden[name] = true
	}
	for name, v := range ctx.Vars() {
		env.Declare(name, v)
		delete(hidden, name)
	}
	return env, hidden, nil
}

// contextJSON encodes the top-level bindings of env except the hidden ones.
func contextJSON(env *evaljs.Environment, hidden map[string]bool) ([]byte, error) {
	obj := evaljs.NewObject()
	for _, name := range env.Names() {
		if hidden[name] {
			continue
		}
		obj.Set(name, env.Lookup(name))
	}
	return evaljs.ObjectValue(obj).MarshalJSON()
}
