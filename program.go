package evaljs

import (
	"fmt"

	"github.com/linkxzhou/evaljs/ast"
)

// Program is parsed source ready to run any number of times.
type Program struct {
	Source string
	AST    *ast.Program
}

// Compile parses source with the configured parser.
func (in *Interpreter) Compile(source string) (*Program, error) {
	prog, err := in.cfg.parser.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &Program{Source: source, AST: prog}, nil
}

// Run evaluates each top-level statement of prog in env and collects one
// result per statement. Results that cannot be resolved are undefined. A
// top-level return stops the program after recording its value. A nil env
// starts empty.
func (in *Interpreter) Run(prog *Program, env *Environment) ([]Value, error) {
	if env == nil {
		env = NewEnvironment(nil)
	}
	body := prog.AST.Body
	in.hoist(body, env)
	results := make([]Value, 0, len(body))
	for _, stmt := range body {
		v, err := in.eval(stmt, env)
		if rv, ok := asReturn(err); ok {
			results = append(results, rv.orUndefined())
			break
		}
		if err != nil {
			return results, err
		}
		results = append(results, v.orUndefined())
	}
	return results, nil
}

// EvaluateAll parses and runs source, returning one result per top-level
// statement. env is mutated in place.
func (in *Interpreter) EvaluateAll(source string, env *Environment) ([]Value, error) {
	prog, err := in.Compile(source)
	if err != nil {
		return nil, err
	}
	return in.Run(prog, env)
}

// Evaluate runs source and returns the last statement's result, or
// undefined for an empty program.
func (in *Interpreter) Evaluate(source string, env *Environment) (Value, error) {
	results, err := in.EvaluateAll(source, env)
	if err != nil {
		return Undefined(), err
	}
	if len(results) == 0 {
		return Undefined(), nil
	}
	return results[len(results)-1], nil
}

// EvaluateAll runs source with a default interpreter.
func EvaluateAll(source string, env *Environment) ([]Value, error) {
	in, err := New()
	if err != nil {
		return nil, err
	}
	return in.EvaluateAll(source, env)
}

// Evaluate runs source with a default interpreter and returns the last
// result.
func Evaluate(source string, env *Environment) (Value, error) {
	in, err := New()
	if err != nil {
		return Undefined(), err
	}
	return in.Evaluate(source, env)
}
