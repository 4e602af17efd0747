package stdlib

import (
	"fmt"
	"io"
	"strings"

	"github.com/linkxzhou/evaljs"
)

func jsonObject() evaljs.Value {
	return evaljs.ObjectValue(object(map[string]evaljs.NativeFunc{
		"stringify": jsonStringify,
		"parse":     jsonParse,
	}))
}

// jsonStringify returns undefined for values JSON cannot represent at the
// top level.
func jsonStringify(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
	v := arg(args, 0)
	if v.IsUndefined() || v.Type == evaljs.TypeFunction {
		return evaljs.Undefined(), nil
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return evaljs.Undefined(), fmt.Errorf("JSON.stringify: %w", err)
	}
	return evaljs.NewString(string(b)), nil
}

func jsonParse(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
	v, err := evaljs.ParseJSON([]byte(evaljs.ToString(arg(args, 0))))
	if err != nil {
		return evaljs.Undefined(), fmt.Errorf("JSON.parse: %w", err)
	}
	return v, nil
}

func consoleObject(out io.Writer) evaljs.Value {
	write := func(_ evaljs.Value, args []evaljs.Value) (evaljs.Value, error) {
		parts := make([]string, len(args))
		for i, a := range args {
			if a.Type == evaljs.TypeString {
				parts[i] = a.Str
			} else {
				parts[i] = a.Inspect()
			}
		}
		if _, err := fmt.Fprintln(out, strings.Join(parts, " ")); err != nil {
			return evaljs.Undefined(), fmt.Errorf("console: %w", err)
		}
		return evaljs.Undefined(), nil
	}
	return evaljs.ObjectValue(object(map[string]evaljs.NativeFunc{
		"log":   write,
		"info":  write,
		"warn":  write,
		"error": write,
		"debug": write,
	}))
}
