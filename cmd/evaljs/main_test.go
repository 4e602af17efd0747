package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolated returns a getenv that points the config at a fresh file holding
// content.
func isolated(t *testing.T, content string) func(string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "evaljs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return func(key string) string {
		if key == configEnv {
			return path
		}
		return ""
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, getenv func(string) string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := runMain(args, &stdout, &stderr, getenv)
	return code, stdout.String(), stderr.String()
}

func TestEval(t *testing.T) {
	env := isolated(t, "")
	tests := []struct {
		name string
		args []string
		want string
		code int
	}{
		{"arithmetic", []string{"eval", "1 + 2 * 3"}, "7\n", 0},
		{"string", []string{"eval", "'a' + 'b'"}, "\"ab\"\n", 0},
		{"all", []string{"eval", "-all", "1; 2"}, "1\n2\n", 0},
		{"unresolved", []string{"eval", "nope"}, "undefined\n", 0},
		{"stdlib", []string{"eval", "Math.max(1, 4)"}, "4\n", 0},
		{"no stdlib", []string{"eval", "-stdlib=false", "Math"}, "undefined\n", 0},
		{"console", []string{"eval", "console.log('hi')"}, "hi\nundefined\n", 0},
		{"json", []string{"eval", "-json", "x = [1]; y = {k: 'v'}"}, `{"x":[1],"y":{"k":"v"}}` + "\n", 0},
		{"lexical", []string{"eval", "-scope", "lexical", "const mk = n => () => n; mk(5)()"}, "5\n", 0},
		{"bad scope", []string{"eval", "-scope", "weird", "1"}, "", 2},
		{"missing arg", []string{"eval"}, "", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, _ := execute(t, env, tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestEvalErrors(t *testing.T) {
	env := isolated(t, "")

	code, _, stderr := execute(t, env, "eval", "1 +")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "parse")

	code, _, stderr = execute(t, env, "eval", "-max-depth", "20", "function f() { return f(); } f()")
	assert.Equal(t, 3, code)
	assert.Contains(t, stderr, "depth")
}

func TestRun(t *testing.T) {
	env := isolated(t, "")
	script := writeFile(t, "prog.js", `
function total(xs) {
  return xs.reduce((a, b) => a + b, 0);
}
console.log(total(items));
`)
	ctx := writeFile(t, "ctx.yaml", "items: [1, 2, 3]\n")

	code, out, stderr := execute(t, env, "run", "-context", ctx, script)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "6\n", out)

	code, out, _ = execute(t, env, "run", "-context", ctx, "-json", writeFile(t, "set.js", "items.push(4); n = items.length"))
	require.Equal(t, 0, code)
	assert.Equal(t, `{"items":[1,2,3,4],"n":4}`+"\n", out)

	code, _, _ = execute(t, env, "run", filepath.Join(t.TempDir(), "missing.js"))
	assert.Equal(t, 1, code)
}

func TestRunContextOverridesGlobals(t *testing.T) {
	env := isolated(t, "")
	ctx := writeFile(t, "ctx.json", `{"console": "mine"}`)
	code, out, _ := execute(t, env, "eval", "-context", ctx, "-json", "console")
	require.Equal(t, 0, code)
	assert.Equal(t, `{"console":"mine"}`+"\n", out)
}

func TestConfigFileApplies(t *testing.T) {
	env := isolated(t, "scope: lexical\nstdlib: false\n")
	code, out, _ := execute(t, env, "eval", "-all", "const mk = n => () => n; mk(2)(); Math")
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"2", "undefined"}, lines[1:])

	code, out, _ = execute(t, env, "eval", "-stdlib", "Math.abs(-1)")
	require.Equal(t, 0, code)
	assert.Equal(t, "1\n", out)
}

func TestVersionAndUsage(t *testing.T) {
	env := isolated(t, "")
	code, out, _ := execute(t, env, "version")
	assert.Equal(t, 0, code)
	assert.NotEmpty(t, strings.TrimSpace(out))

	code, _, stderr := execute(t, env, "bogus")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unknown command")

	code, _, _ = execute(t, env)
	assert.Equal(t, 2, code)

	code, _, stderr = execute(t, isolated(t, "max_depth: -1\n"), "version")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "max_depth")
}
