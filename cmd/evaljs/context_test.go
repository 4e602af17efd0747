package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContext(t *testing.T) {
	want := map[string]any{
		"n":    1.0,
		"name": "box",
		"tags": []any{"a", "b"},
		"dims": map[string]any{"w": 2.0, "h": 3.0},
	}

	jsonPath := writeFile(t, "ctx.json", `{"n": 1, "name": "box", "tags": ["a", "b"], "dims": {"w": 2, "h": 3}}`)
	env, err := loadContext(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, want, env.Export())

	yamlPath := writeFile(t, "ctx.yml", "n: 1\nname: box\ntags: [a, b]\ndims:\n  w: 2\n  h: 3\n")
	env, err = loadContext(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, want, env.Export())

	env, err = loadContext("")
	require.NoError(t, err)
	assert.Empty(t, env.Names())
}

func TestLoadContextErrors(t *testing.T) {
	tests := []struct {
		name, file, content, wantErr string
	}{
		{"array json", "a.json", `[1, 2]`, "top level must be an object"},
		{"broken json", "b.json", `{"a":`, "b.json"},
		{"broken yaml", "c.yaml", "a: [1", "c.yaml"},
		{"extension", "d.toml", "a = 1", "unsupported extension"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadContext(writeFile(t, tt.file, tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}

	_, err := loadContext("/nonexistent/ctx.json")
	assert.ErrorContains(t, err, "read context")
}

func TestNewEnvHidesGlobals(t *testing.T) {
	env, hidden, err := newEnv("", true)
	require.NoError(t, err)
	assert.True(t, hidden["Math"])
	assert.False(t, env.Lookup("Math").IsUndefined())

	env.Declare("x", env.Lookup("NaN"))
	b, err := contextJSON(env, hidden)
	require.NoError(t, err)
	assert.Equal(t, `{"x":null}`, string(b))

	env, hidden, err = newEnv("", false)
	require.NoError(t, err)
	assert.Empty(t, hidden)
	assert.True(t, env.Lookup("Math").IsUndefined())
}
