package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedReader feeds fixed lines and then reports EOF.
type scriptedReader struct {
	lines   []string
	prompts []string
	history []string
}

func (r *scriptedReader) Prompt(prompt string) (string, error) {
	r.prompts = append(r.prompts, prompt)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) AppendHistory(item string) {
	r.history = append(r.history, item)
}

func TestReadInputMultiline(t *testing.T) {
	r := &scriptedReader{lines: []string{"function f(a) {", "  return a * 2;", "}"}}
	src, ok := readInput(r)
	require.True(t, ok)
	assert.Equal(t, "function f(a) {\n  return a * 2;\n}", src)
	assert.Equal(t, []string{promptMain, promptCont, promptCont}, r.prompts)

	_, ok = readInput(&scriptedReader{})
	assert.False(t, ok)
}

func TestReadInputStopsOnHardError(t *testing.T) {
	r := &scriptedReader{lines: []string{"1 +* 2", "never"}}
	src, ok := readInput(r)
	require.True(t, ok)
	assert.Equal(t, "1 +* 2", src)
}

func TestSessionLoop(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cfg := defaultConfig()
	cfg.Color = false
	s, err := newSession(cfg, "", &stdout, &stderr)
	require.NoError(t, err)

	r := &scriptedReader{lines: []string{
		"let x = 2",
		"",
		"function sq(n) {",
		"  return n * n;",
		"}",
		"sq(x)",
		":env",
		":nope",
		"1 +* 2",
		":quit",
		"x",
	}}
	s.loop(r)

	assert.Equal(t, "2\nundefined\n4\nsq = [Function: sq]\nx = 2\n", stdout.String())
	assert.Contains(t, stderr.String(), "unknown command :nope")
	assert.Contains(t, stderr.String(), "parse")
	assert.Equal(t, []string{"x"}, r.lines, "input after :quit is not read")
	assert.Contains(t, r.history, "function sq(n) {   return n * n; }")
}
