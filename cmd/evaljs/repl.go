package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/linkxzhou/evaljs"
	"github.com/linkxzhou/evaljs/parser"
	"github.com/linkxzhou/evaljs/stdlib"
)

const (
	promptMain = "> "
	promptCont = "... "
)

const replHelp = `:env    list bindings
:help   show this help
:quit   leave the REPL`

// lineReader is the part of liner the REPL loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// session is one REPL run: an interpreter and the environment that
// persists across inputs.
type session struct {
	in     *evaljs.Interpreter
	env    *evaljs.Environment
	hidden map[string]bool
	p      *printer
}

func cmdRepl(cfg Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	bindCommon(fs, &cfg)
	contextPath := fs.String("context", "", "initial variables from a .json or .yaml file")
	fs.StringVar(&cfg.HistoryFile, "history", cfg.HistoryFile, "history file, empty to disable")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	s, err := newSession(cfg, *contextPath, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(cfg.HistoryFile); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	fmt.Fprintf(stdout, "evaljs %s (%s scope). Type :help for commands.\n", evaljs.Version, cfg.Scope)
	s.loop(ln)
	return 0
}

func newSession(cfg Config, contextPath string, stdout, stderr io.Writer) (*session, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	in, err := cfg.interpreter(cfg.logger(stderr))
	if err != nil {
		return nil, err
	}
	env, hidden, err := newEnv(contextPath, cfg.Stdlib, stdlib.WithOutput(stdout))
	if err != nil {
		return nil, err
	}
	return &session{in: in, env: env, hidden: hidden, p: newPrinter(stdout, stderr, cfg.Color)}, nil
}

// loop reads inputs until EOF or :quit.
func (s *session) loop(r lineReader) {
	for {
		src, ok := readInput(r)
		if !ok {
			return
		}
		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		r.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if strings.HasPrefix(trimmed, ":") {
			if !s.command(trimmed) {
				return
			}
			continue
		}
		s.eval(src)
	}
}

// command runs a REPL command and reports whether to keep going.
func (s *session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return false
	case ":help":
		s.p.raw(replHelp)
	case ":env":
		for _, name := range s.env.Names() {
			if s.hidden[name] {
				continue
			}
			s.p.raw(name + " = " + s.env.Lookup(name).Inspect())
		}
	default:
		s.p.error(fmt.Errorf("unknown command %s, type :help", cmd))
	}
	return true
}

func (s *session) eval(src string) {
	v, err := s.in.Evaluate(src, s.env)
	if err != nil {
		s.p.error(err)
		return
	}
	s.p.value(v)
}

// readInput collects lines until they parse or fail for a reason other
// than running out of input. ok is false at EOF.
func readInput(r lineReader) (src string, ok bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := r.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		src = b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, err := parser.Parse(src); err != nil && parser.IsIncomplete(err) {
			continue
		}
		return src, true
	}
}
