// Command evaljs runs scripts and expressions with the evaljs interpreter.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/linkxzhou/evaljs"
	"github.com/linkxzhou/evaljs/stdlib"
)

const appName = "evaljs"

func main() {
	os.Exit(runMain(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func runMain(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}

	cfg, err := loadConfig(getenv)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}

	switch cmd := args[0]; cmd {
	case "run":
		return cmdRun(cfg, args[1:], stdout, stderr)
	case "eval":
		return cmdEval(cfg, args[1:], stdout, stderr)
	case "repl":
		return cmdRepl(cfg, args[1:], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, evaljs.Version)
		return 0
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "%s: unknown command %q\n", appName, cmd)
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintf(w, `evaljs %s

Usage:
  %s run [flags] <file>     Run a script file.
  %s eval [flags] <source>  Evaluate source given on the command line.
  %s repl [flags]           Start the REPL.
  %s version                Print the version.

Settings are read from $%s or ~/%s; flags override them.
`, evaljs.Version, appName, appName, appName, appName, configEnv, configFile)
}

// runFlags are shared by run and eval.
type runFlags struct {
	context string
	json    bool
	all     bool

	// quiet drops an undefined final result.
	quiet bool
}

// bindCommon registers the flags every evaluating subcommand accepts,
// defaulting to the config values.
func bindCommon(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Scope, "scope", cfg.Scope, "function scope mode: dynamic or lexical")
	fs.IntVar(&cfg.MaxDepth, "max-depth", cfg.MaxDepth, "maximum nested call depth")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "color output when writing to a terminal")
	fs.BoolVar(&cfg.Stdlib, "stdlib", cfg.Stdlib, "install Math, JSON, console and the other globals")
}

func bindRun(fs *flag.FlagSet, cfg *Config) *runFlags {
	rf := &runFlags{}
	bindCommon(fs, cfg)
	fs.StringVar(&rf.context, "context", "", "initial variables from a .json or .yaml file")
	fs.BoolVar(&rf.json, "json", false, "print the final context as JSON")
	fs.BoolVar(&rf.all, "all", false, "print every statement result instead of the last")
	return rf
}

func cmdRun(cfg Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rf := bindRun(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: %s run [flags] <file>\n", appName)
		return 2
	}

	src, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", appName, err)
		return 1
	}
	rf.quiet = true
	return evaluate(cfg, rf, string(src), stdout, stderr)
}

func cmdEval(cfg Config, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("eval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rf := bindRun(fs, &cfg)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "usage: %s eval [flags] <source>\n", appName)
		return 2
	}
	return evaluate(cfg, rf, fs.Arg(0), stdout, stderr)
}

func evaluate(cfg Config, rf *runFlags, source string, stdout, stderr io.Writer) int {
	p := newPrinter(stdout, stderr, cfg.Color)
	if err := cfg.validate(); err != nil {
		p.error(err)
		return 2
	}
	in, err := cfg.interpreter(cfg.logger(stderr))
	if err != nil {
		p.error(err)
		return 1
	}
	env, hidden, err := newEnv(rf.context, cfg.Stdlib, stdlib.WithOutput(stdout))
	if err != nil {
		p.error(err)
		return 1
	}

	results, err := in.EvaluateAll(source, env)
	if err != nil {
		p.error(err)
		if errors.Is(err, evaljs.ErrMaxDepth) {
			return 3
		}
		return 1
	}

	switch {
	case rf.json:
		b, err := contextJSON(env, hidden)
		if err != nil {
			p.error(err)
			return 1
		}
		p.raw(string(b))
	case rf.all:
		for _, v := range results {
			p.value(v)
		}
	case len(results) > 0:
		last := results[len(results)-1]
		if !rf.quiet || !last.IsUndefined() {
			p.value(last)
		}
	}
	return 0
}
