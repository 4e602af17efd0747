package evaljs

import (
	"fmt"
	"log/slog"

	"github.com/linkxzhou/evaljs/ast"
	"github.com/linkxzhou/evaljs/parser"
)

// ScopeMode selects how function calls build their environment.
type ScopeMode int

const (
	// ScopeDynamic runs each call in a shallow copy of the caller's
	// environment. Declared functions see the bindings of whoever calls them.
	ScopeDynamic ScopeMode = iota
	// ScopeLexical runs each call in a child of the environment the function
	// was defined in, giving real closures.
	ScopeLexical
)

func (m ScopeMode) String() string {
	switch m {
	case ScopeDynamic:
		return "dynamic"
	case ScopeLexical:
		return "lexical"
	}
	return fmt.Sprintf("ScopeMode(%d)", int(m))
}

// ParseScopeMode maps "dynamic" or "lexical" to a ScopeMode.
func ParseScopeMode(s string) (ScopeMode, error) {
	switch s {
	case "", "dynamic":
		return ScopeDynamic, nil
	case "lexical":
		return ScopeLexical, nil
	}
	return ScopeDynamic, fmt.Errorf("unknown scope mode %q", s)
}

// DefaultMaxDepth bounds nested interpreted calls.
const DefaultMaxDepth = 1000

// Parser turns source text into a program.
type Parser interface {
	Parse(source string) (*ast.Program, error)
}

// Prototype holds methods looked up on arrays and strings when a member is
// not an index or length.
type Prototype struct {
	Array  map[string]NativeFunc
	String map[string]NativeFunc
}

type config struct {
	logger   *slog.Logger
	scope    ScopeMode
	parser   Parser
	compiler Compiler
	maxDepth int
	proto    Prototype
}

// Option configures an Interpreter.
type Option func(*config) error

// WithLogger sets the logger for evaluation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithScope selects dynamic or lexical function scoping.
func WithScope(mode ScopeMode) Option {
	return func(cfg *config) error {
		if mode != ScopeDynamic && mode != ScopeLexical {
			return fmt.Errorf("invalid scope mode %d", int(mode))
		}
		cfg.scope = mode
		return nil
	}
}

// WithParser replaces the source parser.
func WithParser(p Parser) Option {
	return func(cfg *config) error {
		if p == nil {
			return fmt.Errorf("parser cannot be nil")
		}
		cfg.parser = p
		return nil
	}
}

// WithCompiler replaces the compiler used for function and arrow literals.
func WithCompiler(c Compiler) Option {
	return func(cfg *config) error {
		if c == nil {
			return fmt.Errorf("compiler cannot be nil")
		}
		cfg.compiler = c
		return nil
	}
}

// WithMaxDepth sets the maximum interpreted call depth.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) error {
		if depth <= 0 {
			return fmt.Errorf("max depth must be positive, got %d", depth)
		}
		cfg.maxDepth = depth
		return nil
	}
}

// WithPrototype adds array and string methods. Later calls merge into and
// override earlier ones.
func WithPrototype(p Prototype) Option {
	return func(cfg *config) error {
		if cfg.proto.Array == nil {
			cfg.proto.Array = make(map[string]NativeFunc)
		}
		if cfg.proto.String == nil {
			cfg.proto.String = make(map[string]NativeFunc)
		}
		for k, fn := range p.Array {
			cfg.proto.Array[k] = fn
		}
		for k, fn := range p.String {
			cfg.proto.String[k] = fn
		}
		return nil
	}
}

func defaultConfig() *config {
	return &config{
		logger:   slog.Default(),
		scope:    ScopeDynamic,
		parser:   parser.New(),
		compiler: closureCompiler{},
		maxDepth: DefaultMaxDepth,
	}
}

func (cfg *config) validate() error {
	if cfg.logger == nil {
		return fmt.Errorf("logger must be specified")
	}
	if cfg.parser == nil {
		return fmt.Errorf("parser must be specified")
	}
	if cfg.compiler == nil {
		return fmt.Errorf("compiler must be specified")
	}
	if cfg.maxDepth <= 0 {
		return fmt.Errorf("max depth must be positive")
	}
	return nil
}
