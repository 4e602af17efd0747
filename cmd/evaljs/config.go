package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/linkxzhou/evaljs"
	"github.com/linkxzhou/evaljs/stdlib"
)

const (
	configEnv   = "EVALJS_CONFIG"
	configFile  = ".evaljs.yaml"
	historyFile = ".evaljs_history"
)

// Config holds CLI settings. Fields absent from the file keep their
// defaults; command-line flags override both.
type Config struct {
	Scope       string `yaml:"scope"`
	MaxDepth    int    `yaml:"max_depth"`
	LogLevel    string `yaml:"log_level"`
	Color       bool   `yaml:"color"`
	HistoryFile string `yaml:"history_file"`
	Stdlib      bool   `yaml:"stdlib"`
}

func defaultConfig() Config {
	cfg := Config{
		Scope:    evaljs.ScopeDynamic.String(),
		MaxDepth: evaljs.DefaultMaxDepth,
		LogLevel: "warn",
		Color:    true,
		Stdlib:   true,
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, historyFile)
	}
	return cfg
}

// configPath returns the config file to read and whether it was named
// explicitly through the environment.
func configPath(getenv func(string) string) (string, bool) {
	if p := getenv(configEnv); p != "" {
		return p, true
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, configFile), false
}

// loadConfig reads the config file over the defaults. A missing default
// file is not an error; a missing file named by EVALJS_CONFIG is.
func loadConfig(getenv func(string) string) (Config, error) {
	cfg := defaultConfig()
	path, explicit := configPath(getenv)
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := decodeConfig(f, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.validate()
}

func (c Config) validate() error {
	if _, err := evaljs.ParseScopeMode(c.Scope); err != nil {
		return err
	}
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return lvl, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// logger returns a text logger on w at the configured level.
func (c Config) logger(w io.Writer) *slog.Logger {
	lvl, err := c.level()
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// interpreter builds an interpreter from the config.
func (c Config) interpreter(logger *slog.Logger) (*evaljs.Interpreter, error) {
	scope, err := evaljs.ParseScopeMode(c.Scope)
	if err != nil {
		return nil, err
	}
	opts := []evaljs.Option{
		evaljs.WithLogger(logger),
		evaljs.WithScope(scope),
		evaljs.WithMaxDepth(c.MaxDepth),
	}
	if c.Stdlib {
		opts = append(opts, evaljs.WithPrototype(stdlib.Prototypes()))
	}
	return evaljs.New(opts...)
}
