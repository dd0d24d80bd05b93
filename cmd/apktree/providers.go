package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hayeah/apktree"
	"github.com/hayeah/apktree/config"
	"github.com/hayeah/apktree/ignore"
	"github.com/hayeah/apktree/internal/selection"
)

// AppOptions are the command-line inputs that shape the shared services.
type AppOptions struct {
	Dir        string // where config files and .env are looked up
	ConfigPath string
	Verbose    bool
	RootName   string
	Filter     FilterArgs
}

// App is the set of services a subcommand runs with.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Analyzer *apktree.Analyzer
}

// ProvideConfig loads file and env settings, then applies the flags.
func ProvideConfig(opts AppOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.Dir, opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	if opts.RootName != "" {
		cfg.RootName = opts.RootName
	}
	if opts.Filter.Select != "" {
		cfg.Select = opts.Filter.Select
	}
	if opts.Filter.IgnoreFile != "" {
		cfg.IgnoreFile = opts.Filter.IgnoreFile
	}
	cfg.Exclude = append(cfg.Exclude, opts.Filter.Exclude...)
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// ProvideLogger returns a text logger on stderr at the configured level.
func ProvideLogger(cfg *config.Config) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(cfg.LogLevel))); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}

// ProvideIgnore compiles the exclude patterns.
func ProvideIgnore(cfg *config.Config) (*ignore.Ignore, error) {
	return ignore.Load(cfg.IgnoreFile, cfg.Exclude)
}

// ProvideAnalyzer rejects a malformed select pattern before any archive is
// read.
func ProvideAnalyzer(cfg *config.Config, logger *slog.Logger, ig *ignore.Ignore) (*apktree.Analyzer, error) {
	if err := selection.Validate(cfg.Select); err != nil {
		return nil, fmt.Errorf("invalid select pattern %q: %w", cfg.Select, err)
	}
	return &apktree.Analyzer{
		Logger:   logger,
		Ignore:   ig,
		Select:   cfg.Select,
		RootName: cfg.RootName,
	}, nil
}
