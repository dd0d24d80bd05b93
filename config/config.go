// Package config loads apktree defaults from an optional config file, a .env
// file and the environment. Command-line flags are applied on top by the
// caller.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"

	"github.com/hayeah/apktree/tree"
)

// DefaultFiles are tried in order when no config path is given.
var DefaultFiles = []string{".apktree.toml", ".apktree.jsonc", ".apktree.json"}

type Config struct {
	RootName   string   `toml:"root_name" json:"root_name"`
	Format     string   `toml:"format" json:"format"`
	Sort       bool     `toml:"sort" json:"sort"`
	Select     string   `toml:"select" json:"select"`
	Exclude    []string `toml:"exclude" json:"exclude"`
	IgnoreFile string   `toml:"ignore_file" json:"ignore_file"`
	Threshold  float64  `toml:"threshold" json:"threshold"`
	LogLevel   string   `toml:"log_level" json:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		RootName:  tree.DefaultRootName,
		Format:    "text",
		Threshold: 1,
		LogLevel:  "warn",
	}
}

// Load builds the configuration for one CLI run. path may be empty, in which
// case DefaultFiles are looked up in dir. Variables from dir/.env fill in
// whatever the process environment leaves unset.
func Load(dir string, path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = Discover(dir)
	}
	if path != "" {
		if err := cfg.ReadFile(path); err != nil {
			return nil, err
		}
	}

	dotenv, err := godotenv.Read(filepath.Join(dir, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	getenv := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return dotenv[key]
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Discover returns the first of DefaultFiles present in dir, or "".
func Discover(dir string) string {
	for _, name := range DefaultFiles {
		p := filepath.Join(dir, name)
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p
		}
	}
	return ""
}

// ReadFile merges the file at path into cfg. The format follows the
// extension: .toml, or .json/.jsonc (comments and trailing commas allowed).
func (cfg *Config) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("failed to parse TOML config %s: %w", path, err)
		}
	case ".json", ".jsonc":
		std, err := hujson.Standardize(data)
		if err != nil {
			return fmt.Errorf("failed to parse JSONC config %s: %w", path, err)
		}
		if err := json.Unmarshal(std, cfg); err != nil {
			return fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// ApplyEnv overrides fields from APKTREE_* variables.
func (cfg *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("APKTREE_ROOT_NAME")); v != "" {
		cfg.RootName = v
	}
	if v := strings.TrimSpace(getenv("APKTREE_FORMAT")); v != "" {
		cfg.Format = v
	}
	if v := strings.TrimSpace(getenv("APKTREE_SELECT")); v != "" {
		cfg.Select = v
	}
	if v := strings.TrimSpace(getenv("APKTREE_EXCLUDE")); v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.Exclude = append(cfg.Exclude, p)
			}
		}
	}
	if v := strings.TrimSpace(getenv("APKTREE_IGNORE_FILE")); v != "" {
		cfg.IgnoreFile = v
	}
	if v := strings.TrimSpace(getenv("APKTREE_THRESHOLD")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid APKTREE_THRESHOLD %q: %w", v, err)
		}
		cfg.Threshold = f
	}
	if v := strings.TrimSpace(getenv("APKTREE_LOG_LEVEL")); v != "" {
		cfg.LogLevel = v
	}
	return nil
}
