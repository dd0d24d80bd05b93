package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/hayeah/apktree/config"
)

// ExcludeCmd defines the command-line arguments for the exclude subcommand
type ExcludeCmd struct {
	Patterns []string `arg:"positional,required" help:"gitignore patterns to add to the config's exclude list"`
}

// ExcludeRunner appends exclude patterns to the JSONC config file
type ExcludeRunner struct {
	Args       ExcludeCmd
	Dir        string
	ConfigPath string
	Stdout     io.Writer
}

func NewExcludeRunner(cmd ExcludeCmd, dir, configPath string, stdout io.Writer) *ExcludeRunner {
	return &ExcludeRunner{Args: cmd, Dir: dir, ConfigPath: configPath, Stdout: stdout}
}

// target is --config, else the discovered config, else a new .apktree.jsonc.
func (r *ExcludeRunner) target() string {
	if r.ConfigPath != "" {
		return r.ConfigPath
	}
	if p := config.Discover(r.Dir); p != "" {
		return p
	}
	return filepath.Join(r.Dir, ".apktree.jsonc")
}

// Run executes the exclude subcommand
func (r *ExcludeRunner) Run() error {
	path := r.target()
	added, err := config.AddExclude(path, r.Args.Patterns...)
	if err != nil {
		return err
	}
	if len(added) == 0 {
		fmt.Fprintf(r.Stdout, "%s already excludes every pattern\n", path)
		return nil
	}
	for _, p := range added {
		fmt.Fprintf(r.Stdout, "excluded %s\n", p)
	}
	fmt.Fprintf(r.Stdout, "updated %s\n", path)
	return nil
}
