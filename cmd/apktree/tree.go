package main

import (
	"bytes"
	"io"

	"github.com/hayeah/apktree"
	"github.com/hayeah/apktree/render"
)

// TreeCmd defines the command-line arguments for the tree subcommand
type TreeCmd struct {
	FilterArgs
	OutputArgs
	Format   string `arg:"-f,--format" help:"Output format: text or json (default from config, else text)"`
	Sort     bool   `arg:"--sort" help:"Sort siblings, directories first"`
	RootName string `arg:"--root-name" help:"Name of the root node"`
	Archive  string `arg:"positional,required" help:"Path to the APK or zip archive"`
}

// TreeRunner encapsulates the state and behavior for the tree subcommand
type TreeRunner struct {
	Args   TreeCmd
	App    *App
	Stdout io.Writer
}

func NewTreeRunner(cmd TreeCmd, app *App, stdout io.Writer) *TreeRunner {
	return &TreeRunner{Args: cmd, App: app, Stdout: stdout}
}

// renderer picks the tree renderer from the flags, falling back to config.
func (r *TreeRunner) renderer() (render.TreeRenderer, error) {
	format := r.Args.Format
	if format == "" {
		format = r.App.Config.Format
	}
	tr, err := render.ForFormat(format)
	if err != nil {
		return nil, err
	}

	sorted := r.Args.Sort || r.App.Config.Sort
	switch v := tr.(type) {
	case render.Text:
		v.Sort = sorted
		return v, nil
	case render.JSON:
		v.Sort = sorted
		return v, nil
	}
	return tr, nil
}

// Run executes the tree subcommand
func (r *TreeRunner) Run() error {
	tr, err := r.renderer()
	if err != nil {
		return err
	}

	rep := r.App.Analyzer.Analyze(r.Args.Archive, apktree.ModeTree)

	var buf bytes.Buffer
	if err := rep.Write(&buf, tr); err != nil {
		return err
	}
	if err := emit(r.Args.OutputArgs, &buf, r.Stdout); err != nil {
		return err
	}
	if rep.Err != nil {
		return errAnalysisFailed
	}
	return nil
}
