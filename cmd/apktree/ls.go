package main

import (
	"bytes"
	"io"

	"github.com/hayeah/apktree"
)

// LsCmd defines the command-line arguments for the ls subcommand
type LsCmd struct {
	FilterArgs
	OutputArgs
	Archive string `arg:"positional,required" help:"Path to the APK or zip archive"`
}

// LsRunner encapsulates the state and behavior for the ls subcommand
type LsRunner struct {
	Args   LsCmd
	App    *App
	Stdout io.Writer
}

func NewLsRunner(cmd LsCmd, app *App, stdout io.Writer) *LsRunner {
	return &LsRunner{Args: cmd, App: app, Stdout: stdout}
}

// Run executes the ls subcommand
func (r *LsRunner) Run() error {
	rep := r.App.Analyzer.Analyze(r.Args.Archive, apktree.ModeList)

	var buf bytes.Buffer
	if err := rep.Write(&buf, nil); err != nil {
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
