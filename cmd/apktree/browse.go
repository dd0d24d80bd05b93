package main

import (
	"fmt"
	"io"

	"github.com/hayeah/apktree"
)

// BrowseCmd defines the command-line arguments for the browse subcommand
type BrowseCmd struct {
	FilterArgs
	Archive string `arg:"positional,required" help:"Path to the APK or zip archive"`
}

// BrowseRunner encapsulates the state and behavior for the browse subcommand
type BrowseRunner struct {
	Args   BrowseCmd
	App    *App
	Stdout io.Writer
}

func NewBrowseRunner(cmd BrowseCmd, app *App, stdout io.Writer) *BrowseRunner {
	return &BrowseRunner{Args: cmd, App: app, Stdout: stdout}
}

// Run executes the browse subcommand. The chosen path, if any, is printed to
// stdout.
func (r *BrowseRunner) Run() error {
	rep := r.App.Analyzer.Analyze(r.Args.Archive, apktree.ModeTree)
	if rep.Err != nil {
		if err := rep.Write(r.Stdout, nil); err != nil {
			return err
		}
		return errAnalysisFailed
	}

	title := fmt.Sprintf("%s (%d files)", rep.Info.AbsPath, rep.Tree.Leaves())
	chosen, err := browseInteractively(title, rep.Tree)
	if err != nil {
		return err
	}
	if chosen != "" {
		fmt.Fprintln(r.Stdout, chosen)
	}
	return nil
}
