package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/hayeah/apktree"
	"github.com/hayeah/apktree/internal/metrics"
	"github.com/hayeah/apktree/internal/metrics/chart"
	"github.com/hayeah/apktree/render"
)

// SizeCmd defines the command-line arguments for the size subcommand
type SizeCmd struct {
	FilterArgs
	Threshold  *float64 `arg:"-t,--threshold" help:"Collapse directories below this percent of the total (default from config, else 1)"`
	BarWidth   int      `arg:"--bar-width" help:"Bar width in columns; 0 sizes bars to the terminal"`
	Compressed bool     `arg:"-z,--compressed" help:"Chart compressed bytes instead of uncompressed"`
	Metrics    string   `arg:"-m,--metrics" help:"Write per-entry sizes as JSON ('-' = stdout)"`
	Archive    string   `arg:"positional,required" help:"Path to the APK or zip archive"`
}

// SizeRunner encapsulates the state and behavior for the size subcommand
type SizeRunner struct {
	Args      SizeCmd
	App       *App
	Stdout    io.Writer
	TermWidth func() int
}

func NewSizeRunner(cmd SizeCmd, app *App, stdout io.Writer) *SizeRunner {
	return &SizeRunner{Args: cmd, App: app, Stdout: stdout, TermWidth: chart.TerminalWidth}
}

// Run executes the size subcommand
func (r *SizeRunner) Run() error {
	rep := r.App.Analyzer.Analyze(r.Args.Archive, apktree.ModeList)
	if rep.Err != nil {
		if err := rep.Write(r.Stdout, nil); err != nil {
			return err
		}
		return errAnalysisFailed
	}

	sizes := metrics.NewSizes()
	if rep.Filtered() {
		// overhead is only meaningful against the whole entry table
		sizes.AddEntries(rep.Entries)
	} else {
		sizes.AddArchive(rep.Archive)
	}

	if err := render.Header(r.Stdout, *rep.Info); err != nil {
		return err
	}

	opt := chart.DefaultOptions(r.TermWidth, r.Stdout)
	opt.ThresholdPct = r.App.Config.Threshold
	if r.Args.Threshold != nil {
		opt.ThresholdPct = *r.Args.Threshold
	}
	opt.BarWidth = r.Args.BarWidth
	opt.Compressed = r.Args.Compressed
	if err := chart.Print(sizes, opt); err != nil {
		return err
	}

	if r.Args.Metrics != "" {
		return r.writeMetrics(sizes)
	}
	return nil
}

func (r *SizeRunner) writeMetrics(sizes *metrics.Sizes) error {
	data, err := json.MarshalIndent(sizes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metrics: %w", err)
	}
	data = append(data, '\n')

	if r.Args.Metrics == "-" {
		_, err = r.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(r.Args.Metrics, data, 0644); err != nil {
		return fmt.Errorf("failed to write metrics file %s: %w", r.Args.Metrics, err)
	}
	return nil
}
