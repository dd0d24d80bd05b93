// Package apktree analyzes the contents of APK and other zip-compatible
// archives. An Analyzer reads the entry table once and produces either a
// directory tree or a flat listing.
package apktree

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hayeah/apktree/archive"
	"github.com/hayeah/apktree/ignore"
	"github.com/hayeah/apktree/internal/selection"
	"github.com/hayeah/apktree/listing"
	"github.com/hayeah/apktree/render"
	"github.com/hayeah/apktree/tree"
)

// Mode picks the output of an analysis.
type Mode int

const (
	ModeTree Mode = iota // fold entries into a tree
	ModeList             // one [D]/[F] line per entry
)

func (m Mode) String() string {
	switch m {
	case ModeTree:
		return "tree"
	case ModeList:
		return "list"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Analyzer holds the settings shared by analysis runs. It keeps no state
// between runs.
type Analyzer struct {
	Logger   *slog.Logger
	Ignore   *ignore.Ignore // nil keeps every entry
	Select   string         // selection pattern, empty keeps every entry
	RootName string
}

// Report is the outcome of one run. When Err is set the run stopped early and
// Tree or Listing hold whatever was built before the failure.
type Report struct {
	Mode    Mode
	Info    *archive.Info    // nil if the file could not be stat'ed
	Archive *archive.Archive // unfiltered entry table
	Entries []archive.Entry  // entries after ignore and select; unfiltered if filtering failed
	Tree    *tree.Node       // set in ModeTree
	Listing *listing.Listing // set in ModeList
	Err     error
}

// Filtered reports whether ignore or select dropped any entries. A failed
// run is never filtered.
func (r *Report) Filtered() bool {
	if r.Err != nil || r.Archive == nil {
		return false
	}
	return len(r.Entries) != len(r.Archive.Entries)
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// Analyze reads the archive at path and builds the output for mode. It never
// returns an error: failures are logged once and recorded on the report.
func (a *Analyzer) Analyze(path string, mode Mode) *Report {
	log := a.logger().With("path", path, "mode", mode.String())

	rep := &Report{Mode: mode}
	var builder *tree.Builder
	switch mode {
	case ModeList:
		rep.Listing = &listing.Listing{}
	default:
		rep.Mode = ModeTree
		builder = tree.NewBuilder(a.RootName)
		rep.Tree = builder.Root()
	}

	info, err := archive.Stat(path)
	if err != nil {
		return a.fail(log, rep, err)
	}
	rep.Info = &info

	ar, err := archive.OpenInfo(info)
	if err != nil {
		return a.fail(log, rep, err)
	}
	rep.Archive = ar
	rep.Entries = ar.Entries
	log.Debug("read entry table", "entries", len(ar.Entries), "bytes", ar.Size)

	entries := ar.Entries
	if a.Ignore != nil {
		entries = a.Ignore.Filter(entries)
	}
	entries, err = selection.Filter(entries, a.Select)
	if err != nil {
		return a.fail(log, rep, fmt.Errorf("failed to apply selection: %w", err))
	}
	rep.Entries = entries

	for _, e := range entries {
		if builder != nil {
			builder.Add(e)
		} else {
			rep.Listing.Add(e)
		}
	}

	log.Debug("analysis done", "kept", len(entries), "dropped", len(ar.Entries)-len(entries))
	return rep
}

func (a *Analyzer) fail(log *slog.Logger, rep *Report, err error) *Report {
	log.Error("analysis failed", "err", err)
	rep.Err = err
	return rep
}

// Write prints the header, then either the failure message or the output
// for the report's mode. tr renders trees and may be nil in ModeList.
func (r *Report) Write(w io.Writer, tr render.TreeRenderer) error {
	if r.Info != nil {
		if err := render.Header(w, *r.Info); err != nil {
			return err
		}
	}

	if r.Err != nil {
		_, err := fmt.Fprintf(w, "analysis failed: %v\n", r.Err)
		return err
	}

	if r.Mode == ModeList {
		return render.Listing(w, r.Listing)
	}
	if tr == nil {
		tr = render.Text{}
	}
	return tr.RenderTree(w, r.Tree)
}
