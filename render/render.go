// Package render writes analysis results for people and programs. The tree
// model stays in package tree; every renderer here is a swappable adapter over
// it.
package render

import (
	"fmt"
	"io"

	"github.com/hayeah/apktree/archive"
	"github.com/hayeah/apktree/tree"
)

// TreeRenderer writes a tree rooted at root.
type TreeRenderer interface {
	RenderTree(w io.Writer, root *tree.Node) error
}

// Formats accepted by ForFormat.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ForFormat returns the renderer for a --format value.
func ForFormat(format string) (TreeRenderer, error) {
	switch format {
	case "", FormatText:
		return Text{}, nil
	case FormatJSON:
		return JSON{Indent: "  "}, nil
	default:
		return nil, fmt.Errorf("unknown format %q, use %q or %q", format, FormatText, FormatJSON)
	}
}

// MB converts bytes to mebibytes, the unit shown in the header.
func MB(bytes int64) float64 {
	return float64(bytes) / 1024.0 / 1024.0
}

// Header writes the file path and size lines followed by a blank line.
func Header(w io.Writer, info archive.Info) error {
	_, err := fmt.Fprintf(w, "File: %s\nSize: %d bytes (~%.2f MB)\n\n", info.AbsPath, info.Size, MB(info.Size))
	return err
}
