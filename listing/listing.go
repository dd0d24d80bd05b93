// Package listing is the flat alternative to the tree: one tagged line per
// archive entry, in enumeration order.
package listing

import (
	"github.com/hayeah/apktree/archive"
)

const (
	DirPrefix  = "[D] "
	FilePrefix = "[F] "
)

// Listing accumulates formatted lines and running counts.
type Listing struct {
	Lines []string
	Dirs  int
	Files int
}

// Add classifies e and appends its line.
func (l *Listing) Add(e archive.Entry) {
	if e.IsDir {
		l.Dirs++
		l.Lines = append(l.Lines, DirPrefix+e.Path)
		return
	}
	l.Files++
	l.Lines = append(l.Lines, FilePrefix+e.Path)
}

// Total is the number of entries seen.
func (l *Listing) Total() int {
	return l.Dirs + l.Files
}

// Build lists entries in order.
func Build(entries []archive.Entry) *Listing {
	l := &Listing{Lines: make([]string, 0, len(entries))}
	for _, e := range entries {
		l.Add(e)
	}
	return l
}
