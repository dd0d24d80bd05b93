package ignore

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"

	"github.com/hayeah/apktree/archive"
)

// Ignore matches archive entry paths against gitignore patterns
type Ignore struct {
	matcher  gitignore.Matcher
	patterns []string
}

// New compiles patterns. Blank lines and "#" comments are skipped.
func New(patterns []string) *Ignore {
	var kept []string
	var ps []gitignore.Pattern
	for _, p := range patterns {
		p = strings.TrimRight(p, "\r")
		if strings.TrimSpace(p) == "" || strings.HasPrefix(p, "#") {
			continue
		}
		kept = append(kept, p)
		ps = append(ps, gitignore.ParsePattern(p, nil))
	}
	return &Ignore{
		matcher:  gitignore.NewMatcher(ps),
		patterns: kept,
	}
}

// Load combines patterns read from the file at path (skipped when path is
// empty) with extra patterns given on the command line. Extra patterns come
// last so they take precedence.
func Load(path string, extra []string) (*Ignore, error) {
	var patterns []string
	if path != "" {
		fs := osfs.New(filepath.Dir(path))
		fromFile, err := ReadFile(fs, filepath.Base(path))
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, fromFile...)
	}
	patterns = append(patterns, extra...)
	return New(patterns), nil
}

// ReadFile reads one pattern per line from name in fs.
func ReadFile(fs billy.Filesystem, name string) ([]string, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open ignore file: %w", err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		patterns = append(patterns, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ignore file %s: %w", name, err)
	}
	return patterns, nil
}

// Patterns returns the compiled patterns in order.
func (ig *Ignore) Patterns() []string {
	return ig.patterns
}

// IsIgnored checks the slash separated entry path. A path below an ignored
// directory is ignored too.
func (ig *Ignore) IsIgnored(path string, isDir bool) bool {
	if len(ig.patterns) == 0 {
		return false
	}

	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return false
	}
	return ig.matcher.Match(parts, isDir)
}

// Filter drops ignored entries, keeping the order of the rest.
func (ig *Ignore) Filter(entries []archive.Entry) []archive.Entry {
	if len(ig.patterns) == 0 {
		return entries
	}
	out := make([]archive.Entry, 0, len(entries))
	for _, e := range entries {
		if ig.IsIgnored(e.Path, e.IsDir) {
			continue
		}
		out = append(out, e)
	}
	return out
}
