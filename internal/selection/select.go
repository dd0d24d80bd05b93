// Package selection picks archive entries by path pattern.
//
// # Pattern Syntax
//
// 1. Fuzzy Matching (default):
//   - Example: "mani" matches "AndroidManifest.xml" and "META-INF/MANIFEST.MF"
//
// 2. Regular Expression Matching:
//   - Prefix: "/"
//   - Example: "/\.dex$" matches every dex file
//
// 3. Exact Path Matching:
//   - Prefix: "="
//   - Example: "=AndroidManifest.xml" matches only that entry
//
// 4. Glob Matching:
//   - Any pattern containing '*' or '?'
//   - Example: "res/**/*.xml" matches every XML file under res
//
// 5. Negation (exclude matches):
//   - Prefix: "!"
//   - Example: "!/\.png$" keeps everything but png files
//
// 6. Compound Patterns (logical AND):
//   - Separator: "|"
//   - Example: "res|/\.xml$|!drawable"
//
// 7. Union Patterns (logical OR):
//   - Separator: ";"
//   - Example: "lib/;assets/"
//
// Several patterns may be given one per line; blank lines and lines starting
// with "#" are skipped. The lines are OR-ed together.
package selection

import (
	"bufio"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sahilm/fuzzy"

	"github.com/hayeah/apktree/archive"
	"github.com/hayeah/apktree/internal/set"
)

// Matcher selects a subset of paths. Implementations return matches in the
// order of the input.
type Matcher interface {
	Match(paths []string) ([]string, error)
}

// ExactPathMatcher matches one path exactly.
type ExactPathMatcher struct {
	Path string
}

func (m ExactPathMatcher) Match(paths []string) ([]string, error) {
	for _, p := range paths {
		if p == m.Path {
			return []string{p}, nil
		}
	}
	return []string{}, nil
}

// FuzzyMatcher matches paths that contain the pattern's characters in order.
type FuzzyMatcher struct {
	Pattern string
}

func (m FuzzyMatcher) Match(paths []string) ([]string, error) {
	if m.Pattern == "" {
		return paths, nil
	}

	hit := make(map[int]bool)
	for _, match := range fuzzy.Find(m.Pattern, paths) {
		hit[match.Index] = true
	}

	out := make([]string, 0, len(hit))
	for i, p := range paths {
		if hit[i] {
			out = append(out, p)
		}
	}
	return out, nil
}

// GlobMatcher matches with doublestar globs, including "**".
type GlobMatcher struct {
	Pattern string
}

func NewGlobMatcher(pattern string) (GlobMatcher, error) {
	if !doublestar.ValidatePattern(pattern) {
		return GlobMatcher{}, fmt.Errorf("invalid glob pattern '%s'", pattern)
	}
	return GlobMatcher{Pattern: pattern}, nil
}

func (m GlobMatcher) Match(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		ok, err := doublestar.Match(m.Pattern, p)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern '%s': %w", m.Pattern, err)
		}
		if ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// RegexMatcher matches with a compiled regular expression.
type RegexMatcher struct {
	Pattern string
	regex   *regexp.Regexp
}

func NewRegexMatcher(pattern string) (*RegexMatcher, error) {
	if pattern == "" {
		return &RegexMatcher{}, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern: %w", err)
	}
	return &RegexMatcher{Pattern: pattern, regex: re}, nil
}

func (m *RegexMatcher) Match(paths []string) ([]string, error) {
	if m.regex == nil {
		return paths, nil
	}
	var out []string
	for _, p := range paths {
		if m.regex.MatchString(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// NegationMatcher returns the paths its wrapped matcher rejects.
type NegationMatcher struct {
	Wrapped Matcher
}

func (m NegationMatcher) Match(paths []string) ([]string, error) {
	matches, err := m.Wrapped.Match(paths)
	if err != nil {
		return nil, err
	}
	return set.FromSlice(paths).Difference(set.FromSlice(matches)).Values(), nil
}

// CompoundMatcher chains matchers (logical AND).
type CompoundMatcher struct {
	Matchers []Matcher
}

func (m CompoundMatcher) Match(paths []string) ([]string, error) {
	cur := paths
	for _, matcher := range m.Matchers {
		var err error
		cur, err = matcher.Match(cur)
		if err != nil {
			return nil, err
		}
	}
	return cur, nil
}

// UnionMatcher merges the results of its matchers (logical OR), keeping the
// input order.
type UnionMatcher struct {
	Matchers []Matcher
}

func (m UnionMatcher) Match(paths []string) ([]string, error) {
	hit := set.New[string]()
	for _, matcher := range m.Matchers {
		matches, err := matcher.Match(paths)
		if err != nil {
			return nil, err
		}
		hit.AddValues(matches)
	}
	return inputOrder(paths, hit), nil
}

func inputOrder(paths []string, hit *set.Set[string]) []string {
	out := make([]string, 0, hit.Len())
	seen := set.New[string]()
	for _, p := range paths {
		if hit.Contains(p) && !seen.Contains(p) {
			seen.Add(p)
			out = append(out, p)
		}
	}
	return out
}

// ParseMatcher parses one pattern.
func ParseMatcher(pattern string) (Matcher, error) {
	pattern = strings.TrimSpace(pattern)
	if strings.HasPrefix(pattern, "../") {
		return nil, fmt.Errorf("patterns with '../' are not supported")
	}
	pattern = strings.TrimPrefix(pattern, "./")

	// ';' binds loosest
	if strings.Contains(pattern, ";") {
		var subs []Matcher
		for _, part := range strings.Split(pattern, ";") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			m, err := ParseMatcher(part)
			if err != nil {
				return nil, fmt.Errorf("in union pattern part '%s': %w", part, err)
			}
			subs = append(subs, m)
		}
		switch len(subs) {
		case 0:
			return nil, fmt.Errorf("union pattern contains no valid patterns")
		case 1:
			return subs[0], nil
		}
		return UnionMatcher{Matchers: subs}, nil
	}

	if strings.HasPrefix(pattern, "=") {
		return ExactPathMatcher{Path: pattern[1:]}, nil
	}

	if strings.Contains(pattern, "|") {
		var subs []Matcher
		for _, part := range strings.Split(pattern, "|") {
			m, err := ParseMatcher(part)
			if err != nil {
				return nil, fmt.Errorf("in pattern part '%s': %w", part, err)
			}
			subs = append(subs, m)
		}
		return CompoundMatcher{Matchers: subs}, nil
	}

	if strings.HasPrefix(pattern, "!") {
		rest := pattern[1:]
		if rest == "" {
			return nil, fmt.Errorf("empty negation pattern '!' is not valid")
		}
		m, err := ParseMatcher(rest)
		if err != nil {
			return nil, err
		}
		return NegationMatcher{Wrapped: m}, nil
	}

	if strings.HasPrefix(pattern, "/") {
		return NewRegexMatcher(pattern[1:])
	}

	if strings.ContainsAny(pattern, "*?") {
		return NewGlobMatcher(pattern)
	}

	return FuzzyMatcher{Pattern: pattern}, nil
}

// ParseMatchersFromString parses one pattern per line, skipping blank lines
// and "#" comments.
func ParseMatchersFromString(input string) ([]Matcher, error) {
	var matchers []Matcher
	scanner := bufio.NewScanner(strings.NewReader(input))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m, err := ParseMatcher(line)
		if err != nil {
			return nil, fmt.Errorf("error parsing pattern '%s': %w", line, err)
		}
		matchers = append(matchers, m)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning input: %w", err)
	}
	return matchers, nil
}

// Validate reports whether pattern parses, without matching anything.
func Validate(pattern string) error {
	_, err := ParseMatchersFromString(pattern)
	return err
}

// Filter keeps the file entries selected by pattern together with the
// directory entries that contain at least one of them. Entry order is kept.
// An empty pattern keeps everything.
func Filter(entries []archive.Entry, pattern string) ([]archive.Entry, error) {
	if strings.TrimSpace(pattern) == "" {
		return entries, nil
	}

	matchers, err := ParseMatchersFromString(pattern)
	if err != nil {
		return nil, err
	}
	if len(matchers) == 0 {
		return entries, nil
	}

	var filePaths []string
	for _, e := range entries {
		if !e.IsDir {
			filePaths = append(filePaths, e.Path)
		}
	}

	selected, err := UnionMatcher{Matchers: matchers}.Match(filePaths)
	if err != nil {
		return nil, err
	}
	picked := set.FromSlice(selected)

	// every ancestor directory of a selected file
	ancestors := set.New[string]()
	for _, p := range selected {
		dir := path.Dir(strings.Trim(p, "/"))
		for dir != "." && dir != "/" && dir != "" {
			ancestors.Add(dir)
			dir = path.Dir(dir)
		}
	}

	var out []archive.Entry
	for _, e := range entries {
		if e.IsDir {
			if ancestors.Contains(strings.Trim(e.Path, "/")) {
				out = append(out, e)
			}
			continue
		}
		if picked.Contains(e.Path) {
			out = append(out, e)
		}
	}
	return out, nil
}
