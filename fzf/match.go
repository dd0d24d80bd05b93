// Package fzf implements the extended search syntax used by the tree
// browser. A query is a list of space-separated terms that must all match:
//
//	foo     fuzzy subsequence match
//	'foo    "foo" starting at a word boundary
//	'foo'   "foo" as a whole word
//	^foo    path starts with "foo"
//	foo$    path ends with "foo"
//	!foo    path does not contain "foo" (combines with the forms above)
//
// Literal terms compare case-insensitively.
package fzf

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sahilm/fuzzy"
)

// Query is a parsed search expression. The zero value matches everything.
type Query struct {
	terms []term
}

type term struct {
	raw        string
	text       string // lower-cased core text
	fuzzy      bool
	inverse    bool // !foo
	anchorHead bool // ^foo
	anchorTail bool // foo$
	wordPrefix bool // 'foo
	wordExact  bool // 'foo'
}

// Parse compiles pattern. A blank pattern yields the match-all query.
func Parse(pattern string) (Query, error) {
	parts := strings.Fields(pattern)
	terms := make([]term, 0, len(parts))

	for _, p := range parts {
		t := term{raw: p}

		if strings.HasPrefix(p, "!") {
			t.inverse = true
			p = p[1:]
		}

		if strings.HasPrefix(p, "'") {
			p = p[1:]
			if strings.HasSuffix(p, "'") && p != "" {
				t.wordExact = true
				p = p[:len(p)-1]
			} else {
				t.wordPrefix = true
			}
		}

		if strings.HasPrefix(p, "^") {
			t.anchorHead = true
			p = p[1:]
		}
		if strings.HasSuffix(p, "$") {
			t.anchorTail = true
			p = p[:len(p)-1]
		}
		if p == "" {
			return Query{}, fmt.Errorf("empty term after stripping modifiers in %q", t.raw)
		}

		// an inverted term is always a literal
		t.fuzzy = !(t.inverse || t.anchorHead || t.anchorTail || t.wordPrefix || t.wordExact)
		t.text = strings.ToLower(p)
		terms = append(terms, t)
	}
	return Query{terms: terms}, nil
}

// Empty reports whether q matches everything.
func (q Query) Empty() bool {
	return len(q.terms) == 0
}

// Match returns the indexes of paths that satisfy every term, in input order.
func (q Query) Match(paths []string) []int {
	keep := make([]bool, len(paths))
	for i := range keep {
		keep[i] = true
	}

	var lower []string
	for _, t := range q.terms {
		if t.fuzzy {
			hit := make([]bool, len(paths))
			for _, m := range fuzzy.Find(t.text, paths) {
				hit[m.Index] = true
			}
			for i := range keep {
				keep[i] = keep[i] && hit[i]
			}
			continue
		}

		if lower == nil {
			lower = make([]string, len(paths))
			for i, p := range paths {
				lower[i] = strings.ToLower(p)
			}
		}
		for i := range keep {
			if keep[i] {
				keep[i] = literalMatches(t, lower[i]) != t.inverse
			}
		}
	}

	var out []int
	for i, ok := range keep {
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func literalMatches(t term, path string) bool {
	if t.anchorHead && t.anchorTail && !(t.wordExact || t.wordPrefix) {
		return path == t.text
	}

	sub := path
	if t.anchorHead {
		if !strings.HasPrefix(path, t.text) {
			return false
		}
		sub = path[:len(t.text)]
	}
	if t.anchorTail {
		if !strings.HasSuffix(path, t.text) {
			return false
		}
		sub = path[len(path)-len(t.text):]
	}

	switch {
	case t.wordExact:
		return containsWord(sub, t.text, true)
	case t.wordPrefix:
		return containsWord(sub, t.text, false)
	default:
		return strings.Contains(sub, t.text)
	}
}

// containsWord reports whether needle occurs in s after a word boundary, and
// with exact also before one.
func containsWord(s, needle string, exact bool) bool {
	for start := 0; start <= len(s)-len(needle); {
		rel := strings.Index(s[start:], needle)
		if rel < 0 {
			break
		}
		idx := start + rel

		leftOK := idx == 0 || !isWordChar(rune(s[idx-1]))
		end := idx + len(needle)
		rightOK := !exact || end == len(s) || !isWordChar(rune(s[end]))
		if leftOK && rightOK {
			return true
		}
		start = idx + 1
	}
	return false
}

// letters, digits and underscore
func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
