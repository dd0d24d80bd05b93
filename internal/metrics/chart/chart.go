// Package chart turns archive Sizes into an ASCII bar chart. All state is
// passed in, including the terminal width, so layouts are easy to test.
package chart

import (
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/hayeah/apktree/internal/metrics"
)

// ---------- Public façade --------------------------------------------------

// Options controls layout and I/O behaviour.
type Options struct {
	BarWidth     int        // 0 = auto (35 % of term, at most 30)
	FillRune     rune       // default '█'
	ThresholdPct float64    // small-dir collapse threshold (e.g. 1 = 1 %)
	Compressed   bool       // chart compressed bytes instead of uncompressed
	TermWidth    func() int // injected; must return columns
	Writer       io.Writer  // destination for the chart
}

// DefaultOptions returns the layout used by the size command.
func DefaultOptions(termWidthFn func() int, w io.Writer) Options {
	return Options{
		FillRune:     '█',
		ThresholdPct: 1,
		TermWidth:    termWidthFn,
		Writer:       w,
	}
}

// TerminalWidth returns the width of stdout, or 80 when it is not a TTY.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// Print writes the chart for s.
func Print(s *metrics.Sizes, opt Options) error {
	if opt.FillRune == 0 {
		opt.FillRune = '█'
	}
	if opt.TermWidth == nil {
		opt.TermWidth = TerminalWidth
	}

	files, total, fileCount := collectFileSizes(s, opt.Compressed)
	root := buildDirTree(files)
	buckets := collapseSmallDirs(root, total+extraTotal(s, opt.Compressed), opt.ThresholdPct)
	entries := mergeWithExtraSizes(buckets, s, opt.Compressed)
	lines := layoutChart(entries, fileCount, opt)
	for _, ln := range lines {
		if _, err := fmt.Fprintln(opt.Writer, ln); err != nil {
			return err
		}
	}
	return nil
}

func measure(it metrics.Item, compressed bool) uint64 {
	if compressed {
		return it.Compressed
	}
	return it.Bytes
}

// ---------- Step 1: gather per-file sizes ---------------------------------

type fileSize struct {
	Path  string
	Bytes uint64
}

func collectFileSizes(s *metrics.Sizes, compressed bool) ([]fileSize, uint64, int) {
	var (
		out       []fileSize
		total     uint64
		fileCount int
	)
	for _, k := range s.Keys() {
		if k.Type != metrics.TypeFile {
			continue
		}
		it := s.Items[k]
		n := measure(it, compressed)
		out = append(out, fileSize{Path: k.Key, Bytes: n})
		total += n
		fileCount += it.Count
	}
	return out, total, fileCount
}

func extraTotal(s *metrics.Sizes, compressed bool) uint64 {
	var sum uint64
	for _, k := range s.Keys() {
		if k.Type != metrics.TypeFile {
			sum += measure(s.Items[k], compressed)
		}
	}
	return sum
}

// ---------- Step 2: directory tree with cumulative sizes ------------------

type dirNode struct {
	Name     string
	IsFile   bool
	Own      uint64 // bytes of the file at this exact path
	Bytes    uint64 // Own plus every descendant, after rollUp
	Children map[string]*dirNode
}

func buildDirTree(files []fileSize) *dirNode {
	root := &dirNode{Name: ".", Children: map[string]*dirNode{}}
	for _, f := range files {
		var parts []string
		for _, p := range strings.Split(f.Path, "/") {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) == 0 {
			continue
		}
		cur := root
		for _, part := range parts {
			child, ok := cur.Children[part]
			if !ok {
				child = &dirNode{Name: part, Children: map[string]*dirNode{}}
				cur.Children[part] = child
			}
			cur = child
		}
		// set here, not on creation: the path may already exist as a directory
		cur.IsFile = true
		cur.Own += f.Bytes
	}
	rollUp(root)
	return root
}

// rollUp sums children into directories. A file path that is also used as a
// directory keeps its own bytes on top of its children's.
func rollUp(n *dirNode) uint64 {
	sum := n.Own
	for _, c := range n.Children {
		sum += rollUp(c)
	}
	n.Bytes = sum
	return sum
}

func sortedChildren(n *dirNode) []*dirNode {
	out := make([]*dirNode, 0, len(n.Children))
	for _, c := range n.Children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ---------- Step 3: collapse small dirs into dir/** ------------------------

type bucket struct {
	Label string
	Bytes uint64
}

func collapseSmallDirs(root *dirNode, total uint64, thresholdPct float64) []bucket {
	var out []bucket
	thresh := float64(total) * thresholdPct / 100

	var walk func(*dirNode, string)
	walk = func(n *dirNode, prefix string) {
		cur := prefix
		if n != root {
			cur = path.Join(prefix, n.Name)
		}
		if n.IsFile && len(n.Children) == 0 {
			out = append(out, bucket{Label: cur, Bytes: n.Bytes})
			return
		}
		if n.IsFile && n.Own > 0 {
			out = append(out, bucket{Label: cur, Bytes: n.Own})
		}

		var smallSum uint64
		for _, c := range sortedChildren(n) {
			if float64(c.Bytes) < thresh {
				smallSum += c.Bytes
			} else {
				walk(c, cur)
			}
		}
		if smallSum > 0 {
			out = append(out, bucket{Label: path.Join(cur, "**"), Bytes: smallSum})
		}
	}
	walk(root, "")
	return out
}

// ---------- Step 4: merge with archive overhead ---------------------------

type entry struct {
	Label string
	Bytes uint64
	Pct   float64
}

func mergeWithExtraSizes(buckets []bucket, s *metrics.Sizes, compressed bool) []entry {
	var out []entry
	for _, b := range buckets {
		out = append(out, entry{Label: b.Label, Bytes: b.Bytes})
	}
	for _, k := range s.Keys() {
		if k.Type == metrics.TypeFile {
			continue
		}
		out = append(out, entry{Label: k.String(), Bytes: measure(s.Items[k], compressed)})
	}

	var total uint64
	for _, e := range out {
		total += e.Bytes
	}
	for i := range out {
		out[i].Pct = pct(out[i].Bytes, total)
	}
	return out
}

// ---------- Step 5: convert entries to formatted lines --------------------

func layoutChart(entries []entry, fileCount int, opt Options) []string {
	var total uint64
	for _, e := range entries {
		total += e.Bytes
	}
	if len(entries) == 0 || total == 0 {
		return []string{"No bytes recorded"}
	}
	const pctW, bytesW, gapW = 6, 10, 2

	// smallest first, ties by label
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Bytes != entries[j].Bytes {
			return entries[i].Bytes < entries[j].Bytes
		}
		return entries[i].Label < entries[j].Label
	})

	barW := opt.BarWidth
	if barW <= 0 {
		barW = min(int(float64(opt.TermWidth())*0.35), 30)
	}
	keyW := opt.TermWidth() - (barW + pctW + bytesW + gapW*3)
	if keyW < 8 {
		keyW = 8
	}

	var maxBytes uint64
	for _, e := range entries {
		maxBytes = max(maxBytes, e.Bytes)
	}

	trim := func(s string, max int) string {
		r := []rune(s)
		if len(r) <= max {
			return s
		}
		return "…" + string(r[len(r)-max+1:])
	}

	fill := string(opt.FillRune)
	var lines []string
	for _, e := range entries {
		ratio := float64(e.Bytes) / float64(maxBytes)
		barLen := int(ratio*float64(barW) + 0.5)
		if barLen == 0 && e.Bytes > 0 {
			barLen = 1
		}
		bar := padRunes(strings.Repeat(fill, barLen), barW)
		lines = append(lines, fmt.Sprintf("%s  %5.1f%%  %*d  %s",
			bar, e.Pct, bytesW, e.Bytes, trim(e.Label, keyW)))
	}

	sep := strings.Repeat("─", barW)
	lines = append(lines, fmt.Sprintf("%s  %5.1f%%  %*d  %s", sep, 100.0, bytesW, total, "TOTAL"))
	lines = append(lines, fmt.Sprintf("\nSummary: %d files, %d bytes", fileCount, total))
	return lines
}

// ---------- Helpers --------------------------------------------------------

func pct(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

// padRunes pads s with spaces to w runes; %-*s pads by bytes, which
// misaligns multi-byte fill runes.
func padRunes(s string, w int) string {
	n := len([]rune(s))
	if n >= w {
		return s
	}
	return s + strings.Repeat(" ", w-n)
}
