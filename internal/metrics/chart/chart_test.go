package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hayeah/apktree/internal/assert"
	"github.com/hayeah/apktree/internal/metrics"
)

// ─────────────────────────────────────────────────────────────────────────────
// helpers
// ─────────────────────────────────────────────────────────────────────────────

func constantTermWidth(cols int) func() int { return func() int { return cols } }

// Creates Sizes with three files + archive overhead:
//
//	lib/big.so    : 900 bytes
//	lib/small.so  :  20 bytes
//	res/raw/z.bin :  50 bytes
//	overhead      :  30 bytes
func fakeSizes() *metrics.Sizes {
	s := metrics.NewSizes()
	s.Add(metrics.TypeFile, "lib/big.so", 900, 300)
	s.Add(metrics.TypeFile, "lib/small.so", 20, 10)
	s.Add(metrics.TypeFile, "res/raw/z.bin", 50, 50)
	s.Add(metrics.TypeArchive, "overhead", 30, 30)
	return s
}

// ─────────────────────────────────────────────────────────────────────────────
// step 1: collectFileSizes
// ─────────────────────────────────────────────────────────────────────────────

func TestCollectFileSizes(t *testing.T) {
	ass := assert.New(t)
	files, total, fileCnt := collectFileSizes(fakeSizes(), false)

	ass.Equal(3, fileCnt)
	ass.Equal(uint64(970), total, "overhead is not a file")
	ass.Equal([]fileSize{
		{"lib/big.so", 900},
		{"lib/small.so", 20},
		{"res/raw/z.bin", 50},
	}, files)

	_, total, _ = collectFileSizes(fakeSizes(), true)
	ass.Equal(uint64(360), total)
}

// ─────────────────────────────────────────────────────────────────────────────
// step 2: buildDirTree + roll-up
// ─────────────────────────────────────────────────────────────────────────────

func TestBuildDirTreeRollUp(t *testing.T) {
	ass := assert.New(t)

	root := buildDirTree([]fileSize{
		{"lib/big.so", 900},
		{"lib/small.so", 20},
		{"res/raw/z.bin", 50},
		{"/res//raw/w.bin", 5},
	})

	ass.Equal(uint64(975), root.Bytes)
	ass.Equal(uint64(920), root.Children["lib"].Bytes)
	ass.Equal(uint64(55), root.Children["res"].Children["raw"].Bytes)
}

// ─────────────────────────────────────────────────────────────────────────────
// step 3: collapseSmallDirs
// ─────────────────────────────────────────────────────────────────────────────

func TestCollapseSmallDirsThreshold(t *testing.T) {
	ass := assert.New(t)

	root := buildDirTree([]fileSize{
		{"lib/big.so", 900},
		{"lib/small.so", 20},
		{"res/raw/z.bin", 50},
	})
	buckets := collapseSmallDirs(root, 970, 5)

	ass.Equal([]bucket{
		{"lib/big.so", 900},
		{"lib/**", 20},
		{"res/raw/z.bin", 50},
	}, buckets)
}

func TestCollapseFileThatIsAlsoADir(t *testing.T) {
	orders := map[string][]fileSize{
		"file first": {{"a", 100}, {"a/b", 10}},
		"dir first":  {{"a/b", 10}, {"a", 100}},
	}
	for name, files := range orders {
		t.Run(name, func(t *testing.T) {
			ass := assert.New(t)

			root := buildDirTree(files)
			ass.True(root.Children["a"].IsFile)
			ass.Equal(uint64(110), root.Bytes)

			buckets := collapseSmallDirs(root, 110, 1)
			ass.Equal([]bucket{{"a", 100}, {"a/b", 10}}, buckets)

			s := metrics.NewSizes()
			for _, f := range files {
				s.Add(metrics.TypeFile, f.Path, f.Bytes, f.Bytes)
			}
			var buf bytes.Buffer
			ass.NoError(Print(s, DefaultOptions(constantTermWidth(100), &buf)))
			ass.Contains(buf.String(), "Summary: 2 files, 110 bytes")
		})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// step 5: layoutChart
// ─────────────────────────────────────────────────────────────────────────────

func TestLayoutChartProperties(t *testing.T) {
	ass := assert.New(t)

	entries := []entry{
		{Label: "lib/big.so", Bytes: 900, Pct: 90},
		{Label: "lib/**", Bytes: 20, Pct: 2},
		{Label: "res/raw/z.bin", Bytes: 50, Pct: 5},
	}
	opt := Options{
		BarWidth:  20,
		FillRune:  '#',
		TermWidth: constantTermWidth(80),
	}
	lines := layoutChart(entries, 3, opt)

	ass.Equal(5, len(lines), "should emit 3 bars + total + summary")
	ass.True(strings.HasSuffix(lines[0], "lib/**"), "smallest first")
	ass.Contains(lines[2], strings.Repeat("#", 20))
	ass.Contains(lines[3], "TOTAL")
	ass.Equal("\nSummary: 3 files, 970 bytes", lines[4])
}

func TestLayoutChartEmpty(t *testing.T) {
	lines := layoutChart(nil, 0, Options{TermWidth: constantTermWidth(80)})
	assert.New(t).Equal([]string{"No bytes recorded"}, lines)
}

func TestPrint(t *testing.T) {
	ass := assert.New(t)

	var buf bytes.Buffer
	opt := DefaultOptions(constantTermWidth(100), &buf)
	opt.ThresholdPct = 5
	ass.NoError(Print(fakeSizes(), opt))

	out := buf.String()
	ass.Contains(out, "lib/big.so")
	ass.Contains(out, "lib/**")
	ass.Contains(out, "archive:overhead")
	ass.Contains(out, "Summary: 3 files, 1000 bytes")
}
