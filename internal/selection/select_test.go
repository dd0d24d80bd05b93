package selection_test

import (
	"testing"

	"github.com/hayeah/apktree/archive"
	"github.com/hayeah/apktree/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// shared fixtures & helpers
// -----------------------------------------------------------------------------

var paths = []string{
	"AndroidManifest.xml",
	"classes.dex",
	"classes2.dex",
	"res/layout/main.xml",
	"res/drawable/icon.png",
	"META-INF/MANIFEST.MF",
	"lib/arm64-v8a/libnative.so",
}

// must unwraps matcher creation for brevity in table tests.
func must(m selection.Matcher, err error) selection.Matcher {
	if err != nil {
		panic(err)
	}
	return m
}

func TestParseMatcher(t *testing.T) {
	cases := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"regex", `/\.dex$`, []string{"classes.dex", "classes2.dex"}},
		{"exact", "=classes.dex", []string{"classes.dex"}},
		{"glob", "res/**/*.xml", []string{"res/layout/main.xml"}},
		{"glob root", "*.xml", []string{"AndroidManifest.xml"}},
		{"negation", `!/\.dex$|!/\.xml$|!/\.png$`, []string{"META-INF/MANIFEST.MF", "lib/arm64-v8a/libnative.so"}},
		{"compound", `/^res/|!/\.png$`, []string{"res/layout/main.xml"}},
		{"union keeps input order", `/\.so$;=AndroidManifest.xml`, []string{"AndroidManifest.xml", "lib/arm64-v8a/libnative.so"}},
		{"empty union part", `=classes.dex;`, []string{"classes.dex"}},
		{"dot slash stripped", "./=classes.dex", []string{"classes.dex"}},
		{"fuzzy", "libnat", []string{"lib/arm64-v8a/libnative.so"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := must(selection.ParseMatcher(tc.pattern)).Match(paths)
			require.NoError(t, err)
			assert.Equal(t, tc.want, normalize(got))
		})
	}
}

func normalize(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func TestParseMatcher_Errors(t *testing.T) {
	for _, p := range []string{"../secret", "!", "/(", "res/[*", ";"} {
		t.Run(p, func(t *testing.T) {
			_, err := selection.ParseMatcher(p)
			assert.Error(t, err)
		})
	}
}

func TestParseMatchersFromString(t *testing.T) {
	ms, err := selection.ParseMatchersFromString(`
# dex files
/\.dex$

=AndroidManifest.xml
`)
	require.NoError(t, err)
	assert.Len(t, ms, 2)
}

func TestFilter(t *testing.T) {
	assert := assert.New(t)

	entries := []archive.Entry{
		{Path: "META-INF/", IsDir: true},
		{Path: "META-INF/MANIFEST.MF"},
		{Path: "res/", IsDir: true},
		{Path: "res/layout/", IsDir: true},
		{Path: "res/layout/main.xml"},
		{Path: "res/raw/", IsDir: true},
		{Path: "res/raw/a.bin"},
		{Path: "AndroidManifest.xml"},
	}

	got, err := selection.Filter(entries, "*.xml;res/**/*.xml")
	require.NoError(t, err)

	var kept []string
	for _, e := range got {
		kept = append(kept, e.Path)
	}
	assert.Equal([]string{
		"res/",
		"res/layout/",
		"res/layout/main.xml",
		"AndroidManifest.xml",
	}, kept)
}

func TestFilter_EmptyPatternKeepsAll(t *testing.T) {
	entries := []archive.Entry{{Path: "a"}, {Path: "b/", IsDir: true}}

	got, err := selection.Filter(entries, "  ")
	require.NoError(t, err)
	assert.Equal(t, entries, got)

	got, err = selection.Filter(entries, "# only a comment")
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestFilter_BadPattern(t *testing.T) {
	_, err := selection.Filter([]archive.Entry{{Path: "a"}}, "/(")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	for _, p := range []string{"", "mani", "res/**/*.xml;=classes.dex", "# comment\n/\\.so$"} {
		assert.NoError(t, selection.Validate(p), p)
	}
	for _, p := range []string{"res/[*", "lib/\n/(", "!"} {
		assert.Error(t, selection.Validate(p), p)
	}
}
