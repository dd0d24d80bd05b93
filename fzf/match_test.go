package fzf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var samplePaths = []string{
	"AndroidManifest.xml",
	"classes.dex",
	"classes2.dex",
	"res/layout/main.xml",
	"res/drawable/icon.png",
	"META-INF/MANIFEST.MF",
	"lib/arm64-v8a/libnative.so",
}

func TestQuery(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		name     string
		pattern  string
		expected []int
	}{
		{"empty pattern matches all", "", []int{0, 1, 2, 3, 4, 5, 6}},
		{"fuzzy subsequence", "lbnat", []int{6}},
		{"fuzzy across segments", "icpng", []int{4}},
		{"anchors AND together", "^res .xml$", []int{3}},
		{"whole path", "^classes2.dex$", []int{2}},
		{"case-insensitive literal", "^meta-inf/", []int{5}},
		{"word exact", "'main'", []int{3}},
		{"word prefix", "'lib", []int{6}},
		{"word prefix needs a boundary", "'native", nil},
		{"inverse", "!dex", []int{0, 3, 4, 5, 6}},
		{"inverse anchors", "!^res !^meta-inf", []int{0, 1, 2, 6}},
	}

	for _, tc := range cases {
		q, err := Parse(tc.pattern)
		if !assert.NoError(err, tc.name) {
			continue
		}
		assert.Equal(tc.expected, q.Match(samplePaths), tc.name)
	}
}

func TestQuery_Empty(t *testing.T) {
	q, err := Parse("   ")
	assert.NoError(t, err)
	assert.True(t, q.Empty())

	var zero Query
	assert.Len(t, zero.Match(samplePaths), len(samplePaths))
}

func TestParse_Errors(t *testing.T) {
	for _, p := range []string{"'", "''", "^", "$", "!", "^$", "dex !"} {
		_, err := Parse(p)
		assert.Error(t, err, p)
	}
}
