package tree_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/hayeah/apktree/archive"
	"github.com/hayeah/apktree/tree"
	"github.com/stretchr/testify/assert"
)

func files(paths ...string) []archive.Entry {
	entries := make([]archive.Entry, 0, len(paths))
	for _, p := range paths {
		entries = append(entries, archive.Entry{Path: p})
	}
	return entries
}

// outline lists every node below the root as "path" or "path/" in walk order.
func outline(root *tree.Node) []string {
	var out []string
	_ = root.Walk(func(path string, n *tree.Node, depth int) error {
		if depth == 0 {
			return nil
		}
		if n.IsDir() {
			path += "/"
		}
		out = append(out, path)
		return nil
	})
	return out
}

func TestBuild_APKScenario(t *testing.T) {
	assert := assert.New(t)

	entries := []archive.Entry{
		{Path: "META-INF/", IsDir: true},
		{Path: "META-INF/MANIFEST.MF"},
		{Path: "res/layout/main.xml"},
		{Path: "AndroidManifest.xml"},
	}
	root := tree.Build("", entries)

	assert.Equal(tree.DefaultRootName, root.Name)
	assert.Equal([]string{
		"META-INF/",
		"META-INF/MANIFEST.MF",
		"res/",
		"res/layout/",
		"res/layout/main.xml",
		"AndroidManifest.xml",
	}, outline(root))
}

func TestBuild_SharedPrefix(t *testing.T) {
	assert := assert.New(t)

	root := tree.Build("root", files("a/b/x", "a/b/y"))

	assert.Len(root.Children, 1)
	a := root.Child("a")
	if assert.NotNil(a) {
		assert.Len(a.Children, 1)
		b := a.Child("b")
		if assert.NotNil(b) {
			assert.Len(b.Children, 2)
			assert.Equal("x", b.Children[0].Name)
			assert.Equal("y", b.Children[1].Name)
		}
	}
	assert.Same(root.Find("a/b"), root.Resolve("a/b"))
}

func TestBuild_RootFilesKeepOrder(t *testing.T) {
	root := tree.Build("root", files("classes.dex", "resources.arsc", "AndroidManifest.xml"))

	var names []string
	for _, c := range root.Children {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"classes.dex", "resources.arsc", "AndroidManifest.xml"}, names)
}

func TestBuild_DuplicateLeaves(t *testing.T) {
	assert := assert.New(t)

	root := tree.Build("root", files("a.txt", "a.txt", "lib/x.so", "lib/x.so"))

	assert.Len(root.Children, 3)
	assert.Len(root.Child("lib").Children, 2)
	assert.Equal(4, root.Leaves())
}

func TestBuild_LeafCountEqualsEntries(t *testing.T) {
	inputs := [][]string{
		{},
		{"a"},
		{"a", "b", "c"},
		{"x/y/z", "x/y/z", "x/w", "q"},
		{"res/drawable/icon.png", "res/drawable-hdpi/icon.png", "res/drawable/icon.png"},
		{"a", "a/b"},
	}

	for i, paths := range inputs {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			root := tree.Build("root", files(paths...))
			assert.Equal(t, len(paths), root.Leaves())
		})
	}
}

func TestBuild_EmptySegmentsSkipped(t *testing.T) {
	assert := assert.New(t)

	entries := []archive.Entry{
		{Path: "/lead/a.txt"},
		{Path: "lead//b.txt"},
		{Path: "trail/", IsDir: true},
		{Path: "//", IsDir: true},
		{Path: "only/dir/"},
		{Path: ""},
	}
	root := tree.Build("root", entries)

	assert.Equal([]string{
		"lead/",
		"lead/a.txt",
		"lead/b.txt",
		"trail/",
		"only/",
		"only/dir/",
	}, outline(root))

	_ = root.Walk(func(path string, n *tree.Node, depth int) error {
		assert.NotEmpty(n.Name, "node at %q has empty name", path)
		return nil
	})
}

func TestBuild_DirectoryEntriesCreateNoLeaf(t *testing.T) {
	assert := assert.New(t)

	entries := []archive.Entry{
		{Path: "assets/", IsDir: true},
		{Path: "assets/fonts/", IsDir: true},
		{Path: "assets/fonts/a.ttf"},
	}
	root := tree.Build("root", entries)

	assert.Equal(1, root.Leaves())
	assert.Len(root.Child("assets").Children, 1)
	assert.True(root.Find("assets/fonts").IsDir())
	assert.False(root.Find("assets/fonts/a.ttf").IsDir())
}

func TestBuild_FileThenDirectorySameName(t *testing.T) {
	assert := assert.New(t)

	// The first child named "a" is reused as the chain node, matching a
	// linear first-match scan.
	root := tree.Build("root", files("a", "a/b"))

	assert.Len(root.Children, 1)
	assert.Equal([]string{"a/", "a/b"}, outline(root))
}

func TestBuild_Deterministic(t *testing.T) {
	paths := files("z/1", "a/2", "m/n/3", "a/4", "5")
	first := strings.Join(outline(tree.Build("r", paths)), ",")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, strings.Join(outline(tree.Build("r", paths)), ","))
	}
}

func TestBuilder_FreshPerRun(t *testing.T) {
	assert := assert.New(t)

	b1 := tree.NewBuilder("r")
	b1.Add(archive.Entry{Path: "one/a"})
	b2 := tree.NewBuilder("r")
	b2.Add(archive.Entry{Path: "two/b"})

	assert.Nil(b2.Root().Find("one"))
	assert.NotSame(b1.Root(), b2.Root())
}

func TestNode_Sorted(t *testing.T) {
	assert := assert.New(t)

	root := tree.Build("r", files("b.txt", "z/1", "a.txt", "c/2"))
	sorted := root.Sorted()

	assert.Equal([]string{"c/", "c/2", "z/", "z/1", "a.txt", "b.txt"}, outline(sorted))
	// original order untouched
	assert.Equal([]string{"b.txt", "z/", "z/1", "a.txt", "c/", "c/2"}, outline(root))
}

func TestNode_FindMissing(t *testing.T) {
	root := tree.Build("r", files("a/b"))
	assert.Nil(t, root.Find("a/c"))
	assert.Nil(t, root.Find("x"))
	assert.Same(t, root, root.Find(""))
}
