package render_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hayeah/apktree/archive"
	"github.com/hayeah/apktree/internal/assert"
	"github.com/hayeah/apktree/listing"
	"github.com/hayeah/apktree/render"
	"github.com/hayeah/apktree/tree"
)

func apkTree() *tree.Node {
	return tree.Build("", []archive.Entry{
		{Path: "META-INF/", IsDir: true},
		{Path: "META-INF/MANIFEST.MF"},
		{Path: "res/layout/main.xml"},
		{Path: "AndroidManifest.xml"},
	})
}

func TestText(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.NoError(render.Text{}.RenderTree(&buf, apkTree()))

	assert.EqualLines(`
APK contents
├── META-INF/
│   └── MANIFEST.MF
├── res/
│   └── layout/
│       └── main.xml
└── AndroidManifest.xml
`, buf.String())
}

func TestText_Sorted(t *testing.T) {
	assert := assert.New(t)

	root := tree.Build("r", []archive.Entry{
		{Path: "b.txt"},
		{Path: "z/1"},
		{Path: "a/2"},
	})

	var buf bytes.Buffer
	assert.NoError(render.Text{Sort: true}.RenderTree(&buf, root))

	assert.EqualLines(`
r
├── a/
│   └── 2
├── z/
│   └── 1
└── b.txt
`, buf.String())
}

func TestText_EmptyTree(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.NoError(render.Text{}.RenderTree(&buf, tree.Build("APK contents", nil)))
	assert.Equal("APK contents\n", buf.String())
}

func TestJSON(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.NoError(render.JSON{Indent: "  "}.RenderTree(&buf, apkTree()))
	assert.EqualToFixture("apk_tree.json", buf.String())

	var decoded map[string]any
	assert.NoError(json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal("APK contents", decoded["name"])
}

func TestForFormat(t *testing.T) {
	assert := assert.New(t)

	r, err := render.ForFormat("")
	assert.NoError(err)
	assert.IsType(render.Text{}, r)

	r, err = render.ForFormat("json")
	assert.NoError(err)
	assert.IsType(render.JSON{}, r)

	_, err = render.ForFormat("yaml")
	assert.Error(err)
}

func TestHeader(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.NoError(render.Header(&buf, archive.Info{AbsPath: "/tmp/app.apk", Size: 3 * 1024 * 1024 / 2}))
	assert.Equal("File: /tmp/app.apk\nSize: 1572864 bytes (~1.50 MB)\n\n", buf.String())
}

func TestListing(t *testing.T) {
	assert := assert.New(t)

	l := listing.Build([]archive.Entry{
		{Path: "META-INF/", IsDir: true},
		{Path: "classes.dex"},
	})

	var buf bytes.Buffer
	assert.NoError(render.Listing(&buf, l))
	assert.Equal("Entries:\n[D] META-INF/\n[F] classes.dex\n\n1 directories, 1 files\n", buf.String())
}
