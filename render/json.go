package render

import (
	"encoding/json"
	"io"

	"github.com/hayeah/apktree/tree"
)

// jsonNode is the wire form of a tree.Node.
type jsonNode struct {
	Name     string      `json:"name"`
	Dir      bool        `json:"dir"`
	Children []*jsonNode `json:"children,omitempty"`
}

func toJSONNode(n *tree.Node) *jsonNode {
	out := &jsonNode{Name: n.Name, Dir: n.IsDir()}
	for _, c := range n.Children {
		out.Children = append(out.Children, toJSONNode(c))
	}
	return out
}

// JSON writes the tree as nested {"name", "dir", "children"} objects.
type JSON struct {
	Indent string
	Sort   bool
}

func (r JSON) RenderTree(w io.Writer, root *tree.Node) error {
	if r.Sort {
		root = root.Sorted()
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if r.Indent != "" {
		enc.SetIndent("", r.Indent)
	}
	return enc.Encode(toJSONNode(root))
}
