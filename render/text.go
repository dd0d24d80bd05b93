package render

import (
	"fmt"
	"io"

	"github.com/hayeah/apktree/tree"
)

// Text draws the tree with box-drawing connectors:
//
//	APK contents
//	├── META-INF/
//	│   └── MANIFEST.MF
//	└── AndroidManifest.xml
type Text struct {
	Sort bool // directories first, then by name
}

func (r Text) RenderTree(w io.Writer, root *tree.Node) error {
	if r.Sort {
		root = root.Sorted()
	}
	if _, err := fmt.Fprintln(w, root.Name); err != nil {
		return err
	}
	return writeChildren(w, root, "")
}

func writeChildren(w io.Writer, node *tree.Node, prefix string) error {
	for i, child := range node.Children {
		isLast := i == len(node.Children)-1

		connector := "├── "
		if isLast {
			connector = "└── "
		}

		// Add a trailing slash for directories
		displayName := child.Name
		if child.IsDir() {
			displayName += "/"
		}

		if _, err := fmt.Fprintln(w, prefix+connector+displayName); err != nil {
			return err
		}

		newPrefix := prefix + "│   "
		if isLast {
			newPrefix = prefix + "    "
		}
		if err := writeChildren(w, child, newPrefix); err != nil {
			return err
		}
	}
	return nil
}
