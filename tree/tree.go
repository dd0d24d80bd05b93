// Package tree folds a flat sequence of archive entry paths into a rooted
// hierarchy of named nodes.
//
// Directory segments are shared: two entries under "a/b" resolve to the same
// "a" and "a/b" nodes. File leaves are appended as they come and are never
// de-duplicated, so an archive listing the same file twice yields two sibling
// leaves.
package tree

import (
	"sort"
	"strings"

	"github.com/hayeah/apktree/archive"
)

// DefaultRootName labels the root node when the caller does not pick one.
const DefaultRootName = "APK contents"

// Node is one path segment in the tree.
type Node struct {
	Name     string
	Children []*Node

	dir   bool
	index map[string]*Node // first child by name
}

func newNode(name string, dir bool) *Node {
	return &Node{Name: name, dir: dir}
}

// IsDir reports whether n was created as a directory segment or has since
// gained children.
func (n *Node) IsDir() bool {
	return n.dir || len(n.Children) > 0
}

// Child returns the first child named name, or nil.
func (n *Node) Child(name string) *Node {
	if n.index == nil {
		return nil
	}
	return n.index[name]
}

func (n *Node) appendChild(c *Node) {
	n.Children = append(n.Children, c)
	if n.index == nil {
		n.index = make(map[string]*Node)
	}
	if _, ok := n.index[c.Name]; !ok {
		n.index[c.Name] = c
	}
}

// Resolve walks path from n, creating a directory node for every segment that
// does not exist yet, and returns the last node reached. Empty segments are
// skipped, so "a//b/" and "/a/b" resolve the same as "a/b".
func (n *Node) Resolve(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		next := cur.Child(part)
		if next == nil {
			next = newNode(part, true)
			cur.appendChild(next)
		}
		cur = next
	}
	return cur
}

// Find returns the node at path, or nil. It never creates nodes.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		cur = cur.Child(part)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Walk visits n and its descendants depth first in sibling order. path is the
// slash joined chain of names below the root ("" for the root itself).
func (n *Node) Walk(fn func(path string, node *Node, depth int) error) error {
	return n.walk("", 0, fn)
}

func (n *Node) walk(path string, depth int, fn func(string, *Node, int) error) error {
	if err := fn(path, n, depth); err != nil {
		return err
	}
	for _, c := range n.Children {
		childPath := c.Name
		if path != "" {
			childPath = path + "/" + c.Name
		}
		if err := c.walk(childPath, depth+1, fn); err != nil {
			return err
		}
	}
	return nil
}

// Leaves returns the number of file leaves created below n. A leaf that later
// gained children still counts.
func (n *Node) Leaves() int {
	count := 0
	_ = n.Walk(func(_ string, node *Node, depth int) error {
		if depth > 0 && !node.dir {
			count++
		}
		return nil
	})
	return count
}

// Sorted returns a deep copy of n with siblings ordered directories first,
// then by name. The copy is for display; n is left untouched.
func (n *Node) Sorted() *Node {
	out := newNode(n.Name, n.dir)
	children := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, c.Sorted())
	}
	sort.SliceStable(children, func(i, j int) bool {
		di, dj := children[i].IsDir(), children[j].IsDir()
		if di != dj {
			return di
		}
		return children[i].Name < children[j].Name
	})
	for _, c := range children {
		out.appendChild(c)
	}
	return out
}

// Builder grows one tree incrementally. A Builder is owned by a single
// analysis run.
type Builder struct {
	root *Node
}

// NewBuilder starts a fresh tree whose root is labelled rootName.
func NewBuilder(rootName string) *Builder {
	if rootName == "" {
		rootName = DefaultRootName
	}
	return &Builder{root: newNode(rootName, true)}
}

// Root returns the tree built so far.
func (b *Builder) Root() *Node {
	return b.root
}

// Add folds one entry into the tree.
func (b *Builder) Add(e archive.Entry) {
	if e.IsDir {
		b.root.Resolve(e.Path)
		return
	}

	i := strings.LastIndex(e.Path, "/")
	if i < 0 {
		if e.Path != "" {
			b.root.appendChild(newNode(e.Path, false))
		}
		return
	}

	dir := b.root.Resolve(e.Path[:i])
	if name := e.Path[i+1:]; name != "" {
		dir.appendChild(newNode(name, false))
	}
}

// Build folds entries in order into a new tree.
func Build(rootName string, entries []archive.Entry) *Node {
	b := NewBuilder(rootName)
	for _, e := range entries {
		b.Add(e)
	}
	return b.Root()
}
