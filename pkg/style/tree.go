package style

import (
	"strings"

	"github.com/disiqueira/gotree/v3"
)

// Node is one line of a rendered tree
type Node struct {
	Label    string
	Children []*Node
}

// Add appends a child and returns it
func (n *Node) Add(label string) *Node {
	child := &Node{Label: label}
	n.Children = append(n.Children, child)
	return child
}

// RenderTree draws root and its descendants with box drawing guides
func RenderTree(root *Node) string {
	t := gotree.New(root.Label)
	addChildren(t, root.Children)
	return strings.TrimRight(t.Print(), "\n")
}

func addChildren(t gotree.Tree, children []*Node) {
	for _, child := range children {
		addChildren(t.Add(child.Label), child.Children)
	}
}
