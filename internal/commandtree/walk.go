package commandtree

import "strings"

// WalkFunc is called for every node with its normalized path.
type WalkFunc func(path []string, n *Node)

// Walk visits nodes depth-first in declaration order.
func Walk(nodes []*Node, fn WalkFunc) {
	walk(nodes, nil, fn)
}

func walk(nodes []*Node, parent []string, fn WalkFunc) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		path := append(append([]string{}, parent...), Kebab(n.Name))
		fn(path, n)
		if n.IsGroup() {
			walk(n.Children, path, fn)
		}
	}
}

// Leaves returns the dotted paths of every runnable command.
func Leaves(nodes []*Node) []string {
	var out []string
	Walk(nodes, func(path []string, n *Node) {
		if n.IsLeaf() {
			out = append(out, strings.Join(path, "."))
		}
	})
	return out
}
