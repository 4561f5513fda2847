package manifest

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/crun/internal/commandtree"
)

// MainScript names the child that runs a group's base script.
const MainScript = "main"

// level collects one tree level: leaves before groups, each in first-seen order.
type level struct {
	leaves []*commandtree.Node
	groups []*group
}

type group struct {
	node     *commandtree.Node
	children *level
}

func (l *level) group(name string) *group {
	if g := l.findGroup(name); g != nil {
		return g
	}
	g := &group{
		node:     &commandtree.Node{Name: name, Description: name + " related commands"},
		children: &level{},
	}
	l.groups = append(l.groups, g)
	return g
}

func (l *level) nodes() []*commandtree.Node {
	out := make([]*commandtree.Node, 0, len(l.leaves)+len(l.groups))
	for _, leaf := range l.leaves {
		if l.findGroup(leaf.Name) != nil {
			continue
		}
		out = append(out, leaf)
	}
	for _, g := range l.groups {
		children := g.children.nodes()
		if base := l.findLeaf(g.node.Name); base != nil {
			main := &commandtree.Node{
				Name:        MainScript,
				Description: "Run main " + g.node.Name + " script: " + strings.TrimPrefix(base.Description, scriptPrefix),
				Command:     base.Command,
			}
			children = append([]*commandtree.Node{main}, children...)
		}
		g.node.Children = children
		out = append(out, g.node)
	}
	return out
}

func (l *level) findGroup(name string) *group {
	for _, g := range l.groups {
		if g.node.Name == name {
			return g
		}
	}
	return nil
}

func (l *level) findLeaf(name string) *commandtree.Node {
	for _, n := range l.leaves {
		if n.Name == name {
			return n
		}
	}
	return nil
}

const scriptPrefix = "Run script: "

// Build turns m into a tree. "a:b" (or "a.b") scripts nest b under group a, and a base
// script "a" next to "a:*" becomes a's "main" child. Top-level nodes carry
// the manifest directory.
func Build(m *Manifest) (*commandtree.Config, error) {
	if len(m.Scripts) == 0 {
		return nil, ErrNoScripts
	}

	runner := m.Runner
	if runner == "" {
		runner = "npm"
	}

	root := &level{}
	for _, s := range m.Scripts {
		parts := splitScriptName(s.Name)
		if len(parts) == 0 {
			continue
		}

		l := root
		for _, p := range parts[:len(parts)-1] {
			l = l.group(p).children
		}
		l.leaves = append(l.leaves, &commandtree.Node{
			Name:        parts[len(parts)-1],
			Description: scriptPrefix + s.Body,
			Command:     fmt.Sprintf("%s run %s", runner, s.Name),
		})
	}

	commands := root.nodes()
	if len(commands) == 0 {
		return nil, ErrNoScripts
	}
	for _, n := range commands {
		n.Dirname = m.Dir
	}

	return &commandtree.Config{
		Name:     commandtree.Kebab(m.Name),
		Commands: commands,
	}, nil
}

func splitScriptName(name string) []string {
	return strings.FieldsFunc(name, func(r rune) bool { return r == ':' || r == '.' })
}
