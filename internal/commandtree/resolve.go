package commandtree

import (
	"strings"
	"unicode"
)

// Match is the result of a successful resolution.
type Match struct {
	Node *Node
	// Dirname is the node's own dirname or the nearest ancestor's along the path.
	Dirname string
	// Path holds the kebab-normalized segments that led to Node.
	Path []string
}

// Kebab lowercases s and turns every whitespace rune into '-'.
func Kebab(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return unicode.ToLower(r)
	}, s)
}

// NormalizePath joins CLI tokens with '.', treating spaces and ':' as separators.
func NormalizePath(tokens []string) string {
	r := strings.NewReplacer(" ", ".", ":", ".")
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		parts = append(parts, r.Replace(t))
	}
	return strings.Join(parts, ".")
}

// SplitPath splits a dotted path into segments. Leading and trailing dots
// are ignored; an empty inner segment is kept and matches no node.
func SplitPath(path string) []string {
	path = strings.Trim(path, ".")
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Find returns the sibling whose normalized name equals segment.
func Find(nodes []*Node, segment string) *Node {
	key := Kebab(segment)
	for _, n := range nodes {
		if n != nil && Kebab(n.Name) == key {
			return n
		}
	}
	return nil
}

// Resolve walks nodes along the dotted path. inherited is the dirname in
// effect above nodes. An empty path never matches.
func Resolve(nodes []*Node, path string, inherited string) (Match, bool) {
	segments := SplitPath(path)
	if len(segments) == 0 {
		return Match{}, false
	}

	walked := make([]string, 0, len(segments))
	level := nodes
	for i, seg := range segments {
		n := Find(level, seg)
		if n == nil {
			return Match{}, false
		}
		walked = append(walked, Kebab(n.Name))
		if n.Dirname != "" {
			inherited = n.Dirname
		}

		if i == len(segments)-1 {
			return Match{Node: n, Dirname: inherited, Path: walked}, true
		}
		if !n.IsGroup() {
			return Match{}, false
		}
		level = n.Children
	}

	return Match{}, false
}

// Deepest returns the longest resolvable prefix of path and the segments that
// failed to resolve. It is used to suggest alternatives after a miss.
func Deepest(nodes []*Node, path string) (level []*Node, walked []string, rest []string) {
	segments := SplitPath(path)
	level = nodes
	for i, seg := range segments {
		n := Find(level, seg)
		if n == nil || (!n.IsGroup() && i < len(segments)-1) {
			return level, walked, segments[i:]
		}
		walked = append(walked, Kebab(n.Name))
		if !n.IsGroup() {
			return level, walked, segments[i+1:]
		}
		level = n.Children
	}
	return level, walked, nil
}
