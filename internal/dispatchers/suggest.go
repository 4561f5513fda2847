package dispatchers

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/footprint-tools/crun/internal/commandtree"
)

const (
	defaultSuggestionsCount = 3
	maxSuggestionDistance   = 3
)

type suggestion struct {
	name     string
	distance int
}

// FindSimilarCommands returns up to maxResults sibling names within a small
// edit distance of input, closest first.
func FindSimilarCommands(input string, nodes []*commandtree.Node, maxResults int) []string {
	if len(nodes) == 0 {
		return nil
	}

	key := commandtree.Kebab(input)
	var suggestions []suggestion

	for _, n := range nodes {
		if n == nil {
			continue
		}
		name := commandtree.Kebab(n.Name)
		dist := levenshtein.ComputeDistance(key, name)
		if dist <= maxSuggestionDistance && dist > 0 {
			suggestions = append(suggestions, suggestion{name: name, distance: dist})
		}
	}

	sort.Slice(suggestions, func(i, j int) bool {
		if suggestions[i].distance != suggestions[j].distance {
			return suggestions[i].distance < suggestions[j].distance
		}
		return suggestions[i].name < suggestions[j].name
	})

	if len(suggestions) > maxResults {
		suggestions = suggestions[:maxResults]
	}

	result := make([]string, len(suggestions))
	for i, s := range suggestions {
		result[i] = s.name
	}
	return result
}

// suggestPaths prefixes each suggestion with the resolved part of the path.
func suggestPaths(walked []string, names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.Join(append(append([]string{}, walked...), n), ".")
	}
	return out
}
