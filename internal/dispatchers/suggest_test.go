package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/crun/internal/commandtree"
)

func nodes(names ...string) []*commandtree.Node {
	out := make([]*commandtree.Node, len(names))
	for i, n := range names {
		out[i] = &commandtree.Node{Name: n, Command: "true"}
	}
	return out
}

func TestFindSimilarCommands(t *testing.T) {
	level := nodes("start", "stop", "status", "Build All", "deploy")

	tests := []struct {
		name  string
		input string
		max   int
		want  []string
	}{
		{"transposition", "strat", 3, []string{"start", "status", "stop"}},
		{"limit results", "strat", 1, []string{"start"}},
		{"kebab compare", "build al", 3, []string{"build-all"}},
		{"case insensitive", "DEPLY", 3, []string{"deploy"}},
		{"exact match excluded", "deploy", 3, []string{}},
		{"too far", "xyz123456", 3, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindSimilarCommands(tt.input, level, tt.max)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFindSimilarCommands_Empty(t *testing.T) {
	require.Nil(t, FindSimilarCommands("x", nil, 3))
}

func TestSuggestPaths(t *testing.T) {
	require.Equal(t, []string{"web.start"}, suggestPaths([]string{"web"}, []string{"start"}))
	require.Equal(t, []string{"deploy"}, suggestPaths(nil, []string{"deploy"}))
}
