package filesearch

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func newTestFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for _, f := range files {
		require.NoError(t, afero.WriteFile(fsys, filepath.Join("/proj", filepath.FromSlash(f)), []byte("x"), 0644))
	}
	return fsys
}

func slashed(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}
	return out
}

func TestFind_DefaultGlobSkipsDenylist(t *testing.T) {
	fsys := newTestFs(t,
		"main.go",
		"cmd/app/main.go",
		".git/config",
		"web/node_modules/pkg/index.js",
		"vendor/lib/lib.go",
		"py/__pycache__/x.pyc",
		".venv/bin/python",
	)

	got, err := New(fsys).Find("/proj", Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"cmd/app/main.go", "main.go"}, slashed(got))
}

func TestFind_Glob(t *testing.T) {
	fsys := newTestFs(t, "a.yml", "deploy/b.yml", "deploy/c.json", "d.yaml")

	got, err := New(fsys).Find("/proj", Options{Glob: "**/*.yml"})
	require.NoError(t, err)
	require.Equal(t, []string{"a.yml", "deploy/b.yml"}, slashed(got))
}

func TestFind_CustomIgnore(t *testing.T) {
	fsys := newTestFs(t, "keep.txt", "tmp/drop.txt", "logs/a.log", "logs/b.txt")

	got, err := New(fsys).Find("/proj", Options{Ignore: []string{"tmp/**", "**/*.log"}})
	require.NoError(t, err)
	require.Equal(t, []string{"keep.txt", "logs/b.txt"}, slashed(got))
}

func TestFind_IncludeDirectories(t *testing.T) {
	fsys := newTestFs(t, "src/a.go", "src/pkg/b.go")

	got, err := New(fsys).Find("/proj", Options{IncludeDirectories: true})
	require.NoError(t, err)
	require.Equal(t, []string{"src", "src/a.go", "src/pkg", "src/pkg/b.go"}, slashed(got))

	got, err = New(fsys).Find("/proj", Options{})
	require.NoError(t, err)
	require.Equal(t, []string{"src/a.go", "src/pkg/b.go"}, slashed(got))
}

func TestFind_InvalidGlob(t *testing.T) {
	_, err := New(afero.NewMemMapFs()).Find("/proj", Options{Glob: "[unclosed"})
	require.Error(t, err)
}

func TestFind_MissingRoot(t *testing.T) {
	_, err := New(afero.NewMemMapFs()).Find("/nowhere", Options{})
	require.Error(t, err)
}

func TestMatchesSubsequence(t *testing.T) {
	tests := []struct {
		query     string
		candidate string
		want      bool
	}{
		{"", "anything", true},
		{"mg", "main.go", true},
		{"MAIN", "cmd/main.go", true},
		{"cmg", "cmd/app/main.go", true},
		{"gm", "main.go", false},
		{"xyz", "main.go", false},
		{"main.go.extra", "main.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.candidate, func(t *testing.T) {
			require.Equal(t, tt.want, MatchesSubsequence(tt.query, tt.candidate))
		})
	}
}

func TestFilter(t *testing.T) {
	all := []string{"main.go", "README.md", "cmd/main_test.go"}
	require.Equal(t, []string{"main.go", "cmd/main_test.go"}, Filter("mgo", all))
	require.Equal(t, all, Filter("", all))
	require.Empty(t, Filter("zzz", all))
}
