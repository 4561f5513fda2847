// Package filesearch enumerates candidate files for the file picker.
package filesearch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
)

// DefaultGlob matches every entry below the root.
const DefaultGlob = "**"

// DefaultIgnore is always excluded, in addition to per-argument ignores.
var DefaultIgnore = []string{
	"**/.git/**",
	"**/.hg/**",
	"**/.svn/**",
	"**/node_modules/**",
	"**/vendor/**",
	"**/.venv/**",
	"**/__pycache__/**",
}

// Options narrows an enumeration.
type Options struct {
	Glob               string
	Ignore             []string
	IncludeDirectories bool
}

// Finder walks a filesystem.
type Finder struct {
	fs afero.Fs
}

// New returns a Finder over fsys. A nil fsys uses the OS filesystem.
func New(fsys afero.Fs) *Finder {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Finder{fs: fsys}
}

// Find returns the entries under root matching opts, as sorted paths
// relative to root using the OS separator.
func (f *Finder) Find(root string, opts Options) ([]string, error) {
	glob := opts.Glob
	if glob == "" {
		glob = DefaultGlob
	}
	if !doublestar.ValidatePattern(glob) {
		return nil, fmt.Errorf("invalid glob %q", glob)
	}

	ignore := make([]string, 0, len(DefaultIgnore)+len(opts.Ignore))
	ignore = append(ignore, DefaultIgnore...)
	for _, p := range opts.Ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
		ignore = append(ignore, p)
	}

	var out []string
	err := afero.Walk(f.fs, root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// Unreadable entries are skipped.
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() && dirIgnored(ignore, rel) {
			return filepath.SkipDir
		}
		if ignored(ignore, rel) {
			return nil
		}
		if info.IsDir() && !opts.IncludeDirectories {
			return nil
		}
		if ok, _ := doublestar.Match(glob, rel); ok {
			out = append(out, filepath.FromSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", root, err)
	}

	sort.Strings(out)
	return out, nil
}

func ignored(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// dirIgnored reports whether a directory or everything inside it is ignored.
func dirIgnored(patterns []string, rel string) bool {
	return ignored(patterns, rel) || ignored(patterns, rel+"/"+dirProbe)
}

const dirProbe = "\x00probe"

// MatchesSubsequence reports whether the characters of query appear in
// candidate in order, ignoring case. An empty query matches everything.
func MatchesSubsequence(query, candidate string) bool {
	q := []rune(strings.ToLower(query))
	if len(q) == 0 {
		return true
	}
	i := 0
	for _, r := range candidate {
		if unicode.ToLower(r) == q[i] {
			i++
			if i == len(q) {
				return true
			}
		}
	}
	return false
}

// Filter keeps the candidates that match query, preserving order.
func Filter(query string, candidates []string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if MatchesSubsequence(query, c) {
			out = append(out, c)
		}
	}
	return out
}
