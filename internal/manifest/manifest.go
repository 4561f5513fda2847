// Package manifest derives a command tree from a package.json file.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/footprint-tools/crun/internal/commandtree"
)

// FileName is the manifest crun knows how to read.
const FileName = "package.json"

// ErrNoScripts is returned for a manifest without any usable scripts.
var ErrNoScripts = errors.New("no scripts defined")

// Script is one entry of the manifest's scripts object.
type Script struct {
	Name string
	Body string
}

// Manifest is the subset of package.json crun uses.
type Manifest struct {
	Name    string
	Dir     string
	Runner  string
	Scripts []Script
}

// lockfiles maps a lockfile to the runner that owns it, in detection order.
var lockfiles = []struct {
	file   string
	runner string
}{
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"bun.lockb", "bun"},
	{"bun.lock", "bun"},
}

// Generator reads manifests from a filesystem.
type Generator struct {
	fs afero.Fs
}

// New returns a Generator over fsys. A nil fsys uses the OS filesystem.
func New(fsys afero.Fs) *Generator {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Generator{fs: fsys}
}

// Read loads the manifest at path. path may name the file or its directory.
func (g *Generator) Read(path string) (*Manifest, error) {
	if info, err := g.fs.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, FileName)
	}

	data, err := afero.ReadFile(g.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve manifest directory: %w", err)
	}
	m.Dir = dir
	m.Runner = g.detectRunner(filepath.Dir(path))
	if m.Name == "" {
		m.Name = filepath.Base(dir)
	}
	return m, nil
}

func (g *Generator) detectRunner(dir string) string {
	for _, l := range lockfiles {
		if ok, _ := afero.Exists(g.fs, filepath.Join(dir, l.file)); ok {
			return l.runner
		}
	}
	return "npm"
}

// Generate reads the manifest at path and builds a validated tree from it.
func (g *Generator) Generate(path string) (*commandtree.Config, error) {
	m, err := g.Read(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Build(m)
	if err != nil {
		return nil, err
	}
	if err := commandtree.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes package.json, keeping scripts in file order.
func Parse(data []byte) (*Manifest, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	m := &Manifest{}
	if raw, ok := top["name"]; ok {
		if err := json.Unmarshal(raw, &m.Name); err != nil {
			return nil, fmt.Errorf("parse manifest name: %w", err)
		}
	}

	raw, ok := top["scripts"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return m, nil
	}
	scripts, err := orderedScripts(raw)
	if err != nil {
		return nil, err
	}
	m.Scripts = scripts
	return m, nil
}

func orderedScripts(raw json.RawMessage) ([]Script, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("scripts must be an object")
	}

	var out []Script
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := keyTok.(string)

		var body string
		if err := dec.Decode(&body); err != nil {
			return nil, fmt.Errorf("script %q: %w", name, err)
		}
		out = append(out, Script{Name: name, Body: body})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}
