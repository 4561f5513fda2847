package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/footprint-tools/crun/internal/commandtree"
)

// Encode writes cfg to w as indented JSON or as YAML.
func Encode(w io.Writer, cfg *commandtree.Config, format commandtree.Format) error {
	switch format {
	case commandtree.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	}
}

// WriteFile writes cfg to path in the format its extension implies.
func (g *Generator) WriteFile(path string, cfg *commandtree.Config) error {
	var buf bytes.Buffer
	if err := Encode(&buf, cfg, commandtree.FormatFromPath(path)); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := g.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := afero.WriteFile(g.fs, path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path is present. Stat errors other than
// not-exist count as present.
func (g *Generator) Exists(path string) bool {
	_, err := g.fs.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
