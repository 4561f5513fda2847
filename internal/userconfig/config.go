package userconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/footprint-tools/crun/internal/paths"
)

// FileName is the user config file inside the setup directory.
const FileName = "config.json"

var (
	// ErrConfigMissing means the config file does not exist yet.
	ErrConfigMissing = errors.New("user config not found")
	// ErrConfigInvalid means the config file is not a JSON object.
	ErrConfigInvalid = errors.New("user config is not valid JSON")
)

// Config holds persisted setup answers. Values are strings, lists or
// nested objects.
type Config map[string]any

// Path returns the config file location for configDirectory after home
// expansion.
func Path(configDirectory string) string {
	return filepath.Join(paths.ExpandHome(configDirectory), FileName)
}

// Load reads and sanitizes <configDirectory>/config.json.
func Load(configDirectory string) (Config, error) {
	path := Path(configDirectory)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read user config: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigInvalid, path, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: %s: top level must be an object", ErrConfigInvalid, path)
	}

	return Sanitize(raw), nil
}

// Sanitize returns a copy of cfg where every string, at any depth, has one
// trailing '/' removed and $HOME or a leading ~ expanded.
func Sanitize(cfg Config) Config {
	out := make(Config, len(cfg))
	for k, v := range cfg {
		out[k] = sanitizeValue(v)
	}
	return out
}

func sanitizeValue(v any) any {
	switch t := v.(type) {
	case string:
		return paths.ExpandHome(strings.TrimSuffix(t, "/"))
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = sanitizeValue(item)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = sanitizeValue(item)
		}
		return out
	default:
		return v
	}
}

// Lookup walks dotted keys through nested objects.
func (c Config) Lookup(key string) (any, bool) {
	if v, ok := c[key]; ok {
		return v, true
	}

	var cur any = map[string]any(c)
	for _, part := range strings.Split(key, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}
