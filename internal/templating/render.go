// Package templating substitutes configuration values and collected
// arguments into command templates.
package templating

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/footprint-tools/crun/internal/paths"
)

// ConfigSource resolves {CONFIG.key} placeholders. userconfig.Config
// implements it.
type ConfigSource interface {
	Lookup(key string) (any, bool)
}

var (
	configPlaceholder = regexp.MustCompile(`\{CONFIG\.([^{}\s]+)\}`)
	argPlaceholder    = regexp.MustCompile(`\{([^{}\s]+)\}`)
)

// Render runs the configuration pass and then the argument pass over
// template. Placeholders with no value are left as written.
func Render(template string, cfg ConfigSource, values map[string]string) string {
	out := RenderConfig(template, cfg)
	return argPlaceholder.ReplaceAllStringFunc(out, func(m string) string {
		if v, ok := values[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Mask stands in for configuration values in RenderMasked output.
const Mask = "***"

// RenderMasked is Render with every resolved configuration value written
// as Mask. Collected argument values are kept.
func RenderMasked(template string, cfg ConfigSource, values map[string]string) string {
	if cfg == nil {
		return Render(template, nil, values)
	}
	return Render(template, maskedSource{cfg}, values)
}

type maskedSource struct {
	cfg ConfigSource
}

func (m maskedSource) Lookup(key string) (any, bool) {
	if _, ok := m.cfg.Lookup(key); !ok {
		return nil, false
	}
	return Mask, true
}

// RenderConfig replaces only {CONFIG.key} placeholders.
func RenderConfig(template string, cfg ConfigSource) string {
	if cfg == nil {
		return template
	}
	return configPlaceholder.ReplaceAllStringFunc(template, func(m string) string {
		key := configPlaceholder.FindStringSubmatch(m)[1]
		v, ok := cfg.Lookup(key)
		if !ok {
			return m
		}
		return Stringify(v)
	})
}

// RenderDirectory applies the configuration pass to a dirname and expands
// the home directory.
func RenderDirectory(dirname string, cfg ConfigSource) string {
	return paths.ExpandHome(RenderConfig(dirname, cfg))
}

// Stringify renders a config value for inclusion in a command line. Lists
// are comma-joined, objects become JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case []string:
		return strings.Join(t, ",")
	case []any:
		parts := make([]string, len(t))
		for i, item := range t {
			parts[i] = Stringify(item)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	default:
		return fmt.Sprint(t)
	}
}
