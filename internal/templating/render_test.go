package templating

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type mapConfig map[string]any

func (m mapConfig) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

func TestRender(t *testing.T) {
	cfg := mapConfig{
		"user":    "ana",
		"regions": []any{"eu", "us"},
		"debug":   true,
		"port":    float64(8080),
		"db":      map[string]any{"host": "h"},
	}

	tests := []struct {
		name     string
		template string
		values   map[string]string
		want     string
	}{
		{"no placeholders", "make build", nil, "make build"},
		{"arg", "deploy {env}", map[string]string{"env": "prod"}, "deploy prod"},
		{"every occurrence", "{x} and {x}", map[string]string{"x": "1"}, "1 and 1"},
		{"config string", "ssh {CONFIG.user}@host", nil, "ssh ana@host"},
		{"config list", "--regions={CONFIG.regions}", nil, "--regions=eu,us"},
		{"config bool", "--debug={CONFIG.debug}", nil, "--debug=true"},
		{"config number", "--port {CONFIG.port}", nil, "--port 8080"},
		{"config object", "{CONFIG.db}", nil, `{"host":"h"}`},
		{"unknown config left literal", "echo {CONFIG.missing}", nil, "echo {CONFIG.missing}"},
		{"unresolved arg left literal", "echo {name}", map[string]string{}, "echo {name}"},
		{
			"config pass runs first",
			"{CONFIG.user} {who}",
			map[string]string{"who": "{CONFIG.user}"},
			"ana {CONFIG.user}",
		},
		{
			"arg values are not re-expanded",
			"{a} {b}",
			map[string]string{"a": "{b}", "b": "x"},
			"{b} x",
		},
		{"empty value", "run {opt}", map[string]string{"opt": ""}, "run "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Render(tt.template, cfg, tt.values))
		})
	}
}

func TestRender_NilConfig(t *testing.T) {
	require.Equal(t, "a {CONFIG.x} 1", Render("a {CONFIG.x} {n}", nil, map[string]string{"n": "1"}))
}

func TestRenderMasked(t *testing.T) {
	cfg := mapConfig{"token": "s3cret"}
	values := map[string]string{"env": "prod"}

	got := RenderMasked("deploy {env} --token {CONFIG.token} {CONFIG.missing}", cfg, values)
	require.Equal(t, "deploy prod --token *** {CONFIG.missing}", got)
	require.NotContains(t, got, "s3cret")

	require.Equal(t, "deploy prod", RenderMasked("deploy {env}", nil, values))
}

func TestRenderDirectory(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	cfg := mapConfig{"root": "~/work"}
	require.Equal(t, filepath.Join(home, "work"), RenderDirectory("{CONFIG.root}", cfg))
	require.Equal(t, filepath.Join(home, "src"), RenderDirectory("~/src", nil))
	require.Equal(t, "/abs/{arg}", RenderDirectory("/abs/{arg}", cfg))
	require.Equal(t, "$HOMEBREW_PREFIX/opt", RenderDirectory("$HOMEBREW_PREFIX/opt", nil))
}

func TestStringify(t *testing.T) {
	require.Equal(t, "", Stringify(nil))
	require.Equal(t, "false", Stringify(false))
	require.Equal(t, "1.5", Stringify(1.5))
	require.Equal(t, "a,b", Stringify([]string{"a", "b"}))
	require.Equal(t, "a,true", Stringify([]any{"a", true}))
}
