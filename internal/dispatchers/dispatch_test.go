package dispatchers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/crun/internal/usage"
)

func TestDispatch_RunLeaf(t *testing.T) {
	cfg := loadTestTree(t)

	tests := []struct {
		name    string
		tokens  []string
		path    []string
		dirname string
	}{
		{"dotted path", []string{"web.start"}, []string{"web", "start"}, "/srv/web"},
		{"space separated tokens", []string{"web", "start"}, []string{"web", "start"}, "/srv/web"},
		{"colon separator", []string{"web:stop"}, []string{"web", "stop"}, "/srv/web"},
		{"kebab name", []string{"build-all"}, []string{"build-all"}, ""},
		{"mixed case", []string{"DB.Migrate"}, []string{"db", "migrate"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Dispatch(cfg, tt.tokens, NewParsedFlags(nil), false)
			require.NoError(t, err)
			require.Equal(t, ModeRun, res.Mode)
			require.Equal(t, tt.path, res.Match.Path)
			require.Equal(t, tt.dirname, res.Match.Dirname)
			require.True(t, res.Match.Node.IsLeaf())
		})
	}
}

func TestDispatch_EmptyPath(t *testing.T) {
	cfg := loadTestTree(t)

	res, err := Dispatch(cfg, nil, NewParsedFlags(nil), true)
	require.NoError(t, err)
	require.Equal(t, ModeSelect, res.Mode)
	require.Nil(t, res.Match.Node)
	require.Len(t, res.Level(cfg), 3)

	res, err = Dispatch(cfg, nil, NewParsedFlags(nil), false)
	require.NoError(t, err)
	require.Equal(t, ModeHelp, res.Mode)
	require.Equal(t, 1, res.ExitCode)
}

func TestDispatch_Group(t *testing.T) {
	cfg := loadTestTree(t)

	res, err := Dispatch(cfg, []string{"web"}, NewParsedFlags(nil), true)
	require.NoError(t, err)
	require.Equal(t, ModeSelect, res.Mode)
	require.Equal(t, "/srv/web", res.Match.Dirname)
	require.Len(t, res.Level(cfg), 2)

	res, err = Dispatch(cfg, []string{"web"}, NewParsedFlags(nil), false)
	require.NoError(t, err)
	require.Equal(t, ModeHelp, res.Mode)
	require.Equal(t, 1, res.ExitCode)
}

func TestDispatch_UnknownNonInteractive(t *testing.T) {
	cfg := loadTestTree(t)

	_, err := Dispatch(cfg, []string{"web.strat"}, NewParsedFlags(nil), false)
	require.Error(t, err)

	var uerr *usage.Error
	require.True(t, errors.As(err, &uerr))
	require.Equal(t, usage.ErrUnknownCommand, uerr.Kind)
	require.Contains(t, uerr.Message, "web.start")
	require.Contains(t, uerr.Message, "web.stop")
}

func TestDispatch_UnknownInteractiveFallsBack(t *testing.T) {
	cfg := loadTestTree(t)

	res, err := Dispatch(cfg, []string{"web.strat"}, NewParsedFlags(nil), true)
	require.NoError(t, err)
	require.Equal(t, ModeSelect, res.Mode)
	require.Equal(t, []string{"web"}, res.Match.Path)
	require.Equal(t, "/srv/web", res.Match.Dirname)
	require.Contains(t, res.Warning, "web.strat")
	require.Contains(t, res.Warning, "did you mean 'web.start'")

	res, err = Dispatch(cfg, []string{"nothing"}, NewParsedFlags(nil), true)
	require.NoError(t, err)
	require.Equal(t, ModeSelect, res.Mode)
	require.Nil(t, res.Match.Node)
	require.NotContains(t, res.Warning, "did you mean")
}

func TestDispatch_PathThroughLeaf(t *testing.T) {
	cfg := loadTestTree(t)

	_, err := Dispatch(cfg, []string{"build-all.extra"}, NewParsedFlags(nil), false)
	require.Error(t, err)

	var uerr *usage.Error
	require.True(t, errors.As(err, &uerr))
	require.Equal(t, usage.ErrUnknownCommand, uerr.Kind)
}

func TestDispatch_Help(t *testing.T) {
	cfg := loadTestTree(t)

	res, err := Dispatch(cfg, []string{"web"}, NewParsedFlags([]string{"--help"}), false)
	require.NoError(t, err)
	require.Equal(t, ModeHelp, res.Mode)
	require.Equal(t, []string{"web"}, res.Match.Path)
	require.Zero(t, res.ExitCode)

	res, err = Dispatch(cfg, []string{"missing"}, NewParsedFlags([]string{"-h"}), false)
	require.NoError(t, err)
	require.Equal(t, ModeHelp, res.Mode)
	require.Nil(t, res.Match.Node)
	require.Contains(t, res.Warning, "missing")
}

func TestDispatch_Setup(t *testing.T) {
	cfg := loadTestTree(t)

	res, err := Dispatch(cfg, nil, NewParsedFlags([]string{"--setup"}), false)
	require.NoError(t, err)
	require.Equal(t, ModeSetup, res.Mode)

	cfg.Setup = nil
	_, err = Dispatch(cfg, nil, NewParsedFlags([]string{"--setup"}), false)
	var uerr *usage.Error
	require.True(t, errors.As(err, &uerr))
	require.Equal(t, usage.ErrNoSetup, uerr.Kind)
}

func TestDispatch_Completions(t *testing.T) {
	cfg := loadTestTree(t)

	res, err := Dispatch(cfg, nil, NewParsedFlags([]string{"--completions=zsh"}), false)
	require.NoError(t, err)
	require.Equal(t, ModeCompletions, res.Mode)
	require.Equal(t, "zsh", res.Shell)
}

func TestMode_String(t *testing.T) {
	require.Equal(t, "run", ModeRun.String())
	require.Equal(t, "select", ModeSelect.String())
	require.Equal(t, "help", ModeHelp.String())
	require.Equal(t, "setup", ModeSetup.String())
	require.Equal(t, "completions", ModeCompletions.String())
	require.Equal(t, "unknown", Mode(99).String())
}
