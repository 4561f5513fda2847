package dispatchers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHelp_Root(t *testing.T) {
	cfg := loadTestTree(t)

	out := Help(cfg, Resolution{Mode: ModeHelp})
	require.Contains(t, out, "demo - Demo project")
	require.Contains(t, out, "build-all")
	require.Contains(t, out, "web.")
	require.Contains(t, out, "--completions=<shell>")
	require.Contains(t, out, "setup wizard")
}

func TestHelp_Group(t *testing.T) {
	cfg := loadTestTree(t)

	res, err := Dispatch(cfg, []string{"web"}, NewParsedFlags([]string{"--help"}), false)
	require.NoError(t, err)

	out := Help(cfg, res)
	require.Contains(t, out, "web - Web app")
	require.Contains(t, out, "start")
	require.Contains(t, out, "Start the dev server")
	require.Contains(t, out, "stop")
}

func TestHelp_Leaf(t *testing.T) {
	cfg := loadTestTree(t)

	res, err := Dispatch(cfg, []string{"web.start"}, NewParsedFlags([]string{"--help"}), false)
	require.NoError(t, err)

	out := Help(cfg, res)
	require.Contains(t, out, "web.start - Start the dev server")
	require.Contains(t, out, "npm start -- --port {port}")
	require.Contains(t, out, "in /srv/web")
	require.Contains(t, out, "port")
	require.Contains(t, out, "Port to listen on")
	require.Contains(t, out, "/listening/i")
}

func TestHelp_InteractiveLeaf(t *testing.T) {
	cfg := loadTestTree(t)

	res, err := Dispatch(cfg, []string{"db.migrate"}, NewParsedFlags([]string{"--help"}), false)
	require.NoError(t, err)
	require.Contains(t, Help(cfg, res), "attached to the terminal")
}

func TestHelp_Warning(t *testing.T) {
	cfg := loadTestTree(t)

	out := Help(cfg, Resolution{Mode: ModeHelp, Warning: "'x' is not a command in this tree"})
	require.Contains(t, out, "'x' is not a command")
	require.Contains(t, out, "COMMANDS")
}

func TestFormatUsage(t *testing.T) {
	require.Equal(t, "crun <tree>", formatUsage("crun <tree>"))
	require.Equal(t, "crun", formatUsage("crun"))
}

func TestUsage_WithoutTree(t *testing.T) {
	out := Usage()
	require.Contains(t, out, "crun <tree> [command.path] [flags]")
	require.Contains(t, out, "--generate=<package.json>")
	require.Contains(t, out, "--history")
	require.Contains(t, out, "crun.yaml")
}
