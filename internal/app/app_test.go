package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/crun/internal/dispatchers"
	"github.com/footprint-tools/crun/internal/executor"
	"github.com/footprint-tools/crun/internal/history"
	"github.com/footprint-tools/crun/internal/manifest"
	"github.com/footprint-tools/crun/internal/prompt"
	"github.com/footprint-tools/crun/internal/testutil"
	"github.com/footprint-tools/crun/internal/usage"
	"github.com/footprint-tools/crun/internal/userconfig"
)

const appTree = `
name: demo
description: Demo project
commands:
  - name: Build All
    command: make all
  - name: web
    description: Web app
    dirname: %[1]s
    commands:
      - name: start
        description: Start the dev server
        command: npm start -- --port {port} --env {CONFIG.env}
        args:
          port:
            type: input
            description: Port
        onReady:
          pattern: /listening/i
          stdinInput: "o\n"
      - name: deploy
        command: ./deploy.sh
        args:
          sure:
            type: confirm
            description: Deploy now?
setup:
  configDirectory: %[2]s
  steps:
    - name: env
      type: select
      choices: [dev, prod]
      default: dev
`

type fakeExecutor struct {
	requests []executor.Request
	err      error
}

func (f *fakeExecutor) Execute(_ context.Context, req executor.Request) error {
	f.requests = append(f.requests, req)
	return f.err
}

type testEnv struct {
	app      *App
	out      *bytes.Buffer
	exec     *fakeExecutor
	store    *history.Store
	tree     string
	webDir   string
	setupDir string
}

// newTestEnv writes the demo tree and wires an App whose prompts read from
// answers.
func newTestEnv(t *testing.T, answers string) *testEnv {
	t.Helper()

	root := t.TempDir()
	env := &testEnv{
		out:      &bytes.Buffer{},
		exec:     &fakeExecutor{},
		store:    testutil.NewTestStore(t),
		tree:     filepath.Join(root, "crun.yaml"),
		webDir:   filepath.Join(root, "web"),
		setupDir: filepath.Join(root, "settings"),
	}
	require.NoError(t, os.MkdirAll(env.webDir, 0755))
	require.NoError(t, os.WriteFile(env.tree, []byte(fmt.Sprintf(appTree, env.webDir, env.setupDir)), 0644))

	env.app = NewForTesting(env.out, prompt.NewLine(strings.NewReader(answers), env.out), env.exec)
	env.app.History = env.store
	env.app.Getwd = func() (string, error) { return root, nil }
	return env
}

func (e *testEnv) saveUserConfig(t *testing.T, cfg userconfig.Config) {
	t.Helper()
	require.NoError(t, userconfig.Save(e.setupDir, cfg))
}

func (e *testEnv) run(flags []string, tokens ...string) (int, error) {
	return e.app.Run(context.Background(), tokens, dispatchers.NewParsedFlags(flags))
}

func TestRun_Version(t *testing.T) {
	env := newTestEnv(t, "")

	code, err := env.run([]string{"--version"})
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "crun version test\n", env.out.String())
}

func TestRun_LeafWithArgsAndTrigger(t *testing.T) {
	env := newTestEnv(t, "8080\n")
	env.saveUserConfig(t, userconfig.Config{"env": "prod"})

	code, err := env.run(nil, env.tree, "web", "start")
	require.NoError(t, err)
	require.Equal(t, 0, code)

	require.Len(t, env.exec.requests, 1)
	req := env.exec.requests[0]
	require.Equal(t, "npm start -- --port 8080 --env prod", req.CommandLine)
	require.Equal(t, env.webDir, req.WorkingDirectory)
	require.NotNil(t, req.Trigger)
	require.Equal(t, "o\n", req.Trigger.Input)
	require.False(t, req.Interactive)

	runs, err := env.store.List(history.Filter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "demo", runs[0].Tree)
	require.Equal(t, "web.start", runs[0].Path)
	require.Equal(t, history.StatusSucceeded, runs[0].Status)
	require.Equal(t, "npm start -- --port 8080 --env ***", runs[0].CommandLine)
}

func TestRun_LeafWithoutUserConfig(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.run(nil, env.tree, "build-all")
	require.Error(t, err)

	var usageErr *usage.Error
	require.True(t, errors.As(err, &usageErr))
	require.Equal(t, usage.ErrConfig, usageErr.Kind)
	require.Equal(t, 1, ExitCode(err))
	require.Empty(t, env.exec.requests)
}

func TestRun_ChildFailureMirrorsExitCode(t *testing.T) {
	env := newTestEnv(t, "")
	env.saveUserConfig(t, userconfig.Config{"env": "dev"})
	env.exec.err = &executor.NonZeroExitError{Program: "make", Code: 3}

	_, err := env.run(nil, env.tree, "build-all")
	require.Error(t, err)
	require.Equal(t, 3, ExitCode(err))
	require.False(t, ShouldReport(err))

	runs, err := env.store.List(history.Filter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, history.StatusFailed, runs[0].Status)
	require.Equal(t, 3, runs[0].ExitCode)
}

func TestRun_SpawnFailureRecorded(t *testing.T) {
	env := newTestEnv(t, "")
	env.saveUserConfig(t, userconfig.Config{})
	env.exec.err = &executor.SpawnError{Program: "make", Cause: os.ErrNotExist}

	_, err := env.run(nil, env.tree, "build-all")
	require.Equal(t, ExitSpawnFailed, ExitCode(err))

	runs, err := env.store.List(history.Filter{})
	require.NoError(t, err)
	require.Equal(t, history.StatusSpawnFailed, runs[0].Status)
	require.Equal(t, ExitSpawnFailed, runs[0].ExitCode)
}

func TestRun_DeclinedConfirmAborts(t *testing.T) {
	env := newTestEnv(t, "n\n")
	env.saveUserConfig(t, userconfig.Config{})

	code, err := env.run(nil, env.tree, "web:deploy")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Empty(t, env.exec.requests)
	require.Contains(t, env.out.String(), "Aborted: cancelled by user")

	runs, err := env.store.List(history.Filter{})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, history.StatusAborted, runs[0].Status)
	require.Empty(t, runs[0].CommandLine)
}

func TestRun_HistoryFailureDoesNotFailRun(t *testing.T) {
	env := newTestEnv(t, "")
	env.saveUserConfig(t, userconfig.Config{})
	require.NoError(t, env.store.Close())

	code, err := env.run(nil, env.tree, "build-all")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Len(t, env.exec.requests, 1)
}

func TestRun_InteractiveSelection(t *testing.T) {
	// web is the second root entry, start the first of its children.
	env := newTestEnv(t, "2\n1\n9000\n")
	env.saveUserConfig(t, userconfig.Config{"env": "dev"})
	env.app.Interactive = true

	code, err := env.run(nil, env.tree)
	require.NoError(t, err)
	require.Equal(t, 0, code)

	require.Len(t, env.exec.requests, 1)
	require.Equal(t, "npm start -- --port 9000 --env dev", env.exec.requests[0].CommandLine)
	require.Equal(t, env.webDir, env.exec.requests[0].WorkingDirectory)
	require.Contains(t, env.out.String(), "Select a command in web")
}

func TestRun_InteractiveMissFallsBackToSelection(t *testing.T) {
	// Selection starts inside web; deploy is then declined.
	env := newTestEnv(t, "2\nn\n")
	env.saveUserConfig(t, userconfig.Config{})
	env.app.Interactive = true

	_, err := env.run(nil, env.tree, "web.strat")
	require.NoError(t, err)
	require.Contains(t, env.out.String(), "'web.strat' is not a command in this tree (did you mean 'web.start'?)")
	require.Len(t, env.exec.requests, 0)
	require.Contains(t, env.out.String(), "Aborted")
}

func TestRun_SetupFromSelection(t *testing.T) {
	env := newTestEnv(t, "Setup\n2\n")
	env.app.Interactive = true

	code, err := env.run(nil, env.tree)
	require.NoError(t, err)
	require.Equal(t, 0, code)

	cfg, err := userconfig.Load(env.setupDir)
	require.NoError(t, err)
	require.Equal(t, "prod", cfg["env"])
	require.Contains(t, env.out.String(), "Saved configuration to")
}

func TestRun_SetupFlag(t *testing.T) {
	env := newTestEnv(t, "\n")

	_, err := env.run([]string{"--setup"}, env.tree)
	require.NoError(t, err)

	cfg, err := userconfig.Load(env.setupDir)
	require.NoError(t, err)
	require.Equal(t, "dev", cfg["env"])
}

func TestRun_PromptCancelled(t *testing.T) {
	env := newTestEnv(t, "")
	env.saveUserConfig(t, userconfig.Config{})

	_, err := env.run(nil, env.tree, "web.start")
	require.True(t, errors.Is(err, prompt.ErrCancelled))
	require.Equal(t, ExitInterrupted, ExitCode(err))
	require.False(t, ShouldReport(err))
}

func TestRun_HelpWithoutPathExitsOne(t *testing.T) {
	env := newTestEnv(t, "")

	code, err := env.run(nil, env.tree)
	require.NoError(t, err)
	require.Equal(t, 1, code)
	require.Contains(t, env.out.String(), "COMMANDS")
	require.Contains(t, env.out.String(), "build-all")
}

func TestRun_HelpFlag(t *testing.T) {
	env := newTestEnv(t, "")

	code, err := env.run([]string{"--help"}, env.tree, "web.start")
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Contains(t, env.out.String(), "web.start - Start the dev server")
}

func TestRun_HelpWithoutTree(t *testing.T) {
	env := newTestEnv(t, "")
	env.app.Getwd = func() (string, error) { return t.TempDir(), nil }

	code, err := env.run([]string{"--help"})
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Contains(t, env.out.String(), "--generate=<package.json>")
}

func TestRun_UnknownCommand(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.run(nil, env.tree, "web.strat")
	require.Error(t, err)
	require.Contains(t, err.Error(), "web.start")
	require.Equal(t, 1, ExitCode(err))
}

func TestRun_DefaultTreeFile(t *testing.T) {
	env := newTestEnv(t, "")
	env.saveUserConfig(t, userconfig.Config{})

	_, err := env.run(nil, "build-all")
	require.NoError(t, err)
	require.Len(t, env.exec.requests, 1)
	require.Equal(t, "make all", env.exec.requests[0].CommandLine)
}

func TestRun_MissingTree(t *testing.T) {
	env := newTestEnv(t, "")
	env.app.Getwd = func() (string, error) { return t.TempDir(), nil }

	_, err := env.run(nil, "build-all")
	require.Error(t, err)
	require.Equal(t, 2, ExitCode(err))
}

func TestRun_InvalidTree(t *testing.T) {
	env := newTestEnv(t, "")
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name":"x","commands":[{"name":"a"}]}`), 0644))

	_, err := env.run(nil, bad)
	var usageErr *usage.Error
	require.True(t, errors.As(err, &usageErr))
	require.Equal(t, usage.ErrInvalidTree, usageErr.Kind)
}

func TestRun_Completions(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.run([]string{"--completions=bash"}, env.tree)
	require.NoError(t, err)
	require.Contains(t, env.out.String(), "complete -o default")
	require.Contains(t, env.out.String(), "build-all")
	require.Contains(t, env.out.String(), "--completions=")
}

func TestRun_CompletionsUnsupportedShell(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.run([]string{"--completions=tcsh"}, env.tree)
	require.Error(t, err)
	require.Equal(t, 2, ExitCode(err))
}

func TestRun_GeneratePrintsTree(t *testing.T) {
	env := newTestEnv(t, "")
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/package.json", []byte(`{"name":"proj","scripts":{"build":"tsc","test:unit":"jest"}}`), 0644))
	env.app.Manifests = manifest.New(fs)

	_, err := env.run([]string{"--generate=/proj/package.json"})
	require.NoError(t, err)
	require.Contains(t, env.out.String(), `"npm run build"`)
	require.Contains(t, env.out.String(), `"npm run test:unit"`)
}

func TestRun_GenerateWritesFile(t *testing.T) {
	env := newTestEnv(t, "")
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/package.json", []byte(`{"name":"proj","scripts":{"build":"tsc"}}`), 0644))
	env.app.Manifests = manifest.New(fs)

	_, err := env.run([]string{"--generate=/proj", "--output=/proj/crun.yaml"})
	require.NoError(t, err)
	require.Contains(t, env.out.String(), "Wrote 1 commands to /proj/crun.yaml")

	data, err := afero.ReadFile(fs, "/proj/crun.yaml")
	require.NoError(t, err)
	require.Contains(t, string(data), "npm run build")
}

func TestRun_GenerateInvalidManifest(t *testing.T) {
	env := newTestEnv(t, "")
	env.app.Manifests = manifest.New(afero.NewMemMapFs())

	_, err := env.run([]string{"--generate=/missing/package.json"})
	var usageErr *usage.Error
	require.True(t, errors.As(err, &usageErr))
	require.Equal(t, usage.ErrInvalidManifest, usageErr.Kind)
}

func TestRun_History(t *testing.T) {
	env := newTestEnv(t, "")
	started := time.Date(2024, 1, 23, 15, 4, 0, 0, time.UTC)
	testutil.SeedRuns(t, env.store, []history.Run{
		{Tree: "demo", Path: "web.start", CommandLine: "npm start", StartedAt: started, Duration: 2 * time.Second, Status: history.StatusSucceeded},
		{Tree: "other", Path: "lint", CommandLine: "eslint .", StartedAt: started.Add(time.Minute), ExitCode: 1, Status: history.StatusFailed},
	})

	_, err := env.run([]string{"--history"})
	require.NoError(t, err)
	require.Contains(t, env.out.String(), "web.start")
	require.Contains(t, env.out.String(), "lint")
	require.Contains(t, env.out.String(), "2.0s")

	env.out.Reset()
	_, err = env.run([]string{"--history"}, env.tree)
	require.NoError(t, err)
	require.Contains(t, env.out.String(), "web.start")
	require.NotContains(t, env.out.String(), "eslint")
}

func TestRun_HistoryEmpty(t *testing.T) {
	env := newTestEnv(t, "")

	_, err := env.run([]string{"--history", "--limit=5"})
	require.NoError(t, err)
	require.Contains(t, env.out.String(), "No runs recorded yet.")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"usage", usage.InvalidFlag("--nope"), 2},
		{"child", &executor.NonZeroExitError{Code: 42}, 42},
		{"wrapped child", fmt.Errorf("run: %w", &executor.NonZeroExitError{Code: 5}), 5},
		{"spawn", &executor.SpawnError{Cause: os.ErrNotExist}, 127},
		{"interrupted", executor.ErrInterrupted, 130},
		{"cancelled prompt", prompt.ErrCancelled, 130},
		{"context", context.Canceled, 130},
		{"other", errors.New("boom"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestShouldReport(t *testing.T) {
	require.False(t, ShouldReport(nil))
	require.False(t, ShouldReport(executor.ErrInterrupted))
	require.True(t, ShouldReport(usage.MissingArgument("tree")))
	require.True(t, ShouldReport(&executor.SpawnError{Cause: os.ErrNotExist}))
}

func TestRun_InteractiveChildReadsPipedStdin(t *testing.T) {
	if _, err := exec.LookPath("head"); err != nil {
		t.Skip("head not available")
	}

	root := t.TempDir()
	tree := filepath.Join(root, "crun.json")
	require.NoError(t, os.WriteFile(tree, []byte(`{
		"name": "pipe",
		"commands": [{
			"name": "echo",
			"interactive": true,
			"command": "head -n {lines}",
			"args": {"lines": {"type": "input", "description": "Lines"}}
		}]
	}`), 0644))

	out := &bytes.Buffer{}
	childOut := &bytes.Buffer{}
	line := prompt.NewLine(strings.NewReader("1\nfor-the-child\nleft-over\n"), out)

	a := NewForTesting(out, line, nil)
	a.Executor = newExecutor(line, executor.WithOutput(childOut), executor.WithStderr(childOut))
	a.Getwd = func() (string, error) { return root, nil }

	code, err := a.Run(context.Background(), []string{tree, "echo"}, dispatchers.NewParsedFlags(nil))
	require.NoError(t, err)
	require.Equal(t, 0, code)
	require.Equal(t, "for-the-child\n", childOut.String())
}
