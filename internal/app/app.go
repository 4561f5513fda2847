// Package app wires the resolver, collector, executor and the supporting
// stores into the crun front-end.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/footprint-tools/crun/internal/collect"
	"github.com/footprint-tools/crun/internal/commandtree"
	"github.com/footprint-tools/crun/internal/completions"
	"github.com/footprint-tools/crun/internal/dispatchers"
	"github.com/footprint-tools/crun/internal/executor"
	"github.com/footprint-tools/crun/internal/history"
	"github.com/footprint-tools/crun/internal/log"
	"github.com/footprint-tools/crun/internal/manifest"
	"github.com/footprint-tools/crun/internal/prompt"
	"github.com/footprint-tools/crun/internal/setup"
	"github.com/footprint-tools/crun/internal/templating"
	"github.com/footprint-tools/crun/internal/ui"
	"github.com/footprint-tools/crun/internal/ui/style"
	"github.com/footprint-tools/crun/internal/usage"
	"github.com/footprint-tools/crun/internal/userconfig"
)

// Version is set at build time.
var Version = "dev"

const defaultHistoryLimit = 20

// Executor runs a rendered command.
type Executor interface {
	Execute(ctx context.Context, req executor.Request) error
}

// History records runs and lists them back.
type History interface {
	history.Recorder
	List(filter history.Filter) ([]history.Run, error)
}

// App holds every collaborator of a crun invocation.
type App struct {
	Prompter  prompt.Prompter
	Collector *collect.Collector
	Executor  Executor
	History   History
	Manifests *manifest.Generator
	Output    *ui.Writer
	Stderr    io.Writer
	// Interactive is true when prompts can be shown to an operator.
	Interactive bool

	LoadUserConfig func(configDirectory string) (userconfig.Config, error)
	SaveUserConfig func(configDirectory string, cfg userconfig.Config) error
	Getwd          func() (string, error)
	Now            func() time.Time
	Version        string

	closers []io.Closer
}

// Run executes one invocation. tokens are the positional arguments (tree
// file first, then the command path) and flags the global flags. The
// returned code is meaningful when err is nil; otherwise use ExitCode.
func (a *App) Run(ctx context.Context, tokens []string, flags *dispatchers.ParsedFlags) (int, error) {
	if flags.Has("--version") {
		_, _ = a.Output.Printf("crun version %s\n", a.Version)
		return 0, nil
	}

	if src, ok := flags.Value("--generate"); ok {
		return 0, a.generate(src, flags.String("--output", ""))
	}

	if flags.Has("--history") {
		return 0, a.showHistory(tokens, flags.Int("--limit", defaultHistoryLimit))
	}

	treePath, rest, err := a.findTree(tokens)
	if err != nil {
		if flags.Has("--help") || flags.Has("-h") {
			a.Output.Pager(dispatchers.Usage())
			return 0, nil
		}
		return 0, err
	}

	cfg, err := commandtree.Load(treePath)
	if err != nil {
		return 0, usage.InvalidTree(treePath, err)
	}
	log.Debug("app: loaded tree %q from %s", cfg.Name, treePath)

	res, err := dispatchers.Dispatch(cfg, rest, flags, a.Interactive)
	if err != nil {
		return 0, err
	}
	log.Debug("app: dispatch mode=%s path=%s", res.Mode, strings.Join(res.Match.Path, "."))

	switch res.Mode {
	case dispatchers.ModeHelp:
		a.Output.Pager(dispatchers.Help(cfg, res))
		return res.ExitCode, nil
	case dispatchers.ModeCompletions:
		return 0, a.completions(cfg, treePath, res.Shell)
	case dispatchers.ModeSetup:
		return 0, a.runSetup(cfg)
	case dispatchers.ModeSelect:
		if res.Warning != "" {
			fmt.Fprintln(a.Stderr, style.Warning(res.Warning))
		}
		m, wantsSetup, err := a.selectCommand(cfg, res.Match)
		if err != nil {
			return 0, err
		}
		if wantsSetup {
			return 0, a.runSetup(cfg)
		}
		return a.runLeaf(ctx, cfg, m)
	default:
		return a.runLeaf(ctx, cfg, res.Match)
	}
}

// findTree picks the tree file from the first token, or from the default
// file names in the working directory.
func (a *App) findTree(tokens []string) (string, []string, error) {
	if len(tokens) > 0 && looksLikeTree(tokens[0]) {
		return tokens[0], tokens[1:], nil
	}

	wd, err := a.Getwd()
	if err != nil {
		return "", nil, fmt.Errorf("get working directory: %w", err)
	}
	for _, name := range dispatchers.DefaultTreeFiles {
		path := filepath.Join(wd, name)
		if isFile(path) {
			log.Debug("app: using %s", path)
			return path, tokens, nil
		}
	}
	return "", nil, usage.MissingArgument("tree")
}

func looksLikeTree(token string) bool {
	switch strings.ToLower(filepath.Ext(token)) {
	case ".json", ".jsonc", ".yaml", ".yml":
		return true
	}
	return isFile(token)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

const setupChoice = "\x00setup"

// selectCommand lets the operator walk down from start until a leaf is
// chosen. wantsSetup reports that the root "Setup" entry was picked.
func (a *App) selectCommand(cfg *commandtree.Config, start commandtree.Match) (m commandtree.Match, wantsSetup bool, err error) {
	current := start
	for {
		level := cfg.Commands
		message := "Select a command"
		if current.Node != nil {
			level = current.Node.Children
			message = fmt.Sprintf("Select a command in %s", strings.Join(current.Path, "."))
		}

		choices := make([]prompt.Choice, 0, len(level)+1)
		for i, n := range level {
			label := n.Name
			if n.IsGroup() {
				label += " ..."
			}
			choices = append(choices, prompt.Choice{Label: label, Description: n.Description, Value: strconv.Itoa(i)})
		}
		if current.Node == nil && cfg.Setup != nil {
			choices = append(choices, prompt.Choice{Label: "Setup", Description: "Configure " + cfg.Name, Value: setupChoice})
		}
		if len(choices) == 0 {
			return commandtree.Match{}, false, fmt.Errorf("%s has no commands", strings.Join(current.Path, "."))
		}

		answer, err := a.Prompter.Select(message, choices, "")
		if err != nil {
			return commandtree.Match{}, false, err
		}
		if answer == setupChoice {
			return commandtree.Match{}, true, nil
		}

		i, err := strconv.Atoi(answer)
		if err != nil || i < 0 || i >= len(level) {
			return commandtree.Match{}, false, fmt.Errorf("invalid selection %q", answer)
		}

		n := level[i]
		next := commandtree.Match{
			Node:    n,
			Dirname: current.Dirname,
			Path:    append(slices.Clone(current.Path), commandtree.Kebab(n.Name)),
		}
		if n.Dirname != "" {
			next.Dirname = n.Dirname
		}
		if !n.IsGroup() {
			return next, false, nil
		}
		current = next
	}
}

// runLeaf collects arguments for m and executes it.
func (a *App) runLeaf(ctx context.Context, cfg *commandtree.Config, m commandtree.Match) (int, error) {
	var source templating.ConfigSource
	if cfg.Setup != nil {
		userCfg, err := a.LoadUserConfig(cfg.Setup.ConfigDirectory)
		if err != nil {
			return 0, usage.ConfigError(err)
		}
		source = userCfg
	}

	wd, err := collect.ResolveWorkingDirectory(m.Dirname, source)
	if err != nil {
		return 0, err
	}

	result, err := a.Collector.Collect(ctx, m.Node, source, wd)
	if err != nil {
		return 0, err
	}

	run := history.Run{
		Tree:             cfg.Name,
		Path:             strings.Join(m.Path, "."),
		WorkingDirectory: wd,
		StartedAt:        a.Now(),
	}

	switch r := result.(type) {
	case collect.Aborted:
		_, _ = a.Output.Printf("%s\n", style.Muted("Aborted: "+r.Reason))
		run.Status = history.StatusAborted
		a.record(run)
		return 0, nil
	case collect.Ready:
		run.CommandLine = r.MaskedCommandLine
		run.WorkingDirectory = r.WorkingDirectory
		return a.execute(ctx, m.Node, r, run)
	default:
		return 0, fmt.Errorf("unexpected collect result %T", result)
	}
}

func (a *App) execute(ctx context.Context, n *commandtree.Node, ready collect.Ready, run history.Run) (int, error) {
	req := executor.Request{
		CommandLine:      ready.CommandLine,
		WorkingDirectory: ready.WorkingDirectory,
		Interactive:      n.Interactive,
	}
	if n.OnReady != nil {
		trigger, err := executor.NewTrigger(n.OnReady.Pattern, n.OnReady.StdinInput)
		if err != nil {
			return 0, fmt.Errorf("onReady of %s: %w", run.Path, err)
		}
		req.Trigger = trigger
	}

	log.Info("app: running %s: %s", run.Path, ready.MaskedCommandLine)
	err := a.Executor.Execute(ctx, req)

	run.Duration = a.Now().Sub(run.StartedAt)
	run.Status, run.ExitCode = outcome(err)
	a.record(run)
	return 0, err
}

func (a *App) record(run history.Run) {
	if err := a.History.Record(run); err != nil {
		log.Warn("app: record history: %v", err)
	}
}

// outcome maps an execution error to the recorded status and exit code.
func outcome(err error) (history.Status, int) {
	if err == nil {
		return history.StatusSucceeded, 0
	}
	code := ExitCode(err)

	var spawnErr *executor.SpawnError
	switch {
	case errors.As(err, &spawnErr):
		return history.StatusSpawnFailed, code
	case errors.Is(err, executor.ErrInterrupted):
		return history.StatusInterrupted, code
	default:
		return history.StatusFailed, code
	}
}

func (a *App) runSetup(cfg *commandtree.Config) error {
	if cfg.Setup == nil {
		return usage.NoSetup(cfg.Name)
	}
	_, err := setup.Run(cfg.Setup, setup.Deps{
		Prompter: a.Prompter,
		Load:     a.LoadUserConfig,
		Save:     a.SaveUserConfig,
		Printf:   a.Output.Printf,
	})
	return err
}

func (a *App) completions(cfg *commandtree.Config, treePath, shellName string) error {
	shell, ok := completions.ParseShell(shellName)
	if !ok {
		return usage.UnsupportedShell(shellName, completions.Supported())
	}
	return completions.Generate(a.Output, shell, cfg, completions.Options{
		TreePath: treePath,
		Flags:    completionFlags(),
	})
}

func completionFlags() []completions.FlagInfo {
	out := make([]completions.FlagInfo, 0, len(dispatchers.GlobalFlags))
	for _, f := range dispatchers.GlobalFlags {
		info := completions.FlagInfo{
			Names:       f.Names,
			Description: f.Description,
			HasValue:    f.TakesValue(),
		}
		if slices.Contains(f.Names, "--completions") {
			info.Values = completions.Supported()
		}
		out = append(out, info)
	}
	return out
}

func (a *App) generate(src, output string) error {
	cfg, err := a.Manifests.Generate(src)
	if err != nil {
		return usage.InvalidManifest(src, err)
	}

	if output == "" {
		return manifest.Encode(a.Output, cfg, commandtree.FormatJSON)
	}

	if a.Manifests.Exists(output) {
		log.Warn("app: overwriting %s", output)
	}
	if err := a.Manifests.WriteFile(output, cfg); err != nil {
		return err
	}
	_, _ = a.Output.Printf("%s\n", style.Success(fmt.Sprintf("Wrote %d commands to %s", len(cfg.Commands), output)))
	return nil
}
