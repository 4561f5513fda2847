package app

import (
	"io"
	"os"
	"time"

	"github.com/spf13/afero"

	"github.com/footprint-tools/crun/internal/collect"
	"github.com/footprint-tools/crun/internal/executor"
	"github.com/footprint-tools/crun/internal/filesearch"
	"github.com/footprint-tools/crun/internal/history"
	"github.com/footprint-tools/crun/internal/log"
	"github.com/footprint-tools/crun/internal/manifest"
	"github.com/footprint-tools/crun/internal/paths"
	"github.com/footprint-tools/crun/internal/prompt"
	"github.com/footprint-tools/crun/internal/ui"
	"github.com/footprint-tools/crun/internal/userconfig"
)

// Options configures the application factory.
type Options struct {
	// Pager options
	PagerDisabled bool

	// History options
	HistoryDisabled bool
	HistoryPath     string // defaults to paths.HistoryDBPath()

	Version string
}

// DefaultOptions returns the default application options.
func DefaultOptions() Options {
	return Options{
		HistoryDisabled: os.Getenv("CRUN_NO_HISTORY") != "",
		Version:         Version,
	}
}

// New creates a new App with all dependencies wired up. A history
// database that cannot be opened is logged and replaced by a no-op.
func New(opts Options) *App {
	var writerOpts []ui.WriterOption
	if opts.PagerDisabled {
		writerOpts = append(writerOpts, ui.WithPagerDisabled())
	}

	p := prompt.New()
	a := &App{
		Prompter:       p,
		Collector:      collect.New(collect.Deps{Prompter: p, Finder: filesearch.New(nil)}),
		Executor:       newExecutor(p),
		History:        nopHistory{},
		Manifests:      manifest.New(afero.NewOsFs()),
		Output:         ui.NewWriter(writerOpts...),
		Stderr:         os.Stderr,
		Interactive:    prompt.IsInteractive(),
		LoadUserConfig: userconfig.Load,
		SaveUserConfig: userconfig.Save,
		Getwd:          os.Getwd,
		Now:            time.Now,
		Version:        opts.Version,
	}

	if !opts.HistoryDisabled {
		path := opts.HistoryPath
		if path == "" {
			path = paths.HistoryDBPath()
		}
		store, err := history.New(path)
		if err != nil {
			log.Warn("app: history disabled: %v", err)
		} else {
			a.History = store
			a.closers = append(a.closers, store)
		}
	}

	return a
}

// newExecutor hands interactive children the line prompter's buffered
// stdin when answers are read line by line.
func newExecutor(p prompt.Prompter, opts ...executor.Option) *executor.Executor {
	if line, ok := p.(*prompt.Line); ok {
		opts = append(opts, executor.WithStdin(line.Reader()))
	}
	return executor.New(opts...)
}

// NewForTesting creates an App that writes to out, reads answers through
// p and runs commands with exec. It keeps no history unless the caller
// sets one.
func NewForTesting(out io.Writer, p prompt.Prompter, exec Executor) *App {
	return &App{
		Prompter:       p,
		Collector:      collect.New(collect.Deps{Prompter: p, Finder: filesearch.New(nil)}),
		Executor:       exec,
		History:        nopHistory{},
		Manifests:      manifest.New(afero.NewMemMapFs()),
		Output:         ui.NewWriterTo(out, ui.WithPagerDisabled()),
		Stderr:         out,
		LoadUserConfig: userconfig.Load,
		SaveUserConfig: userconfig.Save,
		Getwd:          os.Getwd,
		Now:            time.Now,
		Version:        "test",
	}
}

// Close cleans up application resources.
func Close(a *App) error {
	if a == nil {
		return nil
	}
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			log.Warn("app: close: %v", err)
		}
	}
	a.closers = nil
	return nil
}

type nopHistory struct {
	history.NopRecorder
}

func (nopHistory) List(history.Filter) ([]history.Run, error) {
	return nil, nil
}
