// Package collect gathers argument values for a leaf command and renders
// its final command line.
package collect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/footprint-tools/crun/internal/commandtree"
	"github.com/footprint-tools/crun/internal/filesearch"
	"github.com/footprint-tools/crun/internal/log"
	"github.com/footprint-tools/crun/internal/prompt"
	"github.com/footprint-tools/crun/internal/templating"
)

// Result is either Ready or Aborted.
type Result interface {
	isResult()
}

// Ready carries a fully rendered command.
type Ready struct {
	CommandLine string
	// MaskedCommandLine has configuration values replaced by
	// templating.Mask. It is what gets logged and recorded.
	MaskedCommandLine string
	WorkingDirectory  string
	// Values holds the collected substitutions by argument name.
	Values map[string]string
}

// Aborted means the operator declined to continue. It is not an error.
type Aborted struct {
	Reason string
}

func (Ready) isResult()   {}
func (Aborted) isResult() {}

const (
	ReasonDeclined       = "cancelled by user"
	ReasonNoFileSelected = "no file selected"
)

// FileFinder enumerates file picker candidates.
type FileFinder interface {
	Find(root string, opts filesearch.Options) ([]string, error)
}

// Deps contains the collaborators of a Collector.
type Deps struct {
	Prompter prompt.Prompter
	Finder   FileFinder
}

// DefaultDeps returns the terminal-backed dependencies.
func DefaultDeps() Deps {
	return Deps{
		Prompter: prompt.New(),
		Finder:   filesearch.New(nil),
	}
}

// Collector asks for every declared argument of a leaf, in order.
type Collector struct {
	deps Deps
}

// New creates a Collector.
func New(deps Deps) *Collector {
	return &Collector{deps: deps}
}

// Collect prompts for leaf's arguments and renders its command. cfg may be nil.
func (c *Collector) Collect(ctx context.Context, leaf *commandtree.Node, cfg templating.ConfigSource, workingDirectory string) (Result, error) {
	if !leaf.IsLeaf() {
		return nil, fmt.Errorf("collect: %q is not a runnable command", leaf.Name)
	}

	values := make(map[string]string, len(leaf.Args))
	for _, named := range leaf.Args {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		message := named.Arg.Describe()
		if message == "" {
			message = named.Name
		}

		switch a := named.Arg.(type) {
		case commandtree.TextArg:
			def := ""
			if a.Default != nil {
				def = *a.Default
			}
			v, err := c.deps.Prompter.Text(message, def, a.Required)
			if err != nil {
				return nil, err
			}
			if v != "" {
				values[named.Name] = v
			}

		case commandtree.SelectArg:
			v, err := c.deps.Prompter.Select(message, prompt.Choices(a.Choices...), a.Default)
			if err != nil {
				return nil, err
			}
			if v != "" {
				values[named.Name] = v
			}

		case commandtree.MultiSelectArg:
			picked, err := c.deps.Prompter.MultiSelect(message, prompt.Choices(a.Choices...), a.Default)
			if err != nil {
				return nil, err
			}
			if len(picked) > 0 {
				values[named.Name] = strings.Join(picked, ",")
			}

		case commandtree.ConfirmArg:
			ok, err := c.deps.Prompter.Confirm(message, boolDefault(a.Default))
			if err != nil {
				return nil, err
			}
			if !ok {
				log.Info("collect: %s declined at %q", leaf.Name, named.Name)
				return Aborted{Reason: ReasonDeclined}, nil
			}

		case commandtree.BooleanArg:
			ok, err := c.deps.Prompter.Confirm(message, boolDefault(a.Default))
			if err != nil {
				return nil, err
			}
			values[named.Name] = strconv.FormatBool(ok)

		case commandtree.FileArg:
			root := workingDirectory
			if root == "" {
				root = "."
			}
			candidates, err := c.deps.Finder.Find(root, filesearch.Options{
				Glob:               a.Glob,
				Ignore:             a.Ignore,
				IncludeDirectories: a.IncludeDirectories,
			})
			if err != nil {
				return nil, fmt.Errorf("collect %s: %w", named.Name, err)
			}
			path, ok, err := c.deps.Prompter.FilePick(message, candidates)
			if err != nil {
				return nil, err
			}
			if !ok {
				return Aborted{Reason: ReasonNoFileSelected}, nil
			}
			values[named.Name] = path

		default:
			return nil, fmt.Errorf("collect %s: unsupported argument kind %T", named.Name, named.Arg)
		}
	}

	masked := templating.RenderMasked(leaf.Command, cfg, values)
	log.Debug("collect: %s rendered %q", leaf.Name, masked)

	return Ready{
		CommandLine:       templating.Render(leaf.Command, cfg, values),
		MaskedCommandLine: masked,
		WorkingDirectory:  workingDirectory,
		Values:            values,
	}, nil
}

// ResolveWorkingDirectory renders an inherited dirname and makes it
// absolute. An empty dirname means the process's current directory.
func ResolveWorkingDirectory(dirname string, cfg templating.ConfigSource) (string, error) {
	dir := templating.RenderDirectory(dirname, cfg)
	if dir == "" {
		return os.Getwd()
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve working directory %q: %w", dir, err)
	}
	return abs, nil
}

// Confirm gates default to no when the tree does not say otherwise.
func boolDefault(b *bool) bool {
	return b != nil && *b
}
