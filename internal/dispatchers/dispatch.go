// Package dispatchers turns CLI tokens and flags into an action on a command tree.
package dispatchers

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/crun/internal/commandtree"
	"github.com/footprint-tools/crun/internal/usage"
)

// Mode is what the app should do with a resolution.
type Mode int

const (
	// ModeRun executes Match.Node, a leaf.
	ModeRun Mode = iota
	// ModeSelect prompts for a command below Match.Node (the root when nil).
	ModeSelect
	// ModeHelp prints help for Match.Node (the root when nil).
	ModeHelp
	// ModeSetup runs the tree's setup wizard.
	ModeSetup
	// ModeCompletions prints a completion script for Shell.
	ModeCompletions
)

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "run"
	case ModeSelect:
		return "select"
	case ModeHelp:
		return "help"
	case ModeSetup:
		return "setup"
	case ModeCompletions:
		return "completions"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of Dispatch.
type Resolution struct {
	Mode  Mode
	Match commandtree.Match
	Shell string
	// Warning is shown to the user before acting, e.g. after a path miss.
	Warning string
	// ExitCode is returned after help that stands in for a missing command.
	ExitCode int
}

// Level returns the nodes a select or help resolution applies to.
func (r Resolution) Level(cfg *commandtree.Config) []*commandtree.Node {
	if r.Match.Node == nil {
		return cfg.Commands
	}
	return r.Match.Node.Children
}

// Dispatch resolves tokens against cfg. interactive reports whether prompts
// can be shown; without it a miss is an error instead of a selection.
func Dispatch(cfg *commandtree.Config, tokens []string, flags *ParsedFlags, interactive bool) (Resolution, error) {
	path := commandtree.NormalizePath(tokens)

	if hasHelpFlag(flags) {
		return dispatchHelp(cfg, path), nil
	}

	if flags.Has("--setup") {
		if cfg.Setup == nil {
			return Resolution{}, usage.NoSetup(cfg.Name)
		}
		return Resolution{Mode: ModeSetup}, nil
	}

	if shell, ok := flags.Value("--completions"); ok {
		return Resolution{Mode: ModeCompletions, Shell: shell}, nil
	}

	if path == "" {
		if !interactive {
			return Resolution{Mode: ModeHelp, ExitCode: 1}, nil
		}
		return Resolution{Mode: ModeSelect}, nil
	}

	match, ok := commandtree.Resolve(cfg.Commands, path, "")
	if ok {
		if match.Node.IsLeaf() {
			return Resolution{Mode: ModeRun, Match: match}, nil
		}
		if !interactive {
			return Resolution{Mode: ModeHelp, Match: match, ExitCode: 1}, nil
		}
		return Resolution{Mode: ModeSelect, Match: match}, nil
	}

	level, walked, rest := commandtree.Deepest(cfg.Commands, path)
	var suggestions []string
	if len(rest) > 0 {
		suggestions = suggestPaths(walked, FindSimilarCommands(rest[0], level, defaultSuggestionsCount))
	}

	if !interactive {
		return Resolution{}, usage.UnknownCommand(path, suggestions...)
	}

	fallback := groupMatch(cfg, walked)
	warning := fmt.Sprintf("'%s' is not a command in this tree", path)
	if len(suggestions) > 0 {
		warning += fmt.Sprintf(" (did you mean '%s'?)", suggestions[0])
	}
	return Resolution{Mode: ModeSelect, Match: fallback, Warning: warning}, nil
}

// groupMatch returns the group the walked segments lead to, or the root.
func groupMatch(cfg *commandtree.Config, walked []string) commandtree.Match {
	if len(walked) == 0 {
		return commandtree.Match{}
	}
	m, ok := commandtree.Resolve(cfg.Commands, strings.Join(walked, "."), "")
	if !ok || !m.Node.IsGroup() {
		return commandtree.Match{}
	}
	return m
}

func dispatchHelp(cfg *commandtree.Config, path string) Resolution {
	if path == "" {
		return Resolution{Mode: ModeHelp}
	}
	match, ok := commandtree.Resolve(cfg.Commands, path, "")
	if !ok {
		return Resolution{
			Mode:    ModeHelp,
			Warning: fmt.Sprintf("'%s' is not a command in this tree", path),
		}
	}
	return Resolution{Mode: ModeHelp, Match: match}
}

func hasHelpFlag(flags *ParsedFlags) bool {
	return flags.Has("--help") || flags.Has("-h")
}
