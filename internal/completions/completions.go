// Package completions renders shell completion scripts for a command tree.
package completions

import (
	"fmt"
	"io"
	"strings"

	"github.com/footprint-tools/crun/internal/commandtree"
)

// CommandInfo is one tree node flattened for script generation.
type CommandInfo struct {
	Name        string
	Path        []string
	Summary     string
	Subcommands []string
	IsGroup     bool
}

// Key is the dotted path used to select candidates in generated scripts.
func (c CommandInfo) Key() string {
	return strings.Join(c.Path, ".")
}

// FlagInfo describes a flag offered after '-'.
type FlagInfo struct {
	Names       []string
	Description string
	HasValue    bool
	Values      []string
}

// Options controls script generation.
type Options struct {
	// Binary is the command name completions are registered for.
	Binary string
	// TreePath is shown in the load instructions.
	TreePath string
	Flags    []FlagInfo
}

// ExtractCommands flattens cfg depth-first. The first entry is the root,
// with an empty Path.
func ExtractCommands(cfg *commandtree.Config) []CommandInfo {
	root := CommandInfo{Name: cfg.Name, Summary: cfg.Description, IsGroup: true}
	for _, n := range cfg.Commands {
		if n != nil {
			root.Subcommands = append(root.Subcommands, commandtree.Kebab(n.Name))
		}
	}

	commands := []CommandInfo{root}
	commandtree.Walk(cfg.Commands, func(path []string, n *commandtree.Node) {
		info := CommandInfo{
			Name:    commandtree.Kebab(n.Name),
			Path:    path,
			Summary: n.Description,
			IsGroup: n.IsGroup(),
		}
		for _, c := range n.Children {
			if c != nil {
				info.Subcommands = append(info.Subcommands, commandtree.Kebab(c.Name))
			}
		}
		commands = append(commands, info)
	})
	return commands
}

// FindCommand finds a command by its path.
func FindCommand(commands []CommandInfo, path []string) *CommandInfo {
	key := strings.Join(path, ".")
	for i := range commands {
		if commands[i].Key() == key {
			return &commands[i]
		}
	}
	return nil
}

// candidate is a completion word with its description.
type candidate struct {
	word string
	desc string
}

// candidates returns the words offered after the group at key. The root also
// offers every nested dotted path so "web.st<TAB>" completes in one word.
func candidates(commands []CommandInfo, cmd CommandInfo) []candidate {
	var out []candidate
	for _, sub := range cmd.Subcommands {
		child := FindCommand(commands, append(append([]string{}, cmd.Path...), sub))
		desc := ""
		if child != nil {
			desc = child.Summary
		}
		out = append(out, candidate{word: sub, desc: desc})
	}

	if len(cmd.Path) == 0 {
		for _, c := range commands {
			if len(c.Path) > 1 {
				out = append(out, candidate{word: c.Key(), desc: c.Summary})
			}
		}
	}
	return out
}

// groups returns the root and every group, in tree order.
func groups(commands []CommandInfo) []CommandInfo {
	var out []CommandInfo
	for _, c := range commands {
		if c.IsGroup {
			out = append(out, c)
		}
	}
	return out
}

// Generate writes the completion script for shell to w.
func Generate(w io.Writer, shell Shell, cfg *commandtree.Config, opts Options) error {
	if opts.Binary == "" {
		opts.Binary = BinaryName()
	}
	if opts.TreePath == "" {
		opts.TreePath = "<tree>"
	}

	commands := ExtractCommands(cfg)
	var script string
	switch shell {
	case ShellBash:
		script = GenerateBash(commands, opts)
	case ShellZsh:
		script = GenerateZsh(commands, opts)
	case ShellFish:
		script = GenerateFish(commands, opts)
	case ShellPowerShell:
		script = GeneratePowerShell(commands, opts)
	default:
		return fmt.Errorf("unsupported shell: %s", shell)
	}

	_, err := io.WriteString(w, script)
	return err
}

func identifier(bin string) string {
	var b strings.Builder
	for _, r := range bin {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func flagWords(flags []FlagInfo) []string {
	var words []string
	for _, f := range flags {
		for _, n := range f.Names {
			if f.HasValue {
				n += "="
			}
			words = append(words, n)
		}
	}
	return words
}
