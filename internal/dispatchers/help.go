package dispatchers

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/footprint-tools/crun/internal/commandtree"
	"github.com/footprint-tools/crun/internal/ui/style"
)

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := ""
	if cmdEnd < len(usage) {
		rest = usage[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

// Help renders the help text for a help resolution.
func Help(cfg *commandtree.Config, res Resolution) string {
	var out bytes.Buffer

	if res.Warning != "" {
		out.WriteString(style.Warning(res.Warning))
		out.WriteString("\n\n")
	}

	node := res.Match.Node
	switch {
	case node == nil:
		writeRootHelp(&out, cfg)
	case node.IsGroup():
		writeGroupHelp(&out, res.Match)
	default:
		writeLeafHelp(&out, res.Match)
	}
	return out.String()
}

func writeRootHelp(out *bytes.Buffer, cfg *commandtree.Config) {
	out.WriteString(style.Header(cfg.Name))
	if cfg.Description != "" {
		out.WriteString(" - ")
		out.WriteString(cfg.Description)
	}
	out.WriteString("\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage("crun <tree> [command.path] [flags]"))
	out.WriteString("\n\n")

	out.WriteString("COMMANDS\n")
	writeChildren(out, cfg.Commands)
	out.WriteString("\n")

	writeFlags(out)

	if cfg.Setup != nil {
		out.WriteString("This tree has a setup wizard. Run 'crun <tree> --setup' to configure it.\n")
	}
	out.WriteString("See 'crun <tree> <command> --help' to read about a specific command.\n")
}

// Usage renders help when no tree file was given.
func Usage() string {
	var out bytes.Buffer
	out.WriteString(style.Header("crun"))
	out.WriteString(" - run commands from a command tree file\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage("crun <tree> [command.path] [flags]"))
	out.WriteString("\n   ")
	out.WriteString(formatUsage("crun --generate=<package.json> [--output=<file>]"))
	out.WriteString("\n   ")
	out.WriteString(formatUsage("crun [tree] --history [--limit=<n>]"))
	out.WriteString("\n\n")

	writeFlags(&out)

	out.WriteString("Without a tree argument, crun looks for ")
	out.WriteString(strings.Join(DefaultTreeFiles, ", "))
	out.WriteString(" in the current directory.\n")
	return out.String()
}

// DefaultTreeFiles are looked up in the working directory when no tree
// file is named.
var DefaultTreeFiles = []string{"crun.json", "crun.jsonc", "crun.yaml", "crun.yml"}

func writeFlags(out *bytes.Buffer) {
	out.WriteString("FLAGS\n")
	for _, f := range GlobalFlags {
		name := strings.Join(f.Names, ", ")
		if f.ValueHint != "" {
			name += "=" + f.ValueHint
		}
		fmt.Fprintf(out, "   %s  %s\n", style.Info(fmt.Sprintf("%-28s", name)), f.Description)
	}
	out.WriteString("\n")
}

func writeGroupHelp(out *bytes.Buffer, m commandtree.Match) {
	writeTitle(out, m)

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage("crun <tree> " + strings.Join(m.Path, ".") + ".<command>"))
	out.WriteString("\n\n")

	out.WriteString("COMMANDS\n")
	writeChildren(out, m.Node.Children)
	out.WriteString("\n")
}

func writeLeafHelp(out *bytes.Buffer, m commandtree.Match) {
	n := m.Node
	writeTitle(out, m)

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage("crun <tree> " + strings.Join(m.Path, ".")))
	out.WriteString("\n\n")

	out.WriteString("COMMAND\n   ")
	out.WriteString(style.Muted(n.Command))
	out.WriteString("\n")
	if m.Dirname != "" {
		fmt.Fprintf(out, "   %s %s\n", style.Muted("in"), m.Dirname)
	}
	out.WriteString("\n")

	if len(n.Args) > 0 {
		out.WriteString("ARGUMENTS\n")
		for _, a := range n.Args {
			label := fmt.Sprintf("%-16s", a.Name)
			fmt.Fprintf(out, "   %s  %-10s %s\n", style.Info(label), a.Arg.Kind(), a.Arg.Describe())
		}
		out.WriteString("\n")
	}

	if n.OnReady != nil {
		fmt.Fprintf(out, "Sends input once output matches %s\n", n.OnReady.Pattern)
	}
	if n.Interactive {
		out.WriteString("Runs attached to the terminal.\n")
	}
}

func writeTitle(out *bytes.Buffer, m commandtree.Match) {
	out.WriteString(style.Header(strings.Join(m.Path, ".")))
	if m.Node.Description != "" {
		out.WriteString(" - ")
		out.WriteString(m.Node.Description)
	}
	out.WriteString("\n\n")
}

func writeChildren(out *bytes.Buffer, nodes []*commandtree.Node) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		name := commandtree.Kebab(n.Name)
		if n.IsGroup() {
			name += "."
		}
		fmt.Fprintf(out, "   %s  %s\n", style.Info(fmt.Sprintf("%-16s", name)), n.Description)
	}
}
