package commandtree

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/crun/internal/executor"
)

// ValidationError lists every structural problem found in a tree.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid command tree: " + e.Problems[0]
	}
	return "invalid command tree:\n  - " + strings.Join(e.Problems, "\n  - ")
}

// Validate checks the structural invariants of a decoded tree.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Problems: []string{"empty document"}}
	}

	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if len(cfg.Commands) == 0 {
		report("no commands declared")
	}
	validateLevel(cfg.Commands, nil, report)

	if cfg.Setup != nil {
		if strings.TrimSpace(cfg.Setup.ConfigDirectory) == "" {
			report("setup: configDirectory is required")
		}
		seen := make(map[string]bool, len(cfg.Setup.Steps))
		for _, step := range cfg.Setup.Steps {
			if seen[step.Name] {
				report("setup: duplicate step %q", step.Name)
			}
			seen[step.Name] = true
			validateArg("setup."+step.Name, step.Arg, report)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func validateLevel(nodes []*Node, parent []string, report func(string, ...any)) {
	seen := make(map[string]string, len(nodes))

	for i, n := range nodes {
		if n == nil {
			report("%s: entry %d is empty", location(parent), i)
			continue
		}

		key := Kebab(n.Name)
		path := append(append([]string{}, parent...), key)
		where := strings.Join(path, ".")

		if strings.TrimSpace(n.Name) == "" {
			report("%s: entry %d has no name", location(parent), i)
		} else if strings.Contains(key, ".") {
			report("%s: name must not contain '.'", where)
		}
		if prev, dup := seen[key]; dup && key != "" {
			report("%s: %q collides with %q", where, n.Name, prev)
		}
		seen[key] = n.Name

		switch {
		case n.Children != nil && n.Command != "":
			report("%s: has both commands and command", where)
		case n.Children != nil:
			if len(n.Args) > 0 || n.OnReady != nil || n.Interactive {
				report("%s: groups cannot declare args, onReady or interactive", where)
			}
			validateLevel(n.Children, path, report)
		case strings.TrimSpace(n.Command) == "":
			report("%s: needs either commands or command", where)
		default:
			validateLeaf(n, where, report)
		}
	}
}

func validateLeaf(n *Node, where string, report func(string, ...any)) {
	seen := make(map[string]bool, len(n.Args))
	for _, a := range n.Args {
		if a.Name == "" {
			report("%s: argument with empty name", where)
		}
		if seen[a.Name] {
			report("%s: duplicate argument %q", where, a.Name)
		}
		seen[a.Name] = true
		validateArg(where+"."+a.Name, a.Arg, report)
	}

	if n.OnReady != nil {
		if n.OnReady.Pattern == "" {
			report("%s: onReady.pattern is empty", where)
		} else if _, err := executor.ParsePattern(n.OnReady.Pattern); err != nil {
			report("%s: onReady.pattern: %v", where, err)
		}
	}
}

func validateArg(where string, arg Arg, report func(string, ...any)) {
	switch a := arg.(type) {
	case SelectArg:
		if len(a.Choices) == 0 {
			report("%s: select needs at least one choice", where)
		} else if a.Default != "" && !contains(a.Choices, a.Default) {
			report("%s: default %q is not one of the choices", where, a.Default)
		}
	case MultiSelectArg:
		if len(a.Choices) == 0 {
			report("%s: checkbox needs at least one choice", where)
		}
		for _, d := range a.Default {
			if !contains(a.Choices, d) {
				report("%s: default %q is not one of the choices", where, d)
			}
		}
	case nil:
		report("%s: missing argument definition", where)
	}
}

func location(parent []string) string {
	if len(parent) == 0 {
		return "commands"
	}
	return strings.Join(parent, ".")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
