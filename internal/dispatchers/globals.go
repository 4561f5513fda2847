package dispatchers

import (
	"strconv"
	"strings"

	"github.com/footprint-tools/crun/internal/completions"
	"github.com/footprint-tools/crun/internal/usage"
)

// FlagDescriptor documents one global flag.
type FlagDescriptor struct {
	Names       []string
	ValueHint   string
	Description string
	// Check validates the value of a flag that takes one.
	Check func(value string) (expected string, ok bool)
}

// TakesValue reports whether the flag is written as --name=value.
func (d FlagDescriptor) TakesValue() bool {
	return d.ValueHint != ""
}

// GlobalFlags lists every flag crun understands, in help order.
var GlobalFlags = []FlagDescriptor{
	{Names: []string{"--help", "-h"}, Description: "Show help for the tree or a command path"},
	{Names: []string{"--version"}, Description: "Print version information"},
	{Names: []string{"--setup"}, Description: "Run the tree's setup wizard"},
	{Names: []string{"--history"}, Description: "List recently executed commands"},
	{Names: []string{"--limit"}, ValueHint: "<n>", Description: "Number of history entries to show", Check: positiveInt},
	{Names: []string{"--completions"}, ValueHint: "<shell>", Description: "Print a shell completion script", Check: oneOf(completions.Supported())},
	{Names: []string{"--generate"}, ValueHint: "<package.json>", Description: "Generate a tree from package.json scripts", Check: nonEmpty},
	{Names: []string{"--output"}, ValueHint: "<file>", Description: "Write generated output to a file", Check: nonEmpty},
	{Names: []string{"--no-color"}, Description: "Disable colored output"},
	{Names: []string{"--no-pager"}, Description: "Do not page help output"},
	{Names: []string{"--log-level"}, ValueHint: "<level>", Description: "Write a debug log (debug, info, warn, error)", Check: oneOf([]string{"debug", "info", "warn", "warning", "error"})},
}

// ValidateFlags rejects unknown flags and malformed values.
func ValidateFlags(flags *ParsedFlags) error {
	byName := make(map[string]FlagDescriptor)
	for _, d := range GlobalFlags {
		for _, n := range d.Names {
			byName[n] = d
		}
	}

	for _, f := range flags.Raw() {
		name, value, hasValue := strings.Cut(f, "=")
		d, ok := byName[name]
		if !ok {
			return usage.InvalidFlag(f)
		}

		if !d.TakesValue() {
			if hasValue {
				return usage.InvalidFlag(f)
			}
			continue
		}

		if !hasValue {
			return usage.InvalidFlagValue(name, "", d.ValueHint)
		}
		if d.Check != nil {
			if expected, ok := d.Check(value); !ok {
				return usage.InvalidFlagValue(name, value, expected)
			}
		}
	}
	return nil
}

func positiveInt(v string) (string, bool) {
	n, err := strconv.Atoi(v)
	return "a positive integer", err == nil && n > 0
}

func nonEmpty(v string) (string, bool) {
	return "a path", strings.TrimSpace(v) != ""
}

func oneOf(allowed []string) func(string) (string, bool) {
	return func(v string) (string, bool) {
		for _, a := range allowed {
			if strings.EqualFold(v, a) {
				return "one of " + strings.Join(allowed, ", "), true
			}
		}
		return "one of " + strings.Join(allowed, ", "), false
	}
}
