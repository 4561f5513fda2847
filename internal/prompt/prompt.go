// Package prompt asks the operator for values, either through bubbletea
// widgets on a terminal or through plain line-based questions otherwise.
package prompt

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// ErrCancelled is returned when the operator interrupts a prompt.
var ErrCancelled = errors.New("prompt cancelled")

// Choice is one option of a select or multi-select prompt.
type Choice struct {
	Label       string
	Description string
	Value       string
}

// Choices builds plain choices whose label and value are the same.
func Choices(values ...string) []Choice {
	out := make([]Choice, len(values))
	for i, v := range values {
		out[i] = Choice{Label: v, Value: v}
	}
	return out
}

// Prompter asks typed questions. Implementations return ErrCancelled when
// the operator gives up.
type Prompter interface {
	// Text returns the typed answer, or def when the answer is empty.
	Text(message, def string, required bool) (string, error)
	// Select returns the Value of the chosen entry.
	Select(message string, choices []Choice, def string) (string, error)
	// MultiSelect returns the Values of the chosen entries in choice order.
	MultiSelect(message string, choices []Choice, defaults []string) ([]string, error)
	Confirm(message string, def bool) (bool, error)
	// FilePick returns ok=false when nothing was picked.
	FilePick(message string, candidates []string) (path string, ok bool, err error)
}

// New returns a TUI prompter when stdin and stdout are terminals and a
// line prompter otherwise.
func New() Prompter {
	if IsInteractive() {
		return NewTUI(os.Stdin, os.Stdout)
	}
	return NewLine(os.Stdin, os.Stderr)
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func indexOfValue(choices []Choice, value string) int {
	for i, c := range choices {
		if c.Value == value {
			return i
		}
	}
	return -1
}
