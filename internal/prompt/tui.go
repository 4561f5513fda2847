package prompt

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// TUI renders each question as an inline bubbletea program.
type TUI struct {
	run func(tea.Model) (tea.Model, error)
}

// NewTUI returns a prompter drawing on out and reading keys from in.
func NewTUI(in io.Reader, out io.Writer) *TUI {
	return &TUI{
		run: func(m tea.Model) (tea.Model, error) {
			return tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out)).Run()
		},
	}
}

func (t *TUI) Text(message, def string, required bool) (string, error) {
	final, err := t.run(newTextModel(message, def, required))
	if err != nil {
		return "", err
	}
	m := final.(textModel)
	if m.cancelled {
		return "", ErrCancelled
	}
	return m.answer, nil
}

func (t *TUI) Select(message string, choices []Choice, def string) (string, error) {
	if len(choices) == 0 {
		return "", fmt.Errorf("select %q: no choices", message)
	}
	final, err := t.run(newListModel(message, choices, def))
	if err != nil {
		return "", err
	}
	m := final.(listModel)
	if m.cancelled || m.chosen < 0 {
		return "", ErrCancelled
	}
	return choices[m.chosen].Value, nil
}

func (t *TUI) MultiSelect(message string, choices []Choice, defaults []string) ([]string, error) {
	final, err := t.run(newMultiModel(message, choices, defaults))
	if err != nil {
		return nil, err
	}
	m := final.(multiModel)
	if m.cancelled {
		return nil, ErrCancelled
	}
	return m.values(), nil
}

func (t *TUI) Confirm(message string, def bool) (bool, error) {
	final, err := t.run(newConfirmModel(message, def))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if m.cancelled {
		return false, ErrCancelled
	}
	return m.value, nil
}

func (t *TUI) FilePick(message string, candidates []string) (string, bool, error) {
	final, err := t.run(newFileModel(message, candidates))
	if err != nil {
		return "", false, err
	}
	m := final.(fileModel)
	if m.cancelled {
		return "", false, ErrCancelled
	}
	if m.chosen == "" {
		return "", false, nil
	}
	return m.chosen, true, nil
}
