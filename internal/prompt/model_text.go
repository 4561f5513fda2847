package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/footprint-tools/crun/internal/ui/style"
)

type textModel struct {
	title     string
	def       string
	required  bool
	input     textinput.Model
	answer    string
	warning   string
	done      bool
	cancelled bool
}

func newTextModel(title, def string, required bool) textModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = def
	ti.Focus()
	return textModel{title: title, def: def, required: required, input: ti}
}

func (m textModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			answer := strings.TrimSpace(m.input.Value())
			if answer == "" {
				answer = m.def
			}
			if answer == "" && m.required {
				m.warning = "a value is required"
				return m, nil
			}
			m.answer = answer
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.warning = ""
	return m, cmd
}

func (m textModel) View() string {
	if m.done {
		return style.Header(m.title) + " " + style.Info(m.answer) + "\n"
	}
	if m.cancelled {
		return style.Header(m.title) + " " + style.Muted("cancelled") + "\n"
	}

	view := style.Header(m.title) + "\n" + m.input.View() + "\n"
	if m.warning != "" {
		view += style.Warning(m.warning) + "\n"
	}
	return view
}
