package prompt

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/footprint-tools/crun/internal/ui/style"
)

type confirmModel struct {
	title     string
	value     bool
	done      bool
	cancelled bool
}

func newConfirmModel(title string, def bool) confirmModel {
	return confirmModel{title: title, value: def}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyLeft, tea.KeyRight, tea.KeyTab:
		m.value = !m.value
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyRunes:
		switch string(key.Runes) {
		case "y", "Y":
			m.value = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.value = false
			m.done = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		answer := "no"
		if m.value {
			answer = "yes"
		}
		return style.Header(m.title) + " " + style.Info(answer) + "\n"
	}
	if m.cancelled {
		return style.Header(m.title) + " " + style.Muted("cancelled") + "\n"
	}

	yes, no := " Yes ", " No "
	if m.value {
		yes = style.Cursor("[Yes]")
	} else {
		no = style.Cursor("[No]")
	}
	return style.Header(m.title) + "  " + yes + " " + no + "\n" + style.Muted("y/n • ←/→ toggle • enter confirm") + "\n"
}
