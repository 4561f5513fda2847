package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/footprint-tools/crun/internal/ui/style"
)

type listModel struct {
	title     string
	choices   []Choice
	cursor    int
	chosen    int
	cancelled bool
}

func newListModel(title string, choices []Choice, def string) listModel {
	cursor := indexOfValue(choices, def)
	if cursor < 0 {
		cursor = 0
	}
	return listModel{title: title, choices: choices, cursor: cursor, chosen: -1}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit
	case tea.KeyUp:
		m.cursor = wrapUp(m.cursor, len(m.choices))
	case tea.KeyDown:
		m.cursor = wrapDown(m.cursor, len(m.choices))
	case tea.KeyHome:
		m.cursor = 0
	case tea.KeyEnd:
		m.cursor = len(m.choices) - 1
	case tea.KeyEnter:
		m.chosen = m.cursor
		return m, tea.Quit
	case tea.KeyRunes:
		switch string(key.Runes) {
		case "q":
			m.cancelled = true
			return m, tea.Quit
		case "j":
			m.cursor = wrapDown(m.cursor, len(m.choices))
		case "k":
			m.cursor = wrapUp(m.cursor, len(m.choices))
		case "g":
			m.cursor = 0
		case "G":
			m.cursor = len(m.choices) - 1
		}
	}

	return m, nil
}

func (m listModel) View() string {
	if m.chosen >= 0 {
		return style.Header(m.title) + " " + style.Info(m.choices[m.chosen].Label) + "\n"
	}
	if m.cancelled {
		return style.Header(m.title) + " " + style.Muted("cancelled") + "\n"
	}

	width := 0
	for _, c := range m.choices {
		width = max(width, lipgloss.Width(c.Label))
	}

	var b strings.Builder
	b.WriteString(style.Header(m.title))
	b.WriteString("\n")
	for i, c := range m.choices {
		label := c.Label + strings.Repeat(" ", width-lipgloss.Width(c.Label))
		if i == m.cursor {
			b.WriteString(style.Cursor(" → " + label))
		} else {
			b.WriteString("   " + label)
		}
		if c.Description != "" {
			b.WriteString("  " + style.Muted(c.Description))
		}
		b.WriteString("\n")
	}
	b.WriteString(style.Muted("↑/↓ move • enter select • esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func wrapUp(cursor, n int) int {
	if cursor > 0 {
		return cursor - 1
	}
	return n - 1
}

func wrapDown(cursor, n int) int {
	if cursor < n-1 {
		return cursor + 1
	}
	return 0
}
