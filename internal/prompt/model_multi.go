package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/footprint-tools/crun/internal/ui/style"
)

type multiModel struct {
	title     string
	choices   []Choice
	selected  map[int]bool
	cursor    int
	done      bool
	cancelled bool
}

func newMultiModel(title string, choices []Choice, defaults []string) multiModel {
	selected := make(map[int]bool, len(defaults))
	for _, d := range defaults {
		if i := indexOfValue(choices, d); i >= 0 {
			selected[i] = true
		}
	}
	return multiModel{title: title, choices: choices, selected: selected}
}

func (m multiModel) values() []string {
	var out []string
	for i, c := range m.choices {
		if m.selected[i] {
			out = append(out, c.Value)
		}
	}
	return out
}

func (m multiModel) Init() tea.Cmd {
	return nil
}

func (m multiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
	case tea.KeySpace:
		m.selected[m.cursor] = !m.selected[m.cursor]
	case tea.KeyEnter:
		m.done = true
		return m, tea.Quit
	case tea.KeyRunes:
		switch string(key.Runes) {
		case "j":
			m.cursor = wrapDown(m.cursor, len(m.choices))
		case "k":
			m.cursor = wrapUp(m.cursor, len(m.choices))
		case " ", "x":
			m.selected[m.cursor] = !m.selected[m.cursor]
		case "a":
			all := len(m.values()) == len(m.choices)
			for i := range m.choices {
				m.selected[i] = !all
			}
		}
	}

	return m, nil
}

func (m multiModel) View() string {
	if m.done {
		return style.Header(m.title) + " " + style.Info(strings.Join(m.values(), ", ")) + "\n"
	}
	if m.cancelled {
		return style.Header(m.title) + " " + style.Muted("cancelled") + "\n"
	}

	var b strings.Builder
	b.WriteString(style.Header(m.title))
	b.WriteString("\n")
	for i, c := range m.choices {
		box := "[ ]"
		if m.selected[i] {
			box = "[x]"
		}
		line := box + " " + c.Label
		if i == m.cursor {
			b.WriteString(style.Cursor(" → " + line))
		} else {
			b.WriteString("   " + line)
		}
		if c.Description != "" {
			b.WriteString("  " + style.Muted(c.Description))
		}
		b.WriteString("\n")
	}
	b.WriteString(style.Muted("space toggle • a all • enter confirm • esc cancel"))
	b.WriteString("\n")
	return b.String()
}
