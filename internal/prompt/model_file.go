package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/footprint-tools/crun/internal/filesearch"
	"github.com/footprint-tools/crun/internal/ui/style"
)

const fileRows = 10

type fileModel struct {
	title      string
	candidates []string
	filtered   []string
	filter     textinput.Model
	cursor     int
	offset     int
	chosen     string
	done       bool
	cancelled  bool
}

func newFileModel(title string, candidates []string) fileModel {
	ti := textinput.New()
	ti.Prompt = "filter › "
	ti.Focus()
	return fileModel{
		title:      title,
		candidates: candidates,
		filtered:   candidates,
		filter:     ti,
	}
}

func (m fileModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m fileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyUp:
			if len(m.filtered) > 0 {
				m.cursor = wrapUp(m.cursor, len(m.filtered))
				m.scroll()
			}
			return m, nil
		case tea.KeyDown:
			if len(m.filtered) > 0 {
				m.cursor = wrapDown(m.cursor, len(m.filtered))
				m.scroll()
			}
			return m, nil
		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				m.chosen = m.filtered[m.cursor]
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.filtered = filesearch.Filter(m.filter.Value(), m.candidates)
	m.cursor = 0
	m.offset = 0
	return m, cmd
}

func (m *fileModel) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+fileRows {
		m.offset = m.cursor - fileRows + 1
	}
}

func (m fileModel) View() string {
	if m.done {
		picked := m.chosen
		if picked == "" {
			picked = style.Muted("nothing selected")
		} else {
			picked = style.Info(picked)
		}
		return style.Header(m.title) + " " + picked + "\n"
	}
	if m.cancelled {
		return style.Header(m.title) + " " + style.Muted("cancelled") + "\n"
	}

	var b strings.Builder
	b.WriteString(style.Header(m.title))
	b.WriteString("\n")
	b.WriteString(m.filter.View())
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		b.WriteString(style.Muted("   no matches"))
		b.WriteString("\n")
	}
	end := min(m.offset+fileRows, len(m.filtered))
	for i := m.offset; i < end; i++ {
		if i == m.cursor {
			b.WriteString(style.Cursor(" → " + m.filtered[i]))
		} else {
			b.WriteString("   " + m.filtered[i])
		}
		b.WriteString("\n")
	}

	b.WriteString(style.Muted(fmt.Sprintf("%d/%d • type to filter • enter pick • esc skip", len(m.filtered), len(m.candidates))))
	b.WriteString("\n")
	return b.String()
}
