package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/dirtree/internal/view"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

func (m *Model) View() tea.View {
	var b strings.Builder

	b.WriteString(m.styled(titleStyle, padLine(" Directory tree ("+m.cursor.Mode().String()+")", m.width)))
	b.WriteByte('\n')

	r := view.Renderer{Width: m.width, Height: m.contentHeight()}
	m.frame = r.Render(m.cursor)
	for _, line := range m.frame.Lines {
		text := padLine(line.Text, m.width)
		if line.Selected {
			text = m.styled(selectedStyle, text)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}

	b.WriteString(m.styled(dimStyle, strings.Repeat("─", max(m.width, 1))))
	b.WriteByte('\n')
	b.WriteString(padLine(m.miniInfo(), m.width))
	b.WriteByte('\n')
	b.WriteString(m.styled(dimStyle, padLine(m.statusLine(), m.width)))

	out := b.String()
	if m.helpVisible {
		out = m.helpView()
	}

	v := tea.NewView(out)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// miniInfo shows the search buffer while searching, else the full path
// of the selection — the single line of orientation under the tree.
func (m *Model) miniInfo() string {
	if m.prompt != promptNone {
		return m.input.View()
	}
	if m.searching {
		return "/" + m.searchBuf
	}
	if sel := m.cursor.Selected(); sel != nil {
		return sel.Path
	}
	return "(empty index)"
}

func (m *Model) statusLine() string {
	if m.status != "" {
		return m.status
	}
	return "F1 help  F2 rescan  F3 forget  F4 mode  F5 copy  F6 move  F8 delete  / search"
}

func (m *Model) styled(s lipgloss.Style, text string) string {
	if m.noColor {
		return text
	}
	return s.Render(text)
}

// padLine truncates or pads a line to exactly width cells.
func padLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "")
	if w := runewidth.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
