package ui

import "strings"

// helpRows lists every command the browser understands, in the order
// the status line hints at them.
var helpRows = [][2]string{
	{"up/down, j/k", "move selection"},
	{"pgup/pgdown", "move a page"},
	{"home/end, g/G", "first / last entry"},
	{"left/right, h/l", "parent / child (hierarchical mode)"},
	{"enter", "change into directory (or pick it standalone)"},
	{"F2, ctrl+r", "rescan selected directory"},
	{"F3", "forget selected subtree (index only)"},
	{"F4, t", "toggle linear/hierarchical navigation"},
	{"F5", "copy directory to..."},
	{"F6", "move directory to..."},
	{"F8, delete", "delete directory"},
	{"/, ctrl+s", "incremental search; repeat finds the next match"},
	{"esc", "leave search (panel) / close view (standalone)"},
	{"q, ctrl+c", "quit"},
}

// helpView renders the full-screen help overlay; any key closes it.
func (m *Model) helpView() string {
	var b strings.Builder
	b.WriteString(m.styled(titleStyle, padLine(" dirtree help ", m.width)))
	b.WriteString("\n\n")
	for _, row := range helpRows {
		b.WriteString("  ")
		b.WriteString(padLine(row[0], 18))
		b.WriteString(row[1])
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(m.styled(dimStyle, "press any key to continue"))
	return b.String()
}
