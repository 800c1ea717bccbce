// Package ui is the interactive shell around the navigation core: a
// bubbletea model that dispatches key and mouse input onto cursor,
// search and file operations, and draws the viewport frame.
package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/dirtree/internal/fileops"
	"github.com/oakwood-commons/dirtree/internal/nav"
	"github.com/oakwood-commons/dirtree/internal/tree"
	"github.com/oakwood-commons/dirtree/internal/view"
)

// chromeLines is the number of non-content rows the layout reserves:
// title, divider, mini-info and status.
const chromeLines = 4

// promptKind says what the destination input line is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptCopy
	promptMove
)

// Model is the tree browser. Embedded reports whether the view lives
// inside a larger panel (escape is consumed there) or runs standalone
// as a modal picker (escape closes it, and enter reports the chosen
// path through Result).
type Model struct {
	store  *tree.Store
	cursor *nav.Cursor
	ops    fileops.Operator

	width, height int
	embedded      bool
	noColor       bool

	searching bool
	searchBuf string

	prompt promptKind
	input  textinput.Model

	confirmDelete bool
	helpVisible   bool
	status        string

	frame view.Frame

	result   string
	quitting bool
}

// Options configures a new Model.
type Options struct {
	Store    *tree.Store
	Operator fileops.Operator
	Mode     nav.Mode
	Embedded bool
	NoColor  bool
	// StartPath preselects an indexed directory when set.
	StartPath string
}

// NewModel builds the browser model over an already loaded store.
func NewModel(opts Options) *Model {
	ops := opts.Operator
	if ops == nil {
		ops = fileops.OS{}
	}
	ti := textinput.New()
	ti.CharLimit = 500
	ti.Prompt = ""

	m := &Model{
		store:  opts.Store,
		cursor: nav.NewCursor(opts.Store, opts.Mode, 20),
		ops:    ops,
		width:  80,
		height: 24,
		input:  ti,

		embedded: opts.Embedded,
		noColor:  opts.NoColor,
	}
	if opts.StartPath != "" {
		m.cursor.SelectPath(opts.StartPath)
	}
	return m
}

// Result is the path chosen with enter in standalone mode, or empty.
func (m *Model) Result() string { return m.result }

// Cursor exposes the navigation cursor, mainly for tests.
func (m *Model) Cursor() *nav.Cursor { return m.cursor }

// Close deregisters the cursor from the store's change notification.
func (m *Model) Close() { m.cursor.Close() }

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) contentHeight() int {
	return max(m.height-chromeLines, 1)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.SetWidth(max(msg.Width-2, 10))
		m.cursor.SetHeight(m.contentHeight())
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		if m.prompt != promptNone && key != "esc" && key != "enter" && key != "ctrl+c" {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m.handleKey(key)

	case tea.MouseClickMsg:
		ev := msg.Mouse()
		if ev.Button == tea.MouseLeft {
			m.handleClick(ev.Y)
		}
		return m, nil

	case tea.MouseWheelMsg:
		ev := msg.Mouse()
		switch ev.Button {
		case tea.MouseWheelUp:
			m.cursor.MoveBackward(1)
		case tea.MouseWheelDown:
			m.cursor.MoveForward(1)
		}
		return m, nil
	}

	if m.prompt != promptNone {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.helpVisible {
		m.helpVisible = false
		return m, nil
	}

	if m.prompt != promptNone {
		return m.handlePromptKey(key)
	}

	if m.confirmDelete {
		m.confirmDelete = false
		if key == "y" || key == "Y" {
			m.deleteSelected()
		} else {
			m.status = "Delete cancelled"
		}
		return m, nil
	}

	if key == "esc" {
		// Inside a panel the abort only leaves search mode; a
		// standalone modal view propagates it to its owner, which
		// closes the view without a result.
		if m.embedded {
			m.searching = false
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	if m.searching && isSearchEdit(key) {
		m.doSearch(key)
		return m, nil
	}

	if action := lookupAction(key); action != ActionNone {
		return m.executeAction(action)
	}

	// Unbound printable characters start an incremental search, the
	// way classic tree panels do.
	if isPrintable(key) {
		m.searching = true
		m.searchBuf = ""
		m.doSearch(key)
	}
	return m, nil
}

func (m *Model) handlePromptKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.prompt = promptNone
		m.status = ""
	case "enter":
		m.runPrompt()
	}
	return m, nil
}

// isSearchEdit reports whether a key edits the search buffer.
func isSearchEdit(key string) bool {
	return key == "backspace" || key == "space" || isPrintable(key)
}

func isPrintable(key string) bool {
	if len(key) != 1 {
		return false
	}
	b := key[0]
	return b >= ' ' && b != 0x7f
}

// doSearch applies one keystroke to the search buffer and re-runs the
// prefix search. A failed search drops the keystroke, so the buffer
// only ever holds a prefix that matches something.
func (m *Model) doSearch(key string) {
	next := m.searchBuf
	switch {
	case key == "backspace":
		if next != "" {
			next = next[:len(next)-1]
		}
	case key == "space":
		next += " "
	default:
		next += key
	}
	if m.cursor.Search(next) {
		m.searchBuf = next
	}
}

func (m *Model) executeAction(action Action) (tea.Model, tea.Cmd) {
	// Any command other than search leaves search mode.
	if action != ActionSearch {
		m.searching = false
	}
	m.status = ""

	sel := m.cursor.Selected()

	switch action {
	case ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case ActionUp:
		m.cursor.MoveBackward(1)
	case ActionDown:
		m.cursor.MoveForward(1)
	case ActionPageUp:
		m.cursor.MoveBackward(m.contentHeight() - 1)
	case ActionPageDown:
		m.cursor.MoveForward(m.contentHeight() - 1)
	case ActionHome:
		m.cursor.MoveToTop()
	case ActionEnd:
		m.cursor.MoveToBottom()

	case ActionLeft:
		if m.cursor.Mode() == nav.Hierarchical {
			m.cursor.MoveToParent()
		}
	case ActionRight:
		if m.cursor.Mode() == nav.Hierarchical {
			if err := m.cursor.MoveToChild(); err != nil {
				m.status = err.Error()
			}
		}

	case ActionEnter:
		if sel == nil {
			break
		}
		if m.embedded {
			if err := m.ops.Chdir(sel.Path); err != nil {
				m.status = err.Error()
			} else {
				m.status = "Changed directory to " + sel.Path
			}
		} else {
			m.result = sel.Path
			m.quitting = true
			return m, tea.Quit
		}

	case ActionRescan:
		if sel != nil {
			if err := m.store.Rescan(sel.Path); err != nil {
				m.status = err.Error()
			}
		}

	case ActionForget:
		if sel != nil {
			m.store.Remove(sel.Path)
		}

	case ActionToggleNav:
		m.status = "Navigation: " + m.cursor.ToggleMode().String()

	case ActionSearch:
		if m.searching {
			m.cursor.NextForSearch()
			m.cursor.Search(m.searchBuf)
		} else {
			m.searching = true
			m.searchBuf = ""
		}

	case ActionCopy:
		if sel != nil {
			m.openPrompt(promptCopy, sel.Path)
		}
	case ActionMove:
		if sel != nil {
			m.openPrompt(promptMove, sel.Path)
		}
	case ActionDelete:
		if sel != nil {
			m.confirmDelete = true
			m.status = fmt.Sprintf("Delete %s? (y/n)", sel.Path)
		}

	case ActionHelp:
		m.helpVisible = true
	}
	return m, nil
}

func (m *Model) openPrompt(kind promptKind, src string) {
	m.prompt = kind
	m.input.SetValue("")
	verb := "Copy"
	if kind == promptMove {
		verb = "Move"
	}
	m.input.Placeholder = fmt.Sprintf("%s %q to:", verb, src)
	m.input.Focus()
}

// runPrompt executes the pending copy or move with the entered
// destination. Failures become a status message; the cursor and the
// index stay exactly as they were.
func (m *Model) runPrompt() {
	dest := strings.TrimSpace(m.input.Value())
	kind := m.prompt
	m.prompt = promptNone
	sel := m.cursor.Selected()
	if dest == "" || sel == nil {
		return
	}
	var err error
	switch kind {
	case promptCopy:
		err = m.ops.Copy(sel.Path, dest)
	case promptMove:
		err = m.ops.Move(sel.Path, dest)
	}
	if err != nil {
		m.status = err.Error()
		return
	}
	m.status = "Done"
}

// deleteSelected runs the external delete and, on success, forgets the
// removed directory so the index and every cursor stay consistent.
func (m *Model) deleteSelected() {
	sel := m.cursor.Selected()
	if sel == nil {
		return
	}
	if err := m.ops.Delete(sel.Path); err != nil {
		m.status = err.Error()
		return
	}
	path := sel.Path
	m.store.Remove(path)
	m.status = "Deleted " + path
}

// handleClick resolves a window row through the last rendered frame's
// line map. Clicking the selected row again acts as enter.
func (m *Model) handleClick(y int) {
	line := y - 1 // title row
	e := m.frame.EntryAt(line)
	if e == nil {
		return
	}
	if e == m.cursor.Selected() {
		m.executeAction(ActionEnter)
		return
	}
	m.cursor.SelectLine(e, line)
}
