package ui

// Action names an operation on the tree browser. Every binding maps
// 1:1 onto a cursor, search, index or file-operation call.
type Action string

const (
	ActionNone       Action = ""
	ActionUp         Action = "goto_up"
	ActionDown       Action = "goto_down"
	ActionLeft       Action = "goto_left"
	ActionRight      Action = "goto_right"
	ActionPageUp     Action = "goto_page_up"
	ActionPageDown   Action = "goto_page_down"
	ActionHome       Action = "goto_home"
	ActionEnd        Action = "goto_end"
	ActionEnter      Action = "enter"
	ActionRescan     Action = "rescan"
	ActionSearch     Action = "search_begin"
	ActionDelete     Action = "delete"
	ActionCopy       Action = "copy"
	ActionMove       Action = "move"
	ActionForget     Action = "forget"
	ActionToggleNav  Action = "toggle_navigation_mode"
	ActionHelp       Action = "help"
	ActionQuit       Action = "quit"
)

// DefaultKeyBindings maps key strings (as bubbletea reports them) to
// actions. Function keys follow the classic file-manager layout;
// letters add a vim flavor. Unbound printable keys start a search.
var DefaultKeyBindings = map[string]Action{
	"up":     ActionUp,
	"k":      ActionUp,
	"down":   ActionDown,
	"j":      ActionDown,
	"left":   ActionLeft,
	"h":      ActionLeft,
	"right":  ActionRight,
	"l":      ActionRight,
	"pgup":   ActionPageUp,
	"pgdown": ActionPageDown,
	"home":   ActionHome,
	"g":      ActionHome,
	"end":    ActionEnd,
	"G":      ActionEnd,
	"enter":  ActionEnter,
	"f1":     ActionHelp,
	"?":      ActionHelp,
	"f2":     ActionRescan,
	"ctrl+r": ActionRescan,
	"f3":     ActionForget,
	"f4":     ActionToggleNav,
	"t":      ActionToggleNav,
	"f5":     ActionCopy,
	"f6":     ActionMove,
	"f8":     ActionDelete,
	"delete": ActionDelete,
	"ctrl+s": ActionSearch,
	"/":      ActionSearch,
	"q":      ActionQuit,
	"ctrl+c": ActionQuit,
}

// lookupAction resolves a key to its bound action.
func lookupAction(key string) Action {
	return DefaultKeyBindings[key]
}
