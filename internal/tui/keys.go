package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application.
// Row movement inside the table is bound by components.TableKeyMap.
type KeyMap struct {
	// Navigation
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	JumpPage  key.Binding

	// Selection
	ToggleRow  key.Binding
	TogglePage key.Binding
	Bulk       key.Binding
	Panel      key.Binding
	ClearAll   key.Binding

	// Actions
	Quit      key.Binding
	ForceQuit key.Binding // honored even while typing
	Help      key.Binding
	Escape    key.Binding
	Filter    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "l"),
			key.WithHelp("n/→", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left", "h"),
			key.WithHelp("p/←", "prev page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "last page"),
		),
		JumpPage: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to page"),
		),

		// Selection
		ToggleRow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select row"),
		),
		TogglePage: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select page"),
		),
		Bulk: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "select first N"),
		),
		Panel: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "view selection"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear selection"),
		),

		// Actions
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel/clear"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter page"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleRow, k.NextPage, k.PrevPage, k.Bulk, k.Panel, k.Help, k.Quit}
}

// FullHelp returns the bindings shown on the help screen, one group per column
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage, k.FirstPage, k.LastPage, k.JumpPage},
		{k.ToggleRow, k.TogglePage, k.Bulk, k.Panel, k.ClearAll},
		{k.Filter, k.Escape, k.Help, k.Quit},
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
