package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level key bindings. Grid and detail
// navigation keys are handled by the components themselves.
type KeyMap struct {
	// Search bar
	Submit     key.Binding
	FocusGrid  key.Binding
	FocusInput key.Binding

	// Results
	Open         key.Binding
	Launch       key.Binding
	Filter       key.Binding
	ToggleDetail key.Binding
	ClearHistory key.Binding
	Back         key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		FocusGrid: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "results"),
		),
		FocusInput: key.NewBinding(
			key.WithKeys("tab", "s"),
			key.WithHelp("s/tab", "search"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Launch: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open preview"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		ToggleDetail: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "toggle details"),
		),
		ClearHistory: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "forget suggestion"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()
