package tui

import (
	"github.com/mmcdole/tunes/internal/catalog"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// DebounceMsg fires once typing has paused. Seq identifies the keystroke
// that scheduled it; older ones are ignored.
type DebounceMsg struct {
	Seq int
}

// PageLoadedMsg carries a finished page fetch back to the event loop
type PageLoadedMsg struct {
	Result catalog.PageResult
}

// LaunchedMsg signals that the external opener started
type LaunchedMsg struct {
	Title   string
	Preview bool
}

// HistoryRecordedMsg signals that a term was saved to history
type HistoryRecordedMsg struct {
	Term string
}

// ClearStatusMsg clears the status bar message if it is still the one with ID
type ClearStatusMsg struct {
	ID int
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
