package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/tunes/internal/catalog"
	"github.com/mmcdole/tunes/internal/domain"
)

// Command factories for async operations

// FetchPageCmd fetches one page off the event loop. The result is always
// delivered, errors included, so the controller can clear its loading flag.
func FetchPageCmd(ctrl *catalog.Controller, req catalog.PageRequest, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return PageLoadedMsg{Result: ctrl.Fetch(ctx, req)}
	}
}

// DebounceCmd schedules a DebounceMsg after d
func DebounceCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return DebounceMsg{Seq: seq}
	})
}

// LaunchCmd opens an item's preview (or store page) externally
func LaunchCmd(opener Opener, item domain.SearchResultItem) tea.Cmd {
	return func() tea.Msg {
		preview := item.PreviewURL != ""
		if err := opener.Launch(item.OpenURL(), preview); err != nil {
			return ErrMsg{Err: err, Context: "opening " + item.Title}
		}
		return LaunchedMsg{Title: item.Title, Preview: preview}
	}
}

// RecordHistoryCmd saves a submitted term
func RecordHistoryCmd(h History, term string, resultCount int) tea.Cmd {
	return func() tea.Msg {
		if err := h.Record(term, resultCount); err != nil {
			return ErrMsg{Err: err, Context: "saving history"}
		}
		return HistoryRecordedMsg{Term: term}
	}
}

// DeleteHistoryCmd forgets a term
func DeleteHistoryCmd(h History, term string) tea.Cmd {
	return func() tea.Msg {
		if err := h.Delete(term); err != nil {
			return ErrMsg{Err: err, Context: "deleting history"}
		}
		return HistoryRecordedMsg{Term: term}
	}
}

// ClearStatusCmd clears status id after d
func ClearStatusCmd(id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{ID: id}
	})
}
