package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/tunes/internal/domain"
	"github.com/mmcdole/tunes/internal/tui/styles"
)

// MaxSuggestions is the number of history entries listed under the input
const MaxSuggestions = 5

// SearchBar is the query input with recent-search suggestions
type SearchBar struct {
	input       textinput.Model
	suggestions []domain.HistoryEntry
	cursor      int // -1 when no suggestion is highlighted
	width       int
	prevQuery   string // track query changes for debouncing
}

// NewSearchBar creates a new search bar component
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "Search songs, albums, movies, apps..."
	ti.CharLimit = 100
	ti.Width = 40
	ti.Prompt = "♪ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{
		input:  ti,
		cursor: -1,
	}
}

// Focus gives the input keyboard focus
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur removes keyboard focus and hides suggestions
func (s *SearchBar) Blur() {
	s.input.Blur()
	s.cursor = -1
}

// Focused reports whether the input has focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// SetSize updates the component width
func (s *SearchBar) SetSize(width int) {
	s.width = width
	s.input.Width = max(width-10, 10)
}

// Value returns the current input text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the input text
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
	s.input.CursorEnd()
}

// QueryChanged returns true if the text changed since the last check
func (s *SearchBar) QueryChanged() bool {
	current := s.input.Value()
	if current != s.prevQuery {
		s.prevQuery = current
		return true
	}
	return false
}

// SetSuggestions replaces the suggestion list
func (s *SearchBar) SetSuggestions(entries []domain.HistoryEntry) {
	if len(entries) > MaxSuggestions {
		entries = entries[:MaxSuggestions]
	}
	s.suggestions = entries
	if s.cursor >= len(entries) {
		s.cursor = -1
	}
}

// Suggestions returns the listed suggestions
func (s SearchBar) Suggestions() []domain.HistoryEntry {
	return s.suggestions
}

// Submission returns the text Enter should search for: the highlighted
// suggestion when there is one, otherwise the input.
func (s SearchBar) Submission() string {
	if s.cursor >= 0 && s.cursor < len(s.suggestions) {
		return s.suggestions[s.cursor].Term
	}
	return s.input.Value()
}

// Height returns the number of lines View renders
func (s SearchBar) Height() int {
	return 1 + s.visibleSuggestions()
}

func (s SearchBar) visibleSuggestions() int {
	if !s.Focused() {
		return 0
	}
	return len(s.suggestions)
}

// Update handles messages. Enter is left to the caller.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd) {
	if !s.Focused() {
		return s, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, SuggestionKeys.Down):
			if s.cursor < len(s.suggestions)-1 {
				s.cursor++
			}
			return s, nil
		case key.Matches(msg, SuggestionKeys.Up):
			if s.cursor >= 0 {
				s.cursor--
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// View renders the input and, while focused, the suggestions below it
func (s SearchBar) View() string {
	var b strings.Builder
	b.WriteString(s.input.View())

	for i := 0; i < s.visibleSuggestions(); i++ {
		e := s.suggestions[i]
		style := styles.NormalItemStyle
		if i == s.cursor {
			style = styles.SelectedItemStyle
		}
		// counts line up in a column after the terms
		term := styles.Pad(e.Term, max(s.width-20, 8))
		line := style.Render(term)
		if e.ResultCount > 0 {
			line += styles.DimStyle.Render(fmt.Sprintf(" %d results", e.ResultCount))
		}
		b.WriteString("\n  ")
		b.WriteString(line)
	}

	return b.String()
}
