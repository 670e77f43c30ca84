package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/tunes/internal/domain"
)

func makeItems(n int) []domain.SearchResultItem {
	items := make([]domain.SearchResultItem, n)
	for i := range items {
		items[i] = domain.SearchResultItem{
			ID:         fmt.Sprint(i),
			Title:      fmt.Sprintf("Track %02d", i),
			ArtistName: "Artist",
			Kind:       domain.KindSong,
		}
	}
	return items
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newTestGrid builds a focused 3-column grid with 4 visible rows
func newTestGrid(n int) Grid {
	g := NewGrid(3)
	g.SetSize(90, BorderHeight+GridChromeLines+4*CellHeight)
	g.SetFocused(true)
	g.SetItems(makeItems(n))
	return g
}

func TestGrid_VisibleRows(t *testing.T) {
	g := newTestGrid(10)
	assert.Equal(t, 4, g.VisibleRows())

	g.SetSize(90, 3)
	assert.Equal(t, 1, g.VisibleRows())
}

func TestGrid_Navigation(t *testing.T) {
	g := newTestGrid(10)

	g, _ = g.Update(keyPress("l"))
	assert.Equal(t, 1, g.Cursor())
	g, _ = g.Update(keyPress("j"))
	assert.Equal(t, 4, g.Cursor())
	g, _ = g.Update(keyPress("k"))
	assert.Equal(t, 1, g.Cursor())
	g, _ = g.Update(keyPress("h"))
	g, _ = g.Update(keyPress("h"))
	assert.Equal(t, 0, g.Cursor())

	g, _ = g.Update(keyPress("G"))
	assert.Equal(t, 9, g.Cursor())
	g, _ = g.Update(keyPress("g"))
	assert.Equal(t, 0, g.Cursor())
}

func TestGrid_DownIntoPartialRow(t *testing.T) {
	g := newTestGrid(10) // last row holds only index 9
	g.SetCursor(8)

	g, _ = g.Update(keyPress("j"))
	assert.Equal(t, 9, g.Cursor())
}

func TestGrid_UnfocusedIgnoresKeys(t *testing.T) {
	g := newTestGrid(10)
	g.SetFocused(false)
	g, _ = g.Update(keyPress("l"))
	assert.Equal(t, 0, g.Cursor())
}

func TestGrid_NearEnd(t *testing.T) {
	g := newTestGrid(30) // 10 rows, 4 visible, threshold 2 rows

	assert.False(t, g.NearEnd())

	g.SetCursor(6 * 3) // row 6, 3 rows below
	assert.False(t, g.NearEnd())

	g.SetCursor(7 * 3) // row 7, 2 rows below
	assert.True(t, g.NearEnd())

	g.SetCursor(29)
	assert.True(t, g.NearEnd())
}

func TestGrid_NearEndShortList(t *testing.T) {
	g := newTestGrid(4) // 2 rows, all visible
	assert.True(t, g.NearEnd())

	empty := newTestGrid(0)
	assert.False(t, empty.NearEnd())
}

func TestGrid_SetItemsKeepsCursor(t *testing.T) {
	g := newTestGrid(25)
	g.SetCursor(20)

	g.SetItems(makeItems(50))
	assert.Equal(t, 20, g.Cursor())

	g.Reset()
	assert.Equal(t, 0, g.Cursor())
	assert.True(t, g.IsEmpty())
}

func TestGrid_Filter(t *testing.T) {
	g := newTestGrid(12)

	g.ToggleFilter()
	require.True(t, g.IsFilterTyping())

	for _, r := range "11" {
		g, _ = g.Update(keyPress(string(r)))
	}

	item, ok := g.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "Track 11", item.Title)
	assert.False(t, g.NearEnd(), "filtered view never asks for more pages")

	g, _ = g.Update(keyPress("enter"))
	assert.False(t, g.IsFilterTyping())
	assert.True(t, g.IsFiltering())

	g, _ = g.Update(keyPress("esc"))
	assert.False(t, g.IsFiltering())

	item, ok = g.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "Track 11", item.Title, "selection survives clearing the filter")
}

func TestGrid_ViewShowsFooter(t *testing.T) {
	g := newTestGrid(2)
	g.SetHeader(`Results for "abc"`)
	g.SetFooter("No more result", false)

	view := g.View()
	assert.Contains(t, view, "Track 00")
	assert.Contains(t, view, "No more result")
	assert.Contains(t, view, "SONG")
}

func TestGrid_ViewEmpty(t *testing.T) {
	g := newTestGrid(0)
	g.SetFooter("No result found", false)
	assert.Contains(t, g.View(), "No result found")
}
