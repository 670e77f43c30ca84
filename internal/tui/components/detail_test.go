package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/tunes/internal/domain"
)

func detailFixture() (domain.DetailParams, domain.SearchResultItem) {
	price := 1.29
	item := domain.SearchResultItem{
		ID:             "42",
		Title:          "Yellow Submarine",
		Kind:           domain.KindSong,
		ArtistName:     "The Beatles",
		CollectionName: "Revolver",
		Price:          &price,
		Currency:       "USD",
		ReleaseDate:    "1966-08-05T07:00:00Z",
		Genre:          "Rock",
		PreviewURL:     "https://audio.example/yellow.m4a",
	}
	params := domain.DetailParams{
		Title:       item.Title,
		Type:        "song",
		Price:       "1.29",
		Currency:    "USD",
		Artist:      item.ArtistName,
		ReleaseDate: "1966-08-05",
		Genre:       "Rock",
	}
	return params, item
}

func TestDetail_Empty(t *testing.T) {
	d := NewDetail()
	d.SetSize(60, 20)

	assert.False(t, d.HasItem())
	assert.Contains(t, d.View(), "No item selected")
}

func TestDetail_RendersRowsInOrder(t *testing.T) {
	params, item := detailFixture()
	d := NewDetail()
	d.SetSize(80, 30)
	d.SetItem(params, item)

	view := d.View()
	labels := []string{"Type", "Price", "Artist", "Release Date", "Genre"}
	last := -1
	for _, label := range labels {
		idx := strings.Index(view, label)
		assert.Greater(t, idx, last, "%s out of order", label)
		last = idx
	}
	assert.Contains(t, view, "USD 1.29")
	assert.Contains(t, view, "Revolver")
	assert.Contains(t, view, "play preview")
}

func TestDetail_MissingValuesStayBlank(t *testing.T) {
	d := NewDetail()
	d.SetSize(80, 30)
	d.SetItem(domain.DetailParams{Title: "Untitled"}, domain.SearchResultItem{ID: "1"})

	view := d.View()
	assert.Contains(t, view, "Release Date")
	assert.NotContains(t, view, "Unknown")
	assert.NotContains(t, view, "play preview", "nothing to open without URLs")
	assert.NotContains(t, view, "open store page")
}

func TestDetail_ScrollOnlyWhenFocused(t *testing.T) {
	params, item := detailFixture()
	d := NewDetail()
	d.SetSize(80, 12)
	d.SetItem(params, item)

	d, _ = d.Update(keyPress("j"))
	assert.Equal(t, 0, d.offset)

	d.SetFocused(true)
	d, _ = d.Update(keyPress("j"))
	d, _ = d.Update(keyPress("j"))
	assert.Equal(t, 2, d.offset)
	d, _ = d.Update(keyPress("k"))
	assert.Equal(t, 1, d.offset)
	d, _ = d.Update(keyPress("g"))
	assert.Equal(t, 0, d.offset)
}

func TestDetail_NewItemResetsScroll(t *testing.T) {
	params, item := detailFixture()
	d := NewDetail()
	d.SetFocused(true)
	d.SetItem(params, item)
	d, _ = d.Update(keyPress("j"))

	d.SetItem(params, item)
	assert.Equal(t, 1, d.offset, "same item keeps its scroll")

	other := item
	other.ID = "43"
	d.SetItem(params, other)
	assert.Equal(t, 0, d.offset)

	d.Clear()
	assert.False(t, d.HasItem())
	assert.Equal(t, domain.DetailParams{}, d.Params())
}

func TestWrapURL(t *testing.T) {
	assert.Len(t, wrapURL("abcdefghij", 4), 3)
	assert.Len(t, wrapURL("abc", 4), 1)
}
