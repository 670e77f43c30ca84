package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(f float64) *float64 { return &f }

func TestSearchResultItem_FormattedPrice(t *testing.T) {
	assert.Equal(t, "", SearchResultItem{}.FormattedPrice())
	assert.Equal(t, "1.29", SearchResultItem{Price: floatPtr(1.29)}.FormattedPrice())
	assert.Equal(t, "0", SearchResultItem{Price: floatPtr(0)}.FormattedPrice())
	assert.Equal(t, "-1", SearchResultItem{Price: floatPtr(-1)}.FormattedPrice())
}

func TestSearchResultItem_Release(t *testing.T) {
	item := SearchResultItem{ReleaseDate: "2011-06-14T07:00:00Z"}
	assert.Equal(t, 2011, item.ReleaseYear())
	assert.Equal(t, "2011-06-14", item.ReleaseDay())

	raw := SearchResultItem{ReleaseDate: "sometime"}
	assert.Equal(t, 0, raw.ReleaseYear())
	assert.Equal(t, "sometime", raw.ReleaseDay())

	assert.Equal(t, 0, SearchResultItem{}.ReleaseYear())
}

func TestSearchResultItem_KindLabel(t *testing.T) {
	assert.Equal(t, "Song", SearchResultItem{Kind: KindSong}.KindLabel())
	assert.Equal(t, "Movie", SearchResultItem{Kind: KindMovie}.KindLabel())
	assert.Equal(t, "Collection", SearchResultItem{WrapperType: "collection"}.KindLabel())
	assert.Equal(t, "", SearchResultItem{}.KindLabel())
	assert.Equal(t, "coached-audio", SearchResultItem{Kind: "coached-audio"}.KindLabel())
}

func TestSearchResultItem_OpenURL(t *testing.T) {
	item := SearchResultItem{PreviewURL: "https://p", TrackViewURL: "https://v"}
	assert.Equal(t, "https://p", item.OpenURL())
	item.PreviewURL = ""
	assert.Equal(t, "https://v", item.OpenURL())
}

func TestDetailParams_Rows(t *testing.T) {
	d := DetailParams{
		Title:       "Yellow",
		Type:        "song",
		Price:       "1.29",
		Currency:    "USD",
		Artist:      "Coldplay",
		ReleaseDate: "2000-06-26",
		Genre:       "Alternative",
	}

	rows := d.Rows()
	assert.Equal(t, []DetailRow{
		{Label: "Type", Value: "song"},
		{Label: "Price", Value: "USD 1.29"},
		{Label: "Artist", Value: "Coldplay"},
		{Label: "Release Date", Value: "2000-06-26"},
		{Label: "Genre", Value: "Alternative"},
	}, rows)
}

func TestDetailParams_RowsKeepMissingValuesBlank(t *testing.T) {
	rows := DetailParams{Title: "x"}.Rows()
	for _, row := range rows {
		assert.Empty(t, row.Value, row.Label)
	}
}
