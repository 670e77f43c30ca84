package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MediaKind is the normalized "kind" of a catalog result
type MediaKind string

const (
	KindSong       MediaKind = "song"
	KindMovie      MediaKind = "feature-movie"
	KindTVEpisode  MediaKind = "tv-episode"
	KindPodcast    MediaKind = "podcast"
	KindMusicVideo MediaKind = "music-video"
	KindEbook      MediaKind = "ebook"
	KindAudiobook  MediaKind = "audiobook"
	KindSoftware   MediaKind = "software"
	KindUnknown    MediaKind = ""
)

// SearchResultItem is one record returned by the catalog search endpoint.
// The upstream schema is not validated, so every field is optional: strings
// are empty and Price is nil when the catalog did not send them.
type SearchResultItem struct {
	ID             string    // trackId, or collectionId for collection-level results
	Title          string    // trackName, falling back to collectionName
	Kind           MediaKind // "song", "feature-movie", ...
	WrapperType    string    // "track", "collection", "audiobook", ...
	ArtworkURL     string    // artworkUrl100
	ArtistName     string
	CollectionName string
	Price          *float64 // trackPrice, falling back to collectionPrice
	Currency       string
	ReleaseDate    string // raw ISO-8601 timestamp as sent
	Genre          string // primaryGenreName
	PreviewURL     string
	TrackViewURL   string // store page
}

// HasPrice reports whether the catalog sent a price
func (s SearchResultItem) HasPrice() bool {
	return s.Price != nil
}

// FormattedPrice renders the price without currency, empty if absent
func (s SearchResultItem) FormattedPrice() string {
	if s.Price == nil {
		return ""
	}
	return strconv.FormatFloat(*s.Price, 'f', -1, 64)
}

// PriceLabel returns "<currency> <price>", empty when there is no price
func (s SearchResultItem) PriceLabel() string {
	if s.Price == nil {
		return ""
	}
	return strings.TrimSpace(s.Currency + " " + s.FormattedPrice())
}

// ReleaseYear returns the year part of the release date (0 if unknown)
func (s SearchResultItem) ReleaseYear() int {
	if len(s.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(s.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// ReleaseDay returns the release date as YYYY-MM-DD when it parses,
// otherwise the raw value
func (s SearchResultItem) ReleaseDay() string {
	if t, err := time.Parse(time.RFC3339, s.ReleaseDate); err == nil {
		return t.Format("2006-01-02")
	}
	return s.ReleaseDate
}

// KindLabel returns a short human label for the kind
func (s SearchResultItem) KindLabel() string {
	switch s.Kind {
	case KindSong:
		return "Song"
	case KindMovie:
		return "Movie"
	case KindTVEpisode:
		return "TV Episode"
	case KindPodcast:
		return "Podcast"
	case KindMusicVideo:
		return "Music Video"
	case KindEbook:
		return "Book"
	case KindAudiobook:
		return "Audiobook"
	case KindSoftware:
		return "App"
	case KindUnknown:
		if s.WrapperType != "" {
			return strings.ToUpper(s.WrapperType[:1]) + s.WrapperType[1:]
		}
		return ""
	default:
		return string(s.Kind)
	}
}

// Badge returns a compact type badge for list rendering
func (s SearchResultItem) Badge() string {
	switch s.Kind {
	case KindSong:
		return "SONG"
	case KindMovie:
		return "MOV"
	case KindTVEpisode:
		return "EP"
	case KindPodcast:
		return "POD"
	case KindMusicVideo:
		return "MV"
	case KindEbook, KindAudiobook:
		return "BOOK"
	case KindSoftware:
		return "APP"
	default:
		return "ITEM"
	}
}

// OpenURL returns the best URL to hand to an external opener: the preview
// when present, otherwise the store page
func (s SearchResultItem) OpenURL() string {
	if s.PreviewURL != "" {
		return s.PreviewURL
	}
	return s.TrackViewURL
}

// GetID and GetTitle let list components treat results uniformly.

func (s *SearchResultItem) GetID() string    { return s.ID }
func (s *SearchResultItem) GetTitle() string { return s.Title }

func (s *SearchResultItem) GetDescription() string {
	if s.ArtistName != "" {
		return s.ArtistName
	}
	return s.KindLabel()
}

// DetailParams is the flat record handed from the list screen to the detail
// screen. Every value is a string and may be empty.
type DetailParams struct {
	Title       string `json:"title"`
	Type        string `json:"type"`
	Image       string `json:"image"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
	Artist      string `json:"artist"`
	ReleaseDate string `json:"releaseDate"`
	Genre       string `json:"genre"`
}

// DetailRow is a label/value pair rendered by the detail presenter
type DetailRow struct {
	Label string
	Value string
}

// Rows returns the detail rows in display order. Missing values are
// rendered blank, never defaulted.
func (d DetailParams) Rows() []DetailRow {
	return []DetailRow{
		{Label: "Type", Value: d.Type},
		{Label: "Price", Value: d.PriceLabel()},
		{Label: "Artist", Value: d.Artist},
		{Label: "Release Date", Value: d.ReleaseDate},
		{Label: "Genre", Value: d.Genre},
	}
}

// PriceLabel joins currency and price the way the detail screen shows them
func (d DetailParams) PriceLabel() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s", d.Currency, d.Price))
}

// SearchQuery describes one page request against the catalog
type SearchQuery struct {
	Term    string
	Limit   int
	Offset  int
	Media   string // optional media filter ("music", "movie", ...)
	Entity  string // optional entity filter ("song", "album", ...)
	Country string // optional two-letter store country
}
