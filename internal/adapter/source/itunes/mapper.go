package itunes

import (
	"strconv"

	"github.com/mmcdole/tunes/internal/domain"
)

// MapResults converts catalog records to domain search results
func MapResults(results []Result) []domain.SearchResultItem {
	items := make([]domain.SearchResultItem, 0, len(results))
	for _, r := range results {
		items = append(items, MapResult(r))
	}
	return items
}

// MapResult converts a single catalog record. Absent fields stay empty.
func MapResult(r Result) domain.SearchResultItem {
	item := domain.SearchResultItem{
		ID:             mapID(r),
		Title:          r.TrackName,
		Kind:           domain.MediaKind(r.Kind),
		WrapperType:    r.WrapperType,
		ArtworkURL:     r.ArtworkURL100,
		ArtistName:     r.ArtistName,
		CollectionName: r.CollectionName,
		Price:          mapPrice(r),
		Currency:       r.Currency,
		ReleaseDate:    r.ReleaseDate,
		Genre:          r.PrimaryGenreName,
		PreviewURL:     r.PreviewURL,
		TrackViewURL:   r.TrackViewURL,
	}

	// Collection-level results (albums, audiobooks) carry no track fields
	if item.Title == "" {
		item.Title = r.CollectionName
	}
	if item.TrackViewURL == "" {
		item.TrackViewURL = r.CollectionViewURL
	}
	if item.ArtworkURL == "" {
		item.ArtworkURL = firstNonEmpty(r.ArtworkURL60, r.ArtworkURL30)
	}

	return item
}

func mapID(r Result) string {
	switch {
	case r.TrackID != 0:
		return strconv.FormatInt(r.TrackID, 10)
	case r.CollectionID != 0:
		return strconv.FormatInt(r.CollectionID, 10)
	case r.ArtistID != 0:
		return strconv.FormatInt(r.ArtistID, 10)
	default:
		return ""
	}
}

func mapPrice(r Result) *float64 {
	switch {
	case r.TrackPrice != nil:
		return r.TrackPrice
	case r.CollectionPrice != nil:
		return r.CollectionPrice
	default:
		return r.Price
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
