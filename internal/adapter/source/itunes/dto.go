package itunes

// SearchResponse is the envelope returned by /search and /lookup
type SearchResponse struct {
	ResultCount int      `json:"resultCount"`
	Results     []Result `json:"results"`
}

// Result is a single catalog record. Which fields are present depends on
// the wrapper type (track, collection, artist, audiobook, software).
type Result struct {
	WrapperType       string   `json:"wrapperType,omitempty"`
	Kind              string   `json:"kind,omitempty"`
	ArtistID          int64    `json:"artistId,omitempty"`
	CollectionID      int64    `json:"collectionId,omitempty"`
	TrackID           int64    `json:"trackId,omitempty"`
	ArtistName        string   `json:"artistName,omitempty"`
	CollectionName    string   `json:"collectionName,omitempty"`
	TrackName         string   `json:"trackName,omitempty"`
	ArtistViewURL     string   `json:"artistViewUrl,omitempty"`
	CollectionViewURL string   `json:"collectionViewUrl,omitempty"`
	TrackViewURL      string   `json:"trackViewUrl,omitempty"`
	PreviewURL        string   `json:"previewUrl,omitempty"`
	ArtworkURL30      string   `json:"artworkUrl30,omitempty"`
	ArtworkURL60      string   `json:"artworkUrl60,omitempty"`
	ArtworkURL100     string   `json:"artworkUrl100,omitempty"`
	CollectionPrice   *float64 `json:"collectionPrice,omitempty"`
	TrackPrice        *float64 `json:"trackPrice,omitempty"`
	Price             *float64 `json:"price,omitempty"` // audiobooks and software
	ReleaseDate       string   `json:"releaseDate,omitempty"`
	Country           string   `json:"country,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	PrimaryGenreName  string   `json:"primaryGenreName,omitempty"`
	TrackTimeMillis   int64    `json:"trackTimeMillis,omitempty"`
	Description       string   `json:"description,omitempty"`
	LongDescription   string   `json:"longDescription,omitempty"`
}
