package domain

import (
	"context"
	"time"
)

// SearchClient performs catalog searches (implemented by source clients)
type SearchClient interface {
	// Search returns one page of results for the query.
	// An empty slice with a nil error means the catalog had nothing more.
	Search(ctx context.Context, query SearchQuery) ([]SearchResultItem, error)
}

// LookupClient resolves a single catalog record by ID
type LookupClient interface {
	Lookup(ctx context.Context, id string) (*SearchResultItem, error)
}

// HistoryEntry is one remembered search term
type HistoryEntry struct {
	Term        string    `json:"term"`
	LastUsed    time.Time `json:"last_used"`
	Uses        int       `json:"uses"`
	ResultCount int       `json:"result_count"` // first-page result count at last use
}

// HistoryStore remembers submitted search terms. It never stores catalog results.
type HistoryStore interface {
	// Record bumps the term's use count and timestamp
	Record(term string, resultCount int) error

	// Recent returns entries newest first, at most limit (0 = all)
	Recent(limit int) ([]HistoryEntry, error)

	// Delete forgets a single term
	Delete(term string) error

	// Clear forgets everything
	Clear() error

	Close() error
}
