// Package catalog holds the search/list controller: query text, page
// bookkeeping, and the merge of catalog responses into one result list.
package catalog

import "github.com/mmcdole/tunes/internal/domain"

// User-facing messages. Raw errors never reach the screen.
const (
	MsgNoResults   = "No results found"
	MsgFetchFailed = "Error fetching data"
)

// End-of-list footers
const (
	FooterEmpty  = "No result found"
	FooterNoMore = "No more result"
)

// DefaultPageSize is the number of results requested per page
const DefaultPageSize = 25

// State is the search/list state owned by the Controller.
//
// Loading is true only while the request for the current Page is
// outstanding. Once HasMore is false no further page is requested for
// the current Query.
type State struct {
	Query    string
	Page     int // >= 1
	PageSize int
	Results  []domain.SearchResultItem // arrival order, duplicates possible
	Loading  bool
	HasMore  bool
	Error    string // empty when there is nothing to report
}

// HasError reports whether an inline message should be shown
func (s State) HasError() bool {
	return s.Error != ""
}

// Exhausted reports whether pagination has stopped for the current query
func (s State) Exhausted() bool {
	return !s.Loading && !s.HasMore
}

// Footer returns the end-of-list message, empty while more may follow
func (s State) Footer() string {
	if !s.Exhausted() || s.Query == "" {
		return ""
	}
	if len(s.Results) == 0 {
		return FooterEmpty
	}
	return FooterNoMore
}

// PageRequest identifies one page fetch. Generation ties it to the query
// it was issued for.
type PageRequest struct {
	Query      string
	Page       int
	PageSize   int
	Generation uint64
}

// Offset returns (Page-1)*PageSize
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// PageResult is the outcome of a PageRequest
type PageResult struct {
	Request PageRequest
	Items   []domain.SearchResultItem
	Err     error
}
