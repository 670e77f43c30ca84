package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/mmcdole/tunes/internal/domain"
)

// Options configures the requests a Controller issues
type Options struct {
	PageSize int
	Media    string
	Entity   string
	Country  string
}

// Controller owns the search State. It is the single writer: every
// mutation happens through its methods, which callers run on one
// goroutine (the TUI event loop or the CLI's main goroutine).
//
// Fetch performs I/O without touching state so it can run elsewhere; its
// PageResult is merged back with Apply.
type Controller struct {
	client domain.SearchClient
	opts   Options
	logger *slog.Logger

	state      State
	generation uint64
}

// NewController creates a controller with a fresh, empty state
func NewController(client domain.SearchClient, opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &Controller{
		client: client,
		opts:   opts,
		logger: logger,
		state: State{
			Page:     1,
			PageSize: opts.PageSize,
			HasMore:  true,
		},
	}
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	s := c.state
	s.Results = slices.Clone(c.state.Results)
	return s
}

// Generation returns the current query generation
func (c *Controller) Generation() uint64 {
	return c.generation
}

// SetQuery replaces the query text. A non-blank query starts a new
// generation: results, page, hasMore and error are reset and the page 1
// request is returned. A blank query fetches nothing and keeps the
// current results.
func (c *Controller) SetQuery(text string) (PageRequest, bool) {
	c.state.Query = text
	if strings.TrimSpace(text) == "" {
		return PageRequest{}, false
	}

	c.generation++
	c.state = State{
		Query:    text,
		Page:     1,
		PageSize: c.opts.PageSize,
		HasMore:  true,
		Loading:  true,
	}

	c.logger.Debug("query set", "query", text, "generation", c.generation)
	return c.currentRequest(), true
}

// OnEndReached requests the next page when more results may exist and no
// request is outstanding. Calls made while loading are no-ops.
func (c *Controller) OnEndReached() (PageRequest, bool) {
	if strings.TrimSpace(c.state.Query) == "" || !c.state.HasMore || c.state.Loading {
		return PageRequest{}, false
	}

	c.state.Page++
	c.state.Loading = true

	c.logger.Debug("end reached", "query", c.state.Query, "page", c.state.Page)
	return c.currentRequest(), true
}

func (c *Controller) currentRequest() PageRequest {
	return PageRequest{
		Query:      c.state.Query,
		Page:       c.state.Page,
		PageSize:   c.state.PageSize,
		Generation: c.generation,
	}
}

// Fetch issues the catalog request for req. It does not touch state.
func (c *Controller) Fetch(ctx context.Context, req PageRequest) (res PageResult) {
	res.Request = req

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("catalog search panicked", "panic", r)
			res.Items = nil
			res.Err = fmt.Errorf("catalog search panicked: %v", r)
		}
	}()

	res.Items, res.Err = c.client.Search(ctx, domain.SearchQuery{
		Term:    req.Query,
		Limit:   req.PageSize,
		Offset:  req.Offset(),
		Media:   c.opts.Media,
		Entity:  c.opts.Entity,
		Country: c.opts.Country,
	})
	return res
}

// Apply merges a fetch result into state and reports whether it was used.
// Results from an older generation are discarded untouched.
func (c *Controller) Apply(res PageResult) bool {
	req := res.Request
	if req.Generation != c.generation || req.Page != c.state.Page || !c.state.Loading {
		c.logger.Debug("discarding stale page",
			"query", req.Query, "page", req.Page,
			"generation", req.Generation, "current", c.generation)
		return false
	}

	defer func() { c.state.Loading = false }()

	switch {
	case res.Err != nil:
		c.logger.Warn("page fetch failed", "query", req.Query, "page", req.Page, "error", res.Err)
		c.state.HasMore = false
		c.state.Error = MsgFetchFailed

	case len(res.Items) == 0:
		c.state.HasMore = false
		if req.Page == 1 {
			c.state.Error = MsgNoResults
		}

	default:
		c.state.Results = append(c.state.Results, res.Items...)
	}

	c.logger.Debug("page applied", "query", req.Query, "page", req.Page,
		"items", len(res.Items), "total", len(c.state.Results), "hasMore", c.state.HasMore)
	return true
}

// FetchPage fetches req and merges it in one call
func (c *Controller) FetchPage(ctx context.Context, req PageRequest) bool {
	return c.Apply(c.Fetch(ctx, req))
}

// Load runs a query synchronously for up to pages pages, stopping early
// once the catalog runs dry or a request fails.
func (c *Controller) Load(ctx context.Context, text string, pages int) State {
	req, ok := c.SetQuery(text)
	for ok && req.Page <= pages {
		if err := ctx.Err(); err != nil {
			c.Apply(PageResult{Request: req, Err: err})
			break
		}
		c.FetchPage(ctx, req)
		if req.Page == pages {
			break
		}
		req, ok = c.OnEndReached()
	}
	return c.State()
}

// SelectItem maps a result to the detail record. No I/O is performed.
func (c *Controller) SelectItem(item domain.SearchResultItem) domain.DetailParams {
	return DetailFor(item)
}

// SelectIndex maps the result at index i, reporting false when out of range
func (c *Controller) SelectIndex(i int) (domain.DetailParams, bool) {
	if i < 0 || i >= len(c.state.Results) {
		return domain.DetailParams{}, false
	}
	return DetailFor(c.state.Results[i]), true
}

// DetailFor maps a catalog result to the fixed detail field set
func DetailFor(item domain.SearchResultItem) domain.DetailParams {
	kind := string(item.Kind)
	if kind == "" {
		kind = item.WrapperType
	}
	return domain.DetailParams{
		Title:       item.Title,
		Type:        kind,
		Image:       item.ArtworkURL,
		Price:       item.FormattedPrice(),
		Currency:    item.Currency,
		Artist:      item.ArtistName,
		ReleaseDate: item.ReleaseDay(),
		Genre:       item.Genre,
	}
}
