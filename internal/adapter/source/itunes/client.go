package itunes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/tunes/internal/domain"
)

const (
	// DefaultBaseURL is the public catalog host
	DefaultBaseURL = "https://itunes.apple.com"

	defaultTimeout = 30 * time.Second
	userAgent      = "Tunes/1.0"
	maxBodySize    = 8 << 20
)

// Client implements domain.SearchClient and domain.LookupClient against the
// public catalog search API. No authentication is involved.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new catalog client. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// SearchURL builds the request URL for a page:
// <endpoint>?term=<query>&limit=<limit>&offset=<offset>, followed by any
// optional filters.
func (c *Client) SearchURL(q domain.SearchQuery) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	b.WriteString("/search?term=")
	b.WriteString(url.QueryEscape(q.Term))
	b.WriteString("&limit=")
	b.WriteString(strconv.Itoa(q.Limit))
	b.WriteString("&offset=")
	b.WriteString(strconv.Itoa(q.Offset))

	extra := url.Values{}
	if q.Media != "" {
		extra.Set("media", q.Media)
	}
	if q.Entity != "" {
		extra.Set("entity", q.Entity)
	}
	if q.Country != "" {
		extra.Set("country", q.Country)
	}
	if len(extra) > 0 {
		b.WriteString("&")
		b.WriteString(extra.Encode())
	}
	return b.String()
}

// Search returns one page of catalog results
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResultItem, error) {
	body, err := c.doRequest(ctx, c.SearchURL(q))
	if err != nil {
		return nil, err
	}

	resp, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("catalog search complete", "term", q.Term, "offset", q.Offset, "results", len(resp.Results))
	return MapResults(resp.Results), nil
}

// Lookup resolves a single record by catalog ID
func (c *Client) Lookup(ctx context.Context, id string) (*domain.SearchResultItem, error) {
	query := url.Values{}
	query.Set("id", id)

	body, err := c.doRequest(ctx, c.baseURL+"/lookup?"+query.Encode())
	if err != nil {
		return nil, err
	}

	resp, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, domain.ErrItemNotFound
	}

	item := MapResult(resp.Results[0])
	return &item, nil
}

// doRequest performs a GET and returns the body of a 200 response
func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnreachable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("catalog request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %d", domain.ErrUnexpectedStatus, resp.StatusCode)
	}

	return body, nil
}

// parseResponse decodes the results envelope
func (c *Client) parseResponse(body []byte) (*SearchResponse, error) {
	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}
	// "results": [] decodes to an empty non-nil slice; a missing key does not
	if resp.Results == nil {
		return nil, fmt.Errorf("%w: missing results", domain.ErrMalformedResponse)
	}
	return &resp, nil
}
