package source

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/tunes/internal/adapter"
	"github.com/mmcdole/tunes/internal/adapter/source/itunes"
	"github.com/mmcdole/tunes/internal/domain"
)

// CatalogSource combines the interfaces a catalog backend must implement.
type CatalogSource interface {
	domain.SearchClient // Search: one page per call
	domain.LookupClient // Lookup: single record by ID
}

// SourceConfig contains the configuration needed to create a CatalogSource
type SourceConfig struct {
	Type    adapter.SourceType
	URL     string
	Timeout time.Duration
}

// NewClient creates a new CatalogSource based on the source type.
func NewClient(cfg *SourceConfig, logger *slog.Logger) (CatalogSource, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	switch cfg.Type {
	case adapter.SourceTypeITunes, "":
		return itunes.NewClient(cfg.URL, cfg.Timeout, logger), nil

	default:
		return nil, fmt.Errorf("unknown catalog type: %s", cfg.Type)
	}
}
