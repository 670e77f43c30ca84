package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmcdole/tunes/internal/catalog"
)

type searchOptions struct {
	pages   int
	limit   int
	media   string
	entity  string
	country string
	asJSON  bool
	jq      string
}

func newSearchCmd(a *app) *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <term...>",
		Short: "Search the catalog and print the results",
		Long: `Search the catalog and print the results.

Pages are fetched in order until --page pages are loaded or the catalog
runs out. Output is a table on a terminal and JSON otherwise.`,
		Example: `  tunes search yellow submarine
  tunes search --media movie --page 3 alien
  tunes search --jq '.[].title' jack johnson`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.search(cmd.Context(), strings.Join(args, " "), opts)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.pages, "page", "p", 1, "number of pages to load")
	f.IntVarP(&opts.limit, "limit", "l", 0, "results per page (default from config)")
	f.StringVar(&opts.media, "media", "", "media filter: music, movie, podcast, ebook, software, ...")
	f.StringVar(&opts.entity, "entity", "", "entity filter: song, album, musicArtist, ...")
	f.StringVar(&opts.country, "country", "", "two-letter store country")
	f.BoolVar(&opts.asJSON, "json", false, "print JSON even on a terminal")
	f.StringVar(&opts.jq, "jq", "", "filter the JSON output with a jq expression (strings print raw)")
	return cmd
}

func (a *app) search(ctx context.Context, term string, opts searchOptions) error {
	if strings.TrimSpace(term) == "" {
		return errors.New("search term is empty")
	}
	if opts.pages < 1 {
		return errors.New("--page must be at least 1")
	}

	copts := a.controllerOptions()
	if opts.limit > 0 {
		copts.PageSize = opts.limit
	}
	if opts.media != "" {
		copts.Media = opts.media
	}
	if opts.country != "" {
		copts.Country = opts.country
	}
	copts.Entity = opts.entity

	ctrl := catalog.NewController(a.catalog, copts, a.logger)

	timeout := a.cfg.Catalog.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout*time.Duration(opts.pages))
	defer cancel()

	st := ctrl.Load(ctx, term, opts.pages)
	a.logger.Info("search finished", "query", term, "pages", st.Page, "results", len(st.Results), "error", st.Error)

	if len(st.Results) > 0 {
		a.recordHistory(term, min(len(st.Results), st.PageSize))
	}

	rows := make([]resultRow, 0, len(st.Results))
	for _, item := range st.Results {
		rows = append(rows, newResultRow(item))
	}

	note := st.Footer()
	if st.Error != "" {
		note = st.Error
	}
	if err := newPrinter(a.out, opts.asJSON, opts.jq).results(rows, note); err != nil {
		return err
	}

	if st.Error == catalog.MsgFetchFailed {
		return errors.New(catalog.MsgFetchFailed)
	}
	return nil
}

// recordHistory remembers a term that produced results. Failures are
// logged, never fatal.
func (a *app) recordHistory(term string, resultCount int) {
	store, err := a.openHistory()
	if err != nil {
		a.logger.Warn("history unavailable", "error", err)
		return
	}
	if store == nil {
		return
	}
	if err := store.Record(term, resultCount); err != nil {
		a.logger.Warn("failed to record history", "term", term, "error", err)
	}
}

