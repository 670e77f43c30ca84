package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/itchyny/gojq"
	"golang.org/x/term"

	"github.com/mmcdole/tunes/internal/catalog"
	"github.com/mmcdole/tunes/internal/domain"
	"github.com/mmcdole/tunes/internal/tui/styles"
)

// resultRow is the scripted-output shape of one search result
type resultRow struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Type        string `json:"type"`
	Artist      string `json:"artist,omitempty"`
	Collection  string `json:"collection,omitempty"`
	Price       string `json:"price,omitempty"`
	Currency    string `json:"currency,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Image       string `json:"image,omitempty"`
	PreviewURL  string `json:"previewUrl,omitempty"`
	StoreURL    string `json:"storeUrl,omitempty"`
}

func newResultRow(item domain.SearchResultItem) resultRow {
	p := catalog.DetailFor(item)
	return resultRow{
		ID:          item.ID,
		Title:       p.Title,
		Type:        p.Type,
		Artist:      p.Artist,
		Collection:  item.CollectionName,
		Price:       p.Price,
		Currency:    p.Currency,
		ReleaseDate: p.ReleaseDate,
		Genre:       p.Genre,
		Image:       p.Image,
		PreviewURL:  item.PreviewURL,
		StoreURL:    item.TrackViewURL,
	}
}

// printer writes either a table for people or JSON for scripts
type printer struct {
	w     io.Writer
	json  bool
	jq    string
	width int
}

// newPrinter picks JSON when asked, when a jq filter is set, or when w is
// not a terminal
func newPrinter(w io.Writer, forceJSON bool, jq string) *printer {
	width, isTTY := terminalInfo(w)
	return &printer{
		w:     w,
		json:  forceJSON || jq != "" || !isTTY,
		jq:    jq,
		width: width,
	}
}

// terminalInfo returns the terminal width and whether w is a TTY
func terminalInfo(w io.Writer) (width int, isTTY bool) {
	width = 80

	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return width, false
	}
	if w, _, err := term.GetSize(int(f.Fd())); err == nil && w >= 40 {
		width = w
	}
	return width, true
}

// emit writes v as indented JSON, or the jq filter's outputs
func (p *printer) emit(v any) error {
	if p.jq != "" {
		return p.emitJQ(v)
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// emitJQ runs the filter over v. String outputs are printed raw.
func (p *printer) emitJQ(v any) error {
	query, err := gojq.Parse(p.jq)
	if err != nil {
		return fmt.Errorf("invalid jq expression: %w", err)
	}

	// gojq only understands plain JSON values
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	var input any
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("failed to decode output: %w", err)
	}

	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	iter := query.Run(input)
	for {
		out, ok := iter.Next()
		if !ok {
			return nil
		}
		if err, isErr := out.(error); isErr {
			return fmt.Errorf("jq: %w", err)
		}
		if s, isStr := out.(string); isStr {
			fmt.Fprintln(p.w, s)
			continue
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
}

func (p *printer) newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styles.DimStyle).
		Headers(headers...).
		Width(p.width).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.AccentStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// results prints search results. note is the footer line shown under a
// table ("No more result", an error, ...).
func (p *printer) results(rows []resultRow, note string) error {
	if p.json {
		if rows == nil {
			rows = []resultRow{}
		}
		return p.emit(rows)
	}

	if len(rows) > 0 {
		t := p.newTable("TYPE", "TITLE", "ARTIST", "PRICE", "RELEASED")
		for _, r := range rows {
			price := r.Price
			if price != "" && r.Currency != "" {
				price = r.Currency + " " + price
			}
			t.Row(r.Type, r.Title, r.Artist, price, r.ReleaseDate)
		}
		fmt.Fprintln(p.w, t.Render())
	}
	if note != "" {
		fmt.Fprintln(p.w, styles.DimStyle.Render(note))
	}
	return nil
}

// detail prints one result's detail rows
func (p *printer) detail(params domain.DetailParams, item domain.SearchResultItem) error {
	if p.json {
		return p.emit(params)
	}

	fmt.Fprintln(p.w, styles.TitleStyle.Render(params.Title))
	if item.CollectionName != "" && item.CollectionName != params.Title {
		fmt.Fprintln(p.w, styles.SubtitleStyle.Render(item.CollectionName))
	}
	fmt.Fprintln(p.w)
	for _, row := range params.Rows() {
		fmt.Fprintln(p.w, styles.LabelStyle.Render(row.Label)+row.Value)
	}
	if url := item.OpenURL(); url != "" {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, styles.DimStyle.Render(url))
	}
	return nil
}

// history prints remembered search terms, newest first
func (p *printer) history(entries []domain.HistoryEntry) error {
	if p.json {
		if entries == nil {
			entries = []domain.HistoryEntry{}
		}
		return p.emit(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(p.w, styles.DimStyle.Render("No recent searches"))
		return nil
	}
	t := p.newTable("TERM", "SEARCHES", "RESULTS", "LAST USED")
	for _, e := range entries {
		t.Row(e.Term, strconv.Itoa(e.Uses), strconv.Itoa(e.ResultCount), e.LastUsed.Local().Format(time.DateTime))
	}
	fmt.Fprintln(p.w, t.Render())
	return nil
}
