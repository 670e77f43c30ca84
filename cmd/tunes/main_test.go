package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/tunes/internal/adapter"
	"github.com/mmcdole/tunes/internal/catalog"
	"github.com/mmcdole/tunes/internal/domain"
	"github.com/mmcdole/tunes/internal/history"
)

type fakeSource struct {
	total   int
	err     error
	queries []domain.SearchQuery
}

func (f *fakeSource) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResultItem, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	var items []domain.SearchResultItem
	for i := q.Offset; i < f.total && i < q.Offset+q.Limit; i++ {
		items = append(items, f.item(i))
	}
	return items, nil
}

func (f *fakeSource) Lookup(ctx context.Context, id string) (*domain.SearchResultItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	var i int
	if _, err := fmt.Sscanf(id, "%d", &i); err != nil || i >= f.total {
		return nil, domain.ErrItemNotFound
	}
	item := f.item(i)
	return &item, nil
}

func (f *fakeSource) item(i int) domain.SearchResultItem {
	price := 0.99
	return domain.SearchResultItem{
		ID:          fmt.Sprint(i),
		Title:       fmt.Sprintf("Song %d", i),
		Kind:        domain.KindSong,
		ArtistName:  "Band",
		Price:       &price,
		Currency:    "USD",
		ReleaseDate: "2001-02-03T08:00:00Z",
		Genre:       "Rock",
	}
}

func newTestApp(t *testing.T, src *fakeSource) (*app, *bytes.Buffer) {
	t.Helper()
	store, err := history.Open("", 10, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	out := &bytes.Buffer{}
	return &app{
		cfg:        adapter.DefaultConfig(),
		logger:     adapter.NullLogger(),
		catalog:    src,
		history:    store,
		out:        out,
		configPath: t.TempDir(),
	}, out
}

func execute(a *app, args ...string) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.out)
	cmd.SetErr(&bytes.Buffer{})
	return cmd.ExecuteContext(context.Background())
}

func TestSearch_JSONAcrossPages(t *testing.T) {
	src := &fakeSource{total: 5}
	a, out := newTestApp(t, src)

	require.NoError(t, execute(a, "search", "--limit", "2", "--page", "2", "yellow", "submarine"))

	var rows []resultRow
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 4)
	assert.Equal(t, "Song 0", rows[0].Title)
	assert.Equal(t, "song", rows[0].Type)
	assert.Equal(t, "0.99", rows[0].Price)
	assert.Equal(t, "2001-02-03", rows[0].ReleaseDate)

	require.Len(t, src.queries, 2)
	assert.Equal(t, "yellow submarine", src.queries[0].Term)
	assert.Equal(t, 0, src.queries[0].Offset)
	assert.Equal(t, 2, src.queries[1].Offset)
}

func TestSearch_StopsWhenCatalogRunsDry(t *testing.T) {
	src := &fakeSource{total: 3}
	a, out := newTestApp(t, src)

	require.NoError(t, execute(a, "search", "--limit", "2", "--page", "5", "abc"))

	var rows []resultRow
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	assert.Len(t, rows, 3)
	assert.Len(t, src.queries, 3, "the empty third page ends the run")
}

func TestSearch_Filters(t *testing.T) {
	src := &fakeSource{total: 1}
	a, _ := newTestApp(t, src)

	require.NoError(t, execute(a, "search", "--media", "movie", "--entity", "movie", "--country", "gb", "alien"))

	require.Len(t, src.queries, 1)
	q := src.queries[0]
	assert.Equal(t, "movie", q.Media)
	assert.Equal(t, "movie", q.Entity)
	assert.Equal(t, "gb", q.Country)
	assert.Equal(t, 25, q.Limit)
}

func TestSearch_JQ(t *testing.T) {
	a, out := newTestApp(t, &fakeSource{total: 2})

	require.NoError(t, execute(a, "search", "--jq", ".[].title", "abc"))
	assert.Equal(t, "Song 0\nSong 1\n", out.String())
}

func TestSearch_InvalidJQ(t *testing.T) {
	a, _ := newTestApp(t, &fakeSource{total: 2})

	err := execute(a, "search", "--jq", ".[", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")
}

func TestSearch_NoResults(t *testing.T) {
	a, out := newTestApp(t, &fakeSource{})

	require.NoError(t, execute(a, "search", "zzzznoresults"))
	assert.Equal(t, "[]", strings.TrimSpace(out.String()))

	entries, err := a.history.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, entries, "empty searches are not remembered")
}

func TestSearch_FetchError(t *testing.T) {
	a, _ := newTestApp(t, &fakeSource{err: errors.New("connection refused")})

	err := execute(a, "search", "abc")
	require.Error(t, err)
	assert.Equal(t, catalog.MsgFetchFailed, err.Error())
}

func TestSearch_RequiresTerm(t *testing.T) {
	a, _ := newTestApp(t, &fakeSource{})

	assert.Error(t, execute(a, "search"))
	assert.Error(t, execute(a, "search", "   "))
	assert.Error(t, execute(a, "search", "--page", "0", "abc"))
}

func TestHistory_RecordListClear(t *testing.T) {
	a, out := newTestApp(t, &fakeSource{total: 30})

	require.NoError(t, execute(a, "search", "abc"))
	out.Reset()

	require.NoError(t, execute(a, "history", "--json"))
	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal(out.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "abc", entries[0].Term)
	assert.Equal(t, 25, entries[0].ResultCount)

	out.Reset()
	require.NoError(t, execute(a, "history", "--clear"))
	assert.Contains(t, out.String(), "History cleared")

	remaining, err := a.history.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestHistory_Disabled(t *testing.T) {
	a, _ := newTestApp(t, &fakeSource{})
	a.history = nil
	a.cfg.History.Enabled = false

	assert.ErrorIs(t, execute(a, "history"), errNoHistory)
}

func TestShow(t *testing.T) {
	a, out := newTestApp(t, &fakeSource{total: 3})

	require.NoError(t, execute(a, "show", "2"))

	var params domain.DetailParams
	require.NoError(t, json.Unmarshal(out.Bytes(), &params))
	assert.Equal(t, domain.DetailParams{
		Title:       "Song 2",
		Type:        "song",
		Price:       "0.99",
		Currency:    "USD",
		Artist:      "Band",
		ReleaseDate: "2001-02-03",
		Genre:       "Rock",
	}, params)
}

func TestShow_NotFound(t *testing.T) {
	a, _ := newTestApp(t, &fakeSource{total: 1})

	err := execute(a, "show", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog item with id 99")
}

func TestVersion(t *testing.T) {
	a, out := newTestApp(t, &fakeSource{})

	require.NoError(t, execute(a, "version"))
	assert.Equal(t, "tunes dev\n", out.String())
}

func TestConfigInit(t *testing.T) {
	a, out := newTestApp(t, &fakeSource{})
	file := filepath.Join(a.configPath, "config.yaml")

	require.NoError(t, execute(a, "config", "path"))
	assert.Equal(t, file+"\n", out.String())

	require.NoError(t, execute(a, "config", "init"))
	_, err := os.Stat(file)
	require.NoError(t, err)

	assert.Error(t, execute(a, "config", "init"), "refuses to overwrite")
	assert.NoError(t, execute(a, "config", "init", "--force"))
}

func TestPrinter_Table(t *testing.T) {
	out := &bytes.Buffer{}
	p := &printer{w: out, width: 100}
	src := &fakeSource{total: 2}

	rows := []resultRow{newResultRow(src.item(0)), newResultRow(src.item(1))}
	require.NoError(t, p.results(rows, catalog.FooterNoMore))

	text := out.String()
	assert.Contains(t, text, "TITLE")
	assert.Contains(t, text, "Song 1")
	assert.Contains(t, text, "USD 0.99")
	assert.Contains(t, text, catalog.FooterNoMore)
}

func TestPrinter_Detail(t *testing.T) {
	out := &bytes.Buffer{}
	p := &printer{w: out, width: 100}
	item := (&fakeSource{}).item(0)

	require.NoError(t, p.detail(catalog.DetailFor(item), item))
	for _, label := range []string{"Type", "Price", "Artist", "Release Date", "Genre"} {
		assert.Contains(t, out.String(), label)
	}
}

func TestNewPrinter_NonTerminalIsJSON(t *testing.T) {
	assert.True(t, newPrinter(&bytes.Buffer{}, false, "").json)
}
