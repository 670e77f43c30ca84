package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns strictly increasing times
func fakeClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func openTemp(t *testing.T, limit int) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hist", "history.db")
	s, err := Open(path, limit, nil)
	require.NoError(t, err)
	s.now = fakeClock()
	t.Cleanup(func() { s.Close() })
	return s, path
}

func terms(t *testing.T, s *Store) []string {
	t.Helper()
	entries, err := s.Recent(0)
	require.NoError(t, err)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Term
	}
	return out
}

func TestRecord_NewestFirst(t *testing.T) {
	s, _ := openTemp(t, 0)

	require.NoError(t, s.Record("jazz", 25))
	require.NoError(t, s.Record("beatles", 10))
	require.NoError(t, s.Record("  Jazz ", 30))

	assert.Equal(t, []string{"Jazz", "beatles"}, terms(t, s))

	entries, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Uses)
	assert.Equal(t, 30, entries[0].ResultCount)
}

func TestRecord_IgnoresBlank(t *testing.T) {
	s, _ := openTemp(t, 0)
	require.NoError(t, s.Record("   ", 0))
	assert.Empty(t, terms(t, s))
}

func TestRecord_PrunesOldest(t *testing.T) {
	s, _ := openTemp(t, 2)

	require.NoError(t, s.Record("a", 1))
	require.NoError(t, s.Record("b", 1))
	require.NoError(t, s.Record("c", 1))

	assert.Equal(t, []string{"c", "b"}, terms(t, s))
}

func TestPersistsAcrossOpen(t *testing.T) {
	s, path := openTemp(t, 0)
	require.NoError(t, s.Record("miles davis", 12))
	require.NoError(t, s.Record("coltrane", 7))
	require.NoError(t, s.Close())

	reopened, err := Open(path, 0, nil)
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, []string{"coltrane", "miles davis"}, terms(t, reopened))
}

func TestDeleteAndClear(t *testing.T) {
	s, path := openTemp(t, 0)
	require.NoError(t, s.Record("a", 1))
	require.NoError(t, s.Record("b", 1))
	require.NoError(t, s.Record("c", 1))

	require.NoError(t, s.Delete("B"))
	require.NoError(t, s.Delete("missing"))
	assert.Equal(t, []string{"c", "a"}, terms(t, s))

	require.NoError(t, s.Clear())
	assert.Empty(t, terms(t, s))
	require.NoError(t, s.Close())

	reopened, err := Open(path, 0, nil)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Empty(t, terms(t, reopened))
}

func TestMemoryOnly(t *testing.T) {
	s, err := Open("", 0, nil)
	require.NoError(t, err)
	s.now = fakeClock()

	require.NoError(t, s.Record("x", 1))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Record("y", 1))

	assert.Equal(t, []string{"y"}, terms(t, s))
	assert.NoError(t, s.Close())
}

func TestSuggest(t *testing.T) {
	s, _ := openTemp(t, 0)
	for _, term := range []string{"jazz", "jazz piano", "beatles", "blue jazz", "jaz"} {
		require.NoError(t, s.Record(term, 1))
	}

	got := s.Suggest("jaz", 0)
	names := make([]string, len(got))
	for i, e := range got {
		names[i] = e.Term
	}

	assert.Equal(t, "jazz", names[0], "closest match first")
	assert.NotContains(t, names, "jaz", "input itself is not suggested")
	assert.NotContains(t, names, "beatles")
	assert.ElementsMatch(t, []string{"jazz", "jazz piano", "blue jazz"}, names)

	assert.Len(t, s.Suggest("jaz", 1), 1)
}

func TestSuggest_EmptyInputIsRecent(t *testing.T) {
	s, _ := openTemp(t, 0)
	require.NoError(t, s.Record("a", 1))
	require.NoError(t, s.Record("b", 1))

	got := s.Suggest("", 1)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Term)
}
