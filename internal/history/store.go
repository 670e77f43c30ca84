// Package history remembers recently submitted search terms
package history

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/tunes/internal/domain"
)

var bucketTerms = []byte("terms")

// DefaultLimit caps the number of remembered terms
const DefaultLimit = 50

// Store implements domain.HistoryStore using BoltDB. Entries are mirrored
// in memory; with an empty path nothing is written to disk.
type Store struct {
	db     *bolt.DB
	limit  int
	logger *slog.Logger

	mu      sync.RWMutex
	entries map[string]domain.HistoryEntry // normalized term -> entry

	now func() time.Time
}

var _ domain.HistoryStore = (*Store)(nil)

// Open opens (or creates) the history database at path
func Open(path string, limit int, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	s := &Store{
		limit:   limit,
		logger:  logger,
		entries: make(map[string]domain.HistoryEntry),
		now:     time.Now,
	}

	if path == "" {
		// Memory-only mode
		return s, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history dir: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketTerms)
		if err != nil {
			return err
		}
		return b.ForEach(func(k, v []byte) error {
			var e domain.HistoryEntry
			if err := json.Unmarshal(v, &e); err != nil {
				logger.Warn("dropping unreadable history entry", "key", string(k), "error", err)
				return nil
			}
			s.entries[string(k)] = e
			return nil
		})
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	s.db = db
	logger.Debug("history opened", "path", path, "entries", len(s.entries))
	return s, nil
}

// Close releases the database
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Record notes that term was searched and produced resultCount results
func (s *Store) Record(term string, resultCount int) error {
	key := normalize(term)
	if key == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entries[key]
	e.Term = strings.TrimSpace(term)
	e.LastUsed = s.now()
	e.Uses++
	e.ResultCount = resultCount

	if err := s.put(key, e); err != nil {
		return fmt.Errorf("failed to record %q: %w", term, err)
	}
	s.entries[key] = e

	return s.prune()
}

// Recent returns entries newest first, at most limit (all when limit <= 0)
func (s *Store) Recent(limit int) ([]domain.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recent(limit), nil
}

func (s *Store) recent(limit int) []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].LastUsed.Equal(out[j].LastUsed) {
			return out[i].LastUsed.After(out[j].LastUsed)
		}
		return out[i].Term < out[j].Term
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Suggest returns remembered terms fuzzily matching input, closest first.
// An empty input yields the most recent terms.
func (s *Store) Suggest(input string, limit int) []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	input = strings.TrimSpace(input)
	if input == "" {
		return s.recent(limit)
	}

	terms := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		terms = append(terms, e.Term)
	}

	matches := fuzzy.RankFindFold(input, terms)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return s.entries[normalize(matches[i].Target)].LastUsed.After(
			s.entries[normalize(matches[j].Target)].LastUsed)
	})

	out := make([]domain.HistoryEntry, 0, len(matches))
	for _, m := range matches {
		e := s.entries[normalize(m.Target)]
		// the current input itself is not a useful suggestion
		if normalize(e.Term) == normalize(input) {
			continue
		}
		out = append(out, e)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// Delete forgets a single term
func (s *Store) Delete(term string) error {
	key := normalize(term)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	if err := s.remove(key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", term, err)
	}
	delete(s.entries, key)
	return nil
}

// Clear forgets every term
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			if err := tx.DeleteBucket(bucketTerms); err != nil && err != bolt.ErrBucketNotFound {
				return err
			}
			_, err := tx.CreateBucket(bucketTerms)
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
	}

	s.entries = make(map[string]domain.HistoryEntry)
	return nil
}

// prune drops the oldest entries beyond the limit. Caller holds mu.
func (s *Store) prune() error {
	if len(s.entries) <= s.limit {
		return nil
	}
	ordered := s.recent(0)
	for _, e := range ordered[s.limit:] {
		key := normalize(e.Term)
		if err := s.remove(key); err != nil {
			return fmt.Errorf("failed to prune %q: %w", e.Term, err)
		}
		delete(s.entries, key)
	}
	return nil
}

// === Generic helpers ===

func (s *Store) put(key string, e domain.HistoryEntry) error {
	if s.db == nil {
		return nil
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTerms).Put([]byte(key), data)
	})
}

func (s *Store) remove(key string) error {
	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTerms).Delete([]byte(key))
	})
}
