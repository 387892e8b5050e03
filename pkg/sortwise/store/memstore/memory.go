package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/sortwise/sortwise/pkg/sortwise/store"
)

// Store is an in-memory implementation of store.Store for tests and
// corpus-less setups.
type Store struct {
	mu            sync.RWMutex
	nextID        int64
	pairs         map[int64]store.QAPair
	questionIndex map[string]int64
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		nextID:        1,
		pairs:         make(map[int64]store.QAPair),
		questionIndex: make(map[string]int64),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertPair inserts or updates a pair, keyed by question.
func (s *Store) UpsertPair(ctx context.Context, p store.QAPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.Question == "" {
		return nil
	}

	var id int64
	if existingID, ok := s.questionIndex[p.Question]; ok {
		id = existingID
	} else {
		id = s.nextID
		s.nextID++
		s.questionIndex[p.Question] = id
	}

	p.ID = id
	s.pairs[id] = p
	return nil
}

// AllPairs returns every pair ordered by ID.
func (s *Store) AllPairs(ctx context.Context) ([]store.QAPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.QAPair, 0, len(s.pairs))
	for _, p := range s.pairs {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Count returns the number of stored pairs.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.pairs)), nil
}
