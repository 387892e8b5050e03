// Package store defines persistence for the question/answer corpus backing
// the similarity fallback. The logic knowledge base is deliberately not
// persisted; the corpus is static input data.
package store

import "context"

// QAPair is one curated question with its canned answer.
type QAPair struct {
	ID       int64
	Question string
	Answer   string
}

// Store is the interface for persisting and reading the Q/A corpus.
type Store interface {
	Close() error

	// UpsertPair inserts a pair or replaces the answer of an existing
	// question.
	UpsertPair(ctx context.Context, p QAPair) error

	// AllPairs returns every pair, ordered by ID.
	AllPairs(ctx context.Context) ([]QAPair, error)

	// Count returns the number of stored pairs.
	Count(ctx context.Context) (int64, error)
}
