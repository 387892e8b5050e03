package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/sortwise/sortwise/pkg/sortwise/internalerr"
	"github.com/sortwise/sortwise/pkg/sortwise/store"
)

// sqliteStore implements store.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite Q/A corpus with WAL mode enabled and the schema
// initialized.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS qa_pairs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	question TEXT UNIQUE NOT NULL,
	answer TEXT NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertPair inserts a pair or replaces the answer of an existing question.
func (s *sqliteStore) UpsertPair(ctx context.Context, p store.QAPair) error {
	if p.Question == "" {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO qa_pairs (question, answer) VALUES (?, ?)
ON CONFLICT(question) DO UPDATE SET answer = excluded.answer`,
		p.Question, p.Answer)
	return err
}

// AllPairs returns every pair ordered by ID.
func (s *sqliteStore) AllPairs(ctx context.Context) ([]store.QAPair, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, question, answer FROM qa_pairs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.QAPair
	for rows.Next() {
		var p store.QAPair
		if err := rows.Scan(&p.ID, &p.Question, &p.Answer); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Count returns the number of stored pairs.
func (s *sqliteStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM qa_pairs`).Scan(&n)
	return n, err
}
