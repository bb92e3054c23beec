// Package ledger records which article URLs have already been processed so
// repeated runs never render the same article twice.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS processed_urls (
	url TEXT PRIMARY KEY,
	processed_at INTEGER NOT NULL
);
`

// Store persists processed URLs in SQLite. A nil *Store is valid and reports
// every URL as new, which is the documented fallback when the ledger cannot
// be opened.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// CheckAndInsert atomically records url and reports whether it was new.
// The single INSERT OR IGNORE makes check+insert one operation, so two
// concurrent runs cannot both claim the same URL.
func (s *Store) CheckAndInsert(ctx context.Context, url string, now time.Time) (bool, error) {
	if s == nil {
		return true, nil
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO processed_urls (url, processed_at) VALUES (?, ?)`,
		url, now.Unix())
	if err != nil {
		return false, fmt.Errorf("ledger insert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("ledger insert result: %w", err)
	}
	return n > 0, nil
}

// Seen reports whether url is already recorded.
func (s *Store) Seen(ctx context.Context, url string) (bool, error) {
	if s == nil {
		return false, nil
	}
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM processed_urls WHERE url = ?`, url).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ledger lookup: %w", err)
	}
	return true, nil
}
