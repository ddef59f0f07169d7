package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/occfilter/internal/download"
	"github.com/roach88/occfilter/internal/paging"
	"github.com/roach88/occfilter/internal/predicate"
)

// Entry is one stored request.
type Entry struct {
	Seq     int64
	Key     string
	Request *download.Request
}

// Get returns the request stored under key.
// Returns sql.ErrNoRows if not found.
func (s *Store) Get(ctx context.Context, key string) (*download.Request, error) {
	var body string
	err := s.db.QueryRowContext(ctx, `
		SELECT request FROM download_requests WHERE key = ?
	`, key).Scan(&body)
	if err != nil {
		return nil, err
	}
	return unmarshalRequest(body)
}

// List returns one page of requests in insertion order. last reports that
// no rows follow the page.
func (s *Store) List(ctx context.Context, page paging.Page) ([]Entry, bool, error) {
	if page.Limit <= 0 {
		return nil, false, fmt.Errorf("list: limit must be positive, got %d", page.Limit)
	}
	// One extra row tells us whether another page exists.
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, key, request
		FROM download_requests
		ORDER BY seq ASC
		LIMIT ? OFFSET ?
	`, page.Limit+1, page.Offset)
	if err != nil {
		return nil, false, fmt.Errorf("query requests: %w", err)
	}
	entries, err := scanEntries(rows)
	if err != nil {
		return nil, false, err
	}
	if len(entries) > page.Limit {
		return entries[:page.Limit], false, nil
	}
	return entries, true, nil
}

// Fetcher adapts List to the paging contract.
func (s *Store) Fetcher() paging.Fetcher[Entry] {
	return s.List
}

// FindByPredicate returns every stored request whose predicate is
// structurally equal to p, in insertion order.
func (s *Store) FindByPredicate(ctx context.Context, p predicate.Predicate) ([]Entry, error) {
	ph, err := predicateHash(p)
	if err != nil {
		return nil, err
	}
	if !ph.Valid {
		return []Entry{}, nil
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, key, request
		FROM download_requests
		WHERE predicate_hash = ?
		ORDER BY seq ASC
	`, ph.String)
	if err != nil {
		return nil, fmt.Errorf("query requests by predicate: %w", err)
	}
	return scanEntries(rows)
}

// Count returns the number of stored requests.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM download_requests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return n, nil
}

// scanEntries drains and closes rows. Returns an empty slice, not nil,
// when there are no rows.
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e    Entry
			body string
		)
		if err := rows.Scan(&e.Seq, &e.Key, &body); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		req, err := unmarshalRequest(body)
		if err != nil {
			return nil, fmt.Errorf("request %s: %w", e.Key, err)
		}
		e.Request = req
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return entries, nil
}
