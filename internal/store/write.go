package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/roach88/occfilter/internal/download"
)

// Put stores req under its content key. Uses ON CONFLICT(key) DO NOTHING,
// so writing an equal request again reports inserted=false and changes
// nothing.
func (s *Store) Put(ctx context.Context, req *download.Request) (key string, inserted bool, err error) {
	if req == nil {
		return "", false, fmt.Errorf("put: nil request")
	}
	key, err = req.Key()
	if err != nil {
		return "", false, fmt.Errorf("put: %w", err)
	}
	body, err := marshalRequest(req)
	if err != nil {
		return "", false, fmt.Errorf("put: %w", err)
	}
	ph, err := predicateHash(req.Predicate())
	if err != nil {
		return "", false, fmt.Errorf("put: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO download_requests (key, creator, format, predicate_hash, request)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING
	`,
		key,
		req.Creator(),
		string(req.Format()),
		ph,
		body,
	)
	if err != nil {
		return "", false, fmt.Errorf("put: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("put: rows affected: %w", err)
	}

	slog.Debug("stored download request", "key", key, "inserted", n > 0)
	return key, n > 0, nil
}

// Delete removes the request with the given key. Deleting a missing key
// is not an error; the result reports whether a row was removed.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM download_requests WHERE key = ?`, key)
	if err != nil {
		return false, fmt.Errorf("delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete: rows affected: %w", err)
	}
	return n > 0, nil
}
