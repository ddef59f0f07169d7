package store

import (
	"database/sql"
	"fmt"

	"github.com/roach88/occfilter/internal/download"
	"github.com/roach88/occfilter/internal/predicate"
)

// marshalRequest converts a request to canonical JSON TEXT for storage.
func marshalRequest(req *download.Request) (string, error) {
	data, err := download.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	return string(data), nil
}

// unmarshalRequest parses stored JSON back through the validating decoder.
func unmarshalRequest(data string) (*download.Request, error) {
	req, err := download.Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal request: %w", err)
	}
	return req, nil
}

// predicateHash is NULL for requests without a predicate.
func predicateHash(p predicate.Predicate) (sql.NullString, error) {
	if p == nil {
		return sql.NullString{}, nil
	}
	h, err := predicate.Hash(p)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("hash predicate: %w", err)
	}
	return sql.NullString{String: h, Valid: true}, nil
}
