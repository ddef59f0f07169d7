// Package testutil holds fixtures shared by package tests: deterministic
// value sources and builders for predicates and download requests that fail
// the test instead of returning errors.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/occfilter/internal/download"
	"github.com/roach88/occfilter/internal/param"
	"github.com/roach88/occfilter/internal/predicate"
)

// Must returns v and panics if err is non-nil. For static fixtures only.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Equals builds an equals predicate.
func Equals(t testing.TB, key param.Parameter, value string) predicate.Predicate {
	t.Helper()
	p, err := predicate.NewEquals(key, value)
	require.NoError(t, err)
	return p
}

// Country builds COUNTRY = code.
func Country(t testing.TB, code string) predicate.Predicate {
	t.Helper()
	return Equals(t, param.Country, code)
}

// And joins children with AND.
func And(t testing.TB, children ...predicate.Predicate) predicate.Predicate {
	t.Helper()
	p, err := predicate.NewAnd(children...)
	require.NoError(t, err)
	return p
}

// Nested wraps an IS NULL leaf in NOT nodes until the tree has the given
// depth.
func Nested(t testing.TB, depth int) predicate.Predicate {
	t.Helper()
	require.GreaterOrEqual(t, depth, 1)
	var p predicate.Predicate = Must(predicate.NewIsNull(param.Year))
	for range depth - 1 {
		p = Must(predicate.NewNot(p))
	}
	return p
}

// Request builds a SIMPLE_CSV download request without notifications.
func Request(t testing.TB, creator string, p predicate.Predicate) *download.Request {
	t.Helper()
	req, err := download.NewRequest(p, creator, nil, false, download.DefaultFormat)
	require.NoError(t, err)
	return req
}

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
