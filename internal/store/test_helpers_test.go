package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/occfilter/internal/download"
	"github.com/roach88/occfilter/internal/testutil"
)

// createTestStore opens a fresh database under t.TempDir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRequest builds a request filtering on one country.
func createTestRequest(t *testing.T, creator, country string) *download.Request {
	t.Helper()
	return testutil.Request(t, creator, testutil.Country(t, country))
}
