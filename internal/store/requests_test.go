package store

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/occfilter/internal/download"
	"github.com/roach88/occfilter/internal/paging"
	"github.com/roach88/occfilter/internal/param"
	"github.com/roach88/occfilter/internal/predicate"
	"github.com/roach88/occfilter/internal/testutil"
)

func TestPutIsIdempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	req := createTestRequest(t, "alice", "CR")

	key, inserted, err := s.Put(ctx, req)
	require.NoError(t, err)
	assert.True(t, inserted)

	want, err := req.Key()
	require.NoError(t, err)
	assert.Equal(t, want, key)

	again, inserted, err := s.Put(ctx, createTestRequest(t, "alice", "CR"))
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, key, again)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestGet(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	req := createTestRequest(t, "alice", "DK")

	key, _, err := s.Put(ctx, req)
	require.NoError(t, err)

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, req.Creator(), got.Creator())
	assert.True(t, predicate.Equal(req.Predicate(), got.Predicate()))

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPutRequestWithoutPredicate(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	req, err := download.NewRequest(nil, "alice", []string{"a@example.org"}, true, download.FormatDwCA)
	require.NoError(t, err)

	key, inserted, err := s.Put(ctx, req)
	require.NoError(t, err)
	assert.True(t, inserted)

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got.Predicate())
	assert.Equal(t, []string{"a@example.org"}, got.NotificationAddresses())
}

func TestListPagesInInsertionOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	countries := []string{"CR", "DK", "US", "FR", "DE"}
	for _, c := range countries {
		_, _, err := s.Put(ctx, createTestRequest(t, "alice", c))
		require.NoError(t, err)
	}

	first, last, err := s.List(ctx, paging.Page{Offset: 0, Limit: 2})
	require.NoError(t, err)
	assert.False(t, last)
	require.Len(t, first, 2)
	assert.Less(t, first[0].Seq, first[1].Seq)

	tail, last, err := s.List(ctx, paging.Page{Offset: 4, Limit: 2})
	require.NoError(t, err)
	assert.True(t, last)
	require.Len(t, tail, 1)

	all, err := paging.Collect(ctx, s.Fetcher(), 2)
	require.NoError(t, err)
	require.Len(t, all, len(countries))
	for i, e := range all {
		eq := e.Request.Predicate().(*predicate.Equals)
		assert.Equal(t, countries[i], eq.Value())
	}

	_, _, err = s.List(ctx, paging.Page{Limit: 0})
	assert.Error(t, err)
}

func TestListEmpty(t *testing.T) {
	s := createTestStore(t)
	entries, last, err := s.List(context.Background(), paging.Page{Limit: 10})
	require.NoError(t, err)
	assert.True(t, last)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestFindByPredicate(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	for _, creator := range []string{"alice", "bob"} {
		_, _, err := s.Put(ctx, createTestRequest(t, creator, "CR"))
		require.NoError(t, err)
	}
	_, _, err := s.Put(ctx, createTestRequest(t, "alice", "DK"))
	require.NoError(t, err)

	query := createTestRequest(t, "nobody", "CR").Predicate()
	found, err := s.FindByPredicate(ctx, query)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "alice", found[0].Request.Creator())
	assert.Equal(t, "bob", found[1].Request.Creator())

	none, err := s.FindByPredicate(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDelete(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	key, _, err := s.Put(ctx, createTestRequest(t, "alice", "CR"))
	require.NoError(t, err)

	removed, err := s.Delete(ctx, key)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Delete(ctx, key)
	require.NoError(t, err)
	assert.False(t, removed)
}

// A row whose stored predicate no longer validates fails on read.
func TestGetRejectsCorruptRow(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO download_requests (key, creator, format, request)
		VALUES ('bad', 'alice', 'DWCA', '{"creator":"alice","predicate":{"type":"equals","key":"YEAR","value":"x"}}')
	`)
	require.NoError(t, err)

	_, err = s.Get(ctx, "bad")
	assert.Error(t, err)

	_, _, err = s.List(ctx, paging.Page{Limit: 5})
	assert.Error(t, err)
}

func TestPutCompoundPredicates(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	datasets := testutil.NewUUIDSource("store")
	var creators testutil.Sequence

	var keys []string
	for range 3 {
		p := testutil.And(t,
			testutil.Country(t, "CR"),
			testutil.Equals(t, param.DatasetKey, datasets.Next()),
			testutil.Nested(t, 4),
		)
		req := testutil.Request(t, fmt.Sprintf("user-%d", creators.Next()), p)
		key, inserted, err := s.Put(ctx, req)
		require.NoError(t, err)
		require.True(t, inserted)
		keys = append(keys, key)
	}
	assert.EqualValues(t, 3, creators.Current())

	for i, key := range keys {
		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("user-%d", i+1), got.Creator())
		assert.Equal(t, 5, predicate.Depth(got.Predicate()))
	}

	// Distinct dataset keys make distinct predicates.
	found, err := s.FindByPredicate(ctx, testutil.Country(t, "CR"))
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestPutKeepsRequestsThatDifferOnlyInBytes(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	var keys []string
	for _, name := range []string{"Jose\u0301", "Jos\u00e9"} {
		p, err := predicate.NewEquals(param.RecordedBy, name, predicate.MatchCase(true))
		require.NoError(t, err)
		key, inserted, err := s.Put(ctx, testutil.Request(t, "alice", p))
		require.NoError(t, err)
		assert.True(t, inserted, name)
		keys = append(keys, key)

		got, err := s.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, name, got.Predicate().(*predicate.Equals).Value())
	}
	assert.NotEqual(t, keys[0], keys[1])

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}
