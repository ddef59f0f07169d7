package testutil

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/occfilter/internal/predicate"
)

func TestSequence(t *testing.T) {
	var s Sequence
	assert.EqualValues(t, 1, s.Next())
	assert.EqualValues(t, 2, s.Next())
	assert.EqualValues(t, 2, s.Current())
	s.Reset()
	assert.EqualValues(t, 1, s.Next())
}

func TestSequence_Concurrent(t *testing.T) {
	var s Sequence
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Next()
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 50, s.Current())
}

func TestUUIDSource_Deterministic(t *testing.T) {
	a := NewUUIDSource("datasets")
	b := NewUUIDSource("datasets")
	other := NewUUIDSource("orgs")

	first := a.Next()
	assert.Equal(t, first, b.Next())
	assert.NotEqual(t, first, other.Next())
	assert.NotEqual(t, first, a.Next())

	_, err := uuid.Parse(first)
	require.NoError(t, err)
	assert.Len(t, first, 36)
}

func TestNested(t *testing.T) {
	for _, depth := range []int{1, 2, 5} {
		assert.Equal(t, depth, predicate.Depth(Nested(t, depth)))
	}
}

func TestBuilders(t *testing.T) {
	p := And(t, Country(t, "CR"), Country(t, "DK"))
	assert.Equal(t, predicate.KindAnd, p.Kind())

	req := Request(t, "alice", p)
	assert.Equal(t, "alice", req.Creator())

	path := WriteFile(t, t.TempDir(), "p.json", "{}")
	assert.FileExists(t, path)
}

func TestMustPanics(t *testing.T) {
	assert.Panics(t, func() { Must(predicate.NewNot(nil)) })
	assert.NotPanics(t, func() { Must(predicate.NewFullTextSearch("puma")) })
}
