package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/occfilter/internal/param"
)

func TestWalkVisitsParentsFirst(t *testing.T) {
	tree := must(NewAnd(
		must(NewEquals(param.Country, "CR")),
		must(NewNot(must(NewIsNull(param.Depth)))),
	))

	var kinds []Kind
	Walk(tree, func(p Predicate) bool {
		kinds = append(kinds, p.Kind())
		return true
	})
	assert.Equal(t, []Kind{KindAnd, KindEquals, KindNot, KindIsNull}, kinds)

	kinds = nil
	Walk(tree, func(p Predicate) bool {
		kinds = append(kinds, p.Kind())
		return p.Kind() != KindNot
	})
	assert.Equal(t, []Kind{KindAnd, KindEquals, KindNot}, kinds)
}

func TestDepth(t *testing.T) {
	leaf := must(NewEquals(param.Country, "CR"))
	assert.Equal(t, 1, Depth(leaf))
	assert.Equal(t, 0, Depth(nil))

	tree := must(NewOr(leaf, must(NewNot(must(NewNot(leaf))))))
	assert.Equal(t, 4, Depth(tree))
}

func TestParameters(t *testing.T) {
	tree := must(NewAnd(
		must(NewEquals(param.Country, "CR")),
		must(NewIn(param.Country, []string{"DK"})),
		must(NewWithin("POINT (1 2)")),
		must(NewFullTextSearch("puma")),
		must(NewGreaterThan(param.Year, "2000")),
	))
	assert.Equal(t, []param.Parameter{param.Country, param.Geometry, param.Year}, Parameters(tree))
}

func TestKey(t *testing.T) {
	k, ok := Key(must(NewGeoDistance("1", "2", "3km")))
	require.True(t, ok)
	assert.Equal(t, param.GeoDistance, k)

	_, ok = Key(must(NewRawQuery("x")))
	assert.False(t, ok)
}

func TestEqualIsStructural(t *testing.T) {
	a := must(NewEquals(param.Country, "CR"))
	b := must(NewEquals(param.Country, "CR"))
	assert.NotSame(t, a, b)
	assert.True(t, Equal(a, b))

	// An explicit matchCase differs from an absent one.
	c := must(NewEquals(param.Country, "CR", MatchCase(false)))
	assert.False(t, Equal(a, c))

	// Child order is significant for equality.
	x := must(NewAnd(a, must(NewIsNull(param.Depth))))
	y := must(NewAnd(must(NewIsNull(param.Depth)), a))
	assert.False(t, Equal(x, y))

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))
}

func TestHashIsStable(t *testing.T) {
	a := must(NewIn(param.Country, []string{"CR", "DK"}))
	b := must(NewIn(param.Country, []string{"CR", "DK"}))
	ha, err := Hash(a)
	require.NoError(t, err)
	hb, err := Hash(b)
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
	assert.Len(t, ha, 64)

	c := must(NewIn(param.Country, []string{"DK", "CR"}))
	hc, err := Hash(c)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hc)
}
