package predicate

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/occfilter/internal/param"
	"github.com/roach88/occfilter/internal/validate"
)

func must[T Predicate](p T, err error) T {
	if err != nil {
		panic(err)
	}
	return p
}

func requireCode(t *testing.T, err error, code validate.Code) {
	t.Helper()
	require.Error(t, err)
	got, ok := validate.CodeOf(err)
	require.True(t, ok, "not a validation error: %v", err)
	assert.Equal(t, code, got, err.Error())
}

func TestNewEquals(t *testing.T) {
	p, err := NewEquals(param.Country, "CR")
	require.NoError(t, err)
	assert.Equal(t, KindEquals, p.Kind())
	assert.Equal(t, param.Country, p.Key())
	assert.Equal(t, "CR", p.Value())
	_, set := p.MatchCase()
	assert.False(t, set)

	p, err = NewEquals(param.CatalogNumber, "ABC-1", MatchCase(true))
	require.NoError(t, err)
	mc, set := p.MatchCase()
	assert.True(t, set)
	assert.True(t, mc)

	_, err = NewEquals(param.Year, "nineteen")
	requireCode(t, err, validate.ErrCodeMalformedValue)

	_, err = NewEquals(param.Year, "")
	requireCode(t, err, validate.ErrCodeMalformedValue)

	_, err = NewEquals(param.Geometry, "POINT (1 2)")
	requireCode(t, err, validate.ErrCodeTypeMismatch)

	_, err = NewEquals(param.Parameter{}, "x")
	requireCode(t, err, validate.ErrCodeUnknownParameter)
}

// Every parameter that is neither numeric nor temporal rejects every
// comparison operator, whatever the value.
func TestComparisonRejectsUnorderedKeys(t *testing.T) {
	builders := map[Kind]func(param.Parameter, string) (*Comparison, error){
		KindLessThan:            NewLessThan,
		KindLessThanOrEquals:    NewLessThanOrEquals,
		KindGreaterThan:         NewGreaterThan,
		KindGreaterThanOrEquals: NewGreaterThanOrEquals,
	}
	for _, p := range param.Occurrence.All() {
		if p.Type().Ordered() {
			continue
		}
		for kind, build := range builders {
			for _, v := range []string{"10", "CR", "", "*"} {
				_, err := build(p, v)
				require.Error(t, err, "%s %s %q", kind, p.Name(), v)
				assert.True(t, validate.IsTypeMismatch(err), "%s %s %q: %v", kind, p.Name(), v, err)
			}
		}
	}
}

func TestComparisonAcceptsOrderedKeys(t *testing.T) {
	tests := []struct {
		build func(param.Parameter, string) (*Comparison, error)
		key   param.Parameter
		value string
		kind  Kind
	}{
		{NewLessThan, param.Elevation, "1000", KindLessThan},
		{NewLessThanOrEquals, param.Year, "2000", KindLessThanOrEquals},
		{NewGreaterThan, param.LastInterpreted, "2020-01-01", KindGreaterThan},
		{NewGreaterThanOrEquals, param.EventDate, "1990", KindGreaterThanOrEquals},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			p, err := tt.build(tt.key, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, p.Kind())
			assert.Equal(t, tt.key, p.Key())
			assert.Equal(t, tt.value, p.Value())
		})
	}

	_, err := NewLessThan(param.Month, "13")
	requireCode(t, err, validate.ErrCodeOutOfRange)
}

func TestLikeRejectsNonStringKeys(t *testing.T) {
	_, err := NewLike(param.RecordedBy, "Smith?")
	require.NoError(t, err)

	for _, p := range param.Occurrence.All() {
		_, err := NewLike(p, "A*")
		if p.Type() == param.TypeString {
			assert.False(t, validate.IsTypeMismatch(err), "%s: %v", p.Name(), err)
			continue
		}
		requireCode(t, err, validate.ErrCodeTypeMismatch)
	}
}

func TestLikeOptions(t *testing.T) {
	p, err := NewLike(param.ScientificName, "Puma*", MatchCase(false), ChecklistKey("7ddf754f-d193-4cc9-b351-99906754a03b"))
	require.NoError(t, err)
	mc, set := p.MatchCase()
	assert.True(t, set)
	assert.False(t, mc)
	assert.Equal(t, "7ddf754f-d193-4cc9-b351-99906754a03b", p.ChecklistKey())
}

func TestNullChecksRejectGeometry(t *testing.T) {
	_, err := NewIsNull(param.Geometry)
	requireCode(t, err, validate.ErrCodeTypeMismatch)
	_, err = NewIsNotNull(param.Geometry)
	requireCode(t, err, validate.ErrCodeTypeMismatch)

	n, err := NewIsNull(param.StateProvince)
	require.NoError(t, err)
	assert.Equal(t, param.StateProvince, n.Parameter())

	nn, err := NewIsNotNull(param.RecordedBy)
	require.NoError(t, err)
	assert.Equal(t, param.RecordedBy, nn.Parameter())
}

func TestNewIn(t *testing.T) {
	p, err := NewIn(param.Country, []string{"CR", "dk"})
	require.NoError(t, err)
	assert.Equal(t, []string{"CR", "dk"}, p.Values())

	_, err = NewIn(param.Country, nil)
	requireCode(t, err, validate.ErrCodeEmptyCollection)
	_, err = NewIn(param.Country, []string{})
	requireCode(t, err, validate.ErrCodeEmptyCollection)

	_, err = NewIn(param.Country, []string{"CR", "QQ"})
	requireCode(t, err, validate.ErrCodeMalformedValue)

	_, err = NewIn(param.Geometry, []string{"POINT (1 2)"})
	requireCode(t, err, validate.ErrCodeTypeMismatch)
}

func TestInCopiesValues(t *testing.T) {
	values := []string{"CR", "DK"}
	p := must(NewIn(param.Country, values))
	values[0] = "QQ"
	assert.Equal(t, "CR", p.Values()[0])

	out := p.Values()
	out[1] = "QQ"
	assert.Equal(t, "DK", p.Values()[1])
}

func TestNewRange(t *testing.T) {
	p, err := NewRange(param.Year, RangeValue{Gte: "1990", Lt: "2000"})
	require.NoError(t, err)
	assert.Equal(t, RangeValue{Gte: "1990", Lt: "2000"}, p.Value())

	_, err = NewRange(param.EventDate, RangeValue{Gt: "2000-01"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		key   param.Parameter
		value RangeValue
		code  validate.Code
	}{
		{"string key", param.ScientificName, RangeValue{Gte: "a"}, validate.ErrCodeTypeMismatch},
		{"no bounds", param.Year, RangeValue{}, validate.ErrCodeMalformedValue},
		{"gte and gt", param.Year, RangeValue{Gte: "1", Gt: "2"}, validate.ErrCodeMalformedValue},
		{"lte and lt", param.Year, RangeValue{Lte: "1", Lt: "2"}, validate.ErrCodeMalformedValue},
		{"range bound", param.Year, RangeValue{Gte: "1,2"}, validate.ErrCodeMalformedValue},
		{"wildcard bound", param.Year, RangeValue{Lt: "*"}, validate.ErrCodeMalformedValue},
		{"bad bound", param.Year, RangeValue{Lt: "soon"}, validate.ErrCodeMalformedValue},
		{"latitude bound", param.DecimalLatitude, RangeValue{Lte: "95"}, validate.ErrCodeOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRange(tt.key, tt.value)
			requireCode(t, err, tt.code)
		})
	}
}

func TestNewWithinIsLenient(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	ok, err := NewWithin("POINT (30 10)")
	require.NoError(t, err)
	assert.NoError(t, ok.GeometryError())
	assert.Empty(t, buf.String())

	const trailingComma = "POLYGON ((30 10, 10 20, 20 40, 40 40, 30 10,))"
	w, err := NewWithin(trailingComma)
	require.NoError(t, err)
	assert.Equal(t, trailingComma, w.Geometry())
	require.Error(t, w.GeometryError())
	assert.True(t, validate.IsMalformedValue(w.GeometryError()))
	assert.Contains(t, buf.String(), "within geometry failed validation")

	_, err = NewWithin("  ")
	requireCode(t, err, validate.ErrCodeMalformedValue)
}

func TestNewGeoDistance(t *testing.T) {
	p, err := NewGeoDistance("10", "20", "5km")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, p.Circle().Distance().Meters())
	assert.Equal(t, "10", p.Latitude())
	assert.Equal(t, "20", p.Longitude())
	assert.Equal(t, "5km", p.Distance())

	_, err = NewGeoDistance("91", "10", "5km")
	requireCode(t, err, validate.ErrCodeOutOfRange)
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "GEO_DISTANCE", ve.Param)

	_, err = NewGeoDistance("10", "10", "far")
	requireCode(t, err, validate.ErrCodeMalformedValue)
}

func TestCompoundConstructors(t *testing.T) {
	a := must(NewEquals(param.Country, "CR"))
	b := must(NewGreaterThanOrEquals(param.Year, "1990"))

	and, err := NewAnd(a, b)
	require.NoError(t, err)
	assert.Equal(t, []Predicate{a, b}, and.Predicates())

	or, err := NewOr(b, a)
	require.NoError(t, err)
	assert.Equal(t, []Predicate{b, a}, or.Predicates())

	_, err = NewAnd()
	requireCode(t, err, validate.ErrCodeEmptyCollection)
	_, err = NewOr()
	requireCode(t, err, validate.ErrCodeEmptyCollection)

	_, err = NewAnd(a, nil)
	requireCode(t, err, validate.ErrCodeMalformedValue)

	var typedNil *Equals
	_, err = NewOr(typedNil)
	requireCode(t, err, validate.ErrCodeMalformedValue)
}

func TestNotKeepsDoubleNegation(t *testing.T) {
	leaf := must(NewEquals(param.Country, "CR"))
	inner := must(NewNot(leaf))
	outer, err := NewNot(inner)
	require.NoError(t, err)
	assert.Same(t, inner, outer.Predicate())

	_, err = NewNot(nil)
	requireCode(t, err, validate.ErrCodeMalformedValue)
}

func TestTextPredicates(t *testing.T) {
	fts, err := NewFullTextSearch("puma")
	require.NoError(t, err)
	assert.Equal(t, "puma", fts.Query())

	_, err = NewFullTextSearch(" ")
	requireCode(t, err, validate.ErrCodeMalformedValue)

	raw, err := NewRawQuery("year > 1900")
	require.NoError(t, err)
	assert.Equal(t, "year > 1900", raw.SQL())
}

func TestPolicy(t *testing.T) {
	for _, k := range Kinds {
		want := Strict
		if k == KindWithin {
			want = Lenient
		}
		assert.Equal(t, want, Policy(k), string(k))
	}
	assert.Equal(t, "lenient", Lenient.String())
	assert.Equal(t, "strict", Strict.String())
}

func TestZeroValueNodesAreRejected(t *testing.T) {
	zero := []Predicate{
		&Equals{}, &Like{}, &Comparison{}, &Range{}, &In{}, &IsNull{}, &IsNotNull{},
		&Within{}, &GeoDistance{}, &Not{}, &And{}, &Or{}, &FullTextSearch{},
	}
	valid := must(NewEquals(param.Country, "CR"))
	for _, z := range zero {
		t.Run(fmt.Sprintf("%T", z), func(t *testing.T) {
			_, err := NewAnd(valid, z)
			requireCode(t, err, validate.ErrCodeMalformedValue)
			_, err = NewOr(z)
			requireCode(t, err, validate.ErrCodeMalformedValue)
			_, err = NewNot(z)
			requireCode(t, err, validate.ErrCodeMalformedValue)
			_, err = Encode(z)
			requireCode(t, err, validate.ErrCodeMalformedValue)
			_, err = Marshal(z)
			require.Error(t, err)
		})
	}

	// RawQuery has no required field; its zero value is NewRawQuery("").
	raw, err := NewRawQuery("")
	require.NoError(t, err)
	assert.True(t, Equal(raw, &RawQuery{}))
	_, err = NewNot(&RawQuery{})
	require.NoError(t, err)
}
