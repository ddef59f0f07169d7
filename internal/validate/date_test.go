package validate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateGranularities(t *testing.T) {
	tests := []struct {
		raw  string
		want Granularity
	}{
		{"1800", GranularityYear},
		{"1800-06", GranularityYearMonth},
		{"1800-06-12", GranularityDate},
		{"1800-06-12T13:14:15", GranularityDateTime},
		{"1800-06-12T13:14:15+02:00", GranularityOffsetDateTime},
		{"1800-06-12T13:14:15-05:30", GranularityOffsetDateTime},
		{"1800-06-12T13:14:15Z", GranularityZonedDateTime},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			d, err := ParseDate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.Granularity())
			assert.Equal(t, tt.raw, d.String())
		})
	}
}

func TestParseDateRejects(t *testing.T) {
	for _, raw := range []string{
		"", "18", "18000", "1800-13", "1800-02-30", "1800-06-12T25:00:00",
		"1800-06-12T13:14", "1800-06-12T13:14:15.5", "1800-06-12 13:14:15",
		"1800-06-12T13:14:15+0200", "yesterday",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseDate(raw)
			assert.True(t, IsMalformedValue(err), "got %v", err)
		})
	}
}

func TestTemporalEnd(t *testing.T) {
	d, err := ParseDate("2000-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, 2, 1, 0, 0, 0, 0, time.UTC), d.Start())
	assert.Equal(t, time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC), d.End())
}

func TestParseDateIntervalRoundTrip(t *testing.T) {
	for _, raw := range []string{
		"1800",
		"1800-06-12T13:14:15Z",
		"1800/1900",
		"2000-01/2000-03",
		"2000-01-01T00:00:00+02:00/2000-01-02T00:00:00+02:00",
	} {
		t.Run(raw, func(t *testing.T) {
			di, err := ParseDateInterval(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, di.String())
		})
	}
}

func TestParseDateIntervalSameEndsCollapse(t *testing.T) {
	di, err := ParseDateInterval("1800/1800")
	require.NoError(t, err)
	assert.True(t, di.IsSingle())
	assert.Equal(t, "1800", di.String())
}

func TestParseDateIntervalRejects(t *testing.T) {
	tests := map[string]string{
		"mismatched granularity": "1800/1900-06",
		"offset vs zoned":        "2000-01-01T10:00:00Z/2000-01-01T11:00:00+00:00",
		"reversed":               "1900/1800",
		"trailing slash":         "2000/",
		"leading slash":          "/2000",
		"two slashes":            "2000/2001/2002",
		"garbage":                "never",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseDateInterval(raw)
			require.Error(t, err)
			assert.True(t, IsMalformedValue(err), "got %v", err)
		})
	}
}

func TestNewDateInterval(t *testing.T) {
	from, err := ParseDate("2000-01-01")
	require.NoError(t, err)
	to, err := ParseDate("2000-12-31")
	require.NoError(t, err)

	di, err := NewDateInterval(from, to)
	require.NoError(t, err)
	assert.Equal(t, from, di.From())
	assert.Equal(t, to, di.To())
	assert.Equal(t, "2000-01-01/2000-12-31", di.String())

	_, err = NewDateInterval(to, from)
	assert.True(t, IsMalformedValue(err))

	year, err := ParseDate("2000")
	require.NoError(t, err)
	_, err = NewDateInterval(year, to)
	assert.True(t, IsMalformedValue(err))

	_, err = NewDateInterval(Temporal{}, to)
	assert.Error(t, err)
}

func TestDateIntervalFormatStripsNonUTCOffset(t *testing.T) {
	di, err := ParseDateInterval("2000-01-01T10:00:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01T10:00:00+02:00", di.Format(false))
	assert.Equal(t, "2000-01-01T10:00:00", di.Format(true))

	utc, err := ParseDateInterval("2000-01-01T10:00:00+00:00")
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01T10:00:00+00:00", utc.Format(true))

	zoned, err := ParseDateInterval("2000-01-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01T10:00:00Z", zoned.Format(true))
}

func TestDateIntervalText(t *testing.T) {
	var payload struct {
		When DateInterval `json:"when"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"when":"1990/2000"}`), &payload))
	assert.Equal(t, "1990", payload.When.From().String())

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"when":"1990/2000"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"when":"1990/2000-01"}`), &payload))

	_, err = DateInterval{}.MarshalText()
	assert.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2000,2010")
	require.NoError(t, err)
	low, ok := r.Lower()
	require.True(t, ok)
	assert.Equal(t, "2000", low.String())
	assert.Equal(t, "2000,2010", r.String())

	r, err = ParseDateRange("*,2010-06")
	require.NoError(t, err)
	_, ok = r.Lower()
	assert.False(t, ok)

	// Mixed granularities are allowed in comma ranges.
	_, err = ParseDateRange("2000-06,2000")
	require.NoError(t, err)

	for _, raw := range []string{"2010,2000", "2000", ",2000", "2000,x"} {
		_, err := ParseDateRange(raw)
		assert.True(t, IsMalformedValue(err), raw)
	}
}
