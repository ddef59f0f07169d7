package validate

import (
	"regexp"
	"strings"
	"time"
)

// Granularity is the precision at which a temporal value was written.
type Granularity int

const (
	GranularityYear Granularity = iota + 1
	GranularityYearMonth
	GranularityDate
	GranularityDateTime
	GranularityOffsetDateTime
	GranularityZonedDateTime
)

func (g Granularity) String() string {
	switch g {
	case GranularityYear:
		return "year"
	case GranularityYearMonth:
		return "year-month"
	case GranularityDate:
		return "date"
	case GranularityDateTime:
		return "date-time"
	case GranularityOffsetDateTime:
		return "offset-date-time"
	case GranularityZonedDateTime:
		return "zoned-date-time"
	}
	return "unknown"
}

type temporalFormat struct {
	granularity Granularity
	pattern     *regexp.Regexp
	layout      string
}

const dateTimePrefix = `^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`

// Patterns gate the layouts because time.Parse also accepts fractional
// seconds the layout does not mention.
var temporalFormats = []temporalFormat{
	{GranularityYear, regexp.MustCompile(`^\d{4}$`), "2006"},
	{GranularityYearMonth, regexp.MustCompile(`^\d{4}-\d{2}$`), "2006-01"},
	{GranularityDate, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), "2006-01-02"},
	{GranularityDateTime, regexp.MustCompile(dateTimePrefix + `$`), "2006-01-02T15:04:05"},
	{GranularityOffsetDateTime, regexp.MustCompile(dateTimePrefix + `[+-]\d{2}:\d{2}$`), "2006-01-02T15:04:05-07:00"},
	{GranularityZonedDateTime, regexp.MustCompile(dateTimePrefix + `Z$`), "2006-01-02T15:04:05Z"},
}

// Temporal is a point in time at a fixed granularity. It keeps the text it
// was parsed from so that formatting reproduces the input exactly.
type Temporal struct {
	text        string
	granularity Granularity
	start       time.Time
}

// ParseDate parses a single ISO 8601 value: YYYY, YYYY-MM, YYYY-MM-DD or
// YYYY-MM-DDThh:mm:ss with an optional ±hh:mm or Z suffix.
func ParseDate(raw string) (Temporal, error) {
	s := strings.TrimSpace(raw)
	for _, f := range temporalFormats {
		if !f.pattern.MatchString(s) {
			continue
		}
		t, err := time.Parse(f.layout, s)
		if err != nil {
			e := malformed(raw, "invalid %s", f.granularity)
			e.Err = err
			return Temporal{}, e
		}
		return Temporal{text: s, granularity: f.granularity, start: t}, nil
	}
	return Temporal{}, malformed(raw, "not an ISO 8601 date")
}

// Granularity returns the precision the value was written at.
func (t Temporal) Granularity() Granularity { return t.granularity }

// IsZero reports whether t is the zero Temporal.
func (t Temporal) IsZero() bool { return t.granularity == 0 }

// Start returns the first instant the value covers. Values without an
// offset are interpreted as UTC.
func (t Temporal) Start() time.Time { return t.start }

// End returns the first instant after the period the value covers.
func (t Temporal) End() time.Time {
	switch t.granularity {
	case GranularityYear:
		return t.start.AddDate(1, 0, 0)
	case GranularityYearMonth:
		return t.start.AddDate(0, 1, 0)
	case GranularityDate:
		return t.start.AddDate(0, 0, 1)
	}
	return t.start.Add(time.Second)
}

// String returns the canonical ISO 8601 form.
func (t Temporal) String() string { return t.text }

// Format returns the canonical form; with stripNonUTCOffset set, an offset
// other than +00:00 is dropped and the local date-time is kept.
func (t Temporal) Format(stripNonUTCOffset bool) string {
	if stripNonUTCOffset && t.granularity == GranularityOffsetDateTime {
		if _, offset := t.start.Zone(); offset != 0 {
			return t.start.Format("2006-01-02T15:04:05")
		}
	}
	return t.text
}

// Before reports whether t starts strictly before u.
func (t Temporal) Before(u Temporal) bool { return t.start.Before(u.start) }

// DateRange is a comma range of temporals, either end possibly open.
type DateRange struct {
	low  *Temporal
	high *Temporal
}

// Lower returns the lower bound and whether it is bounded.
func (r DateRange) Lower() (Temporal, bool) {
	if r.low == nil {
		return Temporal{}, false
	}
	return *r.low, true
}

// Upper returns the upper bound and whether it is bounded.
func (r DateRange) Upper() (Temporal, bool) {
	if r.high == nil {
		return Temporal{}, false
	}
	return *r.high, true
}

func (r DateRange) String() string {
	low, high := Wildcard, Wildcard
	if r.low != nil {
		low = r.low.text
	}
	if r.high != nil {
		high = r.high.text
	}
	return low + "," + high
}

// ParseDateRange parses "a,b" where either side may be "*". The bounds may
// differ in granularity but the lower one must not start after the upper
// one ends.
func ParseDateRange(raw string) (DateRange, error) {
	lower, upper, ok := splitRange(raw)
	if !ok {
		return DateRange{}, malformed(raw, "date range needs a comma")
	}
	var r DateRange
	for _, side := range []struct {
		token string
		dst   **Temporal
	}{{lower, &r.low}, {upper, &r.high}} {
		token := strings.TrimSpace(side.token)
		if token == Wildcard {
			continue
		}
		if token == "" {
			return DateRange{}, malformed(raw, "empty date range bound")
		}
		t, err := ParseDate(token)
		if err != nil {
			return DateRange{}, err
		}
		*side.dst = &t
	}
	if r.low != nil && r.high != nil && !r.low.Start().Before(r.high.End()) {
		return DateRange{}, malformed(raw, "date range lower bound %s is after upper bound %s", r.low, r.high)
	}
	return r, nil
}
