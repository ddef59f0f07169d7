// Package validate parses and checks raw search parameter values.
//
// Value is the single entry point used by predicate constructors: it
// dispatches on the parameter's declared type and returns nil or an *Error.
// The parsers it dispatches to are exported for callers that need the parsed
// form, not just a verdict:
//
//   - ParseIntRange, ParseDoubleRange: "a,b" with "*" for an open end
//   - ParseDate, ParseDateRange: ISO 8601 at six granularities
//   - ParseDateInterval: a single temporal or an "a/b" pair
//   - ParseGeometry: WKT POINT, LINESTRING, LINEARRING, POLYGON, MULTIPOLYGON
//   - ParseDistance, ParseGeoDistance: "<number><unit>" and lat,lon,distance
//
// Nothing in this package does I/O or keeps state.
package validate
