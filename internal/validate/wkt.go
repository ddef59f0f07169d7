package validate

import (
	"math"
	"strings"
	"unicode"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// GeometryKind is a WKT geometry type keyword.
type GeometryKind string

const (
	KindPoint        GeometryKind = "POINT"
	KindLineString   GeometryKind = "LINESTRING"
	KindLinearRing   GeometryKind = "LINEARRING"
	KindPolygon      GeometryKind = "POLYGON"
	KindMultiPolygon GeometryKind = "MULTIPOLYGON"
)

// minPoints is the fewest coordinates a line or ring of each kind may have.
var minPoints = map[GeometryKind]int{
	KindPoint:        1,
	KindLineString:   2,
	KindLinearRing:   3,
	KindPolygon:      3,
	KindMultiPolygon: 3,
}

// Geometry is a parsed WKT value. Shape is an orb.Point, orb.LineString
// (for both LINESTRING and LINEARRING), orb.Polygon or orb.MultiPolygon.
type Geometry struct {
	Kind  GeometryKind
	Shape orb.Geometry
}

// Bounds returns the geometry's envelope.
func (g Geometry) Bounds() orb.Bound { return g.Shape.Bound() }

// Points returns the number of coordinates in the geometry.
func (g Geometry) Points() int {
	n := 0
	eachPoint(g.Shape, func(orb.Point) { n++ })
	return n
}

// ParseGeometry parses a WKT string. It rejects EMPTY geometries, Z and M
// coordinates, trailing commas, non-numeric tokens, unterminated lists and
// latitudes outside [-90, 90]. It does not check ring closure or topology:
// a polygon whose ring is not closed is accepted.
func ParseGeometry(raw string) (Geometry, error) {
	src := strings.Join(strings.Fields(raw), " ")
	end := strings.IndexFunc(src, func(r rune) bool { return !unicode.IsLetter(r) })
	if end < 0 {
		end = len(src)
	}
	kind := GeometryKind(strings.ToUpper(src[:end]))
	rest := strings.TrimSpace(src[end:])

	if kind == "" {
		return Geometry{}, malformed(raw, "wkt: missing geometry type")
	}
	if _, ok := minPoints[kind]; !ok {
		return Geometry{}, malformed(raw, "wkt: unsupported geometry type %q", kind)
	}
	if strings.EqualFold(rest, "EMPTY") {
		return Geometry{}, malformed(raw, "wkt: %s EMPTY is not supported", kind)
	}
	if !strings.HasPrefix(rest, "(") {
		return Geometry{}, malformed(raw, "wkt: expected '(' after %s", kind)
	}

	// orb has no ring type of its own in WKT, a ring reads as a line.
	text := string(kind) + " " + rest
	if kind == KindLinearRing {
		text = string(KindLineString) + " " + rest
	}
	shape, err := wkt.Unmarshal(text)
	if err != nil {
		return Geometry{}, &Error{
			Code:    ErrCodeMalformedValue,
			Value:   raw,
			Message: "wkt: invalid " + string(kind),
			Err:     err,
		}
	}
	if err := checkShape(raw, kind, shape); err != nil {
		return Geometry{}, err
	}
	return Geometry{Kind: kind, Shape: shape}, nil
}

// ValidateGeometry reports whether raw parses, discarding the result.
func ValidateGeometry(raw string) error {
	_, err := ParseGeometry(raw)
	return err
}

func checkShape(raw string, kind GeometryKind, shape orb.Geometry) error {
	least := minPoints[kind]
	var lines []int
	switch s := shape.(type) {
	case orb.LineString:
		lines = append(lines, len(s))
	case orb.Polygon:
		for _, r := range s {
			lines = append(lines, len(r))
		}
	case orb.MultiPolygon:
		for _, poly := range s {
			for _, r := range poly {
				lines = append(lines, len(r))
			}
		}
	}
	for _, n := range lines {
		if n < least {
			return malformed(raw, "wkt: %s needs at least %d coordinates, got %d", kind, least, n)
		}
	}

	var bad error
	eachPoint(shape, func(p orb.Point) {
		switch {
		case bad != nil:
		case math.IsNaN(p.X()) || math.IsNaN(p.Y()) || math.IsInf(p.X(), 0) || math.IsInf(p.Y(), 0):
			bad = malformed(raw, "wkt: coordinates must be finite")
		case p.Y() < -90 || p.Y() > 90:
			bad = outOfRange(raw, "latitude %v outside [-90, 90]", p.Y())
		}
	})
	return bad
}

func eachPoint(g orb.Geometry, fn func(orb.Point)) {
	switch s := g.(type) {
	case orb.Point:
		fn(s)
	case orb.LineString:
		for _, p := range s {
			fn(p)
		}
	case orb.Polygon:
		for _, r := range s {
			for _, p := range r {
				fn(p)
			}
		}
	case orb.MultiPolygon:
		for _, poly := range s {
			eachPoint(poly, fn)
		}
	}
}
