package validate

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// DistanceUnit is a length unit accepted in distance values.
type DistanceUnit struct {
	name    string
	meters  float64
	aliases []string
}

// Name returns the unit's short name, e.g. "km".
func (u DistanceUnit) Name() string { return u.name }

// Meters returns the length of one unit in meters.
func (u DistanceUnit) Meters() float64 { return u.meters }

var (
	Inch          = DistanceUnit{"in", 0.0254, []string{"in", "inch"}}
	Yard          = DistanceUnit{"yd", 0.9144, []string{"yd", "yards"}}
	Foot          = DistanceUnit{"ft", 0.3048, []string{"ft", "feet"}}
	Kilometer     = DistanceUnit{"km", 1000, []string{"km", "kilometers"}}
	NauticalMile  = DistanceUnit{"nmi", 1852, []string{"nm", "nmi", "nauticalmiles"}}
	Millimeter    = DistanceUnit{"mm", 0.001, []string{"mm", "millimeters"}}
	Centimeter    = DistanceUnit{"cm", 0.01, []string{"cm", "centimeters"}}
	Mile          = DistanceUnit{"mi", 1609.344, []string{"mi", "miles"}}
	Meter         = DistanceUnit{"m", 1, []string{"m", "meters"}}
	distanceUnits = []DistanceUnit{Inch, Yard, Foot, Kilometer, NauticalMile, Millimeter, Centimeter, Mile, Meter}
)

type unitSuffix struct {
	suffix string
	unit   DistanceUnit
}

// unitSuffixes is ordered longest first so "km" wins over "m".
var unitSuffixes = func() []unitSuffix {
	var out []unitSuffix
	for _, u := range distanceUnits {
		for _, a := range u.aliases {
			out = append(out, unitSuffix{a, u})
		}
	}
	slices.SortStableFunc(out, func(a, b unitSuffix) int {
		return len(b.suffix) - len(a.suffix)
	})
	return out
}()

var magnitudePattern = regexp.MustCompile(`^[+-]?\d+(\.\d+)?$`)

// Distance is a positive magnitude with a unit, e.g. "10km".
type Distance struct {
	value float64
	unit  DistanceUnit
	text  string
}

// ParseDistance parses "<number><unit>". The unit suffix is matched
// case-insensitively; a bare number is in meters. The magnitude must be
// greater than zero.
func ParseDistance(raw string) (Distance, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Distance{}, malformed(raw, "empty distance")
	}
	lower := strings.ToLower(s)
	unit, number := Meter, lower
	for _, us := range unitSuffixes {
		if strings.HasSuffix(lower, us.suffix) {
			unit, number = us.unit, strings.TrimSpace(strings.TrimSuffix(lower, us.suffix))
			break
		}
	}
	if !magnitudePattern.MatchString(number) {
		return Distance{}, malformed(raw, "%q is not a distance", s)
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		e := malformed(raw, "%q is not a distance", s)
		e.Err = err
		return Distance{}, e
	}
	if v <= 0 {
		return Distance{}, outOfRange(raw, "distance must be greater than zero")
	}
	return Distance{value: v, unit: unit, text: s}, nil
}

// Value returns the magnitude in the distance's own unit.
func (d Distance) Value() float64 { return d.value }

// Unit returns the distance unit.
func (d Distance) Unit() DistanceUnit { return d.unit }

// Meters returns the distance converted to meters.
func (d Distance) Meters() float64 { return d.value * d.unit.meters }

// String returns the distance as written.
func (d Distance) String() string { return d.text }

// GeoDistance is a circle: a centre point and a radius.
type GeoDistance struct {
	latitude  float64
	longitude float64
	distance  Distance
}

// ParseGeoDistance validates a latitude in [-90, 90], a longitude in
// [-180, 180] and a positive distance.
func ParseGeoDistance(latitude, longitude, distance string) (GeoDistance, error) {
	lat, err := parseCoordinate(latitude, "latitude", 90)
	if err != nil {
		return GeoDistance{}, err
	}
	lon, err := parseCoordinate(longitude, "longitude", 180)
	if err != nil {
		return GeoDistance{}, err
	}
	d, err := ParseDistance(distance)
	if err != nil {
		return GeoDistance{}, err
	}
	return GeoDistance{latitude: lat, longitude: lon, distance: d}, nil
}

// ParseGeoDistanceValue parses the "lat,lon,distance" parameter value form.
func ParseGeoDistanceValue(raw string) (GeoDistance, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return GeoDistance{}, malformed(raw, "geo distance needs latitude,longitude,distance")
	}
	gd, err := ParseGeoDistance(parts[0], parts[1], parts[2])
	if err != nil {
		return GeoDistance{}, withValue(err, raw)
	}
	return gd, nil
}

func parseCoordinate(raw, axis string, limit float64) (float64, error) {
	s := strings.TrimSpace(raw)
	if !doublePattern.MatchString(s) {
		return 0, malformed(raw, "%s %q is not a number", axis, s)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		e := malformed(raw, "%s %q is not a number", axis, s)
		e.Err = err
		return 0, e
	}
	if v < -limit || v > limit {
		return 0, outOfRange(raw, "%s %v outside [-%v, %v]", axis, v, limit, limit)
	}
	return v, nil
}

// Latitude returns the centre latitude.
func (g GeoDistance) Latitude() float64 { return g.latitude }

// Longitude returns the centre longitude.
func (g GeoDistance) Longitude() float64 { return g.longitude }

// Distance returns the radius.
func (g GeoDistance) Distance() Distance { return g.distance }

// String renders the "lat,lon,distance" parameter value form.
func (g GeoDistance) String() string {
	return strconv.FormatFloat(g.latitude, 'f', -1, 64) + "," +
		strconv.FormatFloat(g.longitude, 'f', -1, 64) + "," + g.distance.text
}
