package predicate

import (
	"errors"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/roach88/occfilter/internal/param"
	"github.com/roach88/occfilter/internal/validate"
)

// Kind is the wire tag of a predicate variant.
type Kind string

const (
	KindAnd                 Kind = "and"
	KindOr                  Kind = "or"
	KindNot                 Kind = "not"
	KindEquals              Kind = "equals"
	KindLike                Kind = "like"
	KindLessThan            Kind = "lessThan"
	KindLessThanOrEquals    Kind = "lessThanOrEquals"
	KindGreaterThan         Kind = "greaterThan"
	KindGreaterThanOrEquals Kind = "greaterThanOrEquals"
	KindRange               Kind = "range"
	KindIn                  Kind = "in"
	KindIsNull              Kind = "isNull"
	KindIsNotNull           Kind = "isNotNull"
	KindWithin              Kind = "within"
	KindGeoDistance         Kind = "geoDistance"
	KindFullTextSearch      Kind = "fullTextSearchPredicate"
	KindRawQuery            Kind = "rawQuery"
)

// Kinds lists every variant tag.
var Kinds = []Kind{
	KindAnd, KindOr, KindNot, KindEquals, KindLike, KindLessThan, KindLessThanOrEquals,
	KindGreaterThan, KindGreaterThanOrEquals, KindRange, KindIn, KindIsNull, KindIsNotNull,
	KindWithin, KindGeoDistance, KindFullTextSearch, KindRawQuery,
}

// Predicate is one node of a filter expression tree.
//
// This is a sealed interface: only types in this package implement it.
type Predicate interface {
	Kind() Kind
	predicateNode()
}

// Option configures optional fields of leaf predicates.
type Option func(*options)

type options struct {
	matchCase    *bool
	checklistKey string
}

// MatchCase sets case-sensitive matching for Equals, Like and In.
// When not set the field is omitted and matching is case-insensitive.
func MatchCase(v bool) Option {
	return func(o *options) { o.matchCase = &v }
}

// ChecklistKey selects the taxonomy a Like predicate's names resolve against.
func ChecklistKey(key string) Option {
	return func(o *options) { o.checklistKey = key }
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func boolPtr(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func keyError(kind Kind, key param.Parameter) error {
	if key.IsZero() {
		return validate.Errorf(validate.ErrCodeUnknownParameter, "", "", "%s needs a parameter", kind)
	}
	return nil
}

func rejectGeometry(kind Kind, key param.Parameter) error {
	if key.Type() == param.TypeGeometry {
		return validate.Errorf(validate.ErrCodeTypeMismatch, key.Name(), "",
			"%s is not supported for geometry parameters, use within", kind)
	}
	return nil
}

// checkText rejects strings that cannot be carried by JSON unchanged.
func checkText(kind Kind, field, s string) error {
	if !utf8.ValidString(s) {
		return validate.Errorf(validate.ErrCodeMalformedValue, "", s, "%s %s is not valid UTF-8", kind, field)
	}
	return nil
}

func checkValue(kind Kind, key param.Parameter, value string) error {
	if value == "" {
		return validate.Errorf(validate.ErrCodeMalformedValue, key.Name(), "", "%s value may not be empty", kind)
	}
	return validate.Value(key, value)
}

// Equals matches records whose key equals value. Matching is
// case-insensitive unless MatchCase(true) is given.
type Equals struct {
	key       param.Parameter
	value     string
	matchCase *bool
}

// NewEquals validates value against key's type.
func NewEquals(key param.Parameter, value string, opts ...Option) (*Equals, error) {
	if err := keyError(KindEquals, key); err != nil {
		return nil, err
	}
	if err := rejectGeometry(KindEquals, key); err != nil {
		return nil, err
	}
	if err := checkValue(KindEquals, key, value); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	return &Equals{key: key, value: value, matchCase: o.matchCase}, nil
}

func (*Equals) Kind() Kind                { return KindEquals }
func (*Equals) predicateNode()            {}
func (p *Equals) Key() param.Parameter    { return p.key }
func (p *Equals) Value() string           { return p.value }
func (p *Equals) MatchCase() (bool, bool) { return deref(p.matchCase) }

func deref(p *bool) (value, set bool) {
	if p == nil {
		return false, false
	}
	return *p, true
}

// Like matches string values against a pattern where '?' is any single
// character and '*' any run of characters.
type Like struct {
	key          param.Parameter
	value        string
	matchCase    *bool
	checklistKey string
}

// NewLike requires a string-typed key.
func NewLike(key param.Parameter, value string, opts ...Option) (*Like, error) {
	if err := keyError(KindLike, key); err != nil {
		return nil, err
	}
	if key.Type() != param.TypeString {
		return nil, validate.Errorf(validate.ErrCodeTypeMismatch, key.Name(), value,
			"like is only allowed for string parameters, not %s", key.Type())
	}
	if err := checkValue(KindLike, key, value); err != nil {
		return nil, err
	}
	o := applyOptions(opts)
	if err := checkText(KindLike, "checklistKey", o.checklistKey); err != nil {
		return nil, err
	}
	return &Like{key: key, value: value, matchCase: o.matchCase, checklistKey: o.checklistKey}, nil
}

func (*Like) Kind() Kind                { return KindLike }
func (*Like) predicateNode()            {}
func (p *Like) Key() param.Parameter    { return p.key }
func (p *Like) Value() string           { return p.value }
func (p *Like) MatchCase() (bool, bool) { return deref(p.matchCase) }
func (p *Like) ChecklistKey() string    { return p.checklistKey }

var comparisonKinds = []Kind{KindLessThan, KindLessThanOrEquals, KindGreaterThan, KindGreaterThanOrEquals}

// Comparison is one of lessThan, lessThanOrEquals, greaterThan and
// greaterThanOrEquals.
type Comparison struct {
	kind  Kind
	key   param.Parameter
	value string
}

// NewLessThan builds key < value.
func NewLessThan(key param.Parameter, value string) (*Comparison, error) {
	return newComparison(KindLessThan, key, value)
}

// NewLessThanOrEquals builds key <= value.
func NewLessThanOrEquals(key param.Parameter, value string) (*Comparison, error) {
	return newComparison(KindLessThanOrEquals, key, value)
}

// NewGreaterThan builds key > value.
func NewGreaterThan(key param.Parameter, value string) (*Comparison, error) {
	return newComparison(KindGreaterThan, key, value)
}

// NewGreaterThanOrEquals builds key >= value.
func NewGreaterThanOrEquals(key param.Parameter, value string) (*Comparison, error) {
	return newComparison(KindGreaterThanOrEquals, key, value)
}

// newComparison checks the key type before the value so that a
// non-orderable key fails with TYPE_MISMATCH whatever the value is.
func newComparison(kind Kind, key param.Parameter, value string) (*Comparison, error) {
	if err := keyError(kind, key); err != nil {
		return nil, err
	}
	if !key.Type().Ordered() {
		return nil, validate.Errorf(validate.ErrCodeTypeMismatch, key.Name(), value,
			"%s needs a numeric or date parameter, not %s", kind, key.Type())
	}
	if err := checkValue(kind, key, value); err != nil {
		return nil, err
	}
	return &Comparison{kind: kind, key: key, value: value}, nil
}

func (p *Comparison) Kind() Kind           { return p.kind }
func (*Comparison) predicateNode()         {}
func (p *Comparison) Key() param.Parameter { return p.key }
func (p *Comparison) Value() string        { return p.value }

// RangeValue holds the bounds of a Range predicate. At most one of Gte and
// Gt and at most one of Lte and Lt may be set, and at least one bound must
// be.
type RangeValue struct {
	Gte string
	Gt  string
	Lte string
	Lt  string
}

// Range matches key within the bounds of value.
type Range struct {
	key   param.Parameter
	value RangeValue
}

// NewRange requires a numeric or date key and validates each bound as a
// single value.
func NewRange(key param.Parameter, value RangeValue) (*Range, error) {
	if err := keyError(KindRange, key); err != nil {
		return nil, err
	}
	if !key.Type().Ordered() {
		return nil, validate.Errorf(validate.ErrCodeTypeMismatch, key.Name(), "",
			"range needs a numeric or date parameter, not %s", key.Type())
	}
	if value.Gte != "" && value.Gt != "" {
		return nil, validate.Errorf(validate.ErrCodeMalformedValue, key.Name(), "", "range has both gte and gt")
	}
	if value.Lte != "" && value.Lt != "" {
		return nil, validate.Errorf(validate.ErrCodeMalformedValue, key.Name(), "", "range has both lte and lt")
	}
	bounds := []string{value.Gte, value.Gt, value.Lte, value.Lt}
	if !slices.ContainsFunc(bounds, func(s string) bool { return s != "" }) {
		return nil, validate.Errorf(validate.ErrCodeMalformedValue, key.Name(), "", "range needs at least one bound")
	}
	for _, bound := range bounds {
		if bound == "" {
			continue
		}
		if validate.IsRange(bound) || strings.TrimSpace(bound) == validate.Wildcard {
			return nil, validate.Errorf(validate.ErrCodeMalformedValue, key.Name(), bound, "range bound must be a single value")
		}
		if err := validate.Value(key, bound); err != nil {
			return nil, err
		}
	}
	return &Range{key: key, value: value}, nil
}

func (*Range) Kind() Kind             { return KindRange }
func (*Range) predicateNode()         {}
func (p *Range) Key() param.Parameter { return p.key }
func (p *Range) Value() RangeValue    { return p.value }

// In matches records whose key equals any of values.
type In struct {
	key       param.Parameter
	values    []string
	matchCase *bool
}

// NewIn validates every value against key's type. An empty list fails with
// EMPTY_COLLECTION.
func NewIn(key param.Parameter, values []string, opts ...Option) (*In, error) {
	if err := keyError(KindIn, key); err != nil {
		return nil, err
	}
	if err := rejectGeometry(KindIn, key); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, validate.Errorf(validate.ErrCodeEmptyCollection, key.Name(), "", "in needs at least one value")
	}
	for _, v := range values {
		if err := checkValue(KindIn, key, v); err != nil {
			return nil, err
		}
	}
	o := applyOptions(opts)
	return &In{key: key, values: slices.Clone(values), matchCase: o.matchCase}, nil
}

func (*In) Kind() Kind                { return KindIn }
func (*In) predicateNode()            {}
func (p *In) Key() param.Parameter    { return p.key }
func (p *In) Values() []string        { return slices.Clone(p.values) }
func (p *In) MatchCase() (bool, bool) { return deref(p.matchCase) }

// IsNull matches records where key has no value.
type IsNull struct {
	key param.Parameter
}

// NewIsNull rejects the geometry parameter.
func NewIsNull(key param.Parameter) (*IsNull, error) {
	if err := keyError(KindIsNull, key); err != nil {
		return nil, err
	}
	if err := rejectGeometry(KindIsNull, key); err != nil {
		return nil, err
	}
	return &IsNull{key: key}, nil
}

func (*IsNull) Kind() Kind                   { return KindIsNull }
func (*IsNull) predicateNode()               {}
func (p *IsNull) Parameter() param.Parameter { return p.key }

// IsNotNull matches records where key has a value.
type IsNotNull struct {
	key param.Parameter
}

// NewIsNotNull rejects the geometry parameter.
func NewIsNotNull(key param.Parameter) (*IsNotNull, error) {
	if err := keyError(KindIsNotNull, key); err != nil {
		return nil, err
	}
	if err := rejectGeometry(KindIsNotNull, key); err != nil {
		return nil, err
	}
	return &IsNotNull{key: key}, nil
}

func (*IsNotNull) Kind() Kind                   { return KindIsNotNull }
func (*IsNotNull) predicateNode()               {}
func (p *IsNotNull) Parameter() param.Parameter { return p.key }

// Within matches records inside a WKT geometry.
type Within struct {
	geometry string
	invalid  error
}

// NewWithin accepts any non-empty geometry. A geometry that fails WKT
// validation is logged at warn level and kept; GeometryError reports the
// failure.
func NewWithin(geometry string) (*Within, error) {
	if strings.TrimSpace(geometry) == "" {
		return nil, validate.Errorf(validate.ErrCodeMalformedValue, param.Geometry.Name(), "", "within needs a geometry")
	}
	if err := checkText(KindWithin, "geometry", geometry); err != nil {
		return nil, err
	}
	w := &Within{geometry: geometry}
	if err := validate.Value(param.Geometry, geometry); err != nil {
		w.invalid = err
		logger().Warn("within geometry failed validation, accepting",
			"geometry", geometry,
			"error", err)
	}
	return w, nil
}

func (*Within) Kind() Kind         { return KindWithin }
func (*Within) predicateNode()     {}
func (p *Within) Geometry() string { return p.geometry }

// GeometryError returns the validation failure recorded at construction,
// or nil when the geometry is valid WKT.
func (p *Within) GeometryError() error { return p.invalid }

// GeoDistance matches records within a distance of a point.
type GeoDistance struct {
	latitude  string
	longitude string
	distance  string
	parsed    validate.GeoDistance
}

// NewGeoDistance validates strictly: latitude in [-90, 90], longitude in
// [-180, 180] and a positive distance with a known unit.
func NewGeoDistance(latitude, longitude, distance string) (*GeoDistance, error) {
	gd, err := validate.ParseGeoDistance(latitude, longitude, distance)
	if err != nil {
		var ve *validate.Error
		if errors.As(err, &ve) && ve.Param == "" {
			cp := *ve
			cp.Param = param.GeoDistance.Name()
			return nil, &cp
		}
		return nil, err
	}
	return &GeoDistance{latitude: latitude, longitude: longitude, distance: distance, parsed: gd}, nil
}

func (*GeoDistance) Kind() Kind          { return KindGeoDistance }
func (*GeoDistance) predicateNode()      {}
func (p *GeoDistance) Latitude() string  { return p.latitude }
func (p *GeoDistance) Longitude() string { return p.longitude }
func (p *GeoDistance) Distance() string  { return p.distance }

// Circle returns the parsed centre and radius.
func (p *GeoDistance) Circle() validate.GeoDistance { return p.parsed }

// Not negates its child. Double negation is kept as written.
type Not struct {
	predicate Predicate
}

// NewNot wraps exactly one child.
func NewNot(child Predicate) (*Not, error) {
	if isNil(child) {
		return nil, validate.Errorf(validate.ErrCodeMalformedValue, "", "", "not needs a predicate")
	}
	if err := checkNode(child); err != nil {
		return nil, err
	}
	return &Not{predicate: child}, nil
}

func (*Not) Kind() Kind             { return KindNot }
func (*Not) predicateNode()         {}
func (p *Not) Predicate() Predicate { return p.predicate }

// And matches when every child matches. Child order is preserved.
type And struct {
	predicates []Predicate
}

// NewAnd fails with EMPTY_COLLECTION when given no children.
func NewAnd(children ...Predicate) (*And, error) {
	preds, err := compound(KindAnd, children)
	if err != nil {
		return nil, err
	}
	return &And{predicates: preds}, nil
}

func (*And) Kind() Kind                { return KindAnd }
func (*And) predicateNode()            {}
func (p *And) Predicates() []Predicate { return slices.Clone(p.predicates) }

// Or matches when any child matches. Child order is preserved.
type Or struct {
	predicates []Predicate
}

// NewOr fails with EMPTY_COLLECTION when given no children.
func NewOr(children ...Predicate) (*Or, error) {
	preds, err := compound(KindOr, children)
	if err != nil {
		return nil, err
	}
	return &Or{predicates: preds}, nil
}

func (*Or) Kind() Kind                { return KindOr }
func (*Or) predicateNode()            {}
func (p *Or) Predicates() []Predicate { return slices.Clone(p.predicates) }

func compound(kind Kind, children []Predicate) ([]Predicate, error) {
	if len(children) == 0 {
		return nil, validate.Errorf(validate.ErrCodeEmptyCollection, "", "", "%s needs at least one predicate", kind)
	}
	for i, c := range children {
		if isNil(c) {
			return nil, validate.Errorf(validate.ErrCodeMalformedValue, "", "", "%s predicate %d is nil", kind, i)
		}
		if err := checkNode(c); err != nil {
			return nil, err
		}
	}
	return slices.Clone(children), nil
}

// checkNode rejects a node that did not come from its constructor, such as
// a zero value written as &Equals{}. Constructors check whole subtrees, so
// looking at the node itself is enough.
func checkNode(p Predicate) error {
	if isNil(p) {
		return validate.Errorf(validate.ErrCodeMalformedValue, "", "", "nil predicate")
	}
	var ok bool
	switch n := p.(type) {
	case *Equals:
		ok = !n.key.IsZero() && n.value != ""
	case *Like:
		ok = !n.key.IsZero() && n.value != ""
	case *Comparison:
		ok = !n.key.IsZero() && n.value != "" && slices.Contains(comparisonKinds, n.kind)
	case *Range:
		ok = !n.key.IsZero() && n.value != RangeValue{}
	case *In:
		ok = !n.key.IsZero() && len(n.values) > 0
	case *IsNull:
		ok = !n.key.IsZero()
	case *IsNotNull:
		ok = !n.key.IsZero()
	case *Within:
		ok = strings.TrimSpace(n.geometry) != ""
	case *GeoDistance:
		ok = n.latitude != "" && n.longitude != "" && n.distance != ""
	case *Not:
		ok = !isNil(n.predicate)
	case *And:
		ok = len(n.predicates) > 0
	case *Or:
		ok = len(n.predicates) > 0
	case *FullTextSearch:
		ok = strings.TrimSpace(n.q) != ""
	case *RawQuery:
		ok = true
	}
	if !ok {
		return validate.Errorf(validate.ErrCodeMalformedValue, "", "", "%T was not built by its constructor", p)
	}
	return nil
}

// FullTextSearch matches records containing the query text.
type FullTextSearch struct {
	q string
}

// NewFullTextSearch requires a non-blank query.
func NewFullTextSearch(q string) (*FullTextSearch, error) {
	if strings.TrimSpace(q) == "" {
		return nil, validate.Errorf(validate.ErrCodeMalformedValue, "", "", "full text search needs a query")
	}
	if err := checkText(KindFullTextSearch, "query", q); err != nil {
		return nil, err
	}
	return &FullTextSearch{q: q}, nil
}

func (*FullTextSearch) Kind() Kind      { return KindFullTextSearch }
func (*FullTextSearch) predicateNode()  {}
func (p *FullTextSearch) Query() string { return p.q }

// RawQuery carries a backend-specific query fragment. It is not validated.
type RawQuery struct {
	sql string
}

// NewRawQuery only requires sql to be valid UTF-8.
func NewRawQuery(sql string) (*RawQuery, error) {
	if err := checkText(KindRawQuery, "sql", sql); err != nil {
		return nil, err
	}
	return &RawQuery{sql: sql}, nil
}

func (*RawQuery) Kind() Kind     { return KindRawQuery }
func (*RawQuery) predicateNode() {}
func (p *RawQuery) SQL() string  { return p.sql }
