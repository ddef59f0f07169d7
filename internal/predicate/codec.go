package predicate

import (
	"fmt"
	"strconv"

	"github.com/roach88/occfilter/internal/param"
	"github.com/roach88/occfilter/internal/tagged"
	"github.com/roach88/occfilter/internal/validate"
)

// Field names of the tagged representation.
const (
	fieldType         = "type"
	fieldKey          = "key"
	fieldValue        = "value"
	fieldValues       = "values"
	fieldMatchCase    = "matchCase"
	fieldChecklistKey = "checklistKey"
	fieldParameter    = "parameter"
	fieldGeometry     = "geometry"
	fieldLatitude     = "latitude"
	fieldLongitude    = "longitude"
	fieldDistance     = "distance"
	fieldPredicate    = "predicate"
	fieldPredicates   = "predicates"
	fieldQ            = "q"
	fieldSQL          = "sql"
	fieldGte          = "gte"
	fieldGt           = "gt"
	fieldLte          = "lte"
	fieldLt           = "lt"
)

// Encode maps p to its tagged representation.
func Encode(p Predicate) (tagged.Object, error) {
	if isNil(p) {
		return nil, fmt.Errorf("encode: nil predicate")
	}
	if err := checkNode(p); err != nil {
		return nil, err
	}
	obj := tagged.Object{fieldType: tagged.String(p.Kind())}

	switch n := p.(type) {
	case *Equals:
		obj[fieldKey] = tagged.String(n.key.Name())
		obj[fieldValue] = tagged.String(n.value)
		putBool(obj, fieldMatchCase, n.matchCase)
	case *Like:
		obj[fieldKey] = tagged.String(n.key.Name())
		obj[fieldValue] = tagged.String(n.value)
		putBool(obj, fieldMatchCase, n.matchCase)
		if n.checklistKey != "" {
			obj[fieldChecklistKey] = tagged.String(n.checklistKey)
		}
	case *Comparison:
		obj[fieldKey] = tagged.String(n.key.Name())
		obj[fieldValue] = tagged.String(n.value)
	case *Range:
		bounds := tagged.Object{}
		for field, v := range map[string]string{
			fieldGte: n.value.Gte, fieldGt: n.value.Gt, fieldLte: n.value.Lte, fieldLt: n.value.Lt,
		} {
			if v != "" {
				bounds[field] = tagged.String(v)
			}
		}
		obj[fieldKey] = tagged.String(n.key.Name())
		obj[fieldValue] = bounds
	case *In:
		values := make(tagged.Array, len(n.values))
		for i, v := range n.values {
			values[i] = tagged.String(v)
		}
		obj[fieldKey] = tagged.String(n.key.Name())
		obj[fieldValues] = values
		putBool(obj, fieldMatchCase, n.matchCase)
	case *IsNull:
		obj[fieldParameter] = tagged.String(n.key.Name())
	case *IsNotNull:
		obj[fieldParameter] = tagged.String(n.key.Name())
	case *Within:
		obj[fieldGeometry] = tagged.String(n.geometry)
	case *GeoDistance:
		obj[fieldLatitude] = tagged.String(n.latitude)
		obj[fieldLongitude] = tagged.String(n.longitude)
		obj[fieldDistance] = tagged.String(n.distance)
	case *Not:
		child, err := Encode(n.predicate)
		if err != nil {
			return nil, err
		}
		obj[fieldPredicate] = child
	case *And:
		children, err := encodeAll(n.predicates)
		if err != nil {
			return nil, err
		}
		obj[fieldPredicates] = children
	case *Or:
		children, err := encodeAll(n.predicates)
		if err != nil {
			return nil, err
		}
		obj[fieldPredicates] = children
	case *FullTextSearch:
		obj[fieldQ] = tagged.String(n.q)
	case *RawQuery:
		obj[fieldSQL] = tagged.String(n.sql)
	default:
		return nil, fmt.Errorf("encode: unsupported predicate %T", p)
	}
	return obj, nil
}

func encodeAll(preds []Predicate) (tagged.Array, error) {
	out := make(tagged.Array, len(preds))
	for i, c := range preds {
		enc, err := Encode(c)
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func putBool(obj tagged.Object, field string, v *bool) {
	if v != nil {
		obj[field] = tagged.Bool(*v)
	}
}

// Marshal encodes p as RFC 8785 canonical JSON.
func Marshal(p Predicate) ([]byte, error) {
	obj, err := Encode(p)
	if err != nil {
		return nil, err
	}
	return tagged.MarshalCanonical(obj)
}

// Unmarshal parses JSON and decodes it.
func Unmarshal(data []byte, opts ...DecodeOption) (Predicate, error) {
	v, err := tagged.Unmarshal(data)
	if err != nil {
		return nil, &validate.Error{
			Code:    validate.ErrCodeMalformedPredicate,
			Message: "invalid JSON",
			Err:     err,
		}
	}
	return Decode(v, opts...)
}

// DecodeOption configures Decode.
type DecodeOption func(*decoder)

// WithMaxDepth rejects trees nested deeper than n. Zero means no limit.
// Callers decoding untrusted input should set one.
func WithMaxDepth(n int) DecodeOption {
	return func(d *decoder) { d.maxDepth = n }
}

// WithRegistry resolves parameter names against r instead of the
// occurrence catalog.
func WithRegistry(r *param.Registry) DecodeOption {
	return func(d *decoder) { d.registry = r }
}

type decoder struct {
	registry *param.Registry
	maxDepth int
}

type decodeFunc func(d *decoder, obj tagged.Object, path string, depth int) (Predicate, error)

var decoders map[Kind]decodeFunc

// Accepted spellings of the type tag beyond the Kind values themselves.
var kindAliases = map[string]Kind{
	"fullTextSearch": KindFullTextSearch,
}

func init() {
	decoders = map[Kind]decodeFunc{
		KindAnd:                 decodeAnd,
		KindOr:                  decodeOr,
		KindNot:                 decodeNot,
		KindEquals:              decodeEquals,
		KindLike:                decodeLike,
		KindLessThan:            comparisonDecoder(NewLessThan),
		KindLessThanOrEquals:    comparisonDecoder(NewLessThanOrEquals),
		KindGreaterThan:         comparisonDecoder(NewGreaterThan),
		KindGreaterThanOrEquals: comparisonDecoder(NewGreaterThanOrEquals),
		KindRange:               decodeRange,
		KindIn:                  decodeIn,
		KindIsNull:              decodeIsNull,
		KindIsNotNull:           decodeIsNotNull,
		KindWithin:              decodeWithin,
		KindGeoDistance:         decodeGeoDistance,
		KindFullTextSearch:      decodeFullTextSearch,
		KindRawQuery:            decodeRawQuery,
	}
}

// Decode rebuilds a predicate from its tagged representation. Structural
// problems fail with MALFORMED_PREDICATE before any constructor runs; an
// unknown tag fails with UNKNOWN_PREDICATE_TYPE. Everything else is
// checked by the same constructors code uses.
func Decode(v tagged.Value, opts ...DecodeOption) (Predicate, error) {
	d := &decoder{registry: param.Occurrence}
	for _, opt := range opts {
		opt(d)
	}
	return d.decode(v, "$", 1)
}

func (d *decoder) decode(v tagged.Value, path string, depth int) (Predicate, error) {
	if d.maxDepth > 0 && depth > d.maxDepth {
		return nil, malformedAt(path, "nesting exceeds max depth %d", d.maxDepth)
	}
	obj, ok := v.(tagged.Object)
	if !ok {
		return nil, malformedAt(path, "predicate must be an object, got %s", typeName(v))
	}
	tv, ok := obj.Get(fieldType)
	if !ok {
		return nil, malformedAt(path, "missing %q", fieldType)
	}
	tag, ok := tv.(tagged.String)
	if !ok {
		return nil, malformedAt(path, "%q must be a string, got %s", fieldType, tagged.TypeName(tv))
	}
	kind := Kind(tag)
	if alias, ok := kindAliases[string(tag)]; ok {
		kind = alias
	}
	fn, ok := decoders[kind]
	if !ok {
		return nil, atPath(&validate.Error{
			Code:    validate.ErrCodeUnknownPredicateType,
			Value:   string(tag),
			Message: "unknown predicate type",
		}, path)
	}
	p, err := fn(d, obj, path, depth)
	if err != nil {
		return nil, atPath(err, path)
	}
	return p, nil
}

func typeName(v tagged.Value) string {
	if v == nil {
		return "nothing"
	}
	return tagged.TypeName(v)
}

func decodeEquals(d *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
	name, err := requireScalar(obj, fieldKey, path)
	if err != nil {
		return nil, err
	}
	value, err := requireScalar(obj, fieldValue, path)
	if err != nil {
		return nil, err
	}
	opts, err := leafOptions(obj, path)
	if err != nil {
		return nil, err
	}
	key, err := d.lookup(name)
	if err != nil {
		return nil, err
	}
	return NewEquals(key, value, opts...)
}

func decodeLike(d *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
	name, err := requireScalar(obj, fieldKey, path)
	if err != nil {
		return nil, err
	}
	value, err := requireScalar(obj, fieldValue, path)
	if err != nil {
		return nil, err
	}
	opts, err := leafOptions(obj, path)
	if err != nil {
		return nil, err
	}
	checklist, ok, err := optionalScalar(obj, fieldChecklistKey, path)
	if err != nil {
		return nil, err
	}
	if ok {
		opts = append(opts, ChecklistKey(checklist))
	}
	key, err := d.lookup(name)
	if err != nil {
		return nil, err
	}
	return NewLike(key, value, opts...)
}

func comparisonDecoder(build func(param.Parameter, string) (*Comparison, error)) decodeFunc {
	return func(d *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
		name, err := requireScalar(obj, fieldKey, path)
		if err != nil {
			return nil, err
		}
		value, err := requireScalar(obj, fieldValue, path)
		if err != nil {
			return nil, err
		}
		key, err := d.lookup(name)
		if err != nil {
			return nil, err
		}
		return build(key, value)
	}
}

func decodeRange(d *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
	name, err := requireScalar(obj, fieldKey, path)
	if err != nil {
		return nil, err
	}
	raw, ok := obj.Get(fieldValue)
	if !ok {
		return nil, malformedAt(path, "missing %q", fieldValue)
	}
	bounds, ok := raw.(tagged.Object)
	if !ok {
		return nil, malformedAt(path, "%q must be an object, got %s", fieldValue, tagged.TypeName(raw))
	}
	var rv RangeValue
	for field, dst := range map[string]*string{fieldGte: &rv.Gte, fieldGt: &rv.Gt, fieldLte: &rv.Lte, fieldLt: &rv.Lt} {
		s, _, err := optionalScalar(bounds, field, path+"."+fieldValue)
		if err != nil {
			return nil, err
		}
		*dst = s
	}
	key, err := d.lookup(name)
	if err != nil {
		return nil, err
	}
	return NewRange(key, rv)
}

func decodeIn(d *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
	name, err := requireScalar(obj, fieldKey, path)
	if err != nil {
		return nil, err
	}
	raw, ok := obj.Get(fieldValues)
	if !ok {
		return nil, malformedAt(path, "missing %q", fieldValues)
	}
	arr, ok := raw.(tagged.Array)
	if !ok {
		return nil, malformedAt(path, "%q must be an array, got %s", fieldValues, tagged.TypeName(raw))
	}
	values := make([]string, len(arr))
	for i, item := range arr {
		s, ok := scalarText(item)
		if !ok {
			return nil, malformedAt(path, "%s[%d] must be a scalar, got %s", fieldValues, i, typeName(item))
		}
		values[i] = s
	}
	opts, err := leafOptions(obj, path)
	if err != nil {
		return nil, err
	}
	key, err := d.lookup(name)
	if err != nil {
		return nil, err
	}
	return NewIn(key, values, opts...)
}

func decodeIsNull(d *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
	key, err := d.key(obj, fieldParameter, path)
	if err != nil {
		return nil, err
	}
	return NewIsNull(key)
}

func decodeIsNotNull(d *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
	key, err := d.key(obj, fieldParameter, path)
	if err != nil {
		return nil, err
	}
	return NewIsNotNull(key)
}

func decodeWithin(_ *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
	geometry, err := requireScalar(obj, fieldGeometry, path)
	if err != nil {
		return nil, err
	}
	return NewWithin(geometry)
}

func decodeGeoDistance(_ *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
	var fields [3]string
	for i, name := range []string{fieldLatitude, fieldLongitude, fieldDistance} {
		s, err := requireScalar(obj, name, path)
		if err != nil {
			return nil, err
		}
		fields[i] = s
	}
	return NewGeoDistance(fields[0], fields[1], fields[2])
}

func decodeNot(d *decoder, obj tagged.Object, path string, depth int) (Predicate, error) {
	raw, ok := obj.Get(fieldPredicate)
	if !ok {
		return nil, malformedAt(path, "missing %q", fieldPredicate)
	}
	child, err := d.decode(raw, path+"."+fieldPredicate, depth+1)
	if err != nil {
		return nil, err
	}
	return NewNot(child)
}

func decodeAnd(d *decoder, obj tagged.Object, path string, depth int) (Predicate, error) {
	children, err := d.children(obj, path, depth)
	if err != nil {
		return nil, err
	}
	return NewAnd(children...)
}

func decodeOr(d *decoder, obj tagged.Object, path string, depth int) (Predicate, error) {
	children, err := d.children(obj, path, depth)
	if err != nil {
		return nil, err
	}
	return NewOr(children...)
}

func (d *decoder) children(obj tagged.Object, path string, depth int) ([]Predicate, error) {
	raw, ok := obj.Get(fieldPredicates)
	if !ok {
		return nil, malformedAt(path, "missing %q", fieldPredicates)
	}
	arr, ok := raw.(tagged.Array)
	if !ok {
		return nil, malformedAt(path, "%q must be an array, got %s", fieldPredicates, tagged.TypeName(raw))
	}
	out := make([]Predicate, len(arr))
	for i, item := range arr {
		child, err := d.decode(item, path+"."+fieldPredicates+"["+strconv.Itoa(i)+"]", depth+1)
		if err != nil {
			return nil, err
		}
		out[i] = child
	}
	return out, nil
}

// decodeFullTextSearch also reads the legacy "key" field.
func decodeFullTextSearch(_ *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
	q, ok, err := optionalScalar(obj, fieldQ, path)
	if err != nil {
		return nil, err
	}
	if !ok {
		if q, ok, err = optionalScalar(obj, fieldKey, path); err != nil {
			return nil, err
		}
	}
	if !ok {
		return nil, malformedAt(path, "missing %q", fieldQ)
	}
	return NewFullTextSearch(q)
}

func decodeRawQuery(_ *decoder, obj tagged.Object, path string, _ int) (Predicate, error) {
	sql, err := requireScalar(obj, fieldSQL, path)
	if err != nil {
		return nil, err
	}
	return NewRawQuery(sql)
}

// key reads and resolves a parameter field for nodes that carry nothing else.
func (d *decoder) key(obj tagged.Object, field, path string) (param.Parameter, error) {
	name, err := requireScalar(obj, field, path)
	if err != nil {
		return param.Parameter{}, err
	}
	return d.lookup(name)
}

// lookup resolves a parameter name. Decoders call it only after every
// other required field has been read, so structural problems win over an
// unknown name.
func (d *decoder) lookup(name string) (param.Parameter, error) {
	p, ok := d.registry.Lookup(name)
	if !ok {
		return param.Parameter{}, &validate.Error{
			Code:    validate.ErrCodeUnknownParameter,
			Param:   name,
			Message: fmt.Sprintf("unknown %s parameter", d.registry.Name()),
		}
	}
	return p, nil
}

func leafOptions(obj tagged.Object, path string) ([]Option, error) {
	raw, ok := obj.Get(fieldMatchCase)
	if !ok {
		return nil, nil
	}
	switch v := raw.(type) {
	case tagged.Bool:
		return []Option{MatchCase(bool(v))}, nil
	case tagged.String:
		b, err := validate.ParseBool(string(v))
		if err == nil {
			return []Option{MatchCase(b)}, nil
		}
	}
	return nil, malformedAt(path, "%q must be a boolean", fieldMatchCase)
}

// scalarText reads strings, numbers and booleans as their literal text.
func scalarText(v tagged.Value) (string, bool) {
	switch s := v.(type) {
	case tagged.String:
		return string(s), true
	case tagged.Number:
		return string(s), true
	case tagged.Bool:
		return strconv.FormatBool(bool(s)), true
	}
	return "", false
}

func requireScalar(obj tagged.Object, field, path string) (string, error) {
	s, ok, err := optionalScalar(obj, field, path)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", malformedAt(path, "missing %q", field)
	}
	return s, nil
}

func optionalScalar(obj tagged.Object, field, path string) (string, bool, error) {
	raw, ok := obj.Get(field)
	if !ok {
		return "", false, nil
	}
	s, ok := scalarText(raw)
	if !ok {
		return "", false, malformedAt(path, "%q must be a scalar, got %s", field, tagged.TypeName(raw))
	}
	return s, true, nil
}

func malformedAt(path, format string, args ...any) *validate.Error {
	return &validate.Error{
		Code:    validate.ErrCodeMalformedPredicate,
		Message: path + ": " + fmt.Sprintf(format, args...),
	}
}

// atPath prefixes a constructor error with the location of the node that
// failed. Errors that already carry a location are left alone.
func atPath(err error, path string) error {
	ve, ok := err.(*validate.Error)
	if !ok || path == "$" || ve.Code == validate.ErrCodeMalformedPredicate || len(ve.Message) > 0 && ve.Message[0] == '$' {
		return err
	}
	cp := *ve
	cp.Message = path + ": " + ve.Message
	return &cp
}
