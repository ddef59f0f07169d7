package param

import (
	"fmt"
	"strings"
)

// ValueType is the semantic type of a parameter's values.
type ValueType int

const (
	TypeString ValueType = iota + 1
	TypeInteger
	TypeDouble
	TypeBoolean
	TypeDate
	TypeDateInterval
	TypeUUID
	TypeEnum
	TypeGeometry
)

var valueTypeNames = map[ValueType]string{
	TypeString:       "String",
	TypeInteger:      "Integer",
	TypeDouble:       "Double",
	TypeBoolean:      "Boolean",
	TypeDate:         "Date",
	TypeDateInterval: "DateInterval",
	TypeUUID:         "UUID",
	TypeEnum:         "Enum",
	TypeGeometry:     "Geometry",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ValueType(%d)", int(t))
}

// Numeric reports whether values of this type are integers or doubles.
func (t ValueType) Numeric() bool {
	return t == TypeInteger || t == TypeDouble
}

// Temporal reports whether values of this type are dates or date intervals.
func (t ValueType) Temporal() bool {
	return t == TypeDate || t == TypeDateInterval
}

// Ordered reports whether range comparisons (<, <=, >, >=) make sense.
func (t ValueType) Ordered() bool {
	return t.Numeric() || t.Temporal()
}

// Parameter is a named, typed search field.
//
// Parameters are comparable values: two parameters are equal when they are
// the same catalog entry. The zero Parameter is not a valid parameter.
type Parameter struct {
	name       string
	valueType  ValueType
	vocabulary *Vocabulary
}

// New creates a parameter of a non-enumeration type.
func New(name string, t ValueType) Parameter {
	if t == TypeEnum {
		panic(fmt.Sprintf("param %s: enumeration parameters need a vocabulary, use NewEnum", name))
	}
	return Parameter{name: name, valueType: t}
}

// NewEnum creates an enumeration parameter backed by vocab.
func NewEnum(name string, vocab *Vocabulary) Parameter {
	if vocab == nil {
		panic(fmt.Sprintf("param %s: nil vocabulary", name))
	}
	return Parameter{name: name, valueType: TypeEnum, vocabulary: vocab}
}

// Name returns the canonical upper snake case name, e.g. "EVENT_DATE".
func (p Parameter) Name() string { return p.name }

// Type returns the declared value type.
func (p Parameter) Type() ValueType { return p.valueType }

// Vocabulary returns the allowed values of an Enum parameter, nil otherwise.
func (p Parameter) Vocabulary() *Vocabulary { return p.vocabulary }

// IsZero reports whether p is the zero Parameter.
func (p Parameter) IsZero() bool { return p.name == "" }

func (p Parameter) String() string { return p.name }

// MarshalText implements encoding.TextMarshaler.
func (p Parameter) MarshalText() ([]byte, error) {
	if p.IsZero() {
		return nil, fmt.Errorf("marshal zero parameter")
	}
	return []byte(p.name), nil
}

// Normalize folds a parameter name for lookup: upper case, with spaces,
// underscores, hyphens and dots removed.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.TrimSpace(name) {
		switch r {
		case ' ', '_', '-', '.', '\t':
			continue
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(b.String())
}
