package validate

import (
	"errors"
	"fmt"
)

// Code categorizes validation and decoding failures.
type Code string

const (
	// ErrCodeUnknownParameter indicates a parameter name the registry does not know.
	ErrCodeUnknownParameter Code = "UNKNOWN_PARAMETER"

	// ErrCodeTypeMismatch indicates an operation the parameter's type does not support,
	// e.g. LIKE on a numeric field.
	ErrCodeTypeMismatch Code = "TYPE_MISMATCH"

	// ErrCodeMalformedValue indicates an unparsable range, date, UUID, geometry or enum value.
	ErrCodeMalformedValue Code = "MALFORMED_VALUE"

	// ErrCodeOutOfRange indicates a latitude, longitude, month or distance outside its bounds.
	ErrCodeOutOfRange Code = "OUT_OF_RANGE"

	// ErrCodeEmptyCollection indicates a zero-element AND, OR or IN.
	ErrCodeEmptyCollection Code = "EMPTY_COLLECTION"

	// ErrCodeUnknownPredicateType indicates an unrecognised "type" tag on decode.
	ErrCodeUnknownPredicateType Code = "UNKNOWN_PREDICATE_TYPE"

	// ErrCodeMalformedPredicate indicates missing or mistyped fields on decode.
	ErrCodeMalformedPredicate Code = "MALFORMED_PREDICATE"
)

// Error is the single error type for parameter, value and predicate failures.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Param is the offending parameter name, if any.
	Param string

	// Value is the offending raw value, if any.
	Value string

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Param != "" && e.Value != "":
		return fmt.Sprintf("%s: %s (param=%s, value=%q)", e.Code, e.Message, e.Param, e.Value)
	case e.Param != "":
		return fmt.Sprintf("%s: %s (param=%s)", e.Code, e.Message, e.Param)
	case e.Value != "":
		return fmt.Sprintf("%s: %s (value=%q)", e.Code, e.Message, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Errorf creates an *Error with a formatted message.
func Errorf(code Code, param, value, format string, args ...any) *Error {
	return &Error{Code: code, Param: param, Value: value, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) (Code, bool) {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Code, true
	}
	return "", false
}

// IsCode reports whether err's chain contains an *Error with the given code.
func IsCode(err error, code Code) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

// IsTypeMismatch reports whether err is a TYPE_MISMATCH error.
func IsTypeMismatch(err error) bool { return IsCode(err, ErrCodeTypeMismatch) }

// IsMalformedValue reports whether err is a MALFORMED_VALUE error.
func IsMalformedValue(err error) bool { return IsCode(err, ErrCodeMalformedValue) }

// IsOutOfRange reports whether err is an OUT_OF_RANGE error.
func IsOutOfRange(err error) bool { return IsCode(err, ErrCodeOutOfRange) }

func malformed(value, format string, args ...any) *Error {
	return Errorf(ErrCodeMalformedValue, "", value, format, args...)
}

func outOfRange(value, format string, args ...any) *Error {
	return Errorf(ErrCodeOutOfRange, "", value, format, args...)
}

// withParam stamps the parameter name onto err if it is an *Error without one.
func withParam(err error, param string) error {
	var ve *Error
	if errors.As(err, &ve) && ve.Param == "" {
		cp := *ve
		cp.Param = param
		return &cp
	}
	return err
}
