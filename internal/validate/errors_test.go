package validate

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Code: ErrCodeOutOfRange, Param: "MONTH", Value: "13", Message: "month 13 outside [1, 12]"},
			`OUT_OF_RANGE: month 13 outside [1, 12] (param=MONTH, value="13")`},
		{&Error{Code: ErrCodeEmptyCollection, Param: "COUNTRY", Message: "in needs at least one value"},
			`EMPTY_COLLECTION: in needs at least one value (param=COUNTRY)`},
		{&Error{Code: ErrCodeUnknownPredicateType, Value: "bogus", Message: "unknown predicate type"},
			`UNKNOWN_PREDICATE_TYPE: unknown predicate type (value="bogus")`},
		{&Error{Code: ErrCodeEmptyCollection, Message: "and needs at least one predicate"},
			`EMPTY_COLLECTION: and needs at least one predicate`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.err.Error())
	}
}

func TestCodeOfWrapped(t *testing.T) {
	cause := errors.New("boom")
	inner := &Error{Code: ErrCodeTypeMismatch, Message: "like needs a string parameter", Err: cause}
	wrapped := fmt.Errorf("decode: %w", inner)

	code, ok := CodeOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrCodeTypeMismatch, code)
	assert.True(t, IsTypeMismatch(wrapped))
	assert.False(t, IsOutOfRange(wrapped))
	assert.ErrorIs(t, wrapped, cause)

	_, ok = CodeOf(cause)
	assert.False(t, ok)
	assert.False(t, IsCode(nil, ErrCodeTypeMismatch))
}
