package tagged

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonicalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    Value
		expected string
	}{
		{"string", String("hello"), `"hello"`},
		{"empty string", String(""), `""`},
		{"int", Number("42"), "42"},
		{"negative int", Number("-100"), "-100"},
		{"float", Number("12.50"), "12.5"},
		{"exponent", Number("1E3"), "1000"},
		{"tiny float", Number("0.0000001"), "1e-7"},
		{"huge float", Number("1e21"), "1e+21"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"null", Null{}, "null"},
		{"empty array", Array{}, "[]"},
		{"empty object", Object{}, "{}"},
		{"array of strings", Array{String("a"), String("b")}, `["a","b"]`},
		{"simple object", Object{"a": Number("1")}, `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalSortedKeys(t *testing.T) {
	obj := Object{
		"zebra": Number("1"),
		"alpha": Number("2"),
		"beta":  Number("3"),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":2,"beta":3,"zebra":1}`, string(result))
}

func TestMarshalCanonicalNestedSortedKeys(t *testing.T) {
	obj := Object{
		"z": Object{"b": Number("1"), "a": Number("2")},
		"a": Number("3"),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"z":{"a":2,"b":1}}`, string(result))
}

func TestMarshalCanonicalUTF16Ordering(t *testing.T) {
	// U+10000 encodes as the surrogate pair 0xD800 0xDC00, which sorts
	// before U+E000 in UTF-16 but after it in UTF-8.
	obj := Object{
		"\uE000":     Number("1"),
		"\U00010000": Number("2"),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"\uE000\":1}", string(result))
}

func TestMarshalCanonicalEscaping(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"html not escaped", "<a & b>", `"<a & b>"`},
		{"quote", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "a\nb", `"a\nb"`},
		{"control", "a\x01b", `"a\u0001b"`},
		{"line separator literal", "a\u2028b", "\"a\u2028b\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(String(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonicalKeepsStringBytes(t *testing.T) {
	decomposed, err := MarshalCanonical(String("e\u0301"))
	require.NoError(t, err)
	assert.Equal(t, "\"e\u0301\"", string(decomposed))

	composed, err := MarshalCanonical(String("\u00e9"))
	require.NoError(t, err)
	assert.NotEqual(t, composed, decomposed)
}

func TestMarshalCanonicalRejectsInvalidUTF8(t *testing.T) {
	_, err := MarshalCanonical(String("a\xff"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UTF-8")

	_, err = MarshalCanonical(Object{"a\xfe": Null{}})
	require.Error(t, err)

	_, err = Hash("a/v1", Array{String("a\xff")})
	require.Error(t, err)
}

func TestMarshalCanonicalRejectsNil(t *testing.T) {
	_, err := MarshalCanonical(Array{nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "array[0]")
}

func TestHashDomainSeparation(t *testing.T) {
	v := Object{"type": String("equals")}

	h1, err := Hash("a/v1", v)
	require.NoError(t, err)
	h2, err := Hash("b/v1", v)
	require.NoError(t, err)
	h3, err := Hash("a/v1", Object{"type": String("equals")})
	require.NoError(t, err)

	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, h2, "different domains must hash differently")
	assert.Equal(t, h1, h3, "hash is deterministic")
}
