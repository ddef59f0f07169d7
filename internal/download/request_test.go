package download

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/occfilter/internal/param"
	"github.com/roach88/occfilter/internal/predicate"
	"github.com/roach88/occfilter/internal/validate"
)

func countryCR(t *testing.T) predicate.Predicate {
	t.Helper()
	p, err := predicate.NewEquals(param.Country, "CR")
	require.NoError(t, err)
	return p
}

func TestNewRequestNormalisesAddresses(t *testing.T) {
	r, err := NewRequest(countryCR(t), " alice ",
		[]string{" b@example.org", "a@example.org", "", "b@example.org "}, true, "")
	require.NoError(t, err)

	assert.Equal(t, "alice", r.Creator())
	assert.Equal(t, []string{"a@example.org", "b@example.org"}, r.NotificationAddresses())
	assert.Equal(t, "a@example.org,b@example.org", r.NotificationAddressesString())
	assert.True(t, r.SendNotification())
	assert.Equal(t, FormatSimpleCSV, r.Format())
	assert.Equal(t, ".zip", r.Format().Extension())
}

func TestNewRequestErrors(t *testing.T) {
	_, err := NewRequest(nil, "  ", nil, false, "")
	assert.True(t, validate.IsMalformedValue(err))

	_, err = NewRequest(nil, "alice", []string{"not-an-address"}, false, "")
	assert.True(t, validate.IsMalformedValue(err))

	_, err = NewRequest(nil, "alice", nil, false, Format("PDF"))
	assert.True(t, validate.IsMalformedValue(err))

	_, err = NewRequest(nil, "ali\xffce", nil, false, "")
	assert.True(t, validate.IsMalformedValue(err))

	_, err = NewRequest(nil, "alice", []string{"a\xff@example.org"}, false, "")
	assert.True(t, validate.IsMalformedValue(err))

	_, err = NewRequest(&predicate.Equals{}, "alice", nil, false, "")
	assert.True(t, validate.IsMalformedValue(err))
}

func TestNotificationAddressesIsACopy(t *testing.T) {
	r, err := NewRequest(nil, "alice", []string{"a@example.org"}, false, FormatDwCA)
	require.NoError(t, err)
	r.NotificationAddresses()[0] = "mutated"
	assert.Equal(t, []string{"a@example.org"}, r.NotificationAddresses())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("simple_avro")
	require.NoError(t, err)
	assert.Equal(t, FormatSimpleAvro, f)
	assert.Equal(t, ".avro", f.Extension())

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFormat, f)

	_, err = ParseFormat("xlsx")
	assert.True(t, validate.IsMalformedValue(err))

	for _, f := range Formats {
		assert.NotEmpty(t, f.Extension(), f)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	r, err := NewRequest(countryCR(t), "alice", []string{"a@example.org"}, true, FormatDwCA)
	require.NoError(t, err)

	data, err := Marshal(r)
	require.NoError(t, err)
	assert.Equal(t,
		`{"creator":"alice","format":"DWCA","notificationAddresses":["a@example.org"],`+
			`"predicate":{"key":"COUNTRY","type":"equals","value":"CR"},"sendNotification":true}`,
		string(data))

	back, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, r, back)

	k1, err := r.Key()
	require.NoError(t, err)
	k2, err := back.Key()
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)
}

func TestKeyIgnoresAddressOrder(t *testing.T) {
	a, err := NewRequest(nil, "alice", []string{"a@example.org", "b@example.org"}, false, "")
	require.NoError(t, err)
	b, err := NewRequest(nil, "alice", []string{"b@example.org", "a@example.org"}, false, "")
	require.NoError(t, err)
	ka, err := a.Key()
	require.NoError(t, err)
	kb, err := b.Key()
	require.NoError(t, err)
	assert.Equal(t, ka, kb)

	c, err := NewRequest(nil, "bob", nil, false, "")
	require.NoError(t, err)
	kc, err := c.Key()
	require.NoError(t, err)
	assert.NotEqual(t, ka, kc)
}

func TestUnmarshalLegacyFieldsAndDefaults(t *testing.T) {
	r, err := Unmarshal([]byte(`{
		"creator": "alice",
		"notification_address": ["a@example.org"],
		"send_notification": true
	}`))
	require.NoError(t, err)
	assert.Nil(t, r.Predicate())
	assert.Equal(t, []string{"a@example.org"}, r.NotificationAddresses())
	assert.True(t, r.SendNotification())
	assert.Equal(t, FormatSimpleCSV, r.Format())
}

func TestUnmarshalErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		code validate.Code
	}{
		{"not json", `{`, validate.ErrCodeMalformedPredicate},
		{"not object", `[]`, validate.ErrCodeMalformedPredicate},
		{"missing creator", `{}`, validate.ErrCodeMalformedValue},
		{"creator not string", `{"creator":1}`, validate.ErrCodeMalformedPredicate},
		{"addresses not array", `{"creator":"a","notificationAddresses":"x@y.z"}`, validate.ErrCodeMalformedPredicate},
		{"address not string", `{"creator":"a","notificationAddresses":[1]}`, validate.ErrCodeMalformedPredicate},
		{"send not bool", `{"creator":"a","sendNotification":"yes"}`, validate.ErrCodeMalformedPredicate},
		{"unknown format", `{"creator":"a","format":"PDF"}`, validate.ErrCodeMalformedValue},
		{"bad predicate", `{"creator":"a","predicate":{"type":"nope"}}`, validate.ErrCodeUnknownPredicateType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tc.in))
			require.Error(t, err)
			code, ok := validate.CodeOf(err)
			require.True(t, ok, err.Error())
			assert.Equal(t, tc.code, code, err.Error())
		})
	}
}

func TestUnmarshalPassesDecodeOptions(t *testing.T) {
	in := `{"creator":"a","predicate":{"type":"not","predicate":{"type":"not","predicate":{"type":"isNull","parameter":"YEAR"}}}}`
	_, err := Unmarshal([]byte(in), predicate.WithMaxDepth(2))
	assert.Error(t, err)

	_, err = Unmarshal([]byte(in), predicate.WithMaxDepth(3))
	assert.NoError(t, err)
}
