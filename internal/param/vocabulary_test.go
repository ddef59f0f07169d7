package param

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVocabularyLookup(t *testing.T) {
	tests := []struct {
		vocab *Vocabulary
		in    string
		want  string
		ok    bool
	}{
		{BasisOfRecordVocabulary, "PRESERVED_SPECIMEN", "PRESERVED_SPECIMEN", true},
		{BasisOfRecordVocabulary, "preserved specimen", "PRESERVED_SPECIMEN", true},
		{BasisOfRecordVocabulary, "Human-Observation", "HUMAN_OBSERVATION", true},
		{BasisOfRecordVocabulary, "SPECIMEN", "", false},
		{MediaTypeVocabulary, "stillimage", "StillImage", true},
		{ContinentVocabulary, "north_america", "NORTH_AMERICA", true},
		{LicenseVocabulary, "cc_by_4_0", "CC_BY_4_0", true},
		{OccurrenceStatusVocabulary, "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.vocab.Name()+"/"+tt.in, func(t *testing.T) {
			got, ok := tt.vocab.Lookup(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, tt.vocab.Contains(tt.in))
		})
	}
}

func TestCountryVocabulary(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"CR", "CR", true},
		{"cr", "CR", true},
		{"DK", "DK", true},
		{"DNK", "DK", true},
		{"usa", "US", true},
		{"XK", "XK", true},
		{"ZZ", "ZZ", true},
		{"QQ", "", false},
		{"C", "", false},
		{"COSTA", "", false},
		{"188", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := CountryVocabulary.Lookup(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Nil(t, CountryVocabulary.Values())
}

func TestVocabularyValuesIsCopy(t *testing.T) {
	values := OccurrenceStatusVocabulary.Values()
	assert.Equal(t, []string{"PRESENT", "ABSENT"}, values)
	values[0] = "MUTATED"
	assert.Equal(t, "PRESENT", OccurrenceStatusVocabulary.Values()[0])
}
