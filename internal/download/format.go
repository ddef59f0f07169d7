package download

import (
	"strings"

	"github.com/roach88/occfilter/internal/validate"
)

// Format is the file format a download is produced in.
type Format string

const (
	FormatDwCA                   Format = "DWCA"
	FormatSimpleCSV              Format = "SIMPLE_CSV"
	FormatSimpleAvro             Format = "SIMPLE_AVRO"
	FormatSimpleWithVerbatimAvro Format = "SIMPLE_WITH_VERBATIM_AVRO"
	FormatSpeciesList            Format = "SPECIES_LIST"
	FormatMapOfLife              Format = "MAP_OF_LIFE"
	FormatBionomia               Format = "BIONOMIA"
	FormatIUCN                   Format = "IUCN"
)

// DefaultFormat is used when a request names none.
const DefaultFormat = FormatSimpleCSV

var extensions = map[Format]string{
	FormatDwCA:                   ".zip",
	FormatSimpleCSV:              ".zip",
	FormatSimpleAvro:             ".avro",
	FormatSimpleWithVerbatimAvro: ".avro",
	FormatSpeciesList:            ".zip",
	FormatMapOfLife:              ".avro",
	FormatBionomia:               ".zip",
	FormatIUCN:                   ".csv",
}

// Formats lists every known format.
var Formats = []Format{
	FormatDwCA, FormatSimpleCSV, FormatSimpleAvro, FormatSimpleWithVerbatimAvro,
	FormatSpeciesList, FormatMapOfLife, FormatBionomia, FormatIUCN,
}

// ParseFormat resolves a format name case-insensitively. An empty name
// yields DefaultFormat.
func ParseFormat(s string) (Format, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "" {
		return DefaultFormat, nil
	}
	f := Format(name)
	if _, ok := extensions[f]; !ok {
		return "", validate.Errorf(validate.ErrCodeMalformedValue, "format", s, "unknown download format")
	}
	return f, nil
}

// Extension returns the file extension including the dot, e.g. ".zip".
func (f Format) Extension() string { return extensions[f] }

func (f Format) String() string { return string(f) }
