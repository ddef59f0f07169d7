package param

import (
	"strings"

	"golang.org/x/text/language"
)

// Vocabulary is the closed set of values an Enum parameter accepts.
// Matching ignores case and separators, so "preserved specimen" resolves to
// PRESERVED_SPECIMEN.
type Vocabulary struct {
	name    string
	values  []string
	index   map[string]string
	resolve func(string) (string, bool)
}

// NewVocabulary creates a fixed vocabulary from its canonical values.
func NewVocabulary(name string, values ...string) *Vocabulary {
	v := &Vocabulary{
		name:   name,
		values: values,
		index:  make(map[string]string, len(values)),
	}
	for _, value := range values {
		v.index[Normalize(value)] = value
	}
	return v
}

// Name returns the vocabulary name, e.g. "BasisOfRecord".
func (v *Vocabulary) Name() string { return v.name }

// Lookup returns the canonical spelling of value.
func (v *Vocabulary) Lookup(value string) (string, bool) {
	if v.resolve != nil {
		return v.resolve(value)
	}
	canonical, ok := v.index[Normalize(value)]
	return canonical, ok
}

// Contains reports whether value is a member of the vocabulary.
func (v *Vocabulary) Contains(value string) bool {
	_, ok := v.Lookup(value)
	return ok
}

// Values returns the canonical values in declaration order. Vocabularies
// backed by an external standard (ISO 3166) return nil.
func (v *Vocabulary) Values() []string {
	if v.values == nil {
		return nil
	}
	out := make([]string, len(v.values))
	copy(out, v.values)
	return out
}

// User-assigned ISO 3166 codes that the occurrence index uses.
var specialCountries = map[string]string{
	"XK":  "XK", // Kosovo
	"XKX": "XK",
	"XZ":  "XZ", // international waters
	"ZZ":  "ZZ", // unknown
}

func resolveCountry(value string) (string, bool) {
	code := strings.ToUpper(strings.TrimSpace(value))
	if len(code) != 2 && len(code) != 3 {
		return "", false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", false
		}
	}
	if special, ok := specialCountries[code]; ok {
		return special, true
	}
	region, err := language.ParseRegion(code)
	if err != nil || !region.IsCountry() {
		return "", false
	}
	return region.String(), true
}

var (
	BasisOfRecordVocabulary = NewVocabulary("BasisOfRecord",
		"PRESERVED_SPECIMEN", "FOSSIL_SPECIMEN", "LIVING_SPECIMEN", "OBSERVATION",
		"HUMAN_OBSERVATION", "MACHINE_OBSERVATION", "MATERIAL_SAMPLE", "MATERIAL_CITATION",
		"OCCURRENCE", "LITERATURE")

	ContinentVocabulary = NewVocabulary("Continent",
		"AFRICA", "ANTARCTICA", "ASIA", "OCEANIA", "EUROPE", "NORTH_AMERICA", "SOUTH_AMERICA")

	GbifRegionVocabulary = NewVocabulary("GbifRegion",
		"AFRICA", "ASIA", "EUROPE", "NORTH_AMERICA", "OCEANIA", "LATIN_AMERICA", "ANTARCTICA")

	EstablishmentMeansVocabulary = NewVocabulary("EstablishmentMeans",
		"NATIVE", "INTRODUCED", "NATURALISED", "INVASIVE", "MANAGED", "UNCERTAIN")

	OccurrenceStatusVocabulary = NewVocabulary("OccurrenceStatus", "PRESENT", "ABSENT")

	LicenseVocabulary = NewVocabulary("License",
		"CC0_1_0", "CC_BY_4_0", "CC_BY_NC_4_0", "UNSPECIFIED", "UNSUPPORTED")

	MediaTypeVocabulary = NewVocabulary("MediaType",
		"StillImage", "MovingImage", "Sound", "InteractiveResource")

	EndpointTypeVocabulary = NewVocabulary("EndpointType",
		"EML", "FEED", "WFS", "WMS", "TCS_RDF", "TCS_XML", "DWC_ARCHIVE", "DIGIR",
		"DIGIR_MANIS", "TAPIR", "BIOCASE", "BIOCASE_XML_ARCHIVE", "OAI_PMH", "COLDP",
		"CAMTRAP_DP", "BIOM_1_0", "BIOM_2_1", "ACEF", "TEXT_TREE", "OTHER")

	TypeStatusVocabulary = NewVocabulary("TypeStatus",
		"TYPE", "TYPE_SPECIES", "TYPE_GENUS", "ALLOLECTOTYPE", "ALLONEOTYPE", "ALLOTYPE",
		"COTYPE", "EPITYPE", "EXEPITYPE", "EXHOLOTYPE", "EXISOTYPE", "EXLECTOTYPE",
		"EXNEOTYPE", "EXPARATYPE", "EXSYNTYPE", "EXTYPE", "HAPANTOTYPE", "HOLOTYPE",
		"HYPOTYPE", "ICONOTYPE", "ISOLECTOTYPE", "ISONEOTYPE", "ISOPARATYPE", "ISOSYNTYPE",
		"ISOTYPE", "LECTOTYPE", "NEOTYPE", "NOTATYPE", "ORIGINALMATERIAL", "PARALECTOTYPE",
		"PARANEOTYPE", "PARATYPE", "PLASTOHOLOTYPE", "PLASTOISOTYPE", "PLASTOLECTOTYPE",
		"PLASTONEOTYPE", "PLASTOPARATYPE", "PLASTOSYNTYPE", "PLASTOTYPE", "PLESIOTYPE",
		"SECONDARYTYPE", "SUPPLEMENTARYTYPE", "SYNTYPE", "TOPOTYPE")

	OccurrenceIssueVocabulary = NewVocabulary("OccurrenceIssue",
		"ZERO_COORDINATE", "COORDINATE_OUT_OF_RANGE", "COORDINATE_INVALID", "COORDINATE_ROUNDED",
		"GEODETIC_DATUM_INVALID", "GEODETIC_DATUM_ASSUMED_WGS84", "COORDINATE_REPROJECTED",
		"COORDINATE_REPROJECTION_FAILED", "COORDINATE_REPROJECTION_SUSPICIOUS",
		"COORDINATE_ACCURACY_INVALID", "COORDINATE_PRECISION_INVALID",
		"COORDINATE_UNCERTAINTY_METERS_INVALID", "COORDINATE_PRECISION_UNCERTAINTY_MISMATCH",
		"COUNTRY_COORDINATE_MISMATCH", "COUNTRY_MISMATCH", "COUNTRY_INVALID",
		"COUNTRY_DERIVED_FROM_COORDINATES", "CONTINENT_COUNTRY_MISMATCH", "CONTINENT_INVALID",
		"CONTINENT_DERIVED_FROM_COORDINATES", "PRESUMED_SWAPPED_COORDINATE",
		"PRESUMED_NEGATED_LONGITUDE", "PRESUMED_NEGATED_LATITUDE", "RECORDED_DATE_MISMATCH",
		"RECORDED_DATE_INVALID", "RECORDED_DATE_UNLIKELY", "TAXON_MATCH_FUZZY",
		"TAXON_MATCH_HIGHERRANK", "TAXON_MATCH_NONE", "DEPTH_NOT_METRIC", "DEPTH_UNLIKELY",
		"DEPTH_MIN_MAX_SWAPPED", "DEPTH_NON_NUMERIC", "ELEVATION_UNLIKELY",
		"ELEVATION_MIN_MAX_SWAPPED", "ELEVATION_NOT_METRIC", "ELEVATION_NON_NUMERIC",
		"MODIFIED_DATE_INVALID", "MODIFIED_DATE_UNLIKELY", "IDENTIFIED_DATE_UNLIKELY",
		"IDENTIFIED_DATE_INVALID", "BASIS_OF_RECORD_INVALID", "TYPE_STATUS_INVALID",
		"MULTIMEDIA_DATE_INVALID", "MULTIMEDIA_URI_INVALID", "REFERENCES_URI_INVALID",
		"INTERPRETATION_ERROR", "INDIVIDUAL_COUNT_INVALID",
		"INDIVIDUAL_COUNT_CONFLICTS_WITH_OCCURRENCE_STATUS", "OCCURRENCE_STATUS_UNPARSABLE",
		"OCCURRENCE_STATUS_INFERRED_FROM_INDIVIDUAL_COUNT",
		"OCCURRENCE_STATUS_INFERRED_FROM_BASIS_OF_RECORD", "GEOREFERENCED_DATE_UNLIKELY",
		"GEOREFERENCED_DATE_INVALID", "AMBIGUOUS_INSTITUTION", "AMBIGUOUS_COLLECTION",
		"INSTITUTION_MATCH_NONE", "COLLECTION_MATCH_NONE", "INSTITUTION_MATCH_FUZZY",
		"COLLECTION_MATCH_FUZZY", "INSTITUTION_COLLECTION_MISMATCH", "POSSIBLY_ON_LOAN")

	IucnRedListCategoryVocabulary = NewVocabulary("IucnRedListCategory",
		"EX", "EW", "CR", "EN", "VU", "NT", "LC", "DD", "NE")

	// CountryVocabulary accepts ISO 3166-1 alpha-2 and alpha-3 codes and
	// resolves them to alpha-2.
	CountryVocabulary = &Vocabulary{name: "Country", resolve: resolveCountry}
)
