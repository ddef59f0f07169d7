package param

// Occurrence search parameters.
var (
	DatasetKey                    = New("DATASET_KEY", TypeUUID)
	Year                          = New("YEAR", TypeInteger)
	Month                         = New("MONTH", TypeInteger)
	Day                           = New("DAY", TypeInteger)
	StartDayOfYear                = New("START_DAY_OF_YEAR", TypeInteger)
	EndDayOfYear                  = New("END_DAY_OF_YEAR", TypeInteger)
	EventDate                     = New("EVENT_DATE", TypeDateInterval)
	LastInterpreted               = New("LAST_INTERPRETED", TypeDate)
	Modified                      = New("MODIFIED", TypeDate)
	DecimalLatitude               = New("DECIMAL_LATITUDE", TypeDouble)
	DecimalLongitude              = New("DECIMAL_LONGITUDE", TypeDouble)
	CoordinateUncertaintyInMeters = New("COORDINATE_UNCERTAINTY_IN_METERS", TypeDouble)
	DistanceFromCentroidInMeters  = New("DISTANCE_FROM_CENTROID_IN_METERS", TypeDouble)
	Country                       = NewEnum("COUNTRY", CountryVocabulary)
	Continent                     = NewEnum("CONTINENT", ContinentVocabulary)
	GbifRegion                    = NewEnum("GBIF_REGION", GbifRegionVocabulary)
	PublishingCountry             = NewEnum("PUBLISHING_COUNTRY", CountryVocabulary)
	PublishedByGbifRegion         = NewEnum("PUBLISHED_BY_GBIF_REGION", GbifRegionVocabulary)
	Elevation                     = New("ELEVATION", TypeDouble)
	Depth                         = New("DEPTH", TypeDouble)
	InstitutionCode               = New("INSTITUTION_CODE", TypeString)
	CollectionCode                = New("COLLECTION_CODE", TypeString)
	CatalogNumber                 = New("CATALOG_NUMBER", TypeString)
	RecordedBy                    = New("RECORDED_BY", TypeString)
	IdentifiedBy                  = New("IDENTIFIED_BY", TypeString)
	RecordNumber                  = New("RECORD_NUMBER", TypeString)
	BasisOfRecord                 = NewEnum("BASIS_OF_RECORD", BasisOfRecordVocabulary)
	TaxonKey                      = New("TAXON_KEY", TypeInteger)
	AcceptedTaxonKey              = New("ACCEPTED_TAXON_KEY", TypeInteger)
	KingdomKey                    = New("KINGDOM_KEY", TypeInteger)
	PhylumKey                     = New("PHYLUM_KEY", TypeInteger)
	ClassKey                      = New("CLASS_KEY", TypeInteger)
	OrderKey                      = New("ORDER_KEY", TypeInteger)
	FamilyKey                     = New("FAMILY_KEY", TypeInteger)
	GenusKey                      = New("GENUS_KEY", TypeInteger)
	SubgenusKey                   = New("SUBGENUS_KEY", TypeInteger)
	SpeciesKey                    = New("SPECIES_KEY", TypeInteger)
	ScientificName                = New("SCIENTIFIC_NAME", TypeString)
	VerbatimScientificName        = New("VERBATIM_SCIENTIFIC_NAME", TypeString)
	TaxonID                       = New("TAXON_ID", TypeString)
	HasCoordinate                 = New("HAS_COORDINATE", TypeBoolean)
	Geometry                      = New("GEOMETRY", TypeGeometry)
	GeoDistance                   = New("GEO_DISTANCE", TypeString)
	Distance                      = New("DISTANCE", TypeString)
	HasGeospatialIssue            = New("HAS_GEOSPATIAL_ISSUE", TypeBoolean)
	Issue                         = NewEnum("ISSUE", OccurrenceIssueVocabulary)
	TypeStatus                    = NewEnum("TYPE_STATUS", TypeStatusVocabulary)
	MediaType                     = NewEnum("MEDIA_TYPE", MediaTypeVocabulary)
	OccurrenceID                  = New("OCCURRENCE_ID", TypeString)
	OccurrenceStatus              = NewEnum("OCCURRENCE_STATUS", OccurrenceStatusVocabulary)
	EstablishmentMeans            = NewEnum("ESTABLISHMENT_MEANS", EstablishmentMeansVocabulary)
	IucnRedListCategory           = NewEnum("IUCN_RED_LIST_CATEGORY", IucnRedListCategoryVocabulary)
	Repatriated                   = New("REPATRIATED", TypeBoolean)
	IsInCluster                   = New("IS_IN_CLUSTER", TypeBoolean)
	IsSequenced                   = New("IS_SEQUENCED", TypeBoolean)
	OrganismID                    = New("ORGANISM_ID", TypeString)
	StateProvince                 = New("STATE_PROVINCE", TypeString)
	WaterBody                     = New("WATER_BODY", TypeString)
	Locality                      = New("LOCALITY", TypeString)
	EventID                       = New("EVENT_ID", TypeString)
	ParentEventID                 = New("PARENT_EVENT_ID", TypeString)
	SamplingProtocol              = New("SAMPLING_PROTOCOL", TypeString)
	Protocol                      = NewEnum("PROTOCOL", EndpointTypeVocabulary)
	License                       = NewEnum("LICENSE", LicenseVocabulary)
	PublishingOrg                 = New("PUBLISHING_ORG", TypeUUID)
	HostingOrganizationKey        = New("HOSTING_ORGANIZATION_KEY", TypeUUID)
	InstallationKey               = New("INSTALLATION_KEY", TypeUUID)
	NetworkKey                    = New("NETWORK_KEY", TypeUUID)
	InstitutionKey                = New("INSTITUTION_KEY", TypeUUID)
	CollectionKey                 = New("COLLECTION_KEY", TypeUUID)
	CrawlID                       = New("CRAWL_ID", TypeInteger)
	GbifID                        = New("GBIF_ID", TypeInteger)
)

// Occurrence is the occurrence search parameter catalog.
var Occurrence = MustNewRegistry("occurrence",
	DatasetKey, Year, Month, Day, StartDayOfYear, EndDayOfYear, EventDate,
	LastInterpreted, Modified, DecimalLatitude, DecimalLongitude,
	CoordinateUncertaintyInMeters, DistanceFromCentroidInMeters, Country, Continent,
	GbifRegion, PublishingCountry, PublishedByGbifRegion, Elevation, Depth,
	InstitutionCode, CollectionCode, CatalogNumber, RecordedBy, IdentifiedBy,
	RecordNumber, BasisOfRecord, TaxonKey, AcceptedTaxonKey, KingdomKey, PhylumKey,
	ClassKey, OrderKey, FamilyKey, GenusKey, SubgenusKey, SpeciesKey, ScientificName,
	VerbatimScientificName, TaxonID, HasCoordinate, Geometry, GeoDistance, Distance,
	HasGeospatialIssue, Issue, TypeStatus, MediaType, OccurrenceID, OccurrenceStatus,
	EstablishmentMeans, IucnRedListCategory, Repatriated, IsInCluster, IsSequenced,
	OrganismID, StateProvince, WaterBody, Locality, EventID, ParentEventID,
	SamplingProtocol, Protocol, License, PublishingOrg, HostingOrganizationKey,
	InstallationKey, NetworkKey, InstitutionKey, CollectionKey, CrawlID, GbifID,
)
