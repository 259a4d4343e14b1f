// Package sources defines the schema for sources.yaml, which describes
// the three occurrence sources the pipeline reconciles: the curated
// reference dataset, the live field-collection spreadsheet, and the
// biodiversity-aggregator feed.
package sources

// Sources loads the source configuration from wherever it is stored.
type Sources interface {
	Load() (*SourcesConfig, error)
}

// SourcesConfig represents the complete sources.yaml configuration file.
type SourcesConfig struct {
	// Reference is the curated dataset that seeds the mimicry table.
	Reference ReferenceSource `yaml:"reference"`

	// Collection is the live field-collection spreadsheet.
	Collection CollectionSource `yaml:"collection"`

	// Aggregator is the biodiversity-aggregator feed.
	Aggregator AggregatorSource `yaml:"aggregator"`
}

// ReferenceSource configures the curated reference dataset.
type ReferenceSource struct {
	// Label is the provenance tag written into every output record.
	Label string `yaml:"label"`

	// Path is the local Excel workbook with the published records.
	Path string `yaml:"path"`
}

// CollectionSource configures the field-collection Google Sheet.
type CollectionSource struct {
	Label string `yaml:"label"`

	// SpreadsheetID identifies the Google Sheets document.
	SpreadsheetID string `yaml:"spreadsheet_id"`

	// CollectionGID is the tab holding collection/sequencing data.
	CollectionGID string `yaml:"collection_gid"`

	// PhotoGID is the tab holding photo links.
	PhotoGID string `yaml:"photo_gid"`
}

// AggregatorSource configures the GBIF feed. Occurrences come either
// from a pre-downloaded Darwin Core Archive or, when no archive is
// configured, from the occurrence-search API limited by the fetch
// settings in config.yaml.
type AggregatorSource struct {
	Label string `yaml:"label"`

	// ArchivePath is an optional local DwC-A ZIP from the GBIF
	// download API.
	ArchivePath string `yaml:"archive_path,omitempty"`

	// Genera is the list of genera whose taxon keys are resolved for
	// API searches.
	Genera []string `yaml:"genera"`
}
