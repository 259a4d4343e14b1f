package sources

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for structural problems. A source can
// be left unconfigured (it is then skipped by the pipeline), but a
// half-configured source is an error.
func (sc *SourcesConfig) Validate() error {
	var problems []string

	if sc.Reference.Path != "" && sc.Reference.Label == "" {
		problems = append(problems, "reference: label is required when path is set")
	}

	col := sc.Collection
	if col.SpreadsheetID != "" {
		if col.CollectionGID == "" {
			problems = append(problems,
				"collection: collection_gid is required when spreadsheet_id is set")
		}
		if col.Label == "" {
			problems = append(problems, "collection: label is required")
		}
	}

	agg := sc.Aggregator
	if (agg.ArchivePath != "" || len(agg.Genera) > 0) && agg.Label == "" {
		problems = append(problems, "aggregator: label is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid sources config:\n  %s",
			strings.Join(problems, "\n  "))
	}
	return nil
}

// HasReference reports whether the reference source is configured.
func (sc *SourcesConfig) HasReference() bool {
	return sc.Reference.Path != ""
}

// HasCollection reports whether the collection source is configured.
func (sc *SourcesConfig) HasCollection() bool {
	return sc.Collection.SpreadsheetID != "" && sc.Collection.CollectionGID != ""
}

// HasArchive reports whether a DwC-A archive is configured.
func (sc *SourcesConfig) HasArchive() bool {
	return sc.Aggregator.ArchivePath != ""
}
