// Package ithomaps defines the interfaces between the pure reconciliation
// core and its impure collaborators (spreadsheet fetch, Excel read, GBIF
// API, archive processing, output writing). Implementations live in
// internal/io* packages.
package ithomaps

import (
	"context"

	"github.com/Fr4nzz/ithomiini-maps/pkg/reconcile"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

// Version and Build are set by the linker.
var (
	Version = "v0.1.0"
	Build   = "n/a"
)

// ReferenceReader reads the curated reference dataset from a local
// workbook into a raw batch.
type ReferenceReader interface {
	// Read loads the first sheet of the workbook at path. The batch's
	// Source is set to label.
	Read(path, label string) (record.Batch, error)
}

// SheetFetcher downloads tabs of the field-collection spreadsheet.
type SheetFetcher interface {
	// FetchTab downloads one tab as CSV and parses it into a batch
	// tagged with label.
	FetchTab(ctx context.Context, gid, label string) (record.Batch, error)
}

// OccurrenceSearcher enriches the dataset through the aggregator's
// occurrence-search API.
type OccurrenceSearcher interface {
	// Search resolves the given taxon names to keys and fetches their
	// occurrences. It returns the batch (Darwin Core columns) and an
	// image lookup keyed by record ID.
	Search(ctx context.Context, names []string, label string) (record.Batch, map[string]string, error)
}

// ArchiveProcessor converts a pre-downloaded Darwin Core Archive into a
// raw batch plus an image lookup from the archive's multimedia table.
type ArchiveProcessor interface {
	Process(ctx context.Context, path, label string) (record.Batch, map[string]string, error)
}

// Writer persists the reconciled records and reports run statistics.
type Writer interface {
	// Write serializes the records and returns the output path.
	Write(recs []record.Occurrence, stats *reconcile.Stats) (string, error)
}
