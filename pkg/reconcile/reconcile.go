// Package reconcile merges occurrence batches from the three sources into
// one ordered sequence of canonical records.
//
// The reference batch is always processed first: it is the sole origin of
// the mimicry lookup table, which every other batch's canonicalization
// reads. After the table is built the remaining batches are independent
// and are canonicalized concurrently; concatenation order in the output is
// fixed regardless (reference, then field collection, then aggregator).
package reconcile

import (
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Fr4nzz/ithomiini-maps/pkg/mimicry"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

// Input carries the raw per-source batches. Empty batches (no rows) are
// skipped; a batch with rows but without its required columns is a fatal
// precondition failure.
type Input struct {
	// Reference is the curated dataset batch; it seeds the mimicry table.
	Reference record.Batch

	// Collection is the live field-collection batch.
	Collection record.Batch

	// Photos is the photo-links sheet paired with the collection batch.
	Photos record.Batch

	// Aggregator is the biodiversity-aggregator batch (Darwin Core
	// column names).
	Aggregator record.Batch

	// Images maps an aggregator record ID (gbifID) to an image URL.
	Images map[string]string
}

// Reconciler canonicalizes and merges source batches.
type Reconciler struct{}

// New creates a Reconciler.
func New() *Reconciler {
	return &Reconciler{}
}

// Reconcile runs the full merge. Within each batch source row order is
// preserved; rows lacking a usable scientific name or valid coordinates
// are dropped and counted in Stats. Identical IDs across batches are not
// deduplicated: ID namespaces are source-prefixed by construction, so a
// collision is an upstream data fault and is surfaced as-is.
func (r *Reconciler) Reconcile(in Input) ([]record.Occurrence, *Stats, error) {
	if len(in.Reference.Rows)+len(in.Collection.Rows)+len(in.Aggregator.Rows) == 0 {
		return nil, nil, EmptyInputError()
	}

	refRecords, refRows, refDrops, err := r.canonicalizeReference(in.Reference)
	if err != nil {
		return nil, nil, err
	}

	table := mimicry.New(refRows)
	slog.Info("Built mimicry lookup table",
		"reference_rows", len(refRows), "entries", table.Len())

	// Collection and aggregator no longer depend on each other once the
	// table exists. Each goroutine keeps its own drop counters so the
	// shared Stats is written only after Wait.
	var colRecords, aggRecords []record.Occurrence
	var colDrops, aggDrops drops
	var g errgroup.Group
	g.Go(func() error {
		var err error
		colRecords, colDrops, err = r.canonicalizeCollection(in.Collection, in.Photos, table)
		return err
	})
	g.Go(func() error {
		var err error
		aggRecords, aggDrops, err = r.canonicalizeAggregator(in.Aggregator, in.Images, table)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := newStats()
	stats.add(refDrops)
	stats.add(colDrops)
	stats.add(aggDrops)

	merged := make([]record.Occurrence, 0,
		len(refRecords)+len(colRecords)+len(aggRecords))
	merged = append(merged, refRecords...)
	merged = append(merged, colRecords...)
	merged = append(merged, aggRecords...)

	for i := range merged {
		merged[i].Normalize()
	}
	stats.tally(merged)

	slog.Info("Reconciled all sources",
		"records", len(merged),
		"dropped_no_name", stats.DroppedNoName,
		"dropped_no_coords", stats.DroppedNoCoords)

	return merged, stats, nil
}
