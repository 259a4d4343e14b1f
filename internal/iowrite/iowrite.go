// Package iowrite persists the reconciled records as the JSON document
// the map site consumes, and reports run statistics.
package iowrite

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"

	"github.com/Fr4nzz/ithomiini-maps/pkg/config"
	"github.com/Fr4nzz/ithomiini-maps/pkg/ithomaps"
	"github.com/Fr4nzz/ithomiini-maps/pkg/reconcile"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

const outputFile = "map_points.json"

type iowrite struct {
	cfg *config.Config
}

// New creates a Writer that emits map_points.json into the configured
// output directory.
func New(cfg *config.Config) ithomaps.Writer {
	res := iowrite{cfg: cfg}
	return &res
}

func (w *iowrite) Write(
	recs []record.Occurrence,
	stats *reconcile.Stats,
) (string, error) {
	dir := w.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", WriteError(dir, err)
	}

	enc := gnfmt.GNjson{Pretty: w.cfg.Output.Pretty}
	data, err := enc.Encode(recs)
	if err != nil {
		return "", WriteError(dir, err)
	}

	path := filepath.Join(dir, outputFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", WriteError(path, err)
	}

	slog.Info("Wrote reconciled records",
		"path", path,
		"records", humanize.Comma(int64(stats.Total)),
		"size", humanize.Bytes(uint64(len(data))),
	)
	return path, nil
}

// Report prints the run summary to stdout, the same numbers that go to
// the structured log.
func Report(stats *reconcile.Stats) {
	fmt.Printf("\nReconciled %s records\n",
		humanize.Comma(int64(stats.Total)))

	fmt.Println("\nBy source:")
	for _, kv := range sortedCounts(stats.BySource) {
		fmt.Printf("  %-28s %8s\n", kv.name,
			humanize.Comma(int64(kv.count)))
	}

	fmt.Println("\nBy sequencing status:")
	for _, kv := range sortedCounts(stats.ByStatus) {
		fmt.Printf("  %-28s %8s\n", kv.name,
			humanize.Comma(int64(kv.count)))
	}

	fmt.Printf(`
Species:           %6d
Genera:            %6d
Mimicry rings:     %6d
Rings inferred:    %6d
With images:       %6d
Dropped (no name):  %5d
Dropped (no coords):%5d
`,
		stats.UniqueSpecies, stats.UniqueGenera, stats.UniqueRings,
		stats.RingsInferred, stats.WithImages,
		stats.DroppedNoName, stats.DroppedNoCoords,
	)
}

type countEntry struct {
	name  string
	count int
}

func sortedCounts(m map[string]int) []countEntry {
	res := make([]countEntry, 0, len(m))
	for name, count := range m {
		res = append(res, countEntry{name, count})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].count != res[j].count {
			return res[i].count > res[j].count
		}
		return res[i].name < res[j].name
	})
	return res
}
