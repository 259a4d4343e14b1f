package reconcile

import (
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

// Stats is the observability summary of one reconcile run. Dropped rows
// are counted here rather than logged row-by-row; the caller decides how
// to report them.
type Stats struct {
	Total           int
	BySource        map[string]int
	ByStatus        map[string]int
	DroppedNoName   int
	DroppedNoCoords int
	UniqueSpecies   int
	UniqueGenera    int
	UniqueRings     int
	WithImages      int
	RingsInferred   int
}

// drops holds per-batch counters accumulated while canonicalizing; each
// batch keeps its own copy so concurrent batches never share state.
type drops struct {
	noName        int
	noCoords      int
	ringsInferred int
}

func newStats() *Stats {
	return &Stats{
		BySource: make(map[string]int),
		ByStatus: make(map[string]int),
	}
}

func (s *Stats) add(d drops) {
	s.DroppedNoName += d.noName
	s.DroppedNoCoords += d.noCoords
	s.RingsInferred += d.ringsInferred
}

// tally fills the aggregate counters from the final record sequence.
func (s *Stats) tally(recs []record.Occurrence) {
	species := make(map[string]struct{})
	genera := make(map[string]struct{})
	rings := make(map[string]struct{})

	s.Total = len(recs)
	for _, rec := range recs {
		s.BySource[rec.Source]++
		s.ByStatus[rec.SeqStatus]++
		species[rec.ScientificName] = struct{}{}
		genera[rec.Genus] = struct{}{}
		rings[rec.MimicryRing] = struct{}{}
		if rec.ImageURL != "" {
			s.WithImages++
		}
	}
	s.UniqueSpecies = len(species)
	s.UniqueGenera = len(genera)
	s.UniqueRings = len(rings)
}
