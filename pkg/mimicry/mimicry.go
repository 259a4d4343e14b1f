// Package mimicry builds and queries the mimicry-ring lookup table.
//
// Mimicry-ring classification exists only in the reference dataset, so the
// table is built once from reference rows and then consulted while the other
// sources are canonicalized. Keys are two-tiered: a full
// (species, subspecies) key when the reference row carries a subspecies, and
// a species-only fallback key. Subspecies coverage is sparse and
// inconsistent across sources; the species-level fallback maximizes
// inferred coverage without fabricating subspecies-level precision.
package mimicry

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RingUnknown is the in-band sentinel for an uninferred mimicry ring.
const RingUnknown = "Unknown"

// Rings holds the sex-specific mimicry-ring classification of a taxon.
type Rings struct {
	Male   string
	Female string
}

// ReferenceRow is one row of the reference dataset, reduced to the fields
// the table needs.
type ReferenceRow struct {
	Genus      string
	Species    string
	Subspecies string
	MaleRing   string
	FemaleRing string
}

type key struct {
	name       string
	subspecies string
}

// Table is an immutable two-tier index from taxon to mimicry rings.
// Build it once per run with New; concurrent readers need no locking.
type Table struct {
	entries map[key]Rings
}

var titleCaser = cases.Title(language.English)

// New builds the lookup table from reference rows. Insertion is
// first-write-wins on both tiers: a later row for an already-seen
// (species, subspecies) pair or species does not overwrite the earlier one.
func New(rows []ReferenceRow) *Table {
	t := &Table{entries: make(map[key]Rings)}

	for _, row := range rows {
		name := strings.TrimSpace(row.Genus) + " " + strings.TrimSpace(row.Species)
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		rings := Rings{
			Male:   NormalizeRing(row.MaleRing),
			Female: NormalizeRing(row.FemaleRing),
		}

		if ssp := normalizeSubspecies(row.Subspecies); ssp != "" {
			full := key{name: name, subspecies: ssp}
			if _, ok := t.entries[full]; !ok {
				t.entries[full] = rings
			}
		}

		speciesOnly := key{name: name}
		if _, ok := t.entries[speciesOnly]; !ok {
			t.entries[speciesOnly] = rings
		}
	}

	return t
}

// Lookup returns the mimicry rings for a scientific name, trying the full
// (name, subspecies) key first and falling back to the species-only key.
// A miss is not an error; it yields the Unknown sentinel for both sexes.
func (t *Table) Lookup(scientificName, subspecies string) Rings {
	unknown := Rings{Male: RingUnknown, Female: RingUnknown}

	name := strings.ToLower(strings.TrimSpace(scientificName))
	if name == "" {
		return unknown
	}

	if ssp := normalizeSubspecies(subspecies); ssp != "" {
		if rings, ok := t.entries[key{name: name, subspecies: ssp}]; ok {
			return rings
		}
	}

	if rings, ok := t.entries[key{name: name}]; ok {
		return rings
	}

	return unknown
}

// Len returns the number of entries across both tiers.
func (t *Table) Len() int {
	return len(t.entries)
}

// NormalizeRing folds a raw mimicry-ring value to Title Case.
// Empty values and placeholders collapse to the Unknown sentinel.
func NormalizeRing(s string) string {
	s = strings.TrimSpace(s)
	low := strings.ToLower(s)
	if low == "" || low == "nan" || low == "unknown" {
		return RingUnknown
	}
	return titleCaser.String(low)
}

func normalizeSubspecies(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "nan" || s == "none" {
		return ""
	}
	return s
}
