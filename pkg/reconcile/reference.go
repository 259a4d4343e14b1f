package reconcile

import (
	"github.com/Fr4nzz/ithomiini-maps/pkg/mimicry"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
	"github.com/Fr4nzz/ithomiini-maps/pkg/taxon"
)

// Column names of the curated reference dataset.
const (
	refColID         = "ID_obs"
	refColGenus      = "Genus"
	refColSpecies    = "Species"
	refColSubspecies = "Sub.species"
	refColLat        = "Latitude"
	refColLng        = "Longitude"
	refColMaleRing   = "M.mimicry"
	refColFemaleRing = "F.mimicry"
	refColCountry    = "Country"
)

// StatusPublished marks records that come from the published reference
// dataset rather than live collection or aggregation.
const StatusPublished = "Published"

// canonicalizeReference maps the reference batch into canonical records
// and extracts the rows that seed the mimicry lookup table. Rows dropped
// from the record output still contribute to the table: the trait data is
// valid even when the row has no usable coordinates.
func (r *Reconciler) canonicalizeReference(
	batch record.Batch,
) ([]record.Occurrence, []mimicry.ReferenceRow, drops, error) {
	var d drops
	if len(batch.Rows) == 0 {
		return nil, nil, d, nil
	}

	required := []string{
		refColID, refColGenus, refColSpecies,
		refColLat, refColLng, refColMaleRing, refColFemaleRing,
	}
	if missing := batch.MissingColumns(required...); missing != nil {
		return nil, nil, d, MissingColumnsError(batch.Source, missing)
	}

	records := make([]record.Occurrence, 0, len(batch.Rows))
	refRows := make([]mimicry.ReferenceRow, 0, len(batch.Rows))

	for _, row := range batch.Rows {
		parts, ok := taxon.SplitParts(
			row.Value(refColGenus), row.Value(refColSpecies),
			row[refColSubspecies], "",
		)
		if !ok {
			d.noName++
			continue
		}

		refRows = append(refRows, mimicry.ReferenceRow{
			Genus:      parts.Genus,
			Species:    parts.Species,
			Subspecies: parts.Subspecies,
			MaleRing:   row[refColMaleRing],
			FemaleRing: row[refColFemaleRing],
		})

		lat, okLat := record.ParseCoord(row[refColLat])
		lng, okLng := record.ParseCoord(row[refColLng])
		if !okLat || !okLng || !record.ValidCoords(lat, lng) {
			d.noCoords++
			continue
		}

		records = append(records, record.Occurrence{
			ID:             "DORE_" + row.Value(refColID),
			ScientificName: parts.ScientificName,
			Genus:          parts.Genus,
			Species:        parts.Species,
			Subspecies:     parts.Subspecies,
			Family:         record.FamilyDefault,
			Tribe:          record.TribeDefault,
			Lat:            lat,
			Lng:            lng,
			MimicryRing:    mimicry.NormalizeRing(row[refColMaleRing]),
			SeqStatus:      StatusPublished,
			Source:         batch.Source,
			Country:        row.Value(refColCountry),
		})
	}

	return records, refRows, d, nil
}
