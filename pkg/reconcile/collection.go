package reconcile

import (
	"strings"

	"github.com/gnames/gnuuid"

	"github.com/Fr4nzz/ithomiini-maps/pkg/mimicry"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
	"github.com/Fr4nzz/ithomiini-maps/pkg/seqstatus"
	"github.com/Fr4nzz/ithomiini-maps/pkg/taxon"
)

// Column names of the field-collection spreadsheet. The family column
// carries a leading space in the live sheet; both spellings are accepted.
const (
	colColID          = "CAM_ID"
	colColIDInsectary = "CAM_ID_insectary"
	colColName        = "SPECIES"
	colColGenus       = "Genus"
	colColSubspecies  = "Subspecies_Form"
	colColFamily      = "Family"
	colColFamilySp    = " Family"
	colColTribe       = "Tribe"
	colColCountry     = "Country"
	colColLat         = "DECIMAL_LATITUDE"
	colColLng         = "DECIMAL_LONGITUDE"
	colColLatAlt      = "Latitude"
	colColLngAlt      = "Longitude"
)

// canonicalizeCollection maps the field-collection batch into canonical
// records, resolving specimen IDs, photo links, lab status and inferred
// mimicry rings.
func (r *Reconciler) canonicalizeCollection(
	batch, photoBatch record.Batch,
	table *mimicry.Table,
) ([]record.Occurrence, drops, error) {
	var d drops
	if len(batch.Rows) == 0 {
		return nil, d, nil
	}

	if missing := batch.MissingColumns(colColName); missing != nil {
		return nil, d, MissingColumnsError(batch.Source, missing)
	}
	latCol, lngCol := colColLat, colColLng
	if !batch.HasColumn(latCol) {
		latCol, lngCol = colColLatAlt, colColLngAlt
	}
	if missing := batch.MissingColumns(latCol, lngCol); missing != nil {
		return nil, d, MissingColumnsError(batch.Source, missing)
	}

	photos := photoLinks(photoBatch)

	records := make([]record.Occurrence, 0, len(batch.Rows))
	for _, row := range batch.Rows {
		parts, ok := taxon.SplitParts("", "", "", row.Value(colColName))
		if !ok {
			d.noName++
			continue
		}
		if g := row.Value(colColGenus); g != "" {
			parts.Genus = g
		}
		if parts.Subspecies == "" {
			parts.Subspecies = taxon.NormalizeSubspecies(row[colColSubspecies])
		}

		lat, okLat := record.ParseCoord(row[latCol])
		lng, okLng := record.ParseCoord(row[lngCol])
		if !okLat || !okLng || !record.ValidCoords(lat, lng) {
			d.noCoords++
			continue
		}

		id := specimenID(row, parts.ScientificName, row[latCol], row[lngCol])

		rings := table.Lookup(parts.Genus+" "+parts.Species, parts.Subspecies)
		if rings.Male != mimicry.RingUnknown {
			d.ringsInferred++
		}

		records = append(records, record.Occurrence{
			ID:             id,
			ScientificName: parts.ScientificName,
			Genus:          parts.Genus,
			Species:        parts.Species,
			Subspecies:     parts.Subspecies,
			Family:         row.Resolve(colColFamilySp, colColFamily),
			Tribe:          row.Value(colColTribe),
			Lat:            lat,
			Lng:            lng,
			MimicryRing:    rings.Male,
			SeqStatus:      seqstatus.Classify(row),
			Source:         batch.Source,
			ImageURL:       photos[cleanSpecimenID(row.Resolve(colColID, colColIDInsectary))],
			Country:        row.Value(colColCountry),
		})
	}

	return records, d, nil
}

// specimenID picks the record ID: the CAM specimen code when one exists,
// otherwise a deterministic UUID v5 derived from the name and the raw
// coordinate strings, so re-runs produce stable IDs for ID-less rows.
func specimenID(row record.Row, name, rawLat, rawLng string) string {
	if id := cleanSpecimenID(row.Resolve(colColID, colColIDInsectary)); id != "" {
		return id
	}
	seed := name + "|" + strings.TrimSpace(rawLat) + "|" + strings.TrimSpace(rawLng)
	return "SANGER_" + gnuuid.New(seed).String()
}

// cleanSpecimenID normalizes a specimen code: uppercase, trimmed,
// placeholder literals removed.
func cleanSpecimenID(id string) string {
	id = strings.ToUpper(strings.TrimSpace(id))
	switch id {
	case "NAN", "NONE", "NA":
		return ""
	}
	return id
}
