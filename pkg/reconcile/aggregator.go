package reconcile

import (
	"regexp"
	"strings"

	"github.com/Fr4nzz/ithomiini-maps/pkg/mimicry"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
	"github.com/Fr4nzz/ithomiini-maps/pkg/seqstatus"
	"github.com/Fr4nzz/ithomiini-maps/pkg/taxon"
)

// Darwin Core column names used by the aggregator batch.
const (
	aggColID          = "gbifID"
	aggColGenus       = "genus"
	aggColEpithet     = "specificEpithet"
	aggColInfra       = "infraspecificEpithet"
	aggColSpecies     = "species"
	aggColFullName    = "scientificName"
	aggColFamily      = "family"
	aggColLat         = "decimalLatitude"
	aggColLng         = "decimalLongitude"
	aggColCountryCode = "countryCode"
	aggColCountry     = "country"
	aggColDate        = "eventDate"
	aggColBasis       = "basisOfRecord"
	aggColDatasetKey  = "datasetKey"
	aggColInstitution = "institutionCode"
	aggColOccurrence  = "occurrenceID"
	aggColReferences  = "references"
)

// SourceINaturalist tags aggregator records that originate from the
// iNaturalist research-grade dataset.
const SourceINaturalist = "iNaturalist"

// iNatDatasetKey is the GBIF dataset key of iNaturalist research-grade
// observations.
const iNatDatasetKey = "50c9509d-22c7-4a22-a47d-8c48425ef4a7"

var (
	iNatObsRx   = regexp.MustCompile(`inaturalist\.org/observations/(\d+)`)
	iNatURNRx   = regexp.MustCompile(`:(\d+)$`)
	allDigitsRx = regexp.MustCompile(`^\d+$`)
	iNatObsURL  = "https://www.inaturalist.org/observations/"
	gbifOccURL  = "https://www.gbif.org/occurrence/"
)

// canonicalizeAggregator maps the aggregator batch (Darwin Core rows)
// into canonical records.
func (r *Reconciler) canonicalizeAggregator(
	batch record.Batch,
	images map[string]string,
	table *mimicry.Table,
) ([]record.Occurrence, drops, error) {
	var d drops
	if len(batch.Rows) == 0 {
		return nil, d, nil
	}

	required := []string{aggColID, aggColLat, aggColLng}
	if missing := batch.MissingColumns(required...); missing != nil {
		return nil, d, MissingColumnsError(batch.Source, missing)
	}

	records := make([]record.Occurrence, 0, len(batch.Rows))
	for _, row := range batch.Rows {
		lat, okLat := record.ParseCoord(row[aggColLat])
		lng, okLng := record.ParseCoord(row[aggColLng])
		if !okLat || !okLng || !record.ValidCoords(lat, lng) {
			d.noCoords++
			continue
		}

		parts, ok := taxon.SplitParts(
			row.Value(aggColGenus), row.Value(aggColEpithet),
			row[aggColInfra],
			row.Resolve(aggColSpecies, aggColFullName),
		)
		if !ok {
			d.noName++
			continue
		}

		gbifID := row.Value(aggColID)
		source := batch.Source
		if isINaturalist(row) {
			source = SourceINaturalist
		}

		rings := table.Lookup(parts.Genus+" "+parts.Species, parts.Subspecies)
		if rings.Male != mimicry.RingUnknown {
			d.ringsInferred++
		}

		records = append(records, record.Occurrence{
			ID:             "GBIF_" + gbifID,
			ScientificName: parts.ScientificName,
			Genus:          parts.Genus,
			Species:        parts.Species,
			Subspecies:     parts.Subspecies,
			Family:         row.Value(aggColFamily),
			Tribe:          record.TribeDefault,
			Lat:            lat,
			Lng:            lng,
			MimicryRing:    rings.Male,
			SeqStatus:      seqstatus.BasisLabel(row[aggColBasis]),
			Source:         source,
			ImageURL:       images[gbifID],
			Country:        row.Resolve(aggColCountryCode, aggColCountry),
			Location:       row.Resolve(record.LocationFields...),
			Date:           row.Value(aggColDate),
			ObservationURL: observationURL(row, gbifID),
		})
	}

	return records, d, nil
}

// isINaturalist detects iNaturalist provenance via the dataset key, the
// institution code, or the occurrenceID host.
func isINaturalist(row record.Row) bool {
	if row[aggColDatasetKey] == iNatDatasetKey {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(row[aggColInstitution]), "inaturalist") {
		return true
	}
	return strings.Contains(strings.ToLower(row[aggColOccurrence]), "inaturalist.org")
}

// observationURL builds the outbound link for a record. iNaturalist
// records link to the observation page, reconstructed from whatever shape
// the occurrenceID takes (full URL, bare number, or URN). Everything else
// falls back to the record's references URL, then to the GBIF occurrence
// page.
func observationURL(row record.Row, gbifID string) string {
	occID := strings.TrimSpace(row[aggColOccurrence])

	if isINaturalist(row) {
		if strings.HasPrefix(occID, iNatObsURL) {
			return occID
		}
		if m := iNatObsRx.FindStringSubmatch(occID); m != nil {
			return iNatObsURL + m[1]
		}
		if allDigitsRx.MatchString(occID) {
			return iNatObsURL + occID
		}
		if m := iNatURNRx.FindStringSubmatch(occID); m != nil {
			return iNatObsURL + m[1]
		}
	}

	if refs := strings.TrimSpace(row[aggColReferences]); strings.HasPrefix(refs, "http") {
		return refs
	}

	return gbifOccURL + gbifID
}
