package reconcile_test

import (
	"testing"

	"github.com/Fr4nzz/ithomiini-maps/pkg/reconcile"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceBatch(rows ...record.Row) record.Batch {
	return record.Batch{
		Source: "Dore et al. (2025)",
		Columns: []string{
			"ID_obs", "Genus", "Species", "Sub.species",
			"Latitude", "Longitude", "M.mimicry", "F.mimicry", "Country",
		},
		Rows: rows,
	}
}

func aggregatorBatch(rows ...record.Row) record.Batch {
	return record.Batch{
		Source: "GBIF",
		Columns: []string{
			"gbifID", "genus", "specificEpithet", "infraspecificEpithet",
			"species", "scientificName", "family",
			"decimalLatitude", "decimalLongitude", "countryCode",
			"locality", "stateProvince", "eventDate", "basisOfRecord",
			"datasetKey", "institutionCode", "occurrenceID", "references",
		},
		Rows: rows,
	}
}

func collectionBatch(rows ...record.Row) record.Batch {
	return record.Batch{
		Source: "Sanger Institute",
		Columns: []string{
			"CAM_ID", "CAM_ID_insectary", "SPECIES", "Genus",
			"Subspecies_Form", " Family", "Tribe", "Country",
			"DECIMAL_LATITUDE", "DECIMAL_LONGITUDE",
			"Tube_1_rack", "Tube_1_tissue",
		},
		Rows: rows,
	}
}

func TestReconcileInfersRingsAcrossSources(t *testing.T) {
	in := reconcile.Input{
		Reference: referenceBatch(record.Row{
			"ID_obs": "17", "Genus": "Aeria", "Species": "elara",
			"Latitude": "-4.2", "Longitude": "-78.9",
			"M.mimicry": "eurimedia", "F.mimicry": "eurimedia",
			"Country": "Ecuador",
		}),
		Aggregator: aggregatorBatch(record.Row{
			"gbifID": "991", "genus": "Aeria", "specificEpithet": "elara",
			"decimalLatitude": "-3.9", "decimalLongitude": "-79.1",
			"countryCode": "EC", "basisOfRecord": "HUMAN_OBSERVATION",
		}),
	}

	recs, stats, err := reconcile.New().Reconcile(in)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	ref, agg := recs[0], recs[1]
	assert.Equal(t, "DORE_17", ref.ID)
	assert.Equal(t, "Eurimedia", ref.MimicryRing)

	// Aggregator record inherits the inferred ring from the reference
	// dataset instead of staying Unknown.
	assert.Equal(t, "GBIF_991", agg.ID)
	assert.Equal(t, "Eurimedia", agg.MimicryRing)
	assert.Equal(t, "Observation", agg.SeqStatus)
	assert.Equal(t, 1, stats.RingsInferred)
}

func TestReconcileBatchOrderAndRowOrder(t *testing.T) {
	in := reconcile.Input{
		Reference: referenceBatch(
			record.Row{"ID_obs": "1", "Genus": "Ithomia", "Species": "agnosia",
				"Latitude": "1", "Longitude": "1", "M.mimicry": "a", "F.mimicry": "a"},
			record.Row{"ID_obs": "2", "Genus": "Ithomia", "Species": "salapia",
				"Latitude": "2", "Longitude": "2", "M.mimicry": "b", "F.mimicry": "b"},
		),
		Collection: collectionBatch(record.Row{
			"CAM_ID": "CAM001234", "SPECIES": "Ithomia agnosia",
			"DECIMAL_LATITUDE": "3", "DECIMAL_LONGITUDE": "3",
		}),
		Aggregator: aggregatorBatch(record.Row{
			"gbifID": "5", "genus": "Ithomia", "specificEpithet": "agnosia",
			"decimalLatitude": "4", "decimalLongitude": "4",
		}),
	}

	recs, _, err := reconcile.New().Reconcile(in)
	require.NoError(t, err)
	require.Len(t, recs, 4)

	ids := []string{recs[0].ID, recs[1].ID, recs[2].ID, recs[3].ID}
	assert.Equal(t, []string{"DORE_1", "DORE_2", "CAM001234", "GBIF_5"}, ids)
}

func TestReconcileDropsInvalidRows(t *testing.T) {
	in := reconcile.Input{
		Reference: referenceBatch(
			// no coordinates: dropped from output, still seeds the table
			record.Row{"ID_obs": "1", "Genus": "Greta", "Species": "oto",
				"M.mimicry": "glasswing", "F.mimicry": "glasswing"},
		),
		Aggregator: aggregatorBatch(
			// sequence code instead of a name: parse rejection
			record.Row{"gbifID": "2", "scientificName": "BOLD:AAA1234",
				"decimalLatitude": "1", "decimalLongitude": "1"},
			// latitude out of range
			record.Row{"gbifID": "3", "genus": "Greta", "specificEpithet": "oto",
				"decimalLatitude": "95", "decimalLongitude": "1"},
			// survives, and inherits the ring seeded by the dropped row
			record.Row{"gbifID": "4", "genus": "Greta", "specificEpithet": "oto",
				"decimalLatitude": "1", "decimalLongitude": "1"},
		),
	}

	recs, stats, err := reconcile.New().Reconcile(in)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "GBIF_4", recs[0].ID)
	assert.Equal(t, "Glasswing", recs[0].MimicryRing)
	assert.Equal(t, 1, stats.DroppedNoName)
	assert.Equal(t, 2, stats.DroppedNoCoords)
}

func TestReconcileMissingColumnsIsFatal(t *testing.T) {
	in := reconcile.Input{
		Reference: record.Batch{
			Source:  "Dore et al. (2025)",
			Columns: []string{"Genus", "Species"},
			Rows:    []record.Row{{"Genus": "Greta", "Species": "oto"}},
		},
	}
	_, _, err := reconcile.New().Reconcile(in)
	assert.Error(t, err)
}

func TestReconcileEmptyInput(t *testing.T) {
	_, _, err := reconcile.New().Reconcile(reconcile.Input{})
	assert.Error(t, err)
}

func TestCollectionRecords(t *testing.T) {
	photos := record.Batch{
		Source:  "Photo_links",
		Columns: []string{"Name", "URL"},
		Rows: []record.Row{
			{"Name": "cam001234_dorsal.ORF",
				"URL": "https://drive.google.com/file/d/raw1/view"},
			{"Name": "cam001234_dorsal.jpg",
				"URL": "https://drive.google.com/file/d/abc123/view"},
			{"Name": "CAM001234_ventral.jpg",
				"URL": "https://drive.google.com/file/d/later/view"},
		},
	}
	in := reconcile.Input{
		Reference: referenceBatch(record.Row{
			"ID_obs": "1", "Genus": "Mechanitis", "Species": "polymnia",
			"Latitude": "1", "Longitude": "1",
			"M.mimicry": "tiger", "F.mimicry": "tiger",
		}),
		Collection: collectionBatch(
			record.Row{
				"CAM_ID": "cam001234 ", "SPECIES": "Mechanitis polymnia",
				"Subspecies_Form":  "isthmia",
				"DECIMAL_LATITUDE": "-2.1", "DECIMAL_LONGITUDE": "-77.5",
				"Tube_1_rack": "RACK001A", "Country": "Peru",
			},
			record.Row{
				"SPECIES":          "Mechanitis polymnia",
				"DECIMAL_LATITUDE": "-2.2", "DECIMAL_LONGITUDE": "-77.6",
			},
		),
		Photos: photos,
	}

	recs, _, err := reconcile.New().Reconcile(in)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	withID := recs[1]
	assert.Equal(t, "CAM001234", withID.ID)
	assert.Equal(t, "isthmia", withID.Subspecies)
	assert.Equal(t, "Sequenced", withID.SeqStatus)
	// RAW file skipped, first usable photo wins.
	assert.Equal(t,
		"https://wsrv.nl/?url=https://drive.google.com/uc?id=abc123&w=400&output=webp",
		withID.ImageURL)
	// Ring inferred from the reference batch.
	assert.Equal(t, "Tiger", withID.MimicryRing)

	// ID-less rows get a stable generated ID instead of being merged.
	noID := recs[2]
	assert.True(t, len(noID.ID) > len("SANGER_"))
	assert.Contains(t, noID.ID, "SANGER_")
	assert.Empty(t, noID.ImageURL)
}

func TestAggregatorObservationURLs(t *testing.T) {
	in := reconcile.Input{
		Reference: referenceBatch(record.Row{
			"ID_obs": "1", "Genus": "Greta", "Species": "oto",
			"Latitude": "1", "Longitude": "1",
			"M.mimicry": "glasswing", "F.mimicry": "glasswing",
		}),
		Aggregator: aggregatorBatch(
			record.Row{"gbifID": "10", "genus": "Greta", "specificEpithet": "oto",
				"decimalLatitude": "1", "decimalLongitude": "1",
				"institutionCode": "iNaturalist",
				"occurrenceID":    "https://www.inaturalist.org/observations/4242"},
			record.Row{"gbifID": "11", "genus": "Greta", "specificEpithet": "oto",
				"decimalLatitude": "1", "decimalLongitude": "1",
				"datasetKey":   "50c9509d-22c7-4a22-a47d-8c48425ef4a7",
				"occurrenceID": "urn:catalog:iNaturalist:Observation:777"},
			record.Row{"gbifID": "12", "genus": "Greta", "specificEpithet": "oto",
				"decimalLatitude": "1", "decimalLongitude": "1",
				"references": "https://example.org/rec/12"},
			record.Row{"gbifID": "13", "genus": "Greta", "specificEpithet": "oto",
				"decimalLatitude": "1", "decimalLongitude": "1"},
		),
	}

	recs, _, err := reconcile.New().Reconcile(in)
	require.NoError(t, err)
	require.Len(t, recs, 5)

	assert.Equal(t, "iNaturalist", recs[1].Source)
	assert.Equal(t, "https://www.inaturalist.org/observations/4242", recs[1].ObservationURL)
	assert.Equal(t, "iNaturalist", recs[2].Source)
	assert.Equal(t, "https://www.inaturalist.org/observations/777", recs[2].ObservationURL)
	assert.Equal(t, "GBIF", recs[3].Source)
	assert.Equal(t, "https://example.org/rec/12", recs[3].ObservationURL)
	assert.Equal(t, "https://www.gbif.org/occurrence/13", recs[4].ObservationURL)
}

// Output invariants: finite in-range coordinates, no empty-string
// subspecies, sentinels present.
func TestReconcileOutputInvariants(t *testing.T) {
	in := reconcile.Input{
		Reference: referenceBatch(record.Row{
			"ID_obs": "1", "Genus": "Napeogenes", "Species": "inachia",
			"Sub.species": "nan",
			"Latitude":    "-6.5", "Longitude": "-76.3",
			"M.mimicry": "", "F.mimicry": "",
		}),
		Aggregator: aggregatorBatch(record.Row{
			"gbifID": "2", "genus": "Napeogenes", "specificEpithet": "inachia",
			"decimalLatitude": "0.5", "decimalLongitude": "-78.0",
		}),
	}

	recs, _, err := reconcile.New().Reconcile(in)
	require.NoError(t, err)

	for _, rec := range recs {
		assert.NotEmpty(t, rec.ScientificName)
		assert.True(t, record.ValidCoords(rec.Lat, rec.Lng))
		assert.NotEqual(t, "nan", rec.Subspecies)
		assert.NotEmpty(t, rec.MimicryRing)
		assert.NotEmpty(t, rec.Country)
	}
	assert.Equal(t, "Unknown", recs[0].MimicryRing)
	assert.Equal(t, "Unknown", recs[0].Country)
}
