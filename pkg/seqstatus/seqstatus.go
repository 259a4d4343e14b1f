// Package seqstatus derives the sequencing / preservation status label of
// an occurrence from raw lab fields.
package seqstatus

import (
	"strings"

	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

// Status labels for field-collection records.
const (
	Sequenced         = "Sequenced"
	TissueAvailable   = "Tissue Available"
	PreservedSpecimen = "Preserved Specimen"
)

// GBIFRecord is the default label for aggregator records whose evidence
// code is unrecognized.
const GBIFRecord = "GBIF Record"

// Columns consulted by Classify.
const (
	RackColumn   = "Tube_1_rack"
	TissueColumn = "Tube_1_tissue"
)

// basisLabels maps Darwin Core basisOfRecord codes to display labels.
var basisLabels = map[string]string{
	"HUMAN_OBSERVATION":   "Observation",
	"OBSERVATION":         "Observation",
	"MACHINE_OBSERVATION": "Observation",
	"PRESERVED_SPECIMEN":  "Museum Specimen",
	"LIVING_SPECIMEN":     "Living Specimen",
}

// Classify derives the lab status of a field-collection row. It is a
// three-rule decision list, evaluated top to bottom, first match wins:
//
//  1. a rack assignment that is not "Not in TOL" and longer than 5
//     characters means the specimen was sequenced;
//  2. otherwise a collected tissue tube means tissue is available;
//  3. otherwise only the preserved specimen exists.
func Classify(row record.Row) string {
	rack := row[RackColumn]
	if !strings.Contains(rack, "Not in TOL") &&
		len(strings.TrimSpace(rack)) > 5 {
		return Sequenced
	}

	tissue := row[TissueColumn]
	if !strings.Contains(tissue, "NOT_COLLECTED") && row.Value(TissueColumn) != "" {
		return TissueAvailable
	}

	return PreservedSpecimen
}

// BasisLabel maps an aggregator evidence-type code to its display label,
// defaulting to GBIFRecord for unrecognized codes.
func BasisLabel(code string) string {
	if label, ok := basisLabels[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return label
	}
	return GBIFRecord
}
