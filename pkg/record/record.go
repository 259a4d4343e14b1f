// Package record defines the canonical occurrence record that all sources
// are mapped into, plus the raw tabular shapes (Row, Batch) the per-source
// adapters consume.
package record

import (
	"math"
	"strconv"
	"strings"
)

// Defaults for taxonomy fields. Every record in this pipeline is an
// Ithomiini butterfly, so family and tribe are constant unless a source
// says otherwise.
const (
	FamilyDefault  = "Nymphalidae"
	TribeDefault   = "Ithomiini"
	CountryUnknown = "Unknown"
)

// Occurrence is the canonical output record. Optional string fields use the
// empty string for "absent" and are omitted from JSON; mimicry_ring,
// country and sequencing_status instead carry an explicit "Unknown"
// sentinel that downstream renderers display as-is.
type Occurrence struct {
	ID             string  `json:"id"`
	ScientificName string  `json:"scientific_name"`
	Genus          string  `json:"genus"`
	Species        string  `json:"species"`
	Subspecies     string  `json:"subspecies,omitempty"`
	Family         string  `json:"family"`
	Tribe          string  `json:"tribe"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	MimicryRing    string  `json:"mimicry_ring"`
	SeqStatus      string  `json:"sequencing_status"`
	Source         string  `json:"source"`
	ImageURL       string  `json:"image_url,omitempty"`
	Country        string  `json:"country"`
	Location       string  `json:"collection_location,omitempty"`
	Date           string  `json:"observation_date,omitempty"`
	ObservationURL string  `json:"observation_url,omitempty"`
}

// Normalize applies the final cleaning pass: placeholder strings in
// optional fields become absent, and required fields that ended up empty
// get their sentinels. It does not touch coordinates; invalid coordinates
// drop the record before it reaches this point.
func (o *Occurrence) Normalize() {
	o.Subspecies = dropPlaceholder(o.Subspecies)
	o.ImageURL = dropPlaceholder(o.ImageURL)
	o.Location = dropPlaceholder(o.Location)
	o.Date = dropPlaceholder(o.Date)
	o.ObservationURL = dropPlaceholder(o.ObservationURL)

	if o.Genus == "" {
		o.Genus = "Unknown"
	}
	if o.Species == "" {
		o.Species = "sp."
	}
	if o.Family == "" {
		o.Family = FamilyDefault
	}
	if o.Tribe == "" {
		o.Tribe = TribeDefault
	}
	if o.MimicryRing == "" {
		o.MimicryRing = "Unknown"
	}
	if dropPlaceholder(o.Country) == "" {
		o.Country = CountryUnknown
	}
}

// dropPlaceholder converts null-convention literals to absent.
func dropPlaceholder(s string) string {
	switch s {
	case "", "None", "nan":
		return ""
	}
	return s
}

// ParseCoord parses a decimal-degree coordinate. The boolean is false for
// empty, non-numeric or non-finite values.
func ParseCoord(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ValidCoords reports whether the pair is a plausible point on Earth.
func ValidCoords(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
