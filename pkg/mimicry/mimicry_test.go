package mimicry_test

import (
	"testing"

	"github.com/Fr4nzz/ithomiini-maps/pkg/mimicry"
	"github.com/stretchr/testify/assert"
)

func TestLookupTiers(t *testing.T) {
	table := mimicry.New([]mimicry.ReferenceRow{
		{Genus: "Aeria", Species: "elara", MaleRing: "Red", FemaleRing: "Red"},
		{Genus: "Aeria", Species: "elara", Subspecies: "eximia",
			MaleRing: "Blue", FemaleRing: "Blue"},
	})

	tests := []struct {
		name       string
		sciName    string
		subspecies string
		want       mimicry.Rings
	}{
		{
			name:       "full key match",
			sciName:    "Aeria elara",
			subspecies: "eximia",
			want:       mimicry.Rings{Male: "Blue", Female: "Blue"},
		},
		{
			name:       "unknown subspecies falls back to species",
			sciName:    "Aeria elara",
			subspecies: "other",
			want:       mimicry.Rings{Male: "Red", Female: "Red"},
		},
		{
			name:    "species-only lookup",
			sciName: "Aeria elara",
			want:    mimicry.Rings{Male: "Red", Female: "Red"},
		},
		{
			name:    "case folded",
			sciName: "AERIA ELARA",
			want:    mimicry.Rings{Male: "Red", Female: "Red"},
		},
		{
			name:    "species absent from reference",
			sciName: "Unknown genus",
			want:    mimicry.Rings{Male: "Unknown", Female: "Unknown"},
		},
		{
			name: "empty name",
			want: mimicry.Rings{Male: "Unknown", Female: "Unknown"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Lookup(tt.sciName, tt.subspecies))
		})
	}
}

// The species-only fallback is seeded by the first occurrence of a species;
// later rows must not overwrite it.
func TestFirstWriteWins(t *testing.T) {
	table := mimicry.New([]mimicry.ReferenceRow{
		{Genus: "Melinaea", Species: "marsaeus", Subspecies: "rileyi",
			MaleRing: "Tiger", FemaleRing: "Tiger"},
		{Genus: "Melinaea", Species: "marsaeus", Subspecies: "mothone",
			MaleRing: "Orange", FemaleRing: "Dark"},
		{Genus: "Melinaea", Species: "marsaeus", Subspecies: "rileyi",
			MaleRing: "Clobbered", FemaleRing: "Clobbered"},
	})

	// Species fallback keeps the first row's rings.
	got := table.Lookup("Melinaea marsaeus", "")
	assert.Equal(t, mimicry.Rings{Male: "Tiger", Female: "Tiger"}, got)

	// Full keys keep their own first-seen values.
	got = table.Lookup("Melinaea marsaeus", "mothone")
	assert.Equal(t, mimicry.Rings{Male: "Orange", Female: "Dark"}, got)
	got = table.Lookup("Melinaea marsaeus", "rileyi")
	assert.Equal(t, mimicry.Rings{Male: "Tiger", Female: "Tiger"}, got)
}

func TestNormalizeRing(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"tiger", "Tiger"},
		{"AGNOSIA", "Agnosia"},
		{"banded orange", "Banded Orange"},
		{"  eurimedia  ", "Eurimedia"},
		{"", "Unknown"},
		{"nan", "Unknown"},
		{"NAN", "Unknown"},
		{"unknown", "Unknown"},
		{"Unknown", "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mimicry.NormalizeRing(tt.raw), tt.raw)
	}
}

func TestSubspeciesPlaceholders(t *testing.T) {
	table := mimicry.New([]mimicry.ReferenceRow{
		{Genus: "Greta", Species: "oto", Subspecies: "nan",
			MaleRing: "Glasswing", FemaleRing: "Glasswing"},
	})

	// A placeholder subspecies seeds only the species-only tier.
	assert.Equal(t, 1, table.Len())
	got := table.Lookup("Greta oto", "nan")
	assert.Equal(t, mimicry.Rings{Male: "Glasswing", Female: "Glasswing"}, got)
}
