package taxon_test

import (
	"testing"

	"github.com/Fr4nzz/ithomiini-maps/pkg/taxon"
	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "parenthesized author citation",
			raw:  "Melinaea ludovica lilis (Reakirt, 1866)",
			want: "Melinaea ludovica lilis",
		},
		{
			name: "binomial with parenthesized citation",
			raw:  "Mechanitis polymnia (Linnaeus, 1758)",
			want: "Mechanitis polymnia",
		},
		{
			name: "citation without parentheses",
			raw:  "Ithomia agnosia Hewitson, 1855",
			want: "Ithomia agnosia",
		},
		{
			name: "bare author and year",
			raw:  "Oleria onega Hewitson 1852",
			want: "Oleria onega",
		},
		{
			name: "no citation passes through",
			raw:  "Mechanitis menophilus nevadensis",
			want: "Mechanitis menophilus nevadensis",
		},
		{
			name: "internal whitespace collapsed",
			raw:  "Greta   oto",
			want: "Greta oto",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "BOLD identifier rejected",
			raw:  "BOLD:AAA1234",
			want: "",
		},
		{
			name: "sequence code rejected",
			raw:  "CAM012345",
			want: "",
		},
		{
			name: "single token rejected",
			raw:  "Mechanitis",
			want: "",
		},
		{
			name: "lowercase genus rejected",
			raw:  "mechanitis polymnia",
			want: "",
		},
		{
			name: "uppercase epithet rejected",
			raw:  "Mechanitis Polymnia",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, taxon.Clean(tt.raw))
		})
	}
}

// Clean is idempotent: a cleaned name passes through unchanged.
func TestCleanIdempotent(t *testing.T) {
	names := []string{
		"Melinaea ludovica lilis (Reakirt, 1866)",
		"Mechanitis polymnia (Linnaeus, 1758)",
		"Ithomia agnosia Hewitson, 1855",
		"Napeogenes inachia",
	}
	for _, raw := range names {
		once := taxon.Clean(raw)
		assert.NotEmpty(t, once)
		assert.Equal(t, once, taxon.Clean(once), raw)
	}
}

func TestSplitParts(t *testing.T) {
	tests := []struct {
		name     string
		genus    string
		epithet  string
		infra    string
		fallback string
		want     taxon.Parts
		ok       bool
	}{
		{
			name:    "genus and epithet are authoritative",
			genus:   "Mechanitis",
			epithet: "polymnia",
			infra:   "isthmia",
			want: taxon.Parts{
				ScientificName: "Mechanitis polymnia",
				Genus:          "Mechanitis",
				Species:        "polymnia",
				Subspecies:     "isthmia",
			},
			ok: true,
		},
		{
			name:     "authoritative fields skip fallback cleaning",
			genus:    "Greta",
			epithet:  "oto",
			fallback: "BOLD:AAA1234",
			want: taxon.Parts{
				ScientificName: "Greta oto",
				Genus:          "Greta",
				Species:        "oto",
			},
			ok: true,
		},
		{
			name:     "fallback name is cleaned and split",
			fallback: "Melinaea ludovica lilis (Reakirt, 1866)",
			want: taxon.Parts{
				ScientificName: "Melinaea ludovica lilis",
				Genus:          "Melinaea",
				Species:        "ludovica",
				Subspecies:     "lilis",
			},
			ok: true,
		},
		{
			name:     "fallback binomial has no subspecies",
			fallback: "Ithomia agnosia Hewitson, 1855",
			want: taxon.Parts{
				ScientificName: "Ithomia agnosia",
				Genus:          "Ithomia",
				Species:        "agnosia",
			},
			ok: true,
		},
		{
			name:    "status token is not a subspecies",
			genus:   "Oleria",
			epithet: "onega",
			infra:   "ACCEPTED",
			want: taxon.Parts{
				ScientificName: "Oleria onega",
				Genus:          "Oleria",
				Species:        "onega",
			},
			ok: true,
		},
		{
			name:    "placeholder subspecies is absent",
			genus:   "Oleria",
			epithet: "onega",
			infra:   "nan",
			want: taxon.Parts{
				ScientificName: "Oleria onega",
				Genus:          "Oleria",
				Species:        "onega",
			},
			ok: true,
		},
		{
			name:     "unusable fallback fails",
			fallback: "Mechanitis",
			ok:       false,
		},
		{
			name: "everything empty fails",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := taxon.SplitParts(tt.genus, tt.epithet, tt.infra, tt.fallback)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
