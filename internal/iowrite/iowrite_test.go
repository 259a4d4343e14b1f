package iowrite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnfmt"
	"github.com/stretchr/testify/assert"

	"github.com/Fr4nzz/ithomiini-maps/pkg/config"
	"github.com/Fr4nzz/ithomiini-maps/pkg/reconcile"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

func TestWrite(t *testing.T) {
	assert := assert.New(t)

	dir := filepath.Join(t.TempDir(), "public", "data")
	cfg := config.New()
	cfg.Update([]config.Option{config.OptOutputDir(dir)})

	recs := []record.Occurrence{
		{
			ID:             "DORE_1",
			ScientificName: "Ithomia salapia",
			Genus:          "Ithomia",
			Species:        "salapia",
			Lat:            -4.25,
			Lng:            -73.5,
			MimicryRing:    "Aureliana",
			SeqStatus:      "Published",
			Source:         "Dore et al. (2025)",
			Country:        "Peru",
		},
	}
	stats := &reconcile.Stats{
		Total:    1,
		BySource: map[string]int{"Dore et al. (2025)": 1},
		ByStatus: map[string]int{"Published": 1},
	}

	path, err := New(cfg).Write(recs, stats)
	assert.NoError(err)
	assert.Equal(filepath.Join(dir, "map_points.json"), path)

	data, err := os.ReadFile(path)
	assert.NoError(err)

	var out []record.Occurrence
	assert.NoError(gnfmt.GNjson{}.Decode(data, &out))
	assert.Len(out, 1)
	assert.Equal("DORE_1", out[0].ID)
	assert.Equal("Aureliana", out[0].MimicryRing)
}

func TestSortedCounts(t *testing.T) {
	assert := assert.New(t)

	res := sortedCounts(map[string]int{"b": 2, "a": 2, "c": 5})
	assert.Equal("c", res[0].name)
	assert.Equal("a", res[1].name)
	assert.Equal("b", res[2].name)
}
