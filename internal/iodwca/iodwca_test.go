package iodwca

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeArchive(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "download.zip")
	f, err := os.Create(path)
	assert.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		assert.NoError(t, err)
		_, err = w.Write([]byte(content))
		assert.NoError(t, err)
	}
	assert.NoError(t, zw.Close())
	return path
}

func TestProcess(t *testing.T) {
	assert := assert.New(t)

	occ := "gbifID\tgenus\tspecificEpithet\tdecimalLatitude\tdecimalLongitude\n" +
		"111\tIthomia\tsalapia\t-4.25\t-73.5\n" +
		"222\tOleria\tonega\t1.0\t-77.0\n"
	mm := "gbifID\ttype\tidentifier\n" +
		"111\tStillImage\thttps://example.org/first.jpg\n" +
		"111\tStillImage\thttps://example.org/second.jpg\n" +
		"222\tSound\thttps://example.org/song.mp3\n"

	path := writeArchive(t, map[string]string{
		"occurrence.txt": occ,
		"multimedia.txt": mm,
	})

	batch, images, err := New().Process(context.Background(), path, "GBIF")
	assert.NoError(err)
	assert.Equal("GBIF", batch.Source)
	assert.Len(batch.Rows, 2)
	assert.Equal("Ithomia", batch.Rows[0]["genus"])
	assert.Equal("-73.5", batch.Rows[0]["decimalLongitude"])

	// first still image wins, non-images are skipped
	assert.Equal(map[string]string{
		"111": "https://example.org/first.jpg",
	}, images)
}

func TestProcessNestedEntry(t *testing.T) {
	assert := assert.New(t)

	path := writeArchive(t, map[string]string{
		"dwca/occurrence.txt": "gbifID\tgenus\n333\tMelinaea\n",
	})

	batch, images, err := New().Process(context.Background(), path, "GBIF")
	assert.NoError(err)
	assert.Len(batch.Rows, 1)
	assert.Equal("Melinaea", batch.Rows[0]["genus"])
	assert.Empty(images)
}

func TestProcessMissingOccurrence(t *testing.T) {
	assert := assert.New(t)

	path := writeArchive(t, map[string]string{
		"meta.xml": "<archive/>",
	})

	_, _, err := New().Process(context.Background(), path, "GBIF")
	assert.Error(err)
}

func TestProcessBadArchive(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "notazip.zip")
	assert.NoError(os.WriteFile(path, []byte("not a zip"), 0644))

	_, _, err := New().Process(context.Background(), path, "GBIF")
	assert.Error(err)
}
