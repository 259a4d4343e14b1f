// Package iodwca converts a Darwin Core Archive from the GBIF download
// API into a raw occurrence batch plus an image lookup.
package iodwca

import (
	"archive/zip"
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Fr4nzz/ithomiini-maps/pkg/ithomaps"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

const (
	occurrenceFile = "occurrence.txt"
	multimediaFile = "multimedia.txt"
)

type iodwca struct{}

// New creates an ArchiveProcessor that reads occurrence and multimedia
// tables straight out of the ZIP, without extracting it to disk.
func New() ithomaps.ArchiveProcessor {
	return &iodwca{}
}

func (d *iodwca) Process(
	ctx context.Context,
	path, label string,
) (record.Batch, map[string]string, error) {
	var res record.Batch

	zr, err := zip.OpenReader(path)
	if err != nil {
		return res, nil, OpenError(path, err)
	}
	defer zr.Close()

	occ := findEntry(zr, occurrenceFile)
	if occ == nil {
		return res, nil, MissingEntryError(path, occurrenceFile)
	}

	res, err = readOccurrences(ctx, occ, label)
	if err != nil {
		return res, nil, err
	}

	images := make(map[string]string)
	if mm := findEntry(zr, multimediaFile); mm != nil {
		images, err = readMultimedia(ctx, mm)
		if err != nil {
			return res, nil, err
		}
	}

	slog.Info("Processed occurrence archive",
		"path", path,
		"records", humanize.Comma(int64(len(res.Rows))),
		"images", humanize.Comma(int64(len(images))),
	)
	return res, images, nil
}

// findEntry locates a file anywhere in the archive by its base name.
// Download archives keep the data files at the root, but some tools
// repack them under a directory.
func findEntry(zr *zip.ReadCloser, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name || strings.HasSuffix(f.Name, "/"+name) {
			return f
		}
	}
	return nil
}

// readOccurrences streams the occurrence table into a batch. The table
// is tab-separated with a header row of Darwin Core terms.
func readOccurrences(
	ctx context.Context,
	f *zip.File,
	label string,
) (record.Batch, error) {
	var res record.Batch

	rc, err := f.Open()
	if err != nil {
		return res, OccurrenceError(f.Name, err)
	}
	defer rc.Close()

	bar := newProgressBar(int(f.UncompressedSize64), "Reading occurrences: ")
	defer bar.Finish()

	r := newTableReader(bar.NewProxyReader(rc))

	header, err := r.Read()
	if err != nil {
		return res, OccurrenceError(f.Name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	res = record.Batch{Source: label, Columns: header}
	for i := 0; ; i++ {
		if i%10000 == 0 && ctx.Err() != nil {
			return res, ctx.Err()
		}
		cells, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, OccurrenceError(f.Name, err)
		}

		row := make(record.Row, len(header))
		for j, name := range header {
			if name == "" {
				continue
			}
			if j < len(cells) {
				row[name] = cells[j]
			} else {
				row[name] = ""
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res, nil
}

// readMultimedia builds a record-ID to image-URL lookup from the
// multimedia table, keeping the first still image per record.
func readMultimedia(
	ctx context.Context,
	f *zip.File,
) (map[string]string, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, OccurrenceError(f.Name, err)
	}
	defer rc.Close()

	r := newTableReader(rc)

	header, err := r.Read()
	if err != nil {
		return nil, OccurrenceError(f.Name, err)
	}
	idCol, typeCol, urlCol := -1, -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "gbifID":
			idCol = i
		case "type":
			typeCol = i
		case "identifier":
			urlCol = i
		}
	}
	if idCol < 0 || urlCol < 0 {
		return map[string]string{}, nil
	}

	images := make(map[string]string)
	for i := 0; ; i++ {
		if i%10000 == 0 && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		cells, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, OccurrenceError(f.Name, err)
		}
		if idCol >= len(cells) || urlCol >= len(cells) {
			continue
		}
		if typeCol >= 0 && typeCol < len(cells) &&
			cells[typeCol] != "" && cells[typeCol] != "StillImage" {
			continue
		}
		id, url := cells[idCol], cells[urlCol]
		if id == "" || url == "" {
			continue
		}
		if _, ok := images[id]; !ok {
			images[id] = url
		}
	}
	return images, nil
}

// tableReader splits the tab-separated, unquoted tables that download
// archives contain. Quote characters inside fields are data, so a CSV
// reader would mangle them; tabs and newlines within values arrive
// escaped.
type tableReader struct {
	s *bufio.Scanner
}

func newTableReader(r io.Reader) *tableReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	return &tableReader{s: s}
}

func (t *tableReader) Read() ([]string, error) {
	if !t.s.Scan() {
		if err := t.s.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
	return strings.Split(t.s.Text(), "\t"), nil
}
