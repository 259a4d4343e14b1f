// Package ioexcel reads the curated reference workbook into a raw batch.
package ioexcel

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Fr4nzz/ithomiini-maps/pkg/ithomaps"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

type ioexcel struct{}

// New creates a ReferenceReader backed by an xlsx workbook on disk.
func New() ithomaps.ReferenceReader {
	return &ioexcel{}
}

func (e *ioexcel) Read(path, label string) (record.Batch, error) {
	var res record.Batch

	f, err := excelize.OpenFile(path)
	if err != nil {
		return res, OpenError(path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return res, OpenError(path, err)
	}
	if len(rows) < 2 {
		return res, EmptyError(path, sheet)
	}

	return batchFromRows(label, rows), nil
}

// batchFromRows converts the sheet's cell matrix into a batch. The first
// row provides the column names. Short rows are common in xlsx output
// because trailing empty cells are omitted.
func batchFromRows(label string, rows [][]string) record.Batch {
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	res := record.Batch{
		Source:  label,
		Columns: header,
		Rows:    make([]record.Row, 0, len(rows)-1),
	}

	for _, cells := range rows[1:] {
		row := make(record.Row, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i < len(cells) {
				row[name] = cells[i]
			} else {
				row[name] = ""
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res
}
