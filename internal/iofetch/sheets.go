package iofetch

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"

	"github.com/Fr4nzz/ithomiini-maps/pkg/config"
	"github.com/Fr4nzz/ithomiini-maps/pkg/ithomaps"
	"github.com/Fr4nzz/ithomiini-maps/pkg/record"
)

const sheetExportURL = "https://docs.google.com/spreadsheets/d/%s/export?format=csv&gid=%s"

type sheets struct {
	client
	spreadsheetID string
}

// NewSheets creates a SheetFetcher for one Google Sheets document. Tabs
// are downloaded through the document's CSV export endpoint, which works
// without credentials for link-shared sheets.
func NewSheets(cfg *config.Config, spreadsheetID string) ithomaps.SheetFetcher {
	res := sheets{client: newClient(cfg), spreadsheetID: spreadsheetID}
	return &res
}

func (s *sheets) FetchTab(
	ctx context.Context,
	gid, label string,
) (record.Batch, error) {
	var res record.Batch

	url := sheetURL(s.spreadsheetID, gid)
	body, err := s.get(ctx, url, func(status int) error {
		return SheetStatusError(s.spreadsheetID, gid, status)
	})
	if err != nil {
		var gerr *gn.Error
		if errors.As(err, &gerr) {
			return res, err
		}
		return res, SheetFetchError(s.spreadsheetID, gid, err)
	}

	res, err = parseCSV(body, label)
	if err != nil {
		return res, SheetParseError(s.spreadsheetID, gid, err)
	}

	slog.Info("Fetched spreadsheet tab",
		"label", label, "gid", gid,
		"rows", humanize.Comma(int64(len(res.Rows))),
	)
	return res, nil
}

func sheetURL(spreadsheetID, gid string) string {
	return fmt.Sprintf(sheetExportURL, spreadsheetID, gid)
}

// parseCSV converts a CSV document into a batch. The first row provides
// the column names. Rows are allowed to be ragged because manually
// edited sheets often are.
func parseCSV(data []byte, label string) (record.Batch, error) {
	var res record.Batch

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	recs, err := r.ReadAll()
	if err != nil {
		return res, err
	}
	if len(recs) < 2 {
		return res, fmt.Errorf("no data rows")
	}

	header := make([]string, len(recs[0]))
	for i, h := range recs[0] {
		header[i] = strings.TrimSpace(h)
	}

	res = record.Batch{
		Source:  label,
		Columns: header,
		Rows:    make([]record.Row, 0, len(recs)-1),
	}
	for _, cells := range recs[1:] {
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
	return res, nil
}
