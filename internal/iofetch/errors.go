package iofetch

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/Fr4nzz/ithomiini-maps/pkg/errcode"
)

func SheetFetchError(spreadsheetID, gid string, err error) error {
	msg := `Cannot download spreadsheet tab

<em>Spreadsheet:</em> %s
<em>Tab (gid):</em> %s

<em>How to fix:</em>
  1. Check your network connection
  2. Check the <em>collection</em> settings in sources.yaml`

	vars := []any{spreadsheetID, gid}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SheetFetchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot download tab: %w",
			fn.Name(), err),
	}
}

func SheetStatusError(spreadsheetID, gid string, status int) error {
	msg := `Spreadsheet export returned HTTP %d

<em>Spreadsheet:</em> %s
<em>Tab (gid):</em> %s

<em>How to fix:</em>
  1. Make sure the sheet is shared as "anyone with the link"
  2. Check that the gid exists in the document`

	vars := []any{status, spreadsheetID, gid}
	return &gn.Error{
		Code: errcode.SheetStatusError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("spreadsheet %s gid %s: status %d",
			spreadsheetID, gid, status),
	}
}

func SheetParseError(spreadsheetID, gid string, err error) error {
	msg := "Cannot parse tab %s of spreadsheet %s as CSV"
	vars := []any{gid, spreadsheetID}
	return &gn.Error{
		Code: errcode.SheetParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse tab csv: %w", err),
	}
}

func RequestError(url string, status int, err error) error {
	msg := `Aggregator API request failed

<em>URL:</em> %s

<em>How to fix:</em>
  1. Check your network connection
  2. The API may be down, retry later`

	vars := []any{url}
	if err == nil {
		err = fmt.Errorf("status %d", status)
	}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GBIFRequestError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: request failed: %w",
			fn.Name(), err),
	}
}

func DecodeError(url string, err error) error {
	msg := "Cannot decode aggregator API response from %s"
	vars := []any{url}
	return &gn.Error{
		Code: errcode.GBIFDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot decode response: %w", err),
	}
}

func CacheError(path string, err error) error {
	msg := "Cannot use taxon key cache at %s"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.GBIFCacheError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("taxon key cache: %w", err),
	}
}
