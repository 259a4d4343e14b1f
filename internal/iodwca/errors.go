package iodwca

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/Fr4nzz/ithomiini-maps/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := `Cannot open occurrence archive

<em>Archive:</em> %s

<em>How to fix:</em>
  1. Check if the file exists: <em>ls -l %s</em>
  2. Check the <em>aggregator.archive_path</em> setting in sources.yaml
  3. Make sure the download finished, a truncated ZIP cannot be read`

	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DwcaOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open archive: %w",
			fn.Name(), err),
	}
}

func MissingEntryError(path, name string) error {
	msg := `Archive %s has no %s

The archive must be a Darwin Core Archive from the occurrence
download API, not a species list or a simple CSV download.`

	vars := []any{path, name}
	return &gn.Error{
		Code: errcode.DwcaExtractError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no %s in %s", name, path),
	}
}

func OccurrenceError(name string, err error) error {
	msg := "Cannot read %s from the occurrence archive"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DwcaOccurrenceError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read table: %w",
			fn.Name(), err),
	}
}
