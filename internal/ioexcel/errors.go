package ioexcel

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/Fr4nzz/ithomiini-maps/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := `Cannot read reference workbook

<em>Workbook:</em> %s

<em>How to fix:</em>
  1. Check if the file exists: <em>ls -l %s</em>
  2. Check the <em>reference.path</em> setting in sources.yaml
  3. Make sure the file is an xlsx workbook, not csv`

	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExcelOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read workbook: %w",
			fn.Name(), err),
	}
}

func EmptyError(path, sheet string) error {
	msg := "Workbook %s has no data rows in sheet '%s'"
	vars := []any{path, sheet}
	return &gn.Error{
		Code: errcode.ExcelEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("sheet %q of %q has no data rows", sheet, path),
	}
}
