package iowrite

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"

	"github.com/Fr4nzz/ithomiini-maps/pkg/errcode"
)

func WriteError(path string, err error) error {
	msg := `Cannot write output to %s

<em>How to fix:</em>
  1. Check the <em>output.dir</em> setting or the <em>--output</em> flag
  2. Check directory permissions`

	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteOutputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot write output: %w",
			fn.Name(), err),
	}
}
