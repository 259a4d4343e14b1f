package reconcile

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"

	"github.com/Fr4nzz/ithomiini-maps/pkg/errcode"
)

// MissingColumnsError reports a batch whose header lacks columns the
// adapter depends on. This is a fatal precondition failure: the core does
// not substitute defaults for structurally absent columns.
func MissingColumnsError(source string, columns []string) error {
	msg := `Source <em>%s</em> is missing expected columns: %s

The upstream schema changed or the wrong tab/file was fetched.`
	vars := []any{source, strings.Join(columns, ", ")}
	return &gn.Error{
		Code: errcode.ReconcileColumnsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("batch %q: missing columns %v",
			source, columns),
	}
}

// EmptyInputError reports that no source produced any rows.
func EmptyInputError() error {
	return &gn.Error{
		Code: errcode.ReconcileEmptyError,
		Msg:  "No data loaded from any source",
		Err:  fmt.Errorf("all source batches are empty"),
	}
}
