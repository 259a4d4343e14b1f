package record

import (
	"strings"
)

// Row is one raw tabular record: column name to string value. A missing
// key means the source had no such column for this row.
type Row map[string]string

// Batch is an ordered set of raw rows from one source, with the column
// header preserved so adapters can tell "column absent" (a fatal
// precondition failure) from "value empty" (resolved per field).
type Batch struct {
	Source  string
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the batch header contains the named column.
func (b *Batch) HasColumn(name string) bool {
	for _, c := range b.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the subset of names absent from the batch header.
func (b *Batch) MissingColumns(names ...string) []string {
	var missing []string
	for _, n := range names {
		if !b.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// LocationFields is the fixed priority order for resolving a collection
// location. The four fine-grained fields win over stateProvince.
var LocationFields = []string{
	"locality",
	"verbatimLocality",
	"municipality",
	"county",
	"stateProvince",
}

// placeholders are values that count as absent after trimming and
// case-folding.
var placeholders = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"na":   {},
}

// Resolve returns the first present value among the candidate columns, in
// the given priority order. A value is present when, trimmed and
// case-folded, it is not one of the placeholder literals. The returned
// value is trimmed; absence is the empty string.
func (r Row) Resolve(columns ...string) string {
	for _, c := range columns {
		v := strings.TrimSpace(r[c])
		if _, absent := placeholders[strings.ToLower(v)]; absent {
			continue
		}
		return v
	}
	return ""
}

// Value returns the trimmed value of a single column, with placeholder
// literals collapsed to empty.
func (r Row) Value(column string) string {
	return r.Resolve(column)
}
