package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Sources configuration errors
	SourcesConfigError
	SourcesValidationError

	// Reference dataset errors
	ExcelOpenError
	ExcelEmptyError

	// Sheet fetch errors
	SheetFetchError
	SheetStatusError
	SheetParseError

	// GBIF errors
	GBIFRequestError
	GBIFDecodeError
	GBIFCacheError

	// DwC-A errors
	DwcaOpenError
	DwcaExtractError
	DwcaOccurrenceError

	// Reconcile errors
	ReconcileColumnsError
	ReconcileEmptyError

	// Output errors
	WriteOutputError
)
