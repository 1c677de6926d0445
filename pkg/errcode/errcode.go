// Package errcode enumerates the error kinds the taxonomy integration
// engine can produce. Every error raised by a parser, writer, config
// loader, index builder or ingest stage carries one of these codes so
// callers can switch on failure class without string matching.
package errcode

import "github.com/blobtoolkit/core/pkg/gnerr"

const (
	UnknownError gnerr.Code = iota

	// FileNotFound means a named path could not be opened.
	FileNotFound

	// ParseError means a record was malformed: numeric parse failure,
	// unexpected JSON shape, or a delimited row with the wrong length.
	ParseError

	// IndexError means a configured column name was absent from a
	// header row.
	IndexError

	// SerdeError means a YAML/JSON config document violated its schema.
	SerdeError

	// NotDefined means a required option (e.g. a taxdump path) is
	// missing.
	NotDefined

	// AxisNotDefined is reserved for the plotting subsystem, which is
	// out of scope here but shares the error-code space so downstream
	// CLI error handling can switch on gnerr.Code uniformly.
	AxisNotDefined

	// InvalidImageSuffix is reserved for the plotting subsystem.
	InvalidImageSuffix
)
