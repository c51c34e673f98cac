package finding

import "errors"

// Sentinel errors for the report pipeline failure modes.
// Callers should use errors.Is() to check for these.
var (
	// ErrMalformed indicates an input file is missing, unreadable, or
	// not valid JSON. Fatal.
	ErrMalformed = errors.New("finding: malformed input")

	// ErrSchemaMismatch indicates valid JSON whose records lack a field
	// the scanner mapping requires. Fatal.
	ErrSchemaMismatch = errors.New("finding: schema mismatch")

	// ErrEmptyInput indicates a ratio or chart was requested over an
	// empty finding set. Only the affected chart is skipped.
	ErrEmptyInput = errors.New("finding: empty input")

	// ErrMissingTemplateVariable indicates the report template
	// references a value the rendering context does not supply. Fatal.
	ErrMissingTemplateVariable = errors.New("finding: missing template variable")
)
