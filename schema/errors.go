package schema

import "errors"

// Sentinel errors for the failure taxonomy. Callers wrap them with context
// and test with errors.Is.
var (
	ErrMissingColumn     = errors.New("missing column")
	ErrUnparseableDate   = errors.New("unparseable date")
	ErrNotNumeric        = errors.New("column is not numeric")
	ErrInvalidPeriod     = errors.New("invalid period")
	ErrUnsupportedSource = errors.New("unsupported source")
)
