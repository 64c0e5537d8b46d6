package matrix

import "errors"

// Sentinel errors for matrix construction and ingestion. Callers match
// with errors.Is for reliable error handling.
var (
	// ErrRagged is returned when matrix rows differ in length.
	ErrRagged = errors.New("rows differ in length")

	// ErrBadCell is returned when a cell is neither 0 nor 1.
	ErrBadCell = errors.New("cell value not binary")

	// ErrNoEvents is returned when an event log contains no usable rows.
	ErrNoEvents = errors.New("event log contains no events")

	// ErrMissingColumn is returned when the event CSV header lacks a
	// required column.
	ErrMissingColumn = errors.New("required column missing")

	// ErrBadDate is returned when an event date cannot be parsed.
	ErrBadDate = errors.New("unparseable event date")
)
