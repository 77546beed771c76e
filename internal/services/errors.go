package services

import "errors"

// Dashboard service errors
var (
	// ErrNoData means the filters were valid but matched no rows.
	// Callers surface it as a warning, not a failure.
	ErrNoData = errors.New("no data available for the selected filters")

	// ErrCountrySelection means zero or more than two countries were
	// selected; the filter pipeline is never invoked in that case.
	ErrCountrySelection = errors.New("between one and two countries must be selected")

	// ErrInvalidMode means the data-type mode is not one of the three
	// known modes.
	ErrInvalidMode = errors.New("invalid data mode")

	// ErrInvalidYearRange means year_from exceeds year_to.
	ErrInvalidYearRange = errors.New("invalid year range")

	// ErrEmptyDataset means the sources loaded but contain no usable rows.
	ErrEmptyDataset = errors.New("dataset contains no rows")
)
