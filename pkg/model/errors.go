package model

import "errors"

// Sentinel errors for the valuation run. Callers wrap these with contextual
// detail (file, row, matching id) and match them with errors.Is. Every one of
// them is fatal to the run; there is no retry or partial-result policy.
var (
	// ErrParse marks a malformed or out-of-range field in an input file.
	ErrParse = errors.New("malformed field")

	// ErrUnknownCurrency marks a currency code absent from the currency table.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrEmptyGroup marks a matching group that no product belongs to.
	ErrEmptyGroup = errors.New("matching group has no products")

	// ErrInvalidTopCount marks a top_priced_count outside [1, group size].
	ErrInvalidTopCount = errors.New("top priced count out of range")
)
