package types

import "errors"

var (
	// ErrDataUnavailable means a provider returned nothing or a payload
	// that does not match its schema.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrMissingPriceForDate means the bulk quote fetch succeeded but
	// carried no quote for a day inside the requested range.
	ErrMissingPriceForDate = errors.New("missing price for date")

	// ErrCheckpointParse means a stored checkpoint is not a valid
	// integer timestamp.
	ErrCheckpointParse = errors.New("invalid checkpoint")
)
