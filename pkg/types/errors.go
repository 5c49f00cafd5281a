package types

import "errors"

// Input structure errors. These are hard failures reported to the caller.
var (
	ErrInvalidCollection  = errors.New("invalid feature collection")
	ErrMissingLocation    = errors.New("feature has no location")
	ErrMissingOffsets     = errors.New("location is missing start or end offset")
	ErrMissingRegulations = errors.New("feature has no regulations list")
)

// Data variation errors. The engine logs and tolerates these; only the strict
// parsers return them.
var (
	ErrInvalidRange = errors.New("location range start must be less than end")
	ErrInvalidDay   = errors.New("invalid day code")
	ErrInvalidTime  = errors.New("invalid time of day")
)

// Catalog and configuration errors.
var (
	ErrDatasetNotFound  = errors.New("dataset not found")
	ErrCacheUnknown     = errors.New("unknown cache backend")
	ErrWorkersInvalid   = errors.New("workers must not be negative")
	ErrTieBreakUnknown  = errors.New("unknown tie-break policy")
	ErrCacheTTLInvalid  = errors.New("cache ttl must not be negative")
	ErrLogFormatUnknown = errors.New("unknown log format")
)
