package domain

import "errors"

var (
	// ErrNoRecommendation is returned when no size satisfies the matching
	// predicates. It is an expected outcome, not a failure.
	ErrNoRecommendation = errors.New("no size recommendation possible")

	// ErrInvalidProfile is returned when a measurement required by the
	// category is missing or non-numeric.
	ErrInvalidProfile = errors.New("required measurement missing or invalid")

	// ErrUnknownCategory is returned when the category tag maps to no engine.
	ErrUnknownCategory = errors.New("unknown garment category")

	// ErrCacheMiss is returned when a key is not found in the cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrChartNotFound is returned when no catalog chart exists for a
	// retailer/category pair.
	ErrChartNotFound = errors.New("size chart not found")

	// ErrInvalidChart is returned when a chart to be stored is empty or
	// malformed.
	ErrInvalidChart = errors.New("invalid size chart")

	// ErrChartFetchFailure is returned when a remote chart host cannot be
	// reached or answers with an error status.
	ErrChartFetchFailure = errors.New("chart fetch failed")
)
