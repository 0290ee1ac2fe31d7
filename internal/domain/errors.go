package domain

import "errors"

var (
	// ErrEmptyName is returned when a recipe is constructed without a name
	ErrEmptyName = errors.New("recipe name must not be empty")

	// ErrInvalidPriceRange is returned when a price range is not low, medium, high or empty
	ErrInvalidPriceRange = errors.New("invalid price range")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSourceFailure is returned when the recipe listing page cannot be fetched or parsed
	ErrSourceFailure = errors.New("recipe source request failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
