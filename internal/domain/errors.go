package domain

import "errors"

var (
	// ErrProductNotFound is returned when no product in the snapshot matches
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogAPIFailure is returned when a storefront API request fails
	ErrCatalogAPIFailure = errors.New("catalog API request failed")

	// ErrSessionNotFound is returned when a chat session id is unknown
	ErrSessionNotFound = errors.New("chat session not found")
)
