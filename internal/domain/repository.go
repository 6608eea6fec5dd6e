package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogClient fetches the active product list from the storefront API.
// A failed fetch is the caller's problem; the assistant core only ever sees
// a snapshot that has already arrived.
type CatalogClient interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// ReviewClient fetches review data for a single product. Absence of data
// degrades to "no reviews yet", never an error inside the core.
type ReviewClient interface {
	FetchProductReviews(ctx context.Context, productID int64) ([]Review, error)
	FetchRatingStats(ctx context.Context, productID int64) (*RatingStats, error)
}
