package domain

import (
	"context"
	"time"
)

// PageCache defines the interface for caching fetched listing pages
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ListingFetcher retrieves the raw recipe cards from the remote listing page
type ListingFetcher interface {
	FetchListings(ctx context.Context) ([]Listing, error)
}

// RecipeSource produces the recipes a session's store is built from
type RecipeSource interface {
	Recipes(ctx context.Context) ([]Recipe, error)
}

// Invalidator is implemented by collaborators that hold cached upstream data.
// After Invalidate the next fetch goes to the network.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}
