package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/recipebook/backend/internal/domain"
)

// MockListingFetcher is a mock implementation of domain.ListingFetcher
type MockListingFetcher struct {
	listings []domain.Listing
	err      error
	calls    int
}

func (m *MockListingFetcher) FetchListings(ctx context.Context) ([]domain.Listing, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.listings, nil
}

func newBakingMatcher(t *testing.T) *KeywordMatcher {
	t.Helper()
	m, err := NewKeywordMatcher(DefaultBakingKeywords)
	if err != nil {
		t.Fatalf("NewKeywordMatcher() error = %v", err)
	}
	return m
}

func TestBakingRecipeSource_Recipes(t *testing.T) {
	fetcher := &MockListingFetcher{
		listings: []domain.Listing{
			{Title: "Choco Bake Bars", Description: "Fudgy."},
			{Title: "Pasta Salad", Description: "Cold and crunchy."},
			{Title: "Lemon Tart", Description: "Weekend baking at its best."},
			{Title: "", Description: "She bakes, you eat."},
			{Title: "Baked Ziti", Description: "Cheesy."},
		},
	}

	source := NewBakingRecipeSource(fetcher, newBakingMatcher(t), nil)
	recipes, err := source.Recipes(context.Background())
	if err != nil {
		t.Fatalf("Recipes() error = %v", err)
	}

	want := []string{"Choco Bake Bars", "Lemon Tart"}
	if len(recipes) != len(want) {
		t.Fatalf("Recipes() returned %d recipes, want %d", len(recipes), len(want))
	}
	for i, r := range recipes {
		if r.Name() != want[i] {
			t.Errorf("recipes[%d].Name() = %q, want %q", i, r.Name(), want[i])
		}
	}
}

func TestBakingRecipeSource_PropagatesFetchError(t *testing.T) {
	fetcher := &MockListingFetcher{err: domain.ErrSourceFailure}
	source := NewBakingRecipeSource(fetcher, newBakingMatcher(t), nil)

	recipes, err := source.Recipes(context.Background())
	if !errors.Is(err, domain.ErrSourceFailure) {
		t.Errorf("error = %v, want ErrSourceFailure", err)
	}
	if recipes != nil {
		t.Errorf("Recipes() = %v, want nil", recipes)
	}
}

func TestBakingRecipeSource_EmptyListing(t *testing.T) {
	source := NewBakingRecipeSource(&MockListingFetcher{}, newBakingMatcher(t), nil)

	recipes, err := source.Recipes(context.Background())
	if err != nil {
		t.Fatalf("Recipes() error = %v", err)
	}
	if len(recipes) != 0 {
		t.Errorf("Recipes() returned %d recipes, want 0", len(recipes))
	}
}

// invalidatingFetcher records Invalidate calls
type invalidatingFetcher struct {
	MockListingFetcher
	invalidations int
}

func (f *invalidatingFetcher) Invalidate(ctx context.Context) error {
	f.invalidations++
	return nil
}

func TestBakingRecipeSource_Invalidate(t *testing.T) {
	t.Run("forwards to a caching fetcher", func(t *testing.T) {
		fetcher := &invalidatingFetcher{}
		source := NewBakingRecipeSource(fetcher, newBakingMatcher(t), nil)

		if err := source.Invalidate(context.Background()); err != nil {
			t.Fatalf("Invalidate() error = %v", err)
		}
		if fetcher.invalidations != 1 {
			t.Errorf("invalidations = %d, want 1", fetcher.invalidations)
		}
	})

	t.Run("no-op for a plain fetcher", func(t *testing.T) {
		source := NewBakingRecipeSource(&MockListingFetcher{}, newBakingMatcher(t), nil)
		if err := source.Invalidate(context.Background()); err != nil {
			t.Errorf("Invalidate() error = %v", err)
		}
	})
}
