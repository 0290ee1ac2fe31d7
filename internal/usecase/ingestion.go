package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/recipebook/backend/internal/domain"
	"github.com/recipebook/backend/internal/infrastructure/tasty"
	"github.com/recipebook/backend/internal/logger"
)

// BakingRecipeSource turns the remote listing into baking recipes.
// It keeps only cards whose title or description mentions a keyword.
type BakingRecipeSource struct {
	fetcher domain.ListingFetcher
	matcher *KeywordMatcher
	logger  *zap.Logger
}

// NewBakingRecipeSource creates a recipe source over fetcher
func NewBakingRecipeSource(fetcher domain.ListingFetcher, matcher *KeywordMatcher, log *zap.Logger) *BakingRecipeSource {
	return &BakingRecipeSource{
		fetcher: fetcher,
		matcher: matcher,
		logger:  logger.OrNop(log),
	}
}

// Recipes fetches the listing and returns the matching recipes in page order
func (s *BakingRecipeSource) Recipes(ctx context.Context) ([]domain.Recipe, error) {
	listings, err := s.fetcher.FetchListings(ctx)
	if err != nil {
		return nil, err
	}

	recipes := make([]domain.Recipe, 0, len(listings))
	for _, l := range listings {
		if !s.matcher.Matches(l.Title, l.Description) {
			continue
		}
		r, err := tasty.MapToRecipe(l)
		if err != nil {
			if errors.Is(err, domain.ErrEmptyName) {
				s.logger.Debug("Skipping untitled recipe card", zap.String("url", l.URL))
				continue
			}
			return nil, err
		}
		recipes = append(recipes, r)
	}

	s.logger.Debug("Filtered recipe listing",
		zap.Int("cards", len(listings)),
		zap.Int("baking_recipes", len(recipes)))
	return recipes, nil
}

// Invalidate drops any listing the fetcher has cached
func (s *BakingRecipeSource) Invalidate(ctx context.Context) error {
	if inv, ok := s.fetcher.(domain.Invalidator); ok {
		return inv.Invalidate(ctx)
	}
	return nil
}
