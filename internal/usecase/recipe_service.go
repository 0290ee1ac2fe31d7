package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/recipebook/backend/internal/domain"
	"github.com/recipebook/backend/internal/logger"
	"github.com/recipebook/backend/internal/metrics"
)

// snapshot is one immutable ingestion result
type snapshot struct {
	store    *domain.Store
	loadedAt time.Time
}

// StoreStats describes the current store snapshot
type StoreStats struct {
	Recipes  int       `json:"recipes"`
	LoadedAt time.Time `json:"loadedAt"`
}

// RecipeService serves queries against the recipes ingested for the session.
// Load and Refresh replace the whole snapshot; queries always see a complete store.
type RecipeService struct {
	source  domain.RecipeSource
	logger  *zap.Logger
	current atomic.Pointer[snapshot]
	now     func() time.Time
}

// NewRecipeService creates a recipe service with an empty store
func NewRecipeService(source domain.RecipeSource, log *zap.Logger) *RecipeService {
	s := &RecipeService{
		source: source,
		logger: logger.OrNop(log),
		now:    time.Now,
	}
	s.current.Store(&snapshot{store: domain.NewStore()})
	return s
}

// Load ingests recipes from the source and publishes them as the new store.
// A failed ingestion publishes an empty store and the error is returned for
// reporting only; the service stays usable either way.
func (s *RecipeService) Load(ctx context.Context) (int, error) {
	recipes, err := s.source.Recipes(ctx)
	if err != nil {
		s.logger.Warn("Failed to get the recipe listing, continuing with an empty recipe book",
			zap.Error(err))
		metrics.IngestionFailuresTotal.Inc()
		recipes = nil
	}
	return s.publish(recipes), err
}

// Refresh re-ingests from the source, bypassing any cached listing.
// On failure the current store is kept and the error is returned.
func (s *RecipeService) Refresh(ctx context.Context) (int, error) {
	if inv, ok := s.source.(domain.Invalidator); ok {
		if err := inv.Invalidate(ctx); err != nil {
			s.logger.Warn("Failed to invalidate cached listing", zap.Error(err))
		}
	}

	recipes, err := s.source.Recipes(ctx)
	if err != nil {
		s.logger.Warn("Refresh failed, keeping the current recipe book", zap.Error(err))
		metrics.IngestionFailuresTotal.Inc()
		return s.Store().Len(), err
	}
	return s.publish(recipes), nil
}

func (s *RecipeService) publish(recipes []domain.Recipe) int {
	store := domain.NewStore(recipes...)
	s.current.Store(&snapshot{store: store, loadedAt: s.now()})
	metrics.IngestedRecipes.Set(float64(store.Len()))

	s.logger.Info("Recipe book loaded", zap.Int("recipes", store.Len()))
	return store.Len()
}

// Store returns the current snapshot
func (s *RecipeService) Store() *domain.Store {
	return s.current.Load().store
}

// Stats reports the size and load time of the current snapshot
func (s *RecipeService) Stats() StoreStats {
	snap := s.current.Load()
	return StoreStats{Recipes: snap.store.Len(), LoadedAt: snap.loadedAt}
}

// Search finds recipes whose name contains query, ignoring case
func (s *RecipeService) Search(query string) []domain.Recipe {
	metrics.QueriesTotal.WithLabelValues("search").Inc()
	results := Search(query, s.Store())
	s.logger.Debug("Search",
		zap.String("query", query),
		zap.Int("matches", len(results)))
	return results
}

// Filter returns the distinct names of recipes matching criteria
func (s *RecipeService) Filter(criteria FilterCriteria) *NameSet {
	metrics.QueriesTotal.WithLabelValues("filter").Inc()
	results := Filter(criteria, s.Store())
	s.logger.Debug("Filter",
		zap.String("dietary_preference", criteria.DietaryPreference),
		zap.String("price_range", criteria.PriceRange),
		zap.String("origin", criteria.Origin),
		zap.Int("matches", results.Len()))
	return results
}

// Save acknowledges name. Nothing is persisted and the store is not touched.
func (s *RecipeService) Save(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: recipe name is required", domain.ErrInvalidRequest)
	}
	metrics.QueriesTotal.WithLabelValues("save").Inc()
	return fmt.Sprintf("%s saved to your recipe book.", name), nil
}
