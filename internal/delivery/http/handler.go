package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/recipebook/backend/internal/domain"
	"github.com/recipebook/backend/internal/usecase"
)

const (
	serviceName    = "recipebook"
	serviceVersion = "1.0.0"
)

// RecipeService is the part of the recipe use case the HTTP surface drives
type RecipeService interface {
	Refresh(ctx context.Context) (int, error)
	Stats() usecase.StoreStats
	Search(query string) []domain.Recipe
	Filter(criteria usecase.FilterCriteria) *usecase.NameSet
	Save(name string) (string, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	recipes RecipeService
}

// NewHandler creates a new HTTP handler. A nil service makes recipe endpoints answer 503.
func NewHandler(recipes RecipeService) *Handler {
	return &Handler{recipes: recipes}
}

// RecipeResponse is the JSON form of a recipe
type RecipeResponse struct {
	Name               string   `json:"name"`
	Ingredients        []string `json:"ingredients"`
	Instructions       string   `json:"instructions"`
	Origin             string   `json:"origin"`
	DietaryPreferences []string `json:"dietaryPreferences"`
	PriceRange         string   `json:"priceRange"`
	Summary            string   `json:"summary"`
}

// SaveRequest is the body of a save request
type SaveRequest struct {
	Name string `json:"name" binding:"required"`
}

func toRecipeResponse(r domain.Recipe) RecipeResponse {
	ingredients := r.Ingredients()
	if ingredients == nil {
		ingredients = []string{}
	}
	prefs := r.DietaryPreferences()
	if prefs == nil {
		prefs = []string{}
	}
	return RecipeResponse{
		Name:               r.Name(),
		Ingredients:        ingredients,
		Instructions:       r.Instructions(),
		Origin:             r.Origin(),
		DietaryPreferences: prefs,
		PriceRange:         string(r.PriceRange()),
		Summary:            r.FormatSummary(),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	}
	if h.recipes != nil {
		body["recipes"] = h.recipes.Stats().Recipes
	}
	c.JSON(http.StatusOK, body)
}

// requireService answers 503 when no recipe service is wired
func (h *Handler) requireService(c *gin.Context) bool {
	if h.recipes == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Recipe service not configured",
		})
		return false
	}
	return true
}

// SearchRecipes handles GET /api/v1/recipes?q=
func (h *Handler) SearchRecipes(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	query := c.Query("q")
	results := h.recipes.Search(query)

	recipes := make([]RecipeResponse, 0, len(results))
	for _, r := range results {
		recipes = append(recipes, toRecipeResponse(r))
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(recipes),
		"recipes": recipes,
	})
}

// FilterRecipes handles GET /api/v1/recipes/filter?diet=&price=&origin=
func (h *Handler) FilterRecipes(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	var criteria usecase.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filter parameters"})
		return
	}

	names := h.recipes.Filter(criteria).Names()
	c.JSON(http.StatusOK, gin.H{
		"criteria": criteria,
		"count":    len(names),
		"names":    names,
	})
}

// SaveRecipe handles POST /api/v1/recipes/save. Nothing is stored.
func (h *Handler) SaveRecipe(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	var req SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request body must contain a recipe name"})
		return
	}

	msg, err := h.recipes.Save(req.Name)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipe name must not be blank"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// RefreshRecipes handles POST /api/v1/recipes/refresh by re-ingesting the listing.
// A failed refresh leaves the current recipes in place.
func (h *Handler) RefreshRecipes(c *gin.Context) {
	if !h.requireService(c) {
		return
	}

	n, err := h.recipes.Refresh(c.Request.Context())
	if err != nil {
		status := http.StatusBadGateway
		msg := "Failed to refresh recipes from the source"
		if errors.Is(err, domain.ErrRateLimited) {
			status = http.StatusTooManyRequests
			msg = "Source rate limit reached, try again later"
		}
		c.JSON(status, gin.H{
			"error":   msg,
			"recipes": n,
		})
		return
	}

	stats := h.recipes.Stats()
	c.JSON(http.StatusOK, gin.H{
		"recipes":  n,
		"loadedAt": stats.LoadedAt.Format(time.RFC3339),
	})
}
