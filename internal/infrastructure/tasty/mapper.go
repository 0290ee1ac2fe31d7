package tasty

import (
	"github.com/recipebook/backend/internal/domain"
)

// MapToRecipe converts a listing card to our domain Recipe.
// The listing page carries only a title, so every other field is unspecified.
func MapToRecipe(l domain.Listing) (domain.Recipe, error) {
	return domain.NewRecipe(domain.RecipeFields{
		Name:               l.Title,
		Ingredients:        nil,
		Instructions:       "",
		Origin:             "",
		DietaryPreferences: nil,
		PriceRange:         string(domain.PriceUnspecified),
	})
}
