package domain

import (
	"fmt"
	"slices"
	"strings"
)

// PriceRange is the coarse cost bucket of a recipe. The zero value means unspecified.
type PriceRange string

const (
	PriceUnspecified PriceRange = ""
	PriceLow         PriceRange = "low"
	PriceMedium      PriceRange = "medium"
	PriceHigh        PriceRange = "high"
)

// ParsePriceRange validates s against the known price ranges
func ParsePriceRange(s string) (PriceRange, error) {
	switch p := PriceRange(s); p {
	case PriceUnspecified, PriceLow, PriceMedium, PriceHigh:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
	}
}

// RecipeFields holds the named values a Recipe is built from
type RecipeFields struct {
	Name               string
	Ingredients        []string
	Instructions       string
	Origin             string
	DietaryPreferences []string
	PriceRange         string
}

// Recipe is one recipe's structured data. It cannot be changed once built:
// accessors hand out copies of the slice fields.
type Recipe struct {
	name               string
	ingredients        []string
	instructions       string
	origin             string
	dietaryPreferences []string
	priceRange         PriceRange
}

// NewRecipe builds a Recipe from named fields.
// Every field except Name may be empty, which means "unspecified".
func NewRecipe(f RecipeFields) (Recipe, error) {
	if f.Name == "" {
		return Recipe{}, ErrEmptyName
	}
	price, err := ParsePriceRange(f.PriceRange)
	if err != nil {
		return Recipe{}, err
	}

	return Recipe{
		name:               f.Name,
		ingredients:        slices.Clone(f.Ingredients),
		instructions:       f.Instructions,
		origin:             f.Origin,
		dietaryPreferences: uniqueTags(f.DietaryPreferences),
		priceRange:         price,
	}, nil
}

// uniqueTags copies tags dropping repeats, keeping first occurrence order
func uniqueTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Name returns the recipe's display and search key
func (r Recipe) Name() string { return r.name }

func (r Recipe) Ingredients() []string { return slices.Clone(r.ingredients) }

func (r Recipe) Instructions() string { return r.instructions }

// Origin returns the country or region, empty when unspecified
func (r Recipe) Origin() string { return r.origin }

func (r Recipe) PriceRange() PriceRange { return r.priceRange }

func (r Recipe) DietaryPreferences() []string { return slices.Clone(r.dietaryPreferences) }

// HasDietaryPreference reports whether pref is one of the recipe's dietary tags.
// Membership is exact; "vegan" does not match "vegan-friendly".
func (r Recipe) HasDietaryPreference(pref string) bool {
	return slices.Contains(r.dietaryPreferences, pref)
}

// FormatSummary renders the recipe as six labelled lines
func (r Recipe) FormatSummary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Recipe: %s\n", r.name)
	fmt.Fprintf(&b, "Ingredients: %s\n", strings.Join(r.ingredients, ", "))
	fmt.Fprintf(&b, "Instructions: %s\n", r.instructions)
	fmt.Fprintf(&b, "Origin: %s\n", r.origin)
	fmt.Fprintf(&b, "Dietary Preferences: %s\n", strings.Join(r.dietaryPreferences, ", "))
	fmt.Fprintf(&b, "Price Range: %s", r.priceRange)
	return b.String()
}

// Listing is a recipe card as it appears on the remote listing page
type Listing struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}
