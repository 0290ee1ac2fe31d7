package usecase

import (
	"iter"
	"strings"

	"github.com/recipebook/backend/internal/domain"
)

// RecipeView is a read-only, ordered view of recipes. *domain.Store satisfies it.
type RecipeView interface {
	All() iter.Seq[domain.Recipe]
}

// FilterCriteria constrains a Filter call. An empty field does not constrain anything.
type FilterCriteria struct {
	DietaryPreference string `form:"diet" json:"dietaryPreference,omitempty"`
	PriceRange        string `form:"price" json:"priceRange,omitempty"`
	Origin            string `form:"origin" json:"origin,omitempty"`
}

// matches reports whether r satisfies every non-empty criterion.
// Price range and origin compare exactly, including case.
func (c FilterCriteria) matches(r domain.Recipe) bool {
	if c.DietaryPreference != "" && !r.HasDietaryPreference(c.DietaryPreference) {
		return false
	}
	if c.PriceRange != "" && c.PriceRange != string(r.PriceRange()) {
		return false
	}
	if c.Origin != "" && c.Origin != r.Origin() {
		return false
	}
	return true
}

// Search returns the recipes whose name contains query, ignoring case, in store order.
// An empty query matches every recipe. No match yields an empty, non-nil slice.
func Search(query string, store RecipeView) []domain.Recipe {
	needle := strings.ToLower(query)
	matched := make([]domain.Recipe, 0)
	for r := range store.All() {
		if strings.Contains(strings.ToLower(r.Name()), needle) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Filter returns the names of recipes matching all criteria.
//
// The result is a set: two recipes sharing a name are reported once. Callers
// that need one entry per recipe should iterate the store directly.
func Filter(criteria FilterCriteria, store RecipeView) *NameSet {
	names := NewNameSet()
	for r := range store.All() {
		if criteria.matches(r) {
			names.Add(r.Name())
		}
	}
	return names
}

// NameSet is a set of recipe names that remembers the order names were first added
type NameSet struct {
	order []string
	index map[string]struct{}
}

// NewNameSet returns an empty NameSet
func NewNameSet(names ...string) *NameSet {
	s := &NameSet{index: make(map[string]struct{})}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Add inserts name, doing nothing if it is already present
func (s *NameSet) Add(name string) {
	if _, ok := s.index[name]; ok {
		return
	}
	s.index[name] = struct{}{}
	s.order = append(s.order, name)
}

func (s *NameSet) Contains(name string) bool {
	_, ok := s.index[name]
	return ok
}

func (s *NameSet) Len() int {
	return len(s.order)
}

// Names returns the members in first-added order
func (s *NameSet) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
