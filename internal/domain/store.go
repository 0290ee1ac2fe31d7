package domain

import (
	"iter"
	"slices"
)

// Store is the ordered collection of recipes ingested for one session.
// It is built once and never modified, so any number of goroutines may read it.
type Store struct {
	recipes []Recipe
}

// NewStore builds a Store holding recipes in the given order
func NewStore(recipes ...Recipe) *Store {
	return &Store{recipes: slices.Clone(recipes)}
}

// All iterates the recipes in insertion order
func (s *Store) All() iter.Seq[Recipe] {
	return func(yield func(Recipe) bool) {
		if s == nil {
			return
		}
		for _, r := range s.recipes {
			if !yield(r) {
				return
			}
		}
	}
}

// Recipes returns a copy of the stored recipes in insertion order
func (s *Store) Recipes() []Recipe {
	if s == nil {
		return nil
	}
	return slices.Clone(s.recipes)
}

// Len returns the number of stored recipes
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.recipes)
}
