// Package store persists recipes and their reviews for the matching service.
package store

import (
	"context"
	"errors"

	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

var ErrNotFound = errors.New("recipe not found")

// Store is the recipe collection behind /search and /rate. List returns
// copies; callers may modify them freely.
type Store interface {
	List(ctx context.Context) ([]recipe.Recipe, error)
	Get(ctx context.Context, id int) (*recipe.Recipe, error)
	// AddReview appends a review, recomputes the average rating and
	// persists both. The returned recipe reflects the new state.
	AddReview(ctx context.Context, id int, review recipe.Review) (*recipe.Recipe, error)
	Close() error
}

// cloneRecipe deep-copies r. Slices come back non-nil so they encode as
// [] rather than null.
func cloneRecipe(r recipe.Recipe) recipe.Recipe {
	r.Ingredients = append(make([]string, 0, len(r.Ingredients)), r.Ingredients...)
	r.Procedure = append(make([]string, 0, len(r.Procedure)), r.Procedure...)
	r.Reviews = append(make([]recipe.Review, 0, len(r.Reviews)), r.Reviews...)
	return r
}
