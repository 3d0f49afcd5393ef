package finder

import (
	"context"

	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

// Searcher is the matching collaborator's /search contract.
type Searcher interface {
	Search(ctx context.Context, ingredients []string) ([]recipe.Recipe, error)
}

// Reviewer is the matching collaborator's /rate contract.
type Reviewer interface {
	Rate(ctx context.Context, recipeID, rating int, feedback string) error
}

// Runner carries out the call effects of a Session.
type Runner struct {
	Searcher Searcher
	Reviewer Reviewer
}

// Execute performs eff and returns the completion event to feed back into
// the session. It returns false for effects that need no call.
func (r Runner) Execute(ctx context.Context, eff Effect) (Event, bool) {
	switch eff := eff.(type) {
	case IssueSearch:
		recipes, err := r.Searcher.Search(ctx, eff.Ingredients)
		return SearchCompleted{Query: eff.Ingredients, Recipes: recipes, Err: err}, true
	case IssueReview:
		err := r.Reviewer.Rate(ctx, eff.RecipeID, eff.Rating, eff.Feedback)
		return ReviewCompleted{RecipeID: eff.RecipeID, Err: err}, true
	}
	return nil, false
}
