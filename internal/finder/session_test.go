package finder

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite7112/woodpantry-finder/internal/clients"
	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

type fakeSearcher struct {
	calls   [][]string
	recipes []recipe.Recipe
	err     error
}

func (f *fakeSearcher) Search(_ context.Context, ingredients []string) ([]recipe.Recipe, error) {
	f.calls = append(f.calls, ingredients)
	return f.recipes, f.err
}

type fakeReviewer struct {
	calls []recipe.RateRequest
	err   error
}

func (f *fakeReviewer) Rate(_ context.Context, recipeID, rating int, feedback string) error {
	f.calls = append(f.calls, recipe.RateRequest{RecipeID: recipeID, Rating: rating, Feedback: feedback})
	return f.err
}

type harness struct {
	t        *testing.T
	session  *Session
	searcher *fakeSearcher
	reviewer *fakeReviewer
	hook     *test.Hook
	alerts   []Alert
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return &harness{
		t:        t,
		session:  NewSession(log),
		searcher: &fakeSearcher{},
		reviewer: &fakeReviewer{},
		hook:     hook,
	}
}

// dispatch applies ev and runs every resulting call synchronously, the way
// the terminal loop does across message round trips.
func (h *harness) dispatch(ev Event) {
	h.t.Helper()
	runner := Runner{Searcher: h.searcher, Reviewer: h.reviewer}
	queue := []Event{ev}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, eff := range h.session.Apply(next) {
			if a, ok := eff.(Alert); ok {
				h.alerts = append(h.alerts, a)
				continue
			}
			if done, ok := runner.Execute(context.Background(), eff); ok {
				queue = append(queue, done)
			}
		}
	}
}

func (h *harness) lastAlert() Alert {
	h.t.Helper()
	require.NotEmpty(h.t, h.alerts)
	return h.alerts[len(h.alerts)-1]
}

func TestAddIngredientClearsEntryOnlyOnInsert(t *testing.T) {
	s := newHarness(t).session

	assert.Equal(t, []Effect{ClearEntry{}}, s.Apply(AddIngredient{Raw: " Egg"}))
	assert.Nil(t, s.Apply(AddIngredient{Raw: "egg"}))
	assert.Nil(t, s.Apply(AddIngredient{Raw: "   "}))
	assert.Equal(t, []string{"egg"}, s.Ingredients())

	s.Apply(RemoveIngredient{Value: "milk"})
	assert.Equal(t, []string{"egg"}, s.Ingredients())
	s.Apply(RemoveIngredient{Value: "egg"})
	assert.Empty(t, s.Ingredients())
}

func TestRunSearchWithoutIngredients(t *testing.T) {
	h := newHarness(t)

	h.dispatch(RunSearch{})

	assert.Empty(t, h.searcher.calls)
	assert.False(t, h.session.Searching())
	alert := h.lastAlert()
	assert.True(t, errors.Is(alert.Err, ErrNoIngredients))
	assert.Equal(t, "Please add at least one ingredient!", alert.Message)
}

func TestRunSearchSnapshotsIngredients(t *testing.T) {
	s := newHarness(t).session
	s.Apply(AddIngredient{Raw: "egg"})
	s.Apply(AddIngredient{Raw: "milk"})

	effects := s.Apply(RunSearch{})
	require.Len(t, effects, 1)
	issue := effects[0].(IssueSearch)
	assert.True(t, s.Searching())

	// Edits while the search is outstanding do not reach the snapshot.
	s.Apply(AddIngredient{Raw: "flour"})
	s.Apply(RemoveIngredient{Value: "egg"})
	assert.Equal(t, []string{"egg", "milk"}, issue.Ingredients)

	// The control is disabled while busy.
	assert.Nil(t, s.Apply(RunSearch{}))

	s.Apply(SearchCompleted{Query: issue.Ingredients, Recipes: []recipe.Recipe{{ID: 1}}})
	assert.False(t, s.Searching())
	assert.Equal(t, []string{"egg", "milk"}, s.ResultsFor())
}

func TestSearchCompletedStates(t *testing.T) {
	tests := []struct {
		name      string
		recipes   []recipe.Recipe
		err       error
		wantState ResultsState
		wantLen   int
	}{
		{"results", []recipe.Recipe{{ID: 2}, {ID: 1}}, nil, ResultsReady, 2},
		{"empty", []recipe.Recipe{}, nil, ResultsReady, 0},
		{"nil slice", nil, nil, ResultsReady, 0},
		{"failure", nil, &clients.SearchError{Message: "matching service returned 500"}, ResultsFailed, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.searcher.recipes = tt.recipes
			h.searcher.err = tt.err
			h.dispatch(AddIngredient{Raw: "egg"})

			h.dispatch(RunSearch{})

			assert.False(t, h.session.Searching(), "busy flag always cleared")
			assert.Equal(t, tt.wantState, h.session.ResultsState())
			assert.Len(t, h.session.Results(), tt.wantLen)
			if tt.err != nil {
				assert.Equal(t, tt.err, h.session.SearchErr())
				assert.Equal(t, logrus.ErrorLevel, h.hook.LastEntry().Level)
			}
		})
	}
}

func TestSearchFailureReplacesPreviousResults(t *testing.T) {
	h := newHarness(t)
	h.searcher.recipes = []recipe.Recipe{{ID: 1, Name: "Omelette"}}
	h.dispatch(AddIngredient{Raw: "egg"})
	h.dispatch(RunSearch{})
	require.Len(t, h.session.Results(), 1)

	h.searcher.err = &clients.SearchError{Message: "do request"}
	h.dispatch(RunSearch{})

	assert.Equal(t, ResultsFailed, h.session.ResultsState())
	assert.Empty(t, h.session.Results())
}

func TestDetailViewSelection(t *testing.T) {
	s := newHarness(t).session

	_, ok := s.CurrentRecipeID()
	assert.False(t, ok)

	s.Apply(OpenRecipe{Recipe: recipe.Recipe{ID: 3, Name: "Soup"}})
	s.Apply(ClickStar{Star: 2})
	id, ok := s.CurrentRecipeID()
	assert.True(t, ok)
	assert.Equal(t, 3, id)

	s.Apply(OpenRecipe{Recipe: recipe.Recipe{ID: 4, Name: "Stew"}})
	id, _ = s.CurrentRecipeID()
	assert.Equal(t, 4, id)
	_, rated := s.Detail().Rating.Selected()
	assert.False(t, rated, "a new detail view starts without a rating")

	s.Apply(HoverStar{Star: 5})
	assert.Equal(t, filled(5), s.Detail().Rating.Stars())
	s.Apply(LeaveStars{})
	assert.Equal(t, filled(0), s.Detail().Rating.Stars())

	s.Apply(CloseRecipe{})
	assert.Nil(t, s.Detail())
}

func TestSubmitReviewValidation(t *testing.T) {
	tests := []struct {
		name     string
		star     int
		feedback string
		want     *ValidationError
	}{
		{"no rating", 0, "Lovely", ErrNoRating},
		{"empty feedback", 3, "", ErrNoFeedback},
		{"blank feedback", 3, "  \n ", ErrNoFeedback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.dispatch(OpenRecipe{Recipe: recipe.Recipe{ID: 1}})
			if tt.star > 0 {
				h.dispatch(ClickStar{Star: tt.star})
			}

			h.dispatch(SubmitReview{Feedback: tt.feedback})

			assert.Empty(t, h.reviewer.calls, "no network call")
			assert.False(t, h.session.Submitting())
			assert.NotNil(t, h.session.Detail())
			alert := h.lastAlert()
			assert.Equal(t, AlertWarning, alert.Level)
			assert.True(t, errors.Is(alert.Err, tt.want))
		})
	}
}

func TestSubmitReviewFailureKeepsDetailOpen(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{
			name:    "server reported",
			err:     &clients.SubmitError{Kind: clients.KindServer, Message: "Recipe not found"},
			wantMsg: "Error submitting review: Recipe not found",
		},
		{
			name:    "transport",
			err:     &clients.SubmitError{Kind: clients.KindTransport, Message: "do request"},
			wantMsg: "Failed to submit review. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			h.reviewer.err = tt.err
			h.dispatch(AddIngredient{Raw: "egg"})
			h.dispatch(RunSearch{})
			h.dispatch(OpenRecipe{Recipe: recipe.Recipe{ID: 9}})
			h.dispatch(ClickStar{Star: 4})

			h.dispatch(SubmitReview{Feedback: "  Tasty  "})

			require.Len(t, h.reviewer.calls, 1)
			assert.Equal(t, recipe.RateRequest{RecipeID: 9, Rating: 4, Feedback: "Tasty"}, h.reviewer.calls[0])
			assert.Equal(t, tt.wantMsg, h.lastAlert().Message)
			require.NotNil(t, h.session.Detail())
			assert.Equal(t, "  Tasty  ", h.session.Detail().Feedback)
			assert.False(t, h.session.Submitting())
			assert.Len(t, h.searcher.calls, 1, "no refresh after a failure")
		})
	}
}

func TestSubmitReviewIgnoredWhileSubmitting(t *testing.T) {
	s := newHarness(t).session
	s.Apply(OpenRecipe{Recipe: recipe.Recipe{ID: 1}})
	s.Apply(ClickStar{Star: 5})

	require.Len(t, s.Apply(SubmitReview{Feedback: "Great!"}), 1)
	assert.True(t, s.Submitting())
	assert.Nil(t, s.Apply(SubmitReview{Feedback: "Great!"}))
}

func TestOmeletteScenario(t *testing.T) {
	h := newHarness(t)
	h.searcher.recipes = []recipe.Recipe{{
		ID:                    1,
		Name:                  "Omelette",
		Ingredients:           []string{"egg"},
		MatchedIngredients:    1,
		TotalInputIngredients: 1,
		MatchPercentage:       "100%",
	}}

	for _, raw := range []string{"egg", "egg ", "Egg"} {
		h.dispatch(AddIngredient{Raw: raw})
	}
	assert.Equal(t, []string{"egg"}, h.session.Ingredients())

	h.dispatch(RunSearch{})
	require.Len(t, h.session.Results(), 1)
	assert.Equal(t, [][]string{{"egg"}}, h.searcher.calls)

	h.dispatch(OpenRecipe{Recipe: h.session.Results()[0]})
	assert.False(t, h.session.Detail().Recipe.Rated())

	h.dispatch(ClickStar{Star: 5})
	h.dispatch(SubmitReview{Feedback: "Great!"})

	assert.Equal(t, []recipe.RateRequest{{RecipeID: 1, Rating: 5, Feedback: "Great!"}}, h.reviewer.calls)
	assert.Equal(t, MsgReviewThanks, h.lastAlert().Message)
	assert.Nil(t, h.session.Detail(), "detail view closed")
	assert.Equal(t, [][]string{{"egg"}, {"egg"}}, h.searcher.calls, "search re-issued")
}

func TestReviewDuringSearchRefreshesAfterIt(t *testing.T) {
	h := newHarness(t)
	omelette := recipe.Recipe{ID: 1, Name: "Omelette"}
	h.searcher.recipes = []recipe.Recipe{omelette}
	h.dispatch(AddIngredient{Raw: "egg"})
	h.dispatch(RunSearch{})

	// A second search is issued but its reply has not arrived yet.
	effects := h.session.Apply(RunSearch{})
	require.Equal(t, []Effect{IssueSearch{Ingredients: []string{"egg"}}}, effects)

	h.dispatch(OpenRecipe{Recipe: omelette})
	h.dispatch(ClickStar{Star: 5})
	effects = h.session.Apply(SubmitReview{Feedback: "Great!"})
	require.Equal(t, []Effect{IssueReview{RecipeID: 1, Rating: 5, Feedback: "Great!"}}, effects)

	effects = h.session.Apply(ReviewCompleted{RecipeID: 1})
	assert.Equal(t, []Effect{Alert{Level: AlertSuccess, Message: MsgReviewThanks}}, effects)

	// The in-flight search predates the review, so another one follows it.
	effects = h.session.Apply(SearchCompleted{Query: []string{"egg"}, Recipes: []recipe.Recipe{omelette}})
	assert.Equal(t, []Effect{IssueSearch{Ingredients: []string{"egg"}}}, effects)
	assert.True(t, h.session.Searching())

	effects = h.session.Apply(SearchCompleted{Query: []string{"egg"}, Recipes: []recipe.Recipe{omelette}})
	assert.Empty(t, effects, "refresh is issued once")
	assert.False(t, h.session.Searching())
}
