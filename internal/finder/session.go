// Package finder is the interaction core of the recipe finder: the
// ingredient set, the result list, the detail view and the review protocol.
//
// A Session is driven one Event at a time through Apply, which updates the
// state and returns the Effects the caller must carry out. Network calls
// never happen here; the caller issues them and feeds the outcome back as
// SearchCompleted or ReviewCompleted. A Session is not safe for concurrent
// use and is meant to be owned by a single event loop.
package finder

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mwhite7112/woodpantry-finder/internal/clients"
	"github.com/mwhite7112/woodpantry-finder/internal/ingredients"
	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

// ResultsState says what the results area currently shows.
type ResultsState int

const (
	ResultsEmpty ResultsState = iota // nothing searched yet
	ResultsReady
	ResultsFailed
)

// Detail is the open detail view.
type Detail struct {
	Recipe   recipe.Recipe
	Rating   RatingInput
	Feedback string
}

type Session struct {
	log logrus.FieldLogger

	ingredients *ingredients.Set

	searching bool
	// refreshPending marks a review saved while a search was in flight; that
	// search predates the review, so lastQuery runs again once it lands.
	refreshPending bool
	lastQuery      []string
	resultsState ResultsState
	resultsFor   []string
	results      []recipe.Recipe
	searchErr    error

	detail     *Detail
	submitting bool
}

func NewSession(log logrus.FieldLogger) *Session {
	return &Session{
		log:         log,
		ingredients: ingredients.NewSet(),
	}
}

// Ingredients returns the current members in entry order.
func (s *Session) Ingredients() []string { return s.ingredients.Values() }

func (s *Session) Searching() bool  { return s.searching }
func (s *Session) Submitting() bool { return s.submitting }

func (s *Session) ResultsState() ResultsState { return s.resultsState }

// Results returns the recipes of the last successful search, in the order
// the matching service ranked them.
func (s *Session) Results() []recipe.Recipe { return s.results }

// SearchErr returns the cause of the last failed search.
func (s *Session) SearchErr() error { return s.searchErr }

// ResultsFor returns the ingredient snapshot the shown results answer.
func (s *Session) ResultsFor() []string { return s.resultsFor }

// Detail returns the open detail view, or nil.
func (s *Session) Detail() *Detail { return s.detail }

// CurrentRecipeID returns the id of the recipe in the detail view.
func (s *Session) CurrentRecipeID() (int, bool) {
	if s.detail == nil {
		return 0, false
	}
	return s.detail.Recipe.ID, true
}

// Apply handles one event.
func (s *Session) Apply(ev Event) []Effect {
	switch ev := ev.(type) {
	case AddIngredient:
		if s.ingredients.Add(ev.Raw) {
			return []Effect{ClearEntry{}}
		}
	case RemoveIngredient:
		s.ingredients.Remove(ev.Value)
	case RunSearch:
		return s.runSearch()
	case SearchCompleted:
		return s.completeSearch(ev)
	case OpenRecipe:
		s.detail = &Detail{Recipe: ev.Recipe}
	case CloseRecipe:
		s.detail = nil
	case HoverStar:
		if s.detail != nil {
			s.detail.Rating.Hover(ev.Star)
		}
	case LeaveStars:
		if s.detail != nil {
			s.detail.Rating.Leave()
		}
	case ClickStar:
		if s.detail != nil {
			s.detail.Rating.Click(ev.Star)
		}
	case SubmitReview:
		return s.submitReview(ev)
	case ReviewCompleted:
		return s.completeReview(ev)
	}
	return nil
}

func (s *Session) runSearch() []Effect {
	if s.searching {
		return nil
	}
	if s.ingredients.Size() == 0 {
		return []Effect{Alert{Level: AlertWarning, Message: ErrNoIngredients.Message, Err: ErrNoIngredients}}
	}
	return s.issueSearch(s.ingredients.Values())
}

func (s *Session) issueSearch(query []string) []Effect {
	s.searching = true
	s.lastQuery = query
	snapshot := make([]string, len(query))
	copy(snapshot, query)
	return []Effect{IssueSearch{Ingredients: snapshot}}
}

// completeSearch always clears the busy flag. A failure replaces the shown
// results with the error state.
func (s *Session) completeSearch(ev SearchCompleted) []Effect {
	s.searching = false
	s.resultsFor = ev.Query
	s.searchErr = ev.Err

	if ev.Err != nil {
		s.log.WithError(ev.Err).WithField("ingredients", ev.Query).Error("error searching recipes")
		s.resultsState = ResultsFailed
		s.results = nil
		return s.flushRefresh()
	}

	s.resultsState = ResultsReady
	s.results = ev.Recipes
	if s.results == nil {
		s.results = []recipe.Recipe{}
	}
	s.log.WithField("ingredients", ev.Query).WithField("count", len(s.results)).Debug("search completed")
	return s.flushRefresh()
}

func (s *Session) flushRefresh() []Effect {
	if !s.refreshPending {
		return nil
	}
	s.refreshPending = false
	return s.issueSearch(s.lastQuery)
}

func (s *Session) submitReview(ev SubmitReview) []Effect {
	if s.detail == nil || s.submitting {
		return nil
	}
	s.detail.Feedback = ev.Feedback

	rating, ok := s.detail.Rating.Selected()
	if !ok {
		return []Effect{Alert{Level: AlertWarning, Message: ErrNoRating.Message, Err: ErrNoRating}}
	}
	feedback := strings.TrimSpace(ev.Feedback)
	if feedback == "" {
		return []Effect{Alert{Level: AlertWarning, Message: ErrNoFeedback.Message, Err: ErrNoFeedback}}
	}

	s.submitting = true
	return []Effect{IssueReview{RecipeID: s.detail.Recipe.ID, Rating: rating, Feedback: feedback}}
}

// completeReview closes the detail view on success and re-runs the last
// search so the refreshed aggregate ratings show up. The in-memory recipe
// is never patched directly.
func (s *Session) completeReview(ev ReviewCompleted) []Effect {
	s.submitting = false

	if ev.Err != nil {
		s.log.WithError(ev.Err).WithField("recipe_id", ev.RecipeID).Error("error submitting review")
		return []Effect{Alert{Level: AlertError, Message: submitFailureMessage(ev.Err), Err: ev.Err}}
	}

	effects := []Effect{Alert{Level: AlertSuccess, Message: MsgReviewThanks}}
	if id, ok := s.CurrentRecipeID(); ok && id == ev.RecipeID {
		s.detail = nil
	}
	switch {
	case len(s.lastQuery) == 0:
	case s.searching:
		s.refreshPending = true
	default:
		effects = append(effects, s.issueSearch(s.lastQuery)...)
	}
	return effects
}

func submitFailureMessage(err error) string {
	var serr *clients.SubmitError
	if errors.As(err, &serr) && serr.Kind == clients.KindServer {
		return MsgSubmitRejected + serr.Message
	}
	return MsgSubmitFailed
}
