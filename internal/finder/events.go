package finder

import "github.com/mwhite7112/woodpantry-finder/internal/recipe"

// Event is a user intent or the completion of an outstanding call.
type Event interface{ isEvent() }

type (
	AddIngredient    struct{ Raw string }
	RemoveIngredient struct{ Value string }
	RunSearch        struct{}

	// SearchCompleted carries the snapshot the search was issued with.
	SearchCompleted struct {
		Query   []string
		Recipes []recipe.Recipe
		Err     error
	}

	// OpenRecipe carries the full record captured by the result card.
	OpenRecipe  struct{ Recipe recipe.Recipe }
	CloseRecipe struct{}

	HoverStar  struct{ Star int }
	LeaveStars struct{}
	ClickStar  struct{ Star int }

	SubmitReview struct{ Feedback string }

	ReviewCompleted struct {
		RecipeID int
		Err      error
	}
)

func (AddIngredient) isEvent()    {}
func (RemoveIngredient) isEvent() {}
func (RunSearch) isEvent()        {}
func (SearchCompleted) isEvent()  {}
func (OpenRecipe) isEvent()       {}
func (CloseRecipe) isEvent()      {}
func (HoverStar) isEvent()        {}
func (LeaveStars) isEvent()       {}
func (ClickStar) isEvent()        {}
func (SubmitReview) isEvent()     {}
func (ReviewCompleted) isEvent()  {}

// Effect describes work for the caller: a call to issue or something to
// show the user.
type Effect interface{ isEffect() }

// AlertLevel grades an Alert.
type AlertLevel int

const (
	AlertInfo AlertLevel = iota
	AlertSuccess
	AlertWarning
	AlertError
)

type (
	// IssueSearch asks the caller to run a search with this snapshot and
	// report back with SearchCompleted.
	IssueSearch struct{ Ingredients []string }

	// IssueReview asks the caller to submit a review and report back with
	// ReviewCompleted.
	IssueReview struct {
		RecipeID int
		Rating   int
		Feedback string
	}

	Alert struct {
		Level   AlertLevel
		Message string
		Err     error
	}

	// ClearEntry tells the entry box its text was taken as an ingredient.
	ClearEntry struct{}
)

func (IssueSearch) isEffect() {}
func (IssueReview) isEffect() {}
func (Alert) isEffect()       {}
func (ClearEntry) isEffect()  {}
