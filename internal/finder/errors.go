package finder

// ValidationError is raised before any network call and is never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var (
	ErrNoIngredients = &ValidationError{Message: "Please add at least one ingredient!"}
	ErrNoRating      = &ValidationError{Message: "Please select a rating before submitting."}
	ErrNoFeedback    = &ValidationError{Message: "Please provide some feedback about the recipe."}
)

// User-facing messages for failed calls.
const (
	MsgSearchFailed   = "Error searching recipes. Please try again."
	MsgSubmitFailed   = "Failed to submit review. Please try again."
	MsgSubmitRejected = "Error submitting review: "
	MsgReviewThanks   = "Thank you for your review!"
)
