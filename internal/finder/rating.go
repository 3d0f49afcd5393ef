package finder

import "github.com/mwhite7112/woodpantry-finder/internal/recipe"

// RatingInput is the five-star selector of the detail view. Hover is a
// preview only; Click commits.
type RatingInput struct {
	selected int
	hover    int
}

// Hover previews stars 1..star as filled. Out of range values are ignored.
func (r *RatingInput) Hover(star int) {
	if star < 1 || star > recipe.MaxStars {
		return
	}
	r.hover = star
}

// Leave drops the hover preview and falls back to the committed selection.
func (r *RatingInput) Leave() {
	r.hover = 0
}

// Click commits star as the selection. The pointer rests on the clicked
// star, so the preview moves there too. Clicking the current selection keeps
// it selected.
func (r *RatingInput) Click(star int) {
	if star < 1 || star > recipe.MaxStars {
		return
	}
	r.selected = star
	r.hover = star
}

// Selected returns the committed rating, if any.
func (r RatingInput) Selected() (int, bool) {
	return r.selected, r.selected > 0
}

// Hovered returns the star under the pointer, or 0.
func (r RatingInput) Hovered() int {
	return r.hover
}

// Stars returns the fill state to render: the hover preview while one is
// active, otherwise the committed selection.
func (r RatingInput) Stars() [recipe.MaxStars]bool {
	if r.hover > 0 {
		return recipe.Stars(float64(r.hover))
	}
	return recipe.Stars(float64(r.selected))
}
