// Package recipe holds the wire types shared by the finder client and the
// matching service. Field names follow the /search and /rate JSON contracts.
package recipe

import "math"

// MaxStars is the size of every star row.
const MaxStars = 5

type Review struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
	Date     string `json:"date"`
}

// Recipe is a recipe record as returned by /search. The match fields are
// filled per request by the matching service.
type Recipe struct {
	ID                    int      `json:"id"`
	Name                  string   `json:"name"`
	CookingTime           string   `json:"cooking_time"`
	Difficulty            string   `json:"difficulty"`
	Ingredients           []string `json:"ingredients"`
	Procedure             []string `json:"procedure"`
	MatchedIngredients    int      `json:"matched_ingredients"`
	TotalInputIngredients int      `json:"total_input_ingredients"`
	MatchPercentage       string   `json:"match_percentage"`
	Rating                float64  `json:"rating"`
	Reviews               []Review `json:"reviews"`
}

// Rated reports whether the recipe has an aggregate rating to show.
func (r Recipe) Rated() bool {
	return r.Rating > 0
}

type SearchRequest struct {
	Ingredients []string `json:"ingredients"`
}

type RateRequest struct {
	RecipeID int    `json:"recipe_id"`
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

type RateResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// FilledStars returns how many of the MaxStars stars render filled for a
// rating: round half up, clamped to [0, MaxStars].
func FilledStars(rating float64) int {
	if math.IsNaN(rating) {
		return 0
	}
	n := int(math.Floor(rating + 0.5))
	if n < 0 {
		return 0
	}
	if n > MaxStars {
		return MaxStars
	}
	return n
}

// Stars returns the fill state of each star for a rating, index 0 being
// the first star.
func Stars(rating float64) [MaxStars]bool {
	var row [MaxStars]bool
	for i := 0; i < FilledStars(rating); i++ {
		row[i] = true
	}
	return row
}

// AverageRating recomputes the aggregate rating from a review list.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
	}
	return float64(total) / float64(len(reviews))
}
