// Package view turns recipes into display-ready view models. It knows
// nothing about terminals; internal/tui styles what it builds.
package view

import (
	"fmt"
	"strings"

	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

// PreviewLimit is how many ingredients a result card lists.
const PreviewLimit = 4

const NoMatchesNotice = "No recipes found with these ingredients. Try adding different ingredients!"

// Card is one search result. Recipe is the full record so the detail view
// can open without another request.
type Card struct {
	Recipe       recipe.Recipe
	Name         string
	CookingTime  string
	Difficulty   string
	Match        string
	MatchCaption string
	Preview      string
}

// Results is either a notice or a header followed by cards.
type Results struct {
	Notice string
	Header string
	Cards  []Card
}

func BuildResults(recipes []recipe.Recipe) Results {
	if len(recipes) == 0 {
		return Results{Notice: NoMatchesNotice}
	}

	cards := make([]Card, 0, len(recipes))
	for _, r := range recipes {
		cards = append(cards, BuildCard(r))
	}
	return Results{
		Header: fmt.Sprintf("Found %d Matching Recipes", len(recipes)),
		Cards:  cards,
	}
}

func BuildCard(r recipe.Recipe) Card {
	return Card{
		Recipe:       r,
		Name:         r.Name,
		CookingTime:  r.CookingTime,
		Difficulty:   r.Difficulty,
		Match:        "Match: " + r.MatchPercentage,
		MatchCaption: fmt.Sprintf("Matched %d out of %d ingredients", r.MatchedIngredients, r.TotalInputIngredients),
		Preview:      Preview(r.Ingredients),
	}
}

// Preview joins the first PreviewLimit ingredients and marks truncation.
func Preview(ingredients []string) string {
	if len(ingredients) <= PreviewLimit {
		return strings.Join(ingredients, ", ")
	}
	return strings.Join(ingredients[:PreviewLimit], ", ") + " ..."
}

// Aggregate is the average rating block of a rated recipe.
type Aggregate struct {
	Stars   [recipe.MaxStars]bool
	Average string
	Count   int
	Caption string
}

type Step struct {
	Number int
	Text   string
}

type Review struct {
	Stars    [recipe.MaxStars]bool
	Feedback string
	Date     string
}

// Detail is the full recipe presentation. Aggregate is nil for unrated
// recipes and Reviews is empty when nobody has reviewed it.
type Detail struct {
	Title       string
	CookingTime string
	Difficulty  string
	Aggregate   *Aggregate
	Ingredients []string
	Steps       []Step
	Reviews     []Review
}

func BuildDetail(r recipe.Recipe) Detail {
	d := Detail{
		Title:       r.Name,
		CookingTime: r.CookingTime,
		Difficulty:  r.Difficulty,
		Ingredients: r.Ingredients,
	}

	if r.Rated() {
		avg := fmt.Sprintf("%.1f", r.Rating)
		d.Aggregate = &Aggregate{
			Stars:   recipe.Stars(r.Rating),
			Average: avg,
			Count:   len(r.Reviews),
			Caption: fmt.Sprintf("(%s average from %d reviews)", avg, len(r.Reviews)),
		}
	}

	for i, text := range r.Procedure {
		d.Steps = append(d.Steps, Step{Number: i + 1, Text: text})
	}
	for _, rv := range r.Reviews {
		d.Reviews = append(d.Reviews, Review{
			Stars:    recipe.Stars(float64(rv.Rating)),
			Feedback: rv.Feedback,
			Date:     rv.Date,
		})
	}
	return d
}
