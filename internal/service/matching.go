package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mwhite7112/woodpantry-finder/internal/ingredients"
	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
	"github.com/mwhite7112/woodpantry-finder/internal/store"
)

const (
	DefaultThreshold  = 80
	DefaultMaxResults = 10

	// minMatchFraction of the input ingredients a recipe must match.
	minMatchFraction = 0.6

	dateLayout = "2006-01-02 15:04:05"
)

// SynonymSource resolves alternative names for an ingredient word.
type SynonymSource interface {
	GetSynonyms(ctx context.Context, name string) ([]string, error)
}

type Service struct {
	store      store.Store
	synonyms   SynonymSource
	log        logrus.FieldLogger
	threshold  int
	maxResults int
	now        func() time.Time
}

type Option func(*Service)

// WithThreshold sets the fuzzy score a pair must exceed to count as a match.
func WithThreshold(n int) Option {
	return func(s *Service) { s.threshold = n }
}

func WithMaxResults(n int) Option {
	return func(s *Service) { s.maxResults = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New builds the service. synonyms may be nil.
func New(st store.Store, synonyms SynonymSource, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		store:      st,
		synonyms:   synonyms,
		log:        log,
		threshold:  DefaultThreshold,
		maxResults: DefaultMaxResults,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type scored struct {
	recipe  recipe.Recipe
	score   float64
	matched int
}

// Search scores every recipe against the input ingredients and returns the
// best ones, ranked by match percentage descending, then by fewest recipe
// ingredients. Recipes matching fewer than 60% of the inputs are dropped.
func (s *Service) Search(ctx context.Context, raw []string) ([]recipe.Recipe, error) {
	inputs := normalizeInputs(raw)
	if len(inputs) == 0 {
		return []recipe.Recipe{}, nil
	}

	recipes, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	variants := s.expandVariants(ctx, inputs)
	minRequired := max(1, int(math.Round(float64(len(inputs))*minMatchFraction)))

	ranked := make([]scored, 0)
	for _, r := range recipes {
		matched := s.countMatches(inputs, variants, r.Ingredients)
		if matched < minRequired {
			continue
		}
		ranked = append(ranked, scored{
			recipe:  r,
			score:   float64(matched) / float64(len(inputs)) * 100.0,
			matched: matched,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		li, lj := len(ranked[i].recipe.Ingredients), len(ranked[j].recipe.Ingredients)
		if li != lj {
			return li < lj
		}
		return ranked[i].recipe.ID < ranked[j].recipe.ID
	})

	if s.maxResults > 0 && len(ranked) > s.maxResults {
		ranked = ranked[:s.maxResults]
	}

	out := make([]recipe.Recipe, 0, len(ranked))
	for _, sc := range ranked {
		r := sc.recipe
		r.MatchPercentage = fmt.Sprintf("%.1f%%", sc.score)
		r.MatchedIngredients = sc.matched
		r.TotalInputIngredients = len(inputs)
		out = append(out, r)
	}

	s.log.WithField("inputs", inputs).WithField("candidates", len(recipes)).WithField("results", len(out)).Debug("search scored")
	return out, nil
}

// countMatches counts the inputs that match some recipe ingredient. Each
// recipe ingredient can be claimed by one input only, so the count never
// exceeds len(inputs).
func (s *Service) countMatches(inputs []string, variants map[string][]string, recipeIngredients []string) int {
	lowered := make([]string, len(recipeIngredients))
	for i, ing := range recipeIngredients {
		lowered[i] = strings.ToLower(ing)
	}
	claimed := make([]bool, len(lowered))

	matched := 0
	for _, in := range inputs {
		for i, ing := range lowered {
			if claimed[i] || !s.anyVariantMatches(variants[in], ing) {
				continue
			}
			claimed[i] = true
			matched++
			break
		}
	}
	return matched
}

func (s *Service) anyVariantMatches(variants []string, ingredient string) bool {
	for _, v := range variants {
		if strings.Contains(ingredient, v) || partialRatio(v, ingredient) > s.threshold {
			return true
		}
	}
	return false
}

// expandVariants maps each input to the phrase itself, its words and the
// synonyms of those words. Synonyms are fetched in parallel; lookup
// failures only narrow the match.
func (s *Service) expandVariants(ctx context.Context, inputs []string) map[string][]string {
	words := make(map[string]bool)
	for _, in := range inputs {
		for _, w := range strings.Fields(in) {
			words[w] = true
		}
	}

	syns := make(map[string][]string)
	if s.synonyms != nil {
		var mu sync.Mutex
		var wg sync.WaitGroup
		for w := range words {
			wg.Add(1)
			go func(word string) {
				defer wg.Done()
				names, err := s.synonyms.GetSynonyms(ctx, word)
				if err != nil {
					s.log.WithError(err).WithField("word", word).Debug("synonym lookup failed")
					return
				}
				mu.Lock()
				syns[word] = names
				mu.Unlock()
			}(w)
		}
		wg.Wait()
	}

	out := make(map[string][]string, len(inputs))
	for _, in := range inputs {
		seen := map[string]bool{in: true}
		vs := []string{in}
		add := func(v string) {
			v = ingredients.Normalize(strings.ReplaceAll(v, "_", " "))
			if v != "" && !seen[v] {
				seen[v] = true
				vs = append(vs, v)
			}
		}
		for _, w := range strings.Fields(in) {
			add(w)
			for _, syn := range syns[w] {
				add(syn)
			}
		}
		out[in] = vs
	}
	return out
}

func normalizeInputs(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		v := ingredients.Normalize(r)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Rate records a review for a recipe and returns the recipe with its new
// average rating.
func (s *Service) Rate(ctx context.Context, recipeID, rating int, feedback string) (*recipe.Recipe, error) {
	review := recipe.Review{
		Rating:   rating,
		Feedback: feedback,
		Date:     s.now().Format(dateLayout),
	}
	updated, err := s.store.AddReview(ctx, recipeID, review)
	if err != nil {
		return nil, fmt.Errorf("add review: %w", err)
	}
	s.log.WithField("recipe_id", recipeID).WithField("rating", updated.Rating).Info("review recorded")
	return updated, nil
}
