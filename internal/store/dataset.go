package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

// datasetEntry is one value of the recipes_data.json object, keyed by
// recipe name.
type datasetEntry struct {
	Ingredients []string        `json:"ingredients"`
	Procedure   []string        `json:"procedure"`
	CookingTime string          `json:"cooking_time"`
	Difficulty  string          `json:"difficulty"`
	Rating      float64         `json:"rating"`
	Reviews     []recipe.Review `json:"reviews"`
}

// DecodeDataset reads a recipes_data.json document. Ids are assigned by
// position in the file, starting at 1, so the object is read token by
// token to keep key order.
func DecodeDataset(r io.Reader) ([]recipe.Recipe, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("read dataset: expected object, got %v", tok)
	}

	var recipes []recipe.Recipe
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read recipe name: %w", err)
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("read recipe name: unexpected %v", tok)
		}

		var e datasetEntry
		if err := dec.Decode(&e); err != nil {
			return nil, fmt.Errorf("decode recipe %q: %w", name, err)
		}
		if e.Reviews == nil {
			e.Reviews = []recipe.Review{}
		}
		recipes = append(recipes, recipe.Recipe{
			ID:          len(recipes) + 1,
			Name:        name,
			Ingredients: e.Ingredients,
			Procedure:   e.Procedure,
			CookingTime: e.CookingTime,
			Difficulty:  e.Difficulty,
			Rating:      e.Rating,
			Reviews:     e.Reviews,
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read dataset end: %w", err)
	}
	return recipes, nil
}

// EncodeDataset writes recipes in the recipes_data.json layout, in id order,
// indented by four spaces.
func EncodeDataset(w io.Writer, recipes []recipe.Recipe) error {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, r := range recipes {
		if i > 0 {
			buf.WriteString(",")
		}
		name, err := json.Marshal(r.Name)
		if err != nil {
			return fmt.Errorf("encode recipe name: %w", err)
		}
		reviews := r.Reviews
		if reviews == nil {
			reviews = []recipe.Review{}
		}
		body, err := json.MarshalIndent(datasetEntry{
			Ingredients: r.Ingredients,
			Procedure:   r.Procedure,
			CookingTime: r.CookingTime,
			Difficulty:  r.Difficulty,
			Rating:      r.Rating,
			Reviews:     reviews,
		}, "    ", "    ")
		if err != nil {
			return fmt.Errorf("encode recipe %q: %w", r.Name, err)
		}
		buf.WriteString("\n    ")
		buf.Write(name)
		buf.WriteString(": ")
		buf.Write(body)
	}
	buf.WriteString("\n}\n")

	_, err := w.Write(buf.Bytes())
	return err
}
