package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

// DefaultTimeout bounds a single call to the matching service.
const DefaultTimeout = 30 * time.Second

type MatchClient struct {
	baseURL string
	http    *http.Client
}

func NewMatchClient(baseURL string, timeout time.Duration) *MatchClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &MatchClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Search posts the ingredient snapshot to /search and returns the recipes in
// the order the service ranked them. An empty slice is a valid answer.
func (c *MatchClient) Search(ctx context.Context, ingredients []string) ([]recipe.Recipe, error) {
	body, err := json.Marshal(recipe.SearchRequest{Ingredients: ingredients})
	if err != nil {
		return nil, &SearchError{Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, &SearchError{Message: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &SearchError{Message: "do request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &SearchError{Message: fmt.Sprintf("matching service returned %d", resp.StatusCode)}
	}

	var recipes []recipe.Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipes); err != nil {
		return nil, &SearchError{Message: "decode response", Err: err}
	}
	if recipes == nil {
		recipes = []recipe.Recipe{}
	}
	return recipes, nil
}
