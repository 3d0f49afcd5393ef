package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Synonym mirrors one entry of GET /ingredients/synonyms on the Ingredient
// Dictionary service.
type Synonym struct {
	Name string `json:"name"`
}

type DictionaryClient struct {
	baseURL string
	http    *http.Client
}

func NewDictionaryClient(baseURL string, timeout time.Duration) *DictionaryClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &DictionaryClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// GetSynonyms fetches alternative names for an ingredient.
// Returns nil without error if the endpoint is not available (404/405),
// so the matcher can run against a dictionary that predates it.
func (c *DictionaryClient) GetSynonyms(ctx context.Context, name string) ([]string, error) {
	u := c.baseURL + "/ingredients/synonyms?name=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusMethodNotAllowed {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary service returned %d", resp.StatusCode)
	}

	var syns []Synonym
	if err := json.NewDecoder(resp.Body).Decode(&syns); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	names := make([]string, 0, len(syns))
	for _, s := range syns {
		if s.Name != "" {
			names = append(names, s.Name)
		}
	}
	return names, nil
}
