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

type ReviewClient struct {
	baseURL string
	http    *http.Client
}

func NewReviewClient(baseURL string, timeout time.Duration) *ReviewClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ReviewClient{baseURL: baseURL, http: &http.Client{Timeout: timeout}}
}

// Rate posts a review to /rate. A response with success=false becomes a
// SubmitError of KindServer carrying the service's message.
func (c *ReviewClient) Rate(ctx context.Context, recipeID, rating int, feedback string) error {
	body, err := json.Marshal(recipe.RateRequest{RecipeID: recipeID, Rating: rating, Feedback: feedback})
	if err != nil {
		return &SubmitError{Kind: KindTransport, Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rate", bytes.NewReader(body))
	if err != nil {
		return &SubmitError{Kind: KindTransport, Message: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &SubmitError{Kind: KindTransport, Message: "do request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &SubmitError{Kind: KindTransport, Message: fmt.Sprintf("matching service returned %d", resp.StatusCode)}
	}

	var result recipe.RateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &SubmitError{Kind: KindTransport, Message: "decode response", Err: err}
	}
	if !result.Success {
		return &SubmitError{Kind: KindServer, Message: result.Error}
	}
	return nil
}
