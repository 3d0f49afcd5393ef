package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

func TestReviewClientRate(t *testing.T) {
	var got recipe.RateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rate", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true}`)) //nolint:errcheck
	}))
	defer srv.Close()

	err := NewReviewClient(srv.URL, 0).Rate(context.Background(), 7, 5, "Great!")
	require.NoError(t, err)
	assert.Equal(t, recipe.RateRequest{RecipeID: 7, Rating: 5, Feedback: "Great!"}, got)
}

func TestReviewClientRateErrors(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind ErrorKind
		wantMsg  string
	}{
		{
			name: "server reported",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"error":"Recipe not found"}`)) //nolint:errcheck
			},
			wantKind: KindServer,
			wantMsg:  "Recipe not found",
		},
		{
			name: "non-success status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			wantKind: KindTransport,
			wantMsg:  "matching service returned 502",
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`nope`)) //nolint:errcheck
			},
			wantKind: KindTransport,
			wantMsg:  "decode response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			err := NewReviewClient(srv.URL, 0).Rate(context.Background(), 1, 3, "ok")
			var serr *SubmitError
			require.True(t, errors.As(err, &serr), "got %v", err)
			assert.Equal(t, tt.wantKind, serr.Kind)
			assert.Equal(t, tt.wantMsg, serr.Message)
		})
	}
}
