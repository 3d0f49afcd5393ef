package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryClientGetSynonyms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ingredients/synonyms", r.URL.Path)
		assert.Equal(t, "spring onion", r.URL.Query().Get("name"))
		w.Write([]byte(`[{"name":"scallion"},{"name":""},{"name":"green onion"}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	names, err := NewDictionaryClient(srv.URL, 0).GetSynonyms(context.Background(), "spring onion")
	require.NoError(t, err)
	assert.Equal(t, []string{"scallion", "green onion"}, names)
}

func TestDictionaryClientMissingEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	names, err := NewDictionaryClient(srv.URL, 0).GetSynonyms(context.Background(), "egg")
	require.NoError(t, err)
	assert.Nil(t, names)
}

func TestDictionaryClientFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewDictionaryClient(srv.URL, 0).GetSynonyms(context.Background(), "egg")
	assert.EqualError(t, err, "dictionary service returned 500")
}
