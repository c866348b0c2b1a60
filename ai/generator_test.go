package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "hello", req.Prompt)

		json.NewEncoder(w).Encode(generateResponse{Text: "hi there"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-key")
	reply, err := client.Generate(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
}

func TestHTTPClient_Generate_NoAPIKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(generateResponse{Text: "ok"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "")
	_, err := client.Generate(context.Background(), "ping")
	assert.NoError(t, err)
}

func TestHTTPClient_Generate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "key")
	_, err := client.Generate(context.Background(), "hello")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestHTTPClient_Generate_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Text: "late"})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewHTTPClient(server.URL, "key")
	_, err := client.Generate(ctx, "hello")
	assert.Error(t, err)
}
