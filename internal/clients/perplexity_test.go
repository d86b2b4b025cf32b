package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var payload chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "sonar-pro", payload.Model)
		require.Len(t, payload.Messages, 2)
		assert.Equal(t, "system", payload.Messages[0].Role)
		assert.Equal(t, "user", payload.Messages[1].Role)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Austin looks strong."}}]}`))
	}))
	defer server.Close()

	client := NewPerplexityClient(server.URL, "sonar-pro")
	content, err := client.ChatCompletion(context.Background(), "test-key", "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "Austin looks strong.", content)
}

func TestChatCompletionUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewPerplexityClient(server.URL, "sonar-pro")
	_, err := client.ChatCompletion(context.Background(), "bad-key", "system", "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestChatCompletionEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewPerplexityClient(server.URL, "sonar-pro")
	_, err := client.ChatCompletion(context.Background(), "key", "system", "user")
	assert.Error(t, err)
}
