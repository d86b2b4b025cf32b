package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/homescope/homescope/internal/repositories"
	"github.com/homescope/homescope/internal/secrets"
	"github.com/homescope/homescope/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKeyRouter(t *testing.T) (*gin.Engine, *secrets.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := secrets.NewMemory()
	repo := repositories.NewAPIKeyRepository(filepath.Join(t.TempDir(), "api_keys.env"))
	handler := NewAPIKeyHandler(services.NewAPIKeyService(repo, registry))

	router := gin.New()
	router.POST("/api/keys", handler.CreateKey)
	router.GET("/api/keys", handler.ListKeys)
	router.DELETE("/api/keys/:identifier", handler.DeleteKey)
	return router, registry
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateKeyEndpoint(t *testing.T) {
	router, registry := newKeyRouter(t)

	w := doJSON(router, "POST", "/api/keys", map[string]string{
		"name":    "OpenAI Prod",
		"service": "openai",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Success bool `json:"success"`
		Key     struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Service string `json:"service"`
			Key     string `json:"key"`
		} `json:"key"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.True(t, response.Success)
	assert.Len(t, response.Key.ID, 8)
	assert.Len(t, response.Key.Key, 64, "create returns the plaintext secret")
	assert.Equal(t, "openai", response.Key.Service)

	assert.Equal(t, response.Key.Key, registry.Get("OPENAI_API_KEY"))
}

func TestCreateKeyValidationError(t *testing.T) {
	router, _ := newKeyRouter(t)

	w := doJSON(router, "POST", "/api/keys", map[string]string{
		"name":    "",
		"service": "openai",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.NotEmpty(t, response.Message)
}

func TestListKeysMasksSecrets(t *testing.T) {
	router, _ := newKeyRouter(t)

	created := doJSON(router, "POST", "/api/keys", map[string]string{
		"name":    "Mapbox",
		"service": "mapbox",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	w := doJSON(router, "GET", "/api/keys", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Keys    []struct {
			Service string `json:"service"`
			Key     string `json:"key"`
		} `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	require.Len(t, response.Keys, 1)
	assert.Equal(t, "mapbox", response.Keys[0].Service)
	assert.Len(t, response.Keys[0].Key, 11, "masked form is first4...last4")
	assert.Contains(t, response.Keys[0].Key, "...")
}

func TestDeleteKeyEndpoint(t *testing.T) {
	router, _ := newKeyRouter(t)

	created := doJSON(router, "POST", "/api/keys", map[string]string{
		"name":    "MLS Feed",
		"service": "mls",
	})
	require.Equal(t, http.StatusCreated, created.Code)

	w := doJSON(router, "DELETE", "/api/keys/mls", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deleting again reports not found
	w = doJSON(router, "DELETE", "/api/keys/mls", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
