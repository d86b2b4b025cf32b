package repositories

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/homescope/homescope/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempKeyFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "api_keys.env")
}

func TestAPIKeyRepositoryRoundTrip(t *testing.T) {
	repo := NewAPIKeyRepository(tempKeyFile(t))

	keys := []*models.APIKey{
		{ID: "a1b2c3d4", Name: "OpenAI Prod", Service: "openai", Key: strings.Repeat("ab", 32), CreatedAt: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)},
		{ID: "e5f6a7b8", Name: "Mapbox", Service: "mapbox", Key: strings.Repeat("cd", 32), CreatedAt: time.Date(2026, 2, 1, 8, 0, 0, 123456789, time.UTC)},
		{ID: "c9d0e1f2", Name: "MLS Feed", Service: "mls", Key: strings.Repeat("ef", 32), CreatedAt: time.Date(2026, 3, 20, 23, 59, 59, 0, time.UTC)},
	}

	require.NoError(t, repo.Save(keys))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, loaded, len(keys))

	for i, key := range keys {
		assert.Equal(t, key.ID, loaded[i].ID)
		assert.Equal(t, key.Name, loaded[i].Name)
		assert.Equal(t, key.Service, loaded[i].Service)
		assert.Equal(t, key.Key, loaded[i].Key)
		assert.True(t, key.CreatedAt.Equal(loaded[i].CreatedAt), "createdAt must round-trip")
	}
}

func TestAPIKeyRepositoryMissingFile(t *testing.T) {
	repo := NewAPIKeyRepository(filepath.Join(t.TempDir(), "does-not-exist.env"))

	keys, err := repo.Load()
	assert.NoError(t, err)
	assert.Empty(t, keys)
}

func TestAPIKeyRepositoryFileLayout(t *testing.T) {
	path := tempKeyFile(t)
	repo := NewAPIKeyRepository(path)

	key := &models.APIKey{
		ID:        "a1b2c3d4",
		Name:      "OpenAI Prod",
		Service:   "openai",
		Key:       strings.Repeat("ab", 32),
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save([]*models.APIKey{key}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(raw)

	// Authoritative record line plus the derived env line
	assert.Contains(t, content, "key/v1 a1b2c3d4|OpenAI Prod|openai|")
	assert.Contains(t, content, "OPENAI_API_KEY="+key.Key+"\n")
	assert.True(t, strings.HasPrefix(content, "#"), "file starts with the generated header")
}

func TestAPIKeyRepositorySkipsMalformedLines(t *testing.T) {
	path := tempKeyFile(t)

	content := strings.Join([]string{
		"# header comment",
		"key/v1 a1b2c3d4|Good Key|openai|deadbeef|2026-01-15T10:30:00Z",
		"key/v1 broken-line-without-enough-fields",
		"key/v1 e5f6a7b8|Bad Time|mapbox|cafebabe|yesterday",
		"key/v2 11223344|Future Version|mls|feedface|2026-01-15T10:30:00Z",
		"OPENAI_API_KEY=deadbeef",
		"totally unrelated garbage",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	repo := NewAPIKeyRepository(path)
	keys, err := repo.Load()
	require.NoError(t, err)

	require.Len(t, keys, 1)
	assert.Equal(t, "a1b2c3d4", keys[0].ID)
	assert.Equal(t, "openai", keys[0].Service)
}

func TestAPIKeyRepositorySaveOverwrites(t *testing.T) {
	repo := NewAPIKeyRepository(tempKeyFile(t))

	first := []*models.APIKey{
		{ID: "a1b2c3d4", Name: "First", Service: "openai", Key: "deadbeefdeadbeef", CreatedAt: time.Now().UTC()},
		{ID: "e5f6a7b8", Name: "Second", Service: "mapbox", Key: "cafebabecafebabe", CreatedAt: time.Now().UTC()},
	}
	require.NoError(t, repo.Save(first))

	second := []*models.APIKey{
		{ID: "c9d0e1f2", Name: "Only", Service: "mls", Key: "feedfacefeedface", CreatedAt: time.Now().UTC()},
	}
	require.NoError(t, repo.Save(second))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "mls", loaded[0].Service)
}
