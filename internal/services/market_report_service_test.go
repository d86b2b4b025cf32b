package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/homescope/homescope/internal/clients"
	"github.com/homescope/homescope/internal/models"
	"github.com/homescope/homescope/internal/repositories"
	"github.com/homescope/homescope/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReport(t *testing.T) {
	db := newServiceTestDB(t)
	propertyRepo := repositories.NewPropertyRepository(db)
	snapshotRepo := repositories.NewMarketSnapshotRepository(db)
	propertyService := NewPropertyService(propertyRepo)
	statsService := NewMarketStatsService(propertyRepo, snapshotRepo)

	createTestProperty(t, propertyRepo, "412 Maple Grove Ln", "Austin", 585000)
	createTestProperty(t, propertyRepo, "1501 Travis Heights Blvd", "Austin", 934000)
	require.NoError(t, statsService.ComputeSnapshots())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer pplx-secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Inventory in Austin is tight."}}]}`))
	}))
	defer server.Close()

	registry := secrets.NewMemory()
	registry.Set("PERPLEXITY_API_KEY", "pplx-secret")

	reportService := NewMarketReportService(
		statsService, propertyService,
		clients.NewPerplexityClient(server.URL, "sonar-pro"),
		registry, "sonar-pro",
	)

	report, err := reportService.GenerateReport(context.Background(), "Austin")
	require.NoError(t, err)
	assert.Equal(t, "Austin", report.City)
	assert.Equal(t, "sonar-pro", report.Model)
	assert.Equal(t, "Inventory in Austin is tight.", report.Content)
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestGenerateReportWithoutKey(t *testing.T) {
	db := newServiceTestDB(t)
	propertyRepo := repositories.NewPropertyRepository(db)
	snapshotRepo := repositories.NewMarketSnapshotRepository(db)
	propertyService := NewPropertyService(propertyRepo)
	statsService := NewMarketStatsService(propertyRepo, snapshotRepo)

	createTestProperty(t, propertyRepo, "412 Maple Grove Ln", "Austin", 585000)
	require.NoError(t, statsService.ComputeSnapshots())

	reportService := NewMarketReportService(
		statsService, propertyService,
		clients.NewPerplexityClient("http://unused.invalid", "sonar-pro"),
		secrets.NewMemory(), "sonar-pro",
	)

	_, err := reportService.GenerateReport(context.Background(), "Austin")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestGenerateReportUnknownCity(t *testing.T) {
	db := newServiceTestDB(t)
	propertyRepo := repositories.NewPropertyRepository(db)
	snapshotRepo := repositories.NewMarketSnapshotRepository(db)

	reportService := NewMarketReportService(
		NewMarketStatsService(propertyRepo, snapshotRepo),
		NewPropertyService(propertyRepo),
		clients.NewPerplexityClient("http://unused.invalid", "sonar-pro"),
		secrets.NewMemory(), "sonar-pro",
	)

	_, err := reportService.GenerateReport(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.True(t, models.IsNotFoundError(err))
}
