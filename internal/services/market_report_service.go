package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/homescope/homescope/internal/clients"
	"github.com/homescope/homescope/internal/models"
	"github.com/homescope/homescope/internal/secrets"
)

// ErrNoAPIKey is returned when report generation is requested before a
// Perplexity key has been configured in the key store.
var ErrNoAPIKey = errors.New("no perplexity API key configured")

const reportSystemPrompt = "You are a real-estate market analyst. Write a concise, factual market report based only on the statistics provided. Use short paragraphs."

type MarketReportService struct {
	marketStatsService *MarketStatsService
	propertyService    *PropertyService
	client             *clients.PerplexityClient
	registry           secrets.Registry
	model              string
}

func NewMarketReportService(
	marketStatsService *MarketStatsService,
	propertyService *PropertyService,
	client *clients.PerplexityClient,
	registry secrets.Registry,
	model string,
) *MarketReportService {
	return &MarketReportService{
		marketStatsService: marketStatsService,
		propertyService:    propertyService,
		client:             client,
		registry:           registry,
		model:              model,
	}
}

// GenerateReport builds a prompt from the city's snapshot and current
// listings and asks the AI backend for a narrative report.
func (s *MarketReportService) GenerateReport(ctx context.Context, city string) (*models.MarketReport, error) {
	snapshot, err := s.marketStatsService.GetSnapshot(city)
	if err != nil {
		return nil, err
	}

	apiKey := s.registry.Get(models.EnvVarName("perplexity"))
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	listings, err := s.propertyService.List(&models.PropertyFilter{
		City:   snapshot.City,
		Status: models.PropertyStatusActive,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.client.ChatCompletion(ctx, apiKey, reportSystemPrompt, buildReportPrompt(snapshot, listings))
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	return &models.MarketReport{
		City:        snapshot.City,
		Model:       s.model,
		Content:     content,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func buildReportPrompt(snapshot *models.MarketSnapshot, listings []*models.Property) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Market statistics for %s:\n", snapshot.City)
	fmt.Fprintf(&sb, "- Median listing price: $%d\n", snapshot.MedianPrice)
	fmt.Fprintf(&sb, "- Average listing price: $%d\n", snapshot.AveragePrice)
	fmt.Fprintf(&sb, "- Average price per sqft: $%.0f\n", snapshot.PricePerSqft)
	fmt.Fprintf(&sb, "- Active listings: %d\n", snapshot.ActiveListings)
	fmt.Fprintf(&sb, "- Computed at: %s\n", snapshot.ComputedAt.Format("2006-01-02"))

	if len(listings) > 0 {
		sb.WriteString("\nSample of active listings:\n")
		limit := len(listings)
		if limit > 5 {
			limit = 5
		}
		for _, listing := range listings[:limit] {
			fmt.Fprintf(&sb, "- %s: $%d, %d bd / %.1f ba, %d sqft, built %d\n",
				listing.Address, listing.Price, listing.Beds, listing.Baths, listing.Sqft, listing.YearBuilt)
		}
	}

	sb.WriteString("\nWrite a short market report for a prospective buyer.")
	return sb.String()
}
