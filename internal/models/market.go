package models

import (
	"time"

	"github.com/google/uuid"
)

// MarketSnapshot holds aggregated listing statistics for one city.
// Snapshots are recomputed from the property catalog, one row per city.
type MarketSnapshot struct {
	ID             uuid.UUID `json:"id"`
	City           string    `json:"city"`
	MedianPrice    int64     `json:"median_price"`
	AveragePrice   int64     `json:"average_price"`
	PricePerSqft   float64   `json:"price_per_sqft"`
	ActiveListings int       `json:"active_listings"`
	ComputedAt     time.Time `json:"computed_at"`
}

// MarketReport is an AI-generated narrative for a city's market
type MarketReport struct {
	City        string    `json:"city"`
	Model       string    `json:"model"`
	Content     string    `json:"content"`
	GeneratedAt time.Time `json:"generated_at"`
}
