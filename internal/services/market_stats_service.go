package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/homescope/homescope/internal/models"
	"github.com/homescope/homescope/internal/repositories"
)

type MarketStatsService struct {
	propertyRepo *repositories.PropertyRepository
	snapshotRepo *repositories.MarketSnapshotRepository
}

func NewMarketStatsService(propertyRepo *repositories.PropertyRepository, snapshotRepo *repositories.MarketSnapshotRepository) *MarketStatsService {
	return &MarketStatsService{
		propertyRepo: propertyRepo,
		snapshotRepo: snapshotRepo,
	}
}

// ComputeSnapshots recomputes the per-city market snapshot from the catalog
func (s *MarketStatsService) ComputeSnapshots() error {
	cities, err := s.propertyRepo.Cities()
	if err != nil {
		return fmt.Errorf("failed to list cities: %w", err)
	}

	for _, city := range cities {
		properties, err := s.propertyRepo.List(&models.PropertyFilter{City: city})
		if err != nil {
			return fmt.Errorf("failed to list properties for %s: %w", city, err)
		}

		snapshot := computeSnapshot(city, properties)
		if snapshot == nil {
			continue
		}

		if err := s.snapshotRepo.Upsert(snapshot); err != nil {
			return fmt.Errorf("failed to save snapshot for %s: %w", city, err)
		}
	}

	return nil
}

// GetSnapshot returns the snapshot for a city
func (s *MarketStatsService) GetSnapshot(city string) (*models.MarketSnapshot, error) {
	snapshot, err := s.snapshotRepo.GetByCity(city)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, &models.NotFoundError{Resource: "market snapshot", Identifier: city}
	}
	return snapshot, nil
}

// ListSnapshots returns all city snapshots
func (s *MarketStatsService) ListSnapshots() ([]*models.MarketSnapshot, error) {
	snapshots, err := s.snapshotRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

func computeSnapshot(city string, properties []*models.Property) *models.MarketSnapshot {
	if len(properties) == 0 {
		return nil
	}

	prices := make([]int64, 0, len(properties))
	var priceSum int64
	var sqftPriceSum float64
	sqftPriced := 0
	active := 0

	for _, property := range properties {
		prices = append(prices, property.Price)
		priceSum += property.Price
		if property.Sqft > 0 {
			sqftPriceSum += property.PricePerSqft()
			sqftPriced++
		}
		if property.Status == models.PropertyStatusActive {
			active++
		}
	}

	sort.Slice(prices, func(i, j int) bool { return prices[i] < prices[j] })

	var pricePerSqft float64
	if sqftPriced > 0 {
		pricePerSqft = sqftPriceSum / float64(sqftPriced)
	}

	return &models.MarketSnapshot{
		ID:             uuid.New(),
		City:           city,
		MedianPrice:    medianPrice(prices),
		AveragePrice:   priceSum / int64(len(prices)),
		PricePerSqft:   pricePerSqft,
		ActiveListings: active,
		ComputedAt:     time.Now().UTC(),
	}
}

// medianPrice expects a sorted slice; even counts average the middle pair
func medianPrice(prices []int64) int64 {
	n := len(prices)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return prices[n/2]
	}
	return (prices[n/2-1] + prices[n/2]) / 2
}
