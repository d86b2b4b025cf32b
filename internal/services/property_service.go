package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/homescope/homescope/internal/models"
	"github.com/homescope/homescope/internal/repositories"
	"github.com/homescope/homescope/pkg/logger"
)

type PropertyService struct {
	propertyRepo *repositories.PropertyRepository
}

func NewPropertyService(propertyRepo *repositories.PropertyRepository) *PropertyService {
	return &PropertyService{propertyRepo: propertyRepo}
}

// List returns properties matching the filter
func (s *PropertyService) List(filter *models.PropertyFilter) ([]*models.Property, error) {
	properties, err := s.propertyRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// GetByID returns a single property
func (s *PropertyService) GetByID(id string) (*models.Property, error) {
	propertyID, err := uuid.Parse(id)
	if err != nil {
		return nil, &models.ValidationError{Field: "id", Message: "invalid property id"}
	}

	property, err := s.propertyRepo.GetByID(propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	if property == nil {
		return nil, &models.NotFoundError{Resource: "property", Identifier: id}
	}

	return property, nil
}

// GetByIDs returns the properties for a comparison selection
func (s *PropertyService) GetByIDs(ids []string) ([]*models.Property, error) {
	propertyIDs := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		propertyID, err := uuid.Parse(id)
		if err != nil {
			return nil, &models.ValidationError{Field: "ids", Message: "invalid property id: " + id}
		}
		propertyIDs = append(propertyIDs, propertyID)
	}

	properties, err := s.propertyRepo.ListByIDs(propertyIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

// SeedIfEmpty loads the fixture catalog when the table has no rows yet
func (s *PropertyService) SeedIfEmpty() error {
	count, err := s.propertyRepo.Count()
	if err != nil {
		return fmt.Errorf("failed to count properties: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, property := range seedProperties() {
		if err := s.propertyRepo.Create(property); err != nil {
			return fmt.Errorf("failed to seed property %s: %w", property.Address, err)
		}
	}

	logger.Infof("Seeded %d fixture properties", len(seedProperties()))
	return nil
}

type seedEntry struct {
	address   string
	city      string
	state     string
	zip       string
	price     int64
	beds      int
	baths     float64
	sqft      int
	yearBuilt int
	status    string
	daysAgo   int
}

var seedCatalog = []seedEntry{
	{"412 Maple Grove Ln", "Austin", "TX", "78704", 585000, 3, 2, 1840, 2004, models.PropertyStatusActive, 12},
	{"88 Barton Creek Dr", "Austin", "TX", "78735", 1250000, 5, 4, 3920, 2016, models.PropertyStatusActive, 34},
	{"2307 E Cesar Chavez St", "Austin", "TX", "78702", 689000, 3, 2.5, 1710, 2019, models.PropertyStatusPending, 8},
	{"1501 Travis Heights Blvd", "Austin", "TX", "78704", 934000, 4, 3, 2480, 1998, models.PropertyStatusActive, 47},
	{"930 Rainey St Unit 12", "Austin", "TX", "78701", 472000, 1, 1, 780, 2021, models.PropertyStatusSold, 95},
	{"7004 Cherry Hollow Cv", "Round Rock", "TX", "78681", 419000, 4, 2.5, 2260, 2011, models.PropertyStatusActive, 21},
	{"311 Sendero Springs Dr", "Round Rock", "TX", "78681", 512000, 4, 3, 2780, 2015, models.PropertyStatusActive, 5},
	{"1809 Old Settlers Blvd", "Round Rock", "TX", "78664", 365000, 3, 2, 1620, 2002, models.PropertyStatusPending, 60},
	{"405 Ski Shores Rd", "Lakeway", "TX", "78734", 1480000, 5, 4.5, 4310, 2009, models.PropertyStatusActive, 73},
	{"118 Vailco Ln", "Lakeway", "TX", "78738", 875000, 4, 3.5, 3050, 2013, models.PropertyStatusActive, 18},
}

func seedProperties() []*models.Property {
	now := time.Now().UTC()
	properties := make([]*models.Property, 0, len(seedCatalog))
	for _, entry := range seedCatalog {
		properties = append(properties, &models.Property{
			ID:        uuid.New(),
			Address:   entry.address,
			City:      entry.city,
			State:     entry.state,
			Zip:       entry.zip,
			Price:     entry.price,
			Beds:      entry.beds,
			Baths:     entry.baths,
			Sqft:      entry.sqft,
			YearBuilt: entry.yearBuilt,
			Status:    entry.status,
			ListedAt:  now.AddDate(0, 0, -entry.daysAgo),
			CreatedAt: now,
		})
	}
	return properties
}
