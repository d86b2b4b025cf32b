package models

import (
	"time"

	"github.com/google/uuid"
)

// Property statuses
const (
	PropertyStatusActive  = "active"
	PropertyStatusPending = "pending"
	PropertyStatusSold    = "sold"
)

type Property struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zip       string    `json:"zip"`
	Price     int64     `json:"price"`
	Beds      int       `json:"beds"`
	Baths     float64   `json:"baths"`
	Sqft      int       `json:"sqft"`
	YearBuilt int       `json:"year_built"`
	Status    string    `json:"status"`
	ListedAt  time.Time `json:"listed_at"`
	CreatedAt time.Time `json:"created_at"`
}

// PricePerSqft returns the listing price divided by square footage
func (p *Property) PricePerSqft() float64 {
	if p.Sqft <= 0 {
		return 0
	}
	return float64(p.Price) / float64(p.Sqft)
}

// PropertyFilter narrows property listing queries
type PropertyFilter struct {
	City     string
	Status   string
	MinPrice int64
	MaxPrice int64
	MinBeds  int
}
