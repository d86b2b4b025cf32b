package repositories

import (
	"database/sql"

	"github.com/homescope/homescope/internal/models"
)

type MarketSnapshotRepository struct {
	db *sql.DB
}

func NewMarketSnapshotRepository(db *sql.DB) *MarketSnapshotRepository {
	return &MarketSnapshotRepository{db: db}
}

// Upsert inserts or replaces the snapshot for a city
func (r *MarketSnapshotRepository) Upsert(snapshot *models.MarketSnapshot) error {
	query := `
		INSERT INTO market_snapshots (id, city, median_price, average_price, price_per_sqft, active_listings, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (city)
		DO UPDATE SET
			median_price = excluded.median_price,
			average_price = excluded.average_price,
			price_per_sqft = excluded.price_per_sqft,
			active_listings = excluded.active_listings,
			computed_at = excluded.computed_at
	`
	_, err := r.db.Exec(query,
		snapshot.ID, snapshot.City, snapshot.MedianPrice, snapshot.AveragePrice,
		snapshot.PricePerSqft, snapshot.ActiveListings, snapshot.ComputedAt,
	)
	return err
}

// GetByCity gets the snapshot for a city, returning nil when absent
func (r *MarketSnapshotRepository) GetByCity(city string) (*models.MarketSnapshot, error) {
	query := `
		SELECT id, city, median_price, average_price, price_per_sqft, active_listings, computed_at
		FROM market_snapshots
		WHERE city = ? COLLATE NOCASE
	`

	snapshot := &models.MarketSnapshot{}
	err := r.db.QueryRow(query, city).Scan(
		&snapshot.ID, &snapshot.City, &snapshot.MedianPrice, &snapshot.AveragePrice,
		&snapshot.PricePerSqft, &snapshot.ActiveListings, &snapshot.ComputedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return snapshot, err
}

// ListAll returns all snapshots ordered by city
func (r *MarketSnapshotRepository) ListAll() ([]*models.MarketSnapshot, error) {
	query := `
		SELECT id, city, median_price, average_price, price_per_sqft, active_listings, computed_at
		FROM market_snapshots
		ORDER BY city
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []*models.MarketSnapshot
	for rows.Next() {
		snapshot := &models.MarketSnapshot{}
		err := rows.Scan(
			&snapshot.ID, &snapshot.City, &snapshot.MedianPrice, &snapshot.AveragePrice,
			&snapshot.PricePerSqft, &snapshot.ActiveListings, &snapshot.ComputedAt,
		)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	return snapshots, rows.Err()
}
