package repositories

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/homescope/homescope/internal/models"
)

type PropertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

const propertyColumns = "id, address, city, state, zip, price, beds, baths, sqft, year_built, status, listed_at, created_at"

// Create inserts a new property listing
func (r *PropertyRepository) Create(property *models.Property) error {
	query := `
		INSERT INTO properties (id, address, city, state, zip, price, beds, baths, sqft, year_built, status, listed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.Exec(query,
		property.ID, property.Address, property.City, property.State, property.Zip,
		property.Price, property.Beds, property.Baths, property.Sqft, property.YearBuilt,
		property.Status, property.ListedAt, property.CreatedAt,
	)
	return err
}

// GetByID gets a property by ID, returning nil when it does not exist
func (r *PropertyRepository) GetByID(id uuid.UUID) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = ?`

	property := &models.Property{}
	err := r.db.QueryRow(query, id).Scan(
		&property.ID, &property.Address, &property.City, &property.State, &property.Zip,
		&property.Price, &property.Beds, &property.Baths, &property.Sqft, &property.YearBuilt,
		&property.Status, &property.ListedAt, &property.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	return property, err
}

// List returns properties matching the filter, newest listings first
func (r *PropertyRepository) List(filter *models.PropertyFilter) ([]*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE 1=1`
	var args []interface{}

	if filter != nil {
		if filter.City != "" {
			query += " AND city = ? COLLATE NOCASE"
			args = append(args, filter.City)
		}
		if filter.Status != "" {
			query += " AND status = ?"
			args = append(args, filter.Status)
		}
		if filter.MinPrice > 0 {
			query += " AND price >= ?"
			args = append(args, filter.MinPrice)
		}
		if filter.MaxPrice > 0 {
			query += " AND price <= ?"
			args = append(args, filter.MaxPrice)
		}
		if filter.MinBeds > 0 {
			query += " AND beds >= ?"
			args = append(args, filter.MinBeds)
		}
	}

	query += " ORDER BY listed_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanProperties(rows)
}

// ListByIDs returns the properties for the given IDs, in query order
func (r *PropertyRepository) ListByIDs(ids []uuid.UUID) ([]*models.Property, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id IN (` + placeholders + `)`
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	properties, err := scanProperties(rows)
	if err != nil {
		return nil, err
	}

	// Preserve the caller's ordering
	byID := make(map[uuid.UUID]*models.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}
	ordered := make([]*models.Property, 0, len(properties))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}

	return ordered, nil
}

// Cities returns the distinct cities present in the catalog
func (r *PropertyRepository) Cities() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT city FROM properties ORDER BY city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var city string
		if err := rows.Scan(&city); err != nil {
			return nil, err
		}
		cities = append(cities, city)
	}

	return cities, rows.Err()
}

// Count returns the number of properties in the catalog
func (r *PropertyRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM properties`).Scan(&count)
	return count, err
}

func scanProperties(rows *sql.Rows) ([]*models.Property, error) {
	var properties []*models.Property
	for rows.Next() {
		property := &models.Property{}
		err := rows.Scan(
			&property.ID, &property.Address, &property.City, &property.State, &property.Zip,
			&property.Price, &property.Beds, &property.Baths, &property.Sqft, &property.YearBuilt,
			&property.Status, &property.ListedAt, &property.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		properties = append(properties, property)
	}

	return properties, rows.Err()
}
