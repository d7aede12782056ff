package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/RMahshie/synphot/internal/repository"
	"github.com/RMahshie/synphot/pkg/models"
	"github.com/lib/pq"
)

// PostgresFilterRepository implements FilterRepository for PostgreSQL
type PostgresFilterRepository struct {
	db *sql.DB
}

// NewPostgresFilterRepository creates a new PostgreSQL filter repository
func NewPostgresFilterRepository(db *sql.DB) repository.FilterRepository {
	return &PostgresFilterRepository{db: db}
}

// Upsert inserts a filter profile or replaces the stored curve
func (r *PostgresFilterRepository) Upsert(ctx context.Context, profile *models.FilterProfile) error {
	query := `
		INSERT INTO filters (name, detector_type, wavelength, transmission, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (name) DO UPDATE
		SET detector_type = EXCLUDED.detector_type,
		    wavelength = EXCLUDED.wavelength,
		    transmission = EXCLUDED.transmission,
		    updated_at = NOW()`

	_, err := r.db.ExecContext(ctx, query,
		profile.Name,
		profile.DetectorType,
		pq.Float64Array(profile.Wavelength),
		pq.Float64Array(profile.Transmission))

	return err
}

// GetByName retrieves a filter profile as stored, without validation
func (r *PostgresFilterRepository) GetByName(ctx context.Context, name string) (*models.FilterProfile, error) {
	query := `
		SELECT name, detector_type, wavelength, transmission, created_at, updated_at
		FROM filters
		WHERE name = $1`

	var profile models.FilterProfile
	var wavelength, transmission pq.Float64Array

	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&profile.Name,
		&profile.DetectorType,
		&wavelength,
		&transmission,
		&profile.CreatedAt,
		&profile.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Resource: "filter", Key: name}
	}
	if err != nil {
		return nil, err
	}

	profile.Wavelength = wavelength
	profile.Transmission = transmission
	return &profile, nil
}

// List returns the names of all stored filters
func (r *PostgresFilterRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM filters ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Delete removes a filter profile
func (r *PostgresFilterRepository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM filters WHERE name = $1`, name)
	if err != nil {
		return err
	}
	return expectRow(res, "filter", name)
}
