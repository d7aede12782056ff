package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/RMahshie/synphot/internal/repository"
	"github.com/RMahshie/synphot/pkg/models"
	"github.com/google/uuid"
)

// PostgresPhotometryRepository implements PhotometryRepository for PostgreSQL
type PostgresPhotometryRepository struct {
	db *sql.DB
}

// NewPostgresPhotometryRepository creates a new PostgreSQL photometry repository
func NewPostgresPhotometryRepository(db *sql.DB) repository.PhotometryRepository {
	return &PostgresPhotometryRepository{db: db}
}

// StoreResult stores a computed photometry result
func (r *PostgresPhotometryRepository) StoreResult(ctx context.Context, result *models.PhotometryResult) error {
	query := `
		INSERT INTO photometry_results (id, spectrum_id, filter_name, reference_tag, flux, flux_error,
		                                reference_flux, magnitude, magnitude_error, trials, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		result.ID,
		result.SpectrumID,
		result.FilterName,
		result.ReferenceTag,
		result.Flux,
		result.FluxError,
		result.ReferenceFlux,
		result.Magnitude,
		result.MagnitudeError,
		result.Trials,
		result.CreatedAt)

	return err
}

const resultColumns = `id, spectrum_id, filter_name, reference_tag, flux, flux_error,
		reference_flux, magnitude, magnitude_error, trials, created_at`

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanResult(row scanner) (*models.PhotometryResult, error) {
	var result models.PhotometryResult
	err := row.Scan(
		&result.ID,
		&result.SpectrumID,
		&result.FilterName,
		&result.ReferenceTag,
		&result.Flux,
		&result.FluxError,
		&result.ReferenceFlux,
		&result.Magnitude,
		&result.MagnitudeError,
		&result.Trials,
		&result.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetResult retrieves a photometry result by ID
func (r *PostgresPhotometryRepository) GetResult(ctx context.Context, id uuid.UUID) (*models.PhotometryResult, error) {
	query := `SELECT ` + resultColumns + ` FROM photometry_results WHERE id = $1`

	result, err := scanResult(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Resource: "photometry result", Key: id.String()}
	}
	return result, err
}

// ListBySpectrum retrieves all results for a spectrum, newest first
func (r *PostgresPhotometryRepository) ListBySpectrum(ctx context.Context, spectrumID uuid.UUID) ([]*models.PhotometryResult, error) {
	query := `SELECT ` + resultColumns + `
		FROM photometry_results
		WHERE spectrum_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, spectrumID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.PhotometryResult
	for rows.Next() {
		result, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, rows.Err()
}
