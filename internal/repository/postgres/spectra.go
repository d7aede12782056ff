package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/RMahshie/synphot/internal/repository"
	"github.com/RMahshie/synphot/pkg/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresSpectrumRepository implements SpectrumRepository for PostgreSQL
type PostgresSpectrumRepository struct {
	db *sql.DB
}

// NewPostgresSpectrumRepository creates a new PostgreSQL spectrum repository
func NewPostgresSpectrumRepository(db *sql.DB) repository.SpectrumRepository {
	return &PostgresSpectrumRepository{db: db}
}

const spectrumColumns = `id, tag, status, progress, file_key, error_message,
		wavelength_unit, flux_unit, wavelength_scale, flux_scale,
		wavelength, flux, uncertainty, created_at, updated_at, completed_at`

// Create inserts a new spectrum record. Point data may be empty until ingest.
func (r *PostgresSpectrumRepository) Create(ctx context.Context, spectrum *models.Spectrum) error {
	if spectrum.ID == "" {
		spectrum.ID = uuid.New().String()
	}
	units := spectrum.Units
	if units.Wavelength == "" {
		units = models.DefaultUnits()
	}

	query := `
		INSERT INTO spectra (id, tag, status, progress, file_key, wavelength_unit, flux_unit,
		                     wavelength_scale, flux_scale, wavelength, flux, uncertainty, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.ExecContext(ctx, query,
		spectrum.ID,
		spectrum.Tag,
		spectrum.Status,
		spectrum.Progress,
		spectrum.FileKey,
		units.Wavelength,
		units.Flux,
		units.WavelengthScale,
		units.FluxScale,
		nullableArray(spectrum.Wavelength),
		nullableArray(spectrum.Flux),
		nullableArray(spectrum.Uncertainty),
		spectrum.CreatedAt,
		spectrum.UpdatedAt)

	return err
}

// GetByID retrieves a spectrum by ID
func (r *PostgresSpectrumRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Spectrum, error) {
	query := `SELECT ` + spectrumColumns + ` FROM spectra WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), id.String())
}

// GetByTag retrieves a spectrum by its unique tag (e.g. "calibration/vega")
func (r *PostgresSpectrumRepository) GetByTag(ctx context.Context, tag string) (*models.Spectrum, error) {
	query := `SELECT ` + spectrumColumns + ` FROM spectra WHERE tag = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, tag), tag)
}

func (r *PostgresSpectrumRepository) scanOne(row *sql.Row, key string) (*models.Spectrum, error) {
	var spectrum models.Spectrum
	var fileKey, errorMsg sql.NullString
	var completedAt sql.NullTime
	var wavelength, flux, uncertainty pq.Float64Array

	err := row.Scan(
		&spectrum.ID,
		&spectrum.Tag,
		&spectrum.Status,
		&spectrum.Progress,
		&fileKey,
		&errorMsg,
		&spectrum.Units.Wavelength,
		&spectrum.Units.Flux,
		&spectrum.Units.WavelengthScale,
		&spectrum.Units.FluxScale,
		&wavelength,
		&flux,
		&uncertainty,
		&spectrum.CreatedAt,
		&spectrum.UpdatedAt,
		&completedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, &models.NotFoundError{Resource: "spectrum", Key: key}
	}
	if err != nil {
		return nil, err
	}

	if fileKey.Valid {
		spectrum.FileKey = &fileKey.String
	}
	if errorMsg.Valid {
		spectrum.ErrorMsg = &errorMsg.String
	}
	if completedAt.Valid {
		spectrum.CompletedAt = &completedAt.Time
	}
	spectrum.Wavelength = wavelength
	spectrum.Flux = flux
	if len(uncertainty) > 0 {
		spectrum.Uncertainty = uncertainty
	}

	return &spectrum, nil
}

// UpdateStatus updates the status and progress of a spectrum ingest.
// Completing an ingest clears the error left by an earlier attempt.
func (r *PostgresSpectrumRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	query := `
		UPDATE spectra
		SET status = $1, progress = $2, updated_at = NOW(),
		    completed_at = CASE WHEN $1 = 'completed' THEN NOW() ELSE completed_at END,
		    error_message = CASE WHEN $1 = 'completed' THEN NULL ELSE error_message END
		WHERE id = $3`

	_, err := r.db.ExecContext(ctx, query, status, progress, id)
	return err
}

// UpdateError marks a spectrum ingest as failed
func (r *PostgresSpectrumRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	query := `
		UPDATE spectra
		SET status = 'failed', error_message = $1, updated_at = NOW()
		WHERE id = $2`

	_, err := r.db.ExecContext(ctx, query, errorMsg, id)
	return err
}

// StoreData writes the tabulated points and units of a spectrum
func (r *PostgresSpectrumRepository) StoreData(ctx context.Context, id uuid.UUID, spectrum *models.Spectrum) error {
	query := `
		UPDATE spectra
		SET wavelength = $1, flux = $2, uncertainty = $3,
		    wavelength_unit = $4, flux_unit = $5, wavelength_scale = $6, flux_scale = $7,
		    updated_at = NOW()
		WHERE id = $8`

	res, err := r.db.ExecContext(ctx, query,
		nullableArray(spectrum.Wavelength),
		nullableArray(spectrum.Flux),
		nullableArray(spectrum.Uncertainty),
		spectrum.Units.Wavelength,
		spectrum.Units.Flux,
		spectrum.Units.WavelengthScale,
		spectrum.Units.FluxScale,
		id)
	if err != nil {
		return fmt.Errorf("failed to store spectrum data: %w", err)
	}

	return expectRow(res, "spectrum", id.String())
}

// Delete removes a spectrum and its photometry results
func (r *PostgresSpectrumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM spectra WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectRow(res, "spectrum", id.String())
}

// nullableArray stores empty slices as NULL
func nullableArray(values []float64) interface{} {
	if len(values) == 0 {
		return nil
	}
	return pq.Float64Array(values)
}

func expectRow(res sql.Result, resource, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &models.NotFoundError{Resource: resource, Key: key}
	}
	return nil
}
