package repository

import (
	"context"

	"github.com/RMahshie/synphot/pkg/models"
	"github.com/google/uuid"
)

// FilterRepository defines the interface for filter profile storage
type FilterRepository interface {
	Upsert(ctx context.Context, profile *models.FilterProfile) error
	GetByName(ctx context.Context, name string) (*models.FilterProfile, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}

// SpectrumRepository defines the interface for spectrum data operations
type SpectrumRepository interface {
	Create(ctx context.Context, spectrum *models.Spectrum) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Spectrum, error)
	GetByTag(ctx context.Context, tag string) (*models.Spectrum, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error
	UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error
	StoreData(ctx context.Context, id uuid.UUID, spectrum *models.Spectrum) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PhotometryRepository defines the interface for computed photometry results
type PhotometryRepository interface {
	StoreResult(ctx context.Context, result *models.PhotometryResult) error
	GetResult(ctx context.Context, id uuid.UUID) (*models.PhotometryResult, error)
	ListBySpectrum(ctx context.Context, spectrumID uuid.UUID) ([]*models.PhotometryResult, error)
}
