package processing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/RMahshie/synphot/internal/repository"
	"github.com/RMahshie/synphot/internal/storage"
	"github.com/RMahshie/synphot/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Fetcher is the read-only catalog
type Fetcher interface {
	FetchFilter(ctx context.Context, name string) (*models.FilterProfile, error)
	FetchSpectrum(ctx context.Context, tag string) (*models.Spectrum, error)
	Refresh()
}

// FilterSource resolves filter names to validated profiles
type FilterSource interface {
	GetFilter(ctx context.Context, name string) (*models.FilterProfile, error)
	Invalidate(name string)
}

// CatalogService copies catalog entries and local tables into the store and
// manages what is stored
type CatalogService interface {
	InstallFilter(ctx context.Context, name string) (*models.FilterProfile, error)
	InstallSpectrum(ctx context.Context, tag string) (*models.Spectrum, error)
	AddFilter(ctx context.Context, profile *models.FilterProfile) error
	AddSpectrum(ctx context.Context, spectrum *models.Spectrum) (*models.Spectrum, error)
	ListFilters(ctx context.Context) ([]string, error)
	RemoveFilter(ctx context.Context, name string) error
	RemoveSpectrum(ctx context.Context, ref string) error
	RefreshCatalog()
}

type catalogService struct {
	fetcher  Fetcher
	filters  repository.FilterRepository
	spectra  repository.SpectrumRepository
	registry FilterSource
	s3       storage.S3Service
}

func NewCatalogService(fetcher Fetcher, filters repository.FilterRepository, spectra repository.SpectrumRepository, registry FilterSource, s3Service storage.S3Service) CatalogService {
	return &catalogService{
		fetcher:  fetcher,
		filters:  filters,
		spectra:  spectra,
		registry: registry,
		s3:       s3Service,
	}
}

// InstallFilter fetches a filter from the catalog and stores it
func (s *catalogService) InstallFilter(ctx context.Context, name string) (*models.FilterProfile, error) {
	profile, err := s.fetcher.FetchFilter(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.AddFilter(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// AddFilter validates and stores a filter profile
func (s *catalogService) AddFilter(ctx context.Context, profile *models.FilterProfile) error {
	if err := profile.Validate(); err != nil {
		return err
	}
	if err := s.filters.Upsert(ctx, profile); err != nil {
		return fmt.Errorf("failed to store filter %s: %w", profile.Name, err)
	}
	s.registry.Invalidate(profile.Name)

	log.Info().Str("filter", profile.Name).Str("detector", profile.DetectorType).Msg("Filter stored")
	return nil
}

// InstallSpectrum fetches a spectrum from the catalog and stores it under its tag
func (s *catalogService) InstallSpectrum(ctx context.Context, tag string) (*models.Spectrum, error) {
	spectrum, err := s.fetcher.FetchSpectrum(ctx, tag)
	if err != nil {
		return nil, err
	}
	spectrum.Tag = tag
	return s.AddSpectrum(ctx, spectrum)
}

// AddSpectrum stores spectrum points under spectrum.Tag, replacing the points
// of an existing spectrum with the same tag.
func (s *catalogService) AddSpectrum(ctx context.Context, spectrum *models.Spectrum) (*models.Spectrum, error) {
	if spectrum.Tag == "" {
		return nil, &models.InvalidSpectrumError{Reason: "spectrum tag is required"}
	}
	if err := spectrum.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.spectra.GetByTag(ctx, spectrum.Tag)
	switch {
	case errors.Is(err, models.ErrNotFound):
		now := time.Now()
		spectrum.ID = uuid.New().String()
		spectrum.Status = models.StatusProcessing
		spectrum.CreatedAt = now
		spectrum.UpdatedAt = now
		if err := s.spectra.Create(ctx, spectrum); err != nil {
			return nil, fmt.Errorf("failed to create spectrum %s: %w", spectrum.Tag, err)
		}
	case err != nil:
		return nil, err
	default:
		spectrum.ID = existing.ID
		spectrum.CreatedAt = existing.CreatedAt
		if err := s.spectra.StoreData(ctx, uuid.MustParse(existing.ID), spectrum); err != nil {
			return nil, err
		}
	}

	id := uuid.MustParse(spectrum.ID)
	if err := s.spectra.UpdateStatus(ctx, id, models.StatusCompleted, 100); err != nil {
		return nil, err
	}
	spectrum.Status = models.StatusCompleted
	spectrum.Progress = 100

	log.Info().Str("spectrum", spectrum.Tag).Str("id", spectrum.ID).Int("points", spectrum.Len()).Msg("Spectrum stored")
	return spectrum, nil
}

// ListFilters returns the names of all stored filters
func (s *catalogService) ListFilters(ctx context.Context) ([]string, error) {
	return s.filters.List(ctx)
}

// RemoveFilter deletes a stored filter and drops it from the registry
func (s *catalogService) RemoveFilter(ctx context.Context, name string) error {
	if err := s.filters.Delete(ctx, name); err != nil {
		return err
	}
	s.registry.Invalidate(name)

	log.Info().Str("filter", name).Msg("Filter removed")
	return nil
}

// RemoveSpectrum deletes a spectrum, addressed by ID or tag, together with
// its uploaded table and its photometry results. The upload goes first so a
// failed delete can be retried.
func (s *catalogService) RemoveSpectrum(ctx context.Context, ref string) error {
	spectrum, err := resolveSpectrum(ctx, s.spectra, ref)
	if err != nil {
		return err
	}

	if spectrum.FileKey != nil && *spectrum.FileKey != "" {
		if err := s.s3.DeleteFile(ctx, *spectrum.FileKey); err != nil {
			return fmt.Errorf("failed to delete upload of %s: %w", spectrum.Tag, err)
		}
	}
	if err := s.spectra.Delete(ctx, uuid.MustParse(spectrum.ID)); err != nil {
		return err
	}

	log.Info().Str("spectrum", spectrum.Tag).Str("id", spectrum.ID).Msg("Spectrum removed")
	return nil
}

// RefreshCatalog makes the next fetch re-read the catalog manifest
func (s *catalogService) RefreshCatalog() {
	s.fetcher.Refresh()
	log.Info().Msg("Catalog manifest will be reloaded")
}
