package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/RMahshie/synphot/internal/photometry"
	"github.com/RMahshie/synphot/internal/repository"
	"github.com/RMahshie/synphot/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DefaultReferenceTag is the stored tag of the Vega calibration spectrum
const DefaultReferenceTag = "calibration/vega"

// PhotometryService computes and persists synthetic photometry
type PhotometryService interface {
	Compute(ctx context.Context, req *models.PhotometryRequest) (*models.PhotometryResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PhotometryResult, error)
	Flux(ctx context.Context, spectrumRef, filterName string) (float64, float64, error)
	FluxFromMagnitude(ctx context.Context, mag, magErr float64, filterName, referenceTag string) (float64, float64, error)
	ListResults(ctx context.Context, spectrumRef string) ([]*models.PhotometryResult, error)
}

type photometryService struct {
	engine           *photometry.Engine
	registry         FilterSource
	spectra          repository.SpectrumRepository
	results          repository.PhotometryRepository
	defaultReference string
}

func NewPhotometryService(engine *photometry.Engine, registry FilterSource, spectra repository.SpectrumRepository, results repository.PhotometryRepository, defaultReference string) PhotometryService {
	if defaultReference == "" {
		defaultReference = DefaultReferenceTag
	}
	return &photometryService{
		engine:           engine,
		registry:         registry,
		spectra:          spectra,
		results:          results,
		defaultReference: defaultReference,
	}
}

// resolveSpectrum looks a spectrum up by ID when ref parses as one, else by tag
func resolveSpectrum(ctx context.Context, spectra repository.SpectrumRepository, ref string) (*models.Spectrum, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return spectra.GetByID(ctx, id)
	}
	return spectra.GetByTag(ctx, ref)
}

// loadSpectrum resolves a spectrum and requires ingested points
func (s *photometryService) loadSpectrum(ctx context.Context, ref string) (*models.Spectrum, error) {
	spectrum, err := resolveSpectrum(ctx, s.spectra, ref)
	if err != nil {
		return nil, err
	}

	if spectrum.Status != models.StatusCompleted || spectrum.Len() == 0 {
		return nil, &models.InvalidSpectrumError{
			Reason: fmt.Sprintf("spectrum %s has no ingested data (status %s)", ref, spectrum.Status),
		}
	}
	return spectrum, nil
}

// Flux computes the filter-weighted flux without persisting anything
func (s *photometryService) Flux(ctx context.Context, spectrumRef, filterName string) (float64, float64, error) {
	spectrum, err := s.loadSpectrum(ctx, spectrumRef)
	if err != nil {
		return 0, 0, err
	}
	filter, err := s.registry.GetFilter(ctx, filterName)
	if err != nil {
		return 0, 0, err
	}
	return s.engine.FluxFromSpectrum(ctx, spectrum, filter)
}

// Compute resolves the spectrum, filter and reference, then stores the result
func (s *photometryService) Compute(ctx context.Context, req *models.PhotometryRequest) (*models.PhotometryResult, error) {
	start := time.Now()
	referenceTag := req.ReferenceTag
	if referenceTag == "" {
		referenceTag = s.defaultReference
	}

	spectrum, err := s.loadSpectrum(ctx, req.SpectrumID)
	if err != nil {
		return nil, err
	}
	filter, err := s.registry.GetFilter(ctx, req.FilterName)
	if err != nil {
		return nil, err
	}
	reference, err := s.loadSpectrum(ctx, referenceTag)
	if err != nil {
		return nil, fmt.Errorf("reference spectrum: %w", err)
	}

	flux, fluxErr, err := s.engine.FluxFromSpectrum(ctx, spectrum, filter)
	if err != nil {
		return nil, err
	}
	refFlux, err := s.engine.ReferenceFlux(filter, reference)
	if err != nil {
		return nil, fmt.Errorf("reference spectrum: %w", err)
	}
	mag, magErr, err := s.engine.MagnitudeFromReferenceFlux(flux, fluxErr, refFlux)
	if err != nil {
		return nil, err
	}

	trials := 0
	if spectrum.HasUncertainty() {
		trials = s.engine.Options().Trials
	}

	result := &models.PhotometryResult{
		ID:             uuid.New().String(),
		SpectrumID:     spectrum.ID,
		FilterName:     filter.Name,
		ReferenceTag:   referenceTag,
		Flux:           flux,
		FluxError:      fluxErr,
		ReferenceFlux:  refFlux,
		Magnitude:      mag,
		MagnitudeError: magErr,
		Trials:         trials,
		CreatedAt:      time.Now(),
	}
	if err := s.results.StoreResult(ctx, result); err != nil {
		return nil, fmt.Errorf("failed to store photometry result: %w", err)
	}

	log.Info().
		Str("spectrum", spectrum.Tag).
		Str("filter", filter.Name).
		Float64("magnitude", mag).
		Float64("magnitudeError", magErr).
		Dur("elapsed", time.Since(start)).
		Msg("Photometry computed")
	return result, nil
}

// Get returns a stored result
func (s *photometryService) Get(ctx context.Context, id uuid.UUID) (*models.PhotometryResult, error) {
	return s.results.GetResult(ctx, id)
}

// FluxFromMagnitude converts a magnitude in the filter back to a flux density
func (s *photometryService) FluxFromMagnitude(ctx context.Context, mag, magErr float64, filterName, referenceTag string) (float64, float64, error) {
	if referenceTag == "" {
		referenceTag = s.defaultReference
	}
	filter, err := s.registry.GetFilter(ctx, filterName)
	if err != nil {
		return 0, 0, err
	}
	reference, err := s.loadSpectrum(ctx, referenceTag)
	if err != nil {
		return 0, 0, fmt.Errorf("reference spectrum: %w", err)
	}
	return s.engine.MagnitudeToFlux(ctx, mag, magErr, filter, reference)
}

// ListResults returns the stored photometry of a spectrum
func (s *photometryService) ListResults(ctx context.Context, spectrumRef string) ([]*models.PhotometryResult, error) {
	spectrum, err := resolveSpectrum(ctx, s.spectra, spectrumRef)
	if err != nil {
		return nil, err
	}
	return s.results.ListBySpectrum(ctx, uuid.MustParse(spectrum.ID))
}
