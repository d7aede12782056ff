package processing

import (
	"bytes"
	"context"
	"fmt"

	"github.com/RMahshie/synphot/internal/repository"
	"github.com/RMahshie/synphot/internal/storage"
	"github.com/RMahshie/synphot/internal/tabular"
	"github.com/RMahshie/synphot/pkg/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// IngestService turns an uploaded table into stored spectrum points
type IngestService interface {
	IngestSpectrum(ctx context.Context, spectrumID uuid.UUID) error
}

type ingestService struct {
	s3         storage.S3Service
	repository repository.SpectrumRepository
}

func NewIngestService(s3Service storage.S3Service, repo repository.SpectrumRepository) IngestService {
	return &ingestService{
		s3:         s3Service,
		repository: repo,
	}
}

// IngestSpectrum downloads, parses and stores the uploaded file of a spectrum.
// Spectra without an upload are rejected before their state is touched.
// Problems with the file itself are recorded on the spectrum and do not
// return an error; store failures do.
func (s *ingestService) IngestSpectrum(ctx context.Context, spectrumID uuid.UUID) error {
	// Step 1: Get spectrum details
	spectrum, err := s.repository.GetByID(ctx, spectrumID)
	if err != nil {
		return err
	}
	if spectrum.FileKey == nil || *spectrum.FileKey == "" {
		return &models.InvalidSpectrumError{Reason: fmt.Sprintf("spectrum %s has no uploaded file", spectrum.Tag)}
	}

	// Step 2: Update to processing status
	if err := s.repository.UpdateStatus(ctx, spectrumID, models.StatusProcessing, 10); err != nil {
		return err
	}

	// Step 3: Download from S3
	if err := s.repository.UpdateStatus(ctx, spectrumID, models.StatusProcessing, 30); err != nil {
		return err
	}
	data, err := s.s3.DownloadFile(ctx, *spectrum.FileKey)
	if err != nil {
		log.Error().Err(err).Str("spectrumID", spectrumID.String()).Str("key", *spectrum.FileKey).Msg("Failed to download spectrum file")
		return s.fail(ctx, spectrumID, "Failed to download spectrum file")
	}

	// Step 4: Parse the table
	if err := s.repository.UpdateStatus(ctx, spectrumID, models.StatusProcessing, 60); err != nil {
		return err
	}
	parsed, err := tabular.ReadSpectrum(bytes.NewReader(data), spectrum.Units)
	if err != nil {
		return s.fail(ctx, spectrumID, fmt.Sprintf("Failed to parse spectrum: %v", err))
	}

	// Step 5: Store points
	if err := s.repository.UpdateStatus(ctx, spectrumID, models.StatusProcessing, 90); err != nil {
		return err
	}
	if err := s.repository.StoreData(ctx, spectrumID, parsed); err != nil {
		return err
	}

	// Step 6: Mark complete
	if err := s.repository.UpdateStatus(ctx, spectrumID, models.StatusCompleted, 100); err != nil {
		return err
	}

	log.Info().Str("spectrumID", spectrumID.String()).Str("tag", spectrum.Tag).Int("points", parsed.Len()).Msg("Spectrum ingested")
	return nil
}

func (s *ingestService) fail(ctx context.Context, spectrumID uuid.UUID, msg string) error {
	if err := s.repository.UpdateError(ctx, spectrumID, msg); err != nil {
		return fmt.Errorf("failed to record ingest error: %w", err)
	}
	log.Warn().Str("spectrumID", spectrumID.String()).Str("reason", msg).Msg("Spectrum ingest failed")
	return nil // status is updated to failed
}
