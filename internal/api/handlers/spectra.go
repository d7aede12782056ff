package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RMahshie/synphot/internal/processing"
	"github.com/RMahshie/synphot/internal/repository"
	"github.com/RMahshie/synphot/internal/storage"
	"github.com/RMahshie/synphot/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// SpectrumHandler handles spectrum upload and ingest HTTP requests
type SpectrumHandler struct {
	repo      repository.SpectrumRepository
	s3Service storage.S3Service
	ingestSvc processing.IngestService
	catalog   processing.CatalogService
}

// NewSpectrumHandler creates a new spectrum handler
func NewSpectrumHandler(repo repository.SpectrumRepository, s3Service storage.S3Service, ingestSvc processing.IngestService, catalog processing.CatalogService) *SpectrumHandler {
	return &SpectrumHandler{
		repo:      repo,
		s3Service: s3Service,
		ingestSvc: ingestSvc,
		catalog:   catalog,
	}
}

// CreateSpectrum creates a pending spectrum and returns an upload URL
func (h *SpectrumHandler) CreateSpectrum(ctx context.Context, req *models.CreateSpectrumRequest) (*models.CreateSpectrumResponse, error) {
	log.Info().Str("tag", req.Body.Tag).Int64("fileSize", req.Body.FileSize).Msg("Creating new spectrum")

	if _, err := h.repo.GetByTag(ctx, req.Body.Tag); err == nil {
		return nil, huma.Error409Conflict(fmt.Sprintf("Spectrum %q already exists", req.Body.Tag))
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, domainError("Failed to look up spectrum", err)
	}

	spectrumID := uuid.New()
	fileKey := fmt.Sprintf("uploads/%s.dat", spectrumID)

	uploadURL, err := h.s3Service.GenerateUploadURL(ctx, fileKey, req.Body.ContentType)
	if err != nil {
		if strings.Contains(err.Error(), "invalid content type") {
			return nil, huma.Error400BadRequest("Table format not supported.", err)
		}
		return nil, huma.Error400BadRequest("Failed to prepare upload. Please try again.", err)
	}

	units := models.DefaultUnits()
	if req.Body.Units != nil {
		units = *req.Body.Units
	}

	spectrum := &models.Spectrum{
		ID:        spectrumID.String(),
		Tag:       req.Body.Tag,
		Status:    models.StatusPending,
		Progress:  0,
		FileKey:   &fileKey,
		Units:     units,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := h.repo.Create(ctx, spectrum); err != nil {
		return nil, huma.Error500InternalServerError("Failed to create spectrum", err)
	}

	log.Info().Str("spectrumID", spectrum.ID).Str("fileKey", fileKey).Msg("Spectrum created, returning upload URL")
	return &models.CreateSpectrumResponse{
		Body: models.CreateSpectrumResponseBody{
			ID:        spectrum.ID,
			UploadURL: uploadURL,
			ExpiresIn: int(storage.UploadURLExpiry.Seconds()),
		},
	}, nil
}

// StartIngest starts parsing an uploaded table in the background
func (h *SpectrumHandler) StartIngest(ctx context.Context, req *models.SpectrumIDRequest) (*models.IngestSpectrumResponse, error) {
	spectrumID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid spectrum ID", err)
	}

	spectrum, err := h.repo.GetByID(ctx, spectrumID)
	if err != nil {
		return nil, domainError("Failed to load spectrum", err)
	}
	switch {
	case spectrum.FileKey == nil || *spectrum.FileKey == "":
		return nil, huma.Error422UnprocessableEntity("Spectrum has no uploaded table to ingest")
	case spectrum.Status == models.StatusProcessing:
		return nil, huma.Error409Conflict("Spectrum is already being ingested")
	case spectrum.Status == models.StatusCompleted:
		return nil, huma.Error409Conflict("Spectrum is already ingested")
	}

	log.Info().Str("spectrumID", spectrumID.String()).Msg("Starting background ingest")
	go func() {
		if err := h.ingestSvc.IngestSpectrum(context.Background(), spectrumID); err != nil {
			h.repo.UpdateError(context.Background(), spectrumID, fmt.Sprintf("Ingest failed: %v", err))
		}
	}()

	resp := &models.IngestSpectrumResponse{}
	resp.Body.Message = "Ingest started successfully"
	return resp, nil
}

// GetSpectrumStatus returns the ingest status of a spectrum
func (h *SpectrumHandler) GetSpectrumStatus(ctx context.Context, req *models.SpectrumIDRequest) (*models.SpectrumStatusResponse, error) {
	spectrumID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid spectrum ID", err)
	}

	spectrum, err := h.repo.GetByID(ctx, spectrumID)
	if err != nil {
		return nil, domainError("Failed to load spectrum", err)
	}

	return &models.SpectrumStatusResponse{
		Body: models.SpectrumStatusBody{
			ID:       spectrum.ID,
			Tag:      spectrum.Tag,
			Status:   spectrum.Status,
			Progress: spectrum.Progress,
			Message:  statusMessage(spectrum.Status, spectrum.Progress),
			Points:   spectrum.Len(),
			Error:    spectrum.ErrorMsg,
		},
	}, nil
}

// DeleteSpectrum removes a spectrum with its uploaded table and results
func (h *SpectrumHandler) DeleteSpectrum(ctx context.Context, req *models.SpectrumIDRequest) (*struct{}, error) {
	spectrumID, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid spectrum ID", err)
	}

	spectrum, err := h.repo.GetByID(ctx, spectrumID)
	if err != nil {
		return nil, domainError("Failed to load spectrum", err)
	}
	if spectrum.Status == models.StatusProcessing {
		return nil, huma.Error409Conflict("Spectrum is being ingested")
	}

	if err := h.catalog.RemoveSpectrum(ctx, spectrumID.String()); err != nil {
		return nil, domainError("Failed to remove spectrum", err)
	}
	return nil, nil
}

func statusMessage(status string, progress int) string {
	switch status {
	case models.StatusPending:
		return "Waiting for upload..."
	case models.StatusProcessing:
		if progress < 30 {
			return "Starting ingest..."
		} else if progress < 60 {
			return "Downloading table..."
		} else if progress < 90 {
			return "Parsing table..."
		}
		return "Storing points..."
	case models.StatusCompleted:
		return "Spectrum ready"
	case models.StatusFailed:
		return "Ingest failed"
	default:
		return "Unknown status"
	}
}
