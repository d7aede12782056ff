package handlers

import (
	"context"

	"github.com/RMahshie/synphot/internal/photometry"
	"github.com/RMahshie/synphot/internal/processing"
	"github.com/RMahshie/synphot/pkg/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
)

// PhotometryHandler handles photometry HTTP requests
type PhotometryHandler struct {
	svc processing.PhotometryService
}

// NewPhotometryHandler creates a new photometry handler
func NewPhotometryHandler(svc processing.PhotometryService) *PhotometryHandler {
	return &PhotometryHandler{svc: svc}
}

// ComputePhotometry computes and stores the flux and magnitude of a spectrum
func (h *PhotometryHandler) ComputePhotometry(ctx context.Context, req *models.ComputePhotometryRequest) (*models.PhotometryResponse, error) {
	result, err := h.svc.Compute(ctx, &req.Body)
	if err != nil {
		return nil, domainError("Failed to compute photometry", err)
	}
	return &models.PhotometryResponse{Body: result}, nil
}

// GetPhotometry returns a stored result
func (h *PhotometryHandler) GetPhotometry(ctx context.Context, req *models.GetPhotometryRequest) (*models.PhotometryResponse, error) {
	id, err := uuid.Parse(req.ID)
	if err != nil {
		return nil, huma.Error400BadRequest("Invalid photometry result ID", err)
	}

	result, err := h.svc.Get(ctx, id)
	if err != nil {
		return nil, domainError("Failed to load photometry result", err)
	}
	return &models.PhotometryResponse{Body: result}, nil
}

// ListSpectrumPhotometry returns the stored results of a spectrum
func (h *PhotometryHandler) ListSpectrumPhotometry(ctx context.Context, req *models.SpectrumIDRequest) (*models.SpectrumPhotometryResponse, error) {
	if _, err := uuid.Parse(req.ID); err != nil {
		return nil, huma.Error400BadRequest("Invalid spectrum ID", err)
	}

	results, err := h.svc.ListResults(ctx, req.ID)
	if err != nil {
		return nil, domainError("Failed to list photometry", err)
	}

	resp := &models.SpectrumPhotometryResponse{}
	resp.Body.Results = results
	if resp.Body.Results == nil {
		resp.Body.Results = []*models.PhotometryResult{}
	}
	return resp, nil
}

// AbsoluteMagnitude converts an apparent magnitude with a parallax distance
func (h *PhotometryHandler) AbsoluteMagnitude(ctx context.Context, req *models.AbsoluteMagnitudeRequest) (*models.AbsoluteMagnitudeResponse, error) {
	distance, distanceErr, err := photometry.ParallaxToDistance(req.Body.Parallax, req.Body.ParallaxError)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error(), err)
	}

	absMag, absMagErr, err := photometry.AbsoluteMagnitude(req.Body.Magnitude, req.Body.MagnitudeError, distance, distanceErr)
	if err != nil {
		return nil, huma.Error422UnprocessableEntity(err.Error(), err)
	}

	resp := &models.AbsoluteMagnitudeResponse{}
	resp.Body.Distance = distance
	resp.Body.DistanceError = distanceErr
	resp.Body.AbsoluteMagnitude = absMag
	resp.Body.AbsoluteMagnitudeError = absMagErr
	return resp, nil
}
