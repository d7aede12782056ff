package handlers

import (
	"context"

	"github.com/RMahshie/synphot/internal/processing"
	"github.com/RMahshie/synphot/pkg/models"
	"github.com/rs/zerolog/log"
)

// FilterLookup reads validated filters from the local store
type FilterLookup interface {
	GetFilter(ctx context.Context, name string) (*models.FilterProfile, error)
	Names(ctx context.Context) ([]string, error)
}

// FilterHandler handles filter HTTP requests
type FilterHandler struct {
	catalog processing.CatalogService
	filters FilterLookup
}

// NewFilterHandler creates a new filter handler
func NewFilterHandler(catalog processing.CatalogService, filters FilterLookup) *FilterHandler {
	return &FilterHandler{catalog: catalog, filters: filters}
}

// InstallFilter copies a filter from the catalog into the local store
func (h *FilterHandler) InstallFilter(ctx context.Context, req *models.InstallFilterRequest) (*models.FilterResponse, error) {
	log.Info().Str("filter", req.Body.Name).Msg("Installing filter")

	profile, err := h.catalog.InstallFilter(ctx, req.Body.Name)
	if err != nil {
		return nil, domainError("Failed to install filter", err)
	}

	return &models.FilterResponse{Body: models.NewFilterSummary(profile)}, nil
}

// ListFilters returns stored filters, or only the named one
func (h *FilterHandler) ListFilters(ctx context.Context, req *models.ListFiltersRequest) (*models.ListFiltersResponse, error) {
	names := []string{req.Name}
	if req.Name == "" {
		var err error
		names, err = h.filters.Names(ctx)
		if err != nil {
			return nil, domainError("Failed to list filters", err)
		}
	}

	resp := &models.ListFiltersResponse{}
	resp.Body.Filters = make([]models.FilterSummary, 0, len(names))
	for _, name := range names {
		profile, err := h.filters.GetFilter(ctx, name)
		if err != nil {
			return nil, domainError("Failed to load filter", err)
		}
		resp.Body.Filters = append(resp.Body.Filters, models.NewFilterSummary(profile))
	}
	return resp, nil
}

// DeleteFilter removes a stored filter
func (h *FilterHandler) DeleteFilter(ctx context.Context, req *models.DeleteFilterRequest) (*struct{}, error) {
	if err := h.catalog.RemoveFilter(ctx, req.Name); err != nil {
		return nil, domainError("Failed to remove filter", err)
	}
	return nil, nil
}

// RefreshCatalog makes the next install re-read the catalog manifest
func (h *FilterHandler) RefreshCatalog(ctx context.Context, _ *struct{}) (*struct{}, error) {
	h.catalog.RefreshCatalog()
	return nil, nil
}
