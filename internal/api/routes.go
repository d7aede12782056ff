package api

import (
	"net/http"

	"github.com/RMahshie/synphot/internal/api/handlers"
	"github.com/RMahshie/synphot/internal/processing"
	"github.com/RMahshie/synphot/internal/repository"
	"github.com/RMahshie/synphot/internal/storage"
	"github.com/danielgtaylor/huma/v2"
)

// Services bundles what the handlers need
type Services struct {
	Spectra    repository.SpectrumRepository
	S3         storage.S3Service
	Filters    handlers.FilterLookup
	Ingest     processing.IngestService
	Catalog    processing.CatalogService
	Photometry processing.PhotometryService
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(api huma.API, svc Services) {
	// Initialize handlers
	spectrumHandler := handlers.NewSpectrumHandler(svc.Spectra, svc.S3, svc.Ingest, svc.Catalog)
	filterHandler := handlers.NewFilterHandler(svc.Catalog, svc.Filters)
	photometryHandler := handlers.NewPhotometryHandler(svc.Photometry)

	// Register spectrum routes
	huma.Register(api, huma.Operation{
		OperationID: "createSpectrum",
		Method:      http.MethodPost,
		Path:        "/api/spectra",
		Summary:     "Create a spectrum",
		Description: "Creates a pending spectrum record and returns an upload URL for its table",
		Tags:        []string{"Spectra"},
	}, spectrumHandler.CreateSpectrum)

	huma.Register(api, huma.Operation{
		OperationID: "ingestSpectrum",
		Method:      http.MethodPost,
		Path:        "/api/spectra/{id}/ingest",
		Summary:     "Ingest an uploaded spectrum",
		Description: "Starts parsing the uploaded table into stored points",
		Tags:        []string{"Spectra"},
	}, spectrumHandler.StartIngest)

	huma.Register(api, huma.Operation{
		OperationID: "getSpectrumStatus",
		Method:      http.MethodGet,
		Path:        "/api/spectra/{id}/status",
		Summary:     "Get spectrum status",
		Description: "Returns the ingest status and progress of a spectrum",
		Tags:        []string{"Spectra"},
	}, spectrumHandler.GetSpectrumStatus)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteSpectrum",
		Method:        http.MethodDelete,
		Path:          "/api/spectra/{id}",
		Summary:       "Delete a spectrum",
		Description:   "Removes a spectrum together with its uploaded table and photometry results",
		Tags:          []string{"Spectra"},
		DefaultStatus: http.StatusNoContent,
	}, spectrumHandler.DeleteSpectrum)

	huma.Register(api, huma.Operation{
		OperationID: "listSpectrumPhotometry",
		Method:      http.MethodGet,
		Path:        "/api/spectra/{id}/photometry",
		Summary:     "List photometry of a spectrum",
		Tags:        []string{"Photometry"},
	}, photometryHandler.ListSpectrumPhotometry)

	// Register filter routes
	huma.Register(api, huma.Operation{
		OperationID: "installFilter",
		Method:      http.MethodPost,
		Path:        "/api/filters/install",
		Summary:     "Install a catalog filter",
		Description: "Fetches a filter transmission curve from the catalog and stores it",
		Tags:        []string{"Filters"},
	}, filterHandler.InstallFilter)

	huma.Register(api, huma.Operation{
		OperationID: "listFilters",
		Method:      http.MethodGet,
		Path:        "/api/filters",
		Summary:     "List filters",
		Description: "Lists stored filters, or only the one given by name",
		Tags:        []string{"Filters"},
	}, filterHandler.ListFilters)

	huma.Register(api, huma.Operation{
		OperationID:   "deleteFilter",
		Method:        http.MethodDelete,
		Path:          "/api/filters",
		Summary:       "Delete a filter",
		Description:   "Removes a stored filter by name",
		Tags:          []string{"Filters"},
		DefaultStatus: http.StatusNoContent,
	}, filterHandler.DeleteFilter)

	huma.Register(api, huma.Operation{
		OperationID:   "refreshCatalog",
		Method:        http.MethodPost,
		Path:          "/api/catalog/refresh",
		Summary:       "Reload the catalog manifest",
		Description:   "Drops the cached manifest so the next install reads it again",
		Tags:          []string{"Filters"},
		DefaultStatus: http.StatusNoContent,
	}, filterHandler.RefreshCatalog)

	// Register photometry routes
	huma.Register(api, huma.Operation{
		OperationID: "computePhotometry",
		Method:      http.MethodPost,
		Path:        "/api/photometry",
		Summary:     "Compute synthetic photometry",
		Description: "Computes the flux and magnitude of a stored spectrum in a filter",
		Tags:        []string{"Photometry"},
	}, photometryHandler.ComputePhotometry)

	huma.Register(api, huma.Operation{
		OperationID: "getPhotometry",
		Method:      http.MethodGet,
		Path:        "/api/photometry/{id}",
		Summary:     "Get a photometry result",
		Tags:        []string{"Photometry"},
	}, photometryHandler.GetPhotometry)

	huma.Register(api, huma.Operation{
		OperationID: "absoluteMagnitude",
		Method:      http.MethodPost,
		Path:        "/api/photometry/absolute-magnitude",
		Summary:     "Convert to absolute magnitude",
		Description: "Converts an apparent magnitude to an absolute magnitude using a parallax",
		Tags:        []string{"Photometry"},
	}, photometryHandler.AbsoluteMagnitude)
}
