package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/RMahshie/synphot/pkg/models"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPhotometryService implements processing.PhotometryService for testing
type MockPhotometryService struct {
	mock.Mock
}

func (m *MockPhotometryService) Compute(ctx context.Context, req *models.PhotometryRequest) (*models.PhotometryResult, error) {
	args := m.Called(ctx, req)
	result, _ := args.Get(0).(*models.PhotometryResult)
	return result, args.Error(1)
}

func (m *MockPhotometryService) Get(ctx context.Context, id uuid.UUID) (*models.PhotometryResult, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*models.PhotometryResult)
	return result, args.Error(1)
}

func (m *MockPhotometryService) Flux(ctx context.Context, spectrumRef, filterName string) (float64, float64, error) {
	args := m.Called(ctx, spectrumRef, filterName)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func (m *MockPhotometryService) FluxFromMagnitude(ctx context.Context, mag, magErr float64, filterName, referenceTag string) (float64, float64, error) {
	args := m.Called(ctx, mag, magErr, filterName, referenceTag)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func (m *MockPhotometryService) ListResults(ctx context.Context, spectrumRef string) ([]*models.PhotometryResult, error) {
	args := m.Called(ctx, spectrumRef)
	results, _ := args.Get(0).([]*models.PhotometryResult)
	return results, args.Error(1)
}

func TestRoutes_Photometry(t *testing.T) {
	_, api := humatest.New(t)

	svc := &MockPhotometryService{}
	RegisterRoutes(api, Services{Photometry: svc})

	resultID := uuid.New()
	svc.On("Compute", mock.Anything, &models.PhotometryRequest{SpectrumID: "jupiter", FilterName: "MKO/NSFCam.J"}).
		Return(&models.PhotometryResult{ID: resultID.String(), FilterName: "MKO/NSFCam.J", Magnitude: 1.78}, nil)
	svc.On("Compute", mock.Anything, &models.PhotometryRequest{SpectrumID: "jupiter", FilterName: "MKO/NSFCam.K"}).
		Return(nil, &models.DomainMismatchError{Filter: "MKO/NSFCam.K", SpectrumMin: 0.8, SpectrumMax: 1.7, FilterMin: 2.0, FilterMax: 2.4})
	svc.On("Get", mock.Anything, resultID).
		Return(nil, &models.NotFoundError{Resource: "photometry result", Key: resultID.String()})

	resp := api.Post("/api/photometry", map[string]any{"spectrum_id": "jupiter", "filter": "MKO/NSFCam.J"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	var result models.PhotometryResult
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	assert.Equal(t, 1.78, result.Magnitude)

	resp = api.Post("/api/photometry", map[string]any{"spectrum_id": "jupiter", "filter": "MKO/NSFCam.K"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Contains(t, resp.Body.String(), "MKO/NSFCam.K")

	// Missing filter is rejected by request validation
	resp = api.Post("/api/photometry", map[string]any{"spectrum_id": "jupiter"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = api.Get("/api/photometry/" + resultID.String())
	assert.Equal(t, http.StatusNotFound, resp.Code)

	svc.AssertExpectations(t)
}

func TestRoutes_AbsoluteMagnitude(t *testing.T) {
	_, api := humatest.New(t)
	RegisterRoutes(api, Services{})

	resp := api.Post("/api/photometry/absolute-magnitude", map[string]any{
		"magnitude":       11.3,
		"magnitude_error": 0.06,
		"parallax":        51.44,
		"parallax_error":  0.12,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		Distance          float64 `json:"distance"`
		AbsoluteMagnitude float64 `json:"absolute_magnitude"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.InDelta(t, 19.4401, body.Distance, 1e-4)
	assert.InDelta(t, 9.8565, body.AbsoluteMagnitude, 1e-4)

	resp = api.Post("/api/photometry/absolute-magnitude", map[string]any{
		"magnitude":       11.3,
		"magnitude_error": 0.06,
		"parallax":        -1,
		"parallax_error":  0.12,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

// MockCatalogService implements processing.CatalogService for testing
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) InstallFilter(ctx context.Context, name string) (*models.FilterProfile, error) {
	args := m.Called(ctx, name)
	profile, _ := args.Get(0).(*models.FilterProfile)
	return profile, args.Error(1)
}

func (m *MockCatalogService) InstallSpectrum(ctx context.Context, tag string) (*models.Spectrum, error) {
	args := m.Called(ctx, tag)
	spectrum, _ := args.Get(0).(*models.Spectrum)
	return spectrum, args.Error(1)
}

func (m *MockCatalogService) AddFilter(ctx context.Context, profile *models.FilterProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockCatalogService) AddSpectrum(ctx context.Context, spectrum *models.Spectrum) (*models.Spectrum, error) {
	args := m.Called(ctx, spectrum)
	stored, _ := args.Get(0).(*models.Spectrum)
	return stored, args.Error(1)
}

func (m *MockCatalogService) ListFilters(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockCatalogService) RemoveFilter(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockCatalogService) RemoveSpectrum(ctx context.Context, ref string) error {
	return m.Called(ctx, ref).Error(0)
}

func (m *MockCatalogService) RefreshCatalog() {
	m.Called()
}

func TestRoutes_CatalogMaintenance(t *testing.T) {
	_, api := humatest.New(t)

	catalog := &MockCatalogService{}
	RegisterRoutes(api, Services{Catalog: catalog})

	catalog.On("RemoveFilter", mock.Anything, "MKO/NSFCam.J").Return(nil)
	catalog.On("RemoveFilter", mock.Anything, "MKO/NSFCam.Z").Return(&models.NotFoundError{Resource: "filter", Key: "MKO/NSFCam.Z"})
	catalog.On("RefreshCatalog").Return()

	resp := api.Delete("/api/filters?name=MKO/NSFCam.J")
	assert.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	resp = api.Delete("/api/filters?name=MKO/NSFCam.Z")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// The name is required
	resp = api.Delete("/api/filters")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	resp = api.Post("/api/catalog/refresh")
	assert.Equal(t, http.StatusNoContent, resp.Code, resp.Body.String())

	catalog.AssertExpectations(t)
}

func TestRoutes_SpectrumPhotometry(t *testing.T) {
	_, api := humatest.New(t)

	svc := &MockPhotometryService{}
	RegisterRoutes(api, Services{Photometry: svc})

	id := uuid.New()
	svc.On("ListResults", mock.Anything, id.String()).
		Return([]*models.PhotometryResult{{ID: uuid.New().String(), SpectrumID: id.String(), Magnitude: 1.78}}, nil)

	resp := api.Get("/api/spectra/" + id.String() + "/photometry")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body struct {
		Results []models.PhotometryResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, 1.78, body.Results[0].Magnitude)
}
