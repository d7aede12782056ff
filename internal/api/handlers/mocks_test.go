package handlers

import (
	"context"

	"github.com/RMahshie/synphot/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSpectrumRepository implements repository.SpectrumRepository for testing
type MockSpectrumRepository struct {
	mock.Mock
}

func (m *MockSpectrumRepository) Create(ctx context.Context, spectrum *models.Spectrum) error {
	args := m.Called(ctx, spectrum)
	return args.Error(0)
}

func (m *MockSpectrumRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Spectrum, error) {
	args := m.Called(ctx, id)
	spectrum, _ := args.Get(0).(*models.Spectrum)
	return spectrum, args.Error(1)
}

func (m *MockSpectrumRepository) GetByTag(ctx context.Context, tag string) (*models.Spectrum, error) {
	args := m.Called(ctx, tag)
	spectrum, _ := args.Get(0).(*models.Spectrum)
	return spectrum, args.Error(1)
}

func (m *MockSpectrumRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string, progress int) error {
	args := m.Called(ctx, id, status, progress)
	return args.Error(0)
}

func (m *MockSpectrumRepository) UpdateError(ctx context.Context, id uuid.UUID, errorMsg string) error {
	args := m.Called(ctx, id, errorMsg)
	return args.Error(0)
}

func (m *MockSpectrumRepository) StoreData(ctx context.Context, id uuid.UUID, spectrum *models.Spectrum) error {
	args := m.Called(ctx, id, spectrum)
	return args.Error(0)
}

func (m *MockSpectrumRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockS3Service implements storage.S3Service for testing
type MockS3Service struct {
	mock.Mock
}

func (m *MockS3Service) GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockS3Service) DownloadFile(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockIngestService implements processing.IngestService for testing
type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) IngestSpectrum(ctx context.Context, spectrumID uuid.UUID) error {
	args := m.Called(ctx, spectrumID)
	return args.Error(0)
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
	args := m.Called(ctx, profile)
	return args.Error(0)
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
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockCatalogService) RemoveSpectrum(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockCatalogService) RefreshCatalog() {
	m.Called()
}

// MockFilterLookup implements FilterLookup for testing
type MockFilterLookup struct {
	mock.Mock
}

func (m *MockFilterLookup) GetFilter(ctx context.Context, name string) (*models.FilterProfile, error) {
	args := m.Called(ctx, name)
	profile, _ := args.Get(0).(*models.FilterProfile)
	return profile, args.Error(1)
}

func (m *MockFilterLookup) Names(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

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
