package processing

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

// MockFilterRepository implements repository.FilterRepository for testing
type MockFilterRepository struct {
	mock.Mock
}

func (m *MockFilterRepository) Upsert(ctx context.Context, profile *models.FilterProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockFilterRepository) GetByName(ctx context.Context, name string) (*models.FilterProfile, error) {
	args := m.Called(ctx, name)
	profile, _ := args.Get(0).(*models.FilterProfile)
	return profile, args.Error(1)
}

func (m *MockFilterRepository) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	names, _ := args.Get(0).([]string)
	return names, args.Error(1)
}

func (m *MockFilterRepository) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockPhotometryRepository implements repository.PhotometryRepository for testing
type MockPhotometryRepository struct {
	mock.Mock
}

func (m *MockPhotometryRepository) StoreResult(ctx context.Context, result *models.PhotometryResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockPhotometryRepository) GetResult(ctx context.Context, id uuid.UUID) (*models.PhotometryResult, error) {
	args := m.Called(ctx, id)
	result, _ := args.Get(0).(*models.PhotometryResult)
	return result, args.Error(1)
}

func (m *MockPhotometryRepository) ListBySpectrum(ctx context.Context, spectrumID uuid.UUID) ([]*models.PhotometryResult, error) {
	args := m.Called(ctx, spectrumID)
	results, _ := args.Get(0).([]*models.PhotometryResult)
	return results, args.Error(1)
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

// MockFetcher implements Fetcher for testing
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchFilter(ctx context.Context, name string) (*models.FilterProfile, error) {
	args := m.Called(ctx, name)
	profile, _ := args.Get(0).(*models.FilterProfile)
	return profile, args.Error(1)
}

func (m *MockFetcher) FetchSpectrum(ctx context.Context, tag string) (*models.Spectrum, error) {
	args := m.Called(ctx, tag)
	spectrum, _ := args.Get(0).(*models.Spectrum)
	return spectrum, args.Error(1)
}

func (m *MockFetcher) Refresh() {
	m.Called()
}

// MockFilterSource implements FilterSource for testing
type MockFilterSource struct {
	mock.Mock
}

func (m *MockFilterSource) GetFilter(ctx context.Context, name string) (*models.FilterProfile, error) {
	args := m.Called(ctx, name)
	profile, _ := args.Get(0).(*models.FilterProfile)
	return profile, args.Error(1)
}

func (m *MockFilterSource) Invalidate(name string) {
	m.Called(name)
}
