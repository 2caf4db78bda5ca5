package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/supportdesk/internal/domain"
)

type MockStorageClient struct {
	mock.Mock
}

func (m *MockStorageClient) GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error) {
	args := m.Called(ctx, key, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorageClient) GenerateDownloadURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStorageClient) DeleteObject(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorageClient) HeadObject(ctx context.Context, key string) (*ObjectMetadata, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ObjectMetadata), args.Error(1)
}

func newTestLogoService(companyRepo *MockCompanyRepository, storage *MockStorageClient) *LogoService {
	svc := NewLogoService(companyRepo, storage)
	uuidGen := new(MockUUIDGenerator)
	uuidGen.On("NewString").Return("generated-id")
	svc.uuidGen = uuidGen
	return svc
}

func logoTestCompany(logoKey string) *domain.Company {
	return &domain.Company{
		ID:           "company-1",
		Name:         "acme corp",
		Email:        "admin@acme.test",
		LogoKey:      logoKey,
		PasswordHash: "hashed",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestLogoInitUpload(t *testing.T) {
	t.Run("issues presigned URL with company-scoped key", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		storage := new(MockStorageClient)
		svc := newTestLogoService(companyRepo, storage)

		companyRepo.On("GetByID", mock.Anything, "company-1").Return(logoTestCompany(""), nil)
		storage.On("GenerateUploadURL", mock.Anything, "logos/company-1/generated-id.png", "image/png").
			Return("https://storage.test/upload", nil)

		result, err := svc.InitUpload(context.Background(), "company-1", "image/png")

		require.NoError(t, err)
		assert.Equal(t, "logos/company-1/generated-id.png", result.StorageKey)
		assert.Equal(t, "https://storage.test/upload", result.UploadURL)
	})

	t.Run("rejects unsupported content type", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		storage := new(MockStorageClient)
		svc := newTestLogoService(companyRepo, storage)

		_, err := svc.InitUpload(context.Background(), "company-1", "application/pdf")

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeValidation, domainErr.Code)
		storage.AssertNotCalled(t, "GenerateUploadURL", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown company", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		storage := new(MockStorageClient)
		svc := newTestLogoService(companyRepo, storage)

		companyRepo.On("GetByID", mock.Anything, "missing").Return(nil, domain.ErrCompanyNotFound)

		_, err := svc.InitUpload(context.Background(), "missing", "image/png")

		assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
	})
}

func TestLogoCompleteUpload(t *testing.T) {
	t.Run("verifies object and records key", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		storage := new(MockStorageClient)
		svc := newTestLogoService(companyRepo, storage)

		key := "logos/company-1/generated-id.png"
		storage.On("HeadObject", mock.Anything, key).Return(&ObjectMetadata{ContentLength: 1024}, nil)
		companyRepo.On("GetByID", mock.Anything, "company-1").Return(logoTestCompany(""), nil)
		companyRepo.On("UpdateLogoKey", mock.Anything, "company-1", key).Return(nil)

		err := svc.CompleteUpload(context.Background(), "company-1", key)

		require.NoError(t, err)
		companyRepo.AssertExpectations(t)
		storage.AssertNotCalled(t, "DeleteObject", mock.Anything, mock.Anything)
	})

	t.Run("deletes the previous logo object", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		storage := new(MockStorageClient)
		svc := newTestLogoService(companyRepo, storage)

		oldKey := "logos/company-1/old.png"
		newKey := "logos/company-1/generated-id.png"
		storage.On("HeadObject", mock.Anything, newKey).Return(&ObjectMetadata{}, nil)
		companyRepo.On("GetByID", mock.Anything, "company-1").Return(logoTestCompany(oldKey), nil)
		companyRepo.On("UpdateLogoKey", mock.Anything, "company-1", newKey).Return(nil)
		storage.On("DeleteObject", mock.Anything, oldKey).Return(nil)

		err := svc.CompleteUpload(context.Background(), "company-1", newKey)

		require.NoError(t, err)
		storage.AssertExpectations(t)
	})

	t.Run("rejects a key scoped to another company", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		storage := new(MockStorageClient)
		svc := newTestLogoService(companyRepo, storage)

		err := svc.CompleteUpload(context.Background(), "company-1", "logos/company-2/sneaky.png")

		require.Error(t, err)
		storage.AssertNotCalled(t, "HeadObject", mock.Anything, mock.Anything)
	})

	t.Run("object missing from storage", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		storage := new(MockStorageClient)
		svc := newTestLogoService(companyRepo, storage)

		key := "logos/company-1/generated-id.png"
		storage.On("HeadObject", mock.Anything, key).Return(nil, errors.New("not found"))

		err := svc.CompleteUpload(context.Background(), "company-1", key)

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeValidation, domainErr.Code)
		companyRepo.AssertNotCalled(t, "UpdateLogoKey", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestLogoDownloadURL(t *testing.T) {
	t.Run("returns presigned URL for stored logo", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		storage := new(MockStorageClient)
		svc := newTestLogoService(companyRepo, storage)

		companyRepo.On("GetByID", mock.Anything, "company-1").Return(logoTestCompany("logos/company-1/a.png"), nil)
		storage.On("GenerateDownloadURL", mock.Anything, "logos/company-1/a.png").
			Return("https://storage.test/a.png", nil)

		url, err := svc.DownloadURL(context.Background(), "company-1")

		require.NoError(t, err)
		assert.Equal(t, "https://storage.test/a.png", url)
	})

	t.Run("no logo uploaded", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		storage := new(MockStorageClient)
		svc := newTestLogoService(companyRepo, storage)

		companyRepo.On("GetByID", mock.Anything, "company-1").Return(logoTestCompany(""), nil)

		_, err := svc.DownloadURL(context.Background(), "company-1")

		require.Error(t, err)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrCodeNotFound, domainErr.Code)
	})
}

func TestLogoDelete(t *testing.T) {
	t.Run("removes object and clears key", func(t *testing.T) {
		companyRepo := new(MockCompanyRepository)
		storage := new(MockStorageClient)
		svc := newTestLogoService(companyRepo, storage)

		companyRepo.On("GetByID", mock.Anything, "company-1").Return(logoTestCompany("logos/company-1/a.png"), nil)
		storage.On("DeleteObject", mock.Anything, "logos/company-1/a.png").Return(nil)
		companyRepo.On("UpdateLogoKey", mock.Anything, "company-1", "").Return(nil)

		err := svc.DeleteLogo(context.Background(), "company-1")

		require.NoError(t, err)
		companyRepo.AssertExpectations(t)
	})
}
