package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/telemetry"
)

type StorageClientInterface interface {
	GenerateUploadURL(ctx context.Context, key string, contentType string) (string, error)
	GenerateDownloadURL(ctx context.Context, key string) (string, error)
	DeleteObject(ctx context.Context, key string) error
	HeadObject(ctx context.Context, key string) (*ObjectMetadata, error)
}

type ObjectMetadata struct {
	ContentLength int64
	ContentType   string
	ETag          string
}

// LogoService manages a company's logo in object storage. Uploads go
// directly to storage via presigned URLs; the service only records the key.
type LogoService struct {
	companyRepo   CompanyRepositoryInterface
	storageClient StorageClientInterface
	uuidGen       UUIDGenerator
}

func NewLogoService(companyRepo CompanyRepositoryInterface, storageClient StorageClientInterface) *LogoService {
	return &LogoService{
		companyRepo:   companyRepo,
		storageClient: storageClient,
		uuidGen:       &DefaultUUIDGenerator{},
	}
}

var allowedLogoTypes = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/svg+xml": ".svg",
	"image/webp":    ".webp",
}

type InitLogoUploadResult struct {
	StorageKey string
	UploadURL  string
}

// InitUpload issues a presigned upload URL for a new logo object. The key
// is not persisted until CompleteUpload verifies the object exists.
func (s *LogoService) InitUpload(ctx context.Context, companyID, contentType string) (*InitLogoUploadResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "LogoService.InitUpload", telemetry.SpanAttributes{
		CompanyID: companyID,
		Operation: "init_upload",
	})
	defer span.End()

	ext, ok := allowedLogoTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "unsupported logo content type")
	}

	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return nil, err
	}

	key := path.Join("logos", companyID, s.uuidGen.NewString()+ext)
	uploadURL, err := s.storageClient.GenerateUploadURL(ctx, key, contentType)
	if err != nil {
		span.SetError(err)
		return nil, fmt.Errorf("failed to generate upload URL: %w", err)
	}

	return &InitLogoUploadResult{StorageKey: key, UploadURL: uploadURL}, nil
}

// CompleteUpload verifies the uploaded object and records its key on the
// company. A previous logo object is deleted best-effort.
func (s *LogoService) CompleteUpload(ctx context.Context, companyID, storageKey string) error {
	ctx, span := telemetry.StartSpan(ctx, "LogoService.CompleteUpload", telemetry.SpanAttributes{
		CompanyID: companyID,
		Operation: "complete_upload",
	})
	defer span.End()

	if !strings.HasPrefix(storageKey, path.Join("logos", companyID)+"/") {
		return domain.NewDomainError(domain.ErrCodeValidation, "storage key does not belong to this company")
	}

	if _, err := s.storageClient.HeadObject(ctx, storageKey); err != nil {
		span.SetError(err)
		return domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "uploaded logo not found in storage", err)
	}

	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}

	if err := s.companyRepo.UpdateLogoKey(ctx, companyID, storageKey); err != nil {
		return err
	}

	if company.LogoKey != "" && company.LogoKey != storageKey {
		_ = s.storageClient.DeleteObject(ctx, company.LogoKey)
	}
	return nil
}

// DownloadURL returns a presigned URL for the company's current logo.
func (s *LogoService) DownloadURL(ctx context.Context, companyID string) (string, error) {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return "", err
	}
	if company.LogoKey == "" {
		return "", domain.NewDomainError(domain.ErrCodeNotFound, "company has no logo")
	}

	url, err := s.storageClient.GenerateDownloadURL(ctx, company.LogoKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}
	return url, nil
}

// DeleteLogo removes the stored logo object and clears the key.
func (s *LogoService) DeleteLogo(ctx context.Context, companyID string) error {
	company, err := s.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company.LogoKey == "" {
		return domain.NewDomainError(domain.ErrCodeNotFound, "company has no logo")
	}

	if err := s.storageClient.DeleteObject(ctx, company.LogoKey); err != nil {
		return fmt.Errorf("failed to delete logo object: %w", err)
	}
	return s.companyRepo.UpdateLogoKey(ctx, companyID, "")
}
