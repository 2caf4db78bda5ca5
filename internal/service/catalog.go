package service

import (
	"context"
	"fmt"
	"time"

	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/pagination"
	"github.com/crestline-labs/supportdesk/internal/telemetry"
)

type ProductPageResult struct {
	Items      []*domain.Product
	NextCursor string
	HasMore    bool
}

type ServicePageResult struct {
	Items      []*domain.Service
	NextCursor string
	HasMore    bool
}

type FAQPageResult struct {
	Items      []*domain.FAQ
	NextCursor string
	HasMore    bool
}

type PolicyPageResult struct {
	Items      []*domain.Policy
	NextCursor string
	HasMore    bool
}

type ProductRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id, companyID string) (*domain.Product, error)
	ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*ProductPageResult, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id, companyID string) error
}

type ServiceRepositoryInterface interface {
	Create(ctx context.Context, s *domain.Service) error
	GetByID(ctx context.Context, id, companyID string) (*domain.Service, error)
	ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*ServicePageResult, error)
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id, companyID string) error
}

type FAQRepositoryInterface interface {
	Create(ctx context.Context, f *domain.FAQ) error
	GetByID(ctx context.Context, id, companyID string) (*domain.FAQ, error)
	ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*FAQPageResult, error)
	Update(ctx context.Context, f *domain.FAQ) error
	Delete(ctx context.Context, id, companyID string) error
}

type PolicyRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Policy) error
	GetByID(ctx context.Context, id, companyID string) (*domain.Policy, error)
	ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*PolicyPageResult, error)
	Update(ctx context.Context, p *domain.Policy) error
	Delete(ctx context.Context, id, companyID string) error
}

// EmbeddingJobRepositoryInterface defines the repository interface for
// embedding job persistence.
type EmbeddingJobRepositoryInterface interface {
	Create(ctx context.Context, job *domain.EmbeddingJob) error
}

// CatalogService handles company-scoped catalog records. Every write
// queues an embedding job so semantic search stays current.
type CatalogService struct {
	productRepo ProductRepositoryInterface
	serviceRepo ServiceRepositoryInterface
	faqRepo     FAQRepositoryInterface
	policyRepo  PolicyRepositoryInterface
	jobRepo     EmbeddingJobRepositoryInterface
	uuidGen     UUIDGenerator
}

func NewCatalogService(
	productRepo ProductRepositoryInterface,
	serviceRepo ServiceRepositoryInterface,
	faqRepo FAQRepositoryInterface,
	policyRepo PolicyRepositoryInterface,
	jobRepo EmbeddingJobRepositoryInterface,
) *CatalogService {
	return &CatalogService{
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		faqRepo:     faqRepo,
		policyRepo:  policyRepo,
		jobRepo:     jobRepo,
		uuidGen:     &DefaultUUIDGenerator{},
	}
}

func (s *CatalogService) queueEmbedding(ctx context.Context, kind domain.CatalogKind, recordID string) error {
	if s.jobRepo == nil {
		return nil
	}
	job := domain.NewEmbeddingJob(s.uuidGen.NewString(), kind, recordID, time.Now().UTC())
	return s.jobRepo.Create(ctx, job)
}

type ProductInput struct {
	Name        string
	Description string
	PriceCents  int64
}

func (s *CatalogService) CreateProduct(ctx context.Context, companyID string, input ProductInput) (*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "CatalogService.CreateProduct", telemetry.SpanAttributes{
		CompanyID: companyID,
		Operation: "create",
	})
	defer span.End()

	now := time.Now().UTC()
	product := &domain.Product{
		ID:          s.uuidGen.NewString(),
		CompanyID:   companyID,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := domain.ValidateProduct(product); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid product", err)
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	if err := s.queueEmbedding(ctx, domain.CatalogKindProduct, product.ID); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id, companyID string) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, id, companyID)
}

func (s *CatalogService) ListProducts(ctx context.Context, companyID, cursorStr string, limit int) (*ProductPageResult, error) {
	cursor, _ := pagination.DecodeCursor(cursorStr)
	return s.productRepo.ListByCompany(ctx, companyID, cursor, limit)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id, companyID string, input ProductInput) (*domain.Product, error) {
	ctx, span := telemetry.StartSpan(ctx, "CatalogService.UpdateProduct", telemetry.SpanAttributes{
		CompanyID: companyID,
		RecordID:  id,
		Operation: "update",
	})
	defer span.End()

	product, err := s.productRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.PriceCents = input.PriceCents
	product.UpdatedAt = time.Now().UTC()

	if err := domain.ValidateProduct(product); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid product", err)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	if err := s.queueEmbedding(ctx, domain.CatalogKindProduct, product.ID); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id, companyID string) error {
	return s.productRepo.Delete(ctx, id, companyID)
}

type ServiceInput struct {
	Name        string
	Description string
	PriceCents  int64
	Period      string
}

func (s *CatalogService) CreateService(ctx context.Context, companyID string, input ServiceInput) (*domain.Service, error) {
	ctx, span := telemetry.StartSpan(ctx, "CatalogService.CreateService", telemetry.SpanAttributes{
		CompanyID: companyID,
		Operation: "create",
	})
	defer span.End()

	now := time.Now().UTC()
	svc := &domain.Service{
		ID:          s.uuidGen.NewString(),
		CompanyID:   companyID,
		Name:        input.Name,
		Description: input.Description,
		PriceCents:  input.PriceCents,
		Period:      input.Period,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := domain.ValidateService(svc); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid service", err)
	}

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}
	if err := s.queueEmbedding(ctx, domain.CatalogKindService, svc.ID); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) GetService(ctx context.Context, id, companyID string) (*domain.Service, error) {
	return s.serviceRepo.GetByID(ctx, id, companyID)
}

func (s *CatalogService) ListServices(ctx context.Context, companyID, cursorStr string, limit int) (*ServicePageResult, error) {
	cursor, _ := pagination.DecodeCursor(cursorStr)
	return s.serviceRepo.ListByCompany(ctx, companyID, cursor, limit)
}

func (s *CatalogService) UpdateService(ctx context.Context, id, companyID string, input ServiceInput) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	svc.Name = input.Name
	svc.Description = input.Description
	svc.PriceCents = input.PriceCents
	svc.Period = input.Period
	svc.UpdatedAt = time.Now().UTC()

	if err := domain.ValidateService(svc); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid service", err)
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	if err := s.queueEmbedding(ctx, domain.CatalogKindService, svc.ID); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, id, companyID string) error {
	return s.serviceRepo.Delete(ctx, id, companyID)
}

type FAQInput struct {
	Question string
	Answer   string
}

func (s *CatalogService) CreateFAQ(ctx context.Context, companyID string, input FAQInput) (*domain.FAQ, error) {
	now := time.Now().UTC()
	faq := &domain.FAQ{
		ID:        s.uuidGen.NewString(),
		CompanyID: companyID,
		Question:  input.Question,
		Answer:    input.Answer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := domain.ValidateFAQ(faq); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid faq", err)
	}

	if err := s.faqRepo.Create(ctx, faq); err != nil {
		return nil, err
	}
	if err := s.queueEmbedding(ctx, domain.CatalogKindFAQ, faq.ID); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *CatalogService) GetFAQ(ctx context.Context, id, companyID string) (*domain.FAQ, error) {
	return s.faqRepo.GetByID(ctx, id, companyID)
}

func (s *CatalogService) ListFAQs(ctx context.Context, companyID, cursorStr string, limit int) (*FAQPageResult, error) {
	cursor, _ := pagination.DecodeCursor(cursorStr)
	return s.faqRepo.ListByCompany(ctx, companyID, cursor, limit)
}

func (s *CatalogService) UpdateFAQ(ctx context.Context, id, companyID string, input FAQInput) (*domain.FAQ, error) {
	faq, err := s.faqRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	faq.Question = input.Question
	faq.Answer = input.Answer
	faq.UpdatedAt = time.Now().UTC()

	if err := domain.ValidateFAQ(faq); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid faq", err)
	}

	if err := s.faqRepo.Update(ctx, faq); err != nil {
		return nil, err
	}
	if err := s.queueEmbedding(ctx, domain.CatalogKindFAQ, faq.ID); err != nil {
		return nil, err
	}
	return faq, nil
}

func (s *CatalogService) DeleteFAQ(ctx context.Context, id, companyID string) error {
	return s.faqRepo.Delete(ctx, id, companyID)
}

type PolicyInput struct {
	Title   string
	Content string
}

func (s *CatalogService) CreatePolicy(ctx context.Context, companyID string, input PolicyInput) (*domain.Policy, error) {
	now := time.Now().UTC()
	policy := &domain.Policy{
		ID:        s.uuidGen.NewString(),
		CompanyID: companyID,
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := domain.ValidatePolicy(policy); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid policy", err)
	}

	if err := s.policyRepo.Create(ctx, policy); err != nil {
		return nil, err
	}
	if err := s.queueEmbedding(ctx, domain.CatalogKindPolicy, policy.ID); err != nil {
		return nil, err
	}
	return policy, nil
}

func (s *CatalogService) GetPolicy(ctx context.Context, id, companyID string) (*domain.Policy, error) {
	return s.policyRepo.GetByID(ctx, id, companyID)
}

func (s *CatalogService) ListPolicies(ctx context.Context, companyID, cursorStr string, limit int) (*PolicyPageResult, error) {
	cursor, _ := pagination.DecodeCursor(cursorStr)
	return s.policyRepo.ListByCompany(ctx, companyID, cursor, limit)
}

func (s *CatalogService) UpdatePolicy(ctx context.Context, id, companyID string, input PolicyInput) (*domain.Policy, error) {
	policy, err := s.policyRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	policy.Title = input.Title
	policy.Content = input.Content
	policy.UpdatedAt = time.Now().UTC()

	if err := domain.ValidatePolicy(policy); err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid policy", err)
	}

	if err := s.policyRepo.Update(ctx, policy); err != nil {
		return nil, err
	}
	if err := s.queueEmbedding(ctx, domain.CatalogKindPolicy, policy.ID); err != nil {
		return nil, err
	}
	return policy, nil
}

func (s *CatalogService) DeletePolicy(ctx context.Context, id, companyID string) error {
	return s.policyRepo.Delete(ctx, id, companyID)
}

// AnswerProductQuestion produces the agent-side acknowledgement for a
// product question, naming the product.
func (s *CatalogService) AnswerProductQuestion(ctx context.Context, productID, companyID string) (string, error) {
	product, err := s.productRepo.GetByID(ctx, productID, companyID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Thank you for your question about %s. Our team will get back to you shortly.", product.Name), nil
}

// PurchaseProduct confirms a product purchase for a customer.
func (s *CatalogService) PurchaseProduct(ctx context.Context, productID, companyID string) (string, error) {
	product, err := s.productRepo.GetByID(ctx, productID, companyID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Thank you for purchasing %s. Your order has been confirmed.", product.Name), nil
}

// BookService confirms a service booking for a customer.
func (s *CatalogService) BookService(ctx context.Context, serviceID, companyID string) (string, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID, companyID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Thank you for booking %s. Your booking has been confirmed.", svc.Name), nil
}
