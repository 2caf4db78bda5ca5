package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/crestline-labs/supportdesk/internal/domain"
)

// EmbeddingProductRepository defines the embedding operations for products.
type EmbeddingProductRepository interface {
	GetAnyByID(ctx context.Context, id string) (*domain.Product, error)
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
}

type EmbeddingServiceRepository interface {
	GetAnyByID(ctx context.Context, id string) (*domain.Service, error)
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
}

type EmbeddingFAQRepository interface {
	GetAnyByID(ctx context.Context, id string) (*domain.FAQ, error)
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
}

type EmbeddingPolicyRepository interface {
	GetAnyByID(ctx context.Context, id string) (*domain.Policy, error)
	UpdateEmbedding(ctx context.Context, id string, embedding []float32) error
}

// EmbeddingService generates and stores embeddings for catalog records.
// It is driven by the background worker, one job per record write.
type EmbeddingService struct {
	client      EmbeddingClient
	productRepo EmbeddingProductRepository
	serviceRepo EmbeddingServiceRepository
	faqRepo     EmbeddingFAQRepository
	policyRepo  EmbeddingPolicyRepository
}

func NewEmbeddingService(
	client EmbeddingClient,
	productRepo EmbeddingProductRepository,
	serviceRepo EmbeddingServiceRepository,
	faqRepo EmbeddingFAQRepository,
	policyRepo EmbeddingPolicyRepository,
) *EmbeddingService {
	return &EmbeddingService{
		client:      client,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		faqRepo:     faqRepo,
		policyRepo:  policyRepo,
	}
}

// GenerateEmbedding embeds the record named by an embedding job and stores
// the vector on its row.
func (s *EmbeddingService) GenerateEmbedding(ctx context.Context, kind domain.CatalogKind, recordID string) error {
	switch kind {
	case domain.CatalogKindProduct:
		product, err := s.productRepo.GetAnyByID(ctx, recordID)
		if err != nil {
			return err
		}
		return s.embed(ctx, joinParts(product.Name, product.Description), func(v []float32) error {
			return s.productRepo.UpdateEmbedding(ctx, recordID, v)
		})
	case domain.CatalogKindService:
		svc, err := s.serviceRepo.GetAnyByID(ctx, recordID)
		if err != nil {
			return err
		}
		return s.embed(ctx, joinParts(svc.Name, svc.Description), func(v []float32) error {
			return s.serviceRepo.UpdateEmbedding(ctx, recordID, v)
		})
	case domain.CatalogKindFAQ:
		faq, err := s.faqRepo.GetAnyByID(ctx, recordID)
		if err != nil {
			return err
		}
		return s.embed(ctx, joinParts(faq.Question, faq.Answer), func(v []float32) error {
			return s.faqRepo.UpdateEmbedding(ctx, recordID, v)
		})
	case domain.CatalogKindPolicy:
		policy, err := s.policyRepo.GetAnyByID(ctx, recordID)
		if err != nil {
			return err
		}
		return s.embed(ctx, joinParts(policy.Title, policy.Content), func(v []float32) error {
			return s.policyRepo.UpdateEmbedding(ctx, recordID, v)
		})
	}
	return fmt.Errorf("unknown catalog kind: %s", kind)
}

func (s *EmbeddingService) embed(ctx context.Context, text string, store func([]float32) error) error {
	embedding, err := s.client.GenerateEmbedding(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to generate embedding: %w", err)
	}
	if err := store(embedding); err != nil {
		return fmt.Errorf("failed to update embedding: %w", err)
	}
	return nil
}

func joinParts(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.Join(nonEmpty, "\n\n")
}
