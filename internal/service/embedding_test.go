package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/supportdesk/internal/domain"
)

// MockEmbeddingProductRepository is a mock implementation of EmbeddingProductRepository
type MockEmbeddingProductRepository struct {
	mock.Mock
}

func (m *MockEmbeddingProductRepository) GetAnyByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockEmbeddingProductRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	args := m.Called(ctx, id, embedding)
	return args.Error(0)
}

// MockEmbeddingFAQRepository is a mock implementation of EmbeddingFAQRepository
type MockEmbeddingFAQRepository struct {
	mock.Mock
}

func (m *MockEmbeddingFAQRepository) GetAnyByID(ctx context.Context, id string) (*domain.FAQ, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FAQ), args.Error(1)
}

func (m *MockEmbeddingFAQRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	args := m.Called(ctx, id, embedding)
	return args.Error(0)
}

func TestGenerateEmbedding(t *testing.T) {
	ctx := context.Background()
	embedding := []float32{0.5, 0.6}

	t.Run("embeds product name and description", func(t *testing.T) {
		client := new(MockEmbeddingClient)
		productRepo := new(MockEmbeddingProductRepository)
		svc := NewEmbeddingService(client, productRepo, nil, nil, nil)

		product := &domain.Product{ID: "p1", Name: "SuperWidget", Description: "A versatile widget"}
		productRepo.On("GetAnyByID", ctx, "p1").Return(product, nil)
		client.On("GenerateEmbedding", ctx, "SuperWidget\n\nA versatile widget").Return(embedding, nil)
		productRepo.On("UpdateEmbedding", ctx, "p1", embedding).Return(nil)

		err := svc.GenerateEmbedding(ctx, domain.CatalogKindProduct, "p1")

		require.NoError(t, err)
		productRepo.AssertExpectations(t)
		client.AssertExpectations(t)
	})

	t.Run("embeds faq question and answer", func(t *testing.T) {
		client := new(MockEmbeddingClient)
		faqRepo := new(MockEmbeddingFAQRepository)
		svc := NewEmbeddingService(client, nil, nil, faqRepo, nil)

		faq := &domain.FAQ{ID: "f1", Question: "What are your hours?", Answer: "9 to 5."}
		faqRepo.On("GetAnyByID", ctx, "f1").Return(faq, nil)
		client.On("GenerateEmbedding", ctx, "What are your hours?\n\n9 to 5.").Return(embedding, nil)
		faqRepo.On("UpdateEmbedding", ctx, "f1", embedding).Return(nil)

		err := svc.GenerateEmbedding(ctx, domain.CatalogKindFAQ, "f1")
		require.NoError(t, err)
	})

	t.Run("skips empty description in embedded text", func(t *testing.T) {
		client := new(MockEmbeddingClient)
		productRepo := new(MockEmbeddingProductRepository)
		svc := NewEmbeddingService(client, productRepo, nil, nil, nil)

		product := &domain.Product{ID: "p1", Name: "SuperWidget"}
		productRepo.On("GetAnyByID", ctx, "p1").Return(product, nil)
		client.On("GenerateEmbedding", ctx, "SuperWidget").Return(embedding, nil)
		productRepo.On("UpdateEmbedding", ctx, "p1", embedding).Return(nil)

		err := svc.GenerateEmbedding(ctx, domain.CatalogKindProduct, "p1")
		require.NoError(t, err)
	})

	t.Run("propagates record lookup failure", func(t *testing.T) {
		client := new(MockEmbeddingClient)
		productRepo := new(MockEmbeddingProductRepository)
		svc := NewEmbeddingService(client, productRepo, nil, nil, nil)

		productRepo.On("GetAnyByID", ctx, "missing").Return(nil, domain.ErrProductNotFound)

		err := svc.GenerateEmbedding(ctx, domain.CatalogKindProduct, "missing")
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
		client.AssertNotCalled(t, "GenerateEmbedding", mock.Anything, mock.Anything)
	})

	t.Run("wraps embedding client failure", func(t *testing.T) {
		client := new(MockEmbeddingClient)
		productRepo := new(MockEmbeddingProductRepository)
		svc := NewEmbeddingService(client, productRepo, nil, nil, nil)

		product := &domain.Product{ID: "p1", Name: "SuperWidget"}
		productRepo.On("GetAnyByID", ctx, "p1").Return(product, nil)
		client.On("GenerateEmbedding", ctx, "SuperWidget").Return(nil, errors.New("api down"))

		err := svc.GenerateEmbedding(ctx, domain.CatalogKindProduct, "p1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to generate embedding")
		productRepo.AssertNotCalled(t, "UpdateEmbedding", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects unknown kind", func(t *testing.T) {
		svc := NewEmbeddingService(new(MockEmbeddingClient), nil, nil, nil, nil)

		err := svc.GenerateEmbedding(ctx, domain.CatalogKind("bogus"), "x")
		assert.Error(t, err)
	})
}
