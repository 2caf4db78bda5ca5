package service

import (
	"context"
	"strings"

	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/telemetry"
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// SearchHit is one semantically matched catalog record.
type SearchHit struct {
	Kind       domain.CatalogKind
	RecordID   string
	Title      string
	Snippet    string
	Similarity float64
}

type SearchRepositoryInterface interface {
	SearchByEmbedding(ctx context.Context, companyID string, embedding []float32, limit int) ([]*SearchHit, error)
}

// SearchService answers semantic queries over a company's catalog using
// stored pgvector embeddings.
type SearchService struct {
	client EmbeddingClient
	repo   SearchRepositoryInterface
}

func NewSearchService(client EmbeddingClient, repo SearchRepositoryInterface) *SearchService {
	return &SearchService{client: client, repo: repo}
}

const defaultSearchLimit = 5

// Search embeds the query and returns the nearest catalog records for the
// company.
func (s *SearchService) Search(ctx context.Context, companyID, query string, limit int) ([]*SearchHit, error) {
	ctx, span := telemetry.StartSpan(ctx, "SearchService.Search", telemetry.SpanAttributes{
		CompanyID: companyID,
		Operation: "search",
	})
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "query is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	embedding, err := s.client.GenerateEmbedding(ctx, query)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to embed query", err)
	}

	return s.repo.SearchByEmbedding(ctx, companyID, embedding, limit)
}
