package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/crestline-labs/supportdesk/internal/service"
)

// SearchRepository runs nearest-neighbor queries over the embedded catalog
// tables.
type SearchRepository struct {
	pool *pgxpool.Pool
}

func NewSearchRepository(pool *pgxpool.Pool) *SearchRepository {
	return &SearchRepository{pool: pool}
}

// SearchByEmbedding ranks a company's catalog records by cosine distance to
// the query embedding. Records without an embedding are skipped.
func (r *SearchRepository) SearchByEmbedding(ctx context.Context, companyID string, embedding []float32, limit int) ([]*service.SearchHit, error) {
	if limit <= 0 {
		limit = 5
	}

	vec := pgvector.NewVector(embedding)

	query := `
		WITH combined AS (
			SELECT id, 'faq' AS kind, question AS title, answer AS snippet,
			       1.0 / (1.0 + (embedding <=> $1)) AS score
			FROM faqs
			WHERE company_id = $2 AND embedding IS NOT NULL
			UNION ALL
			SELECT id, 'product' AS kind, name AS title, description AS snippet,
			       1.0 / (1.0 + (embedding <=> $1)) AS score
			FROM products
			WHERE company_id = $2 AND embedding IS NOT NULL
			UNION ALL
			SELECT id, 'service' AS kind, name AS title, description AS snippet,
			       1.0 / (1.0 + (embedding <=> $1)) AS score
			FROM services
			WHERE company_id = $2 AND embedding IS NOT NULL
			UNION ALL
			SELECT id, 'policy' AS kind, title, content AS snippet,
			       1.0 / (1.0 + (embedding <=> $1)) AS score
			FROM policies
			WHERE company_id = $2 AND embedding IS NOT NULL
		)
		SELECT id, kind, title, snippet, score
		FROM combined
		ORDER BY score DESC
		LIMIT $3`

	rows, err := r.pool.Query(ctx, query, vec, companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hits := make([]*service.SearchHit, 0)
	for rows.Next() {
		var hit service.SearchHit
		if err := rows.Scan(&hit.RecordID, &hit.Kind, &hit.Title, &hit.Snippet, &hit.Similarity); err != nil {
			return nil, err
		}
		hits = append(hits, &hit)
	}
	return hits, rows.Err()
}
