package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/pagination"
	"github.com/crestline-labs/supportdesk/internal/service"
)

type PolicyRepository struct {
	db dbtx
}

func NewPolicyRepository(pool *pgxpool.Pool) *PolicyRepository {
	return &PolicyRepository{db: pool}
}

func (r *PolicyRepository) Create(ctx context.Context, p *domain.Policy) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO policies (id, company_id, title, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.CompanyID, p.Title, p.Content, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PolicyRepository) GetByID(ctx context.Context, id, companyID string) (*domain.Policy, error) {
	return r.getBy(ctx, `WHERE id = $1 AND company_id = $2`, id, companyID)
}

// GetAnyByID fetches a policy without a company scope for the embedding
// worker.
func (r *PolicyRepository) GetAnyByID(ctx context.Context, id string) (*domain.Policy, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *PolicyRepository) getBy(ctx context.Context, where string, args ...any) (*domain.Policy, error) {
	var p domain.Policy
	err := r.db.QueryRow(ctx,
		`SELECT id, company_id, title, content, created_at, updated_at
		 FROM policies `+where,
		args...,
	).Scan(&p.ID, &p.CompanyID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPolicyNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PolicyRepository) ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*service.PolicyPageResult, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, company_id, title, content, created_at, updated_at
			 FROM policies
			 WHERE company_id = $1 AND (created_at, id) < ($2, $3)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $4`,
			companyID, cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, company_id, title, content, created_at, updated_at
			 FROM policies
			 WHERE company_id = $1
			 ORDER BY created_at DESC, id DESC
			 LIMIT $2`,
			companyID, limit+1,
		)
	}

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.Policy
	for rows.Next() {
		var p domain.Policy
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	var nextCursor string
	if hasMore && len(items) > 0 {
		last := items[len(items)-1]
		nextCursor = pagination.EncodeCursor(last.ID, last.CreatedAt)
	}

	return &service.PolicyPageResult{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (r *PolicyRepository) Update(ctx context.Context, p *domain.Policy) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE policies SET title = $1, content = $2, updated_at = $3
		 WHERE id = $4 AND company_id = $5`,
		p.Title, p.Content, p.UpdatedAt, p.ID, p.CompanyID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPolicyNotFound
	}
	return nil
}

func (r *PolicyRepository) Delete(ctx context.Context, id, companyID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM policies WHERE id = $1 AND company_id = $2`,
		id, companyID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPolicyNotFound
	}
	return nil
}

func (r *PolicyRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE policies SET embedding = $1, updated_at = $2 WHERE id = $3`,
		pgvector.NewVector(embedding), time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPolicyNotFound
	}
	return nil
}
