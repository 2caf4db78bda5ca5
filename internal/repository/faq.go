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

type FAQRepository struct {
	db dbtx
}

func NewFAQRepository(pool *pgxpool.Pool) *FAQRepository {
	return &FAQRepository{db: pool}
}

func (r *FAQRepository) Create(ctx context.Context, f *domain.FAQ) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO faqs (id, company_id, question, answer, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.CompanyID, f.Question, f.Answer, f.CreatedAt, f.UpdatedAt,
	)
	return err
}

func (r *FAQRepository) GetByID(ctx context.Context, id, companyID string) (*domain.FAQ, error) {
	return r.getBy(ctx, `WHERE id = $1 AND company_id = $2`, id, companyID)
}

// GetAnyByID fetches a FAQ without a company scope for the embedding worker.
func (r *FAQRepository) GetAnyByID(ctx context.Context, id string) (*domain.FAQ, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *FAQRepository) getBy(ctx context.Context, where string, args ...any) (*domain.FAQ, error) {
	var f domain.FAQ
	err := r.db.QueryRow(ctx,
		`SELECT id, company_id, question, answer, created_at, updated_at
		 FROM faqs `+where,
		args...,
	).Scan(&f.ID, &f.CompanyID, &f.Question, &f.Answer, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFAQNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FAQRepository) ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*service.FAQPageResult, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, company_id, question, answer, created_at, updated_at
			 FROM faqs
			 WHERE company_id = $1 AND (created_at, id) < ($2, $3)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $4`,
			companyID, cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, company_id, question, answer, created_at, updated_at
			 FROM faqs
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

	var items []*domain.FAQ
	for rows.Next() {
		var f domain.FAQ
		if err := rows.Scan(&f.ID, &f.CompanyID, &f.Question, &f.Answer, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, &f)
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

	return &service.FAQPageResult{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (r *FAQRepository) Update(ctx context.Context, f *domain.FAQ) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE faqs SET question = $1, answer = $2, updated_at = $3
		 WHERE id = $4 AND company_id = $5`,
		f.Question, f.Answer, f.UpdatedAt, f.ID, f.CompanyID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrFAQNotFound
	}
	return nil
}

func (r *FAQRepository) Delete(ctx context.Context, id, companyID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM faqs WHERE id = $1 AND company_id = $2`,
		id, companyID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrFAQNotFound
	}
	return nil
}

func (r *FAQRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE faqs SET embedding = $1, updated_at = $2 WHERE id = $3`,
		pgvector.NewVector(embedding), time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrFAQNotFound
	}
	return nil
}
