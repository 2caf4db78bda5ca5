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

type ServiceRepository struct {
	db dbtx
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{db: pool}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO services (id, company_id, name, description, price_cents, period, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.CompanyID, s.Name, s.Description, s.PriceCents, nullableString(s.Period), s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (r *ServiceRepository) GetByID(ctx context.Context, id, companyID string) (*domain.Service, error) {
	return r.getBy(ctx, `WHERE id = $1 AND company_id = $2`, id, companyID)
}

// GetAnyByID fetches a service without a company scope for the embedding
// worker.
func (r *ServiceRepository) GetAnyByID(ctx context.Context, id string) (*domain.Service, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *ServiceRepository) getBy(ctx context.Context, where string, args ...any) (*domain.Service, error) {
	var s domain.Service
	var period *string
	err := r.db.QueryRow(ctx,
		`SELECT id, company_id, name, description, price_cents, period, created_at, updated_at
		 FROM services `+where,
		args...,
	).Scan(&s.ID, &s.CompanyID, &s.Name, &s.Description, &s.PriceCents, &period, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrServiceNotFound
		}
		return nil, err
	}
	if period != nil {
		s.Period = *period
	}
	return &s, nil
}

func (r *ServiceRepository) ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*service.ServicePageResult, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, company_id, name, description, price_cents, period, created_at, updated_at
			 FROM services
			 WHERE company_id = $1 AND (created_at, id) < ($2, $3)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $4`,
			companyID, cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, company_id, name, description, price_cents, period, created_at, updated_at
			 FROM services
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

	var items []*domain.Service
	for rows.Next() {
		var s domain.Service
		var period *string
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Description, &s.PriceCents, &period, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if period != nil {
			s.Period = *period
		}
		items = append(items, &s)
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

	return &service.ServicePageResult{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE services SET name = $1, description = $2, price_cents = $3, period = $4, updated_at = $5
		 WHERE id = $6 AND company_id = $7`,
		s.Name, s.Description, s.PriceCents, nullableString(s.Period), s.UpdatedAt, s.ID, s.CompanyID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id, companyID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM services WHERE id = $1 AND company_id = $2`,
		id, companyID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}

func (r *ServiceRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE services SET embedding = $1, updated_at = $2 WHERE id = $3`,
		pgvector.NewVector(embedding), time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrServiceNotFound
	}
	return nil
}
