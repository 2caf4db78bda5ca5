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

type ProductRepository struct {
	db dbtx
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{db: pool}
}

func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (id, company_id, name, description, price_cents, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.CompanyID, p.Name, p.Description, p.PriceCents, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *ProductRepository) GetByID(ctx context.Context, id, companyID string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRow(ctx,
		`SELECT id, company_id, name, description, price_cents, created_at, updated_at
		 FROM products WHERE id = $1 AND company_id = $2`,
		id, companyID,
	).Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

// GetAnyByID fetches a product without a company scope. It backs the
// embedding worker, which only holds a record ID.
func (r *ProductRepository) GetAnyByID(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRow(ctx,
		`SELECT id, company_id, name, description, price_cents, created_at, updated_at
		 FROM products WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) ListByCompany(ctx context.Context, companyID string, cursor *pagination.Cursor, limit int) (*service.ProductPageResult, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.db.Query(ctx,
			`SELECT id, company_id, name, description, price_cents, created_at, updated_at
			 FROM products
			 WHERE company_id = $1 AND (created_at, id) < ($2, $3)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $4`,
			companyID, cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT id, company_id, name, description, price_cents, created_at, updated_at
			 FROM products
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

	var items []*domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Description, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
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

	return &service.ProductPageResult{
		Items:      items,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *domain.Product) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE products SET name = $1, description = $2, price_cents = $3, updated_at = $4
		 WHERE id = $5 AND company_id = $6`,
		p.Name, p.Description, p.PriceCents, p.UpdatedAt, p.ID, p.CompanyID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id, companyID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM products WHERE id = $1 AND company_id = $2`,
		id, companyID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) UpdateEmbedding(ctx context.Context, id string, embedding []float32) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE products SET embedding = $1, updated_at = $2 WHERE id = $3`,
		pgvector.NewVector(embedding), time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
