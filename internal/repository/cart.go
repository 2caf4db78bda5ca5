package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crestline-labs/supportdesk/internal/domain"
)

type CartRepository struct {
	db dbtx
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{db: pool}
}

func NewCartRepositoryWithTx(tx pgx.Tx) *CartRepository {
	return &CartRepository{db: tx}
}

func (r *CartRepository) Create(ctx context.Context, item *domain.CartItem) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO cart_items (id, user_id, product_id, service_id, quantity, added_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.UserID, item.ProductID, item.ServiceID, item.Quantity, item.AddedAt,
	)
	return err
}

func (r *CartRepository) GetByID(ctx context.Context, id, userID string) (*domain.CartItem, error) {
	return r.getBy(ctx, `WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *CartRepository) GetByProduct(ctx context.Context, userID, productID string) (*domain.CartItem, error) {
	return r.getBy(ctx, `WHERE user_id = $1 AND product_id = $2`, userID, productID)
}

func (r *CartRepository) GetByService(ctx context.Context, userID, serviceID string) (*domain.CartItem, error) {
	return r.getBy(ctx, `WHERE user_id = $1 AND service_id = $2`, userID, serviceID)
}

func (r *CartRepository) getBy(ctx context.Context, where string, args ...any) (*domain.CartItem, error) {
	var item domain.CartItem
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, product_id, service_id, quantity, added_at
		 FROM cart_items `+where,
		args...,
	).Scan(&item.ID, &item.UserID, &item.ProductID, &item.ServiceID, &item.Quantity, &item.AddedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCartItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *CartRepository) ListByUser(ctx context.Context, userID string) ([]*domain.CartItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, product_id, service_id, quantity, added_at
		 FROM cart_items WHERE user_id = $1 ORDER BY added_at ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.ServiceID, &item.Quantity, &item.AddedAt); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	return items, rows.Err()
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, id, userID string, quantity int) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2 AND user_id = $3`,
		quantity, id, userID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id, userID string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *CartRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM cart_items WHERE user_id = $1`,
		userID,
	)
	return err
}
