package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crestline-labs/supportdesk/internal/domain"
)

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

func (r *CompanyRepository) Create(ctx context.Context, c *domain.Company) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO companies (id, name, email, phone, website, industry, description, logo_key, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Email, nullableString(c.Phone), nullableString(c.Website),
		nullableString(c.Industry), nullableString(c.Description), nullableString(c.LogoKey),
		c.PasswordHash, c.CreatedAt,
	)
	return err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *CompanyRepository) GetByName(ctx context.Context, name string) (*domain.Company, error) {
	return r.getBy(ctx, `WHERE name = $1`, name)
}

func (r *CompanyRepository) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *CompanyRepository) getBy(ctx context.Context, where string, arg any) (*domain.Company, error) {
	var c domain.Company
	var phone, website, industry, description, logoKey *string
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, website, industry, description, logo_key, password_hash, created_at
		 FROM companies `+where,
		arg,
	).Scan(&c.ID, &c.Name, &c.Email, &phone, &website, &industry, &description, &logoKey, &c.PasswordHash, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	if phone != nil {
		c.Phone = *phone
	}
	if website != nil {
		c.Website = *website
	}
	if industry != nil {
		c.Industry = *industry
	}
	if description != nil {
		c.Description = *description
	}
	if logoKey != nil {
		c.LogoKey = *logoKey
	}
	return &c, nil
}

func (r *CompanyRepository) UpdateLogoKey(ctx context.Context, id, logoKey string) error {
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE companies SET logo_key = $1 WHERE id = $2`,
		nullableString(logoKey), id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
