//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crestline-labs/supportdesk/internal/domain"
	"github.com/crestline-labs/supportdesk/internal/testutil"
)

func TestEmbeddingJobRepository_ClaimPending(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	companyRepo := NewCompanyRepository(pool)
	faqRepo := NewFAQRepository(pool)
	jobRepo := NewEmbeddingJobRepository(pool)

	company := newTestCompany("Acme Corp", "hq@acme.test")
	require.NoError(t, companyRepo.Create(ctx, company))

	now := time.Now().UTC().Truncate(time.Microsecond)
	faq := &domain.FAQ{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		Question:  "What are your hours?",
		Answer:    "9 to 5.",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, faqRepo.Create(ctx, faq))

	job := domain.NewEmbeddingJob(uuid.NewString(), domain.CatalogKindFAQ, faq.ID, now)
	require.NoError(t, jobRepo.Create(ctx, job))

	claimed, err := jobRepo.ClaimPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, domain.EmbeddingJobStatusProcessing, claimed[0].Status)
	assert.Equal(t, domain.CatalogKindFAQ, claimed[0].Kind)
	assert.Equal(t, faq.ID, claimed[0].RecordID)

	// A second claim sees nothing pending.
	claimed, err = jobRepo.ClaimPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, claimed)
}

func TestEmbeddingJobRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	companyRepo := NewCompanyRepository(pool)
	productRepo := NewProductRepository(pool)
	jobRepo := NewEmbeddingJobRepository(pool)

	company := newTestCompany("Acme Corp", "hq@acme.test")
	require.NoError(t, companyRepo.Create(ctx, company))

	now := time.Now().UTC().Truncate(time.Microsecond)
	product := createTestProduct(ctx, t, productRepo, company.ID, "SuperWidget", now)

	job := domain.NewEmbeddingJob(uuid.NewString(), domain.CatalogKindProduct, product.ID, now)
	require.NoError(t, jobRepo.Create(ctx, job))

	err := jobRepo.UpdateStatus(ctx, job.ID, domain.EmbeddingJobStatusFailed, "embedding api down")
	require.NoError(t, err)

	retrieved, err := jobRepo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EmbeddingJobStatusFailed, retrieved.Status)
	assert.Equal(t, "embedding api down", retrieved.Error)
	assert.NotNil(t, retrieved.ProcessedAt)

	require.NoError(t, jobRepo.IncrementRetries(ctx, job.ID))
	retrieved, err = jobRepo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, retrieved.Retries)

	err = jobRepo.UpdateStatus(ctx, uuid.NewString(), domain.EmbeddingJobStatusCompleted, "")
	assert.ErrorIs(t, err, ErrEmbeddingJobNotFound)
}
