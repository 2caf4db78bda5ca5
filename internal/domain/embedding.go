package domain

import (
	"fmt"
	"time"
)

// CatalogKind identifies which catalog table a record belongs to.
type CatalogKind string

const (
	CatalogKindFAQ     CatalogKind = "faq"
	CatalogKindProduct CatalogKind = "product"
	CatalogKindService CatalogKind = "service"
	CatalogKindPolicy  CatalogKind = "policy"
)

// EmbeddingJobStatus represents the status of an embedding job
type EmbeddingJobStatus string

const (
	EmbeddingJobStatusPending    EmbeddingJobStatus = "pending"
	EmbeddingJobStatusProcessing EmbeddingJobStatus = "processing"
	EmbeddingJobStatusCompleted  EmbeddingJobStatus = "completed"
	EmbeddingJobStatusFailed     EmbeddingJobStatus = "failed"
)

// EmbeddingJob queues a catalog record for embedding generation. Jobs are
// created on catalog writes and drained by the background worker.
type EmbeddingJob struct {
	ID          string
	Kind        CatalogKind
	RecordID    string
	Status      EmbeddingJobStatus
	Retries     int
	Error       string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// NewEmbeddingJob creates a pending EmbeddingJob for a catalog record
func NewEmbeddingJob(id string, kind CatalogKind, recordID string, createdAt time.Time) *EmbeddingJob {
	return &EmbeddingJob{
		ID:        id,
		Kind:      kind,
		RecordID:  recordID,
		Status:    EmbeddingJobStatusPending,
		CreatedAt: createdAt,
	}
}

// ValidateEmbeddingJob validates an EmbeddingJob instance
func ValidateEmbeddingJob(j *EmbeddingJob) error {
	if j == nil {
		return fmt.Errorf("embedding job cannot be nil")
	}
	if j.ID == "" {
		return fmt.Errorf("embedding job ID is required")
	}
	if !isValidCatalogKind(j.Kind) {
		return fmt.Errorf("embedding job Kind is invalid: %s", j.Kind)
	}
	if j.RecordID == "" {
		return fmt.Errorf("embedding job RecordID is required")
	}
	if !isValidEmbeddingJobStatus(j.Status) {
		return ErrInvalidEmbeddingJobState
	}
	return nil
}

func isValidCatalogKind(k CatalogKind) bool {
	switch k {
	case CatalogKindFAQ, CatalogKindProduct, CatalogKindService, CatalogKindPolicy:
		return true
	}
	return false
}

func isValidEmbeddingJobStatus(s EmbeddingJobStatus) bool {
	switch s {
	case EmbeddingJobStatusPending, EmbeddingJobStatusProcessing, EmbeddingJobStatusCompleted, EmbeddingJobStatusFailed:
		return true
	}
	return false
}
