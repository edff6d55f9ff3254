package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/internal/entity"
)

// ErrNotFound is returned when a referenced row does not exist (or is not
// visible to the given owner).
var ErrNotFound = errors.New("repository: not found")

// CreateDocumentParams carries the inputs for the upload transaction.
type CreateDocumentParams struct {
	OwnerID    uuid.UUID
	Title      string
	StorageKey string
	MimeType   string
	FileSize   int64
}

// JobPatch is a partial update of a processing job. Nil fields are left
// untouched. Callers own the lifecycle invariants (completed_at set iff
// terminal, result only on COMPLETED, error_message only on FAILED).
type JobPatch struct {
	Status       *constants.JobStatus
	Progress     *int
	ErrorMessage *string
	StartedAt    *time.Time
	CompletedAt  *time.Time
	Result       json.RawMessage
}

// DocumentPatch is a partial update of a document.
type DocumentPatch struct {
	Status    *constants.DocumentStatus
	PageCount *int
}

// Store is the durable source of truth for documents and processing jobs.
// The Redis event channel is advisory; anything read back from Store wins.
type Store interface {
	// CreateDocumentWithJob creates a Document (UPLOADED) and its initial
	// ProcessingJob (PENDING, progress 0) in one transaction. On failure no
	// partial rows remain.
	CreateDocumentWithJob(ctx context.Context, params CreateDocumentParams) (*entity.Document, *entity.ProcessingJob, error)
	// JobByID returns the job or ErrNotFound.
	JobByID(ctx context.Context, jobID uuid.UUID) (*entity.ProcessingJob, error)
	// DocumentByID returns the document or ErrNotFound. A non-nil ownerID
	// additionally enforces ownership.
	DocumentByID(ctx context.Context, documentID uuid.UUID, ownerID *uuid.UUID) (*entity.Document, error)
	// UpdateJob applies a partial update to a job row.
	UpdateJob(ctx context.Context, jobID uuid.UUID, patch JobPatch) error
	// UpdateDocument applies a partial update to a document row.
	UpdateDocument(ctx context.Context, documentID uuid.UUID, patch DocumentPatch) error
	// RunningJobForDocument returns the newest RUNNING job for the
	// document, or (nil, nil) when there is none.
	RunningJobForDocument(ctx context.Context, documentID uuid.UUID) (*entity.ProcessingJob, error)
	// PendingJobForDocument returns the newest PENDING job for the
	// document, or (nil, nil) when there is none. The worker reuses it so
	// a dispatched upload keeps its single job row.
	PendingJobForDocument(ctx context.Context, documentID uuid.UUID) (*entity.ProcessingJob, error)
	// CreateJob creates a fresh PENDING job for an existing document,
	// used when a document is re-driven after a terminal job.
	CreateJob(ctx context.Context, documentID uuid.UUID) (*entity.ProcessingJob, error)
	// DeleteDocument removes an owned document; jobs and annotations
	// cascade. Returns ErrNotFound when the document is absent or owned by
	// someone else.
	DeleteDocument(ctx context.Context, documentID, ownerID uuid.UUID) error
}
