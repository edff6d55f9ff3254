// Package ingest accepts client uploads and makes them runnable: object
// upload, transactional Document+Job creation, and bounded dispatch to the
// worker.
package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/internal/common"
	"github.com/docstreamhq/docstream/internal/entity"
	"github.com/docstreamhq/docstream/internal/repository"
	"github.com/docstreamhq/docstream/internal/storage"
)

// Dispatcher hands an accepted upload to the worker. Implementations must
// respect the deadline on ctx.
type Dispatcher interface {
	StartProcessing(ctx context.Context, req DispatchRequest) (uuid.UUID, error)
}

// DispatchRequest carries what the worker needs to start a job.
type DispatchRequest struct {
	DocumentID uuid.UUID
	OwnerID    uuid.UUID
	StorageKey string
	MimeType   string
}

// UploadInput is one client upload.
type UploadInput struct {
	OwnerID  uuid.UUID
	Filename string
	Title    string
	Data     []byte
}

// UploadResult is the committed outcome. Dispatched=false means the worker
// could not be reached in time; the job row stays PENDING and the client
// still gets a well-formed body (HTTP 202).
type UploadResult struct {
	Document   *entity.Document
	Job        *entity.ProcessingJob
	Dispatched bool
}

// Service orchestrates uploads.
type Service struct {
	store           repository.Store
	objects         storage.ObjectStore
	dispatcher      Dispatcher
	logger          *slog.Logger
	maxBytes        int64
	dispatchTimeout time.Duration
}

func NewService(store repository.Store, objects storage.ObjectStore, dispatcher Dispatcher, logger *slog.Logger, maxBytes int64, dispatchTimeout time.Duration) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if maxBytes <= 0 {
		maxBytes = 50 << 20
	}
	if dispatchTimeout <= 0 {
		dispatchTimeout = 10 * time.Second
	}
	return &Service{
		store:           store,
		objects:         objects,
		dispatcher:      dispatcher,
		logger:          logger,
		maxBytes:        maxBytes,
		dispatchTimeout: dispatchTimeout,
	}
}

// Upload validates, stores the bytes, commits Document+Job in one
// transaction, and dispatches to the worker under a hard deadline.
// Dispatch failure is never fatal; everything before it is.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	if len(in.Data) == 0 {
		return nil, common.ErrMissingFile
	}

	detected := mimetype.Detect(in.Data)
	mimeType := ""
	for allowed := range constants.AllowedMIMETypes {
		if detected.Is(allowed) {
			mimeType = allowed
			break
		}
	}
	if mimeType == "" {
		return nil, fmt.Errorf("%w: %s is not accepted; allowed types are application/pdf, image/png, image/jpeg, image/webp",
			common.ErrUnsupportedMediaType, detected.String())
	}

	size := int64(len(in.Data))
	if size > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit", common.ErrPayloadTooLarge, size, s.maxBytes)
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = strings.TrimSpace(in.Filename)
	}

	key := storage.BuildKey(in.Filename)
	if err := s.objects.Put(ctx, key, bytes.NewReader(in.Data), size, mimeType); err != nil {
		// No rows exist yet, so a storage failure leaves nothing behind.
		s.logger.Error("object upload failed", "owner_id", in.OwnerID, "key", key, "err", err)
		return nil, fmt.Errorf("%w: %v", common.ErrUpstreamStorage, err)
	}

	doc, job, err := s.store.CreateDocumentWithJob(ctx, repository.CreateDocumentParams{
		OwnerID:    in.OwnerID,
		Title:      title,
		StorageKey: key,
		MimeType:   mimeType,
		FileSize:   size,
	})
	if err != nil {
		// The stored object is accepted as known residue.
		return nil, fmt.Errorf("%w: %v", common.ErrDatabase, err)
	}

	result := &UploadResult{Document: doc, Job: job}
	result.Dispatched, result.Job = s.dispatch(ctx, doc, job)
	return result, nil
}

// dispatch calls the worker under the configured deadline. On success the
// worker's job id wins; under a retry race it may differ from the row
// created here and the stream must follow the worker's.
func (s *Service) dispatch(ctx context.Context, doc *entity.Document, job *entity.ProcessingJob) (bool, *entity.ProcessingJob) {
	dctx, cancel := context.WithTimeout(ctx, s.dispatchTimeout)
	defer cancel()

	acceptedID, err := s.dispatcher.StartProcessing(dctx, DispatchRequest{
		DocumentID: doc.ID,
		OwnerID:    doc.OwnerID,
		StorageKey: doc.StorageKey,
		MimeType:   doc.MimeType,
	})
	if err != nil {
		s.logger.Warn("worker dispatch failed, job stays pending",
			"document_id", doc.ID, "job_id", job.ID, "err", err)
		return false, job
	}
	if acceptedID != job.ID {
		if accepted, lookupErr := s.store.JobByID(ctx, acceptedID); lookupErr == nil {
			return true, accepted
		}
	}
	return true, job
}
