package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/gen/ent"
	"github.com/docstreamhq/docstream/gen/ent/document"
	"github.com/docstreamhq/docstream/gen/ent/processingjob"
	"github.com/docstreamhq/docstream/internal/entity"
)

// EntStore is the Postgres-backed Store.
type EntStore struct {
	ent *ent.Client
	log *slog.Logger
}

func NewEntStore(entc *ent.Client, log *slog.Logger) *EntStore {
	if log == nil {
		log = slog.Default()
	}
	return &EntStore{ent: entc, log: log}
}

func (s *EntStore) CreateDocumentWithJob(ctx context.Context, params CreateDocumentParams) (*entity.Document, *entity.ProcessingJob, error) {
	tx, err := s.ent.Tx(ctx)
	if err != nil {
		s.log.Error("begin upload transaction failed", "owner_id", params.OwnerID, "err", err)
		return nil, nil, err
	}

	doc, err := tx.Document.
		Create().
		SetOwnerID(params.OwnerID).
		SetTitle(params.Title).
		SetStorageKey(params.StorageKey).
		SetMimeType(params.MimeType).
		SetFileSize(params.FileSize).
		SetStatus(string(constants.DocumentStatusUploaded)).
		Save(ctx)
	if err != nil {
		_ = tx.Rollback()
		s.log.Error("document create failed", "owner_id", params.OwnerID, "err", err)
		return nil, nil, err
	}

	job, err := tx.ProcessingJob.
		Create().
		SetDocumentID(doc.ID).
		SetStatus(string(constants.JobStatusPending)).
		SetProgress(0).
		Save(ctx)
	if err != nil {
		_ = tx.Rollback()
		s.log.Error("job create failed", "document_id", doc.ID, "err", err)
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("upload transaction commit failed", "document_id", doc.ID, "err", err)
		return nil, nil, err
	}
	s.log.Info("document and job created", "document_id", doc.ID, "job_id", job.ID, "owner_id", params.OwnerID)
	return toDocument(doc), toJob(job), nil
}

func (s *EntStore) JobByID(ctx context.Context, jobID uuid.UUID) (*entity.ProcessingJob, error) {
	row, err := s.ent.ProcessingJob.Get(ctx, jobID)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toJob(row), nil
}

func (s *EntStore) DocumentByID(ctx context.Context, documentID uuid.UUID, ownerID *uuid.UUID) (*entity.Document, error) {
	q := s.ent.Document.Query().Where(document.ID(documentID))
	if ownerID != nil {
		q = q.Where(document.OwnerID(*ownerID))
	}
	row, err := q.Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDocument(row), nil
}

func (s *EntStore) UpdateJob(ctx context.Context, jobID uuid.UUID, patch JobPatch) error {
	u := s.ent.ProcessingJob.UpdateOneID(jobID)
	if patch.Status != nil {
		u.SetStatus(string(*patch.Status))
	}
	if patch.Progress != nil {
		u.SetProgress(*patch.Progress)
	}
	if patch.ErrorMessage != nil {
		u.SetErrorMessage(*patch.ErrorMessage)
	}
	if patch.StartedAt != nil {
		u.SetStartedAt(*patch.StartedAt)
	}
	if patch.CompletedAt != nil {
		u.SetCompletedAt(*patch.CompletedAt)
	}
	if patch.Result != nil {
		u.SetResult(patch.Result)
	}
	_, err := u.Save(ctx)
	if ent.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *EntStore) UpdateDocument(ctx context.Context, documentID uuid.UUID, patch DocumentPatch) error {
	u := s.ent.Document.UpdateOneID(documentID)
	if patch.Status != nil {
		u.SetStatus(string(*patch.Status))
	}
	if patch.PageCount != nil {
		u.SetPageCount(*patch.PageCount)
	}
	_, err := u.Save(ctx)
	if ent.IsNotFound(err) {
		return ErrNotFound
	}
	return err
}

func (s *EntStore) RunningJobForDocument(ctx context.Context, documentID uuid.UUID) (*entity.ProcessingJob, error) {
	row, err := s.ent.ProcessingJob.
		Query().
		Where(
			processingjob.DocumentID(documentID),
			processingjob.Status(string(constants.JobStatusRunning)),
		).
		Order(ent.Desc(processingjob.FieldCreatedAt)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toJob(row), nil
}

func (s *EntStore) PendingJobForDocument(ctx context.Context, documentID uuid.UUID) (*entity.ProcessingJob, error) {
	row, err := s.ent.ProcessingJob.
		Query().
		Where(
			processingjob.DocumentID(documentID),
			processingjob.Status(string(constants.JobStatusPending)),
		).
		Order(ent.Desc(processingjob.FieldCreatedAt)).
		First(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toJob(row), nil
}

func (s *EntStore) CreateJob(ctx context.Context, documentID uuid.UUID) (*entity.ProcessingJob, error) {
	row, err := s.ent.ProcessingJob.
		Create().
		SetDocumentID(documentID).
		SetStatus(string(constants.JobStatusPending)).
		SetProgress(0).
		Save(ctx)
	if err != nil {
		s.log.Error("job create failed", "document_id", documentID, "err", err)
		return nil, err
	}
	return toJob(row), nil
}

func (s *EntStore) DeleteDocument(ctx context.Context, documentID, ownerID uuid.UUID) error {
	// Ownership check and delete in one shot; jobs and annotations cascade
	// at the schema level.
	n, err := s.ent.Document.
		Delete().
		Where(document.ID(documentID), document.OwnerID(ownerID)).
		Exec(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.Info("document deleted", "document_id", documentID, "owner_id", ownerID)
	return nil
}

func toDocument(row *ent.Document) *entity.Document {
	return &entity.Document{
		ID:         row.ID,
		OwnerID:    row.OwnerID,
		Title:      row.Title,
		StorageKey: row.StorageKey,
		MimeType:   row.MimeType,
		FileSize:   row.FileSize,
		Status:     constants.DocumentStatus(row.Status),
		PageCount:  row.PageCount,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func toJob(row *ent.ProcessingJob) *entity.ProcessingJob {
	return &entity.ProcessingJob{
		ID:           row.ID,
		DocumentID:   row.DocumentID,
		Status:       constants.JobStatus(row.Status),
		Progress:     row.Progress,
		Result:       row.Result,
		ErrorMessage: row.ErrorMessage,
		StartedAt:    row.StartedAt,
		CompletedAt:  row.CompletedAt,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
