package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/internal/entity"
)

// MemoryStore is an in-process Store used by tests and local tooling. It
// honors the same contract as EntStore, including the all-or-nothing
// create and owner-filtered reads.
type MemoryStore struct {
	mu        sync.Mutex
	documents map[uuid.UUID]*entity.Document
	jobs      map[uuid.UUID]*entity.ProcessingJob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[uuid.UUID]*entity.Document),
		jobs:      make(map[uuid.UUID]*entity.ProcessingJob),
	}
}

func (s *MemoryStore) CreateDocumentWithJob(_ context.Context, params CreateDocumentParams) (*entity.Document, *entity.ProcessingJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	doc := &entity.Document{
		ID:         uuid.New(),
		OwnerID:    params.OwnerID,
		Title:      params.Title,
		StorageKey: params.StorageKey,
		MimeType:   params.MimeType,
		FileSize:   params.FileSize,
		Status:     constants.DocumentStatusUploaded,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	job := &entity.ProcessingJob{
		ID:         uuid.New(),
		DocumentID: doc.ID,
		Status:     constants.JobStatusPending,
		Progress:   0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.documents[doc.ID] = doc
	s.jobs[job.ID] = job
	return copyDocument(doc), copyJob(job), nil
}

func (s *MemoryStore) JobByID(_ context.Context, jobID uuid.UUID) (*entity.ProcessingJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyJob(job), nil
}

func (s *MemoryStore) DocumentByID(_ context.Context, documentID uuid.UUID, ownerID *uuid.UUID) (*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return nil, ErrNotFound
	}
	if ownerID != nil && doc.OwnerID != *ownerID {
		return nil, ErrNotFound
	}
	return copyDocument(doc), nil
}

func (s *MemoryStore) UpdateJob(_ context.Context, jobID uuid.UUID, patch JobPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[jobID]
	if !ok {
		return ErrNotFound
	}
	if patch.Status != nil {
		job.Status = *patch.Status
	}
	if patch.Progress != nil {
		job.Progress = *patch.Progress
	}
	if patch.ErrorMessage != nil {
		msg := *patch.ErrorMessage
		job.ErrorMessage = &msg
	}
	if patch.StartedAt != nil {
		t := *patch.StartedAt
		job.StartedAt = &t
	}
	if patch.CompletedAt != nil {
		t := *patch.CompletedAt
		job.CompletedAt = &t
	}
	if patch.Result != nil {
		job.Result = append(job.Result[:0:0], patch.Result...)
	}
	job.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) UpdateDocument(_ context.Context, documentID uuid.UUID, patch DocumentPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentID]
	if !ok {
		return ErrNotFound
	}
	if patch.Status != nil {
		doc.Status = *patch.Status
	}
	if patch.PageCount != nil {
		n := *patch.PageCount
		doc.PageCount = &n
	}
	doc.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) RunningJobForDocument(_ context.Context, documentID uuid.UUID) (*entity.ProcessingJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var newest *entity.ProcessingJob
	for _, job := range s.jobs {
		if job.DocumentID != documentID || job.Status != constants.JobStatusRunning {
			continue
		}
		if newest == nil || job.CreatedAt.After(newest.CreatedAt) {
			newest = job
		}
	}
	if newest == nil {
		return nil, nil
	}
	return copyJob(newest), nil
}

func (s *MemoryStore) PendingJobForDocument(_ context.Context, documentID uuid.UUID) (*entity.ProcessingJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var newest *entity.ProcessingJob
	for _, job := range s.jobs {
		if job.DocumentID != documentID || job.Status != constants.JobStatusPending {
			continue
		}
		if newest == nil || job.CreatedAt.After(newest.CreatedAt) {
			newest = job
		}
	}
	if newest == nil {
		return nil, nil
	}
	return copyJob(newest), nil
}

func (s *MemoryStore) CreateJob(_ context.Context, documentID uuid.UUID) (*entity.ProcessingJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[documentID]; !ok {
		return nil, ErrNotFound
	}
	now := time.Now().UTC()
	job := &entity.ProcessingJob{
		ID:         uuid.New(),
		DocumentID: documentID,
		Status:     constants.JobStatusPending,
		Progress:   0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.jobs[job.ID] = job
	return copyJob(job), nil
}

func (s *MemoryStore) DeleteDocument(_ context.Context, documentID, ownerID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[documentID]
	if !ok || doc.OwnerID != ownerID {
		return ErrNotFound
	}
	delete(s.documents, documentID)
	for id, job := range s.jobs {
		if job.DocumentID == documentID {
			delete(s.jobs, id)
		}
	}
	return nil
}

func copyDocument(doc *entity.Document) *entity.Document {
	out := *doc
	if doc.PageCount != nil {
		n := *doc.PageCount
		out.PageCount = &n
	}
	return &out
}

func copyJob(job *entity.ProcessingJob) *entity.ProcessingJob {
	out := *job
	if job.ErrorMessage != nil {
		msg := *job.ErrorMessage
		out.ErrorMessage = &msg
	}
	if job.StartedAt != nil {
		t := *job.StartedAt
		out.StartedAt = &t
	}
	if job.CompletedAt != nil {
		t := *job.CompletedAt
		out.CompletedAt = &t
	}
	if job.Result != nil {
		out.Result = append(job.Result[:0:0], job.Result...)
	}
	return &out
}
