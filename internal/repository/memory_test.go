package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstreamhq/docstream/constants"
)

func TestCreateDocumentWithJobInitialState(t *testing.T) {
	store := NewMemoryStore()
	owner := uuid.New()

	doc, job, err := store.CreateDocumentWithJob(context.Background(), CreateDocumentParams{
		OwnerID:    owner,
		Title:      "invoice",
		StorageKey: "2026/xyz-invoice.pdf",
		MimeType:   "application/pdf",
		FileSize:   2048,
	})
	require.NoError(t, err)

	assert.Equal(t, constants.DocumentStatusUploaded, doc.Status)
	assert.Nil(t, doc.PageCount)
	assert.Equal(t, doc.ID, job.DocumentID)
	assert.Equal(t, constants.JobStatusPending, job.Status)
	assert.Equal(t, 0, job.Progress)
	assert.Nil(t, job.StartedAt)
	assert.Nil(t, job.CompletedAt)
}

func TestDocumentByIDEnforcesOwnership(t *testing.T) {
	store := NewMemoryStore()
	owner := uuid.New()
	doc, _, err := store.CreateDocumentWithJob(context.Background(), CreateDocumentParams{
		OwnerID: owner, Title: "t", StorageKey: "k", MimeType: "application/pdf", FileSize: 1,
	})
	require.NoError(t, err)

	got, err := store.DocumentByID(context.Background(), doc.ID, &owner)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)

	stranger := uuid.New()
	_, err = store.DocumentByID(context.Background(), doc.ID, &stranger)
	assert.ErrorIs(t, err, ErrNotFound)

	// nil owner skips the check (internal callers).
	_, err = store.DocumentByID(context.Background(), doc.ID, nil)
	assert.NoError(t, err)
}

func TestJobByIDUnknownReturnsNotFound(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.JobByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateJobAppliesOnlyNonNilFields(t *testing.T) {
	store := NewMemoryStore()
	_, job, err := store.CreateDocumentWithJob(context.Background(), CreateDocumentParams{
		OwnerID: uuid.New(), Title: "t", StorageKey: "k", MimeType: "application/pdf", FileSize: 1,
	})
	require.NoError(t, err)

	running := constants.JobStatusRunning
	progress := 40
	started := time.Now().UTC()
	require.NoError(t, store.UpdateJob(context.Background(), job.ID, JobPatch{
		Status: &running, Progress: &progress, StartedAt: &started,
	}))

	progress = 55
	require.NoError(t, store.UpdateJob(context.Background(), job.ID, JobPatch{Progress: &progress}))

	got, err := store.JobByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusRunning, got.Status)
	assert.Equal(t, 55, got.Progress)
	require.NotNil(t, got.StartedAt)
	assert.Nil(t, got.CompletedAt)
	assert.True(t, got.UpdatedAt.After(job.UpdatedAt) || got.UpdatedAt.Equal(job.UpdatedAt))
}

func TestRunningAndPendingJobLookups(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	doc, first, err := store.CreateDocumentWithJob(ctx, CreateDocumentParams{
		OwnerID: uuid.New(), Title: "t", StorageKey: "k", MimeType: "application/pdf", FileSize: 1,
	})
	require.NoError(t, err)

	running, err := store.RunningJobForDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, running)

	pending, err := store.PendingJobForDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, pending)
	assert.Equal(t, first.ID, pending.ID)

	status := constants.JobStatusRunning
	require.NoError(t, store.UpdateJob(ctx, first.ID, JobPatch{Status: &status}))

	running, err = store.RunningJobForDocument(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, running)
	assert.Equal(t, first.ID, running.ID)

	pending, err = store.PendingJobForDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, pending)
}

func TestCreateJobRequiresDocument(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.CreateJob(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteDocumentCascadesToJobs(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	owner := uuid.New()
	doc, job, err := store.CreateDocumentWithJob(ctx, CreateDocumentParams{
		OwnerID: owner, Title: "t", StorageKey: "k", MimeType: "application/pdf", FileSize: 1,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, store.DeleteDocument(ctx, doc.ID, uuid.New()), ErrNotFound)

	require.NoError(t, store.DeleteDocument(ctx, doc.ID, owner))
	_, err = store.DocumentByID(ctx, doc.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.JobByID(ctx, job.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	doc, job, err := store.CreateDocumentWithJob(ctx, CreateDocumentParams{
		OwnerID: uuid.New(), Title: "t", StorageKey: "k", MimeType: "application/pdf", FileSize: 1,
	})
	require.NoError(t, err)

	doc.Title = "mutated"
	job.Progress = 99

	freshDoc, err := store.DocumentByID(ctx, doc.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "t", freshDoc.Title)

	freshJob, err := store.JobByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, freshJob.Progress)
}
