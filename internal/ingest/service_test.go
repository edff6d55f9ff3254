package ingest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/internal/common"
	"github.com/docstreamhq/docstream/internal/repository"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

type fakeObjects struct {
	err  error
	keys []string
}

func (f *fakeObjects) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) error {
	if f.err != nil {
		return f.err
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return err
	}
	f.keys = append(f.keys, key)
	return nil
}

type fakeDispatcher struct {
	fn    func(ctx context.Context, req DispatchRequest) (uuid.UUID, error)
	calls int
}

func (f *fakeDispatcher) StartProcessing(ctx context.Context, req DispatchRequest) (uuid.UUID, error) {
	f.calls++
	if f.fn == nil {
		return uuid.Nil, errors.New("no dispatcher behavior configured")
	}
	return f.fn(ctx, req)
}

func newUploadService(store repository.Store, objects *fakeObjects, dispatcher *fakeDispatcher) *Service {
	return NewService(store, objects, dispatcher, nil, 1<<20, time.Second)
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := newUploadService(repository.NewMemoryStore(), &fakeObjects{}, &fakeDispatcher{})
	_, err := svc.Upload(context.Background(), UploadInput{OwnerID: uuid.New(), Filename: "empty.pdf"})
	assert.ErrorIs(t, err, common.ErrMissingFile)
}

func TestUploadRejectsUnsupportedMediaType(t *testing.T) {
	svc := newUploadService(repository.NewMemoryStore(), &fakeObjects{}, &fakeDispatcher{})
	_, err := svc.Upload(context.Background(), UploadInput{
		OwnerID:  uuid.New(),
		Filename: "notes.txt",
		Data:     []byte("plain text, not a document"),
	})
	assert.ErrorIs(t, err, common.ErrUnsupportedMediaType)
	assert.Contains(t, err.Error(), "application/pdf")
}

func TestUploadRejectsOversizePayload(t *testing.T) {
	store := repository.NewMemoryStore()
	objects := &fakeObjects{}
	svc := NewService(store, objects, &fakeDispatcher{}, nil, int64(len(pdfBytes)), time.Second)

	oversize := append(append([]byte{}, pdfBytes...), ' ')
	_, err := svc.Upload(context.Background(), UploadInput{
		OwnerID:  uuid.New(),
		Filename: "big.pdf",
		Data:     oversize,
	})
	assert.ErrorIs(t, err, common.ErrPayloadTooLarge)
	assert.Empty(t, objects.keys, "oversize payload must not reach object storage")
}

func TestUploadStorageFailureLeavesNoRows(t *testing.T) {
	store := repository.NewMemoryStore()
	dispatcher := &fakeDispatcher{}
	svc := newUploadService(store, &fakeObjects{err: errors.New("minio down")}, dispatcher)

	owner := uuid.New()
	_, err := svc.Upload(context.Background(), UploadInput{
		OwnerID:  owner,
		Filename: "report.pdf",
		Data:     pdfBytes,
	})
	assert.ErrorIs(t, err, common.ErrUpstreamStorage)
	assert.Zero(t, dispatcher.calls, "a failed upload must never be dispatched")
}

func TestUploadDispatchFailureIsNotFatal(t *testing.T) {
	store := repository.NewMemoryStore()
	dispatcher := &fakeDispatcher{fn: func(context.Context, DispatchRequest) (uuid.UUID, error) {
		return uuid.Nil, errors.New("worker unreachable")
	}}
	svc := newUploadService(store, &fakeObjects{}, dispatcher)

	result, err := svc.Upload(context.Background(), UploadInput{
		OwnerID:  uuid.New(),
		Filename: "report.pdf",
		Data:     pdfBytes,
	})
	require.NoError(t, err)
	assert.False(t, result.Dispatched)

	// The job row survives PENDING so the document can be re-driven later.
	job, err := store.JobByID(context.Background(), result.Job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusPending, job.Status)
}

func TestUploadHappyPathDispatches(t *testing.T) {
	store := repository.NewMemoryStore()
	objects := &fakeObjects{}
	var dispatched DispatchRequest
	dispatcher := &fakeDispatcher{}
	dispatcher.fn = func(_ context.Context, req DispatchRequest) (uuid.UUID, error) {
		dispatched = req
		// Echo back the job the upload transaction created.
		job, err := store.PendingJobForDocument(context.Background(), req.DocumentID)
		if err != nil || job == nil {
			return uuid.Nil, errors.New("no pending job visible to worker")
		}
		return job.ID, nil
	}
	svc := newUploadService(store, objects, dispatcher)

	owner := uuid.New()
	result, err := svc.Upload(context.Background(), UploadInput{
		OwnerID:  owner,
		Filename: "Q3 Report FINAL.pdf",
		Data:     pdfBytes,
	})
	require.NoError(t, err)
	assert.True(t, result.Dispatched)
	assert.Equal(t, 1, dispatcher.calls)

	assert.Equal(t, owner, result.Document.OwnerID)
	assert.Equal(t, "Q3 Report FINAL.pdf", result.Document.Title)
	assert.Equal(t, "application/pdf", result.Document.MimeType)
	assert.Equal(t, int64(len(pdfBytes)), result.Document.FileSize)
	assert.Equal(t, constants.JobStatusPending, result.Job.Status)

	require.Len(t, objects.keys, 1)
	assert.Equal(t, result.Document.StorageKey, objects.keys[0])
	assert.True(t, strings.HasSuffix(objects.keys[0], "q3-report-final.pdf"),
		"storage key %q should end with the sanitized filename", objects.keys[0])

	assert.Equal(t, result.Document.ID, dispatched.DocumentID)
	assert.Equal(t, owner, dispatched.OwnerID)
	assert.Equal(t, result.Document.StorageKey, dispatched.StorageKey)
	assert.Equal(t, "application/pdf", dispatched.MimeType)
}

func TestUploadFollowsWorkerJobID(t *testing.T) {
	store := repository.NewMemoryStore()
	dispatcher := &fakeDispatcher{}
	dispatcher.fn = func(_ context.Context, req DispatchRequest) (uuid.UUID, error) {
		// Simulate a worker that raced a retry and answered with a
		// different job row for the same document.
		job, err := store.CreateJob(context.Background(), req.DocumentID)
		if err != nil {
			return uuid.Nil, err
		}
		return job.ID, nil
	}
	svc := newUploadService(store, &fakeObjects{}, dispatcher)

	result, err := svc.Upload(context.Background(), UploadInput{
		OwnerID:  uuid.New(),
		Filename: "raced.pdf",
		Data:     pdfBytes,
	})
	require.NoError(t, err)
	assert.True(t, result.Dispatched)
	assert.Equal(t, result.Document.ID, result.Job.DocumentID)

	// The returned job must be the one the worker accepted, so the progress
	// stream the client opens matches what the worker drives.
	accepted, err := store.JobByID(context.Background(), result.Job.ID)
	require.NoError(t, err)
	assert.Equal(t, accepted.ID, result.Job.ID)
}

func TestUploadDefaultsTitleToTrimmedFilename(t *testing.T) {
	svc := newUploadService(repository.NewMemoryStore(), &fakeObjects{}, &fakeDispatcher{fn: func(_ context.Context, req DispatchRequest) (uuid.UUID, error) {
		return uuid.Nil, errors.New("down")
	}})

	result, err := svc.Upload(context.Background(), UploadInput{
		OwnerID:  uuid.New(),
		Filename: "  scan 001.png  ",
		Title:    "   ",
		Data:     pngBytes(),
	})
	require.NoError(t, err)
	assert.Equal(t, "scan 001.png", result.Document.Title)
	assert.Equal(t, "image/png", result.Document.MimeType)
}

// pngBytes is a minimal valid PNG header plus IHDR chunk start, enough for
// content sniffing.
func pngBytes() []byte {
	return bytes.Join([][]byte{
		{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a},
		{0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R'},
		{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01, 0x08, 0x02, 0x00, 0x00, 0x00},
	}, nil)
}
