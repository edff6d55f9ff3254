package server

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/docstreamhq/docstream/constants"
	docstreamv1 "github.com/docstreamhq/docstream/gen/proto/docstream/v1"
	"github.com/docstreamhq/docstream/internal/bus"
	"github.com/docstreamhq/docstream/internal/entity"
	"github.com/docstreamhq/docstream/internal/repository"
	"github.com/docstreamhq/docstream/internal/worker"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newServiceFixture(t *testing.T) (*repository.MemoryStore, *bus.MemoryBus, *worker.Engine, *ProcessingService) {
	t.Helper()
	store := repository.NewMemoryStore()
	b := bus.NewMemoryBus(0)
	t.Cleanup(func() { b.Close() })

	engine := worker.NewEngine(store, b, testLogger(), time.Millisecond, 2)
	t.Cleanup(engine.Wait)
	svc := NewProcessingService(store, b, engine, testLogger())
	return store, b, engine, svc
}

func seedDocument(t *testing.T, store *repository.MemoryStore, ownerID uuid.UUID) (*entity.Document, *entity.ProcessingJob) {
	t.Helper()
	doc, job, err := store.CreateDocumentWithJob(context.Background(), repository.CreateDocumentParams{
		OwnerID:    ownerID,
		Title:      "contract",
		StorageKey: "2026/abc-contract.pdf",
		MimeType:   "application/pdf",
		FileSize:   2048,
	})
	require.NoError(t, err)
	return doc, job
}

// progressStream records updates so ObserveProgress can be driven without a
// network listener.
type progressStream struct {
	grpc.ServerStream
	ctx  context.Context
	sent []*docstreamv1.ProgressUpdate
}

func (s *progressStream) Context() context.Context { return s.ctx }

func (s *progressStream) Send(u *docstreamv1.ProgressUpdate) error {
	s.sent = append(s.sent, u)
	return nil
}

func TestStartProcessingValidatesArguments(t *testing.T) {
	_, _, _, svc := newServiceFixture(t)

	cases := []struct {
		name     string
		document string
		owner    string
	}{
		{"empty document id", "", uuid.NewString()},
		{"empty owner id", uuid.NewString(), ""},
		{"malformed document id", "not-a-uuid", uuid.NewString()},
		{"malformed owner id", uuid.NewString(), "not-a-uuid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.StartProcessing(context.Background(), &docstreamv1.StartProcessingRequest{
				DocumentId: tc.document,
				OwnerId:    tc.owner,
			})
			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, codes.InvalidArgument, st.Code())
		})
	}
}

func TestStartProcessingUnknownDocumentIsNotFound(t *testing.T) {
	_, _, _, svc := newServiceFixture(t)

	_, err := svc.StartProcessing(context.Background(), &docstreamv1.StartProcessingRequest{
		DocumentId: uuid.NewString(),
		OwnerId:    uuid.NewString(),
	})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
}

func TestStartProcessingForeignOwnerIsNotFound(t *testing.T) {
	store, _, _, svc := newServiceFixture(t)
	doc, job := seedDocument(t, store, uuid.New())

	// Another user's id must behave exactly like a missing document.
	_, err := svc.StartProcessing(context.Background(), &docstreamv1.StartProcessingRequest{
		DocumentId: doc.ID.String(),
		OwnerId:    uuid.NewString(),
	})
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())

	stored, err := store.JobByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusPending, stored.Status)
}

func TestStartProcessingReusesPendingJob(t *testing.T) {
	store, _, engine, svc := newServiceFixture(t)
	owner := uuid.New()
	doc, job := seedDocument(t, store, owner)

	resp, err := svc.StartProcessing(context.Background(), &docstreamv1.StartProcessingRequest{
		DocumentId: doc.ID.String(),
		OwnerId:    owner.String(),
	})
	require.NoError(t, err)
	assert.Equal(t, job.ID.String(), resp.GetJobId())
	engine.Wait()

	// The upload's PENDING row was consumed, not duplicated.
	pending, err := store.PendingJobForDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Nil(t, pending)

	stored, err := store.JobByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusCompleted, stored.Status)
}

func TestStartProcessingIdempotentWhileRunning(t *testing.T) {
	store, _, _, svc := newServiceFixture(t)
	owner := uuid.New()
	doc, job := seedDocument(t, store, owner)

	running := constants.JobStatusRunning
	started := time.Now().UTC()
	require.NoError(t, store.UpdateJob(context.Background(), job.ID, repository.JobPatch{
		Status:    &running,
		StartedAt: &started,
	}))

	req := &docstreamv1.StartProcessingRequest{
		DocumentId: doc.ID.String(),
		OwnerId:    owner.String(),
	}
	first, err := svc.StartProcessing(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.StartProcessing(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, job.ID.String(), first.GetJobId())
	assert.Equal(t, first.GetJobId(), second.GetJobId())
	assert.Equal(t, docstreamv1.JobStatus_JOB_STATUS_RUNNING, second.GetStatus())

	// Neither call created a new row.
	pending, err := store.PendingJobForDocument(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Nil(t, pending)

	stored, err := store.JobByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusRunning, stored.Status)
}

func TestObserveProgressValidatesJobID(t *testing.T) {
	_, _, _, svc := newServiceFixture(t)
	stream := &progressStream{ctx: context.Background()}

	err := svc.ObserveProgress(&docstreamv1.ObserveProgressRequest{JobId: "not-a-uuid"}, stream)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())

	err = svc.ObserveProgress(&docstreamv1.ObserveProgressRequest{JobId: uuid.NewString()}, stream)
	st, ok = status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Empty(t, stream.sent)
}

func TestObserveProgressTerminalJobSendsOneUpdate(t *testing.T) {
	store, _, _, svc := newServiceFixture(t)
	_, job := seedDocument(t, store, uuid.New())

	completed := constants.JobStatusCompleted
	full := 100
	finished := time.Now().UTC()
	require.NoError(t, store.UpdateJob(context.Background(), job.ID, repository.JobPatch{
		Status:      &completed,
		Progress:    &full,
		CompletedAt: &finished,
	}))

	stream := &progressStream{ctx: context.Background()}
	require.NoError(t, svc.ObserveProgress(&docstreamv1.ObserveProgressRequest{JobId: job.ID.String()}, stream))

	require.Len(t, stream.sent, 1)
	assert.Equal(t, docstreamv1.JobStatus_JOB_STATUS_COMPLETED, stream.sent[0].GetStatus())
	assert.Equal(t, int32(100), stream.sent[0].GetProgress())
}

func TestObserveProgressForwardsUntilTerminal(t *testing.T) {
	store, b, _, svc := newServiceFixture(t)
	doc, job := seedDocument(t, store, uuid.New())

	stream := &progressStream{ctx: context.Background()}
	done := make(chan error, 1)
	go func() {
		done <- svc.ObserveProgress(&docstreamv1.ObserveProgressRequest{JobId: job.ID.String()}, stream)
	}()

	publish := func(jobStatus constants.JobStatus, progress int) int64 {
		payload, err := entity.ProgressEvent{
			JobID:       job.ID,
			DocumentID:  doc.ID,
			Status:      jobStatus,
			Progress:    progress,
			Message:     "Processing page 1 of 2",
			TotalPages:  2,
			PublishedAt: time.Now().UTC(),
		}.Encode()
		require.NoError(t, err)
		n, err := b.Publish(context.Background(), entity.ProgressChannel(job.ID), payload)
		require.NoError(t, err)
		return n
	}

	// Publish returns the receiver count, so repeat the RUNNING event until
	// the stream's subscription is attached.
	deadline := time.Now().Add(5 * time.Second)
	for publish(constants.JobStatusRunning, 48) == 0 {
		require.True(t, time.Now().Before(deadline), "stream never subscribed")
		time.Sleep(time.Millisecond)
	}
	publish(constants.JobStatusCompleted, 100)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not finish after terminal event")
	}

	require.NotEmpty(t, stream.sent)
	last := stream.sent[len(stream.sent)-1]
	assert.Equal(t, docstreamv1.JobStatus_JOB_STATUS_COMPLETED, last.GetStatus())
	assert.Equal(t, int32(100), last.GetProgress())
	for _, update := range stream.sent[:len(stream.sent)-1] {
		assert.Equal(t, docstreamv1.JobStatus_JOB_STATUS_RUNNING, update.GetStatus())
	}
}
