package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/internal/bus"
	"github.com/docstreamhq/docstream/internal/entity"
	"github.com/docstreamhq/docstream/internal/repository"
)

func newFixture(t *testing.T) (*repository.MemoryStore, *bus.MemoryBus, *entity.Document, *entity.ProcessingJob) {
	t.Helper()
	store := repository.NewMemoryStore()
	b := bus.NewMemoryBus(0)
	t.Cleanup(func() { b.Close() })

	doc, job, err := store.CreateDocumentWithJob(context.Background(), repository.CreateDocumentParams{
		OwnerID:    uuid.New(),
		Title:      "quarterly report",
		StorageKey: "2026/abc-quarterly-report.pdf",
		MimeType:   "application/pdf",
		FileSize:   1024,
	})
	require.NoError(t, err)
	return store, b, doc, job
}

func collectUntilTerminal(t *testing.T, sub bus.Subscription) []entity.ProgressEvent {
	t.Helper()
	var events []entity.ProgressEvent
	deadline := time.After(5 * time.Second)
	for {
		select {
		case payload, ok := <-sub.Events():
			require.True(t, ok, "subscription ended before a terminal event")
			event, err := entity.DecodeProgressEvent(payload)
			require.NoError(t, err)
			events = append(events, event)
			if event.Status.Terminal() {
				return events
			}
		case <-deadline:
			t.Fatal("timed out waiting for terminal event")
		}
	}
}

func TestEngineRunsJobToCompletion(t *testing.T) {
	store, b, doc, job := newFixture(t)
	const pages = 4

	sub, err := b.Subscribe(context.Background(), entity.ProgressChannel(job.ID))
	require.NoError(t, err)
	defer sub.Close()

	engine := NewEngine(store, b, nil, time.Millisecond, pages)
	engine.Start(job.ID, doc.ID)
	events := collectUntilTerminal(t, sub)
	engine.Wait()

	require.Len(t, events, pages+2)

	first := events[0]
	assert.Equal(t, constants.JobStatusRunning, first.Status)
	assert.Equal(t, 0, first.Progress)
	assert.Equal(t, 0, first.CurrentPage)
	assert.Equal(t, pages, first.TotalPages)
	assert.Equal(t, fmt.Sprintf("Processing started — %d pages queued", pages), first.Message)

	prev := 0
	for p := 1; p <= pages; p++ {
		event := events[p]
		assert.Equal(t, constants.JobStatusRunning, event.Status)
		assert.Equal(t, p, event.CurrentPage)
		assert.Equal(t, fmt.Sprintf("Processing page %d of %d", p, pages), event.Message)
		assert.GreaterOrEqual(t, event.Progress, prev)
		assert.Less(t, event.Progress, 100)
		prev = event.Progress
	}
	assert.Equal(t, 95, prev)

	last := events[len(events)-1]
	assert.Equal(t, constants.JobStatusCompleted, last.Status)
	assert.Equal(t, 100, last.Progress)
	assert.Equal(t, fmt.Sprintf("Processing complete — %d pages extracted", pages), last.Message)

	stored, err := store.JobByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusCompleted, stored.Status)
	assert.Equal(t, 100, stored.Progress)
	assert.NotNil(t, stored.StartedAt)
	assert.NotNil(t, stored.CompletedAt)

	storedDoc, err := store.DocumentByID(context.Background(), doc.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.DocumentStatusCompleted, storedDoc.Status)
	require.NotNil(t, storedDoc.PageCount)
	assert.Equal(t, pages, *storedDoc.PageCount)
}

func TestEngineWritesDurablyBeforePublishing(t *testing.T) {
	store, b, doc, job := newFixture(t)

	sub, err := b.Subscribe(context.Background(), entity.ProgressChannel(job.ID))
	require.NoError(t, err)
	defer sub.Close()

	engine := NewEngine(store, b, nil, time.Millisecond, 3)
	engine.Start(job.ID, doc.ID)
	events := collectUntilTerminal(t, sub)
	engine.Wait()

	// Every event reflects progress the store had already accepted, so a
	// reader reconciling against the row can never move backwards.
	for _, event := range events {
		stored, err := store.JobByID(context.Background(), job.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, stored.Progress, event.Progress)
	}
}

// flakyStore fails the first plain progress write and behaves afterwards.
type flakyStore struct {
	*repository.MemoryStore
	tripped bool
}

func (s *flakyStore) UpdateJob(ctx context.Context, jobID uuid.UUID, patch repository.JobPatch) error {
	if !s.tripped && patch.Status == nil && patch.Progress != nil {
		s.tripped = true
		return errors.New("connection reset")
	}
	return s.MemoryStore.UpdateJob(ctx, jobID, patch)
}

func TestEngineRecordsFailureTerminally(t *testing.T) {
	inner := repository.NewMemoryStore()
	store := &flakyStore{MemoryStore: inner}
	b := bus.NewMemoryBus(0)
	defer b.Close()

	doc, job, err := inner.CreateDocumentWithJob(context.Background(), repository.CreateDocumentParams{
		OwnerID:    uuid.New(),
		Title:      "doomed",
		StorageKey: "2026/doomed.pdf",
		MimeType:   "application/pdf",
		FileSize:   64,
	})
	require.NoError(t, err)

	sub, err := b.Subscribe(context.Background(), entity.ProgressChannel(job.ID))
	require.NoError(t, err)
	defer sub.Close()

	engine := NewEngine(store, b, nil, time.Millisecond, 3)
	engine.Start(job.ID, doc.ID)
	events := collectUntilTerminal(t, sub)
	engine.Wait()

	last := events[len(events)-1]
	assert.Equal(t, constants.JobStatusFailed, last.Status)
	assert.Equal(t, "connection reset", last.ErrorMessage)

	stored, err := inner.JobByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Equal(t, "connection reset", *stored.ErrorMessage)
	assert.NotNil(t, stored.CompletedAt)

	storedDoc, err := inner.DocumentByID(context.Background(), doc.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, constants.DocumentStatusFailed, storedDoc.Status)
}

// panicStore blows up on the second plain progress write, as a corrupted
// driver might.
type panicStore struct {
	*repository.MemoryStore
	progressWrites int
}

func (s *panicStore) UpdateJob(ctx context.Context, jobID uuid.UUID, patch repository.JobPatch) error {
	if patch.Status == nil && patch.Progress != nil {
		s.progressWrites++
		if s.progressWrites == 2 {
			panic("store corrupted")
		}
	}
	return s.MemoryStore.UpdateJob(ctx, jobID, patch)
}

func TestEnginePanicKeepsProgressMonotonic(t *testing.T) {
	inner := repository.NewMemoryStore()
	store := &panicStore{MemoryStore: inner}
	b := bus.NewMemoryBus(0)
	defer b.Close()

	doc, job, err := inner.CreateDocumentWithJob(context.Background(), repository.CreateDocumentParams{
		OwnerID:    uuid.New(),
		Title:      "cursed",
		StorageKey: "2026/cursed.pdf",
		MimeType:   "application/pdf",
		FileSize:   64,
	})
	require.NoError(t, err)

	sub, err := b.Subscribe(context.Background(), entity.ProgressChannel(job.ID))
	require.NoError(t, err)
	defer sub.Close()

	engine := NewEngine(store, b, nil, time.Millisecond, 3)
	engine.Start(job.ID, doc.ID)
	events := collectUntilTerminal(t, sub)
	engine.Wait()

	// The FAILED event must not report less progress than any event
	// already published on the stream.
	prev := 0
	for _, event := range events {
		assert.GreaterOrEqual(t, event.Progress, prev)
		prev = event.Progress
	}

	last := events[len(events)-1]
	assert.Equal(t, constants.JobStatusFailed, last.Status)
	assert.Equal(t, pageProgress(1, 3), last.Progress)
	assert.Contains(t, last.ErrorMessage, "panic")

	stored, err := inner.JobByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.JobStatusFailed, stored.Status)
	require.NotNil(t, stored.ErrorMessage)
	assert.Contains(t, *stored.ErrorMessage, "panic")
}

func TestPageProgressLadder(t *testing.T) {
	// Twelve pages is the default simulated document.
	want := []int{8, 16, 24, 32, 40, 48, 55, 63, 71, 79, 87, 95}
	for p := 1; p <= 12; p++ {
		assert.Equal(t, want[p-1], pageProgress(p, 12), "page %d", p)
	}
	// 100 is reserved for completion regardless of page count.
	for _, n := range []int{1, 5, 12, 400} {
		assert.Equal(t, 95, pageProgress(n, n))
	}
}
