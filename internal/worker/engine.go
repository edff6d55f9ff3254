// Package worker runs accepted processing jobs in the background and
// reports per-page progress to the durable store and the event channel.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/internal/bus"
	"github.com/docstreamhq/docstream/internal/entity"
	"github.com/docstreamhq/docstream/internal/repository"
)

// Engine executes processing jobs. Each accepted job runs on its own
// goroutine; tasks share nothing but the store and the bus. A crashing
// task is captured and recorded as a FAILED job, never a process panic.
type Engine struct {
	store     repository.Store
	bus       bus.Bus
	logger    *slog.Logger
	pageDelay time.Duration
	pageCount int
	wg        sync.WaitGroup
}

func NewEngine(store repository.Store, b bus.Bus, logger *slog.Logger, pageDelay time.Duration, pageCount int) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if pageDelay <= 0 {
		pageDelay = 400 * time.Millisecond
	}
	if pageCount <= 0 {
		pageCount = 12
	}
	return &Engine{
		store:     store,
		bus:       b,
		logger:    logger,
		pageDelay: pageDelay,
		pageCount: pageCount,
	}
}

// Start launches the execution task for jobID and returns immediately.
func (e *Engine) Start(jobID, documentID uuid.UUID) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		// run keeps progress current with every durable write so the
		// terminal FAILED event never reports less than an event already
		// published, even when the task dies by panic.
		progress := 0
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("engine task panicked", "job_id", jobID, "panic", r)
				e.fail(jobID, documentID, progress, fmt.Errorf("task panic: %v", r))
			}
		}()
		if err := e.run(context.Background(), jobID, documentID, &progress); err != nil {
			e.fail(jobID, documentID, progress, err)
		}
	}()
}

// Wait blocks until all launched tasks finish. Shutdown does not call it;
// abandoned RUNNING jobs are safe to re-drive.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// run executes the page loop. For every step the durable write happens
// before the event publish, so a late subscriber can always re-read the
// store and reconcile. progress mirrors the last persisted value for the
// caller's failure handling.
func (e *Engine) run(ctx context.Context, jobID, documentID uuid.UUID, progress *int) error {
	n := e.pageCount
	started := time.Now().UTC()
	running := constants.JobStatusRunning
	zero := 0
	if err := e.store.UpdateJob(ctx, jobID, repository.JobPatch{
		Status:    &running,
		Progress:  &zero,
		StartedAt: &started,
	}); err != nil {
		return err
	}
	e.logger.Info("job started", "job_id", jobID, "document_id", documentID, "pages", n)
	e.publish(ctx, entity.ProgressEvent{
		JobID:       jobID,
		DocumentID:  documentID,
		Status:      constants.JobStatusRunning,
		Progress:    0,
		Message:     fmt.Sprintf("Processing started — %d pages queued", n),
		CurrentPage: 0,
		TotalPages:  n,
	})

	for p := 1; p <= n; p++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.pageDelay):
		}
		next := pageProgress(p, n)
		if err := e.store.UpdateJob(ctx, jobID, repository.JobPatch{Progress: &next}); err != nil {
			return err
		}
		*progress = next
		e.publish(ctx, entity.ProgressEvent{
			JobID:       jobID,
			DocumentID:  documentID,
			Status:      constants.JobStatusRunning,
			Progress:    next,
			Message:     fmt.Sprintf("Processing page %d of %d", p, n),
			CurrentPage: p,
			TotalPages:  n,
		})
	}

	completed := constants.JobStatusCompleted
	full := 100
	finished := time.Now().UTC()
	if err := e.store.UpdateJob(ctx, jobID, repository.JobPatch{
		Status:      &completed,
		Progress:    &full,
		CompletedAt: &finished,
	}); err != nil {
		return err
	}
	*progress = 100
	docStatus := constants.DocumentStatusCompleted
	if err := e.store.UpdateDocument(ctx, documentID, repository.DocumentPatch{
		Status:    &docStatus,
		PageCount: &n,
	}); err != nil {
		return err
	}
	e.logger.Info("job completed", "job_id", jobID, "document_id", documentID, "pages", n)
	e.publish(ctx, entity.ProgressEvent{
		JobID:       jobID,
		DocumentID:  documentID,
		Status:      constants.JobStatusCompleted,
		Progress:    100,
		Message:     fmt.Sprintf("Processing complete — %d pages extracted", n),
		CurrentPage: n,
		TotalPages:  n,
	})
	return nil
}

// fail records the terminal failure. The durable write comes first; if it
// fails too, both errors are logged and the task exits.
func (e *Engine) fail(jobID, documentID uuid.UUID, progress int, cause error) {
	ctx := context.Background()
	msg := cause.Error()
	e.logger.Error("job failed", "job_id", jobID, "document_id", documentID, "err", cause)

	failed := constants.JobStatusFailed
	now := time.Now().UTC()
	if err := e.store.UpdateJob(ctx, jobID, repository.JobPatch{
		Status:       &failed,
		ErrorMessage: &msg,
		CompletedAt:  &now,
	}); err != nil {
		e.logger.Error("persisting job failure failed", "job_id", jobID, "cause", msg, "err", err)
	}
	docStatus := constants.DocumentStatusFailed
	if err := e.store.UpdateDocument(ctx, documentID, repository.DocumentPatch{Status: &docStatus}); err != nil {
		e.logger.Error("persisting document failure failed", "document_id", documentID, "err", err)
	}

	e.publish(ctx, entity.ProgressEvent{
		JobID:        jobID,
		DocumentID:   documentID,
		Status:       constants.JobStatusFailed,
		Progress:     progress,
		Message:      "Processing failed",
		ErrorMessage: msg,
		CurrentPage:  0,
		TotalPages:   e.pageCount,
	})
}

// publish is best-effort; the store row already carries the same state.
func (e *Engine) publish(ctx context.Context, event entity.ProgressEvent) {
	event.PublishedAt = time.Now().UTC()
	payload, err := event.Encode()
	if err != nil {
		e.logger.Warn("encode progress event failed", "job_id", event.JobID, "err", err)
		return
	}
	if _, err := e.bus.Publish(ctx, entity.ProgressChannel(event.JobID), payload); err != nil {
		e.logger.Warn("publish progress event failed", "job_id", event.JobID, "err", err)
	}
}

// pageProgress reserves 100 for the completion step so RUNNING events stay
// strictly below it.
func pageProgress(page, total int) int {
	return int(math.Round(float64(page) * 95.0 / float64(total)))
}
