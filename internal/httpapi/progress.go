package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/constants"
	"github.com/docstreamhq/docstream/internal/bus"
	"github.com/docstreamhq/docstream/internal/entity"
	"github.com/docstreamhq/docstream/internal/repository"
)

// ProgressHandler serves one Server-Sent Events stream per connection:
// durable snapshot first, then live events from the channel until the job
// is terminal, the client leaves, the lifetime expires, or the
// subscription dies. Every exit path runs the same teardown once.
type ProgressHandler struct {
	Store       repository.Store
	Bus         bus.Bus
	Logger      *slog.Logger
	Heartbeat   time.Duration
	MaxLifetime time.Duration
	RetryMillis int
}

// streamPayload is the data JSON of progress/error frames.
type streamPayload struct {
	JobID        string `json:"jobId"`
	DocumentID   string `json:"documentId,omitempty"`
	Percent      int    `json:"percent"`
	Stage        string `json:"stage"`
	Message      string `json:"message"`
	CurrentPage  int    `json:"currentPage"`
	TotalPages   int    `json:"totalPages"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Timestamp    string `json:"timestamp"`
}

type timeoutPayload struct {
	JobID   string `json:"jobId"`
	Message string `json:"message"`
}

var errStreamClosed = errors.New("stream closed")

// Stream handles GET /documents/:jobID/progress.
func (h *ProgressHandler) Stream(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("jobID"))
	if err != nil {
		abortJSON(c, http.StatusNotFound, "Job not found")
		return
	}

	job, err := h.Store.JobByID(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortJSON(c, http.StatusNotFound, "Job not found")
			return
		}
		h.Logger.Error("job lookup failed", "job_id", jobID, "err", err)
		abortJSON(c, http.StatusInternalServerError, "Job lookup failed")
		return
	}

	// Commit to the push-stream media type only once the job is known.
	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	conn := newStreamConn(c.Writer)
	defer conn.close()

	if err := conn.writeRetry(h.RetryMillis); err != nil {
		return
	}
	if err := conn.writeEvent("progress", h.snapshotPayload(job)); err != nil {
		return
	}
	if job.Status.Terminal() {
		// Terminal on open: one frame, no subscription.
		return
	}

	sub, err := h.Bus.Subscribe(c.Request.Context(), entity.ProgressChannel(jobID))
	if err != nil {
		h.Logger.Error("subscribe failed", "job_id", jobID, "err", err)
		_ = conn.writeEvent("error", h.errorPayload(jobID, err))
		return
	}
	defer sub.Close()

	heartbeat := time.NewTicker(h.Heartbeat)
	defer heartbeat.Stop()
	lifetime := time.NewTimer(h.MaxLifetime)
	defer lifetime.Stop()
	clientGone := c.Request.Context().Done()

	for {
		select {
		case <-clientGone:
			// Transport close; the deferred sub.Close() unsubscribes now.
			return
		case <-lifetime.C:
			_ = conn.writeEvent("timeout", timeoutPayload{
				JobID:   jobID.String(),
				Message: "Stream timed out — please reconnect or check job status via API",
			})
			return
		case <-heartbeat.C:
			if err := conn.writeHeartbeat(); err != nil {
				return
			}
		case payload, ok := <-sub.Events():
			if !ok {
				_ = conn.writeEvent("error", h.errorPayload(jobID, sub.Err()))
				return
			}
			event, err := entity.DecodeProgressEvent(payload)
			if err != nil {
				h.Logger.Warn("skipping malformed progress event", "job_id", jobID, "err", err)
				continue
			}
			if err := conn.writeEvent("progress", payloadFromEvent(event)); err != nil {
				return
			}
			if event.Status.Terminal() {
				return
			}
		}
	}
}

// snapshotPayload builds the first frame from the stored row.
func (h *ProgressHandler) snapshotPayload(job *entity.ProcessingJob) streamPayload {
	var message string
	switch job.Status {
	case constants.JobStatusPending:
		message = "Job is queued for processing"
	case constants.JobStatusRunning:
		message = fmt.Sprintf("Processing in progress — %d%% complete", job.Progress)
	case constants.JobStatusCompleted:
		message = "Processing completed successfully"
	case constants.JobStatusFailed:
		message = "Processing failed"
		if job.ErrorMessage != nil && *job.ErrorMessage != "" {
			message = *job.ErrorMessage
		}
	}

	timestamp := job.UpdatedAt
	if timestamp.IsZero() {
		timestamp = job.CreatedAt
	}
	payload := streamPayload{
		JobID:      job.ID.String(),
		DocumentID: job.DocumentID.String(),
		Percent:    job.Progress,
		Stage:      strings.ToUpper(string(job.Status)),
		Message:    message,
		Timestamp:  timestamp.UTC().Format(time.RFC3339),
	}
	if job.ErrorMessage != nil {
		payload.ErrorMessage = *job.ErrorMessage
	}
	return payload
}

func (h *ProgressHandler) errorPayload(jobID uuid.UUID, cause error) streamPayload {
	payload := streamPayload{
		JobID:     jobID.String(),
		Stage:     "FAILED",
		Percent:   0,
		Message:   "Stream error — please retry",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if cause != nil {
		payload.ErrorMessage = cause.Error()
	}
	return payload
}

func payloadFromEvent(event entity.ProgressEvent) streamPayload {
	return streamPayload{
		JobID:        event.JobID.String(),
		DocumentID:   event.DocumentID.String(),
		Percent:      event.Progress,
		Stage:        strings.ToUpper(string(event.Status)),
		Message:      event.Message,
		CurrentPage:  event.CurrentPage,
		TotalPages:   event.TotalPages,
		ErrorMessage: event.ErrorMessage,
		Timestamp:    event.PublishedAt.UTC().Format(time.RFC3339),
	}
}

// streamConn serializes SSE frames onto one response. The counter starts
// at 1 and only progress/timeout/error frames consume it; heartbeats are
// bare comments. closed is single-shot so late timers cannot write into a
// finished response.
type streamConn struct {
	writer  gin.ResponseWriter
	counter int
	closed  atomic.Bool
}

func newStreamConn(w gin.ResponseWriter) *streamConn {
	return &streamConn{writer: w}
}

func (s *streamConn) writeRetry(millis int) error {
	if s.closed.Load() {
		return errStreamClosed
	}
	if _, err := fmt.Fprintf(s.writer, "retry: %d\n\n", millis); err != nil {
		return err
	}
	s.writer.Flush()
	return nil
}

func (s *streamConn) writeEvent(name string, payload any) error {
	if s.closed.Load() {
		return errStreamClosed
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	s.counter++
	if _, err := fmt.Fprintf(s.writer, "id: %d\nevent: %s\ndata: %s\n\n", s.counter, name, data); err != nil {
		return err
	}
	s.writer.Flush()
	return nil
}

func (s *streamConn) writeHeartbeat() error {
	if s.closed.Load() {
		return errStreamClosed
	}
	if _, err := fmt.Fprint(s.writer, ": heartbeat\n\n"); err != nil {
		return err
	}
	s.writer.Flush()
	return nil
}

func (s *streamConn) close() {
	s.closed.Store(true)
}
