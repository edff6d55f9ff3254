package entity

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/constants"
)

// ProgressEvent is the ephemeral wire shape published on the event channel.
// It is never persisted; the processing_jobs row stays authoritative.
type ProgressEvent struct {
	JobID        uuid.UUID           `json:"jobId"`
	DocumentID   uuid.UUID           `json:"documentId"`
	Status       constants.JobStatus `json:"status"`
	Progress     int                 `json:"progress"`
	Message      string              `json:"message"`
	CurrentPage  int                 `json:"currentPage"`
	TotalPages   int                 `json:"totalPages"`
	ErrorMessage string              `json:"errorMessage,omitempty"`
	PublishedAt  time.Time           `json:"publishedAt"`
}

// ProgressChannel returns the channel key progress events for jobID travel on.
// The key is stable across restarts of both producer and consumer.
func ProgressChannel(jobID uuid.UUID) string {
	return fmt.Sprintf("doc:%s:progress", jobID)
}

// Encode serializes the event for the bus.
func (e ProgressEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// DecodeProgressEvent parses a bus payload. Callers log and skip malformed
// payloads rather than tearing down their subscription.
func DecodeProgressEvent(payload []byte) (ProgressEvent, error) {
	var e ProgressEvent
	if err := json.Unmarshal(payload, &e); err != nil {
		return ProgressEvent{}, fmt.Errorf("decode progress event: %w", err)
	}
	return e, nil
}
