package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/constants"
)

// ProcessingJob represents one processing attempt on a Document.
type ProcessingJob struct {
	ID           uuid.UUID           `json:"id"`
	DocumentID   uuid.UUID           `json:"document_id"`
	Status       constants.JobStatus `json:"status"`
	Progress     int                 `json:"progress"`
	Result       json.RawMessage     `json:"result,omitempty"`
	ErrorMessage *string             `json:"error_message,omitempty"`
	StartedAt    *time.Time          `json:"started_at,omitempty"`
	CompletedAt  *time.Time          `json:"completed_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}
