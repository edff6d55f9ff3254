package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/docstreamhq/docstream/constants"
)

// Document represents an uploaded artifact for data transfer between layers.
type Document struct {
	ID         uuid.UUID                `json:"id"`
	OwnerID    uuid.UUID                `json:"owner_id"`
	Title      string                   `json:"title"`
	StorageKey string                   `json:"storage_key"`
	MimeType   string                   `json:"mime_type"`
	FileSize   int64                    `json:"file_size"`
	Status     constants.DocumentStatus `json:"status"`
	PageCount  *int                     `json:"page_count,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}
