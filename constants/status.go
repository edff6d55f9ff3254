package constants

// JobStatus is the canonical status for rows in processing_jobs.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusPending   JobStatus = "PENDING"   // created, not yet picked up by the engine
	JobStatusRunning   JobStatus = "RUNNING"   // in progress
	JobStatusCompleted JobStatus = "COMPLETED" // terminal success
	JobStatusFailed    JobStatus = "FAILED"    // terminal failure
)

// Terminal reports whether s is a terminal job status.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// DocumentStatus is the canonical status for rows in documents.
type DocumentStatus string

const (
	DocumentStatusUploaded   DocumentStatus = "UPLOADED"
	DocumentStatusProcessing DocumentStatus = "PROCESSING"
	DocumentStatusCompleted  DocumentStatus = "COMPLETED"
	DocumentStatusFailed     DocumentStatus = "FAILED"
)

// JobStatuses and DocumentStatuses back the ent schema enum validators.
var (
	JobStatuses      = []string{string(JobStatusPending), string(JobStatusRunning), string(JobStatusCompleted), string(JobStatusFailed)}
	DocumentStatuses = []string{string(DocumentStatusUploaded), string(DocumentStatusProcessing), string(DocumentStatusCompleted), string(DocumentStatusFailed)}
)
