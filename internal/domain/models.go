package domain

import (
	"time"

	"github.com/google/uuid"
)

// IngestionRequest carries one processing request through the workflow.
// It lives for exactly one invocation and is never persisted.
type IngestionRequest struct {
	SourceURL  string
	ExternalID string
	Token      string
}

// IngestionTask is a snapshot of the document server's view of an in-flight
// ingestion. Only the server mutates it; the poller reads successive
// snapshots until a terminal status appears.
type IngestionTask struct {
	TaskID        string
	Status        TaskStatus
	ResultMessage string
	DocumentID    *int
}

// IngestionResult is the workflow's sole output. Invariant: IsNewEntry=true
// implies a non-nil DocumentID and non-empty ExtractedText.
//
// The three legacy fields keep their wire names for compatibility with
// existing callers; Failure is additive and empty on success.
type IngestionResult struct {
	IsNewEntry    bool        `json:"is_new_entry"`
	DocumentID    *int        `json:"document_id"`
	ExtractedText string      `json:"extracted_text"`
	Failure       FailureKind `json:"failure,omitempty"`
}

// IngestionRecord is one row of the ingestion audit log.
type IngestionRecord struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ExternalID string    `db:"external_id" json:"external_id"`
	SourceURL  string    `db:"source_url" json:"source_url"`
	DocumentID *int      `db:"document_id" json:"document_id"`
	IsNewEntry bool      `db:"is_new_entry" json:"is_new_entry"`
	Failure    string    `db:"failure" json:"failure,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
