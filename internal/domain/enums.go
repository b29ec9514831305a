package domain

// TaskStatus represents the lifecycle of an ingestion task on the document
// server. The server may report statuses beyond the ones named here; any
// non-empty status other than PENDING and STARTED is treated as terminal.
type TaskStatus string

const (
	TaskStatusPending TaskStatus = "PENDING"
	TaskStatusStarted TaskStatus = "STARTED"
	TaskStatusSuccess TaskStatus = "SUCCESS"
	TaskStatusFailure TaskStatus = "FAILURE"
)

// IsTerminal reports whether a status ends the polling loop. An empty status
// is explicitly non-terminal: the server has not committed to an outcome yet,
// so the poller waits and re-queries instead of spinning or giving up.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case "", TaskStatusPending, TaskStatusStarted:
		return false
	}
	return true
}

// FailureKind categorizes workflow failures so callers can distinguish them
// without pattern-matching on empty result fields.
type FailureKind string

const (
	FailureTransport             FailureKind = "transport"
	FailureProtocol              FailureKind = "protocol"
	FailureProcessing            FailureKind = "processing"
	FailureDuplicateUnresolvable FailureKind = "duplicate_unresolvable"
	FailureExtraction            FailureKind = "extraction"
	FailureLocalIO               FailureKind = "local_io"
)
