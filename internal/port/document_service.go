package port

import (
	"context"

	"paperbridge/internal/domain"
)

// DocumentService is the boundary to the external document server and to
// arbitrary source URLs. The token is supplied per call; the bridge holds no
// credentials of its own.
type DocumentService interface {
	// FetchSource downloads the raw PDF bytes behind an arbitrary URL.
	// No authentication is sent.
	FetchSource(ctx context.Context, url string) ([]byte, error)

	// UploadDocument submits the document for ingestion and returns the
	// opaque task id assigned by the server.
	UploadDocument(ctx context.Context, token, filename string, data []byte) (string, error)

	// GetTask queries the status of an ingestion task. The first record of
	// the server's task list is authoritative.
	GetTask(ctx context.Context, token, taskID string) (*domain.IngestionTask, error)

	// DownloadDocument fetches a stored document's bytes. With original set
	// it returns the pre-processing upload instead of the archival copy.
	DownloadDocument(ctx context.Context, token string, documentID int, original bool) ([]byte, error)
}
