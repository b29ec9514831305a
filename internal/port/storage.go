package port

import "context"

// ArtifactStore persists staged copies of documents. Originals are keyed by
// the caller's external id, archival copies by the document id the server
// assigned. Writes are last-writer-wins; nothing is ever deleted.
type ArtifactStore interface {
	SaveOriginal(ctx context.Context, externalID string, data []byte) (string, error)
	HasOriginal(ctx context.Context, externalID string) (bool, error)
	SaveArchive(ctx context.Context, documentID int, data []byte) (string, error)
}
