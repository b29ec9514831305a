package port

import (
	"context"

	"paperbridge/internal/domain"
)

// IngestionAuditRepo records one row per workflow invocation. Recording is
// best-effort: a failed insert must never fail the ingestion itself.
type IngestionAuditRepo interface {
	Record(ctx context.Context, rec *domain.IngestionRecord) error
	List(ctx context.Context, offset, limit int) ([]domain.IngestionRecord, int, error)
	Ping(ctx context.Context) error
}
