package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"paperbridge/internal/domain"
	"paperbridge/internal/port"
)

type ingestionAuditRepo struct {
	db *sqlx.DB
}

// NewIngestionAuditRepo creates a SQLite-backed IngestionAuditRepo.
func NewIngestionAuditRepo(db *sqlx.DB) port.IngestionAuditRepo {
	return &ingestionAuditRepo{db: db}
}

func (r *ingestionAuditRepo) Record(ctx context.Context, rec *domain.IngestionRecord) error {
	query := `INSERT INTO ingestions
		(id, external_id, source_url, document_id, is_new_entry, failure, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID.String(), rec.ExternalID, rec.SourceURL, rec.DocumentID,
		rec.IsNewEntry, rec.Failure, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("ingestionAuditRepo.Record: %w", err)
	}
	return nil
}

func (r *ingestionAuditRepo) List(ctx context.Context, offset, limit int) ([]domain.IngestionRecord, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM ingestions"); err != nil {
		return nil, 0, fmt.Errorf("ingestionAuditRepo.List count: %w", err)
	}

	var recs []domain.IngestionRecord
	err := r.db.SelectContext(ctx, &recs,
		`SELECT id, external_id, source_url, document_id, is_new_entry, failure, created_at
		 FROM ingestions
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("ingestionAuditRepo.List: %w", err)
	}
	return recs, total, nil
}

func (r *ingestionAuditRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
