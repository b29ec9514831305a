package ingest

import (
	"context"
	"fmt"
	"log"
	"time"

	"paperbridge/internal/domain"
	"paperbridge/internal/metrics"
	"paperbridge/internal/port"
)

// PollerConfig holds settings for the task poller.
type PollerConfig struct {
	// Interval between non-terminal polls. Defaults to 5s.
	Interval time.Duration
	// MaxAttempts bounds the loop; 0 keeps the legacy unbounded behavior.
	MaxAttempts int
}

// Poller queries an ingestion task until it reaches a terminal status.
type Poller struct {
	docs port.DocumentService
	cfg  PollerConfig
}

// NewPoller creates a new Poller.
func NewPoller(docs port.DocumentService, cfg PollerConfig) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Second
	}
	return &Poller{docs: docs, cfg: cfg}
}

// Poll blocks until the task reaches a terminal status, an unrecoverable
// transport or protocol error occurs, the attempt bound is exhausted, or ctx
// is canceled. Transport and protocol errors are returned immediately and
// never retried.
//
// A PENDING, STARTED, or empty status is non-terminal; the poller sleeps one
// interval and re-queries. The empty-status case sleeps too, so a server that
// briefly reports a blank status is retried instead of busy-looped.
func (p *Poller) Poll(ctx context.Context, taskID, token string) (*domain.IngestionTask, error) {
	attempts := 0
	for {
		attempts++
		metrics.PollAttemptsTotal.Inc()

		task, err := p.docs.GetTask(ctx, token, taskID)
		if err != nil {
			return nil, fmt.Errorf("polling task %s: %w", taskID, err)
		}
		if task.Status.IsTerminal() {
			return task, nil
		}

		if p.cfg.MaxAttempts > 0 && attempts >= p.cfg.MaxAttempts {
			return nil, fmt.Errorf("task %s still %q after %d attempts: %w",
				taskID, task.Status, attempts, domain.ErrTransport)
		}

		log.Printf("poller.Poll: task %s status %q, re-polling in %s", taskID, task.Status, p.cfg.Interval)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("polling task %s: %w: %v", taskID, domain.ErrTransport, ctx.Err())
		case <-time.After(p.cfg.Interval):
		}
	}
}
