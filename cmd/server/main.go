package main

import (
	"fmt"
	"log"

	"paperbridge/internal/config"
	"paperbridge/internal/extract"
	"paperbridge/internal/handler"
	"paperbridge/internal/ingest"
	"paperbridge/internal/llm/claude"
	"paperbridge/internal/paperless"
	"paperbridge/internal/port"
	"paperbridge/internal/repository/sqlite"
	"paperbridge/internal/router"
	localstorage "paperbridge/internal/storage/local"
	s3storage "paperbridge/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Ingestion audit log (optional)
	var audit port.IngestionAuditRepo
	if cfg.Audit.Enabled {
		db, err := sqlite.NewDB(cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("failed to open audit db: %w", err)
		}
		defer func() { _ = db.Close() }()
		audit = sqlite.NewIngestionAuditRepo(db)
	}

	// Artifact staging
	var store port.ArtifactStore
	switch cfg.Storage.Backend {
	case "s3":
		store, err = s3storage.NewStore(&cfg.Storage.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize s3 store: %w", err)
		}
	default:
		store, err = localstorage.NewStore(cfg.Storage.Root)
		if err != nil {
			return fmt.Errorf("failed to initialize local store: %w", err)
		}
	}

	// Core services
	docs := paperless.NewClient(&cfg.Paperless)
	poller := ingest.NewPoller(docs, ingest.PollerConfig{
		Interval:    cfg.Ingest.PollInterval(),
		MaxAttempts: cfg.Ingest.PollMaxAttempts,
	})
	resolver := ingest.NewDuplicateResolver(cfg.Ingest.DuplicatePhrase)
	workflow := ingest.NewWorkflow(docs, store, extract.NewPDFExtractor(), resolver, poller, audit, ingest.WorkflowConfig{
		SkipExisting:      cfg.Ingest.SkipExisting,
		ReprocessExisting: cfg.Ingest.ReprocessExisting,
	})
	completion := claude.NewClient(&cfg.LLM)

	// Handlers
	ingestH := handler.NewIngestHandler(workflow, audit)
	suggestH := handler.NewSuggestHandler(completion)
	healthH := handler.NewHealthHandler(audit)

	r := router.Setup(cfg, ingestH, suggestH, healthH)

	log.Printf("Server starting on %s (document server: %s)", cfg.Server.Port, cfg.Paperless.BaseURL)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
