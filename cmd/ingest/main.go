// Command ingest runs a single ingestion from the command line and prints the
// result as JSON.
// Usage: go run ./cmd/ingest -url <pdf-url> -id <external-id> -token <api-token>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"paperbridge/internal/config"
	"paperbridge/internal/domain"
	"paperbridge/internal/extract"
	"paperbridge/internal/ingest"
	"paperbridge/internal/paperless"
	localstorage "paperbridge/internal/storage/local"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	sourceURL := flag.String("url", "", "source PDF URL")
	externalID := flag.String("id", "", "external identifier for the bookmark")
	token := flag.String("token", "", "document server API token")
	flag.Parse()

	if *externalID == "" || *token == "" {
		flag.Usage()
		return fmt.Errorf("id and token are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := localstorage.NewStore(cfg.Storage.Root)
	if err != nil {
		return fmt.Errorf("initializing local store: %w", err)
	}

	docs := paperless.NewClient(&cfg.Paperless)
	poller := ingest.NewPoller(docs, ingest.PollerConfig{
		Interval:    cfg.Ingest.PollInterval(),
		MaxAttempts: cfg.Ingest.PollMaxAttempts,
	})
	resolver := ingest.NewDuplicateResolver(cfg.Ingest.DuplicatePhrase)
	workflow := ingest.NewWorkflow(docs, store, extract.NewPDFExtractor(), resolver, poller, nil, ingest.WorkflowConfig{
		SkipExisting:      cfg.Ingest.SkipExisting,
		ReprocessExisting: cfg.Ingest.ReprocessExisting,
	})

	result := workflow.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  *sourceURL,
		ExternalID: *externalID,
		Token:      *token,
	})

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
