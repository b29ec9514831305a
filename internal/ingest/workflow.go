// Package ingest implements the document ingestion workflow: upload, task
// polling, duplicate resolution, archival download, and text extraction.
package ingest

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"paperbridge/internal/domain"
	"paperbridge/internal/metrics"
	"paperbridge/internal/port"
)

// WorkflowConfig holds the ingestion policies.
type WorkflowConfig struct {
	// SkipExisting short-circuits when an original artifact already exists
	// for the external id. Off by default; uploads run unconditionally.
	SkipExisting bool
	// ReprocessExisting re-downloads and re-extracts text for a resolved
	// duplicate instead of only returning its identifier.
	ReprocessExisting bool
}

// Workflow orchestrates one ingestion from source URL to extracted text.
type Workflow struct {
	docs      port.DocumentService
	store     port.ArtifactStore
	extractor port.TextExtractor
	resolver  *DuplicateResolver
	poller    *Poller
	audit     port.IngestionAuditRepo // optional
	cfg       WorkflowConfig
}

// NewWorkflow creates a new Workflow. audit may be nil to disable the
// ingestion log.
func NewWorkflow(
	docs port.DocumentService,
	store port.ArtifactStore,
	extractor port.TextExtractor,
	resolver *DuplicateResolver,
	poller *Poller,
	audit port.IngestionAuditRepo,
	cfg WorkflowConfig,
) *Workflow {
	return &Workflow{
		docs:      docs,
		store:     store,
		extractor: extractor,
		resolver:  resolver,
		poller:    poller,
		audit:     audit,
		cfg:       cfg,
	}
}

// Run executes the ingestion and never returns an error: every failure path
// produces a result with IsNewEntry=false, the best-known document id, empty
// text, and a failure kind.
func (w *Workflow) Run(ctx context.Context, req domain.IngestionRequest) *domain.IngestionResult {
	start := time.Now()
	result, outcome := w.run(ctx, req)
	if outcome == "" {
		outcome = string(result.Failure)
	}

	metrics.ObserveIngestion(outcome, time.Since(start))
	w.recordAudit(ctx, req, result)
	log.Printf("workflow.Run: external_id=%s outcome=%s document_id=%v elapsed=%s",
		req.ExternalID, outcome, formatDocID(result.DocumentID), time.Since(start))

	return result
}

func (w *Workflow) run(ctx context.Context, req domain.IngestionRequest) (*domain.IngestionResult, string) {
	// An empty source URL is a no-op, not an error: return the all-empty
	// result without touching the network.
	if req.SourceURL == "" {
		return &domain.IngestionResult{}, metrics.OutcomeSkipped
	}

	if w.cfg.SkipExisting {
		exists, err := w.store.HasOriginal(ctx, req.ExternalID)
		if err != nil {
			log.Printf("workflow.run: existence check for %s failed: %v", req.ExternalID, err)
		} else if exists {
			return &domain.IngestionResult{}, metrics.OutcomeSkipped
		}
	}

	source, err := w.docs.FetchSource(ctx, req.SourceURL)
	if err != nil {
		log.Printf("workflow.run: fetching source for %s: %v", req.ExternalID, err)
		return failureResult(domain.ClassifyFailure(err), nil), ""
	}

	if _, err := w.store.SaveOriginal(ctx, req.ExternalID, source); err != nil {
		log.Printf("workflow.run: staging original for %s: %v", req.ExternalID, err)
		return failureResult(domain.FailureLocalIO, nil), ""
	}

	taskID, err := w.docs.UploadDocument(ctx, req.Token, req.ExternalID+".pdf", source)
	if err != nil {
		log.Printf("workflow.run: uploading %s: %v", req.ExternalID, err)
		return failureResult(domain.ClassifyFailure(err), nil), ""
	}

	task, err := w.poller.Poll(ctx, taskID, req.Token)
	if err != nil {
		log.Printf("workflow.run: polling task %s for %s: %v", taskID, req.ExternalID, err)
		return failureResult(domain.ClassifyFailure(err), nil), ""
	}

	documentID := task.DocumentID
	wasDuplicate := false

	if task.Status == domain.TaskStatusFailure {
		if !w.resolver.IsDuplicate(task.ResultMessage) {
			log.Printf("workflow.run: task %s failed: %s", taskID, task.ResultMessage)
			return failureResult(domain.FailureProcessing, task.DocumentID), ""
		}

		existingID, ok := w.resolver.ExtractExistingID(task.ResultMessage)
		if !ok {
			log.Printf("workflow.run: duplicate message for task %s carries no id: %s", taskID, task.ResultMessage)
			return failureResult(domain.FailureDuplicateUnresolvable, task.DocumentID), ""
		}

		documentID = &existingID
		wasDuplicate = true
		if !w.cfg.ReprocessExisting {
			return &domain.IngestionResult{DocumentID: documentID}, metrics.OutcomeDuplicate
		}
	}

	if documentID == nil {
		log.Printf("workflow.run: task %s terminal (%s) without a document id", taskID, task.Status)
		return failureResult(domain.FailureProtocol, nil), ""
	}

	// Always the processed archival copy, never the original upload.
	archive, err := w.docs.DownloadDocument(ctx, req.Token, *documentID, false)
	if err != nil {
		log.Printf("workflow.run: downloading document %d: %v", *documentID, err)
		return failureResult(domain.ClassifyFailure(err), documentID), ""
	}

	// Archival copies are shared per document, so the scratch file is keyed
	// by document id, not by the caller's external id.
	if _, err := w.store.SaveArchive(ctx, *documentID, archive); err != nil {
		log.Printf("workflow.run: staging archive for document %d: %v", *documentID, err)
		return failureResult(domain.FailureLocalIO, documentID), ""
	}

	text, err := w.extractor.Extract(ctx, archive)
	if err != nil || text == "" {
		log.Printf("workflow.run: extracting document %d: %v", *documentID, err)
		return failureResult(domain.FailureExtraction, documentID), ""
	}

	outcome := metrics.OutcomeNew
	if wasDuplicate {
		outcome = metrics.OutcomeDuplicate
	}
	return &domain.IngestionResult{
		IsNewEntry:    true,
		DocumentID:    documentID,
		ExtractedText: text,
	}, outcome
}

func (w *Workflow) recordAudit(ctx context.Context, req domain.IngestionRequest, res *domain.IngestionResult) {
	if w.audit == nil {
		return
	}
	rec := &domain.IngestionRecord{
		ID:         uuid.New(),
		ExternalID: req.ExternalID,
		SourceURL:  req.SourceURL,
		DocumentID: res.DocumentID,
		IsNewEntry: res.IsNewEntry,
		Failure:    string(res.Failure),
		CreatedAt:  time.Now().UTC(),
	}
	if err := w.audit.Record(ctx, rec); err != nil {
		log.Printf("workflow.recordAudit: %v", err)
	}
}

func failureResult(kind domain.FailureKind, documentID *int) *domain.IngestionResult {
	return &domain.IngestionResult{
		DocumentID: documentID,
		Failure:    kind,
	}
}

func formatDocID(id *int) interface{} {
	if id == nil {
		return "none"
	}
	return *id
}
