package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"paperbridge/internal/domain"
	"paperbridge/internal/ingest"
	"paperbridge/mocks"
)

func intPtr(i int) *int { return &i }

func setupWorkflow(cfg ingest.WorkflowConfig) (
	*ingest.Workflow,
	*mocks.MockDocumentService,
	*mocks.MockArtifactStore,
	*mocks.MockTextExtractor,
) {
	docs := new(mocks.MockDocumentService)
	store := new(mocks.MockArtifactStore)
	extractor := new(mocks.MockTextExtractor)
	poller := ingest.NewPoller(docs, ingest.PollerConfig{Interval: 5 * time.Millisecond})
	resolver := ingest.NewDuplicateResolver("")
	wf := ingest.NewWorkflow(docs, store, extractor, resolver, poller, nil, cfg)
	return wf, docs, store, extractor
}

func TestWorkflow_EmptySourceURL(t *testing.T) {
	wf, docs, store, _ := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	result := wf.Run(context.Background(), domain.IngestionRequest{
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Nil(t, result.DocumentID)
	assert.Empty(t, result.ExtractedText)
	assert.Empty(t, result.Failure)
	docs.AssertNotCalled(t, "FetchSource", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "SaveOriginal", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_SkipExisting(t *testing.T) {
	wf, docs, store, _ := setupWorkflow(ingest.WorkflowConfig{SkipExisting: true, ReprocessExisting: true})

	store.On("HasOriginal", mock.Anything, "bm-1").Return(true, nil)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Nil(t, result.DocumentID)
	assert.Empty(t, result.ExtractedText)
	docs.AssertNotCalled(t, "FetchSource", mock.Anything, mock.Anything)
}

func TestWorkflow_FetchSourceFailure(t *testing.T) {
	wf, docs, _, _ := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	docs.On("FetchSource", mock.Anything, "https://example.com/a.pdf").
		Return(nil, domain.ErrTransport)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Nil(t, result.DocumentID)
	assert.Empty(t, result.ExtractedText)
	assert.Equal(t, domain.FailureTransport, result.Failure)
}

func TestWorkflow_UploadFailure(t *testing.T) {
	wf, docs, store, _ := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	pdf := []byte("%PDF-1.4 content")
	docs.On("FetchSource", mock.Anything, "https://example.com/a.pdf").Return(pdf, nil)
	store.On("SaveOriginal", mock.Anything, "bm-1", pdf).Return("data/originals/bm-1.pdf", nil)
	docs.On("UploadDocument", mock.Anything, "tok", "bm-1.pdf", pdf).
		Return("", domain.ErrTransport)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Nil(t, result.DocumentID)
	assert.Empty(t, result.ExtractedText)
	assert.Equal(t, domain.FailureTransport, result.Failure)
	docs.AssertNotCalled(t, "GetTask", mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_PollingProtocolFailure(t *testing.T) {
	wf, docs, store, _ := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	pdf := []byte("%PDF-1.4 content")
	docs.On("FetchSource", mock.Anything, mock.Anything).Return(pdf, nil)
	store.On("SaveOriginal", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	docs.On("UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("task-1", nil)
	docs.On("GetTask", mock.Anything, "tok", "task-1").Return(nil, domain.ErrProtocol)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Nil(t, result.DocumentID)
	assert.Equal(t, domain.FailureProtocol, result.Failure)
}

func TestWorkflow_ProcessingFailureNonDuplicate(t *testing.T) {
	wf, docs, store, _ := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	pdf := []byte("%PDF-1.4 content")
	docs.On("FetchSource", mock.Anything, mock.Anything).Return(pdf, nil)
	store.On("SaveOriginal", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	docs.On("UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("task-1", nil)
	docs.On("GetTask", mock.Anything, "tok", "task-1").Return(&domain.IngestionTask{
		TaskID:        "task-1",
		Status:        domain.TaskStatusFailure,
		ResultMessage: "Document is corrupt and could not be consumed",
		DocumentID:    intPtr(55),
	}, nil)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Equal(t, 55, *result.DocumentID)
	assert.Empty(t, result.ExtractedText)
	assert.Equal(t, domain.FailureProcessing, result.Failure)
	docs.AssertNotCalled(t, "DownloadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_DuplicateUnresolvable(t *testing.T) {
	wf, docs, store, _ := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	pdf := []byte("%PDF-1.4 content")
	docs.On("FetchSource", mock.Anything, mock.Anything).Return(pdf, nil)
	store.On("SaveOriginal", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	docs.On("UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("task-1", nil)
	docs.On("GetTask", mock.Anything, "tok", "task-1").Return(&domain.IngestionTask{
		TaskID:        "task-1",
		Status:        domain.TaskStatusFailure,
		ResultMessage: "It is a duplicate of file.pdf",
	}, nil)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Nil(t, result.DocumentID)
	assert.Empty(t, result.ExtractedText)
	assert.Equal(t, domain.FailureDuplicateUnresolvable, result.Failure)
}

func TestWorkflow_DuplicateReprocess(t *testing.T) {
	wf, docs, store, extractor := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	pdf := []byte("%PDF-1.4 content")
	archive := []byte("%PDF-1.7 archival copy")
	docs.On("FetchSource", mock.Anything, mock.Anything).Return(pdf, nil)
	store.On("SaveOriginal", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	docs.On("UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("task-1", nil)
	docs.On("GetTask", mock.Anything, "tok", "task-1").Return(&domain.IngestionTask{
		TaskID:        "task-1",
		Status:        domain.TaskStatusFailure,
		ResultMessage: "Not consumed: It is a duplicate of INV-2024.pdf (#917)",
	}, nil)
	docs.On("DownloadDocument", mock.Anything, "tok", 917, false).Return(archive, nil)
	store.On("SaveArchive", mock.Anything, 917, archive).Return("data/archive/917.pdf", nil)
	extractor.On("Extract", mock.Anything, archive).Return("Invoice total 42.00 EUR", nil)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.True(t, result.IsNewEntry)
	assert.Equal(t, 917, *result.DocumentID)
	assert.Equal(t, "Invoice total 42.00 EUR", result.ExtractedText)
	assert.Empty(t, result.Failure)
}

func TestWorkflow_DuplicateWithoutReprocess(t *testing.T) {
	wf, docs, store, _ := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: false})

	pdf := []byte("%PDF-1.4 content")
	docs.On("FetchSource", mock.Anything, mock.Anything).Return(pdf, nil)
	store.On("SaveOriginal", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	docs.On("UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("task-1", nil)
	docs.On("GetTask", mock.Anything, "tok", "task-1").Return(&domain.IngestionTask{
		TaskID:        "task-1",
		Status:        domain.TaskStatusFailure,
		ResultMessage: "Not consumed: It is a duplicate of INV-2024.pdf (#917)",
	}, nil)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Equal(t, 917, *result.DocumentID)
	assert.Empty(t, result.ExtractedText)
	assert.Empty(t, result.Failure)
	docs.AssertNotCalled(t, "DownloadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWorkflow_DownloadFailure(t *testing.T) {
	wf, docs, store, _ := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	pdf := []byte("%PDF-1.4 content")
	docs.On("FetchSource", mock.Anything, mock.Anything).Return(pdf, nil)
	store.On("SaveOriginal", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	docs.On("UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("task-1", nil)
	docs.On("GetTask", mock.Anything, "tok", "task-1").Return(&domain.IngestionTask{
		TaskID:     "task-1",
		Status:     domain.TaskStatusSuccess,
		DocumentID: intPtr(12),
	}, nil)
	docs.On("DownloadDocument", mock.Anything, "tok", 12, false).
		Return(nil, domain.ErrTransport)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Equal(t, 12, *result.DocumentID)
	assert.Empty(t, result.ExtractedText)
	assert.Equal(t, domain.FailureTransport, result.Failure)
}

func TestWorkflow_ExtractionEmptyOutput(t *testing.T) {
	wf, docs, store, extractor := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	pdf := []byte("%PDF-1.4 content")
	archive := []byte("%PDF-1.7 archival copy")
	docs.On("FetchSource", mock.Anything, mock.Anything).Return(pdf, nil)
	store.On("SaveOriginal", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	docs.On("UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("task-1", nil)
	docs.On("GetTask", mock.Anything, "tok", "task-1").Return(&domain.IngestionTask{
		TaskID:     "task-1",
		Status:     domain.TaskStatusSuccess,
		DocumentID: intPtr(12),
	}, nil)
	docs.On("DownloadDocument", mock.Anything, "tok", 12, false).Return(archive, nil)
	store.On("SaveArchive", mock.Anything, 12, archive).Return("", nil)
	extractor.On("Extract", mock.Anything, archive).Return("", nil)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Equal(t, 12, *result.DocumentID)
	assert.Empty(t, result.ExtractedText)
	assert.Equal(t, domain.FailureExtraction, result.Failure)
}

func TestWorkflow_Success(t *testing.T) {
	wf, docs, store, extractor := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	pdf := []byte("%PDF-1.4 content")
	archive := []byte("%PDF-1.7 archival copy")
	docs.On("FetchSource", mock.Anything, "https://example.com/a.pdf").Return(pdf, nil)
	store.On("SaveOriginal", mock.Anything, "bm-1", pdf).Return("", nil)
	docs.On("UploadDocument", mock.Anything, "tok", "bm-1.pdf", pdf).Return("task-1", nil)
	docs.On("GetTask", mock.Anything, "tok", "task-1").Return(&domain.IngestionTask{
		TaskID:     "task-1",
		Status:     domain.TaskStatusSuccess,
		DocumentID: intPtr(101),
	}, nil)
	docs.On("DownloadDocument", mock.Anything, "tok", 101, false).Return(archive, nil)
	store.On("SaveArchive", mock.Anything, 101, archive).Return("", nil)
	extractor.On("Extract", mock.Anything, archive).Return("extracted document text", nil)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.True(t, result.IsNewEntry)
	assert.Equal(t, 101, *result.DocumentID)
	assert.Equal(t, "extracted document text", result.ExtractedText)
	assert.Empty(t, result.Failure)
	docs.AssertExpectations(t)
	store.AssertExpectations(t)
	extractor.AssertExpectations(t)
}

func TestWorkflow_TerminalWithoutDocumentID(t *testing.T) {
	wf, docs, store, _ := setupWorkflow(ingest.WorkflowConfig{ReprocessExisting: true})

	pdf := []byte("%PDF-1.4 content")
	docs.On("FetchSource", mock.Anything, mock.Anything).Return(pdf, nil)
	store.On("SaveOriginal", mock.Anything, mock.Anything, mock.Anything).Return("", nil)
	docs.On("UploadDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("task-1", nil)
	docs.On("GetTask", mock.Anything, "tok", "task-1").Return(&domain.IngestionTask{
		TaskID: "task-1",
		Status: domain.TaskStatusSuccess,
	}, nil)

	result := wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	assert.False(t, result.IsNewEntry)
	assert.Nil(t, result.DocumentID)
	assert.Equal(t, domain.FailureProtocol, result.Failure)
}

func TestWorkflow_RecordsAudit(t *testing.T) {
	docs := new(mocks.MockDocumentService)
	store := new(mocks.MockArtifactStore)
	extractor := new(mocks.MockTextExtractor)
	audit := new(mocks.MockIngestionAuditRepo)
	poller := ingest.NewPoller(docs, ingest.PollerConfig{Interval: 5 * time.Millisecond})
	wf := ingest.NewWorkflow(docs, store, extractor, ingest.NewDuplicateResolver(""), poller, audit,
		ingest.WorkflowConfig{ReprocessExisting: true})

	docs.On("FetchSource", mock.Anything, mock.Anything).Return(nil, domain.ErrTransport)
	audit.On("Record", mock.Anything, mock.MatchedBy(func(rec *domain.IngestionRecord) bool {
		return rec.ExternalID == "bm-1" && rec.Failure == string(domain.FailureTransport) && !rec.IsNewEntry
	})).Return(nil)

	wf.Run(context.Background(), domain.IngestionRequest{
		SourceURL:  "https://example.com/a.pdf",
		ExternalID: "bm-1",
		Token:      "tok",
	})

	audit.AssertExpectations(t)
}
