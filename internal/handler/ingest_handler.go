package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"paperbridge/internal/domain"
	"paperbridge/internal/ingest"
	"paperbridge/internal/port"
)

// IngestHandler handles the processing and history endpoints.
type IngestHandler struct {
	workflow *ingest.Workflow
	audit    port.IngestionAuditRepo // may be nil
}

// NewIngestHandler creates a new IngestHandler.
func NewIngestHandler(workflow *ingest.Workflow, audit port.IngestionAuditRepo) *IngestHandler {
	return &IngestHandler{workflow: workflow, audit: audit}
}

// processRequest is the legacy request body for POST /api/v1/process.
type processRequest struct {
	URL   string `json:"url" binding:"required"`
	ID    string `json:"id" binding:"required"`
	Token string `json:"token" binding:"required"`
}

// Process handles POST /api/v1/process.
//
// Legacy contract: the response is always 200 with the raw IngestionResult,
// regardless of internal outcome. Only malformed input yields a 400. Callers
// inspect the result fields (and the additive failure kind) to tell failures
// from nothing-to-do outcomes.
func (h *IngestHandler) Process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "url, id and token are required")
		return
	}

	result := h.workflow.Run(c.Request.Context(), domain.IngestionRequest{
		SourceURL:  req.URL,
		ExternalID: req.ID,
		Token:      req.Token,
	})

	c.JSON(http.StatusOK, result)
}

// History handles GET /api/v1/ingestions.
func (h *IngestHandler) History(c *gin.Context) {
	if h.audit == nil {
		RespondError(c, http.StatusNotFound, "AUDIT_DISABLED", "ingestion history is disabled")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	recs, total, err := h.audit.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, recs, PagMeta{Total: total, Offset: offset, Limit: limit})
}
