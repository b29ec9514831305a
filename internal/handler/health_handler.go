package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paperbridge/internal/port"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	audit port.IngestionAuditRepo // may be nil
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(audit port.IngestionAuditRepo) *HealthHandler {
	return &HealthHandler{audit: audit}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.audit != nil {
		if err := h.audit.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "audit store not reachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
