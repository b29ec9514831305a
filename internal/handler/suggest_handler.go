package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"paperbridge/internal/port"
)

// SuggestHandler handles metadata suggestion requests.
type SuggestHandler struct {
	completion port.Completion
}

// NewSuggestHandler creates a new SuggestHandler.
func NewSuggestHandler(completion port.Completion) *SuggestHandler {
	return &SuggestHandler{completion: completion}
}

type suggestRequest struct {
	Text string `json:"text" binding:"required"`
}

// Suggest handles POST /api/v1/suggest.
func (h *SuggestHandler) Suggest(c *gin.Context) {
	var req suggestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "text is required")
		return
	}

	out, err := h.completion.Suggest(c.Request.Context(), req.Text)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}
