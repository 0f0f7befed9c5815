package handler

import (
	"github.com/gin-gonic/gin"

	appjournal "github.com/retaildocs/backend/internal/application/journal"
)

// JournalHandler exposes sales journal operations over HTTP
type JournalHandler struct {
	BaseHandler
	service *appjournal.Service
}

// NewJournalHandler creates a new JournalHandler
func NewJournalHandler(service *appjournal.Service) *JournalHandler {
	return &JournalHandler{service: service}
}

// RegisterRoutes registers journal routes
func (h *JournalHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/journals", h.Create)
}

// Create handles POST /journals
func (h *JournalHandler) Create(c *gin.Context) {
	var req appjournal.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}
