package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appdocument "github.com/retaildocs/backend/internal/application/document"
	"github.com/retaildocs/backend/internal/domain/document"
	"github.com/retaildocs/backend/internal/interfaces/http/dto"
)

// DocumentHandler exposes commercial document operations over HTTP
type DocumentHandler struct {
	BaseHandler
	service *appdocument.Service
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(service *appdocument.Service) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// RegisterRoutes registers document routes
func (h *DocumentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	docs := rg.Group("/documents")
	{
		docs.POST("", h.Create)
		docs.GET("", h.List)
		docs.GET("/:id", h.GetByID)
		docs.PUT("/:id", h.Update)
		docs.POST("/:id/status", h.ChangeStatus)
	}
	rg.POST("/purchase-orders/:id/receive", h.Receive)
}

// Create handles POST /documents
func (h *DocumentHandler) Create(c *gin.Context) {
	var req appdocument.CreateDocumentRequest
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

// List handles GET /documents?type=...&status=...&page=...
func (h *DocumentHandler) List(c *gin.Context) {
	var listReq dto.ListRequest
	if err := c.ShouldBindQuery(&listReq); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	docType := document.Type(c.Query("type"))
	if !docType.IsValid() {
		h.BadRequest(c, "Query parameter 'type' must name a document type")
		return
	}

	filter := appdocument.ListFilter{
		Type:     docType,
		Page:     listReq.Page,
		PageSize: listReq.PageSize,
		Search:   listReq.Search,
	}
	if listReq.Status != "" {
		status := document.Status(listReq.Status)
		filter.Status = &status
	}

	docs, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, docs, total, listReq.Page, listReq.PageSize)
}

// GetByID handles GET /documents/:id
func (h *DocumentHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /documents/:id
func (h *DocumentHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req appdocument.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ChangeStatus handles POST /documents/:id/status
func (h *DocumentHandler) ChangeStatus(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req appdocument.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Receive handles POST /purchase-orders/:id/receive
func (h *DocumentHandler) Receive(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req appdocument.ReceiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Receive(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *DocumentHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid document ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid document ID")
		return uuid.Nil, false
	}
	return id, true
}
