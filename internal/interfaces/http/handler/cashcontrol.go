package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appcashcontrol "github.com/retaildocs/backend/internal/application/cashcontrol"
)

// CashControlHandler exposes cash control operations over HTTP
type CashControlHandler struct {
	BaseHandler
	service *appcashcontrol.Service
}

// NewCashControlHandler creates a new CashControlHandler
func NewCashControlHandler(service *appcashcontrol.Service) *CashControlHandler {
	return &CashControlHandler{service: service}
}

// RegisterRoutes registers cash control routes
func (h *CashControlHandler) RegisterRoutes(rg *gin.RouterGroup) {
	controls := rg.Group("/cash-controls")
	{
		controls.POST("", h.Close)
		controls.GET("/:date", h.GetByDate)
	}
}

// Close handles POST /cash-controls
func (h *CashControlHandler) Close(c *gin.Context) {
	var req appcashcontrol.CloseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	resp, err := h.service.Close(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// GetByDate handles GET /cash-controls/:date
func (h *CashControlHandler) GetByDate(c *gin.Context) {
	date, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		h.BadRequest(c, "Date must be in YYYY-MM-DD format")
		return
	}

	resp, err := h.service.GetByDate(c.Request.Context(), date)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
