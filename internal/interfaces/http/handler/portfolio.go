package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sefcontact/engine/internal/application/portfolio"
)

// PortfolioHandler handles portfolio HTTP requests
type PortfolioHandler struct {
	BaseHandler
	portfolioService *portfolio.PortfolioService
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioService *portfolio.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// RegisterRoutes registers portfolio routes on the given group
func (h *PortfolioHandler) RegisterRoutes(rg *gin.RouterGroup) {
	portfolios := rg.Group("/portfolios")
	portfolios.POST("", h.Upload)
	portfolios.GET("", h.List)
	portfolios.GET("/unassigned", h.ListUnassigned)
	portfolios.GET("/insights", h.Insights)
	portfolios.GET("/agent/:id", h.ListByAgent)
	portfolios.GET("/:id", h.GetByID)
	portfolios.PUT("/:id/assign", h.Assign)
	portfolios.POST("/:id/recoveries", h.RecordRecovery)
	portfolios.PUT("/:id/status", h.ChangeStatus)
}

func (h *PortfolioHandler) Upload(c *gin.Context) {
	var req portfolio.UploadPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	p, err := h.portfolioService.Upload(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, p)
}

func (h *PortfolioHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid portfolio ID")
		return
	}

	p, err := h.portfolioService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

func (h *PortfolioHandler) List(c *gin.Context) {
	var filter portfolio.PortfolioListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.portfolioService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, page)
}

func (h *PortfolioHandler) ListByAgent(c *gin.Context) {
	agentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid agent ID")
		return
	}

	portfolios, err := h.portfolioService.ListByAgent(c.Request.Context(), agentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, portfolios)
}

func (h *PortfolioHandler) ListUnassigned(c *gin.Context) {
	portfolios, err := h.portfolioService.ListUnassigned(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, portfolios)
}

func (h *PortfolioHandler) Assign(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid portfolio ID")
		return
	}

	var req portfolio.AssignPortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	p, err := h.portfolioService.Assign(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

func (h *PortfolioHandler) RecordRecovery(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid portfolio ID")
		return
	}

	var req portfolio.RecordRecoveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	p, err := h.portfolioService.RecordRecovery(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

func (h *PortfolioHandler) ChangeStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid portfolio ID")
		return
	}

	var req portfolio.ChangePortfolioStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	p, err := h.portfolioService.ChangeStatus(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, p)
}

func (h *PortfolioHandler) Insights(c *gin.Context) {
	insights, err := h.portfolioService.Insights(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, insights)
}
