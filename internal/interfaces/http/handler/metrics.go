package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sefcontact/engine/internal/application/reporting"
)

// MetricsHandler handles reporting and dashboard HTTP requests
type MetricsHandler struct {
	BaseHandler
	metricsService *reporting.MetricsService
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(metricsService *reporting.MetricsService) *MetricsHandler {
	return &MetricsHandler{metricsService: metricsService}
}

// RegisterRoutes registers reporting routes on the given group
func (h *MetricsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.GET("/dashboard", h.Dashboard)
	reports.GET("/portfolios", h.PortfolioPerformances)
	reports.GET("/portfolios/top", h.TopPortfolio)
	reports.GET("/agents", h.AgentReports)
	reports.GET("/payments", h.PaymentSummary)
}

func (h *MetricsHandler) Dashboard(c *gin.Context) {
	metrics, err := h.metricsService.Dashboard(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, metrics)
}

func (h *MetricsHandler) PortfolioPerformances(c *gin.Context) {
	performances, err := h.metricsService.PortfolioPerformances(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, performances)
}

func (h *MetricsHandler) TopPortfolio(c *gin.Context) {
	top, err := h.metricsService.TopPortfolio(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, top)
}

func (h *MetricsHandler) AgentReports(c *gin.Context) {
	reports, err := h.metricsService.AgentReports(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, reports)
}

func (h *MetricsHandler) PaymentSummary(c *gin.Context) {
	summary, err := h.metricsService.PaymentSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
