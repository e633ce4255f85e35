package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sefcontact/engine/internal/application/consumer"
)

// ConsumerHandler handles consumer profile HTTP requests
type ConsumerHandler struct {
	BaseHandler
	consumerService *consumer.ConsumerService
}

// NewConsumerHandler creates a new consumer handler
func NewConsumerHandler(consumerService *consumer.ConsumerService) *ConsumerHandler {
	return &ConsumerHandler{consumerService: consumerService}
}

// RegisterRoutes registers consumer routes on the given group
func (h *ConsumerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	consumers := rg.Group("/consumers")
	consumers.POST("", h.Create)
	consumers.GET("", h.List)
	consumers.GET("/portfolio/:id", h.ListByPortfolio)
	consumers.GET("/:id", h.GetByID)
	consumers.POST("/:id/notes", h.AppendNote)
	consumers.PUT("/:id/status", h.ChangeStatus)
}

func (h *ConsumerHandler) Create(c *gin.Context) {
	var req consumer.CreateConsumerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	created, err := h.consumerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, created)
}

func (h *ConsumerHandler) GetByID(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid consumer ID")
		return
	}

	profile, err := h.consumerService.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

func (h *ConsumerHandler) List(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter consumer.ConsumerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.consumerService.List(c.Request.Context(), actor, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, page)
}

func (h *ConsumerHandler) ListByPortfolio(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	portfolioID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid portfolio ID")
		return
	}

	consumers, err := h.consumerService.ListByPortfolio(c.Request.Context(), actor, portfolioID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, consumers)
}

func (h *ConsumerHandler) AppendNote(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid consumer ID")
		return
	}

	var req consumer.AppendNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	profile, err := h.consumerService.AppendNote(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}

func (h *ConsumerHandler) ChangeStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid consumer ID")
		return
	}

	var req consumer.ChangeConsumerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	profile, err := h.consumerService.ChangeStatus(c.Request.Context(), actor, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, profile)
}
