package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sefcontact/engine/internal/application/directory"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService *directory.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *directory.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user routes on the given group
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	users.POST("", h.Create)
	users.GET("", h.List)
	users.GET("/agents", h.ListActiveAgents)
	users.GET("/:id", h.GetByID)
	users.PUT("/:id/active", h.SetActive)
	users.POST("/:id/login", h.RecordLogin)
	users.PUT("/:id/performance", h.SetPerformanceScore)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req directory.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

func (h *UserHandler) List(c *gin.Context) {
	var filter directory.UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.userService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	Paginated(c, page)
}

func (h *UserHandler) ListActiveAgents(c *gin.Context) {
	agents, err := h.userService.ListActiveAgents(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, agents)
}

func (h *UserHandler) SetActive(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req directory.SetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.SetActive(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

func (h *UserHandler) RecordLogin(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.RecordLogin(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

func (h *UserHandler) SetPerformanceScore(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	var req directory.SetPerformanceScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	user, err := h.userService.SetPerformanceScore(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}
