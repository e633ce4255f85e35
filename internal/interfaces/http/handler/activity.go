package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sefcontact/engine/internal/application/activity"
)

// ActivityHandler exposes the recent activity feed
type ActivityHandler struct {
	BaseHandler
	feed *activity.Feed
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(feed *activity.Feed) *ActivityHandler {
	return &ActivityHandler{feed: feed}
}

// RegisterRoutes registers activity routes on the given group
func (h *ActivityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activity", h.Recent)
}

func (h *ActivityHandler) Recent(c *gin.Context) {
	limit := activity.DefaultFeedLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid limit parameter, expected a positive integer")
			return
		}
		limit = parsed
	}

	h.Success(c, h.feed.Recent(limit))
}
