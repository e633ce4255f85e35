package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sefcontact/engine/internal/application/access"
	"github.com/sefcontact/engine/internal/domain/directory"
	"github.com/sefcontact/engine/internal/interfaces/http/dto"
)

// ActorKey is the gin context key holding the authenticated actor
const ActorKey = "actor"

// Session resolves the calling identity from the X-User-ID and X-User-Role
// headers and stores it as an access.Actor in the request context. Requests
// without a valid identity are rejected with 401.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDStr := c.GetHeader("X-User-ID")
		roleStr := c.GetHeader("X-User-Role")

		if userIDStr == "" || roleStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"Missing X-User-ID or X-User-Role header",
			))
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"X-User-ID is not a valid UUID",
			))
			return
		}

		role := directory.Role(roleStr)
		if !directory.ValidRole(role) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				dto.ErrCodeUnauthorized,
				"X-User-Role must be admin, agent, or supervisor",
			))
			return
		}

		c.Set(ActorKey, access.NewActor(userID, role))
		c.Next()
	}
}

// GetActor returns the actor stored by the Session middleware
func GetActor(c *gin.Context) (access.Actor, bool) {
	value, exists := c.Get(ActorKey)
	if !exists {
		return access.Actor{}, false
	}
	actor, ok := value.(access.Actor)
	return actor, ok
}
