package middleware

import (
	"errors"
	"net/http"

	"github.com/akau-shop/backend/internal/infrastructure/auth"
	"github.com/akau-shop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// AdminTokenHeader carries the admin session token on protected routes
const AdminTokenHeader = "X-Admin-Token"

// RequireAdmin returns a middleware that rejects requests without a valid,
// unrevoked admin session token.
func RequireAdmin(sessions *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(AdminTokenHeader)
		if token == "" {
			abortUnauthorized(c, "Missing admin token")
			return
		}

		claims, err := sessions.Validate(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				abortUnauthorized(c, "Admin token has expired")
			case errors.Is(err, auth.ErrSessionRevoked):
				abortUnauthorized(c, "Admin session has been revoked")
			default:
				abortUnauthorized(c, "Invalid admin token")
			}
			return
		}

		c.Set("admin_session_id", claims.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	requestID := c.GetString("request_id")
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, requestID))
}
