package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/akau-shop/backend/internal/infrastructure/auth"
	"github.com/akau-shop/backend/internal/interfaces/http/dto"
	"github.com/akau-shop/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	BaseHandler
	sessions *auth.SessionService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *auth.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// LoginRequest carries the admin password
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued session token
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login verifies the admin password and issues a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, "Invalid request body: "+err.Error())
		return
	}

	session, err := h.sessions.Login(c.Request.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrLoginDisabled):
			h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnauthorized, "Admin login is not configured")
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.Unauthorized(c, "Invalid password")
		default:
			h.HandleError(c, err)
		}
		return
	}

	h.Success(c, LoginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt})
}

// Logout revokes the presented session token. Always succeeds: revoking a
// token that is already invalid is a no-op.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetHeader(middleware.AdminTokenHeader)
	if token != "" {
		if err := h.sessions.Logout(c.Request.Context(), token); err != nil {
			h.HandleError(c, err)
			return
		}
	}
	h.NoContent(c)
}
