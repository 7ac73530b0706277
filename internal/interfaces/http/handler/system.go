package handler

import (
	"net/http"
	"time"

	"github.com/akau-shop/backend/internal/infrastructure/persistence"
	"github.com/akau-shop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler serves health and readiness endpoints
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	started time.Time
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(db *persistence.Database, appName string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		appName: appName,
		started: time.Now(),
	}
}

// HealthResponse is the health endpoint payload
type HealthResponse struct {
	Status   string `json:"status"`
	App      string `json:"app"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

// Health reports liveness and database connectivity
func (h *SystemHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:   "ok",
		App:      h.appName,
		Uptime:   time.Since(h.started).Round(time.Second).String(),
		Database: "up",
	}

	if err := h.db.Ping(); err != nil {
		resp.Status = "degraded"
		resp.Database = "down"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(resp))
		return
	}

	h.Success(c, resp)
}
