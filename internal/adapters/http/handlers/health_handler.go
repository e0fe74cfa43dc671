package handlers

import (
	"ufa-alliance/internal/config"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	health *config.RemoteHealth
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(health *config.RemoteHealth) *HealthHandler {
	return &HealthHandler{health: health}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "🚀 United Future Alliance API v1.0 is running",
		"mode":    config.AppConfig.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API and storage backend health
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	remoteStatus := "not configured"
	if config.AppConfig.RemoteDB.Configured() {
		if h.health.Available() {
			remoteStatus = "healthy"
		} else {
			remoteStatus = "unreachable"
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":         "healthy",
			"remote_db":   remoteStatus,
			"local_store": "healthy",
		},
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Description Returns API v1 information
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}

func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "United Future Alliance API v1.0",
		"version": "1.0.0",
	})
}
