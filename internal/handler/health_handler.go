package handler

import (
	"context"
	"time"

	"quizlink/internal/domain"
	"quizlink/internal/dto"
	"quizlink/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache domain.Cache
}

func NewHealthHandler(db Pinger, cache domain.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Health godoc
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "ok", Database: "ok", Redis: "ok"}
	if err := h.db.PingContext(ctx); err != nil {
		logger.Get().Warn("Health check: database unreachable", zap.Error(err))
		resp.Status, resp.Database = "degraded", "unavailable"
	}
	if h.cache == nil {
		resp.Redis = "disabled"
	} else if err := h.cache.Ping(ctx); err != nil {
		logger.Get().Warn("Health check: redis unreachable", zap.Error(err))
		resp.Status, resp.Redis = "degraded", "unavailable"
	}

	if resp.Database != "ok" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
