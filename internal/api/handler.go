package api

import (
	"context"
	"time"

	"github.com/Behyna/collect-gateway/internal/api/contract"
	"github.com/Behyna/collect-gateway/internal/config"
	"github.com/Behyna/collect-gateway/internal/database"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

type Handler struct {
	logger      *zap.Logger
	health      database.HealthChecker
	serviceName string
	startedAt   time.Time
}

func NewHandler(logger *zap.Logger, health database.HealthChecker, config *config.Config) *Handler {
	return &Handler{
		logger:      logger,
		health:      health,
		serviceName: config.API.ServiceName,
		startedAt:   time.Now(),
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	response := contract.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Unix(),
		Service:   h.serviceName,
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
	}

	if err := h.health.HealthCheck(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		response.Status = "unhealthy"
		return c.Status(fiber.StatusServiceUnavailable).JSON(response)
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
