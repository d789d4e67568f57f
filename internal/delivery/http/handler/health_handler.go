package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/itinerary-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// HealthChecker - зависимость, доступность которой отражается в health check
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthHandler - health check сервиса
type HealthHandler struct {
	checkers map[string]HealthChecker
	logger   *zap.Logger
}

// NewHealthHandler создает HealthHandler; checkers может быть пустым
func NewHealthHandler(checkers map[string]HealthChecker, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		checkers: checkers,
		logger:   logger,
	}
}

// Health godoc
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	status := "healthy"
	code := fiber.StatusOK
	for name, checker := range h.checkers {
		if err := checker.Health(ctx); err != nil {
			h.logger.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			status = "unhealthy"
			code = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(code).JSON(dto.HealthResponse{
		Status: status,
		Time:   time.Now().Unix(),
	})
}
