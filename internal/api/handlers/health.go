package handlers

import (
	"github.com/Sipheren/fridaygt-sub000/internal/models"
	"github.com/Sipheren/fridaygt-sub000/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler checks the service and its dependencies
type HealthHandler struct {
	postgresRepo *repository.PostgresRepository
	redisRepo    *repository.RedisRepository
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(postgresRepo *repository.PostgresRepository, redisRepo *repository.RedisRepository) *HealthHandler {
	return &HealthHandler{
		postgresRepo: postgresRepo,
		redisRepo:    redisRepo,
	}
}

// Check handles GET /api/v1/health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	if err := h.postgresRepo.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
			Error:   "Health check failed",
			Message: "PostgreSQL unreachable",
		})
	}
	if err := h.redisRepo.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
			Error:   "Health check failed",
			Message: "Redis unreachable",
		})
	}
	return c.JSON(fiber.Map{
		"status": "healthy",
	})
}
