package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/job-project-generator/internal/repositories"
)

type HealthHandler struct {
	repo repositories.ArtifactRepository
}

func NewHealthHandler(repo repositories.ArtifactRepository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// HandleHealth handles GET /health. The store is reachable iff the count query succeeds.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	count, err := h.repo.Count(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  "database unavailable",
			"time":   time.Now(),
		})
	}

	return c.JSON(fiber.Map{
		"status":   "healthy",
		"projects": count,
		"time":     time.Now(),
	})
}
