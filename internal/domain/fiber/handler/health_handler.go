package handler

import (
	"github.com/fadilmartias/resume-analyzer/internal/usecase"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	uc *usecase.HealthUsecase
}

func NewHealthHandler(uc *usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.uc.Status(c.UserContext()))
}
