package lockerconfig

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/modxnet/modxnet-backend/internal/dto"
)

type ConfigHandler struct {
	service *ConfigService
}

func NewConfigHandler(service *ConfigService) *ConfigHandler {
	return &ConfigHandler{service: service}
}

// Public handles GET /api/locker/:slug
func (h *ConfigHandler) Public(c *fiber.Ctx) error {
	return c.JSON(h.service.Public(c.UserContext(), c.Params("slug")))
}

// List handles GET /api/admin/locker
func (h *ConfigHandler) List(c *fiber.Ctx) error {
	configs, err := h.service.List(c.UserContext())
	if err != nil {
		slog.Error("list locker configs failed", "component", "lockerconfig", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to load locker configs"})
	}
	return c.JSON(configs)
}

// Upsert handles PUT /api/admin/locker/:slug
func (h *ConfigHandler) Upsert(c *fiber.Ctx) error {
	var req UpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	cfg, err := h.service.Upsert(c.UserContext(), c.Params("slug"), req)
	if err != nil {
		if errors.Is(err, ErrEmptySlug) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		slog.Error("save locker config failed", "component", "lockerconfig", "game_slug", c.Params("slug"), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to save locker config"})
	}
	return c.JSON(fiber.Map{"success": true, "config": cfg})
}

// Sync handles POST /api/admin/locker/sync
func (h *ConfigHandler) Sync(c *fiber.Ctx) error {
	created, err := h.service.Sync(c.UserContext())
	if err != nil {
		slog.Error("locker config sync failed", "component", "lockerconfig", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to sync locker configs"})
	}
	return c.JSON(fiber.Map{"success": true, "created": created})
}
