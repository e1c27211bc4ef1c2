package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/modxnet/modxnet-backend/internal/dto"
)

type GameHandler struct {
	service *GameService
}

func NewGameHandler(service *GameService) *GameHandler {
	return &GameHandler{service: service}
}

// ListPublic handles GET /api/games
func (h *GameHandler) ListPublic(c *fiber.Ctx) error {
	games, err := h.service.ListPublic(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(games)
}

// ListAdmin handles GET /api/admin/games
func (h *GameHandler) ListAdmin(c *fiber.Ctx) error {
	games, err := h.service.ListAdmin(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(games)
}

// ListTrash handles GET /api/admin/games/trash
func (h *GameHandler) ListTrash(c *fiber.Ctx) error {
	games, err := h.service.ListTrash(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(games)
}

// Create handles POST /api/admin/games
func (h *GameHandler) Create(c *fiber.Ctx) error {
	var in GameInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	game, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "game": game})
}

// Update handles PUT /api/admin/games/:id
func (h *GameHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid game ID"})
	}

	var in GameInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	game, err := h.service.Update(c.UserContext(), id, in)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "game": game})
}

// Trash handles DELETE /api/admin/games/:id
func (h *GameHandler) Trash(c *fiber.Ctx) error {
	return h.byID(c, h.service.Trash)
}

// Restore handles POST /api/admin/games/:id/restore
func (h *GameHandler) Restore(c *fiber.Ctx) error {
	return h.byID(c, h.service.Restore)
}

// DeletePermanent handles DELETE /api/admin/games/:id/permanent
func (h *GameHandler) DeletePermanent(c *fiber.Ctx) error {
	return h.byID(c, h.service.DeletePermanent)
}

func (h *GameHandler) byID(c *fiber.Ctx, op func(context.Context, uuid.UUID) error) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid game ID"})
	}
	if err := op(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *GameHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrSlugAndTitle), errors.Is(err, ErrInvalidRating):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, ErrSlugTaken):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, ErrGameNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Game not found"})
	default:
		slog.Error("catalog request failed", "component", "catalog", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
	}
}
