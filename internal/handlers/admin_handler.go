package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/modxnet/modxnet-backend/internal/dto"
	"github.com/modxnet/modxnet-backend/internal/models"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// Stats handles GET /api/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	db := h.db.WithContext(c.UserContext())
	var stats dto.StatsResponse

	counts := []struct {
		dst   *int64
		query *gorm.DB
	}{
		{&stats.Users, db.Table("users").Where("deleted_at IS NULL")},
		{&stats.Games, db.Table("games").Where("deleted_at IS NULL")},
		{&stats.Reviews, db.Table("reviews")},
		{&stats.Comments, db.Table("comments")},
	}
	for _, q := range counts {
		if err := q.query.Count(q.dst).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to load stats",
			})
		}
	}
	return c.JSON(stats)
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users := []models.User{}
	query := h.db.WithContext(c.UserContext()).Order("created_at DESC")
	if c.Query("include_system") != "true" {
		query = query.Where("is_system = ?", false)
	}
	if err := query.Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load users",
		})
	}
	return c.JSON(users)
}

// DeleteUser handles DELETE /api/admin/users/:id. The user's reviews and
// comments are removed with it.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	result := h.db.WithContext(c.UserContext()).Unscoped().Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete user",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "User not found",
		})
	}
	return c.JSON(fiber.Map{"success": true})
}
