package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/modxnet/modxnet-backend/internal/dto"
	"github.com/modxnet/modxnet-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteConfigHandler struct {
	db *gorm.DB
}

func NewSiteConfigHandler(db *gorm.DB) *SiteConfigHandler {
	return &SiteConfigHandler{db: db}
}

// GetConfig returns every setting as a key to typed value map (public).
func (h *SiteConfigHandler) GetConfig(c *fiber.Ctx) error {
	var configs []models.SiteConfig
	if err := h.db.WithContext(c.UserContext()).Find(&configs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Failed to fetch configuration",
		})
	}

	result := make(map[string]interface{}, len(configs))
	for _, cfg := range configs {
		result[cfg.Key] = decodeValue(cfg)
	}
	return c.JSON(result)
}

// ListConfig returns the raw rows (admin only).
func (h *SiteConfigHandler) ListConfig(c *fiber.Ctx) error {
	configs := []models.SiteConfig{}
	if err := h.db.WithContext(c.UserContext()).Order("key ASC").Find(&configs).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Failed to fetch configuration",
		})
	}
	return c.JSON(configs)
}

// SetConfigKey sets or updates a config key (admin only)
func (h *SiteConfigHandler) SetConfigKey(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Key parameter is required",
		})
	}

	var payload dto.SetConfigRequest
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Invalid request body",
		})
	}
	if payload.Type == "" {
		payload.Type = "string"
	}
	if err := validateValue(payload.Type, payload.Value); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: err.Error(),
		})
	}

	config := models.SiteConfig{Key: key, Value: payload.Value, Type: payload.Type}
	err := h.db.WithContext(c.UserContext()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(&config).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Failed to save config",
		})
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Config updated successfully",
		"config": fiber.Map{
			"key":   config.Key,
			"value": config.Value,
			"type":  config.Type,
		},
	})
}

// DeleteConfigKey deletes a config key (admin only)
func (h *SiteConfigHandler) DeleteConfigKey(c *fiber.Ctx) error {
	result := h.db.WithContext(c.UserContext()).Where("key = ?", c.Params("key")).Delete(&models.SiteConfig{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Failed to delete config",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Config not found",
		})
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Config deleted successfully",
	})
}

var defaultSiteConfig = []models.SiteConfig{
	{Key: "site_name", Value: "ModXnet", Type: "string"},
	{Key: "maintenance_mode", Value: "false", Type: "bool"},
	{Key: "announcement_message", Value: "", Type: "string"},
	{Key: "reviews_enabled", Value: "true", Type: "bool"},
	{Key: "comments_enabled", Value: "true", Type: "bool"},
}

// SeedDefaults creates any missing default keys and leaves existing values alone.
func (h *SiteConfigHandler) SeedDefaults() error {
	for _, cfg := range defaultSiteConfig {
		err := h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoNothing: true,
		}).Create(&cfg).Error
		if err != nil {
			return fmt.Errorf("seed %s: %w", cfg.Key, err)
		}
	}
	return nil
}

func decodeValue(cfg models.SiteConfig) interface{} {
	switch cfg.Type {
	case "bool":
		v, _ := strconv.ParseBool(cfg.Value)
		return v
	case "int":
		v, _ := strconv.Atoi(cfg.Value)
		return v
	case "json":
		var v interface{}
		if err := json.Unmarshal([]byte(cfg.Value), &v); err != nil {
			return nil
		}
		return v
	default:
		return cfg.Value
	}
}

func validateValue(typ, value string) error {
	switch typ {
	case "string":
		return nil
	case "bool":
		if _, err := strconv.ParseBool(value); err != nil {
			return errors.New("value must be a boolean")
		}
	case "int":
		if _, err := strconv.Atoi(value); err != nil {
			return errors.New("value must be an integer")
		}
	case "json":
		if !json.Valid([]byte(value)) {
			return errors.New("value must be valid JSON")
		}
	default:
		return errors.New("type must be one of string, bool, int, json")
	}
	return nil
}
