package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/modxnet/modxnet-backend/internal/dto"
)

type HealthHandler struct {
	ping    func() error
	modules int
}

func NewHealthHandler(ping func() error, modules int) *HealthHandler {
	return &HealthHandler{ping: ping, modules: modules}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := h.ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Modules:   h.modules,
	})
}
