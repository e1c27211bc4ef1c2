package lockerconfig

import (
	"github.com/gofiber/fiber/v2"
)

// Plugin mounts per-game content-locker configuration.
type Plugin struct {
	handler *ConfigHandler
}

func New(service *ConfigService) *Plugin {
	return &Plugin{handler: NewConfigHandler(service)}
}

func (p *Plugin) ID() string { return "lockerconfig" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&LockerConfig{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, _ fiber.Handler) {
	router.Get("/locker/:slug", p.handler.Public)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/locker", p.handler.List)
	router.Post("/locker/sync", p.handler.Sync)
	router.Put("/locker/:slug", p.handler.Upsert)
}
