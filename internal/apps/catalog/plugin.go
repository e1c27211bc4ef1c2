package catalog

import (
	"github.com/gofiber/fiber/v2"
)

// Plugin mounts the game catalog.
type Plugin struct {
	handler *GameHandler
}

func New(service *GameService) *Plugin {
	return &Plugin{handler: NewGameHandler(service)}
}

func (p *Plugin) ID() string { return "catalog" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{&Game{}}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, _ fiber.Handler) {
	router.Get("/games", p.handler.ListPublic)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/games", p.handler.ListAdmin)
	router.Get("/games/trash", p.handler.ListTrash)
	router.Post("/games", p.handler.Create)
	router.Put("/games/:id", p.handler.Update)
	router.Delete("/games/:id", p.handler.Trash)
	router.Post("/games/:id/restore", p.handler.Restore)
	router.Delete("/games/:id/permanent", p.handler.DeletePermanent)
}
