package engagement

import (
	"github.com/gofiber/fiber/v2"
)

// Plugin mounts reviews and comments.
type Plugin struct {
	handler *Handler
}

func New(service *Service) *Plugin {
	return &Plugin{handler: NewHandler(service)}
}

func (p *Plugin) ID() string { return "engagement" }

func (p *Plugin) Models() []interface{} {
	return []interface{}{
		&Review{},
		&Comment{},
	}
}

func (p *Plugin) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/reviews/:slug", p.handler.ListReviews)
	router.Post("/reviews/:slug", auth, p.handler.SubmitReview)
	router.Get("/comments/:slug", p.handler.ListComments)
	router.Post("/comments/:slug", auth, p.handler.SubmitComment)
}

func (p *Plugin) RegisterAdminRoutes(router fiber.Router) {
	router.Get("/reviews", p.handler.AdminListReviews)
	router.Delete("/reviews/:id", p.handler.AdminDeleteReview)
	router.Get("/comments", p.handler.AdminListComments)
	router.Delete("/comments/:id", p.handler.AdminDeleteComment)
	router.Post("/games/:slug/generate-engagement", p.handler.GenerateEngagement)
	router.Post("/engagement/sweep", p.handler.Sweep)
}
