package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/modxnet/modxnet-backend/internal/apps"
	"github.com/modxnet/modxnet-backend/internal/config"
	"github.com/modxnet/modxnet-backend/internal/handlers"
	"github.com/modxnet/modxnet-backend/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Health     *handlers.HealthHandler
	Legal      *handlers.LegalHandler
	SiteConfig *handlers.SiteConfigHandler
	Admin      *handlers.AdminHandler
}

// Setup mounts every route. storage backs the rate limiters; nil keeps
// Fiber's in-memory store.
func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	h Handlers,
	modules []apps.Module,
	storage fiber.Storage,
) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Storage:           storage,
	}))

	api.Get("/health", h.Health.Check)
	api.Get("/config", h.SiteConfig.GetConfig)
	api.Get("/legal/privacy", h.Legal.PrivacyPolicy)
	api.Get("/legal/terms", h.Legal.TermsOfService)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return "auth:" + c.IP() },
		Storage:           storage,
	}))
	auth.Post("/register", h.Auth.Register)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)

	// JWT is applied per route so public reads stay open.
	jwt := middleware.JWTProtected(cfg)
	api.Post("/auth/logout", jwt, h.Auth.Logout)
	api.Get("/auth/me", jwt, h.Auth.Me)
	api.Delete("/auth/account", jwt, h.Auth.DeleteAccount)

	admin := api.Group("/admin", middleware.AdminTokenOrJWT(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/stats", h.Admin.Stats)
	admin.Get("/users", h.Admin.ListUsers)
	admin.Delete("/users/:id", h.Admin.DeleteUser)
	admin.Get("/config", h.SiteConfig.ListConfig)
	admin.Put("/config/:key", h.SiteConfig.SetConfigKey)
	admin.Delete("/config/:key", h.SiteConfig.DeleteConfigKey)

	for _, m := range modules {
		m.RegisterRoutes(api, jwt)
		if am, ok := m.(apps.AdminModule); ok {
			am.RegisterAdminRoutes(admin)
		}
	}
}
