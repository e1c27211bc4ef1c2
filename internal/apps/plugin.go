package apps

import (
	"github.com/gofiber/fiber/v2"
)

// Module is a feature area mounted under /api.
type Module interface {
	// ID returns the module identifier used in logs.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts public routes on router. Routes that need a
	// signed-in user wrap their handler with auth.
	RegisterRoutes(router fiber.Router, auth fiber.Handler)
}

// AdminModule extends Module with admin-only route registration.
type AdminModule interface {
	Module

	// RegisterAdminRoutes mounts admin-only routes on the given Fiber group.
	// The group already enforces admin access.
	RegisterAdminRoutes(router fiber.Router)
}
