package middlewares

import (
	"github.com/gofiber/fiber/v2"
)

// SetupMiddlewares registers the global middleware chain.
// Order matters: recover first so later panics still return JSON 500.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
