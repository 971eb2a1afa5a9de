package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the fiber app with the shared error handler and global
// middleware, then registers the routes.
func NewApp(deps Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "weather-app",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	app.Use(RequestID())
	app.Use(RequestLogger())
	app.Use(recover.New())

	RegisterRoutes(app, deps)
	return app
}
