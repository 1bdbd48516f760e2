package systemRoutes

import (
	systemController "eduplatform/controllers/system"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupSystemRoutes(app *fiber.App, api fiber.Router) {
	api.Get("/health", systemController.Health)
	api.Get("/info", systemController.Info)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
