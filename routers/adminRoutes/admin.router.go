package adminRoutes

import (
	adminControllers "chalkboard/controllers/admin"
	"chalkboard/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/api/admin")

	adminGroup.Post("/authenticate", adminControllers.Authenticate)
	adminGroup.Get("/metrics", middleware.AdminKeyMiddleware, adminControllers.GetMetrics)
	adminGroup.Get("/metrics/export", middleware.AdminKeyMiddleware, adminControllers.ExportMetrics)
}
