package adminRoutes

import (
	adminController "eduplatform/controllers/admin"
	"eduplatform/middleware"
	"eduplatform/models"
	adminValidator "eduplatform/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(api fiber.Router) {
	adminGroup := api.Group("/admin", middleware.Authenticate, middleware.Authorize(models.RoleAdmin))

	adminGroup.Get("/users", adminValidator.ListUsers(), adminController.UserList)
	adminGroup.Put("/users/:id/status", adminValidator.UserStatus(), adminController.SetUserStatus)
}
