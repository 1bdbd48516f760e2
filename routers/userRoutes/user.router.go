package userRoutes

import (
	userController "eduplatform/controllers/userControllers"
	"eduplatform/middleware"
	userValidator "eduplatform/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(api fiber.Router) {
	userGroup := api.Group("/users", middleware.Authenticate)

	userGroup.Put("/profile", userValidator.UpdateProfile(), userController.UpdateProfile)
	userGroup.Post("/avatar", userController.UploadAvatar)
	userGroup.Put("/password", userValidator.ChangePassword(), userController.ChangePassword)
}
