package notificationRoutes

import (
	notificationController "eduplatform/controllers/notification"
	"eduplatform/middleware"
	notificationValidator "eduplatform/validators/notification"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(api fiber.Router) {
	notificationGroup := api.Group("/notifications", middleware.Authenticate)

	notificationGroup.Get("/", notificationValidator.ListNotifications(), notificationController.ListNotifications)
	notificationGroup.Post("/read-all", notificationController.MarkAllRead)
	notificationGroup.Post("/:id/read", notificationController.MarkRead)
}
