package forumRoutes

import (
	forumController "eduplatform/controllers/forum"
	"eduplatform/middleware"
	forumValidator "eduplatform/validators/forum"

	"github.com/gofiber/fiber/v2"
)

func SetupForumRoutes(api fiber.Router) {
	forumGroup := api.Group("/forums")

	forumGroup.Get("/course/:courseId", middleware.OptionalAuth, forumValidator.ListThreads(), forumController.ListThreads)
	forumGroup.Get("/thread/:threadId", middleware.OptionalAuth, forumController.GetThread)
	forumGroup.Get("/search", forumValidator.Search(), forumController.Search)

	forumGroup.Post("/thread", middleware.Authenticate, forumValidator.CreateThread(), forumController.CreateThread)
	forumGroup.Put("/thread/:threadId", middleware.Authenticate, forumValidator.UpdateThread(), forumController.UpdateThread)
	forumGroup.Post("/reply", middleware.Authenticate, forumValidator.CreateReply(), forumController.CreateReply)
	forumGroup.Post("/solution/:replyId", middleware.Authenticate, forumController.MarkSolution)
	forumGroup.Post("/like/:replyId", middleware.Authenticate, forumController.ToggleLike)
}
