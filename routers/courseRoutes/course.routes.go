package courseRoutes

import (
	courseController "eduplatform/controllers/course"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/validators"
	courseValidator "eduplatform/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registers the catalog, authoring and review routes.
func SetupCourseRoutes(api fiber.Router) {
	courseGroup := api.Group("/courses")
	staff := middleware.Authorize(models.RoleInstructor, models.RoleAdmin)

	// registered before /:id so the slug lookup does not swallow it
	courseGroup.Get("/categories", courseController.ListCategories)

	courseGroup.Get("/", middleware.OptionalAuth, courseValidator.ListCourses(), courseController.ListCourses)
	courseGroup.Get("/:id", middleware.OptionalAuth, courseController.GetCourse)
	courseGroup.Post("/", middleware.Authenticate, staff, courseValidator.CreateCourse(), courseController.CreateCourse)
	courseGroup.Put("/:id", middleware.Authenticate, staff, courseValidator.UpdateCourse(), courseController.UpdateCourse)
	courseGroup.Post("/:id/publish", middleware.Authenticate, staff, courseController.PublishCourse)
	courseGroup.Delete("/:id", middleware.Authenticate, staff, courseController.DeleteCourse)

	// Content
	courseGroup.Post("/:id/sections", middleware.Authenticate, staff, courseValidator.CreateSection(), courseController.CreateSection)
	courseGroup.Post("/:id/sections/:sectionId/lessons", middleware.Authenticate, staff, courseValidator.CreateLesson(), courseController.CreateLesson)

	// Reviews
	courseGroup.Get("/:id/reviews", validators.Query[validators.Pagination](), courseController.ListReviews)
	courseGroup.Post("/:id/reviews", middleware.Authenticate, courseValidator.CreateReview(), courseController.CreateReview)
}
