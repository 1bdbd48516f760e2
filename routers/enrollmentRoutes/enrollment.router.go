package enrollmentRoutes

import (
	enrollmentController "eduplatform/controllers/enrollment"
	"eduplatform/middleware"
	enrollmentValidator "eduplatform/validators/enrollment"

	"github.com/gofiber/fiber/v2"
)

func SetupEnrollmentRoutes(api fiber.Router) {
	enrollmentGroup := api.Group("/enrollments", middleware.Authenticate)

	enrollmentGroup.Post("/enroll", enrollmentValidator.Enroll(), enrollmentController.Enroll)
	enrollmentGroup.Get("/my-courses", enrollmentValidator.MyCourses(), enrollmentController.MyCourses)
	enrollmentGroup.Get("/progress/:courseId", enrollmentController.GetProgress)
	enrollmentGroup.Post("/progress/update", enrollmentValidator.UpdateProgress(), enrollmentController.UpdateProgress)
	enrollmentGroup.Get("/certificate/:enrollmentId", enrollmentController.GetCertificate)
}
