package pageRoutes

import (
	pagesController "eduplatform/controllers/pages"

	"github.com/gofiber/fiber/v2"
)

// SetupPageRoutes serves the server-rendered pages. Dashboards load their data from the API with the stored token.
func SetupPageRoutes(app *fiber.App) {
	app.Get("/", pagesController.Home)
	app.Get("/courses", pagesController.Courses)
	app.Get("/course/:id", pagesController.CourseDetail)

	app.Get("/dashboard", pagesController.StudentDashboard)
	app.Get("/student-dashboard", pagesController.StudentDashboard)
	app.Get("/student-dashboard.html", pagesController.StudentDashboard)
	app.Get("/instructor-dashboard", pagesController.InstructorDashboard)
	app.Get("/instructor-dashboard.html", pagesController.InstructorDashboard)
	app.Get("/admin-dashboard", pagesController.AdminDashboard)
	app.Get("/admin-dashboard.html", pagesController.AdminDashboard)
}
