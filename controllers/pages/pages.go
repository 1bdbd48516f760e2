package pagesController

import (
	"eduplatform/templates"

	"github.com/gofiber/fiber/v2"
)

const appName = "EduPlatform"

func render(c *fiber.Ctx, page, title, courseID string) error {
	c.Type("html", "utf-8")
	return templates.RenderPage(c, page, templates.PageData{
		AppName:  appName,
		Title:    title,
		CourseID: courseID,
	})
}

func Home(c *fiber.Ctx) error {
	return render(c, templates.PageHome, "Learn anything", "")
}

func Courses(c *fiber.Ctx) error {
	return render(c, templates.PageCourses, "Courses", "")
}

// CourseDetail renders the course shell; the script loads the course by id or slug.
func CourseDetail(c *fiber.Ctx) error {
	return render(c, templates.PageCourse, "Course", c.Params("id"))
}

// StudentDashboard is also served at /dashboard. The role is only known client-side.
func StudentDashboard(c *fiber.Ctx) error {
	return render(c, templates.PageStudentDashboard, "Student Dashboard", "")
}

func InstructorDashboard(c *fiber.Ctx) error {
	return render(c, templates.PageInstructorDashboard, "Instructor Dashboard", "")
}

func AdminDashboard(c *fiber.Ctx) error {
	return render(c, templates.PageAdminDashboard, "Admin Dashboard", "")
}
