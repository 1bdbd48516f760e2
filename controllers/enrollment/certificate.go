package enrollmentController

import (
	"errors"
	"time"

	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/models/course"
	"eduplatform/templates"
	"eduplatform/validators"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetCertificate renders the completion certificate of one of the caller's enrollments.
func GetCertificate(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	enrollmentID, err := validators.ParamID(c, "enrollmentId")
	if err != nil {
		return err
	}
	db := database.Database.Db

	var enrollment course.Enrollment
	err = db.Where("id = ? AND student_id = ? AND certificate_issued = ?", enrollmentID, user.ID, true).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("Certificate not found")
		}
		return err
	}

	var crs course.Course
	if err := db.First(&crs, enrollment.CourseID).Error; err != nil {
		return err
	}
	var instructor models.User
	if err := db.Select("id", "full_name").First(&instructor, crs.InstructorID).Error; err != nil &&
		!errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	completedAt := enrollment.UpdatedAt
	if enrollment.CompletedAt != nil {
		completedAt = *enrollment.CompletedAt
	}

	c.Type("html", "utf-8")
	return templates.RenderCertificate(c, templates.CertificateData{
		StudentName:       user.FullName,
		CourseTitle:       crs.Title,
		InstructorName:    instructor.FullName,
		DurationHours:     crs.DurationHours,
		CompletedAt:       completedAt.In(time.UTC),
		CertificateNumber: enrollment.CertificateNumber,
	})
}
