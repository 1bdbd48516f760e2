package enrollmentValidator

import (
	"eduplatform/models"
	"eduplatform/validators"

	"github.com/gofiber/fiber/v2"
)

type EnrollRequest struct {
	CourseID      uint   `json:"course_id" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"omitempty,oneof=stripe paypal free"`
}

func (r *EnrollRequest) Normalize() {
	if r.PaymentMethod == "" {
		r.PaymentMethod = models.PaymentMethodFree
	}
}

type ProgressRequest struct {
	LessonID         uint    `json:"lesson_id" validate:"required"`
	IsCompleted      *bool   `json:"is_completed" validate:"required"`
	TimeSpentMinutes *int    `json:"time_spent_minutes" validate:"omitempty,gte=0"`
	LastPosition     *int    `json:"last_position" validate:"omitempty,gte=0"`
	Notes            *string `json:"notes" validate:"omitempty,max=10000"`
}

type MyCoursesQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=active completed suspended"`
}

func Enroll() fiber.Handler {
	return validators.Body[EnrollRequest]()
}

func UpdateProgress() fiber.Handler {
	return validators.Body[ProgressRequest]()
}

func MyCourses() fiber.Handler {
	return validators.Query[MyCoursesQuery]()
}
