package enrollmentController

import (
	"errors"
	"time"

	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/models/course"
	"eduplatform/utils"
	"eduplatform/validators"
	enrollmentValidator "eduplatform/validators/enrollment"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Enroll enrolls the caller in a published course. A priced course paid with a method other than
// free records a completed transaction in the same unit of work.
func Enroll(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	req := validators.Validated[enrollmentValidator.EnrollRequest](c)
	db := database.Database.Db

	var crs course.Course
	if err := db.Where("id = ? AND status = ?", req.CourseID, course.StatusPublished).First(&crs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("Course not found or not available")
		}
		return err
	}

	source := utils.EnrollSourceFree
	var enrollment *course.Enrollment
	err = db.Transaction(func(tx *gorm.DB) error {
		price := crs.BasePrice()
		if price > 0 && req.PaymentMethod != models.PaymentMethodFree {
			source = utils.EnrollSourceDirect
			txn := models.Transaction{
				UserID:        user.ID,
				CourseID:      crs.ID,
				Amount:        price,
				Currency:      crs.Currency,
				Status:        models.TransactionCompleted,
				PaymentMethod: req.PaymentMethod,
				Description:   "Enrollment in " + crs.Title,
			}
			if err := tx.Create(&txn).Error; err != nil {
				return err
			}
		}

		var err error
		enrollment, err = utils.EnrollStudent(tx, user, &crs, source)
		return err
	})
	if err != nil {
		if errors.Is(err, utils.ErrAlreadyEnrolled) {
			return middleware.ConflictError("Already enrolled in this course")
		}
		return err
	}

	utils.EnrollmentsTotal.WithLabelValues(source).Inc()
	utils.SendEnrollmentEmail(user.Email, user.FullName, crs.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, "Successfully enrolled in course", fiber.Map{
		"enrollment_id": enrollment.ID,
	})
}

type MyCourse struct {
	course.Enrollment
	CourseTitle      string  `json:"course_title"`
	CourseSlug       string  `json:"course_slug"`
	ThumbnailURL     string  `json:"thumbnail_url"`
	DurationHours    float64 `json:"duration_hours"`
	Level            string  `json:"level"`
	Rating           float64 `json:"rating"`
	InstructorName   string  `json:"instructor_name"`
	CompletedLessons int64   `json:"completed_lessons"`
	TotalLessons     int64   `json:"total_lessons"`
}

// MyCourses lists the caller's enrollments with progress derived from live lesson counts.
func MyCourses(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	q := validators.Validated[enrollmentValidator.MyCoursesQuery](c)
	status := q.Status
	if status == "" {
		status = course.EnrollmentActive
	}
	db := database.Database.Db

	var enrollments []course.Enrollment
	if err := db.Where("student_id = ? AND status = ?", user.ID, status).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return err
	}

	result := make([]MyCourse, 0, len(enrollments))
	if len(enrollments) == 0 {
		return middleware.JsonResponse(c, fiber.StatusOK, "", result)
	}

	courseIDs := make([]uint, 0, len(enrollments))
	enrollmentIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
		enrollmentIDs = append(enrollmentIDs, e.ID)
	}

	var courses []course.Course
	if err := db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
		return err
	}
	byID := make(map[uint]course.Course, len(courses))
	instructorIDs := make([]uint, 0, len(courses))
	for _, crs := range courses {
		byID[crs.ID] = crs
		instructorIDs = append(instructorIDs, crs.InstructorID)
	}

	var instructors []models.User
	if err := db.Select("id", "full_name").Where("id IN ?", instructorIDs).Find(&instructors).Error; err != nil {
		return err
	}
	names := make(map[uint]string, len(instructors))
	for _, u := range instructors {
		names[u.ID] = u.FullName
	}

	totals, err := lessonTotals(db, courseIDs)
	if err != nil {
		return err
	}
	completed, err := completedCounts(db, enrollmentIDs)
	if err != nil {
		return err
	}

	for _, e := range enrollments {
		crs := byID[e.CourseID]
		item := MyCourse{
			Enrollment:       e,
			CourseTitle:      crs.Title,
			CourseSlug:       crs.Slug,
			ThumbnailURL:     crs.ThumbnailURL,
			DurationHours:    crs.DurationHours,
			Level:            crs.Level,
			Rating:           crs.Rating,
			InstructorName:   names[crs.InstructorID],
			CompletedLessons: completed[e.ID],
			TotalLessons:     totals[e.CourseID],
		}
		item.ProgressPercentage = utils.ProgressPercentage(item.CompletedLessons, item.TotalLessons)
		result = append(result, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", result)
}

func touch(db *gorm.DB, enrollmentID uint) {
	err := db.Model(&course.Enrollment{}).Where("id = ?", enrollmentID).UpdateColumn("last_accessed_at", time.Now()).Error
	if err != nil {
		log.Warn().Err(err).Uint("enrollment_id", enrollmentID).Msg("failed to record enrollment access")
	}
}
