package enrollmentController

import (
	"errors"
	"fmt"
	"strings"
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

type LessonView struct {
	course.Lesson
	IsCompleted      bool       `json:"is_completed"`
	CompletedAt      *time.Time `json:"completed_at"`
	TimeSpentMinutes int        `json:"time_spent_minutes"`
	LastPosition     int        `json:"last_position"`
	Notes            string     `json:"notes"`
}

type SectionView struct {
	ID                 uint         `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	OrderIndex         int          `json:"order_index"`
	Lessons            []LessonView `json:"lessons"`
	TotalLessons       int64        `json:"total_lessons"`
	CompletedLessons   int64        `json:"completed_lessons"`
	ProgressPercentage int          `json:"progress_percentage"`
}

// lessonTotals counts lessons per course.
func lessonTotals(db *gorm.DB, courseIDs []uint) (map[uint]int64, error) {
	var rows []struct {
		CourseID uint
		Total    int64
	}
	err := db.Model(&course.Lesson{}).
		Select("sections.course_id AS course_id, COUNT(lessons.id) AS total").
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id IN ?", courseIDs).
		Group("sections.course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	totals := make(map[uint]int64, len(rows))
	for _, row := range rows {
		totals[row.CourseID] = row.Total
	}
	return totals, nil
}

// completedCounts counts completed lessons per enrollment. Progress rows of deleted lessons are ignored.
func completedCounts(db *gorm.DB, enrollmentIDs []uint) (map[uint]int64, error) {
	var rows []struct {
		EnrollmentID uint
		Total        int64
	}
	err := db.Model(&course.LessonProgress{}).
		Select("lesson_progresses.enrollment_id AS enrollment_id, COUNT(lesson_progresses.id) AS total").
		Joins("JOIN lessons ON lessons.id = lesson_progresses.lesson_id").
		Where("lesson_progresses.enrollment_id IN ? AND lesson_progresses.is_completed = ?", enrollmentIDs, true).
		Group("lesson_progresses.enrollment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.EnrollmentID] = row.Total
	}
	return counts, nil
}

// GetProgress returns the curriculum of an enrolled course annotated with the caller's progress.
func GetProgress(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	courseID, err := validators.ParamID(c, "courseId")
	if err != nil {
		return err
	}
	db := database.Database.Db

	var enrollment course.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", user.ID, courseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("Not enrolled in this course")
		}
		return err
	}

	var sections []course.Section
	err = db.Where("course_id = ?", courseID).
		Order("order_index, id").
		Preload("Lessons", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("order_index, id")
		}).
		Find(&sections).Error
	if err != nil {
		return err
	}

	var rows []course.LessonProgress
	if err := db.Where("enrollment_id = ?", enrollment.ID).Find(&rows).Error; err != nil {
		return err
	}
	progress := make(map[uint]course.LessonProgress, len(rows))
	for _, p := range rows {
		progress[p.LessonID] = p
	}

	views := make([]SectionView, 0, len(sections))
	var total, completed int64
	for _, s := range sections {
		view := SectionView{
			ID:           s.ID,
			Title:        s.Title,
			Description:  s.Description,
			OrderIndex:   s.OrderIndex,
			Lessons:      make([]LessonView, 0, len(s.Lessons)),
			TotalLessons: int64(len(s.Lessons)),
		}
		for _, l := range s.Lessons {
			lv := LessonView{Lesson: l}
			if p, ok := progress[l.ID]; ok {
				lv.IsCompleted = p.IsCompleted
				lv.CompletedAt = p.CompletedAt
				lv.TimeSpentMinutes = p.TimeSpentMinutes
				lv.LastPosition = p.LastPosition
				lv.Notes = p.Notes
				if p.IsCompleted {
					view.CompletedLessons++
				}
			}
			view.Lessons = append(view.Lessons, lv)
		}
		view.ProgressPercentage = utils.ProgressPercentage(view.CompletedLessons, view.TotalLessons)
		total += view.TotalLessons
		completed += view.CompletedLessons
		views = append(views, view)
	}

	touch(db, enrollment.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, "", fiber.Map{
		"enrollment":        enrollment,
		"sections":          views,
		"overall_progress":  utils.ProgressPercentage(completed, total),
		"total_lessons":     total,
		"completed_lessons": completed,
	})
}

// certificateNumber is printed on the certificate and is unique per enrollment.
func certificateNumber(enrollmentID uint) string {
	return fmt.Sprintf("EDU-%06d-%s", enrollmentID, strings.ToUpper(utils.NewOpaqueToken()[:8]))
}

// UpdateProgress upserts a lesson's progress and recomputes the enrollment percentage. Reaching 100%
// completes an active enrollment exactly once; later updates leave the certificate untouched.
func UpdateProgress(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	req := validators.Validated[enrollmentValidator.ProgressRequest](c)
	db := database.Database.Db

	var lesson course.Lesson
	if err := db.First(&lesson, req.LessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("Lesson not found")
		}
		return err
	}
	var section course.Section
	if err := db.First(&section, lesson.SectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("Lesson not found")
		}
		return err
	}

	var enrollment course.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", user.ID, section.CourseID).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ForbiddenError("Not enrolled in this course")
		}
		return err
	}

	var percentage int
	completedNow := false
	err = db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := saveLessonProgress(tx, enrollment.ID, req, now); err != nil {
			return err
		}

		totals, err := lessonTotals(tx, []uint{section.CourseID})
		if err != nil {
			return err
		}
		counts, err := completedCounts(tx, []uint{enrollment.ID})
		if err != nil {
			return err
		}
		percentage = utils.ProgressPercentage(counts[enrollment.ID], totals[section.CourseID])

		if err := tx.Model(&course.Enrollment{}).Where("id = ?", enrollment.ID).Updates(map[string]interface{}{
			"progress_percentage": percentage,
			"last_accessed_at":    now,
		}).Error; err != nil {
			return err
		}

		if percentage < 100 {
			return nil
		}

		res := tx.Model(&course.Enrollment{}).
			Where("id = ? AND status = ?", enrollment.ID, course.EnrollmentActive).
			Updates(map[string]interface{}{
				"status":             course.EnrollmentCompleted,
				"completed_at":       now,
				"certificate_issued": true,
				"certificate_number": certificateNumber(enrollment.ID),
				"certificate_url":    fmt.Sprintf("/api/enrollments/certificate/%d", enrollment.ID),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		completedNow = true

		return utils.Notify(tx, user.ID, models.NotificationCourseCompleted, "Course Completed!",
			"Congratulations! You have completed the course and earned your certificate.",
			map[string]interface{}{"course_id": section.CourseID, "enrollment_id": enrollment.ID})
	})
	if err != nil {
		return err
	}

	if completedNow {
		var crs course.Course
		if err := db.Select("id", "title").First(&crs, section.CourseID).Error; err != nil {
			log.Warn().Err(err).Uint("course_id", section.CourseID).Msg("course lookup for completion email failed")
		} else {
			utils.SendCourseCompletedEmail(user.Email, user.FullName, crs.Title, enrollment.ID)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", fiber.Map{
		"progress_percentage": percentage,
		"is_completed":        percentage == 100,
	})
}

func saveLessonProgress(tx *gorm.DB, enrollmentID uint, req *enrollmentValidator.ProgressRequest, now time.Time) error {
	isCompleted := *req.IsCompleted

	var progress course.LessonProgress
	err := tx.Where("enrollment_id = ? AND lesson_id = ?", enrollmentID, req.LessonID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = course.LessonProgress{
			EnrollmentID: enrollmentID,
			LessonID:     req.LessonID,
			IsCompleted:  isCompleted,
		}
		if isCompleted {
			progress.CompletedAt = &now
		}
		if req.TimeSpentMinutes != nil {
			progress.TimeSpentMinutes = *req.TimeSpentMinutes
		}
		if req.LastPosition != nil {
			progress.LastPosition = *req.LastPosition
		}
		if req.Notes != nil {
			progress.Notes = *req.Notes
		}
		return tx.Create(&progress).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{"is_completed": isCompleted}
	if isCompleted && !progress.IsCompleted {
		updates["completed_at"] = now
	}
	if !isCompleted {
		updates["completed_at"] = nil
	}
	if req.TimeSpentMinutes != nil {
		updates["time_spent_minutes"] = gorm.Expr("time_spent_minutes + ?", *req.TimeSpentMinutes)
	}
	if req.LastPosition != nil {
		updates["last_position"] = *req.LastPosition
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	return tx.Model(&progress).Updates(updates).Error
}
