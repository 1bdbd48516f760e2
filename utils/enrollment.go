package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eduplatform/models"
	"eduplatform/models/course"

	"gorm.io/gorm"
)

const (
	EnrollSourceDirect   = "direct"
	EnrollSourceFree     = "free"
	EnrollSourceCheckout = "checkout"
)

var ErrAlreadyEnrolled = errors.New("already enrolled in this course")

// IsDuplicateKey reports a unique-constraint violation from any supported driver.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate")
}

// EnrollStudent creates the enrollment, bumps the course's student counter, notifies the student and
// the instructor, and records the activity. It must run inside tx so a failure in any step undoes all of them.
func EnrollStudent(tx *gorm.DB, student *models.User, c *course.Course, source string) (*course.Enrollment, error) {
	var existing int64
	if err := tx.Model(&course.Enrollment{}).
		Where("student_id = ? AND course_id = ?", student.ID, c.ID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyEnrolled
	}

	now := time.Now()
	enrollment := course.Enrollment{
		StudentID:      student.ID,
		CourseID:       c.ID,
		Status:         course.EnrollmentActive,
		EnrolledAt:     now,
		LastAccessedAt: &now,
	}
	if err := tx.Create(&enrollment).Error; err != nil {
		if IsDuplicateKey(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	if err := tx.Model(&course.Course{}).Where("id = ?", c.ID).
		UpdateColumn("total_students", gorm.Expr("total_students + 1")).Error; err != nil {
		return nil, err
	}

	data := map[string]interface{}{"course_id": c.ID, "enrollment_id": enrollment.ID}
	if err := Notify(tx, student.ID, models.NotificationEnrollment, "Enrollment confirmed",
		fmt.Sprintf("You are now enrolled in %s", c.Title), data); err != nil {
		return nil, err
	}
	if c.InstructorID != student.ID {
		if err := Notify(tx, c.InstructorID, models.NotificationNewStudent, "New student",
			fmt.Sprintf("%s enrolled in %s", student.FullName, c.Title), data); err != nil {
			return nil, err
		}
	}

	err := RecordActivity(tx, models.ActivityLog{
		UserID:     student.ID,
		Action:     models.ActivityEnroll,
		EntityType: "course",
		EntityID:   c.ID,
	}, map[string]interface{}{"source": source, "enrollment_id": enrollment.ID})
	if err != nil {
		return nil, err
	}

	return &enrollment, nil
}
