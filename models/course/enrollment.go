package course

import (
	"time"

	"eduplatform/models"
)

const (
	EnrollmentActive    = "active"
	EnrollmentCompleted = "completed"
	EnrollmentSuspended = "suspended"
)

// Enrollment tracks a student's enrollment in a course with progress.
// The (student_id, course_id) unique index rejects concurrent duplicate enrollments.
type Enrollment struct {
	models.Base
	StudentID          uint       `json:"student_id" gorm:"uniqueIndex:idx_enrollment_student_course;not null"`
	CourseID           uint       `json:"course_id" gorm:"uniqueIndex:idx_enrollment_student_course;index;not null"`
	Status             string     `json:"status" gorm:"size:20;default:'active'"`
	EnrolledAt         time.Time  `json:"enrolled_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	ProgressPercentage int        `json:"progress_percentage" gorm:"default:0"`
	LastAccessedAt     *time.Time `json:"last_accessed_at"`
	CertificateIssued  bool       `json:"certificate_issued" gorm:"default:false"`
	CertificateNumber  string     `json:"certificate_number" gorm:"size:64"`
	CertificateURL     string     `json:"certificate_url"`
}

// LessonProgress is the per-lesson state of one enrollment.
type LessonProgress struct {
	models.Base
	EnrollmentID     uint       `json:"enrollment_id" gorm:"uniqueIndex:idx_progress_enrollment_lesson;not null"`
	LessonID         uint       `json:"lesson_id" gorm:"uniqueIndex:idx_progress_enrollment_lesson;not null"`
	IsCompleted      bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt      *time.Time `json:"completed_at"`
	TimeSpentMinutes int        `json:"time_spent_minutes" gorm:"default:0"`
	LastPosition     int        `json:"last_position" gorm:"default:0"`
	Notes            string     `json:"notes" gorm:"type:text"`
}

// Review is one student's rating of a course.
type Review struct {
	models.Base
	CourseID           uint   `json:"course_id" gorm:"uniqueIndex:idx_review_course_student;not null"`
	StudentID          uint   `json:"student_id" gorm:"uniqueIndex:idx_review_course_student;not null"`
	Rating             int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Title              string `json:"title" gorm:"size:200"`
	Comment            string `json:"comment" gorm:"type:text"`
	IsVerifiedPurchase bool   `json:"is_verified_purchase" gorm:"default:false"`
	HelpfulCount       int    `json:"helpful_count" gorm:"default:0"`
}
