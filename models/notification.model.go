package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	NotificationEnrollment      = "enrollment"
	NotificationNewStudent      = "new_student"
	NotificationCourseCompleted = "course_completed"
	NotificationForumPost       = "forum_post"
	NotificationForumReply      = "forum_reply"
	NotificationPaymentSuccess  = "payment_success"
)

type Notification struct {
	Base
	UserID  uint           `json:"user_id" gorm:"index;not null"`
	Type    string         `json:"type" gorm:"size:50;not null"`
	Title   string         `json:"title" gorm:"not null"`
	Message string         `json:"message" gorm:"type:text"`
	Data    datatypes.JSON `json:"data"`
	IsRead  bool           `json:"is_read" gorm:"default:false;index"`
	ReadAt  *time.Time     `json:"read_at"`
}
