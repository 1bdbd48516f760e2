package forum

import (
	"time"

	"eduplatform/models"
)

// Thread is a discussion started in a course forum, optionally about one lesson.
type Thread struct {
	models.Base
	CourseID     uint       `json:"course_id" gorm:"index;not null"`
	LessonID     *uint      `json:"lesson_id" gorm:"index"`
	AuthorID     uint       `json:"author_id" gorm:"index;not null"`
	Title        string     `json:"title" gorm:"size:200;not null"`
	Content      string     `json:"content" gorm:"type:text;not null"`
	IsPinned     bool       `json:"is_pinned" gorm:"default:false"`
	IsLocked     bool       `json:"is_locked" gorm:"default:false"`
	ViewsCount   int        `json:"views_count" gorm:"default:0"`
	RepliesCount int        `json:"replies_count" gorm:"default:0"`
	LastReplyAt  *time.Time `json:"last_reply_at"`
}

// Reply belongs to a thread; ParentReplyID makes replies a tree.
type Reply struct {
	models.Base
	ThreadID      uint   `json:"thread_id" gorm:"index;not null"`
	AuthorID      uint   `json:"author_id" gorm:"index;not null"`
	ParentReplyID *uint  `json:"parent_reply_id" gorm:"index"`
	Content       string `json:"content" gorm:"type:text;not null"`
	IsSolution    bool   `json:"is_solution" gorm:"default:false"`
	LikesCount    int    `json:"likes_count" gorm:"default:0"`
}
