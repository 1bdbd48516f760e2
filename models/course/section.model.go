package course

import "eduplatform/models"

// Section is an ordered group of lessons within a course
type Section struct {
	models.Base
	CourseID    uint     `json:"course_id" gorm:"index;not null"`
	Title       string   `json:"title" gorm:"size:200;not null"`
	Description string   `json:"description"`
	OrderIndex  int      `json:"order_index" gorm:"default:0"`
	Lessons     []Lesson `json:"lessons,omitempty" gorm:"foreignKey:SectionID"`
}

const (
	LessonVideo      = "video"
	LessonArticle    = "article"
	LessonQuiz       = "quiz"
	LessonAssignment = "assignment"
	LessonDownload   = "download"
)

type Lesson struct {
	models.Base
	SectionID       uint    `json:"section_id" gorm:"index;not null"`
	Title           string  `json:"title" gorm:"size:200;not null"`
	Description     string  `json:"description"`
	Type            string  `json:"type" gorm:"size:20;default:'video'"`
	ContentURL      *string `json:"content_url"`
	ContentText     string  `json:"content_text,omitempty" gorm:"type:text"`
	DurationMinutes int     `json:"duration_minutes" gorm:"default:0"`
	OrderIndex      int     `json:"order_index" gorm:"default:0"`
	IsPreview       bool    `json:"is_preview" gorm:"default:false"`
	IsMandatory     bool    `json:"is_mandatory" gorm:"not null"`
}
