package course

import (
	"time"

	"eduplatform/models"
)

const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelAll          = "all"
)

// Course represents a learning course owned by an instructor
type Course struct {
	models.Base
	InstructorID     uint       `json:"instructor_id" gorm:"index;not null"`
	CategoryID       *uint      `json:"category_id" gorm:"index"`
	Title            string     `json:"title" gorm:"size:200;not null"`
	Slug             string     `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description      string     `json:"description" gorm:"type:text"`
	ShortDescription string     `json:"short_description" gorm:"size:500"`
	ThumbnailURL     string     `json:"thumbnail_url"`
	PreviewVideoURL  string     `json:"preview_video_url"`
	Price            float64    `json:"price" gorm:"default:0"`
	DiscountPrice    *float64   `json:"discount_price"`
	Currency         string     `json:"currency" gorm:"size:3;default:'USD'"`
	Level            string     `json:"level" gorm:"size:20;default:'all'"`
	Language         string     `json:"language" gorm:"size:10;default:'en'"`
	DurationHours    float64    `json:"duration_hours" gorm:"default:0"`
	Status           string     `json:"status" gorm:"size:20;default:'draft';index"`
	IsFeatured       bool       `json:"is_featured" gorm:"default:false"`
	Requirements     []string   `json:"requirements" gorm:"serializer:json;type:text"`
	LearningOutcomes []string   `json:"learning_outcomes" gorm:"serializer:json;type:text"`
	TargetAudience   []string   `json:"target_audience" gorm:"serializer:json;type:text"`
	Tags             []string   `json:"tags" gorm:"serializer:json;type:text"`
	Rating           float64    `json:"rating" gorm:"default:0"`
	TotalRatings     int        `json:"total_ratings" gorm:"default:0"`
	TotalStudents    int        `json:"total_students" gorm:"default:0"`
	PublishedAt      *time.Time `json:"published_at"`
}

// IsPublished reports whether the course is visible in the public catalog.
func (c *Course) IsPublished() bool {
	return c.Status == StatusPublished
}

// BasePrice is the discount price when one is set, the list price otherwise.
func (c *Course) BasePrice() float64 {
	if c.DiscountPrice != nil && *c.DiscountPrice > 0 {
		return *c.DiscountPrice
	}
	return c.Price
}

// CanManage reports whether user may modify the course: its instructor or any admin.
func (c *Course) CanManage(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.Role == models.RoleAdmin || c.InstructorID == user.ID
}

// Category groups courses; ParentID builds a one-level hierarchy.
type Category struct {
	models.Base
	Name        string `json:"name" gorm:"size:100;not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:120;not null"`
	Description string `json:"description"`
	Icon        string `json:"icon" gorm:"size:50"`
	ParentID    *uint  `json:"parent_id" gorm:"index"`
}
