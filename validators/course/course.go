package courseValidator

import (
	"strings"

	"eduplatform/models/course"
	"eduplatform/validators"

	"github.com/gofiber/fiber/v2"
)

const (
	SortNewest    = "newest"
	SortPopular   = "popular"
	SortRating    = "rating"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
)

type ListCoursesQuery struct {
	validators.Pagination
	Category     string `query:"category"`
	Level        string `query:"level" validate:"omitempty,oneof=beginner intermediate advanced all"`
	Search       string `query:"search" validate:"max=200"`
	Sort         string `query:"sort" validate:"omitempty,oneof=newest popular rating price_low price_high"`
	InstructorID uint   `query:"instructor_id"`
	Status       string `query:"status" validate:"omitempty,oneof=draft pending published archived"`
}

func (q *ListCoursesQuery) Normalize() {
	q.Defaults(20)
	q.Search = strings.TrimSpace(q.Search)
	if q.Sort == "" {
		q.Sort = SortNewest
	}
}

// CourseRequest is used for create; on update every field is optional.
type CourseRequest struct {
	Title            string   `json:"title" validate:"required,min=5,max=200"`
	Description      string   `json:"description" validate:"required,min=20"`
	ShortDescription string   `json:"short_description" validate:"max=300"`
	CategoryID       *uint    `json:"category_id"`
	ThumbnailURL     string   `json:"thumbnail_url" validate:"omitempty,url"`
	PreviewVideoURL  string   `json:"preview_video_url" validate:"omitempty,url"`
	Price            float64  `json:"price" validate:"gte=0"`
	DiscountPrice    *float64 `json:"discount_price" validate:"omitempty,gte=0"`
	Currency         string   `json:"currency" validate:"omitempty,len=3"`
	Level            string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced all"`
	Language         string   `json:"language" validate:"max=10"`
	DurationHours    float64  `json:"duration_hours" validate:"gte=0"`
	Requirements     []string `json:"requirements"`
	LearningOutcomes []string `json:"learning_outcomes"`
	TargetAudience   []string `json:"target_audience"`
	Tags             []string `json:"tags"`
}

func (r *CourseRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
	if r.Currency == "" {
		r.Currency = "USD"
	}
	if r.Level == "" {
		r.Level = course.LevelAll
	}
	if r.Language == "" {
		r.Language = "en"
	}
}

// UpdateCourseRequest carries only the fields the client sent.
type UpdateCourseRequest struct {
	Title            *string   `json:"title" validate:"omitempty,min=5,max=200"`
	Description      *string   `json:"description" validate:"omitempty,min=20"`
	ShortDescription *string   `json:"short_description" validate:"omitempty,max=300"`
	CategoryID       *uint     `json:"category_id"`
	ThumbnailURL     *string   `json:"thumbnail_url" validate:"omitempty,url"`
	PreviewVideoURL  *string   `json:"preview_video_url" validate:"omitempty,url"`
	Price            *float64  `json:"price" validate:"omitempty,gte=0"`
	DiscountPrice    *float64  `json:"discount_price" validate:"omitempty,gte=0"`
	Currency         *string   `json:"currency" validate:"omitempty,len=3"`
	Level            *string   `json:"level" validate:"omitempty,oneof=beginner intermediate advanced all"`
	Language         *string   `json:"language" validate:"omitempty,max=10"`
	DurationHours    *float64  `json:"duration_hours" validate:"omitempty,gte=0"`
	IsFeatured       *bool     `json:"is_featured"`
	Requirements     *[]string `json:"requirements"`
	LearningOutcomes *[]string `json:"learning_outcomes"`
	TargetAudience   *[]string `json:"target_audience"`
	Tags             *[]string `json:"tags"`
}

type SectionRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description"`
	OrderIndex  *int   `json:"order_index" validate:"omitempty,gte=0"`
}

type LessonRequest struct {
	Title           string  `json:"title" validate:"required,min=2,max=200"`
	Description     string  `json:"description"`
	Type            string  `json:"type" validate:"omitempty,oneof=video article quiz assignment download"`
	ContentURL      *string `json:"content_url" validate:"omitempty,url"`
	ContentText     string  `json:"content_text"`
	DurationMinutes int     `json:"duration_minutes" validate:"gte=0"`
	OrderIndex      *int    `json:"order_index" validate:"omitempty,gte=0"`
	IsPreview       bool    `json:"is_preview"`
	IsMandatory     *bool   `json:"is_mandatory"`
}

func (r *LessonRequest) Normalize() {
	if r.Type == "" {
		r.Type = course.LessonVideo
	}
}

type ReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Title   string `json:"title" validate:"max=200"`
	Comment string `json:"comment" validate:"max=5000"`
}

func ListCourses() fiber.Handler {
	return validators.Query[ListCoursesQuery]()
}

// CreateCourse validates course creation request
func CreateCourse() fiber.Handler {
	return validators.Body[CourseRequest]()
}

func UpdateCourse() fiber.Handler {
	return validators.Body[UpdateCourseRequest]()
}

func CreateSection() fiber.Handler {
	return validators.Body[SectionRequest]()
}

func CreateLesson() fiber.Handler {
	return validators.Body[LessonRequest]()
}

func CreateReview() fiber.Handler {
	return validators.Body[ReviewRequest]()
}
