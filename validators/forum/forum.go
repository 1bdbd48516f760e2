package forumValidator

import (
	"strings"

	"eduplatform/validators"

	"github.com/gofiber/fiber/v2"
)

const (
	SortRecent     = "recent"
	SortPopular    = "popular"
	SortUnanswered = "unanswered"
)

type ListThreadsQuery struct {
	validators.Pagination
	Sort string `query:"sort" validate:"omitempty,oneof=recent popular unanswered"`
}

func (q *ListThreadsQuery) Normalize() {
	q.Defaults(20)
	if q.Sort == "" {
		q.Sort = SortRecent
	}
}

type CreateThreadRequest struct {
	CourseID uint   `json:"course_id" validate:"required"`
	LessonID *uint  `json:"lesson_id"`
	Title    string `json:"title" validate:"required,min=5,max=200"`
	Content  string `json:"content" validate:"required,min=10"`
}

func (r *CreateThreadRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Content = strings.TrimSpace(r.Content)
}

type UpdateThreadRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=5,max=200"`
	Content  *string `json:"content" validate:"omitempty,min=10"`
	IsPinned *bool   `json:"is_pinned"`
	IsLocked *bool   `json:"is_locked"`
}

type CreateReplyRequest struct {
	ThreadID      uint   `json:"thread_id" validate:"required"`
	Content       string `json:"content" validate:"required,min=1"`
	ParentReplyID *uint  `json:"parent_reply_id"`
}

func (r *CreateReplyRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

type SearchQuery struct {
	Q        string `query:"q" validate:"required,max=200"`
	CourseID uint   `query:"course_id"`
}

func (q *SearchQuery) Normalize() {
	q.Q = strings.TrimSpace(q.Q)
}

func ListThreads() fiber.Handler {
	return validators.Query[ListThreadsQuery]()
}

func CreateThread() fiber.Handler {
	return validators.Body[CreateThreadRequest]()
}

func UpdateThread() fiber.Handler {
	return validators.Body[UpdateThreadRequest]()
}

func CreateReply() fiber.Handler {
	return validators.Body[CreateReplyRequest]()
}

func Search() fiber.Handler {
	return validators.Query[SearchQuery]()
}
