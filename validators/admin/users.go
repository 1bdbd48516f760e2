package adminValidator

import (
	"strings"

	"eduplatform/validators"

	"github.com/gofiber/fiber/v2"
)

type ListUsersQuery struct {
	validators.Pagination
	Role   string `query:"role" validate:"omitempty,oneof=student instructor admin"`
	Search string `query:"search" validate:"omitempty,max=100"`
}

func (q *ListUsersQuery) Normalize() {
	q.Defaults(20)
	q.Search = strings.TrimSpace(q.Search)
}

type UserStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func ListUsers() fiber.Handler {
	return validators.Query[ListUsersQuery]()
}

func UserStatus() fiber.Handler {
	return validators.Body[UserStatusRequest]()
}
