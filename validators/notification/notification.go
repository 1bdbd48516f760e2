package notificationValidator

import (
	"eduplatform/validators"

	"github.com/gofiber/fiber/v2"
)

type ListNotificationsQuery struct {
	validators.Pagination
	Unread bool `query:"unread"`
}

func (q *ListNotificationsQuery) Normalize() {
	q.Defaults(20)
}

func ListNotifications() fiber.Handler {
	return validators.Query[ListNotificationsQuery]()
}
