package notificationController

import (
	"strconv"
	"time"

	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/utils"
	"eduplatform/validators"
	notificationValidator "eduplatform/validators/notification"

	"github.com/gofiber/fiber/v2"
)

// ListNotifications returns the caller's notifications, newest first, with the unread count.
func ListNotifications(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	q := validators.Validated[notificationValidator.ListNotificationsQuery](c)
	db := database.Database.Db

	query := db.Model(&models.Notification{}).Where("user_id = ?", user.ID)
	if q.Unread {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	items := []models.Notification{}
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset(utils.Offset(q.Page, q.Limit)).Limit(q.Limit).
		Find(&items).Error; err != nil {
		return err
	}

	var unread int64
	if err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Count(&unread).Error; err != nil {
		return err
	}
	c.Set("X-Unread-Count", strconv.FormatInt(unread, 10))

	return middleware.PaginatedResponse(c, items, total, q.Page, q.Limit)
}

func MarkRead(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	id, err := validators.ParamID(c, "id")
	if err != nil {
		return err
	}

	res := database.Database.Db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, user.ID).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return middleware.NotFoundError("Notification not found")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "Notification marked as read", nil)
}

func MarkAllRead(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}

	res := database.Database.Db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.ID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "All notifications marked as read", fiber.Map{
		"updated": res.RowsAffected,
	})
}
