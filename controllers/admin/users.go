package adminController

import (
	"errors"

	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/utils"
	"eduplatform/validators"
	adminValidator "eduplatform/validators/admin"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserList pages through accounts, newest first.
func UserList(c *fiber.Ctx) error {
	req := validators.Validated[adminValidator.ListUsersQuery](c)

	query := database.Database.Db.Model(&models.User{})
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var users []models.User
	err := query.Order("created_at DESC, id DESC").
		Offset(utils.Offset(req.Page, req.Limit)).
		Limit(req.Limit).
		Find(&users).Error
	if err != nil {
		return err
	}

	return middleware.PaginatedResponse(c, users, total, req.Page, req.Limit)
}

// SetUserStatus activates or deactivates an account. Inactive accounts cannot log in and their tokens stop working.
func SetUserStatus(c *fiber.Ctx) error {
	admin, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	id, err := validators.ParamID(c, "id")
	if err != nil {
		return err
	}
	req := validators.Validated[adminValidator.UserStatusRequest](c)

	if id == admin.ID {
		return middleware.ValidationError("You cannot change your own status")
	}

	db := database.Database.Db
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.NotFoundError("User not found")
		}
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).UpdateColumn("is_active", *req.IsActive).Error; err != nil {
			return err
		}
		return utils.RecordActivity(tx, models.ActivityLog{
			UserID:     admin.ID,
			Action:     models.ActivityUserStatus,
			EntityType: "user",
			EntityID:   user.ID,
			IPAddress:  c.IP(),
		}, map[string]interface{}{"is_active": *req.IsActive})
	})
	if err != nil {
		return err
	}

	user.IsActive = *req.IsActive
	return middleware.JsonResponse(c, fiber.StatusOK, "User status updated", user)
}
