package userController

import (
	"errors"

	"eduplatform/config"
	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/utils"
	"eduplatform/validators"
	userValidator "eduplatform/validators/userValidator"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UpdateProfile changes the caller's display fields. Email and role are not editable here.
func UpdateProfile(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	req := validators.Validated[userValidator.UpdateProfileRequest](c)

	updates := map[string]interface{}{}
	changed := []string{}
	set := func(column string, v *string) {
		if v != nil {
			updates[column] = *v
			changed = append(changed, column)
		}
	}
	set("full_name", req.FullName)
	set("bio", req.Bio)
	set("avatar_url", req.AvatarURL)
	set("phone", req.Phone)
	set("country", req.Country)
	set("language", req.Language)

	if len(updates) == 0 {
		return middleware.ValidationError("No fields to update")
	}

	db := database.Database.Db
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).Updates(updates).Error; err != nil {
			return err
		}
		return utils.RecordActivity(tx, models.ActivityLog{
			UserID:     user.ID,
			Action:     models.ActivityProfileUpdate,
			EntityType: "user",
			EntityID:   user.ID,
			IPAddress:  c.IP(),
		}, map[string]interface{}{"fields": changed})
	})
	if err != nil {
		return err
	}

	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "Profile updated", fresh)
}

// ChangePassword replaces the caller's password after checking the current one.
func ChangePassword(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	req := validators.Validated[userValidator.ChangePasswordRequest](c)

	ok, err := utils.VerifyPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		return err
	}
	if !ok {
		return middleware.ValidationFields(map[string]string{"current_password": "is incorrect"})
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(user).UpdateColumn("password_hash", hash).Error; err != nil {
			return err
		}
		return utils.RecordActivity(tx, models.ActivityLog{
			UserID:     user.ID,
			Action:     models.ActivityPasswordChange,
			EntityType: "user",
			EntityID:   user.ID,
			IPAddress:  c.IP(),
		}, nil)
	})
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "Password changed", nil)
}

// UploadAvatar stores a multipart "avatar" image and points the caller's avatar_url at it.
func UploadAvatar(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return middleware.ValidationFields(map[string]string{"avatar": "avatar is required"})
	}

	rel, err := utils.SaveUploadedImage(file, config.AppConfig.UploadDir, "avatars", utils.MaxAvatarBytes)
	switch {
	case errors.Is(err, utils.ErrFileTooLarge):
		return middleware.ValidationFields(map[string]string{"avatar": "must be at most 2MB"})
	case errors.Is(err, utils.ErrFileTypeInvalid):
		return middleware.ValidationFields(map[string]string{"avatar": "must be a png, jpg, gif or webp image"})
	case err != nil:
		return err
	}

	url := utils.GetFileURL(rel)
	if err := database.Database.Db.Model(user).UpdateColumn("avatar_url", url).Error; err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "Avatar updated", fiber.Map{"avatar_url": url})
}
