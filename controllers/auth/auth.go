package authController

import (
	"encoding/json"
	"errors"
	"time"

	"eduplatform/cache"
	"eduplatform/config"
	"eduplatform/database"
	"eduplatform/middleware"
	"eduplatform/models"
	"eduplatform/utils"
	"eduplatform/validators"
	authValidator "eduplatform/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const (
	verificationTTL  = 24 * time.Hour
	passwordResetTTL = time.Hour
)

type resetPayload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

// Login checks credentials and issues a session token.
func Login(c *fiber.Ctx) error {
	req := validators.Validated[authValidator.LoginRequest](c)
	db := database.Database.Db

	var user models.User
	err := db.Where("email = ? AND is_active = ?", req.Email, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.AuthError("Invalid credentials")
		}
		return err
	}

	ok, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("stored password hash is unreadable")
		return middleware.AuthError("Invalid credentials")
	}
	if !ok {
		return middleware.AuthError("Invalid credentials")
	}

	if !user.IsVerified {
		return middleware.ForbiddenError("Please verify your email first")
	}

	token, expiresAt, err := utils.GenerateToken(&user, config.AppConfig.JWTSecret, config.AppConfig.TokenTTL)
	if err != nil {
		return err
	}

	now := time.Now()
	user.LastLoginAt = &now
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).UpdateColumn("last_login_at", now).Error; err != nil {
			return err
		}
		return utils.RecordActivity(tx, models.ActivityLog{
			UserID:     user.ID,
			Action:     models.ActivityLogin,
			EntityType: "auth",
			IPAddress:  c.IP(),
			UserAgent:  c.Get(fiber.HeaderUserAgent),
		}, nil)
	})
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Login successful", fiber.Map{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt,
	})
}

// Register creates an unverified account and sends the verification link.
func Register(c *fiber.Ctx) error {
	req := validators.Validated[authValidator.RegisterRequest](c)
	db := database.Database.Db

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", req.Email).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return middleware.ConflictError("Email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         req.Role,
		IsVerified:   false,
		IsActive:     true,
	}
	verification := models.EmailVerification{
		Token:     utils.NewOpaqueToken(),
		ExpiresAt: time.Now().Add(verificationTTL),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		verification.UserID = user.ID
		if err := tx.Create(&verification).Error; err != nil {
			return err
		}
		return utils.RecordActivity(tx, models.ActivityLog{
			UserID:     user.ID,
			Action:     models.ActivityRegister,
			EntityType: "user",
			EntityID:   user.ID,
			IPAddress:  c.IP(),
			UserAgent:  c.Get(fiber.HeaderUserAgent),
		}, nil)
	})
	if err != nil {
		if utils.IsDuplicateKey(err) {
			return middleware.ConflictError("Email already registered")
		}
		return err
	}

	utils.SendVerificationEmail(user.Email, user.FullName, verification.Token)

	data := fiber.Map{"user_id": user.ID}
	if config.AppConfig.IsDevelopment() {
		data["verification_token"] = verification.Token
	}
	return middleware.JsonResponse(c, fiber.StatusCreated,
		"Registration successful. Please check your email to verify your account.", data)
}

// VerifyEmail consumes a verification token.
func VerifyEmail(c *fiber.Ctx) error {
	token := c.Params("token")
	db := database.Database.Db

	var verification models.EmailVerification
	err := db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&verification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ValidationError("Invalid or expired token")
		}
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", verification.UserID).
			Update("is_verified", true).Error; err != nil {
			return err
		}
		return tx.Delete(&verification).Error
	})
	if err != nil {
		return err
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Email verified successfully. You can now login.", nil)
}

// ForgotPassword answers identically whether or not the account exists.
func ForgotPassword(c *fiber.Ctx) error {
	req := validators.Validated[authValidator.ForgotPasswordRequest](c)
	const message = "If an account exists, a reset link has been sent."

	var user models.User
	err := database.Database.Db.Where("email = ? AND is_active = ?", req.Email, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.JsonResponse(c, fiber.StatusOK, message, nil)
		}
		return err
	}

	token := utils.NewOpaqueToken()
	payload, err := json.Marshal(resetPayload{UserID: user.ID, Email: user.Email})
	if err != nil {
		return err
	}
	if err := cache.Cache.Set(c.UserContext(), cache.PasswordResetKey(token), string(payload), passwordResetTTL); err != nil {
		return err
	}

	utils.SendPasswordResetEmail(user.Email, user.FullName, token)

	var data interface{}
	if config.AppConfig.IsDevelopment() {
		data = fiber.Map{"reset_token": token}
	}
	return middleware.JsonResponse(c, fiber.StatusOK, message, data)
}

// ResetPassword sets a new password from a reset token. The token is single-use.
func ResetPassword(c *fiber.Ctx) error {
	req := validators.Validated[authValidator.ResetPasswordRequest](c)
	key := cache.PasswordResetKey(req.Token)

	raw, err := cache.Cache.Get(c.UserContext(), key)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return middleware.ValidationError("Invalid or expired token")
		}
		return err
	}

	var payload resetPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return middleware.ValidationError("Invalid or expired token")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return err
	}

	err = database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", payload.UserID).
			Update("password_hash", hash).Error; err != nil {
			return err
		}
		return utils.RecordActivity(tx, models.ActivityLog{
			UserID:     payload.UserID,
			Action:     models.ActivityPasswordReset,
			EntityType: "user",
			EntityID:   payload.UserID,
			IPAddress:  c.IP(),
		}, nil)
	})
	if err != nil {
		return err
	}

	if _, err := cache.Cache.Delete(c.UserContext(), key); err != nil {
		log.Warn().Err(err).Msg("failed to delete password reset token")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Password reset successful. You can now login.", nil)
}

// Logout revokes a valid bearer token for the rest of its lifetime. It always succeeds.
func Logout(c *fiber.Ctx) error {
	token, ok := utils.ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusOK, "Logged out successfully", nil)
	}

	// Only verified tokens are blacklisted.
	if claims, err := utils.VerifyToken(token, config.AppConfig.JWTSecret); err == nil {
		if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
			if err := cache.Cache.Set(c.UserContext(), cache.BlacklistKey(token), "1", ttl); err != nil {
				log.Warn().Err(err).Msg("failed to blacklist token on logout")
			}
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Logged out successfully", nil)
}

// Me returns the authenticated user's profile.
func Me(c *fiber.Ctx) error {
	user, err := middleware.MustUser(c)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, "", user)
}
