package middleware

import (
	"errors"

	"eduplatform/cache"
	"eduplatform/config"
	"eduplatform/database"
	"eduplatform/models"
	"eduplatform/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	localUser  = "user"
	localToken = "token"
)

// Authenticate requires a valid, non-revoked bearer token of an active user.
func Authenticate(c *fiber.Ctx) error {
	token, ok := utils.ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return AuthError("No token provided")
	}

	revoked, err := cache.Cache.Exists(c.UserContext(), cache.BlacklistKey(token))
	if err != nil {
		return err
	}
	if revoked {
		return AuthError("Token has been revoked")
	}

	user, err := userFromToken(token)
	if err != nil {
		return err
	}

	setUser(c, user, token)
	return c.Next()
}

// OptionalAuth attaches the user when a valid token is present and never rejects the request.
func OptionalAuth(c *fiber.Ctx) error {
	token, ok := utils.ExtractBearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}

	if revoked, err := cache.Cache.Exists(c.UserContext(), cache.BlacklistKey(token)); err != nil || revoked {
		return c.Next()
	}

	if user, err := userFromToken(token); err == nil {
		setUser(c, user, token)
	}
	return c.Next()
}

func userFromToken(token string) (*models.User, error) {
	claims, err := utils.VerifyToken(token, config.AppConfig.JWTSecret)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			return nil, AuthError("Token has expired")
		}
		return nil, AuthError("Invalid token")
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil, AuthError("Invalid token payload")
	}

	var user models.User
	err = database.Database.Db.Where("id = ? AND is_active = ?", userID, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, AuthError("User not found or inactive")
		}
		return nil, err
	}
	return &user, nil
}

func setUser(c *fiber.Ctx, user *models.User, token string) {
	c.Locals("userId", user.ID)
	c.Locals("userRole", user.Role)
	c.Locals(localUser, user)
	c.Locals(localToken, token)
}

// CurrentUser returns the user attached by Authenticate or OptionalAuth.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(localUser).(*models.User)
	return user, ok && user != nil
}

// MustUser is CurrentUser for routes behind Authenticate.
func MustUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := CurrentUser(c)
	if !ok {
		return nil, AuthError("Authentication required")
	}
	return user, nil
}

// CurrentToken returns the bearer token that authenticated the request.
func CurrentToken(c *fiber.Ctx) string {
	token, _ := c.Locals(localToken).(string)
	return token
}
