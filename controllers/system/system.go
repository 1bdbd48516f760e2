package systemController

import (
	"context"
	"time"

	"eduplatform/cache"
	"eduplatform/config"
	"eduplatform/database"
	"eduplatform/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const Version = "1.0.0"

// Health pings the database and the cache.
func Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	checks := fiber.Map{"database": "ok", "cache": "ok"}
	healthy := true

	if err := database.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("health check: database unreachable")
		checks["database"] = "unavailable"
		healthy = false
	}
	if cache.Cache == nil {
		checks["cache"] = "unavailable"
		healthy = false
	} else if err := cache.Cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Msg("health check: cache unreachable")
		checks["cache"] = "unavailable"
		healthy = false
	}

	if !healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"success": false,
			"error":   "Service unavailable",
			"data":    checks,
		})
	}

	checks["status"] = "healthy"
	checks["timestamp"] = time.Now().UTC()
	return middleware.JsonResponse(c, fiber.StatusOK, "", checks)
}

// Info describes the API and its route groups.
func Info(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, "", fiber.Map{
		"name":        "EduPlatform API",
		"version":     Version,
		"environment": config.AppConfig.Environment,
		"endpoints": fiber.Map{
			"auth":          "/api/auth",
			"courses":       "/api/courses",
			"enrollments":   "/api/enrollments",
			"payments":      "/api/payments",
			"forums":        "/api/forums",
			"notifications": "/api/notifications",
			"health":        "/api/health",
			"metrics":       "/metrics",
		},
	})
}
