package middleware

import (
	"errors"
	"strconv"
	"time"

	"eduplatform/utils"

	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts and latency per route pattern.
func Metrics(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	route := c.Route().Path
	if route == "" {
		route = "unmatched"
	}
	status := c.Response().StatusCode()
	if err != nil {
		var appErr *AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = appErr.Status
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		default:
			status = fiber.StatusInternalServerError
		}
	}

	utils.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
	utils.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
	return err
}
