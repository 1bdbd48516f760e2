package middleware

import (
	"strconv"
	"time"

	"eduplatform/cache"

	"github.com/gofiber/fiber/v2"
)

// RateLimitRule caps attempts of one operation per client address.
type RateLimitRule struct {
	Operation string
	Limit     int64
	Window    time.Duration
}

var (
	LoginLimit          = RateLimitRule{Operation: "login", Limit: 5, Window: 15 * time.Minute}
	RegisterLimit       = RateLimitRule{Operation: "register", Limit: 3, Window: time.Hour}
	ForgotPasswordLimit = RateLimitRule{Operation: "forgot-password", Limit: 3, Window: time.Hour}
)

// RateLimit counts every attempt, failed ones included, and rejects once the count exceeds the limit.
// Each attempt restarts the window.
func RateLimit(rule RateLimitRule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := cache.Cache.Incr(c.UserContext(), cache.RateLimitKey(rule.Operation, c.IP()), rule.Window)
		if err != nil {
			return err
		}
		if count > rule.Limit {
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(int64(rule.Window.Seconds()), 10))
			return RateLimitError("Too many requests. Please try again later.")
		}
		return c.Next()
	}
}
