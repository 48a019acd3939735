package middleware

import (
	"fmt"
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"lumen/api/types"
)

// RateLimit enforces a per-IP token bucket of perMinute requests per minute.
// Each middleware instance keeps its own limiter table, so separate apps
// (and tests) do not share state.
func RateLimit(perMinute int) fiber.Handler {
	var limiters sync.Map

	burst := perMinute - 1
	if burst < 1 {
		burst = 1
	}

	return func(c *fiber.Ctx) error {
		clientIP := c.IP()

		limiterInterface, _ := limiters.LoadOrStore(clientIP,
			rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst))
		limiter := limiterInterface.(*rate.Limiter)

		if !limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(types.ErrorResponse{
				Success: false,
				Message: fmt.Sprintf("Ratelimit exceeded: %d requests per minute", perMinute),
			})
		}

		return c.Next()
	}
}
