package middleware_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumen/api/middleware"
)

func limitedApp(perMinute int) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})
	app.Use(middleware.RateLimit(perMinute))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func ping(t *testing.T, app *fiber.App, ip string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	req.Header.Set("X-Forwarded-For", ip)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRateLimit_BlocksAfterBurst(t *testing.T) {
	app := limitedApp(2) // burst of 1

	assert.Equal(t, fiber.StatusOK, ping(t, app, "10.0.0.1"))
	assert.Equal(t, fiber.StatusTooManyRequests, ping(t, app, "10.0.0.1"))
}

func TestRateLimit_PerIP(t *testing.T) {
	app := limitedApp(2)

	assert.Equal(t, fiber.StatusOK, ping(t, app, "10.0.0.1"))
	assert.Equal(t, fiber.StatusTooManyRequests, ping(t, app, "10.0.0.1"))
	assert.Equal(t, fiber.StatusOK, ping(t, app, "10.0.0.2"), "other clients keep their own bucket")
}

func TestRateLimit_InstancesAreIndependent(t *testing.T) {
	first := limitedApp(2)
	assert.Equal(t, fiber.StatusOK, ping(t, first, "10.0.0.1"))
	assert.Equal(t, fiber.StatusTooManyRequests, ping(t, first, "10.0.0.1"))

	second := limitedApp(2)
	assert.Equal(t, fiber.StatusOK, ping(t, second, "10.0.0.1"))
}
