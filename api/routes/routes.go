package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"lumen/api/middleware"
)

// Register mounts the /api group: rate limiting, then key auth, then the
// balance endpoint.
func Register(app *fiber.App, h *Handler, mongoClient *mongo.Client, dbName string, ratePerMinute int) {
	api := app.Group("/api")

	api.Use(middleware.RateLimit(ratePerMinute))
	api.Use(middleware.Auth(mongoClient, dbName))

	api.Post("/balances", h.GetBalances)
}
