package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"lumen/api/types"
)

// Auth checks the X-API-Key header against active keys in the given Mongo
// database. The matched key is stored in locals under "api_key".
func Auth(client *mongo.Client, dbName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := c.Get("X-API-Key")
		if apiKey == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Success: false,
				Message: "API key is required",
			})
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		collection := client.Database(dbName).Collection("api_keys")

		var keyDoc types.APIKey
		err := collection.FindOne(ctx, bson.M{"key": apiKey, "active": true}).Decode(&keyDoc)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
					Success: false,
					Message: "Invalid API key",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Success: false,
				Message: "Database error",
			})
		}

		c.Locals("api_key", keyDoc.Key)

		return c.Next()
	}
}
