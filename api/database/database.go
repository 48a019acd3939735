// Package database owns the API's backing connections: MongoDB for API keys
// and Redis for the balance cache mirror.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"lumen/config"
)

// Name is the Mongo database holding the api_keys collection.
const Name = "lumen"

type Database struct {
	Mongo *mongo.Client
	Redis *redis.Client
}

// Connect dials both stores and verifies each with a ping. The caller owns
// shutdown via Close.
func Connect(cfg *config.Config) (*Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mongoClient, err := mongo.Connect(options.Client().ApplyURI(cfg.Server.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	if err := mongoClient.Ping(ctx, readpref.Primary()); err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	addr := strings.TrimPrefix(cfg.Server.RedisURI, "redis://")
	redisClient := redis.NewClient(&redis.Options{Addr: addr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Database{Mongo: mongoClient, Redis: redisClient}, nil
}

func (db *Database) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var firstErr error
	if err := db.Mongo.Disconnect(ctx); err != nil {
		firstErr = err
	}
	if err := db.Redis.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
