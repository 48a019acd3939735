package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"lumen/api/database"
	"lumen/api/types"
	"lumen/config"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Create and store a new API key",
	RunE:  runKeygen,
}

func runKeygen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.Server.MongoURI))
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}
	defer client.Disconnect(ctx)

	keyDoc := types.APIKey{
		Key:       generateAPIKey(),
		Active:    true,
		CreatedAt: time.Now(),
	}

	collection := client.Database(database.Name).Collection("api_keys")
	if _, err := collection.InsertOne(ctx, keyDoc); err != nil {
		return fmt.Errorf("storing api key: %w", err)
	}

	fmt.Printf("API key created: %s\n", keyDoc.Key)
	return nil
}

func generateAPIKey() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
