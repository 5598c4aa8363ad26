package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"chess-ai/internal/config"
	"chess-ai/internal/db"
)

func main() {
	// Load config
	cfg, err := config.Load("dev")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to MongoDB
	mongodb, err := db.NewMongoDB(cfg.MongoDB.URI, cfg.MongoDB.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongodb.Close(ctx)
	}()

	ctx := context.Background()

	// Delete all saved games
	result, err := mongodb.SavedGames().DeleteMany(ctx, map[string]interface{}{})
	if err != nil {
		log.Fatalf("Failed to delete saved games: %v", err)
	}
	fmt.Printf("Deleted %d saved games\n", result.DeletedCount)

	fmt.Println("Database cleared successfully")
}
