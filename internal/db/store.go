package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chess-ai/internal/models"
)

// ErrNameTaken is returned when saving under a name that already exists and
// the caller did not ask to overwrite.
var ErrNameTaken = errors.New("a saved game with that name already exists")

// SavedGameStore archives games in the saved_games collection.
type SavedGameStore struct {
	db *MongoDB
}

func NewSavedGameStore(db *MongoDB) *SavedGameStore {
	return &SavedGameStore{db: db}
}

// Save stores a game under its name. An existing game with the same name is
// only replaced when overwrite is set.
func (s *SavedGameStore) Save(ctx context.Context, g models.SavedGame, overwrite bool) error {
	g.CreatedAt = time.Now()

	coll := s.db.SavedGames()
	if overwrite {
		opts := options.Replace().SetUpsert(true)
		if _, err := coll.ReplaceOne(ctx, bson.M{"name": g.Name}, g, opts); err != nil {
			return fmt.Errorf("failed to save game %q: %w", g.Name, err)
		}
		return nil
	}

	if _, err := coll.InsertOne(ctx, g); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("failed to save game %q: %w", g.Name, err)
	}
	return nil
}

// List returns all saved games, newest first.
func (s *SavedGameStore) List(ctx context.Context) ([]models.SavedGame, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.db.SavedGames().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved games: %w", err)
	}
	defer cursor.Close(ctx)

	games := []models.SavedGame{}
	if err := cursor.All(ctx, &games); err != nil {
		return nil, fmt.Errorf("failed to decode saved games: %w", err)
	}
	return games, nil
}
