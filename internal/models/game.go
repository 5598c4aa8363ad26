package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedGame is a finished or in-progress game archived by name. The full
// game is stored as PGN text; the remaining fields exist so listings can be
// rendered without parsing the PGN.
type SavedGame struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	PGN       string             `json:"pgn" bson:"pgn"`
	Level     int                `json:"level" bson:"level"`
	Elo       int                `json:"elo" bson:"elo"`
	Result    string             `json:"result" bson:"result"` // "1-0", "0-1", "1/2-1/2", "*"
	VsMachine bool               `json:"vsMachine" bson:"vsMachine"`
	MoveCount int                `json:"moveCount" bson:"moveCount"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}
