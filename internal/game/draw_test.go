package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"king vs king", "8/8/8/8/8/8/8/K6k w - - 0 1", true},
		{"king+bishop vs king", "8/8/8/8/8/8/1B6/K6k w - - 0 1", true},
		{"king+knight vs king", "8/8/8/8/8/8/1N6/K6k b - - 0 1", true},
		{"same-colored bishops", "7k/6b1/8/8/8/8/1B6/K7 w - - 0 1", true},
		{"opposite-colored bishops", "7k/5b2/8/8/8/8/1B6/K7 w - - 0 1", false},
		{"pawn on the board", "8/8/8/8/8/8/P7/K6k w - - 0 1", false},
		{"rook on the board", "8/8/8/8/8/8/R7/K6k w - - 0 1", false},
		{"starting position", StartingFEN, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsInsufficientMaterial(boardFromFEN(t, tc.fen)))
		})
	}
}

func TestPositionKeyStripsClocks(t *testing.T) {
	a := PositionKey("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	b := PositionKey("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 42 88")
	assert.Equal(t, a, b)

	c := PositionKey("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR b KQkq - 0 1")
	assert.NotEqual(t, a, c, "side to move is part of the key")
}

func TestThreefoldRepetition(t *testing.T) {
	fen := "4k3/8/8/8/8/8/8/4K2R w - - 0 1"

	history := []string{fen}
	assert.False(t, IsThreefoldRepetition(history, fen))

	history = append(history, "4k3/8/8/8/8/8/8/4K2R w - - 4 3", fen)
	assert.True(t, IsThreefoldRepetition(history, fen))
	assert.Equal(t, 3, CountPositionRepetitions(history, fen))
}

func TestGetDrawContext(t *testing.T) {
	stalemate := boardFromFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	dc := GetDrawContext(stalemate, nil)
	assert.True(t, dc.Stalemate)
	assert.True(t, dc.Any())
	assert.Equal(t, "Draw by stalemate", dc.Describe())

	fifty := boardFromFEN(t, "4k3/8/8/8/8/8/8/4K2R w - - 100 80")
	dc = GetDrawContext(fifty, nil)
	assert.True(t, dc.FiftyMoveRule)
	assert.False(t, dc.Stalemate)
	assert.Equal(t, "Draw by fifty-move rule", dc.Describe())

	ongoing := GetDrawContext(NewBoard(), []string{StartingFEN})
	assert.False(t, ongoing.Any())
}
