package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSquare(t *testing.T) {
	sq, err := ParseSquare("e2")
	require.NoError(t, err)
	assert.Equal(t, Square{File: 4, Rank: 1}, sq)
	assert.Equal(t, "e2", sq.String())

	for _, bad := range []string{"", "e", "e9", "i1", "22"} {
		_, err := ParseSquare(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("e2e4")
	require.NoError(t, err)
	assert.Equal(t, "e2e4", m.String())
	assert.Zero(t, m.Promotion)

	promo, err := ParseMove("a7a8q")
	require.NoError(t, err)
	assert.Equal(t, rune(Queen), promo.Promotion)
	assert.Equal(t, "a7a8q", promo.String())

	for _, bad := range []string{"", "e2", "e2e4x", "e2e9", "a7a8k"} {
		_, err := ParseMove(bad)
		assert.Error(t, err, bad)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartingFEN,
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/P6k/8/8/8/8/7K/8 w - - 12 40",
		"rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3",
	}

	for _, fen := range fens {
		board, err := ParseFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, board.ToFEN())
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	for _, bad := range []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP",
		"rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	} {
		_, err := ParseFEN(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewBoard(t *testing.T) {
	board := NewBoard()
	assert.Equal(t, StartingFEN, board.ToFEN())
	assert.True(t, board.WhiteToMove)
	assert.True(t, board.CastleRights.WhiteKingSide)
	assert.True(t, board.CastleRights.BlackQueenSide)
}

func TestCopyIsIndependent(t *testing.T) {
	board := NewBoard()
	dup := board.Copy()

	dup.Squares[3][4] = 'P'
	dup.WhiteToMove = false

	assert.Zero(t, board.Squares[3][4])
	assert.True(t, board.WhiteToMove)
}

func TestPieceHelpers(t *testing.T) {
	assert.True(t, IsWhitePiece('Q'))
	assert.False(t, IsWhitePiece('q'))
	assert.True(t, IsBlackPiece('n'))
	assert.False(t, IsBlackPiece(0))
	assert.Equal(t, rune(Knight), PieceType('n'))
	assert.Equal(t, rune(0), PieceType(0))
}
