package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boardFromFEN(t *testing.T, fen string) *Board {
	t.Helper()
	board, err := ParseFEN(fen)
	require.NoError(t, err)
	return board
}

func sq(t *testing.T, s string) Square {
	t.Helper()
	square, err := ParseSquare(s)
	require.NoError(t, err)
	return square
}

func TestValidateMoveBasics(t *testing.T) {
	board := NewBoard()

	assert.NoError(t, board.ValidateMove(sq(t, "e2"), sq(t, "e4")))
	assert.NoError(t, board.ValidateMove(sq(t, "g1"), sq(t, "f3")))

	// Pawns cannot jump three squares, knights cannot slide.
	assert.Error(t, board.ValidateMove(sq(t, "e2"), sq(t, "e5")))
	assert.Error(t, board.ValidateMove(sq(t, "g1"), sq(t, "g3")))

	// Not your piece, not your turn.
	assert.Error(t, board.ValidateMove(sq(t, "e7"), sq(t, "e5")))
	assert.Error(t, board.ValidateMove(sq(t, "e4"), sq(t, "e5")))
}

func TestValidateMoveRejectsSelfCheck(t *testing.T) {
	// The e-file knight is pinned against the king by the rook on e8.
	board := boardFromFEN(t, "4r3/8/8/8/8/8/4N3/4K3 w - - 0 1")
	assert.Error(t, board.ValidateMove(sq(t, "e2"), sq(t, "c3")))
	assert.NoError(t, board.ValidateMove(sq(t, "e1"), sq(t, "d1")))
}

func TestCastling(t *testing.T) {
	board := boardFromFEN(t, "r3k2r/pppppppp/8/8/8/8/PPPPPPPP/R3K2R w KQkq - 0 1")

	assert.NoError(t, board.ValidateMove(sq(t, "e1"), sq(t, "g1")))
	assert.NoError(t, board.ValidateMove(sq(t, "e1"), sq(t, "c1")))

	after := board.MakeMove(Move{From: sq(t, "e1"), To: sq(t, "g1")})
	assert.Equal(t, rune('K'), after.GetPiece(sq(t, "g1")))
	assert.Equal(t, rune('R'), after.GetPiece(sq(t, "f1")))
	assert.Zero(t, after.GetPiece(sq(t, "h1")))
	assert.False(t, after.CastleRights.WhiteKingSide)
	assert.False(t, after.CastleRights.WhiteQueenSide)
}

func TestCastlingThroughAttackedSquare(t *testing.T) {
	// The rook on f8 covers f1, so king-side castling is out.
	board := boardFromFEN(t, "4kr2/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	assert.Error(t, board.ValidateMove(sq(t, "e1"), sq(t, "g1")))
	assert.NoError(t, board.ValidateMove(sq(t, "e1"), sq(t, "c1")))
}

func TestQueenSideCastlingNeedsEmptyBFile(t *testing.T) {
	board := boardFromFEN(t, "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1")
	assert.Error(t, board.ValidateMove(sq(t, "e1"), sq(t, "c1")))
}

func TestCapturedRookForfeitsCastling(t *testing.T) {
	board := boardFromFEN(t, "r3k3/8/8/8/8/8/8/R3K3 w Qq - 0 1")

	after := board.MakeMove(Move{From: sq(t, "a1"), To: sq(t, "a8")})
	assert.False(t, after.CastleRights.BlackQueenSide)
	assert.False(t, after.CastleRights.WhiteQueenSide)
}

func TestEnPassantCapture(t *testing.T) {
	board := boardFromFEN(t, "rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 3")

	require.NoError(t, board.ValidateMove(sq(t, "d4"), sq(t, "e3")))
	after := board.MakeMove(Move{From: sq(t, "d4"), To: sq(t, "e3")})

	assert.Equal(t, rune('p'), after.GetPiece(sq(t, "e3")))
	assert.Zero(t, after.GetPiece(sq(t, "e4")), "bypassed pawn must be removed")
	assert.Zero(t, after.GetPiece(sq(t, "d4")))
}

func TestDoublePushSetsEnPassantSquare(t *testing.T) {
	board := NewBoard()
	after := board.MakeMove(Move{From: sq(t, "e2"), To: sq(t, "e4")})
	assert.Equal(t, "e3", after.EnPassantSquare)

	next := after.MakeMove(Move{From: sq(t, "g8"), To: sq(t, "f6")})
	assert.Empty(t, next.EnPassantSquare)
}

func TestPromotionDefaultsToQueen(t *testing.T) {
	board := boardFromFEN(t, "8/P6k/8/8/8/8/7K/8 w - - 0 1")

	after := board.MakeMove(Move{From: sq(t, "a7"), To: sq(t, "a8")})
	assert.Equal(t, rune('Q'), after.GetPiece(sq(t, "a8")))

	under := board.MakeMove(Move{From: sq(t, "a7"), To: sq(t, "a8"), Promotion: Knight})
	assert.Equal(t, rune('N'), under.GetPiece(sq(t, "a8")))
}

func TestMakeMoveClocks(t *testing.T) {
	board := NewBoard()

	after := board.MakeMove(Move{From: sq(t, "g1"), To: sq(t, "f3")})
	assert.Equal(t, 1, after.HalfMoveClock)
	assert.Equal(t, 1, after.FullMoveNumber)
	assert.False(t, after.WhiteToMove)

	next := after.MakeMove(Move{From: sq(t, "e7"), To: sq(t, "e5")})
	assert.Equal(t, 0, next.HalfMoveClock, "pawn move resets the clock")
	assert.Equal(t, 2, next.FullMoveNumber)
	assert.True(t, next.WhiteToMove)
}

func TestIsInCheck(t *testing.T) {
	board := boardFromFEN(t, "4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	assert.True(t, board.IsInCheck(true))
	assert.False(t, board.IsInCheck(false))
}

func TestCheckmate(t *testing.T) {
	board := boardFromFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	assert.True(t, board.IsCheckmate())
	assert.False(t, board.IsStalemate())
	assert.Equal(t, TerminalCheckmate, board.Terminal())
}

func TestStalemate(t *testing.T) {
	board := boardFromFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.True(t, board.IsStalemate())
	assert.False(t, board.IsCheckmate())
	assert.Equal(t, TerminalStalemate, board.Terminal())
}

func TestTerminalNoneForOngoingGame(t *testing.T) {
	assert.Equal(t, TerminalNone, NewBoard().Terminal())
}

func TestGivesCheck(t *testing.T) {
	board := boardFromFEN(t, "4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	assert.True(t, board.GivesCheck(Move{From: sq(t, "a1"), To: sq(t, "a8")}))
	assert.False(t, board.GivesCheck(Move{From: sq(t, "a1"), To: sq(t, "b1")}))
}

func TestIsPassedPawn(t *testing.T) {
	board := boardFromFEN(t, "6k1/5ppp/8/P7/8/2P5/5PPP/6K1 w - - 0 1")

	assert.True(t, board.IsPassedPawn(sq(t, "a5")))
	assert.True(t, board.IsPassedPawn(sq(t, "c3")))
	assert.False(t, board.IsPassedPawn(sq(t, "f2")))
}
