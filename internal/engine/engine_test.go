package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chess-ai/internal/game"
)

func positionFromFEN(t *testing.T, fen string) *game.Position {
	t.Helper()
	pos, err := game.NewPositionFromFEN(fen)
	require.NoError(t, err)
	return pos
}

func TestChooseMoveReturnsLegalMove(t *testing.T) {
	eng := New(nil, 0)
	pos := game.NewPosition(game.NewBoard())

	result := eng.ChooseMove(pos, 2, time.Second)
	require.NotNil(t, result.Move)

	legal := pos.LegalMoves()
	assert.Contains(t, legal, *result.Move)
	assert.Equal(t, len(legal), result.Evaluated)
	assert.False(t, result.FromBook)
}

func TestChooseMoveFindsBackRankMate(t *testing.T) {
	// White mates with Ra8; black's king is boxed in by its own pawns.
	pos := positionFromFEN(t, "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	eng := New(nil, 0)

	result := eng.ChooseMove(pos, 2, time.Second)
	require.NotNil(t, result.Move)
	assert.Equal(t, "a1a8", result.Move.String())
	assert.Equal(t, MateValue, result.Score)
}

func TestChooseMoveFindsMateAsBlack(t *testing.T) {
	pos := positionFromFEN(t, "r5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1")
	eng := New(nil, 0)

	result := eng.ChooseMove(pos, 2, time.Second)
	require.NotNil(t, result.Move)
	assert.Equal(t, "a8a1", result.Move.String())
	assert.Equal(t, -MateValue, result.Score)
}

func TestChooseMoveTakesHangingQueen(t *testing.T) {
	// Black's queen on d5 is defended by nothing; white's queen on d1 takes it.
	pos := positionFromFEN(t, "rnb1kbnr/ppp1pppp/8/3q4/8/8/PPP1PPPP/RNBQKBNR w KQkq - 0 1")
	eng := New(nil, 0)

	result := eng.ChooseMove(pos, 2, time.Second)
	require.NotNil(t, result.Move)
	assert.Equal(t, "d1d5", result.Move.String())
}

func TestChooseMoveIsDeterministicWithoutBook(t *testing.T) {
	pos := positionFromFEN(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 3")
	eng := New(nil, 0)

	first := eng.ChooseMove(pos, 3, 5*time.Second)
	second := eng.ChooseMove(pos, 3, 5*time.Second)
	require.NotNil(t, first.Move)
	require.NotNil(t, second.Move)
	assert.Equal(t, first.Move.String(), second.Move.String())
	assert.Equal(t, first.Score, second.Score)
}

func TestChooseMoveTerminalPosition(t *testing.T) {
	// Fool's mate: white is already checkmated, no move exists.
	pos := positionFromFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	eng := New(nil, 0)

	result := eng.ChooseMove(pos, 2, time.Second)
	assert.Nil(t, result.Move)
	assert.Zero(t, result.Evaluated)
}

func TestChooseMoveZeroBudgetFallsBackToTopRanked(t *testing.T) {
	pos := game.NewPosition(game.NewBoard())
	eng := New(nil, 0)

	result := eng.ChooseMove(pos, 2, 0)
	require.NotNil(t, result.Move)
	assert.Zero(t, result.Evaluated)
	assert.Contains(t, pos.LegalMoves(), *result.Move)
}

func TestChooseMoveRestoresPosition(t *testing.T) {
	pos := positionFromFEN(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 3")
	before := pos.FEN()

	eng := New(nil, 0)
	eng.ChooseMove(pos, 3, 5*time.Second)

	assert.Equal(t, before, pos.FEN())
	assert.Zero(t, pos.Depth())
}

// identityOrderer leaves moves in generation order, for checking that
// ordering affects only pruning, never the chosen score.
type identityOrderer struct{}

func (identityOrderer) Rank(pos *game.Position, moves []game.Move) []game.Move {
	return moves
}

func TestOrderingDoesNotChangeScore(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 3",
		"rnb1kbnr/ppp1pppp/8/3q4/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
	}

	for _, fen := range fens {
		pos := positionFromFEN(t, fen)
		deadline := time.Now().Add(time.Minute)

		ordered := &searcher{orderer: HeuristicOrderer{}, deadline: deadline}
		unordered := &searcher{orderer: identityOrderer{}, deadline: deadline}

		maximizing := pos.WhiteToMove()
		a := ordered.alphaBeta(pos, 3, -Infinity, Infinity, maximizing)
		b := unordered.alphaBeta(pos, 3, -Infinity, Infinity, maximizing)

		assert.Equal(t, a, b, "fen: %s", fen)
		// The ranking changes how much of the tree pruning skips, so the
		// two searches visit different node counts.
		assert.NotEqual(t, ordered.nodes, unordered.nodes, "fen: %s", fen)
	}
}

// minimax is a reference search without pruning.
func minimax(pos *game.Position, depth int, maximizing bool) int {
	if depth == 0 || pos.Terminal() != game.TerminalNone {
		return Evaluate(pos)
	}

	best := -Infinity
	if !maximizing {
		best = Infinity
	}
	for _, m := range pos.LegalMoves() {
		pos.Apply(m)
		score := minimax(pos, depth-1, !maximizing)
		pos.Undo()
		if maximizing && score > best {
			best = score
		}
		if !maximizing && score < best {
			best = score
		}
	}
	return best
}

func TestAlphaBetaMatchesPlainMinimax(t *testing.T) {
	fens := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnb1kbnr/ppp1pppp/8/3q4/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
		"r5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1",
	}

	for _, fen := range fens {
		for depth := 1; depth <= 2; depth++ {
			pos := positionFromFEN(t, fen)
			maximizing := pos.WhiteToMove()

			s := &searcher{orderer: HeuristicOrderer{}, deadline: time.Now().Add(time.Minute)}
			pruned := s.alphaBeta(pos, depth, -Infinity, Infinity, maximizing)
			plain := minimax(pos, depth, maximizing)

			assert.Equal(t, plain, pruned, "fen: %s depth: %d", fen, depth)
		}
	}
}

type fixedBook struct {
	move game.Move
	ok   bool
}

func (b fixedBook) Lookup(pos *game.Position) (game.Move, bool) {
	return b.move, b.ok
}

func TestBookFastPathRespectsDepthCap(t *testing.T) {
	bookMove, err := game.ParseMove("e2e4")
	require.NoError(t, err)

	eng := &Engine{
		book:         fixedBook{move: bookMove, ok: true},
		orderer:      HeuristicOrderer{},
		bookMaxDepth: 3,
	}

	pos := game.NewPosition(game.NewBoard())

	hit := eng.ChooseMove(pos, 3, time.Second)
	require.NotNil(t, hit.Move)
	assert.True(t, hit.FromBook)
	assert.Equal(t, "e2e4", hit.Move.String())

	// Above the cap the book is skipped and the search runs.
	miss := eng.ChooseMove(pos, 4, 5*time.Second)
	require.NotNil(t, miss.Move)
	assert.False(t, miss.FromBook)
	assert.NotZero(t, miss.Evaluated)
}
