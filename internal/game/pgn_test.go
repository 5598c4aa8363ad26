package game

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movesFromUCI(t *testing.T, ucis ...string) []Move {
	t.Helper()
	moves := make([]Move, len(ucis))
	for i, uci := range ucis {
		m, err := ParseMove(uci)
		require.NoError(t, err)
		moves[i] = m
	}
	return moves
}

func TestWritePGNFoolsMate(t *testing.T) {
	moves := movesFromUCI(t, "f2f3", "e7e5", "g2g4", "d8h4")

	pgn := WritePGN(PGNTags{
		Event:  "Casual Game",
		Site:   "local",
		Date:   time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		White:  "Player",
		Black:  "Machine",
		Result: "0-1",
	}, moves)

	assert.Contains(t, pgn, `[Event "Casual Game"]`)
	assert.Contains(t, pgn, `[Date "2026.08.29"]`)
	assert.Contains(t, pgn, `[Result "0-1"]`)
	assert.Contains(t, pgn, "1. f3 e5 2. g4 Qh4# 0-1")
}

func TestWritePGNDefaultsMissingTags(t *testing.T) {
	pgn := WritePGN(PGNTags{}, nil)

	assert.Contains(t, pgn, `[Event "?"]`)
	assert.Contains(t, pgn, `[Date "????.??.??"]`)
	assert.Contains(t, pgn, `[Result "*"]`)
	assert.True(t, strings.HasSuffix(strings.TrimRight(pgn, "\n"), "*"))
}

func TestWritePGNStopsAtIllegalMove(t *testing.T) {
	moves := movesFromUCI(t, "e2e4", "e2e4")

	pgn := WritePGN(PGNTags{Result: "*"}, moves)
	assert.Contains(t, pgn, "1. e4 *")
	assert.NotContains(t, pgn, "2.")
}

func TestBoardResult(t *testing.T) {
	assert.Equal(t, "*", NewBoard().Result())

	mated := boardFromFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	assert.Equal(t, "0-1", mated.Result())

	backRank := boardFromFEN(t, "R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 1 1")
	assert.Equal(t, "1-0", backRank.Result())

	stalemate := boardFromFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	assert.Equal(t, "1/2-1/2", stalemate.Result())
}
