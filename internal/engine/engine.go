// Package engine selects moves for the AI player: a fixed-depth alpha-beta
// search over the rules package's positions, with heuristic move ordering, a
// static material+positional evaluator, and an opening-book fast path.
package engine

import (
	"time"

	"chess-ai/internal/book"
	"chess-ai/internal/game"
)

// Book is the opening-book collaborator. Lookup returns a continuation for
// the exact current position, or false when the book has nothing to offer.
type Book interface {
	Lookup(pos *game.Position) (game.Move, bool)
}

// Engine picks a move for a position at a requested depth within a soft time
// budget. An Engine holds no per-game state and is safe for concurrent use as
// long as each call owns its Position.
type Engine struct {
	book         Book
	orderer      Orderer
	bookMaxDepth int
}

// SearchResult reports the chosen move and search diagnostics. Move is nil
// only for a terminal position. Score is meaningful when Evaluated > 0; a
// zero-budget fallback returns the top-ranked move unscored.
type SearchResult struct {
	Move      *game.Move
	Score     int
	Evaluated int
	Nodes     int
	Elapsed   time.Duration
	FromBook  bool
}

// New creates an engine. A nil book disables the opening-book fast path;
// bookMaxDepth is the highest depth at which the book is still consulted.
func New(b *book.Book, bookMaxDepth int) *Engine {
	e := &Engine{orderer: HeuristicOrderer{}, bookMaxDepth: bookMaxDepth}
	if b != nil {
		e.book = b
	}
	return e
}

// ChooseMove selects the best move for the side to move. Depth must already
// be clamped to the configured range by the caller. The budget is a soft
// bound: an in-flight root move's sub-search runs to completion.
func (e *Engine) ChooseMove(pos *game.Position, depth int, budget time.Duration) SearchResult {
	start := time.Now()

	if e.book != nil && depth <= e.bookMaxDepth {
		if m, ok := e.book.Lookup(pos); ok {
			return SearchResult{Move: &m, FromBook: true, Elapsed: time.Since(start)}
		}
	}

	moves := e.orderer.Rank(pos, pos.LegalMoves())
	if len(moves) == 0 {
		return SearchResult{Elapsed: time.Since(start)}
	}

	deadline := start.Add(budget)
	s := &searcher{orderer: e.orderer, deadline: deadline}

	maximizing := pos.WhiteToMove()
	bestScore := -Infinity
	if !maximizing {
		bestScore = Infinity
	}
	var best *game.Move
	evaluated := 0

	for i := range moves {
		if !time.Now().Before(deadline) {
			break
		}
		score := s.searchMove(pos, moves[i], depth, -Infinity, Infinity, !maximizing)
		evaluated++
		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore = score
			best = &moves[i]
		}
	}

	if best == nil {
		// Budget expired before any root move was scored; fall back to the
		// top-ranked move so the caller still gets a legal move.
		return SearchResult{Move: &moves[0], Nodes: s.nodes, Elapsed: time.Since(start)}
	}

	return SearchResult{
		Move:      best,
		Score:     bestScore,
		Evaluated: evaluated,
		Nodes:     s.nodes,
		Elapsed:   time.Since(start),
	}
}
