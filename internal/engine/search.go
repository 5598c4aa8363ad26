package engine

import (
	"time"

	"chess-ai/internal/game"
)

// searcher runs one depth-limited alpha-beta search. A searcher is built per
// ChooseMove call and carries no state across calls.
type searcher struct {
	orderer  Orderer
	deadline time.Time
	nodes    int
}

// alphaBeta performs fixed-depth minimax with fail-hard alpha-beta pruning.
// The deadline is checked once per node entry: a node that has started
// scanning a move finishes that move, so the budget is a soft bound.
func (s *searcher) alphaBeta(pos *game.Position, depth, alpha, beta int, maximizing bool) int {
	s.nodes++

	if depth == 0 || !time.Now().Before(s.deadline) || pos.Terminal() != game.TerminalNone {
		return Evaluate(pos)
	}

	moves := s.orderer.Rank(pos, pos.LegalMoves())

	if maximizing {
		best := -Infinity
		for _, m := range moves {
			score := s.searchMove(pos, m, depth, alpha, beta, false)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if best >= MateValue {
				break // forced mate found, no sibling can improve on it
			}
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := Infinity
	for _, m := range moves {
		score := s.searchMove(pos, m, depth, alpha, beta, true)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if best <= -MateValue {
			break
		}
		if beta <= alpha {
			break
		}
	}
	return best
}

// searchMove applies m, searches the child node, and undoes m. The deferred
// Undo guarantees restoration on every exit path.
func (s *searcher) searchMove(pos *game.Position, m game.Move, depth, alpha, beta int, maximizing bool) int {
	pos.Apply(m)
	defer pos.Undo()
	return s.alphaBeta(pos, depth-1, alpha, beta, maximizing)
}
