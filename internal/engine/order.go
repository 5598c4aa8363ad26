package engine

import (
	"sort"

	"chess-ai/internal/game"
)

// Move-ordering bonuses in priority points. All flat constants layered
// additively; none depend on search depth. Ordering only affects pruning
// yield, never which moves are searched.
const (
	captureBonus     = 10000
	exchangeBonus    = 5000 // MVV-LVA reward for winning trades
	checkBonus       = 5000
	promotionBonus   = 15000
	developmentBonus = 2000
	passedPawnBonus  = 1500
)

// Orderer ranks candidate moves, most promising first. Implementations must
// return a permutation of the input; dropping moves would change results.
type Orderer interface {
	Rank(pos *game.Position, moves []game.Move) []game.Move
}

// HeuristicOrderer ranks captures, checks, promotions, central development,
// and passed-pawn pushes ahead of quiet moves. Ties keep enumeration order.
type HeuristicOrderer struct{}

func (HeuristicOrderer) Rank(pos *game.Position, moves []game.Move) []game.Move {
	board := pos.Board()

	type scoredMove struct {
		move     game.Move
		priority int
	}
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, priority: movePriority(board, m)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].priority > scored[j].priority
	})

	ranked := make([]game.Move, len(scored))
	for i, sm := range scored {
		ranked[i] = sm.move
	}
	return ranked
}

func movePriority(board *game.Board, m game.Move) int {
	captured := board.GetPiece(m.To)
	mover := board.GetPiece(m.From)

	score := 0
	if captured != 0 {
		victim := pieceValue(game.PieceType(captured))
		score += captureBonus + victim
		if mover != 0 {
			score += exchangeBonus + victim - pieceValue(game.PieceType(mover))
		}
	}
	if board.GivesCheck(m) {
		score += checkBonus
	}
	if m.Promotion != 0 {
		score += promotionBonus
	}

	moverType := game.PieceType(mover)
	if moverType == game.Knight || moverType == game.Bishop {
		if isCentralSquare(m.To) {
			score += developmentBonus
		}
	}
	if moverType == game.Pawn && board.IsPassedPawn(m.From) {
		score += passedPawnBonus
	}

	return score
}

// isCentralSquare reports whether sq is one of d4, d5, e4, e5.
func isCentralSquare(sq game.Square) bool {
	return (sq.File == 3 || sq.File == 4) && (sq.Rank == 3 || sq.Rank == 4)
}
