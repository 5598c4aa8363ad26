package engine

import "chess-ai/internal/game"

// Score sentinels. MateValue sits well above any reachable material sum, so
// comparisons against its magnitude stand in for infinity-equality checks.
// Infinity bounds the alpha-beta window and dominates every real score.
const (
	MateValue = 30000
	Infinity  = 1000000
)

// Material values in centipawns
const (
	pawnValue   = 100
	knightValue = 320
	bishopValue = 330
	rookValue   = 500
	queenValue  = 900
	kingValue   = 20000
)

func pieceValue(pieceType rune) int {
	switch pieceType {
	case game.Pawn:
		return pawnValue
	case game.Knight:
		return knightValue
	case game.Bishop:
		return bishopValue
	case game.Rook:
		return rookValue
	case game.Queen:
		return queenValue
	case game.King:
		return kingValue
	}
	return 0
}

// Piece-square tables in centipawns, indexed rank*8+file (a1 = 0) from
// white's perspective. Black reads the mirrored index (63-s) and negates.

var pawnTable = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightTable = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopTable = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookTable = [64]int{
	0, 0, 0, 5, 5, 0, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var queenTable = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingTable = [64]int{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
}

func tableFor(pieceType rune) *[64]int {
	switch pieceType {
	case game.Pawn:
		return &pawnTable
	case game.Knight:
		return &knightTable
	case game.Bishop:
		return &bishopTable
	case game.Rook:
		return &rookTable
	case game.Queen:
		return &queenTable
	case game.King:
		return &kingTable
	}
	return nil
}

// Evaluate returns a static score for the position in centipawns.
// Positive favors white, negative favors black. Checkmate scores as the mate
// sentinel signed for the side that delivered it; stalemate and insufficient
// material score exactly 0. Pure and non-recursive.
func Evaluate(pos *game.Position) int {
	switch pos.Terminal() {
	case game.TerminalCheckmate:
		// The side to move has been mated.
		if pos.WhiteToMove() {
			return -MateValue
		}
		return MateValue
	case game.TerminalStalemate, game.TerminalInsufficientMaterial:
		return 0
	}

	board := pos.Board()
	score := 0

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := board.Squares[rank][file]
			if piece == 0 {
				continue
			}

			pieceType := game.PieceType(piece)
			table := tableFor(pieceType)
			idx := rank*8 + file

			if game.IsWhitePiece(piece) {
				score += pieceValue(pieceType) + table[idx]
			} else {
				score -= pieceValue(pieceType) + table[63-idx]
			}
		}
	}

	return score
}
