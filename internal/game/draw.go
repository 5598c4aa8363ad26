package game

import "strings"

// DrawContext classifies why a position is (or could be claimed as) a draw.
// Mirrors the fields reported to clients in game-over payloads.
type DrawContext struct {
	Stalemate            bool `json:"stalemate"`
	InsufficientMaterial bool `json:"insufficient_material"`
	FiftyMoveRule        bool `json:"fifty_moves_rule"`
	ThreefoldRepetition  bool `json:"threefold_repetition"`
}

// Any reports whether at least one draw condition holds.
func (d DrawContext) Any() bool {
	return d.Stalemate || d.InsufficientMaterial || d.FiftyMoveRule || d.ThreefoldRepetition
}

// Describe renders a human-readable summary of the active draw conditions.
func (d DrawContext) Describe() string {
	if d.Stalemate {
		return "Draw by stalemate"
	}

	var reasons []string
	if d.InsufficientMaterial {
		reasons = append(reasons, "insufficient material")
	}
	if d.FiftyMoveRule {
		reasons = append(reasons, "fifty-move rule")
	}
	if d.ThreefoldRepetition {
		reasons = append(reasons, "threefold repetition")
	}

	if len(reasons) == 0 {
		return "Draw"
	}
	return "Draw by " + strings.Join(reasons, " and ")
}

// GetDrawContext evaluates every draw condition for the board given the
// session's position history (FEN per played ply).
func GetDrawContext(board *Board, positionHistory []string) DrawContext {
	return DrawContext{
		Stalemate:            board.IsStalemate(),
		InsufficientMaterial: IsInsufficientMaterial(board),
		FiftyMoveRule:        board.HalfMoveClock >= 100,
		ThreefoldRepetition:  IsThreefoldRepetition(positionHistory, board.ToFEN()),
	}
}

// IsInsufficientMaterial checks if neither player can checkmate (FIDE rules):
// K vs K, K+B vs K, K+N vs K, and K+B vs K+B with same-colored bishops.
func IsInsufficientMaterial(board *Board) bool {
	var whitePieces, blackPieces []rune
	var whiteBishopLight, blackBishopLight []bool

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			piece := board.Squares[r][f]
			if piece == 0 {
				continue
			}

			pieceType := PieceType(piece)
			if pieceType == King {
				continue
			}
			isLightSquare := (r+f)%2 == 1

			if IsWhitePiece(piece) {
				whitePieces = append(whitePieces, pieceType)
				if pieceType == Bishop {
					whiteBishopLight = append(whiteBishopLight, isLightSquare)
				}
			} else {
				blackPieces = append(blackPieces, pieceType)
				if pieceType == Bishop {
					blackBishopLight = append(blackBishopLight, isLightSquare)
				}
			}
		}
	}

	if len(whitePieces) == 0 && len(blackPieces) == 0 {
		return true
	}

	if len(whitePieces) == 0 && len(blackPieces) == 1 {
		return blackPieces[0] == Bishop || blackPieces[0] == Knight
	}
	if len(blackPieces) == 0 && len(whitePieces) == 1 {
		return whitePieces[0] == Bishop || whitePieces[0] == Knight
	}

	if len(whitePieces) == 1 && len(blackPieces) == 1 {
		if whitePieces[0] == Bishop && blackPieces[0] == Bishop {
			if len(whiteBishopLight) > 0 && len(blackBishopLight) > 0 {
				return whiteBishopLight[0] == blackBishopLight[0]
			}
		}
	}

	return false
}

// PositionKey extracts the repetition-relevant parts of a FEN: piece
// placement, active color, castling rights, and en passant square.
func PositionKey(fen string) string {
	parts := strings.Split(fen, " ")
	if len(parts) < 4 {
		return fen
	}
	return strings.Join(parts[:4], " ")
}

// CountPositionRepetitions counts occurrences of the current position in the
// history, including the current position itself.
func CountPositionRepetitions(positionHistory []string, currentFEN string) int {
	currentKey := PositionKey(currentFEN)
	count := 0
	for _, pos := range positionHistory {
		if PositionKey(pos) == currentKey {
			count++
		}
	}
	return count
}

// IsThreefoldRepetition checks if the current position has occurred 3+ times.
func IsThreefoldRepetition(positionHistory []string, currentFEN string) bool {
	return CountPositionRepetitions(positionHistory, currentFEN) >= 3
}
