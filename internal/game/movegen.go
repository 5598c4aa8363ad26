package game

// LegalMoves returns all legal moves for the side to move, enumerated from
// a1 toward h8. The order is stable for a given position.
func (b *Board) LegalMoves() []Move {
	var moves []Move
	isWhite := b.WhiteToMove

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			piece := b.Squares[rank][file]
			if piece == 0 {
				continue
			}
			if IsWhitePiece(piece) != isWhite {
				continue
			}

			from := Square{File: file, Rank: rank}

			switch PieceType(piece) {
			case Pawn:
				moves = append(moves, b.pawnMoves(from, isWhite)...)
			case Knight:
				moves = append(moves, b.knightMoves(from, isWhite)...)
			case Bishop:
				moves = append(moves, b.slidingMoves(from, isWhite, bishopDirs)...)
			case Rook:
				moves = append(moves, b.slidingMoves(from, isWhite, rookDirs)...)
			case Queen:
				moves = append(moves, b.slidingMoves(from, isWhite, queenDirs)...)
			case King:
				moves = append(moves, b.kingMoves(from, isWhite)...)
			}
		}
	}

	return moves
}

var bishopDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var rookDirs = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
var queenDirs = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
var knightOffsets = [][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}

var promotionPieces = []rune{Queen, Rook, Bishop, Knight}

func inBounds(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

func (b *Board) isLegal(from, to Square) bool {
	return b.ValidateMove(from, to) == nil
}

func (b *Board) pawnMoves(from Square, isWhite bool) []Move {
	var moves []Move
	dir := 1
	startRank := 1
	promoRank := 7
	if !isWhite {
		dir = -1
		startRank = 6
		promoRank = 0
	}

	// Forward one
	to := Square{File: from.File, Rank: from.Rank + dir}
	if inBounds(to.File, to.Rank) && b.GetPiece(to) == 0 {
		if to.Rank == promoRank {
			for _, p := range promotionPieces {
				if b.isLegal(from, to) {
					moves = append(moves, Move{From: from, To: to, Promotion: p})
				}
			}
		} else if b.isLegal(from, to) {
			moves = append(moves, Move{From: from, To: to})
		}
	}

	// Forward two
	if from.Rank == startRank {
		to = Square{File: from.File, Rank: from.Rank + 2*dir}
		mid := Square{File: from.File, Rank: from.Rank + dir}
		if inBounds(to.File, to.Rank) && b.GetPiece(mid) == 0 && b.GetPiece(to) == 0 {
			if b.isLegal(from, to) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}

	// Captures, including en passant
	for _, df := range []int{-1, 1} {
		to = Square{File: from.File + df, Rank: from.Rank + dir}
		if !inBounds(to.File, to.Rank) {
			continue
		}
		dest := b.GetPiece(to)
		isCapture := dest != 0 && IsWhitePiece(dest) != isWhite
		isEP := to.String() == b.EnPassantSquare

		if isCapture || isEP {
			if to.Rank == promoRank {
				for _, p := range promotionPieces {
					if b.isLegal(from, to) {
						moves = append(moves, Move{From: from, To: to, Promotion: p})
					}
				}
			} else if b.isLegal(from, to) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}

	return moves
}

func (b *Board) knightMoves(from Square, isWhite bool) []Move {
	var moves []Move
	for _, off := range knightOffsets {
		to := Square{File: from.File + off[0], Rank: from.Rank + off[1]}
		if !inBounds(to.File, to.Rank) {
			continue
		}
		dest := b.GetPiece(to)
		if dest != 0 && IsWhitePiece(dest) == isWhite {
			continue
		}
		if b.isLegal(from, to) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func (b *Board) slidingMoves(from Square, isWhite bool, dirs [][2]int) []Move {
	var moves []Move
	for _, d := range dirs {
		for dist := 1; dist < 8; dist++ {
			to := Square{File: from.File + d[0]*dist, Rank: from.Rank + d[1]*dist}
			if !inBounds(to.File, to.Rank) {
				break
			}
			dest := b.GetPiece(to)
			if dest != 0 && IsWhitePiece(dest) == isWhite {
				break // own piece
			}
			if b.isLegal(from, to) {
				moves = append(moves, Move{From: from, To: to})
			}
			if dest != 0 {
				break // captured enemy piece, stop sliding
			}
		}
	}
	return moves
}

func (b *Board) kingMoves(from Square, isWhite bool) []Move {
	var moves []Move

	for dr := -1; dr <= 1; dr++ {
		for df := -1; df <= 1; df++ {
			if dr == 0 && df == 0 {
				continue
			}
			to := Square{File: from.File + df, Rank: from.Rank + dr}
			if !inBounds(to.File, to.Rank) {
				continue
			}
			dest := b.GetPiece(to)
			if dest != 0 && IsWhitePiece(dest) == isWhite {
				continue
			}
			if b.isLegal(from, to) {
				moves = append(moves, Move{From: from, To: to})
			}
		}
	}

	// Castling (king moves two files)
	for _, toFile := range []int{2, 6} {
		to := Square{File: toFile, Rank: from.Rank}
		if b.isLegal(from, to) {
			moves = append(moves, Move{From: from, To: to})
		}
	}

	return moves
}
