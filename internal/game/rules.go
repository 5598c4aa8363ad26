package game

import (
	"fmt"
	"unicode"
)

// ValidateMove checks if a move is legal for the side to move.
func (b *Board) ValidateMove(from, to Square) error {
	piece := b.GetPiece(from)
	if piece == 0 {
		return fmt.Errorf("no piece at %s", from.String())
	}

	isWhite := IsWhitePiece(piece)
	if isWhite != b.WhiteToMove {
		return fmt.Errorf("not your turn")
	}

	destPiece := b.GetPiece(to)
	if destPiece != 0 {
		if IsWhitePiece(destPiece) == isWhite {
			return fmt.Errorf("cannot capture own piece")
		}
	}

	switch PieceType(piece) {
	case Pawn:
		if !b.isValidPawnMove(from, to, isWhite) {
			return fmt.Errorf("invalid pawn move")
		}
	case Knight:
		if !b.isValidKnightMove(from, to) {
			return fmt.Errorf("invalid knight move")
		}
	case Bishop:
		if !b.isValidBishopMove(from, to) {
			return fmt.Errorf("invalid bishop move")
		}
	case Rook:
		if !b.isValidRookMove(from, to) {
			return fmt.Errorf("invalid rook move")
		}
	case Queen:
		if !b.isValidQueenMove(from, to) {
			return fmt.Errorf("invalid queen move")
		}
	case King:
		if !b.isValidKingMove(from, to, isWhite) {
			return fmt.Errorf("invalid king move")
		}
	}

	// Play the move on a scratch board to rule out self-check.
	tempBoard := b.Copy()
	tempBoard.movePiece(from, to)
	if tempBoard.IsInCheck(isWhite) {
		return fmt.Errorf("move leaves king in check")
	}

	return nil
}

func (b *Board) isValidPawnMove(from, to Square, isWhite bool) bool {
	direction := 1
	startRank := 1
	if !isWhite {
		direction = -1
		startRank = 6
	}

	fileDiff := to.File - from.File
	rankDiff := to.Rank - from.Rank

	// Forward move
	if fileDiff == 0 {
		if rankDiff == direction && b.GetPiece(to) == 0 {
			return true
		}
		if from.Rank == startRank && rankDiff == 2*direction {
			mid := Square{File: from.File, Rank: from.Rank + direction}
			if b.GetPiece(mid) == 0 && b.GetPiece(to) == 0 {
				return true
			}
		}
	}

	// Capture
	if abs(fileDiff) == 1 && rankDiff == direction {
		destPiece := b.GetPiece(to)
		if destPiece != 0 && IsWhitePiece(destPiece) != isWhite {
			return true
		}
		if to.String() == b.EnPassantSquare {
			return true
		}
	}

	return false
}

func (b *Board) isValidKnightMove(from, to Square) bool {
	fileDiff := abs(to.File - from.File)
	rankDiff := abs(to.Rank - from.Rank)
	return (fileDiff == 2 && rankDiff == 1) || (fileDiff == 1 && rankDiff == 2)
}

func (b *Board) isValidBishopMove(from, to Square) bool {
	fileDiff := abs(to.File - from.File)
	rankDiff := abs(to.Rank - from.Rank)
	if fileDiff != rankDiff {
		return false
	}
	return b.isPathClear(from, to)
}

func (b *Board) isValidRookMove(from, to Square) bool {
	if from.File != to.File && from.Rank != to.Rank {
		return false
	}
	return b.isPathClear(from, to)
}

func (b *Board) isValidQueenMove(from, to Square) bool {
	return b.isValidBishopMove(from, to) || b.isValidRookMove(from, to)
}

func (b *Board) isValidKingMove(from, to Square, isWhite bool) bool {
	fileDiff := abs(to.File - from.File)
	rankDiff := abs(to.Rank - from.Rank)

	if fileDiff <= 1 && rankDiff <= 1 {
		return true
	}

	// Castling
	if rankDiff == 0 && fileDiff == 2 {
		if isWhite && from.Rank == 0 {
			if to.File == 6 && b.CastleRights.WhiteKingSide {
				return b.canCastle(from, to, isWhite)
			}
			if to.File == 2 && b.CastleRights.WhiteQueenSide {
				return b.canCastle(from, to, isWhite)
			}
		} else if !isWhite && from.Rank == 7 {
			if to.File == 6 && b.CastleRights.BlackKingSide {
				return b.canCastle(from, to, isWhite)
			}
			if to.File == 2 && b.CastleRights.BlackQueenSide {
				return b.canCastle(from, to, isWhite)
			}
		}
	}

	return false
}

func (b *Board) canCastle(from, to Square, isWhite bool) bool {
	if b.IsInCheck(isWhite) {
		return false
	}
	if b.GetPiece(to) != 0 {
		return false
	}

	direction := 1
	if to.File < from.File {
		direction = -1
	}

	// King's path must be clear and never attacked.
	for f := from.File + direction; f != to.File; f += direction {
		sq := Square{File: f, Rank: from.Rank}
		if b.GetPiece(sq) != 0 {
			return false
		}
		tempBoard := b.Copy()
		tempBoard.Squares[from.Rank][from.File] = 0
		tempBoard.Squares[sq.Rank][sq.File] = b.GetPiece(from)
		if tempBoard.IsInCheck(isWhite) {
			return false
		}
	}

	rookFile := 7
	if direction == -1 {
		rookFile = 0
		// Queen-side: b-file square must also be empty.
		if b.Squares[from.Rank][1] != 0 {
			return false
		}
	}
	expectedRook := 'R'
	if !isWhite {
		expectedRook = 'r'
	}
	if b.Squares[from.Rank][rookFile] != expectedRook {
		return false
	}

	return true
}

func (b *Board) isPathClear(from, to Square) bool {
	fileDir := sign(to.File - from.File)
	rankDir := sign(to.Rank - from.Rank)

	f, r := from.File+fileDir, from.Rank+rankDir
	for f != to.File || r != to.Rank {
		if b.Squares[r][f] != 0 {
			return false
		}
		f += fileDir
		r += rankDir
	}
	return true
}

// IsInCheck returns true if the specified player's king is attacked.
func (b *Board) IsInCheck(isWhite bool) bool {
	kingPiece := 'K'
	if !isWhite {
		kingPiece = 'k'
	}

	var kingSq Square
	found := false
	for r := 0; r < 8 && !found; r++ {
		for f := 0; f < 8; f++ {
			if b.Squares[r][f] == kingPiece {
				kingSq = Square{File: f, Rank: r}
				found = true
				break
			}
		}
	}
	if !found {
		return false
	}

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			piece := b.Squares[r][f]
			if piece == 0 {
				continue
			}
			if IsWhitePiece(piece) == isWhite {
				continue
			}
			if b.canAttack(Square{File: f, Rank: r}, kingSq, piece) {
				return true
			}
		}
	}

	return false
}

func (b *Board) canAttack(from, to Square, piece rune) bool {
	isWhite := IsWhitePiece(piece)

	switch PieceType(piece) {
	case Pawn:
		direction := 1
		if !isWhite {
			direction = -1
		}
		return abs(to.File-from.File) == 1 && to.Rank-from.Rank == direction
	case Knight:
		return b.isValidKnightMove(from, to)
	case Bishop:
		return b.isValidBishopMove(from, to)
	case Rook:
		return b.isValidRookMove(from, to)
	case Queen:
		return b.isValidQueenMove(from, to)
	case King:
		return abs(to.File-from.File) <= 1 && abs(to.Rank-from.Rank) <= 1
	}
	return false
}

// movePiece slides a piece between squares with no bookkeeping. Used for
// scratch-board check tests only.
func (b *Board) movePiece(from, to Square) {
	b.Squares[to.Rank][to.File] = b.Squares[from.Rank][from.File]
	b.Squares[from.Rank][from.File] = 0
}

// MakeMove applies a move and returns the new board state. The receiver is
// not modified.
func (b *Board) MakeMove(m Move) *Board {
	newBoard := b.Copy()
	piece := newBoard.Squares[m.From.Rank][m.From.File]
	pieceType := PieceType(piece)
	isWhite := IsWhitePiece(piece)

	// En passant capture removes the bypassed pawn.
	if pieceType == Pawn && m.To.String() == b.EnPassantSquare {
		captureRank := m.To.Rank
		if isWhite {
			captureRank--
		} else {
			captureRank++
		}
		newBoard.Squares[captureRank][m.To.File] = 0
	}

	// Castling moves the rook as well.
	if pieceType == King && abs(m.To.File-m.From.File) == 2 {
		if m.To.File == 6 { // King-side
			newBoard.Squares[m.From.Rank][5] = newBoard.Squares[m.From.Rank][7]
			newBoard.Squares[m.From.Rank][7] = 0
		} else { // Queen-side
			newBoard.Squares[m.From.Rank][3] = newBoard.Squares[m.From.Rank][0]
			newBoard.Squares[m.From.Rank][0] = 0
		}
	}

	newBoard.Squares[m.To.Rank][m.To.File] = piece
	newBoard.Squares[m.From.Rank][m.From.File] = 0

	// Promotion, defaulting to queen.
	if pieceType == Pawn && (m.To.Rank == 7 || m.To.Rank == 0) {
		promoted := m.Promotion
		if promoted == 0 {
			promoted = Queen
		}
		if isWhite {
			newBoard.Squares[m.To.Rank][m.To.File] = unicode.ToUpper(promoted)
		} else {
			newBoard.Squares[m.To.Rank][m.To.File] = unicode.ToLower(promoted)
		}
	}

	newBoard.EnPassantSquare = ""
	if pieceType == Pawn && abs(m.To.Rank-m.From.Rank) == 2 {
		epRank := (m.From.Rank + m.To.Rank) / 2
		newBoard.EnPassantSquare = Square{File: m.To.File, Rank: epRank}.String()
	}

	if pieceType == King {
		if isWhite {
			newBoard.CastleRights.WhiteKingSide = false
			newBoard.CastleRights.WhiteQueenSide = false
		} else {
			newBoard.CastleRights.BlackKingSide = false
			newBoard.CastleRights.BlackQueenSide = false
		}
	}
	if pieceType == Rook {
		switch {
		case m.From.File == 0 && m.From.Rank == 0:
			newBoard.CastleRights.WhiteQueenSide = false
		case m.From.File == 7 && m.From.Rank == 0:
			newBoard.CastleRights.WhiteKingSide = false
		case m.From.File == 0 && m.From.Rank == 7:
			newBoard.CastleRights.BlackQueenSide = false
		case m.From.File == 7 && m.From.Rank == 7:
			newBoard.CastleRights.BlackKingSide = false
		}
	}
	// A captured rook also forfeits castling on its side.
	switch {
	case m.To.File == 0 && m.To.Rank == 0:
		newBoard.CastleRights.WhiteQueenSide = false
	case m.To.File == 7 && m.To.Rank == 0:
		newBoard.CastleRights.WhiteKingSide = false
	case m.To.File == 0 && m.To.Rank == 7:
		newBoard.CastleRights.BlackQueenSide = false
	case m.To.File == 7 && m.To.Rank == 7:
		newBoard.CastleRights.BlackKingSide = false
	}

	if pieceType == Pawn || b.GetPiece(m.To) != 0 {
		newBoard.HalfMoveClock = 0
	} else {
		newBoard.HalfMoveClock++
	}
	if !isWhite {
		newBoard.FullMoveNumber++
	}

	newBoard.WhiteToMove = !b.WhiteToMove

	return newBoard
}

// IsCheckmate returns true if the side to move is checkmated.
func (b *Board) IsCheckmate() bool {
	if !b.IsInCheck(b.WhiteToMove) {
		return false
	}
	return !b.hasLegalMoves(b.WhiteToMove)
}

// IsStalemate returns true if the side to move is stalemated.
func (b *Board) IsStalemate() bool {
	if b.IsInCheck(b.WhiteToMove) {
		return false
	}
	return !b.hasLegalMoves(b.WhiteToMove)
}

func (b *Board) hasLegalMoves(isWhite bool) bool {
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			piece := b.Squares[r][f]
			if piece == 0 {
				continue
			}
			if IsWhitePiece(piece) != isWhite {
				continue
			}

			from := Square{File: f, Rank: r}
			for tr := 0; tr < 8; tr++ {
				for tf := 0; tf < 8; tf++ {
					if b.ValidateMove(from, Square{File: tf, Rank: tr}) == nil {
						return true
					}
				}
			}
		}
	}
	return false
}

// TerminalStatus classifies whether and how a position has ended.
type TerminalStatus int

const (
	TerminalNone TerminalStatus = iota
	TerminalCheckmate
	TerminalStalemate
	TerminalInsufficientMaterial
)

// Terminal classifies the board's terminal state for the side to move.
func (b *Board) Terminal() TerminalStatus {
	if IsInsufficientMaterial(b) {
		return TerminalInsufficientMaterial
	}
	if b.hasLegalMoves(b.WhiteToMove) {
		return TerminalNone
	}
	if b.IsInCheck(b.WhiteToMove) {
		return TerminalCheckmate
	}
	return TerminalStalemate
}

// GivesCheck reports whether playing the move checks the opponent.
func (b *Board) GivesCheck(m Move) bool {
	next := b.MakeMove(m)
	return next.IsInCheck(next.WhiteToMove)
}

// IsPassedPawn reports whether the pawn on sq has no enemy pawns blocking or
// guarding its path to promotion. Returns false if sq does not hold a pawn.
func (b *Board) IsPassedPawn(sq Square) bool {
	piece := b.GetPiece(sq)
	if PieceType(piece) != Pawn {
		return false
	}
	isWhite := IsWhitePiece(piece)
	enemyPawn := 'p'
	direction := 1
	if !isWhite {
		enemyPawn = 'P'
		direction = -1
	}

	for f := sq.File - 1; f <= sq.File+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		for r := sq.Rank + direction; r >= 0 && r <= 7; r += direction {
			if b.Squares[r][f] == enemyPawn {
				return false
			}
		}
	}
	return true
}
