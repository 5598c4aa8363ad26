package game

import (
	"strings"
	"unicode"
)

// SAN generates standard algebraic notation for a legal move in this
// position, including check and mate suffixes.
func (b *Board) SAN(m Move) string {
	piece := b.GetPiece(m.From)
	pieceType := PieceType(piece)
	isCapture := b.GetPiece(m.To) != 0

	if pieceType == Pawn && m.To.String() == b.EnPassantSquare {
		isCapture = true
	}

	var notation strings.Builder

	if pieceType == King && abs(m.To.File-m.From.File) == 2 {
		if m.To.File == 6 {
			notation.WriteString("O-O")
		} else {
			notation.WriteString("O-O-O")
		}
		notation.WriteString(b.checkSuffix(m))
		return notation.String()
	}

	if pieceType != Pawn {
		notation.WriteRune(pieceType)
	}

	// Disambiguate when another piece of the same kind reaches the square.
	if pieceType != Pawn && pieceType != King {
		needFile, needRank := b.needsDisambiguation(m.From, m.To, piece)
		if needFile {
			notation.WriteByte(byte('a' + m.From.File))
		}
		if needRank {
			notation.WriteByte(byte('1' + m.From.Rank))
		}
	}

	if pieceType == Pawn && isCapture {
		notation.WriteByte(byte('a' + m.From.File))
	}

	if isCapture {
		notation.WriteByte('x')
	}

	notation.WriteString(m.To.String())

	if pieceType == Pawn && (m.To.Rank == 7 || m.To.Rank == 0) {
		notation.WriteByte('=')
		if m.Promotion != 0 {
			notation.WriteRune(unicode.ToUpper(m.Promotion))
		} else {
			notation.WriteByte('Q')
		}
	}

	notation.WriteString(b.checkSuffix(m))

	return notation.String()
}

func (b *Board) checkSuffix(m Move) string {
	next := b.MakeMove(m)
	if next.IsCheckmate() {
		return "#"
	}
	if next.IsInCheck(next.WhiteToMove) {
		return "+"
	}
	return ""
}

func (b *Board) needsDisambiguation(from, to Square, piece rune) (needFile, needRank bool) {
	pieceType := PieceType(piece)
	isWhite := IsWhitePiece(piece)

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			if f == from.File && r == from.Rank {
				continue
			}
			other := b.Squares[r][f]
			if PieceType(other) != pieceType {
				continue
			}
			if IsWhitePiece(other) != isWhite {
				continue
			}

			if b.ValidateMove(Square{File: f, Rank: r}, to) == nil {
				if f != from.File {
					needFile = true
				} else {
					needRank = true
				}
			}
		}
	}
	return
}
