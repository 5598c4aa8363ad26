package game

import (
	"fmt"
	"strings"
	"unicode"
)

// Piece types
const (
	Pawn   = 'P'
	Knight = 'N'
	Bishop = 'B'
	Rook   = 'R'
	Queen  = 'Q'
	King   = 'K'
)

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Board represents a chess board state.
type Board struct {
	Squares      [8][8]rune // Uppercase = white, lowercase = black, 0 = empty
	WhiteToMove  bool
	CastleRights struct {
		WhiteKingSide  bool
		WhiteQueenSide bool
		BlackKingSide  bool
		BlackQueenSide bool
	}
	EnPassantSquare string
	HalfMoveClock   int
	FullMoveNumber  int
}

// Square identifies a single board square.
type Square struct {
	File int // 0-7 (a-h)
	Rank int // 0-7 (1-8)
}

// ParseSquare converts algebraic notation (e.g., "e4") to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("invalid square: %s", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return Square{}, fmt.Errorf("invalid square: %s", s)
	}
	return Square{File: file, Rank: rank}, nil
}

// String converts a Square to algebraic notation.
func (s Square) String() string {
	return fmt.Sprintf("%c%c", 'a'+s.File, '1'+s.Rank)
}

// Index returns the square's 0-63 index (a1 = 0, h8 = 63).
func (s Square) Index() int {
	return s.Rank*8 + s.File
}

// Move represents a chess move with optional promotion.
type Move struct {
	From      Square
	To        Square
	Promotion rune // 0 for no promotion
}

// ParseMove converts UCI notation (e.g., "e2e4", "e7e8q") to a Move.
func ParseMove(uci string) (Move, error) {
	if len(uci) != 4 && len(uci) != 5 {
		return Move{}, fmt.Errorf("invalid move: %s", uci)
	}
	from, err := ParseSquare(uci[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move: %s", uci)
	}
	to, err := ParseSquare(uci[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move: %s", uci)
	}
	m := Move{From: from, To: to}
	if len(uci) == 5 {
		p := unicode.ToUpper(rune(uci[4]))
		switch p {
		case Queen, Rook, Bishop, Knight:
			m.Promotion = p
		default:
			return Move{}, fmt.Errorf("invalid promotion in move: %s", uci)
		}
	}
	return m, nil
}

// String converts a Move to UCI notation.
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != 0 {
		s += string(unicode.ToLower(m.Promotion))
	}
	return s
}

// ParseFEN parses a FEN string into a Board.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Split(fen, " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid FEN: expected 6 parts, got %d", len(parts))
	}

	board := &Board{}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid FEN: expected 8 ranks")
	}

	for r := 7; r >= 0; r-- {
		file := 0
		for _, c := range ranks[7-r] {
			if unicode.IsDigit(c) {
				file += int(c - '0')
			} else {
				if file > 7 {
					return nil, fmt.Errorf("invalid FEN: rank overflow")
				}
				board.Squares[r][file] = c
				file++
			}
		}
	}

	board.WhiteToMove = parts[1] == "w"

	board.CastleRights.WhiteKingSide = strings.Contains(parts[2], "K")
	board.CastleRights.WhiteQueenSide = strings.Contains(parts[2], "Q")
	board.CastleRights.BlackKingSide = strings.Contains(parts[2], "k")
	board.CastleRights.BlackQueenSide = strings.Contains(parts[2], "q")

	if parts[3] != "-" {
		board.EnPassantSquare = parts[3]
	}

	fmt.Sscanf(parts[4], "%d", &board.HalfMoveClock)
	fmt.Sscanf(parts[5], "%d", &board.FullMoveNumber)

	return board, nil
}

// ToFEN converts the Board to FEN notation.
func (b *Board) ToFEN() string {
	var sb strings.Builder

	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			piece := b.Squares[r][f]
			if piece == 0 {
				empty++
			} else {
				if empty > 0 {
					sb.WriteRune(rune('0' + empty))
					empty = 0
				}
				sb.WriteRune(piece)
			}
		}
		if empty > 0 {
			sb.WriteRune(rune('0' + empty))
		}
		if r > 0 {
			sb.WriteRune('/')
		}
	}

	if b.WhiteToMove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	castling := ""
	if b.CastleRights.WhiteKingSide {
		castling += "K"
	}
	if b.CastleRights.WhiteQueenSide {
		castling += "Q"
	}
	if b.CastleRights.BlackKingSide {
		castling += "k"
	}
	if b.CastleRights.BlackQueenSide {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	sb.WriteString(" ")
	if b.EnPassantSquare != "" {
		sb.WriteString(b.EnPassantSquare)
	} else {
		sb.WriteString("-")
	}

	sb.WriteString(fmt.Sprintf(" %d %d", b.HalfMoveClock, b.FullMoveNumber))

	return sb.String()
}

// NewBoard returns a board set up in the starting position.
func NewBoard() *Board {
	b, _ := ParseFEN(StartingFEN)
	return b
}

// GetPiece returns the piece at the given square.
func (b *Board) GetPiece(sq Square) rune {
	return b.Squares[sq.Rank][sq.File]
}

// IsWhitePiece returns true if the piece is white.
func IsWhitePiece(piece rune) bool {
	return unicode.IsUpper(piece)
}

// IsBlackPiece returns true if the piece is black.
func IsBlackPiece(piece rune) bool {
	return unicode.IsLower(piece) && piece != 0
}

// PieceType returns the uppercase piece type, or 0 for an empty square.
func PieceType(piece rune) rune {
	if piece == 0 {
		return 0
	}
	return unicode.ToUpper(piece)
}

// Copy returns a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{
		WhiteToMove:     b.WhiteToMove,
		EnPassantSquare: b.EnPassantSquare,
		HalfMoveClock:   b.HalfMoveClock,
		FullMoveNumber:  b.FullMoveNumber,
	}
	newBoard.CastleRights = b.CastleRights
	newBoard.Squares = b.Squares
	return newBoard
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}
