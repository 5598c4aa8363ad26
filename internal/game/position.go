package game

// Position is a mutable working copy of a board for search. Apply pushes the
// successor board onto an internal stack and Undo pops it, so any sequence of
// Apply calls is unwound to the exact prior state no matter where the caller
// stops. The zero value is not usable; construct with NewPosition.
type Position struct {
	boards []*Board
}

// NewPosition wraps a board for search. The board itself is never mutated.
func NewPosition(b *Board) *Position {
	return &Position{boards: []*Board{b}}
}

// NewPositionFromFEN parses fen and wraps the result.
func NewPositionFromFEN(fen string) (*Position, error) {
	b, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return NewPosition(b), nil
}

// Board returns the current board state.
func (p *Position) Board() *Board {
	return p.boards[len(p.boards)-1]
}

// Apply plays a move on the position.
func (p *Position) Apply(m Move) {
	p.boards = append(p.boards, p.Board().MakeMove(m))
}

// Undo reverts the most recent Apply. Panics if there is nothing to undo;
// unbalanced Apply/Undo pairs are a programming error.
func (p *Position) Undo() {
	if len(p.boards) == 1 {
		panic("game: Undo without matching Apply")
	}
	p.boards[len(p.boards)-1] = nil
	p.boards = p.boards[:len(p.boards)-1]
}

// Depth returns how many applied moves are currently on the stack.
func (p *Position) Depth() int {
	return len(p.boards) - 1
}

// WhiteToMove reports which side moves next.
func (p *Position) WhiteToMove() bool {
	return p.Board().WhiteToMove
}

// LegalMoves enumerates the legal moves in the current position.
func (p *Position) LegalMoves() []Move {
	return p.Board().LegalMoves()
}

// Terminal classifies the current position's terminal state.
func (p *Position) Terminal() TerminalStatus {
	return p.Board().Terminal()
}

// GivesCheck reports whether the move checks the opponent.
func (p *Position) GivesCheck(m Move) bool {
	return p.Board().GivesCheck(m)
}

// PieceAt returns the piece on sq, or 0 for an empty square.
func (p *Position) PieceAt(sq Square) rune {
	return p.Board().GetPiece(sq)
}

// IsPassedPawn reports whether sq holds a passed pawn.
func (p *Position) IsPassedPawn(sq Square) bool {
	return p.Board().IsPassedPawn(sq)
}

// FEN returns the current position in FEN notation.
func (p *Position) FEN() string {
	return p.Board().ToFEN()
}
