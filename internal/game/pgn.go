package game

import (
	"fmt"
	"strings"
	"time"
)

// PGNTags holds the seven-tag-roster values for an exported game.
type PGNTags struct {
	Event  string
	Site   string
	Date   time.Time
	White  string
	Black  string
	Result string
}

// WritePGN renders a game as PGN movetext, replaying moves from the starting
// position to produce SAN. The move list must be legal from the start
// position; an illegal move truncates the movetext at that point.
func WritePGN(tags PGNTags, moves []Move) string {
	var sb strings.Builder

	result := tags.Result
	if result == "" {
		result = "*"
	}

	writeTag := func(name, value string) {
		if value == "" {
			value = "?"
		}
		fmt.Fprintf(&sb, "[%s %q]\n", name, value)
	}

	writeTag("Event", tags.Event)
	writeTag("Site", tags.Site)
	if tags.Date.IsZero() {
		writeTag("Date", "????.??.??")
	} else {
		writeTag("Date", tags.Date.Format("2006.01.02"))
	}
	writeTag("Round", "-")
	writeTag("White", tags.White)
	writeTag("Black", tags.Black)
	writeTag("Result", result)
	sb.WriteString("\n")

	board := NewBoard()
	var tokens []string
	for _, m := range moves {
		if board.ValidateMove(m.From, m.To) != nil {
			break
		}
		if board.WhiteToMove {
			tokens = append(tokens, fmt.Sprintf("%d.", board.FullMoveNumber))
		}
		tokens = append(tokens, board.SAN(m))
		board = board.MakeMove(m)
	}
	tokens = append(tokens, result)

	// Wrap movetext at 80 columns.
	line := ""
	for _, tok := range tokens {
		if line == "" {
			line = tok
		} else if len(line)+1+len(tok) > 80 {
			sb.WriteString(line + "\n")
			line = tok
		} else {
			line += " " + tok
		}
	}
	if line != "" {
		sb.WriteString(line + "\n")
	}

	return sb.String()
}

// Result classifies the final game result string for a finished board, using
// the side to move to orient checkmate. Ongoing games return "*".
func (b *Board) Result() string {
	switch b.Terminal() {
	case TerminalCheckmate:
		if b.WhiteToMove {
			return "0-1"
		}
		return "1-0"
	case TerminalStalemate, TerminalInsufficientMaterial:
		return "1/2-1/2"
	}
	return "*"
}
