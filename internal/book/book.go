// Package book provides the opening-book fast path: a pre-indexed table of
// early-game continuations keyed by position, with weighted-random selection
// among the stored moves.
package book

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"chess-ai/internal/game"
)

// Entry is one stored continuation for a position. Weight drives the random
// selection; entries with non-positive weight are ignored.
type Entry struct {
	UCI    string `json:"uci"`
	Weight int    `json:"weight"`
}

// Book maps normalized FENs to weighted continuations. A nil *Book is a
// valid empty book: every lookup misses.
type Book struct {
	positions map[string][]Entry
}

// Open loads a JSON book file: an object mapping FEN strings to arrays of
// {uci, weight} entries. Halfmove and fullmove counters in the keys are
// ignored for matching.
func Open(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read opening book: %w", err)
	}

	var raw map[string][]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse opening book %s: %w", path, err)
	}

	positions := make(map[string][]Entry, len(raw))
	for fen, entries := range raw {
		positions[normalizeFEN(fen)] = entries
	}
	return &Book{positions: positions}, nil
}

// normalizeFEN strips the halfmove and fullmove counters so book keys match
// the same position regardless of move history.
func normalizeFEN(fen string) string {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return fen
	}
	return strings.Join(parts[:4], " ")
}

// Lookup returns a weighted-random book continuation for the exact current
// position. Unknown positions, empty entries, and entries that are not legal
// in the position all report a miss; the caller falls through to search.
func (b *Book) Lookup(pos *game.Position) (game.Move, bool) {
	if b == nil {
		return game.Move{}, false
	}

	entries := b.positions[normalizeFEN(pos.FEN())]
	if len(entries) == 0 {
		return game.Move{}, false
	}

	legal := pos.LegalMoves()

	type candidate struct {
		move   game.Move
		weight int
	}
	var candidates []candidate
	total := 0
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		m, err := game.ParseMove(e.UCI)
		if err != nil {
			continue
		}
		for _, lm := range legal {
			if lm == m {
				candidates = append(candidates, candidate{move: m, weight: e.Weight})
				total += e.Weight
				break
			}
		}
	}

	if len(candidates) == 0 {
		return game.Move{}, false
	}

	r := rand.Intn(total)
	for _, c := range candidates {
		r -= c.weight
		if r < 0 {
			return c.move, true
		}
	}
	return candidates[len(candidates)-1].move, true
}
