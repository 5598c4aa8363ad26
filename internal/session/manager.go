// Package session owns per-user game state: each browser session maps to one
// board, its move history, and its difficulty settings. State lives in
// memory; the session cookie only carries the signed game ID.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"sync"
	"time"

	"chess-ai/internal/config"
	"chess-ai/internal/game"
)

// Session holds one user's game in progress. All access must go through the
// session's own mutex: handlers for the same session may race (double-submit,
// websocket reads).
type Session struct {
	ID string

	mu              sync.Mutex
	board           *game.Board
	moves           []game.Move
	positionHistory []string // FEN after every played move
	level           int
	createdAt       time.Time
	lastActive      time.Time
}

// Manager is the in-memory session store.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	defaultLevel int
	ttl          time.Duration
	stopCh       chan struct{}
}

func NewManager(defaultLevel int, ttl time.Duration) *Manager {
	return &Manager{
		sessions:     make(map[string]*Session),
		defaultLevel: defaultLevel,
		ttl:          ttl,
		stopCh:       make(chan struct{}),
	}
}

func newGameID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// Create starts a fresh session with a new board.
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:              newGameID(),
		board:           game.NewBoard(),
		positionHistory: []string{game.StartingFEN},
		level:           m.defaultLevel,
		createdAt:       now,
		lastActive:      now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Get returns the session for a game ID, refreshing its activity timestamp.
func (m *Manager) Get(gameID string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[gameID]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
	return s, true
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartCleanup launches a background loop that evicts sessions idle longer
// than the TTL. Adapted interval scanning; sessions hold no external
// resources so eviction is just a map delete.
func (m *Manager) StartCleanup(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-m.stopCh:
				return
			case <-ticker.C:
				m.evictStale()
			}
		}
	}()
	log.Printf("Session cleanup started (interval: %v, ttl: %v)", interval, m.ttl)
}

// Stop shuts down the cleanup loop.
func (m *Manager) Stop() {
	close(m.stopCh)
}

func (m *Manager) evictStale() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		stale := s.lastActive.Before(cutoff)
		s.mu.Unlock()
		if stale {
			delete(m.sessions, id)
			evicted++
		}
	}
	if evicted > 0 {
		log.Printf("Session cleanup: evicted %d stale session(s), %d remain", evicted, len(m.sessions))
	}
}

// Board returns a copy of the session's current board.
func (s *Session) Board() *game.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board.Copy()
}

// Reset replaces the session's game with a fresh board.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.board = game.NewBoard()
	s.moves = nil
	s.positionHistory = []string{game.StartingFEN}
}

// PlayMove validates and applies a move in one critical section, so two
// concurrent submissions cannot both validate against the same snapshot.
// Returns the move's SAN, computed from the position it was played in.
func (s *Session) PlayMove(m game.Move) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.board.ValidateMove(m.From, m.To); err != nil {
		return "", err
	}
	san := s.board.SAN(m)
	s.board = s.board.MakeMove(m)
	s.moves = append(s.moves, m)
	s.positionHistory = append(s.positionHistory, s.board.ToFEN())
	return san, nil
}

// Moves returns the session's move history.
func (s *Session) Moves() []game.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	moves := make([]game.Move, len(s.moves))
	copy(moves, s.moves)
	return moves
}

// PositionHistory returns the FENs reached during the game, for repetition
// detection.
func (s *Session) PositionHistory() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]string, len(s.positionHistory))
	copy(history, s.positionHistory)
	return history
}

// Level returns the session's difficulty level.
func (s *Session) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

// SetLevel sets the session's difficulty level, clamped to the valid range.
func (s *Session) SetLevel(level int) int {
	clamped := config.ClampLevel(level)
	s.mu.Lock()
	s.level = clamped
	s.mu.Unlock()
	return clamped
}

// MoveCount returns the number of plies played.
func (s *Session) MoveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.moves)
}
