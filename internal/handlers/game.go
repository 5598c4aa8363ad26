package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"chess-ai/internal/config"
	"chess-ai/internal/db"
	"chess-ai/internal/engine"
	"chess-ai/internal/game"
	"chess-ai/internal/models"
	"chess-ai/internal/session"
)

// GameHandler serves the game API. Every handler resolves the caller's
// session from the request context; the session middleware guarantees one
// exists.
type GameHandler struct {
	engine     *engine.Engine
	store      *db.SavedGameStore
	ws         *WebSocketHandler
	searchTime time.Duration
}

func NewGameHandler(eng *engine.Engine, store *db.SavedGameStore, wsHandler *WebSocketHandler, searchTime time.Duration) *GameHandler {
	return &GameHandler{
		engine:     eng,
		store:      store,
		ws:         wsHandler,
		searchTime: searchTime,
	}
}

type MoveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

type PlayedMove struct {
	From     string    `json:"from"`
	To       string    `json:"to"`
	UCI      string    `json:"uci"`
	SAN      string    `json:"san"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

type GameOver struct {
	Result string `json:"result"` // "1-0", "0-1", "1/2-1/2"
	Reason string `json:"reason"` // "checkmate", "stalemate", ...
}

type MoveResponse struct {
	FEN      string      `json:"fen"`
	UserMove *PlayedMove `json:"userMove,omitempty"`
	AIMove   *PlayedMove `json:"aiMove,omitempty"`
	Check    bool        `json:"check"`
	GameOver *GameOver   `json:"gameOver,omitempty"`
}

type BoardResponse struct {
	FEN        string    `json:"fen"`
	Turn       string    `json:"turn"` // "white" or "black"
	LegalMoves []string  `json:"legalMoves"`
	Check      bool      `json:"check"`
	Level      int       `json:"level"`
	GameOver   *GameOver `json:"gameOver,omitempty"`
}

type DifficultyRequest struct {
	Level int `json:"level"`
}

type DifficultyResponse struct {
	Level int `json:"level"`
	Depth int `json:"depth"`
	Elo   int `json:"elo"`
}

type SaveGameRequest struct {
	Name      string `json:"name"`
	Overwrite bool   `json:"overwrite,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

func mustSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "No session")
	}
	return s, ok
}

// Reset starts a fresh game for the session.
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := mustSession(w, r)
	if !ok {
		return
	}

	s.Reset()
	writeJSON(w, http.StatusOK, MoveResponse{FEN: s.Board().ToFEN()})
}

// SetDifficulty updates the session's level, clamping out-of-range values.
func (h *GameHandler) SetDifficulty(w http.ResponseWriter, r *http.Request) {
	s, ok := mustSession(w, r)
	if !ok {
		return
	}

	var req DifficultyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	level := s.SetLevel(req.Level)
	writeJSON(w, http.StatusOK, DifficultyResponse{
		Level: level,
		Depth: config.DepthForLevel(level),
		Elo:   config.EloForLevel(level),
	})
}

// parseMove builds a validated move from the request, filling in a queen
// promotion when a pawn reaches the last rank and the client sent none.
func parseMove(board *game.Board, req MoveRequest) (game.Move, error) {
	from, err := game.ParseSquare(req.From)
	if err != nil {
		return game.Move{}, err
	}
	to, err := game.ParseSquare(req.To)
	if err != nil {
		return game.Move{}, err
	}
	if err := board.ValidateMove(from, to); err != nil {
		return game.Move{}, err
	}

	m := game.Move{From: from, To: to}
	piece := board.GetPiece(from)
	if game.PieceType(piece) == game.Pawn && (to.Rank == 7 || to.Rank == 0) {
		m.Promotion = game.Queen
		if req.Promotion != "" {
			p := rune(strings.ToUpper(req.Promotion)[0])
			switch p {
			case game.Queen, game.Rook, game.Bishop, game.Knight:
				m.Promotion = p
			}
		}
	}
	return m, nil
}

// gameOver classifies a finished game, or returns nil while play continues.
// Fifty-move and threefold draws end the game automatically here, the way a
// claimed draw would.
func gameOver(board *game.Board, positionHistory []string) *GameOver {
	if board.IsCheckmate() {
		result := "1-0"
		if board.WhiteToMove {
			result = "0-1"
		}
		return &GameOver{Result: result, Reason: "checkmate"}
	}
	dc := game.GetDrawContext(board, positionHistory)
	if dc.Any() {
		return &GameOver{Result: "1/2-1/2", Reason: dc.Describe()}
	}
	return nil
}

// Move applies the user's move and, when the game continues, answers with
// the machine's reply.
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	h.handleMove(w, r, true)
}

// PvPMove applies a move without a machine reply, for two-player games.
func (h *GameHandler) PvPMove(w http.ResponseWriter, r *http.Request) {
	h.handleMove(w, r, false)
}

func (h *GameHandler) handleMove(w http.ResponseWriter, r *http.Request, withReply bool) {
	s, ok := mustSession(w, r)
	if !ok {
		return
	}

	var req MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	m, err := parseMove(s.Board(), req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Illegal move: "+err.Error())
		return
	}

	// PlayMove re-validates under the session lock; a concurrent submission
	// that won the race makes this one fail instead of corrupting the board.
	san, err := s.PlayMove(m)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Illegal move: "+err.Error())
		return
	}
	board := s.Board()
	h.ws.BroadcastMove(s.ID, board.ToFEN(), m.String(), san)

	resp := MoveResponse{
		FEN: board.ToFEN(),
		UserMove: &PlayedMove{
			From: m.From.String(),
			To:   m.To.String(),
			UCI:  m.String(),
			SAN:  san,
		},
		Check: board.IsInCheck(board.WhiteToMove),
	}

	if over := gameOver(board, s.PositionHistory()); over != nil {
		resp.GameOver = over
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if withReply {
		aiMove, over := h.playEngineMove(s)
		resp.AIMove = aiMove
		resp.GameOver = over
		board = s.Board()
		resp.FEN = board.ToFEN()
		resp.Check = board.IsInCheck(board.WhiteToMove)
	}

	writeJSON(w, http.StatusOK, resp)
}

// playEngineMove has the engine choose and apply a move for the side to
// move. Returns nil when the engine has no move.
func (h *GameHandler) playEngineMove(s *session.Session) (*PlayedMove, *GameOver) {
	board := s.Board()
	level := s.Level()
	depth := config.DepthForLevel(level)

	result := h.engine.ChooseMove(game.NewPosition(board), depth, h.searchTime)
	if result.Move == nil {
		return nil, gameOver(board, s.PositionHistory())
	}

	m := *result.Move
	san, err := s.PlayMove(m)
	if err != nil {
		// The board changed under the search; drop the stale reply.
		return nil, gameOver(s.Board(), s.PositionHistory())
	}
	board = s.Board()
	h.ws.BroadcastEngineMove(s.ID, board.ToFEN(), m.String(), san, depth, result)

	played := &PlayedMove{
		From: m.From.String(),
		To:   m.To.String(),
		UCI:  m.String(),
		SAN:  san,
		Analysis: &Analysis{
			Score:     result.Score,
			Depth:     depth,
			Evaluated: result.Evaluated,
			Nodes:     result.Nodes,
			ElapsedMs: result.Elapsed.Milliseconds(),
			FromBook:  result.FromBook,
		},
	}
	return played, gameOver(board, s.PositionHistory())
}

// AIFirstMove resets the game and lets the engine open as white.
func (h *GameHandler) AIFirstMove(w http.ResponseWriter, r *http.Request) {
	s, ok := mustSession(w, r)
	if !ok {
		return
	}

	s.Reset()
	aiMove, over := h.playEngineMove(s)

	board := s.Board()
	writeJSON(w, http.StatusOK, MoveResponse{
		FEN:      board.ToFEN(),
		AIMove:   aiMove,
		Check:    board.IsInCheck(board.WhiteToMove),
		GameOver: over,
	})
}

// Board reports the session's current position.
func (h *GameHandler) Board(w http.ResponseWriter, r *http.Request) {
	s, ok := mustSession(w, r)
	if !ok {
		return
	}

	board := s.Board()
	moves := board.LegalMoves()
	uci := make([]string, len(moves))
	for i, m := range moves {
		uci[i] = m.String()
	}

	turn := "black"
	if board.WhiteToMove {
		turn = "white"
	}

	writeJSON(w, http.StatusOK, BoardResponse{
		FEN:        board.ToFEN(),
		Turn:       turn,
		LegalMoves: uci,
		Check:      board.IsInCheck(board.WhiteToMove),
		Level:      s.Level(),
		GameOver:   gameOver(board, s.PositionHistory()),
	})
}

// LegalMoves lists the legal moves from a single square.
func (h *GameHandler) LegalMoves(w http.ResponseWriter, r *http.Request) {
	s, ok := mustSession(w, r)
	if !ok {
		return
	}

	square := r.URL.Query().Get("square")
	from, err := game.ParseSquare(square)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid square")
		return
	}

	board := s.Board()
	targets := []string{}
	for _, m := range board.LegalMoves() {
		if m.From == from {
			targets = append(targets, m.To.String())
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"square": square,
		"moves":  targets,
	})
}

// SaveGame archives the session's game as PGN under a caller-chosen name.
func (h *GameHandler) SaveGame(w http.ResponseWriter, r *http.Request) {
	s, ok := mustSession(w, r)
	if !ok {
		return
	}
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "Game archiving is not enabled")
		return
	}

	var req SaveGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "A name is required")
		return
	}

	board := s.Board()
	level := s.Level()
	saved := models.SavedGame{
		Name: req.Name,
		PGN: game.WritePGN(game.PGNTags{
			Event:  "Casual Game",
			Site:   "chess-ai",
			Date:   time.Now(),
			White:  "Player",
			Black:  "Machine",
			Result: board.Result(),
		}, s.Moves()),
		Level:     level,
		Elo:       config.EloForLevel(level),
		Result:    board.Result(),
		VsMachine: true,
		MoveCount: s.MoveCount(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.store.Save(ctx, saved, req.Overwrite); err != nil {
		if errors.Is(err, db.ErrNameTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save game")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"name": req.Name})
}

// ListGames returns the archived games, newest first.
func (h *GameHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "Game archiving is not enabled")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	games, err := h.store.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list games")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"games": games})
}

// Health is the liveness probe.
func (h *GameHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
