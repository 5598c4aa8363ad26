package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chess-ai/internal/engine"
	"chess-ai/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for now
	},
}

// WebSocketHandler streams live game events to spectating clients. Each
// client subscribes to its own session's feed; every applied move is pushed,
// and machine moves additionally carry the search diagnostics.
type WebSocketHandler struct {
	hub *Hub
}

func NewWebSocketHandler() *WebSocketHandler {
	hub := NewHub()
	go hub.Run()
	return &WebSocketHandler{hub: hub}
}

// Hub maintains active connections and broadcasts messages
type Hub struct {
	// Map of gameId -> set of connections
	games map[string]map[*Client]bool
	mu    sync.RWMutex

	register   chan *Client
	unregister chan *Client
	broadcast  chan *BroadcastMessage
}

type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	gameId string
	send   chan []byte
}

type BroadcastMessage struct {
	GameId  string
	Message []byte
}

// Analysis is the engine diagnostics attached to machine moves.
type Analysis struct {
	Score     int   `json:"score"`
	Depth     int   `json:"depth"`
	Evaluated int   `json:"evaluated"`
	Nodes     int   `json:"nodes"`
	ElapsedMs int64 `json:"elapsedMs"`
	FromBook  bool  `json:"fromBook"`
}

type WSMessage struct {
	Type     string    `json:"type"`
	FEN      string    `json:"fen,omitempty"`
	Move     string    `json:"move,omitempty"`
	SAN      string    `json:"san,omitempty"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

func NewHub() *Hub {
	return &Hub{
		games:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *BroadcastMessage),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.games[client.gameId] == nil {
				h.games[client.gameId] = make(map[*Client]bool)
			}
			h.games[client.gameId][client] = true
			h.mu.Unlock()
			log.Printf("Client registered: game=%s", client.gameId)

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.games[client.gameId]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.games, client.gameId)
					}
				}
			}
			h.mu.Unlock()
			log.Printf("Client unregistered: game=%s", client.gameId)

		case msg := <-h.broadcast:
			h.mu.RLock()
			if clients, ok := h.games[msg.GameId]; ok {
				for client := range clients {
					select {
					case client.send <- msg.Message:
					default:
						close(client.send)
						delete(clients, client)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) BroadcastToGame(gameId string, message []byte) {
	h.broadcast <- &BroadcastMessage{
		GameId:  gameId,
		Message: message,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HandleWebSocket upgrades the connection and ties it to the caller's
// session. The session middleware must run before this handler.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := &Client{
		hub:    h.hub,
		conn:   conn,
		gameId: s.ID,
		send:   make(chan []byte, 256),
	}

	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// BroadcastMove pushes an applied move to the session's subscribers.
func (h *WebSocketHandler) BroadcastMove(gameId, fen, uci, san string) {
	msg := WSMessage{
		Type: "move",
		FEN:  fen,
		Move: uci,
		SAN:  san,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal move: %v", err)
		return
	}
	h.hub.BroadcastToGame(gameId, data)
}

// BroadcastEngineMove pushes a machine move along with its search
// diagnostics.
func (h *WebSocketHandler) BroadcastEngineMove(gameId, fen, uci, san string, depth int, result engine.SearchResult) {
	msg := WSMessage{
		Type: "engine_move",
		FEN:  fen,
		Move: uci,
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
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Failed to marshal engine move: %v", err)
		return
	}
	h.hub.BroadcastToGame(gameId, data)
}
