package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"chess-ai/internal/book"
	"chess-ai/internal/config"
	"chess-ai/internal/db"
	"chess-ai/internal/engine"
	"chess-ai/internal/handlers"
	"chess-ai/internal/middleware"
	"chess-ai/internal/session"
)

func main() {
	// Load configuration
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting chess server in %s mode", cfg.Environment)

	// Connect to MongoDB when archiving is enabled
	var store *db.SavedGameStore
	if cfg.MongoDB.Enabled {
		mongodb, err := db.NewMongoDB(cfg.MongoDB.URI, cfg.MongoDB.Database)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			mongodb.Close(ctx)
		}()
		store = db.NewSavedGameStore(mongodb)
		log.Printf("Connected to MongoDB database: %s", cfg.MongoDB.Database)
	} else {
		log.Println("MongoDB disabled, game archiving unavailable")
	}

	// Opening book is optional; a missing or corrupt file just disables it
	var openingBook *book.Book
	if cfg.Engine.BookPath != "" {
		openingBook, err = book.Open(cfg.Engine.BookPath)
		if err != nil {
			log.Printf("Opening book unavailable: %v", err)
			openingBook = nil
		}
	}

	eng := engine.New(openingBook, cfg.Engine.BookMaxDepth)

	// Sessions
	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute
	tokens := session.NewTokenService(cfg.Session.Secret, sessionTTL)
	manager := session.NewManager(cfg.Engine.DefaultLevel, sessionTTL)
	manager.StartCleanup(10 * time.Minute)
	defer manager.Stop()

	sessionMW := session.NewMiddleware(manager, tokens, env == "production")

	// Rate limiting
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	// Create handlers
	wsHandler := handlers.NewWebSocketHandler()
	searchTime := time.Duration(cfg.Engine.SearchTimeMs) * time.Millisecond
	gameHandler := handlers.NewGameHandler(eng, store, wsHandler, searchTime)

	// Set up router
	router := mux.NewRouter()
	router.Use(middleware.SecurityHeaders())

	// WebSocket route
	router.Handle("/ws", sessionMW.Ensure(
		rateLimiter.IPRateLimitMiddleware(middleware.WebSocketUpgradeLimit)(
			http.HandlerFunc(wsHandler.HandleWebSocket))))

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	api.Use(sessionMW.Ensure)

	moveLimit := rateLimiter.IPRateLimitMiddleware(middleware.MoveLimit)
	saveLimit := rateLimiter.IPRateLimitMiddleware(middleware.SaveGameLimit)
	resetLimit := rateLimiter.IPRateLimitMiddleware(middleware.ResetLimit)

	api.Handle("/reset", resetLimit(http.HandlerFunc(gameHandler.Reset))).Methods("POST")
	api.HandleFunc("/difficulty", gameHandler.SetDifficulty).Methods("POST")
	api.Handle("/move", moveLimit(http.HandlerFunc(gameHandler.Move))).Methods("POST")
	api.Handle("/pvp/move", moveLimit(http.HandlerFunc(gameHandler.PvPMove))).Methods("POST")
	api.Handle("/ai/first-move", resetLimit(http.HandlerFunc(gameHandler.AIFirstMove))).Methods("POST")
	api.HandleFunc("/board", gameHandler.Board).Methods("GET")
	api.HandleFunc("/legal-moves", gameHandler.LegalMoves).Methods("GET")
	api.Handle("/games/save", saveLimit(http.HandlerFunc(gameHandler.SaveGame))).Methods("POST")
	api.HandleFunc("/games", gameHandler.ListGames).Methods("GET")

	// Health check
	router.HandleFunc("/health", gameHandler.Health).Methods("GET")

	// CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Frontend.URL},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
