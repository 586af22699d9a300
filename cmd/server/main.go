package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/luka90/amora/internal/config"
	"github.com/luka90/amora/internal/database"
	"github.com/luka90/amora/internal/notify"
	"github.com/luka90/amora/internal/presence"
	postgresrepo "github.com/luka90/amora/internal/repository/postgres"
	"github.com/luka90/amora/internal/service"
	"github.com/luka90/amora/internal/transport/http/handlers"
	"github.com/luka90/amora/internal/transport/http/middleware"
	"github.com/luka90/amora/internal/transport/ws"
)

func main() {
	cfg := config.Load()

	// Database
	pool, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	log.Println("Connected to database")

	// Presence store: Redis when configured, in-process otherwise.
	var presenceStore presence.Store
	if cfg.RedisAddr != "" {
		rdb, err := presence.ConnectRedis(context.Background(), cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		presenceStore = presence.NewRedisStore(rdb)
		log.Println("Connected to redis")
	} else {
		presenceStore = presence.NewMemoryStore()
		log.Println("Using in-memory presence store")
	}

	// Repositories
	interactionRepo := postgresrepo.NewInteractionRepo(pool)
	conversationRepo := postgresrepo.NewConversationRepo(pool)
	messageRepo := postgresrepo.NewMessageRepo(pool)

	// Services
	interactionService := service.NewInteractionService(interactionRepo)
	interactionService.SetNotifier(notify.NewLogNotifier())
	chatService := service.NewChatService(conversationRepo, messageRepo, interactionRepo)

	// WebSocket hub
	hub := ws.NewHub()
	go hub.Run()
	chatService.SetBroadcaster(ws.NewHubBroadcaster(hub))

	// Handlers
	interactionHandler := handlers.NewInteractionHandler(interactionService)
	conversationHandler := handlers.NewConversationHandler(chatService)
	statusHandler := handlers.NewStatusHandler(presenceStore)

	// Auth middleware
	auth := middleware.Auth(cfg.JWTSecret)

	// Routes
	mux := http.NewServeMux()

	// Public
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	// Protected - Interactions
	mux.Handle("POST /api/v1/likes/{id}", auth(http.HandlerFunc(interactionHandler.Like)))
	mux.Handle("POST /api/v1/skips/{id}", auth(http.HandlerFunc(interactionHandler.Skip)))
	mux.Handle("POST /api/v1/blocks/{id}", auth(http.HandlerFunc(interactionHandler.Block)))
	mux.Handle("DELETE /api/v1/blocks/{id}", auth(http.HandlerFunc(interactionHandler.Unblock)))
	mux.Handle("POST /api/v1/reports/{id}", auth(http.HandlerFunc(interactionHandler.Report)))
	mux.Handle("GET /api/v1/matches", auth(http.HandlerFunc(interactionHandler.ListMatches)))

	// Protected - Conversations
	mux.Handle("GET /api/v1/conversations", auth(http.HandlerFunc(conversationHandler.List)))
	mux.Handle("POST /api/v1/conversations", auth(http.HandlerFunc(conversationHandler.GetOrCreate)))
	mux.Handle("GET /api/v1/conversations/{id}/messages", auth(http.HandlerFunc(conversationHandler.ListMessages)))
	mux.Handle("POST /api/v1/conversations/{id}/messages", auth(http.HandlerFunc(conversationHandler.SendMessage)))
	mux.Handle("POST /api/v1/conversations/{id}/read", auth(http.HandlerFunc(conversationHandler.MarkRead)))
	mux.Handle("GET /api/v1/unread", auth(http.HandlerFunc(conversationHandler.UnreadCount)))

	// Protected - Presence poll
	mux.Handle("GET /api/v1/profiles/{id}/status", auth(http.HandlerFunc(statusHandler.Get)))

	// WebSocket chat (token via query param)
	mux.HandleFunc("GET /ws/chat/{id}", ws.ServeWS(hub, chatService, presenceStore, cfg.JWTSecret))

	// Start server with CORS
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, middleware.CORS(mux)))
}
