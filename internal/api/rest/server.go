package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/api/websocket"
	"github.com/Take-The-Live-Under/taketheliveunder-new-sub001/internal/store"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server. hub may be nil to disable the
// websocket endpoint.
func NewServer(port string, db *store.Database, live LiveState, hub *websocket.Hub) *Server {
	handler := NewHandler(db, live)

	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/games/live", handler.GetLiveGames).Methods("GET")
	api.HandleFunc("/triggers/recent", handler.GetRecentTriggers).Methods("GET")
	api.HandleFunc("/triggers/{gameID}", handler.GetGameTriggers).Methods("GET")
	api.HandleFunc("/snapshots/{gameID}", handler.GetGameSnapshots).Methods("GET")

	// WebSocket feed
	if hub != nil {
		router.HandleFunc("/ws", hub.HandleWebSocket)
	}

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
