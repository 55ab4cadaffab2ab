package websocket

import (
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// HandleWebSocket upgrades HTTP connections and attaches them to the hub
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️  WebSocket upgrade error: %v", err)
		return
	}

	clientID := uuid.New().String()
	c := NewClient(clientID, conn, h)

	h.Register(c)

	go c.WritePump()
	go c.ReadPump()

	log.Printf("✓ WebSocket connection established: %s", clientID)
}
