package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// Buffer size for outbound messages
	sendBufferSize = 256
)

// SubscriptionFilter limits which messages a client receives. Empty
// fields accept everything.
type SubscriptionFilter struct {
	Games    []string `json:"games,omitempty"`
	Types    []string `json:"types,omitempty"`
	Triggers []string `json:"triggers,omitempty"`
}

// ClientMessage is an inbound message from a connected client
type ClientMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Client represents one WebSocket connection
type Client struct {
	ID   string
	Send chan ServerMessage

	conn     *websocket.Conn
	hub      *Hub
	filter   SubscriptionFilter
	filterMu sync.RWMutex
}

// NewClient creates a new client instance
func NewClient(id string, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		ID:   id,
		Send: make(chan ServerMessage, sendBufferSize),
		conn: conn,
		hub:  hub,
	}
}

// ReadPump pumps messages from the WebSocket connection to the hub
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("client %s unexpected close: %v", c.ID, err)
			}
			return
		}

		c.handleClientMessage(msg)
	}
}

// WritePump pumps messages from the hub to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				log.Printf("client %s write error: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend sends a message to the client without blocking. Returns false
// when the buffer is full.
func (c *Client) TrySend(msg ServerMessage) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

// SetFilter updates the client's subscription filter
func (c *Client) SetFilter(filter SubscriptionFilter) {
	c.filterMu.Lock()
	defer c.filterMu.Unlock()
	c.filter = filter
}

// MatchesFilter checks whether a message passes the client's filter
func (c *Client) MatchesFilter(msg ServerMessage) bool {
	c.filterMu.RLock()
	defer c.filterMu.RUnlock()

	if len(c.filter.Games) == 0 && len(c.filter.Types) == 0 && len(c.filter.Triggers) == 0 {
		return true
	}

	if len(c.filter.Types) > 0 && !contains(c.filter.Types, msg.Type) {
		return false
	}

	gameID, triggerType := messageFields(msg.Payload)
	if len(c.filter.Games) > 0 && !contains(c.filter.Games, gameID) {
		return false
	}
	if len(c.filter.Triggers) > 0 && msg.Type == "trigger" && !contains(c.filter.Triggers, triggerType) {
		return false
	}

	return true
}

func (c *Client) handleClientMessage(msg ClientMessage) {
	switch msg.Type {
	case "subscribe":
		c.handleSubscribe(msg.Payload)
	case "unsubscribe":
		c.SetFilter(SubscriptionFilter{})
		log.Printf("client %s unsubscribed", c.ID)
	case "heartbeat":
		c.TrySend(ServerMessage{Type: "heartbeat", Timestamp: time.Now()})
	default:
		c.TrySend(ServerMessage{
			Type:      "error",
			Payload:   map[string]string{"code": "unknown_message_type", "message": msg.Type},
			Timestamp: time.Now(),
		})
	}
}

func (c *Client) handleSubscribe(payload map[string]interface{}) {
	filterJSON, err := json.Marshal(payload)
	if err != nil {
		return
	}

	var filter SubscriptionFilter
	if err := json.Unmarshal(filterJSON, &filter); err != nil {
		c.TrySend(ServerMessage{
			Type:      "error",
			Payload:   map[string]string{"code": "invalid_filter", "message": "failed to parse filter"},
			Timestamp: time.Now(),
		})
		return
	}

	c.SetFilter(filter)
	log.Printf("client %s subscribed: games=%v types=%v triggers=%v",
		c.ID, filter.Games, filter.Types, filter.Triggers)
}

// messageFields pulls the game ID and trigger type out of a payload
// regardless of whether it is an evaluation or a trigger event
func messageFields(payload interface{}) (string, string) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", ""
	}
	var fields struct {
		GameID      string `json:"game_id"`
		TriggerType string `json:"trigger_type"`
		Trigger     string `json:"trigger"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", ""
	}
	triggerType := fields.TriggerType
	if triggerType == "" {
		triggerType = fields.Trigger
	}
	return fields.GameID, triggerType
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
