package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin is validated by the WebSocketCORSCheck middleware before
		// the request reaches the upgrader.
		return true
	},
}

// Client represents a connected websocket client bound to one world session
type Client struct {
	conn       *websocket.Conn
	clientID   string
	playerID   int
	worldToken string
	send       chan []byte
}

// Hub maintains active clients and per-world rooms
type Hub struct {
	clients    map[string]*Client            // clientID -> client
	worldRooms map[string]map[string]*Client // worldToken -> clientID -> client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new websocket hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		worldRooms: make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// WSMessage is the envelope for all websocket traffic
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// BroadcastToWorld sends a message to every client in a world room
func (h *Hub) BroadcastToWorld(worldToken string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	room, exists := h.worldRooms[worldToken]
	if !exists {
		return
	}

	for _, client := range room {
		select {
		case client.send <- message:
		default:
			// Slow consumer, drop the frame rather than block the tick loop
			log.Printf("[WS] send buffer full for client %s, dropping message", client.clientID)
		}
	}
}

// SendToClient sends a message to one client by id
func (h *Hub) SendToClient(clientID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, exists := h.clients[clientID]
	if !exists {
		return
	}

	select {
	case client.send <- message:
	default:
		log.Printf("[WS] send buffer full for client %s, dropping message", clientID)
	}
}

// RoomSize returns the number of clients attached to a world
func (h *Hub) RoomSize(worldToken string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.worldRooms[worldToken])
}

// writePump pumps messages from the hub to the websocket connection
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
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// sendError sends an error message to a client
func sendError(client *Client, message string) {
	payload, _ := json.Marshal(map[string]string{"message": message})
	msg, _ := json.Marshal(WSMessage{Type: "error", Data: payload})

	select {
	case client.send <- msg:
	default:
	}
}
