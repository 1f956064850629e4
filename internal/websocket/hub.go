// Package websocket pushes leaderboard change notifications to connected
// clients. Clients receive a version heartbeat and refetch the leaderboard
// only when the version changes, which keeps a burst of lap submissions
// from turning into a request storm.
package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/Sipheren/fridaygt-sub000/internal/repository"

	"github.com/gofiber/websocket/v2"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// How often the hub checks the leaderboard version for changes
	versionHeartbeatInterval = 2 * time.Second
)

// Client represents a WebSocket client connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of active clients and broadcasts version updates
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client

	redisRepo *repository.RedisRepository

	mu          sync.RWMutex
	lastVersion int64
}

// VersionUpdate is the heartbeat message sent to clients
type VersionUpdate struct {
	Type    string `json:"type"`
	Version int64  `json:"version"`
}

// NewHub creates a new WebSocket hub
func NewHub(redisRepo *repository.RedisRepository) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		redisRepo:  redisRepo,
	}
}

// Run starts the WebSocket hub
func (h *Hub) Run(ctx context.Context) {
	versionTicker := time.NewTicker(versionHeartbeatInterval)
	defer versionTicker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.sendInitialVersion(ctx, client)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case <-versionTicker.C:
			h.checkAndBroadcastVersion(ctx)

		case <-ctx.Done():
			log.Println("WebSocket hub shutting down")
			return
		}
	}
}

// checkAndBroadcastVersion broadcasts to all clients when the version moved
func (h *Hub) checkAndBroadcastVersion(ctx context.Context) {
	currentVersion, err := h.redisRepo.GetVersion(ctx)
	if err != nil {
		log.Printf("Failed to get leaderboard version: %v", err)
		return
	}
	if currentVersion == h.lastVersion {
		return
	}
	h.lastVersion = currentVersion

	message, err := json.Marshal(VersionUpdate{
		Type:    "VERSION_UPDATE",
		Version: currentVersion,
	})
	if err != nil {
		log.Printf("Failed to marshal version update: %v", err)
		return
	}

	h.mu.RLock()
	for client := range h.clients {
		select {
		case client.send <- message:
		default:
			// Client's send buffer is full, skip this client
		}
	}
	h.mu.RUnlock()
}

// sendInitialVersion sends the current version to a newly connected client
func (h *Hub) sendInitialVersion(ctx context.Context, client *Client) {
	currentVersion, err := h.redisRepo.GetVersion(ctx)
	if err != nil {
		log.Printf("Failed to get initial version: %v", err)
		return
	}
	if h.lastVersion == 0 {
		h.lastVersion = currentVersion
	}

	message, err := json.Marshal(VersionUpdate{
		Type:    "VERSION_UPDATE",
		Version: currentVersion,
	})
	if err != nil {
		log.Printf("Failed to marshal initial version: %v", err)
		return
	}

	select {
	case client.send <- message:
	case <-time.After(2 * time.Second):
		log.Println("Timeout sending initial version, client may be slow")
	}
}

// GetClientCount returns the current number of connected clients
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// readPump drains messages from the connection until it closes.
// Clients are not expected to send anything.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket unexpected close: %v", err)
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))

		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)

		// Fold queued messages into the same frame
		n := len(c.send)
		for i := 0; i < n; i++ {
			w.Write([]byte{'\n'})
			w.Write(<-c.send)
		}

		if err := w.Close(); err != nil {
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// ServeWS handles WebSocket requests from clients
func ServeWS(hub *Hub, conn *websocket.Conn) {
	client := &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	client.hub.register <- client

	go client.writePump()
	client.readPump()
}
