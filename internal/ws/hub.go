package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mazekit/mazegame-go/internal/model"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

// Event types pushed to lobby subscribers
const (
	EventLobbyUpdated  = "lobby_updated"
	EventGameStarted   = "game_started"
	EventTileStaged    = "tile_staged"
	EventTileRotated   = "tile_rotated"
	EventTileInserted  = "tile_inserted"
	EventTokenMoved    = "token_moved"
	EventGameCompleted = "game_completed"
	EventGameAbandoned = "game_abandoned"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin policy is not enforced; clients authenticate before
		// the upgrade
		return true
	},
}

// Event is a message pushed to every subscriber of a lobby
type Event struct {
	LobbyCode model.LobbyCode `json:"lobby_code"`
	Type      string          `json:"type"`
	Data      any             `json:"data,omitempty"`
}

// Client is one websocket subscriber
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	code model.LobbyCode
}

// Hub fans events out to the websocket subscribers of each lobby. All state
// is owned by the Run goroutine; Broadcast and ServeWS are safe from any
// goroutine.
type Hub struct {
	logger *slog.Logger

	// Registered clients grouped by lobby code
	lobbies map[model.LobbyCode]map[*Client]bool

	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
}

// NewHub creates a websocket hub
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:     logger,
		lobbies:    make(map[model.LobbyCode]map[*Client]bool),
		broadcast:  make(chan *Event),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.broadcastEvent(event)
		}
	}
}

// ServeWS upgrades an HTTP request to a websocket subscribed to a lobby
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, code model.LobbyCode) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
		code: code,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()
}

// Broadcast queues an event for every subscriber of the lobby
func (h *Hub) Broadcast(code model.LobbyCode, eventType string, data any) {
	h.broadcast <- &Event{
		LobbyCode: code,
		Type:      eventType,
		Data:      data,
	}
}

func (h *Hub) registerClient(client *Client) {
	if h.lobbies[client.code] == nil {
		h.lobbies[client.code] = make(map[*Client]bool)
	}
	h.lobbies[client.code][client] = true

	h.logger.Debug("websocket client registered",
		slog.String("lobby_code", string(client.code)),
		slog.Int("subscribers", len(h.lobbies[client.code])),
	)
}

func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.lobbies[client.code]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.lobbies, client.code)
	}

	h.logger.Debug("websocket client unregistered",
		slog.String("lobby_code", string(client.code)),
		slog.Int("subscribers", len(clients)),
	)
}

func (h *Hub) broadcastEvent(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal websocket event", slog.String("error", err.Error()))
		return
	}

	for client := range h.lobbies[event.LobbyCode] {
		select {
		case client.send <- data:
		default:
			// Slow consumer, drop it
			h.unregisterClient(client)
		}
	}
}

// readPump drains the connection so pings and close frames are processed.
// Subscribers never send application messages.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("websocket read error", slog.String("error", err.Error()))
			}
			return
		}
	}
}

// writePump pushes hub events to the connection and keeps it alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			_, _ = w.Write(message)

			// Flush any further queued events in the same frame
			n := len(c.send)
			for i := 0; i < n; i++ {
				_, _ = w.Write([]byte{'\n'})
				_, _ = w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
