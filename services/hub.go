package services

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// LobbyTopic is the shared presence topic; every other topic is a room code.
const LobbyTopic = "lobby"

// Hub fans room snapshots and lobby events out to connected websocket
// clients. It is the server-side replacement for per-row change-feed
// subscriptions: services persist first, then ask the hub to rebroadcast the
// requeried truth.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mutex      sync.RWMutex
	rooms      *RoomService
	presence   *PresenceService
	logger     *zap.Logger
}

type Client struct {
	hub      *Hub
	id       string
	socket   *websocket.Conn
	send     chan []byte
	topic    string
	userID   string
	username string
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub(rooms *RoomService, presence *PresenceService, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      rooms,
		presence:   presence,
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()

			h.logger.Info("client connected",
				zap.String("client_id", client.id),
				zap.String("topic", client.topic),
				zap.String("user_id", client.userID),
				zap.Int("total_clients", total))

		case client := <-h.unregister:
			h.mutex.Lock()
			_, ok := h.clients[client]
			if ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()

			if !ok {
				continue
			}

			h.logger.Info("client disconnected",
				zap.String("client_id", client.id),
				zap.String("topic", client.topic),
				zap.String("user_id", client.userID))

			// Presence expires with the connection.
			if client.topic == LobbyTopic && h.presence != nil {
				h.presence.Leave(client.userID, h)
			}
		}
	}
}

// BroadcastToRoom sends one typed message to every client watching the room.
func (h *Hub) BroadcastToRoom(code string, messageType string, payload interface{}) {
	h.broadcastToTopic(code, messageType, payload)
}

// BroadcastToLobby sends one typed message to every lobby client.
func (h *Hub) BroadcastToLobby(messageType string, payload interface{}) {
	h.broadcastToTopic(LobbyTopic, messageType, payload)
}

func (h *Hub) broadcastToTopic(topic, messageType string, payload interface{}) {
	data, err := json.Marshal(Message{Type: messageType, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal broadcast", zap.String("type", messageType), zap.Error(err))
		return
	}

	h.mutex.Lock()
	for client := range h.clients {
		if !strings.EqualFold(client.topic, topic) {
			continue
		}
		select {
		case client.send <- data:
		default:
			// Slow consumer; drop it rather than stall the room.
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.mutex.Unlock()
}

// BroadcastRoomState requeries the room and its roster and pushes the full
// snapshot to every watcher. Observers converge no matter how deliveries
// interleave, because each event carries current truth rather than a delta.
func (h *Hub) BroadcastRoomState(code string) {
	state, err := h.rooms.CurrentRoomState(code)
	if err != nil {
		h.logger.Error("room state broadcast skipped", zap.String("code", code), zap.Error(err))
		return
	}
	h.BroadcastToRoom(code, "room_state", state)
}

// SendRoomStateSync pushes the current snapshot to a single client, used when
// a watcher connects or explicitly asks to resync.
func (h *Hub) SendRoomStateSync(client *Client) {
	state, err := h.rooms.CurrentRoomState(client.topic)
	if err != nil {
		h.logger.Error("state sync failed",
			zap.String("client_id", client.id),
			zap.String("topic", client.topic),
			zap.Error(err))
		return
	}

	data, err := json.Marshal(Message{Type: "room_state", Payload: state})
	if err != nil {
		h.logger.Error("failed to marshal state sync", zap.Error(err))
		return
	}

	h.mutex.Lock()
	select {
	case client.send <- data:
	default:
		close(client.send)
		delete(h.clients, client)
	}
	h.mutex.Unlock()
}

// RegisterClient attaches a websocket connection to a topic and starts its
// read/write pumps. Room clients get an immediate state sync.
func (h *Hub) RegisterClient(conn *websocket.Conn, topic, userID, username string) *Client {
	client := &Client{
		hub:      h,
		id:       uuid.NewString(),
		socket:   conn,
		send:     make(chan []byte, 256),
		topic:    topic,
		userID:   userID,
		username: username,
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	if topic != LobbyTopic {
		h.SendRoomStateSync(client)
	}

	return client
}

func (h *Hub) UnregisterClient(client *Client) {
	h.unregister <- client
}

// ClientsOnTopic counts the connections currently watching a topic.
func (h *Hub) ClientsOnTopic(topic string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	count := 0
	for client := range h.clients {
		if strings.EqualFold(client.topic, topic) {
			count++
		}
	}
	return count
}

func (c *Client) readPump() {
	defer func() {
		c.hub.UnregisterClient(c)
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket read error", zap.String("client_id", c.id), zap.Error(err))
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			c.hub.logger.Warn("unreadable client message", zap.String("client_id", c.id), zap.Error(err))
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(message)
		if err := w.Close(); err != nil {
			return
		}
	}
	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		data, _ := json.Marshal(Message{Type: "pong", Payload: "pong"})
		c.send <- data

	case "request_room_state":
		if c.topic != LobbyTopic {
			c.hub.SendRoomStateSync(c)
		}

	case "presence_update":
		if c.topic != LobbyTopic || c.hub.presence == nil {
			return
		}
		payload, ok := msg.Payload.(map[string]interface{})
		if !ok {
			return
		}
		status, _ := payload["status"].(string)
		if err := c.hub.presence.SetStatus(c.userID, status, c.hub); err != nil {
			c.hub.logger.Warn("presence update rejected",
				zap.String("user_id", c.userID),
				zap.String("status", status),
				zap.Error(err))
		}

	default:
		c.hub.logger.Debug("unknown message type",
			zap.String("type", msg.Type),
			zap.String("client_id", c.id),
			zap.String("topic", c.topic))
	}
}
