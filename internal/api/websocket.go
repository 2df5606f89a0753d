package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	t4ferr "github.com/tools4freee/t4f/internal/errors"
	"github.com/tools4freee/t4f/internal/id"
	"github.com/tools4freee/t4f/internal/log"
	"github.com/tools4freee/t4f/internal/model"
	"github.com/tools4freee/t4f/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Local tool; any front end may connect
	},
}

// Message types exchanged over the socket.
const (
	MsgConnected      = "connected"
	MsgGenerate       = "generate"
	MsgGenerated      = "generated"
	MsgValidate       = "validate"
	MsgValidated      = "validated"
	MsgError          = "error"
	MsgConfigReloaded = "config_reloaded"
)

// WebSocketHub manages WebSocket connections. Clients send generate and
// validate frames and get one reply per frame; the hub also broadcasts
// config reloads.
type WebSocketHub struct {
	generator *service.GeneratorService

	mu      sync.RWMutex
	clients map[*WebSocketClient]bool
}

// WebSocketClient represents a connected WebSocket client.
type WebSocketClient struct {
	id   string
	hub  *WebSocketHub
	conn *websocket.Conn
	send chan []byte
}

// WebSocketMessage is the JSON envelope for every frame. ID echoes the
// client's request id so replies can be matched.
type WebSocketMessage struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	Data any    `json:"data,omitempty"`
}

type incomingMessage struct {
	Type string          `json:"type"`
	ID   string          `json:"id,omitempty"`
	Data json.RawMessage `json:"data"`
}

// NewWebSocketHub creates a new WebSocket hub serving generator.
func NewWebSocketHub(generator *service.GeneratorService) *WebSocketHub {
	return &WebSocketHub{
		generator: generator,
		clients:   make(map[*WebSocketClient]bool),
	}
}

// ConfigReloaded tells every client the defaults changed.
func (h *WebSocketHub) ConfigReloaded(cfg *model.Config) {
	data, err := json.Marshal(WebSocketMessage{Type: MsgConfigReloaded, Data: cfg.Defaults})
	if err != nil {
		log.L().Error().Err(err).Msg("failed to marshal config reload")
		return
	}
	h.broadcast(data)
}

// handleMessage answers one client frame.
func (h *WebSocketHub) handleMessage(raw []byte) WebSocketMessage {
	var in incomingMessage
	if err := json.Unmarshal(raw, &in); err != nil {
		return errorMessage("", t4ferr.InvalidParameter("message", "not valid JSON"))
	}

	switch in.Type {
	case MsgGenerate:
		var req model.GenerationRequest
		if err := decodeStrict(bytes.NewReader(in.Data), &req); err != nil {
			return errorMessage(in.ID, t4ferr.InvalidParameter("data", err.Error()))
		}
		if req.Count != 0 {
			batch, err := h.generator.GenerateBatch(&req)
			if err != nil {
				return errorMessage(in.ID, err)
			}
			return WebSocketMessage{Type: MsgGenerated, ID: in.ID, Data: batch}
		}
		value, err := h.generator.Generate(&req)
		if err != nil {
			return errorMessage(in.ID, err)
		}
		return WebSocketMessage{Type: MsgGenerated, ID: in.ID, Data: value}

	case MsgValidate:
		var req model.ValidationRequest
		if err := decodeStrict(bytes.NewReader(in.Data), &req); err != nil {
			return errorMessage(in.ID, t4ferr.InvalidParameter("data", err.Error()))
		}
		result, err := h.generator.Validate(&req)
		if err != nil {
			return errorMessage(in.ID, err)
		}
		return WebSocketMessage{Type: MsgValidated, ID: in.ID, Data: result}

	default:
		return errorMessage(in.ID, t4ferr.InvalidParameter("type", "expected generate or validate"))
	}
}

func errorMessage(reqID string, err error) WebSocketMessage {
	return WebSocketMessage{
		Type: MsgError,
		ID:   reqID,
		Data: ErrorResponse{Error: err.Error(), Code: t4ferr.Code(err)},
	}
}

// broadcast sends a message to all connected clients.
func (h *WebSocketHub) broadcast(data []byte) {
	h.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.trySend(client, data)
	}
}

// trySend attempts to send data to a client, handling the case where
// the client's channel was closed between snapshot and send.
func (h *WebSocketHub) trySend(client *WebSocketClient, data []byte) {
	defer func() {
		// Channel was closed by removeClient; client already cleaned up
		_ = recover()
	}()

	select {
	case client.send <- data:
	default:
		// Client buffer full, close it
		h.removeClient(client)
	}
}

func (h *WebSocketHub) addClient(client *WebSocketClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
}

func (h *WebSocketHub) removeClient(client *WebSocketClient) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
}

// ServeWS handles WebSocket connection requests.
func (h *WebSocketHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &WebSocketClient{
		id:   id.Generate(id.Client),
		hub:  h,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.addClient(client)
	logger.Debug().Str("client", client.id).Msg("websocket client connected")

	go client.writePump()
	go client.readPump()

	welcome := WebSocketMessage{
		Type: MsgConnected,
		Data: map[string]any{
			"client_id":      client.id,
			"secure_entropy": h.generator.SecureAvailable(),
		},
	}
	if data, err := json.Marshal(welcome); err == nil {
		h.trySend(client, data)
	}
}

// readPump reads request frames and queues one reply per frame.
func (c *WebSocketClient) readPump() {
	defer func() {
		// Closing send signals writePump to exit; writePump closes the connection.
		c.hub.removeClient(c)
	}()

	c.conn.SetReadLimit(maxBodyBytes)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.L().Warn().Err(err).Str("client", c.id).Msg("websocket read error")
			}
			break
		}

		reply, err := json.Marshal(c.hub.handleMessage(raw))
		if err != nil {
			continue
		}
		c.hub.trySend(c, reply)
	}
}

// writePump writes messages to the WebSocket connection.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(30 * time.Second) // Ping interval
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

			// One JSON document per frame.
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

// ClientCount returns the number of connected clients.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// CloseAll disconnects every client.
func (h *WebSocketHub) CloseAll() {
	h.mu.RLock()
	clients := make([]*WebSocketClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		h.removeClient(client)
	}
}
