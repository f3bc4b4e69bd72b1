package services

import (
	"sync"

	"github.com/gorilla/websocket"
)

// WSEvent is the JSON envelope for every message on an analysis connection,
// in both directions.
type WSEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// WSClient is one authenticated analysis connection. Gorilla connections
// support one concurrent writer, so all writes go through the client's lock.
type WSClient struct {
	UserUUID string
	Conn     *websocket.Conn

	mu sync.Mutex
}

// Emit sends one protocol event to the client.
func (c *WSClient) Emit(event string, payload any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteJSON(WSEvent{Event: event, Data: payload})
}

// Ping sends a websocket-level ping frame.
func (c *WSClient) Ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(websocket.PingMessage, nil)
}

// AnalysisHub tracks connected analysis clients per user identity. Membership
// keys off the opaque user uuid, never a storage-internal id.
type AnalysisHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewAnalysisHub() *AnalysisHub {
	return &AnalysisHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *AnalysisHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserUUID] == nil {
		h.clients[c.UserUUID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserUUID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *AnalysisHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserUUID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserUUID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// CountForUser reports how many connections the user currently holds.
func (h *AnalysisHub) CountForUser(userUUID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userUUID])
}

// EmitToUser delivers one event to every connection the user has open, so a
// second tab follows an analysis started in the first. Returns how many
// connections the event reached.
func (h *AnalysisHub) EmitToUser(userUUID, event string, payload any) int {
	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[userUUID]))
	for c := range h.clients[userUUID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range targets {
		if err := c.Emit(event, payload); err == nil {
			delivered++
		}
	}
	return delivered
}

// UserStream adapts the hub's per-user delivery to the session emitter shape.
type UserStream struct {
	hub      *AnalysisHub
	userUUID string
}

var _ EventEmitter = (*UserStream)(nil)

func (h *AnalysisHub) StreamFor(userUUID string) *UserStream {
	return &UserStream{hub: h, userUUID: userUUID}
}

func (s *UserStream) Emit(event string, payload any) error {
	s.hub.EmitToUser(s.userUUID, event, payload)
	return nil
}
