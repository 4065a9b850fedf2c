package websocket

import (
	"fmt"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// Hub tracks one live connection per user and pushes booking events and chat
// messages to them. It satisfies services.Pusher.
type Hub struct {
	clients   map[uuid.UUID]*websocket.Conn
	clientsMu sync.RWMutex

	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]*websocket.Conn),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			log.Printf("Client registered: %s", client.UserID)
			h.clientsMu.Lock()
			h.clients[client.UserID] = client.Conn
			h.clientsMu.Unlock()
		case client := <-h.Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			h.clientsMu.Lock()
			if conn, ok := h.clients[client.UserID]; ok && conn == client.Conn {
				delete(h.clients, client.UserID)
			}
			h.clientsMu.Unlock()
		}
	}
}

// PushToUser writes the payload to the user's connection if one is live.
// A user without a connection is not an error; they catch up from the
// durable notification rows on their next fetch.
func (h *Hub) PushToUser(userID uuid.UUID, payload any) error {
	h.clientsMu.RLock()
	conn, ok := h.clients[userID]
	h.clientsMu.RUnlock()
	if !ok {
		return nil
	}

	if err := conn.WriteJSON(payload); err != nil {
		h.clientsMu.Lock()
		if current, stillThere := h.clients[userID]; stillThere && current == conn {
			delete(h.clients, userID)
		}
		h.clientsMu.Unlock()
		conn.Close()
		return fmt.Errorf("write to client %s: %w", userID, err)
	}
	return nil
}
