// internal/services/ws/hub.go
//
// Live hub for admin dashboards: position updates and geofence entry
// events fan out to every connected client.
package ws

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/careshare/csh_backendl/internal/models"
	"github.com/gorilla/websocket"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	hub := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
	go hub.Run()
	return hub
}

func (h *Hub) Register(client *Client)   { h.register <- client }
func (h *Hub) Unregister(client *Client) { h.unregister <- client }
func (h *Hub) Broadcast(message []byte)  { h.broadcast <- message }

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			h.mu.Unlock()
		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastLocation pushes a live position update to all dashboards.
func (h *Hub) BroadcastLocation(loc models.LastLocation) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":      "location",
		"location":  loc,
		"timestamp": time.Now().UTC(),
	})
	h.Broadcast(data)
}

// BroadcastEnter pushes a geofence entry event to all dashboards.
func (h *Hub) BroadcastEnter(volunteerID int, center models.Center) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":         "geofence_enter",
		"volunteer_id": volunteerID,
		"center":       center,
		"timestamp":    time.Now().UTC(),
	})
	h.Broadcast(data)
}

func (h *Hub) ReadPump(client *Client) {
	defer func() {
		h.Unregister(client)
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) WritePump(client *Client) {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			client.Conn.WriteMessage(websocket.TextMessage, message)
		case <-ticker.C:
			client.Conn.WriteMessage(websocket.PingMessage, nil)
		}
	}
}
