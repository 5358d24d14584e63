// Package ws holds the WebSocket hub that pushes "now serving" call
// announcements to waiting-room displays. Occupancy data is not pushed
// here; dashboards poll the snapshot endpoint.
package ws

import (
	"encoding/json"
	"log"

	"github.com/gorilla/websocket"
)

// Client is one connected display.
type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

// Hub tracks connected clients and fans announcements out to them.
type Hub struct {
	Clients    map[*Client]bool
	Broadcast  chan []byte
	Register   chan *Client
	Unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.Clients[client] = true
		case client := <-h.Unregister:
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				close(client.Send)
			}
		case message := <-h.Broadcast:
			for client := range h.Clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.Clients, client)
				}
			}
		}
	}
}

// BroadcastJSON marshals v and queues it for all connected displays.
// A marshal failure is logged and dropped; announcements are best-effort.
func (h *Hub) BroadcastJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("ws: failed to marshal announcement: %v", err)
		return
	}
	h.Broadcast <- data
}
