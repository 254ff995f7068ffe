package live

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Message is the envelope of every frame sent over the standings feed.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub fans messages out to every connected feed client. There is a single
// feed; every client receives every broadcast.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	clients map[*Client]bool
	mu      sync.RWMutex

	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		clients:    make(map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("feed client connected", slog.Int("clients", count))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}
			count := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("feed client disconnected", slog.Int("clients", count))

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumer; drop the frame rather than block the hub.
					h.logger.Warn("feed client send buffer full, dropping frame")
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Broadcast serializes the message and queues it for every connected client.
// Safe to call from any goroutine.
func (h *Hub) Broadcast(messageType string, payload interface{}) {
	body, err := json.Marshal(Message{Type: messageType, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal feed message",
			slog.String("type", messageType), slog.Any("error", err))
		return
	}
	h.broadcast <- body
}
