package websocket

import (
	"encoding/json"
	"sync"

	"pdf-explainer-be/internal/pkg/logger"
	"pdf-explainer-be/pkg/progress"
)

// Hub fans progress frames out to the clients watching each session. A
// session can be watched from several tabs at once; clients for other
// sessions never see the frames.
type Hub struct {
	// Registered clients map: SessionID -> list of clients
	clients map[string][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string][]*Client),
		logger:     log,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.SessionID] = append(h.clients[client.SessionID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"session_id": client.SessionID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.SessionID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.SessionID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.SessionID]) == 0 {
					delete(h.clients, client.SessionID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishFrame delivers one progress frame to every watcher of its session.
// Wired as the simulator's emitter. Slow clients are skipped rather than
// blocking the tick loop.
func (h *Hub) PublishFrame(frame progress.Frame) {
	data, err := json.Marshal(map[string]interface{}{
		"type": "progress",
		"data": frame,
	})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients[frame.SessionID] {
		select {
		case client.Send <- data:
		default:
		}
	}
}
