package realtime

import (
	"encoding/json"
	"log"
	"sync"
)

// Event types pushed to connected clients.
const (
	EventTaskCreated      = "task_created"
	EventTaskUpdated      = "task_updated"
	EventTaskArchived     = "task_archived"
	EventTaskDeleted      = "task_deleted"
	EventProgressRecorded = "progress_recorded"
	EventProgressDeleted  = "progress_deleted"
	EventReminder         = "reminder"
)

// Event is the wire form of a realtime notification. Payload carries
// event-specific fields (stage, percentage, reminder text).
type Event struct {
	Type    string         `json:"type"`
	TaskID  string         `json:"taskId,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active user connections and pushes events to them. It is
// constructed once in main and handed to whoever publishes.
type Hub struct {
	mu              sync.RWMutex
	userIDToClients map[string]map[Client]struct{}
}

func NewHub() *Hub {
	return &Hub{userIDToClients: make(map[string]map[Client]struct{})}
}

// Register adds a client under a user ID.
func (h *Hub) Register(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.userIDToClients[userID]; !ok {
		h.userIDToClients[userID] = make(map[Client]struct{})
	}
	h.userIDToClients[userID][client] = struct{}{}
}

// Unregister removes a client; if user has no more clients, cleans up map.
func (h *Hub) Unregister(userID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.userIDToClients[userID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.userIDToClients, userID)
		}
	}
}

// Publish marshals the event and sends it to all of the user's clients.
// Delivery is best effort; a failed write is the ws handler's problem.
func (h *Hub) Publish(userID string, evt Event) {
	message, err := json.Marshal(evt)
	if err != nil {
		log.Printf("realtime: drop %s event for %s: %v", evt.Type, userID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.userIDToClients[userID] {
		c.Send(message)
	}
}
