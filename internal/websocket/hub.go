package websocket

import (
	"encoding/json"
	"sync"

	"github.com/mirakh/gallery-backend/internal/app/model"
	"github.com/mirakh/gallery-backend/pkg/logger"
)

// Hub fans committed orders out to connected admin dashboards. It satisfies
// the checkout pipeline's notifier; broadcasting never blocks checkout, a
// slow client just loses the event.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

// OrderEvent is the wire shape of a live order notification.
type OrderEvent struct {
	Type  string       `json:"type"`
	Order *model.Order `json:"order"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		broadcast:  make(chan []byte, 256),
	}
}

// Run processes register/unregister/broadcast events until the process
// exits. Call it once from a goroutine at startup.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			logger.Info("Order feed client connected", map[string]interface{}{
				"admin_id": client.AdminID,
				"clients":  count,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
			count := len(h.clients)
			h.mu.Unlock()
			logger.Info("Order feed client disconnected", map[string]interface{}{
				"admin_id": client.AdminID,
				"clients":  count,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Send buffer full, drop the event for this client.
				}
			}
			h.mu.RUnlock()
		}
	}
}

// BroadcastOrder pushes a new order to every connected dashboard.
func (h *Hub) BroadcastOrder(order *model.Order) {
	event := OrderEvent{
		Type:  "order_placed",
		Order: order,
	}
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal order event", err, map[string]interface{}{
			"order_number": order.OrderNumber,
		})
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Order feed broadcast buffer full, dropping event", map[string]interface{}{
			"order_number": order.OrderNumber,
		})
	}
}

// Register queues a client for registration.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
