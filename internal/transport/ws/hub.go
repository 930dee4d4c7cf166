package ws

import (
	"encoding/json"

	"go.uber.org/zap"
)

// Hub manages all active WebSocket clients, keyed by user email.
type Hub struct {
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	direct     chan *directMsg

	log *zap.Logger
}

type directMsg struct {
	email string
	data  []byte
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		direct:     make(chan *directMsg, 256),
		log:        log,
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client.email] = client
			h.log.Info("ws client connected", zap.String("email", client.email), zap.Int("total", len(h.clients)))

		case client := <-h.unregister:
			if _, ok := h.clients[client.email]; ok {
				delete(h.clients, client.email)
				close(client.send)
				close(client.done)
				h.log.Info("ws client disconnected", zap.String("email", client.email), zap.Int("total", len(h.clients)))
			}

		case msg := <-h.direct:
			client, ok := h.clients[msg.email]
			if !ok {
				continue
			}
			select {
			case client.send <- msg.data:
			default:
				// Client buffer full - disconnect
				delete(h.clients, msg.email)
				close(client.send)
				close(client.done)
			}
		}
	}
}

// SendToUser queues an event for one user; offline users are skipped.
func (h *Hub) SendToUser(email string, event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.Error("ws marshal failed", zap.Error(err))
		return
	}
	select {
	case h.direct <- &directMsg{email: email, data: data}:
	default:
	}
}
