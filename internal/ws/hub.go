package ws

import (
	"encoding/json"
	"log/slog"
	"sync"

	"gojobot/entity"
)

// Event is a WebSocket event pushed to dashboard clients.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains the set of active WebSocket clients and broadcasts
// intake events to them. It implements the Events interfaces the flows
// and the review service publish through.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan *Event
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	log        *slog.Logger
}

func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// Run starts the hub's event loop. Should be called in a goroutine.
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
				close(client.send)
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			data, err := json.Marshal(event)
			if err != nil {
				continue
			}
			h.mu.Lock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					close(client.send)
					delete(h.clients, client)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) publish(eventType string, data interface{}) {
	select {
	case h.broadcast <- &Event{Type: eventType, Data: data}:
	default:
		h.log.Warn("ws broadcast buffer full, dropping event", slog.String("type", eventType))
	}
}

// RegistrationCreated pushes a new registration to the dashboards.
func (h *Hub) RegistrationCreated(reg *entity.Registration) {
	h.publish("registration_created", reg)
}

// TrainingCreated pushes a new enrollment to the dashboards.
func (h *Hub) TrainingCreated(tr *entity.Training) {
	h.publish("training_created", tr)
}

// JobApplicationCreated pushes a new application to the dashboards.
func (h *Hub) JobApplicationCreated(app *entity.JobApplication) {
	h.publish("job_application_created", app)
}

// PaymentSubmitted announces a proof waiting for review.
func (h *Hub) PaymentSubmitted(kind string, telegramId int64) {
	h.publish("payment_submitted", map[string]interface{}{
		"kind":        kind,
		"telegram_id": telegramId,
	})
}

// PaymentReviewed announces a reviewer's verdict.
func (h *Hub) PaymentReviewed(kind, id string, approved bool) {
	h.publish("payment_reviewed", map[string]interface{}{
		"kind":     kind,
		"id":       id,
		"approved": approved,
	})
}
