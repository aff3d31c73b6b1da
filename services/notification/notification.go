package notification

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/olahol/melody"

	"stayinubud/models"
)

// Event is the envelope pushed to connected back-office sessions.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Booking   *models.Booking `json:"booking"`
	Timestamp time.Time       `json:"timestamp"`
}

// Hub broadcasts booking lifecycle events over the admin websocket.
// It implements services.BookingNotifier.
type Hub struct {
	m *melody.Melody
}

func NewHub(m *melody.Melody) *Hub {
	return &Hub{m: m}
}

func (h *Hub) BookingConfirmed(booking *models.Booking) {
	h.broadcast("booking.confirmed", booking)
}

func (h *Hub) BookingCancelled(booking *models.Booking) {
	h.broadcast("booking.cancelled", booking)
}

func (h *Hub) broadcast(eventType string, booking *models.Booking) {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Booking:   booking,
		Timestamp: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to encode %s event: %v", eventType, err)
		return
	}
	if err := h.m.Broadcast(payload); err != nil {
		log.Printf("failed to broadcast %s event: %v", eventType, err)
	}
}
