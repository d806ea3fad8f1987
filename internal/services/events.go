package services

import (
	"sync"
	"time"

	"github.com/trackflow/trackflow/backend/internal/models"
)

// Issue event types broadcast over SSE
const (
	EventIssueCreated       = "issue_created"
	EventIssueUpdated       = "issue_updated"
	EventIssueStatusChanged = "issue_status_changed"
	EventIssueDeleted       = "issue_deleted"
)

// IssueEvent represents a real-time issue change event
type IssueEvent struct {
	Type      string        `json:"type"`
	IssueID   uint          `json:"issue_id"`
	Issue     *models.Issue `json:"issue,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// EventHub manages SSE client connections and event broadcasting
type EventHub struct {
	clients map[string]chan IssueEvent
	mu      sync.RWMutex
}

// NewEventHub creates a new event hub instance
func NewEventHub() *EventHub {
	return &EventHub{
		clients: make(map[string]chan IssueEvent),
	}
}

// Subscribe registers a new client and returns a channel for receiving events
func (h *EventHub) Subscribe(clientID string) <-chan IssueEvent {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Create buffered channel to prevent blocking
	ch := make(chan IssueEvent, 100)
	h.clients[clientID] = ch
	return ch
}

// Unsubscribe removes a client from the hub
func (h *EventHub) Unsubscribe(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if ch, ok := h.clients[clientID]; ok {
		close(ch)
		delete(h.clients, clientID)
	}
}

// Publish broadcasts an event to all connected clients
func (h *EventHub) Publish(event IssueEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.clients {
		// Non-blocking send - drop event if client buffer is full
		select {
		case ch <- event:
		default:
			// Client is slow, skip this event
		}
	}
}

// ClientCount returns the number of connected clients
func (h *EventHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Global event hub instance
var globalEventHub *EventHub
var eventHubOnce sync.Once

// GetEventHub returns the global event hub singleton
func GetEventHub() *EventHub {
	eventHubOnce.Do(func() {
		globalEventHub = NewEventHub()
	})
	return globalEventHub
}

// PublishIssueEvent is a convenience function to publish issue events
func PublishIssueEvent(eventType string, issue *models.Issue) {
	event := IssueEvent{
		Type:      eventType,
		Timestamp: time.Now(),
	}
	if issue != nil {
		event.IssueID = issue.ID
		event.Issue = issue
	}
	GetEventHub().Publish(event)
}
