package services

import (
	"testing"
	"time"

	"github.com/trackflow/trackflow/backend/internal/models"
)

func TestEventHub_NewEventHub(t *testing.T) {
	hub := NewEventHub()
	if hub == nil {
		t.Fatal("NewEventHub should not return nil")
	}
	if hub.clients == nil {
		t.Error("clients map should be initialized")
	}
	if hub.ClientCount() != 0 {
		t.Errorf("new hub should have 0 clients, got %d", hub.ClientCount())
	}
}

func TestEventHub_SubscribeUnsubscribe(t *testing.T) {
	hub := NewEventHub()

	ch := hub.Subscribe("client1")
	if ch == nil {
		t.Error("Subscribe should return a channel")
	}
	hub.Subscribe("client2")
	if hub.ClientCount() != 2 {
		t.Fatalf("expected 2 clients, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("client1")
	if hub.ClientCount() != 1 {
		t.Errorf("expected 1 client after unsubscribe, got %d", hub.ClientCount())
	}

	hub.Unsubscribe("nonexistent")
	if hub.ClientCount() != 1 {
		t.Errorf("unsubscribing nonexistent should not affect count, got %d", hub.ClientCount())
	}
}

func TestEventHub_Publish(t *testing.T) {
	hub := NewEventHub()

	ch := hub.Subscribe("client1")

	issue := &models.Issue{ID: 7, Title: "Login broken", Status: models.StatusOpen}
	hub.Publish(IssueEvent{
		Type:      EventIssueCreated,
		IssueID:   issue.ID,
		Issue:     issue,
		Timestamp: time.Now(),
	})

	select {
	case received := <-ch:
		if received.Type != EventIssueCreated {
			t.Errorf("Type = %q, expected %q", received.Type, EventIssueCreated)
		}
		if received.IssueID != 7 {
			t.Errorf("IssueID = %d, expected 7", received.IssueID)
		}
		if received.Issue == nil || received.Issue.Title != "Login broken" {
			t.Error("event should carry the issue payload")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("timed out waiting for event")
	}
}

func TestEventHub_PublishMultipleClients(t *testing.T) {
	hub := NewEventHub()

	ch1 := hub.Subscribe("client1")
	ch2 := hub.Subscribe("client2")

	hub.Publish(IssueEvent{Type: EventIssueDeleted, IssueID: 3})

	for i, ch := range []<-chan IssueEvent{ch1, ch2} {
		select {
		case received := <-ch:
			if received.IssueID != 3 {
				t.Errorf("client%d: IssueID = %d, expected 3", i+1, received.IssueID)
			}
		case <-time.After(100 * time.Millisecond):
			t.Errorf("client%d: timed out waiting for event", i+1)
		}
	}
}

func TestEventHub_NonBlockingPublish(t *testing.T) {
	hub := NewEventHub()

	hub.Subscribe("slow_client")

	for i := 0; i < 200; i++ {
		hub.Publish(IssueEvent{Type: EventIssueUpdated, IssueID: uint(i)})
	}
}

func TestGetEventHub_Singleton(t *testing.T) {
	hub1 := GetEventHub()
	hub2 := GetEventHub()

	if hub1 != hub2 {
		t.Error("GetEventHub should return the same instance")
	}
}
