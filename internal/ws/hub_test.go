package ws

import (
	"encoding/json"
	"testing"
)

func TestHubNotifyOfflinePlayer(t *testing.T) {
	hub := NewHub()
	// не должно паниковать и блокироваться
	hub.Notify(1, Event{Type: EventLevelUp})

	if hub.Connected(1) {
		t.Fatal("player 1 should not be connected")
	}
}

func TestHubRegisterNotifyUnregister(t *testing.T) {
	hub := NewHub()
	c := &Client{PlayerID: 5, send: make(chan []byte, 1)}

	hub.register(c)
	if !hub.Connected(5) {
		t.Fatal("player 5 should be connected after register")
	}

	hub.Notify(5, Event{Type: EventProductionReady, Data: map[string]interface{}{"building_id": 7}})

	select {
	case msg := <-c.send:
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			t.Fatalf("invalid event json: %v", err)
		}
		if ev.Type != EventProductionReady {
			t.Fatalf("expected %s, got %s", EventProductionReady, ev.Type)
		}
	default:
		t.Fatal("expected event in send buffer")
	}

	hub.unregister(c)
	if hub.Connected(5) {
		t.Fatal("player 5 should be disconnected after unregister")
	}
}

func TestHubNotifySkipsSlowClient(t *testing.T) {
	hub := NewHub()
	c := &Client{PlayerID: 9, send: make(chan []byte)} // без буфера, читателя нет

	hub.register(c)
	// не должно заблокироваться
	hub.Notify(9, Event{Type: EventOrderCompleted})
}
