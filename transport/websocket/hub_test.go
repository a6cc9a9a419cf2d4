package websocket

import (
	"encoding/json"
	"testing"

	"github.com/gridgames/chainreaction/game/engine"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}

	if hub.matches == nil {
		t.Error("Hub matches map is nil")
	}

	if hub.broadcast == nil {
		t.Error("Hub broadcast channel is nil")
	}

	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}

	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:     hub,
		matchID: "test-match",
		send:    make(chan []byte, 256),
	}

	hub.registerClient(client)

	if _, exists := hub.matches["test-match"]; !exists {
		t.Error("Match group was not created")
	}

	if !hub.matches["test-match"][client] {
		t.Error("Client was not registered in match group")
	}

	if len(hub.matches["test-match"]) != 1 {
		t.Errorf("Expected 1 client in match group, got %d", len(hub.matches["test-match"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()

	client := &Client{
		hub:     hub,
		matchID: "test-match",
		send:    make(chan []byte, 256),
	}

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.matches["test-match"]; exists {
		t.Error("Match group should have been cleaned up after last client unregistered")
	}
}

func TestHubMultipleClientsOnMatch(t *testing.T) {
	hub := NewHub()
	matchID := "multi-client-match"

	client1 := &Client{
		hub:     hub,
		matchID: matchID,
		send:    make(chan []byte, 256),
	}
	client2 := &Client{
		hub:     hub,
		matchID: matchID,
		send:    make(chan []byte, 256),
	}

	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.matches[matchID]) != 2 {
		t.Errorf("Expected 2 clients in match group, got %d", len(hub.matches[matchID]))
	}

	hub.unregisterClient(client1)

	if len(hub.matches[matchID]) != 1 {
		t.Errorf("Expected 1 client remaining in match group, got %d", len(hub.matches[matchID]))
	}

	if !hub.matches[matchID][client2] {
		t.Error("Remaining client should still be registered")
	}
}

func TestBroadcastToMatch(t *testing.T) {
	hub := NewHub()
	matchID := "broadcast-match"

	client := &Client{
		hub:     hub,
		matchID: matchID,
		send:    make(chan []byte, 256),
	}
	hub.registerClient(client)

	state := engine.NewGame()
	hub.BroadcastToMatch(matchID, &state)

	select {
	case data := <-client.send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("Failed to unmarshal broadcast message: %v", err)
		}
		if msg.MatchID != matchID {
			t.Errorf("Expected match ID %q, got %q", matchID, msg.MatchID)
		}
		if msg.Event != "state_update" {
			t.Errorf("Expected event state_update, got %q", msg.Event)
		}
		if msg.GameState == nil {
			t.Fatal("Broadcast message has no game state")
		}
		if msg.GameState.CurrentTurn != engine.PlayerA {
			t.Errorf("Expected current turn %q, got %q", engine.PlayerA, msg.GameState.CurrentTurn)
		}
	default:
		t.Fatal("No message was delivered to the client")
	}
}

func TestBroadcastToMatch_NoClients(t *testing.T) {
	hub := NewHub()

	// Broadcasting into an empty match group must not panic.
	state := engine.NewGame()
	hub.BroadcastToMatch("empty-match", &state)
}

func TestBroadcastToMatch_FullSendBufferUnregisters(t *testing.T) {
	hub := NewHub()
	matchID := "slow-client-match"

	client := &Client{
		hub:     hub,
		matchID: matchID,
		send:    make(chan []byte), // unbuffered, nobody reading
	}
	hub.registerClient(client)

	state := engine.NewGame()
	hub.BroadcastToMatch(matchID, &state)

	if _, exists := hub.matches[matchID]; exists {
		t.Error("Client with a full send buffer should have been unregistered")
	}
}
