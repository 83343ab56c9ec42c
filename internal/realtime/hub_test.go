package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHubSendToUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	alice := uuid.New()
	bob := uuid.New()

	// alice holds two connections (two tabs), bob one
	a1 := &Client{ID: "a1", UserID: alice, Send: make(chan []byte, 4)}
	a2 := &Client{ID: "a2", UserID: alice, Send: make(chan []byte, 4)}
	b1 := &Client{ID: "b1", UserID: bob, Send: make(chan []byte, 4)}

	hub.RegisterClient(a1)
	hub.RegisterClient(a2)
	hub.RegisterClient(b1)
	waitFor(t, func() bool { return hub.ConnectionsFor(alice) == 2 && hub.ConnectionsFor(bob) == 1 })

	hub.SendToUser(alice, map[string]string{"hello": "world"})

	for _, cl := range []*Client{a1, a2} {
		select {
		case payload := <-cl.Send:
			assert.JSONEq(t, `{"hello":"world"}`, string(payload))
		case <-time.After(time.Second):
			t.Fatalf("client %s got no payload", cl.ID)
		}
	}

	select {
	case <-b1.Send:
		t.Fatal("bob must not receive alice's payload")
	default:
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	userID := uuid.New()
	client := &Client{ID: "c1", UserID: userID, Send: make(chan []byte, 1)}

	hub.RegisterClient(client)
	waitFor(t, func() bool { return hub.ConnectionsFor(userID) == 1 })

	hub.UnregisterClient(client)
	waitFor(t, func() bool { return hub.ConnectionsFor(userID) == 0 })

	select {
	case _, open := <-client.Send:
		require.False(t, open, "send channel must be closed after unregister")
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}

	// delivering to a gone user is a no-op
	hub.SendToUser(userID, "ignored")
}
