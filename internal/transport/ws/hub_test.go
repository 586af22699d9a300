package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The hub never touches the WebSocket connection itself, so tests drive it
// with conn-less clients and read frames straight off the send channel.

func newTestClient(hub *Hub, conversationID uuid.UUID) *Client {
	return NewClient(hub, nil, uuid.New(), conversationID, nil, nil)
}

func recvFrame(t *testing.T, c *Client) map[string]any {
	t.Helper()
	select {
	case data, ok := <-c.send:
		require.True(t, ok, "send channel closed unexpectedly")
		var frame map[string]any
		require.NoError(t, json.Unmarshal(data, &frame))
		return frame
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func assertSendClosed(t *testing.T, c *Client) {
	t.Helper()
	select {
	case _, ok := <-c.send:
		assert.False(t, ok, "expected closed send channel")
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
}

func TestHubJoinBroadcastsOnline(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conv := uuid.New()
	c1 := newTestClient(hub, conv)
	hub.Join(c1)

	frame := recvFrame(t, c1)
	assert.Equal(t, "status", frame["type"])
	assert.Equal(t, c1.profileID.String(), frame["user"])
	assert.Equal(t, StatusOnline, frame["status"])
}

func TestHubBroadcastReachesWholeRoomIncludingSender(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conv := uuid.New()
	c1 := newTestClient(hub, conv)
	c2 := newTestClient(hub, conv)

	hub.Join(c1)
	recvFrame(t, c1) // c1 online
	hub.Join(c2)
	recvFrame(t, c1) // c2 online
	recvFrame(t, c2)

	hub.Broadcast(conv, NewTypingFrame(c1.profileID))

	for _, c := range []*Client{c1, c2} {
		frame := recvFrame(t, c)
		assert.Equal(t, "typing", frame["type"])
		assert.Equal(t, c1.profileID.String(), frame["user"])
	}
}

func TestHubLeaveBroadcastsOfflineAndClosesClient(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conv := uuid.New()
	c1 := newTestClient(hub, conv)
	c2 := newTestClient(hub, conv)

	hub.Join(c1)
	recvFrame(t, c1)
	hub.Join(c2)
	recvFrame(t, c1)
	recvFrame(t, c2)

	hub.Leave(c2)

	frame := recvFrame(t, c1)
	assert.Equal(t, "status", frame["type"])
	assert.Equal(t, c2.profileID.String(), frame["user"])
	assert.Equal(t, StatusOffline, frame["status"])

	assertSendClosed(t, c2)

	// A repeat leave for an already-removed client is ignored.
	hub.Leave(c2)
}

func TestHubRoomsAreIsolated(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	convA := uuid.New()
	convB := uuid.New()
	ca := newTestClient(hub, convA)
	cb := newTestClient(hub, convB)

	hub.Join(ca)
	recvFrame(t, ca)
	hub.Join(cb)
	recvFrame(t, cb)

	hub.Broadcast(convA, NewTypingFrame(ca.profileID))
	recvFrame(t, ca)

	select {
	case data := <-cb.send:
		t.Fatalf("frame leaked into another conversation: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}
