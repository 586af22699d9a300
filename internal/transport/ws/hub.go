package ws

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// Hub owns the per-conversation rooms. All room mutation happens inside the
// Run loop; sessions only join, leave and publish. Fan-out is scoped per
// room, so unrelated conversations never block each other.
type Hub struct {
	// rooms maps conversationID → subscribed clients.
	rooms map[uuid.UUID]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	broadcast  chan *broadcastMsg
}

type broadcastMsg struct {
	conversationID uuid.UUID
	data           []byte
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *broadcastMsg, 256),
	}
}

// Run starts the Hub's main event loop. Call this in a goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			room := h.rooms[client.conversationID]
			if room == nil {
				room = make(map[*Client]struct{})
				h.rooms[client.conversationID] = room
			}
			room[client] = struct{}{}
			log.Printf("ws hub: %s joined conversation %s (%d in room)",
				client.profileID, client.conversationID, len(room))

			h.sendToRoom(client.conversationID, NewStatusFrame(client.profileID, StatusOnline))

		case client := <-h.unregister:
			room := h.rooms[client.conversationID]
			if _, ok := room[client]; ok {
				delete(room, client)
				close(client.send)
				close(client.done)
				if len(room) == 0 {
					delete(h.rooms, client.conversationID)
				}
				log.Printf("ws hub: %s left conversation %s (%d in room)",
					client.profileID, client.conversationID, len(room))

				h.sendToRoom(client.conversationID, NewStatusFrame(client.profileID, StatusOffline))
			}

		case msg := <-h.broadcast:
			h.deliver(msg.conversationID, msg.data)
		}
	}
}

// Join subscribes the client to its conversation's room.
func (h *Hub) Join(client *Client) {
	h.register <- client
}

// Leave removes the client; the hub closes its channels.
func (h *Hub) Leave(client *Client) {
	h.unregister <- client
}

// Broadcast delivers a frame to every session in the conversation's room,
// including the originator — the echo is the sender's delivery confirmation.
func (h *Hub) Broadcast(conversationID uuid.UUID, frame any) {
	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	h.broadcast <- &broadcastMsg{conversationID: conversationID, data: data}
}

// sendToRoom marshals and delivers from inside the Run loop.
func (h *Hub) sendToRoom(conversationID uuid.UUID, frame any) {
	data, err := json.Marshal(frame)
	if err != nil {
		log.Printf("ws hub: marshal error: %v", err)
		return
	}
	h.deliver(conversationID, data)
}

func (h *Hub) deliver(conversationID uuid.UUID, data []byte) {
	room := h.rooms[conversationID]
	for client := range room {
		select {
		case client.send <- data:
		default:
			// Client buffer full - disconnect
			delete(room, client)
			close(client.send)
			close(client.done)
		}
	}
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
}
