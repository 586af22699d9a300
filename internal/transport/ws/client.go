package ws

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"

	"github.com/luka90/amora/internal/presence"
	"github.com/luka90/amora/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pingInterval   = 30 * time.Second
	maxMessageSize = 4096
	sendBufSize    = 256
)

// Client represents a single WebSocket session, bound to one conversation
// for its whole lifetime: Connecting → Joined → Closed.
type Client struct {
	hub            *Hub
	conn           *websocket.Conn
	profileID      uuid.UUID
	conversationID uuid.UUID

	chat     *service.ChatService
	presence presence.Store

	send chan []byte
	done chan struct{}
}

func NewClient(hub *Hub, conn *websocket.Conn, profileID, conversationID uuid.UUID, chat *service.ChatService, pres presence.Store) *Client {
	return &Client{
		hub:            hub,
		conn:           conn,
		profileID:      profileID,
		conversationID: conversationID,
		chat:           chat,
		presence:       pres,
		send:           make(chan []byte, sendBufSize),
		done:           make(chan struct{}),
	}
}

// ReadPump reads frames from the WebSocket until disconnect. Leaving the
// room on exit triggers the offline status broadcast.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Leave(c)
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	c.conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := c.conn.Read(context.Background())
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				log.Printf("ws: client %s disconnected from %s", c.profileID, c.conversationID)
			} else {
				log.Printf("ws: read error from %s: %v", c.profileID, err)
			}
			return
		}

		c.handleFrame(context.Background(), data)
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-c.send:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Write(ctx, websocket.MessageText, message)
			cancel()
			if err != nil {
				log.Printf("ws: write error to %s: %v", c.profileID, err)
				return
			}

		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), writeWait)
			err := c.conn.Ping(ctx)
			cancel()
			if err != nil {
				log.Printf("ws: ping error to %s: %v", c.profileID, err)
				return
			}

		case <-c.done:
			return
		}
	}
}

// handleFrame processes one inbound frame. Nothing in here may crash the
// session loop: bad frames and persistence failures are logged and dropped.
func (c *Client) handleFrame(ctx context.Context, data []byte) {
	// Any inbound frame counts as activity for soft liveness.
	if err := c.presence.MarkOnline(ctx, c.profileID); err != nil {
		log.Printf("ws: presence refresh for %s: %v", c.profileID, err)
	}

	event, err := ParseClientEvent(data)
	if err != nil {
		log.Printf("ws: dropping frame from %s: %v", c.profileID, err)
		return
	}

	switch ev := event.(type) {
	case TypingEvent:
		if err := c.presence.SetTyping(ctx, c.conversationID, c.profileID); err != nil {
			log.Printf("ws: typing flag for %s: %v", c.profileID, err)
		}
		c.hub.Broadcast(c.conversationID, NewTypingFrame(c.profileID))

	case ChatMessageEvent:
		// SendMessage persists first, then fans out through the hub. On
		// failure the client simply never sees its echo.
		if _, err := c.chat.SendMessage(ctx, c.profileID, c.conversationID, ev.Body); err != nil {
			if errors.Is(err, service.ErrEmptyBody) || errors.Is(err, service.ErrNotParticipant) {
				log.Printf("ws: rejected message from %s: %v", c.profileID, err)
			} else {
				log.Printf("ws: persist error for %s: %v", c.profileID, err)
			}
		}
	}
}
