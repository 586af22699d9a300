package ws

import (
	"github.com/luka90/amora/internal/domain"
)

// HubBroadcaster implements service.MessageBroadcaster using the Hub.
// Services call it only after a durable insert, preserving
// persist-then-publish ordering.
type HubBroadcaster struct {
	hub *Hub
}

func NewHubBroadcaster(hub *Hub) *HubBroadcaster {
	return &HubBroadcaster{hub: hub}
}

func (b *HubBroadcaster) BroadcastMessage(msg *domain.Message) {
	b.hub.Broadcast(msg.ConversationID, NewChatMessageFrame(msg))
}
