package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. IDs are ULIDs, so within a conversation
// (created_at, id) gives a stable total order even when timestamps collide.
type Message struct {
	ID             string    `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
	// Joined field: whether the requesting profile has read this message.
	ReadByMe bool `json:"read_by_me,omitempty"`
}
